// Package assessment generates quiz feedback, new quiz questions, and content
// summaries through an LLM backend. Every operation returns a well-formed
// payload even when the backend is down: failures are logged and replaced by
// fixed fallback objects.
package assessment

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"

	"github.com/globalacademy/platform/internal/log"
	"github.com/globalacademy/platform/internal/metrics"
)

// jsonCompleter is the slice of the LLM client the generator needs: one
// JSON-mode completion per operation.
type jsonCompleter interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Generator produces assessment content from transcripts.
type Generator struct {
	chat   jsonCompleter
	logger zerolog.Logger
}

// NewGenerator wraps a chat client.
func NewGenerator(chat jsonCompleter) *Generator {
	return &Generator{
		chat:   chat,
		logger: log.WithComponent("assessment"),
	}
}

var difficultyNames = map[int]string{
	1: "basic",
	2: "intermediate",
	3: "advanced",
}

func difficultyName(d int) string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return difficultyNames[1]
}

// GenerateFeedback judges a free-text answer against the expected one and
// produces an encouraging explanation in the requested language.
func (g *Generator) GenerateFeedback(ctx context.Context, req FeedbackRequest) Feedback {
	system := fmt.Sprintf(
		"You are an expert educational tutor specializing in AI concepts. "+
			"Your goal is to provide clear, concise, and encouraging feedback to learners in their native language. "+
			"Respond in %s and analyze whether the user's answer is correct.",
		req.Language.SelfName())

	var user strings.Builder
	fmt.Fprintf(&user, "Context: %s\n\n", req.Context)
	fmt.Fprintf(&user, "Question: %s\n\n", req.Question)
	fmt.Fprintf(&user, "User's answer: %s\n\n", req.UserAnswer)
	fmt.Fprintf(&user, "Correct answer: %s\n\n", req.CorrectAnswer)
	user.WriteString("Provide feedback on the user's answer as a JSON object with these fields:\n")
	user.WriteString("- message: a short encouragement message (correct or try again)\n")
	user.WriteString("- isCorrect: boolean indicating if the answer is correct\n")
	user.WriteString("- explanation: detailed explanation of why the answer is correct or incorrect\n")

	var feedback Feedback
	if err := g.completeInto(ctx, system, user.String(), &feedback); err != nil {
		metrics.BackendDegradations.WithLabelValues("feedback").Inc()
		g.logger.Warn().Err(err).Msg("feedback generation failed, returning fallback")
		return Feedback{
			Message:     "We could not analyze your answer at this time",
			IsCorrect:   false,
			Explanation: "There was an error processing your response. Please try again.",
		}
	}
	return feedback
}

// GenerateQuestion builds a new quiz question from transcript text. The
// returned shape follows req.Type unless the model misbehaves, in which case
// a fixed placeholder of the requested shape is returned.
func (g *Generator) GenerateQuestion(ctx context.Context, req QuestionRequest) GeneratedQuestion {
	difficulty := difficultyName(req.Difficulty)

	system := fmt.Sprintf(
		"You are an expert educational content creator specialized in generating high-quality assessment questions. "+
			"Create a %s %s question in %s based on the provided transcript. "+
			"The question should test comprehension and critical thinking.",
		difficulty, req.Type, req.Language.SelfName())

	var user strings.Builder
	fmt.Fprintf(&user, "Transcript: %s\n\n", req.Transcript)
	if req.Performance != nil && req.Performance.TotalQuestions > 0 {
		accuracy := int(math.Round(float64(req.Performance.CorrectAnswers) / float64(req.Performance.TotalQuestions) * 100))
		fmt.Fprintf(&user, "The learner has answered %d%% of previous questions correctly.\n\n", accuracy)
	}
	if len(req.PreviousQuestions) > 0 {
		fmt.Fprintf(&user, "Previous questions asked: %s\n\n", strings.Join(req.PreviousQuestions, "; "))
	}
	fmt.Fprintf(&user, "Generate a %s level %s question about the key concepts in this transcript.\n\n", difficulty, req.Type)
	if req.Type == MultipleChoice {
		user.WriteString("Include 4 options where only one is correct. Make the distractors plausible but clearly incorrect upon careful reading.\n\n")
		user.WriteString(`Return a JSON object: { "questionText": "", "options": ["", "", "", ""], "correctOptionIndex": 0-3, "explanation": "" }`)
	} else {
		user.WriteString("Include a sample answer and key points that should be included in a good response.\n\n")
		user.WriteString(`Return a JSON object: { "questionText": "", "sampleAnswer": "", "keyPoints": ["", ""], "explanation": "" }`)
	}

	var question GeneratedQuestion
	if err := g.completeInto(ctx, system, user.String(), &question); err != nil {
		metrics.BackendDegradations.WithLabelValues("generate_question").Inc()
		g.logger.Warn().Err(err).Str("type", string(req.Type)).Msg("question generation failed, returning fallback")
		return fallbackQuestion(req.Type)
	}
	if err := validateQuestion(question, req.Type); err != nil {
		metrics.BackendDegradations.WithLabelValues("generate_question").Inc()
		g.logger.Warn().Err(err).Str("type", string(req.Type)).Msg("question generation returned malformed shape, returning fallback")
		return fallbackQuestion(req.Type)
	}

	metrics.QuestionsGenerated.WithLabelValues(string(req.Type)).Inc()
	return question
}

// SummarizeContent condenses transcript text into a summary with key points.
func (g *Generator) SummarizeContent(ctx context.Context, req SummarizeRequest) Summary {
	system := fmt.Sprintf(
		"You are an expert at summarizing educational content. "+
			"Create a concise summary in %s of the provided transcript, highlighting the key points.",
		req.Language.SelfName())

	var user strings.Builder
	fmt.Fprintf(&user, "Transcript: %s\n\n", req.Transcript)
	user.WriteString("Provide a summary and key points as a JSON object:\n")
	user.WriteString(`{ "summary": "A concise summary of the content", "keyPoints": ["Key point 1", "Key point 2"] }`)

	var summary Summary
	if err := g.completeInto(ctx, system, user.String(), &summary); err != nil {
		metrics.BackendDegradations.WithLabelValues("summarize").Inc()
		g.logger.Warn().Err(err).Msg("summary generation failed, returning fallback")
		return Summary{
			Summary:   "We could not generate a summary at this time.",
			KeyPoints: []string{"Please try again later."},
		}
	}
	return summary
}

// completeInto runs one JSON-mode completion and decodes the document into v.
func (g *Generator) completeInto(ctx context.Context, system, user string, v interface{}) error {
	content, err := g.chat.CompleteJSON(ctx, system, user)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(content), v); err != nil {
		return fmt.Errorf("decode model response: %w", err)
	}
	return nil
}

func validateQuestion(q GeneratedQuestion, want QuestionType) error {
	if q.QuestionText == "" {
		return fmt.Errorf("missing question text")
	}
	switch want {
	case MultipleChoice:
		if len(q.Options) != 4 {
			return fmt.Errorf("expected 4 options, got %d", len(q.Options))
		}
		if q.CorrectOptionIndex < 0 || q.CorrectOptionIndex >= len(q.Options) {
			return fmt.Errorf("correct option index %d out of range", q.CorrectOptionIndex)
		}
	case ShortAnswer:
		if q.SampleAnswer == "" {
			return fmt.Errorf("missing sample answer")
		}
		if len(q.KeyPoints) == 0 {
			return fmt.Errorf("missing key points")
		}
	}
	return nil
}

func fallbackQuestion(t QuestionType) GeneratedQuestion {
	if t == MultipleChoice {
		return GeneratedQuestion{
			QuestionText:       "What is the main topic of the content?",
			Options:            []string{"Option A", "Option B", "Option C", "Option D"},
			CorrectOptionIndex: 0,
			Explanation:        "We could not generate a specific question at this time.",
		}
	}
	return GeneratedQuestion{
		QuestionText: "Summarize the main concepts from the content.",
		SampleAnswer: "A complete answer would describe the key points covered in the material.",
		KeyPoints:    []string{"Key concept 1", "Key concept 2"},
		Explanation:  "We could not generate a specific question at this time.",
	}
}
