package assessment

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalacademy/platform/internal/lang"
)

// scriptedChat returns a canned JSON document, recording the prompts it saw.
type scriptedChat struct {
	reply      string
	err        error
	lastSystem string
	lastUser   string
}

func (s *scriptedChat) CompleteJSON(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	s.lastSystem = systemPrompt
	s.lastUser = userPrompt
	return s.reply, s.err
}

func TestGenerateFeedback(t *testing.T) {
	chat := &scriptedChat{reply: `{
		"message": "Well done!",
		"isCorrect": true,
		"explanation": "Supervised learning uses labeled data."
	}`}
	gen := NewGenerator(chat)

	feedback := gen.GenerateFeedback(context.Background(), FeedbackRequest{
		Question:      "What is supervised learning?",
		UserAnswer:    "Learning from labeled examples",
		CorrectAnswer: "Learning from labeled data",
		Context:       "Machine learning basics",
		Language:      lang.Spanish,
	})

	assert.True(t, feedback.IsCorrect)
	assert.Equal(t, "Well done!", feedback.Message)
	assert.Contains(t, chat.lastSystem, "español")
	assert.Contains(t, chat.lastUser, "What is supervised learning?")
}

func TestGenerateFeedbackFallbackOnError(t *testing.T) {
	gen := NewGenerator(&scriptedChat{err: fmt.Errorf("backend down")})

	feedback := gen.GenerateFeedback(context.Background(), FeedbackRequest{Language: lang.English})

	assert.False(t, feedback.IsCorrect)
	assert.Equal(t, "We could not analyze your answer at this time", feedback.Message)
	assert.NotEmpty(t, feedback.Explanation)
}

func TestGenerateFeedbackFallbackOnGarbage(t *testing.T) {
	gen := NewGenerator(&scriptedChat{reply: "not json at all"})

	feedback := gen.GenerateFeedback(context.Background(), FeedbackRequest{Language: lang.English})
	assert.Equal(t, "We could not analyze your answer at this time", feedback.Message)
}

func TestGenerateQuestionMultipleChoice(t *testing.T) {
	chat := &scriptedChat{reply: `{
		"questionText": "Which algorithm is supervised?",
		"options": ["Linear regression", "K-means", "PCA", "DBSCAN"],
		"correctOptionIndex": 0,
		"explanation": "Linear regression learns from labeled data."
	}`}
	gen := NewGenerator(chat)

	q := gen.GenerateQuestion(context.Background(), QuestionRequest{
		Transcript: "Supervised learning uses labeled data...",
		Difficulty: 2,
		Type:       MultipleChoice,
		Language:   lang.English,
		PreviousQuestions: []string{
			"What is machine learning?",
		},
		Performance: &Performance{CorrectAnswers: 3, TotalQuestions: 4},
	})

	assert.Equal(t, MultipleChoice, q.Type())
	require.Len(t, q.Options, 4)
	assert.Equal(t, 0, q.CorrectOptionIndex)

	// Difficulty tier, dedupe context and accuracy all reach the prompt.
	assert.Contains(t, chat.lastSystem, "intermediate")
	assert.Contains(t, chat.lastUser, "What is machine learning?")
	assert.Contains(t, chat.lastUser, "75%")
}

func TestGenerateQuestionShortAnswer(t *testing.T) {
	chat := &scriptedChat{reply: `{
		"questionText": "Explain overfitting.",
		"sampleAnswer": "Overfitting is when a model memorizes training data.",
		"keyPoints": ["memorization", "poor generalization"],
		"explanation": "Overfitting hurts generalization."
	}`}
	gen := NewGenerator(chat)

	q := gen.GenerateQuestion(context.Background(), QuestionRequest{
		Transcript: "Overfitting occurs when...",
		Difficulty: 3,
		Type:       ShortAnswer,
		Language:   lang.French,
	})

	assert.Equal(t, ShortAnswer, q.Type())
	assert.Empty(t, q.Options)
	assert.Equal(t, "Overfitting is when a model memorizes training data.", q.SampleAnswer)
	assert.Contains(t, chat.lastSystem, "advanced")
}

func TestGenerateQuestionFallbackMatchesRequestedType(t *testing.T) {
	gen := NewGenerator(&scriptedChat{err: fmt.Errorf("backend down")})
	ctx := context.Background()

	mc := gen.GenerateQuestion(ctx, QuestionRequest{Type: MultipleChoice, Difficulty: 1, Language: lang.English})
	assert.Equal(t, MultipleChoice, mc.Type())
	require.Len(t, mc.Options, 4)
	assert.Equal(t, 0, mc.CorrectOptionIndex)

	sa := gen.GenerateQuestion(ctx, QuestionRequest{Type: ShortAnswer, Difficulty: 1, Language: lang.English})
	assert.Equal(t, ShortAnswer, sa.Type())
	assert.NotEmpty(t, sa.SampleAnswer)
	assert.Len(t, sa.KeyPoints, 2)
}

func TestGenerateQuestionRejectsMalformedShape(t *testing.T) {
	// Three options instead of four: structurally invalid, use the fallback.
	chat := &scriptedChat{reply: `{
		"questionText": "Which?",
		"options": ["A", "B", "C"],
		"correctOptionIndex": 0,
		"explanation": "x"
	}`}
	gen := NewGenerator(chat)

	q := gen.GenerateQuestion(context.Background(), QuestionRequest{Type: MultipleChoice, Difficulty: 1, Language: lang.English})
	assert.Equal(t, "What is the main topic of the content?", q.QuestionText)
}

func TestSummarizeContent(t *testing.T) {
	chat := &scriptedChat{reply: `{
		"summary": "The module introduces neural networks.",
		"keyPoints": ["neurons", "layers", "activation functions"]
	}`}
	gen := NewGenerator(chat)

	summary := gen.SummarizeContent(context.Background(), SummarizeRequest{
		Transcript: "Neural networks consist of...",
		Language:   lang.Russian,
	})

	assert.Equal(t, "The module introduces neural networks.", summary.Summary)
	assert.Len(t, summary.KeyPoints, 3)
	assert.Contains(t, chat.lastSystem, "русский")
}

func TestSummarizeContentFallbackOnError(t *testing.T) {
	gen := NewGenerator(&scriptedChat{err: fmt.Errorf("backend down")})

	summary := gen.SummarizeContent(context.Background(), SummarizeRequest{Language: lang.English})
	assert.Equal(t, "We could not generate a summary at this time.", summary.Summary)
	assert.NotEmpty(t, summary.KeyPoints)
}

func TestDifficultyNameClampsToBasic(t *testing.T) {
	assert.Equal(t, "basic", difficultyName(0))
	assert.Equal(t, "basic", difficultyName(1))
	assert.Equal(t, "intermediate", difficultyName(2))
	assert.Equal(t, "advanced", difficultyName(3))
	assert.Equal(t, "basic", difficultyName(7))
}
