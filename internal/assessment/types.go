package assessment

import (
	"github.com/globalacademy/platform/internal/lang"
)

// QuestionType selects the shape of a generated question.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	ShortAnswer    QuestionType = "short_answer"
)

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	return t == MultipleChoice || t == ShortAnswer
}

// FeedbackRequest asks for tutoring feedback on a free-text quiz answer.
type FeedbackRequest struct {
	Question      string    `json:"question"`
	UserAnswer    string    `json:"userAnswer"`
	CorrectAnswer string    `json:"correctAnswer"`
	Context       string    `json:"context"`
	Language      lang.Code `json:"language"`
}

// Feedback is the tutoring verdict on a user's answer.
type Feedback struct {
	Message     string `json:"message"`
	IsCorrect   bool   `json:"isCorrect"`
	Explanation string `json:"explanation"`
}

// Performance summarises a learner's track record; included in generation
// context as an accuracy percentage when present.
type Performance struct {
	CorrectAnswers int `json:"correctAnswers"`
	TotalQuestions int `json:"totalQuestions"`
}

// QuestionRequest asks for a new quiz question built from transcript text.
//
// Difficulty: 1 (basic), 2 (intermediate), 3 (advanced)
// PreviousQuestions: already-asked question texts, passed through to reduce
// duplicate generation
type QuestionRequest struct {
	Transcript        string       `json:"transcript"`
	Difficulty        int          `json:"difficulty"`
	PreviousQuestions []string     `json:"previousQuestions,omitempty"`
	Type              QuestionType `json:"questionType"`
	Language          lang.Code    `json:"language"`
	Performance       *Performance `json:"userPerformance,omitempty"`
}

// GeneratedQuestion is the union of the two question shapes the model can
// return. Options present means multiple choice; SampleAnswer present means
// short answer. Generated questions are never persisted by this package.
type GeneratedQuestion struct {
	QuestionText       string   `json:"questionText"`
	Options            []string `json:"options,omitempty"`
	CorrectOptionIndex int      `json:"correctOptionIndex"`
	SampleAnswer       string   `json:"sampleAnswer,omitempty"`
	KeyPoints          []string `json:"keyPoints,omitempty"`
	Explanation        string   `json:"explanation"`
}

// Type reports which variant of the union this question is.
func (q GeneratedQuestion) Type() QuestionType {
	if len(q.Options) > 0 {
		return MultipleChoice
	}
	return ShortAnswer
}

// SummarizeRequest asks for a summary of transcript text.
type SummarizeRequest struct {
	Transcript string    `json:"transcript"`
	Language   lang.Code `json:"language"`
}

// Summary is a condensed rendering of module content.
type Summary struct {
	Summary   string   `json:"summary"`
	KeyPoints []string `json:"keyPoints"`
}
