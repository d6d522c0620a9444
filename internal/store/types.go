package store

import (
	"time"

	"github.com/globalacademy/platform/internal/lang"
)

// User is a platform account. Password handling is out of scope here; the
// column exists for parity with the catalog schema.
type User struct {
	ID                int64     `json:"id"`
	Username          string    `json:"username"`
	Password          string    `json:"-"`
	DisplayName       string    `json:"displayName"`
	Email             string    `json:"email"`
	PreferredLanguage lang.Code `json:"preferredLanguage"`
	WeeklyGoalHours   int       `json:"weeklyGoalHours"`
}

// ContentProvider is the source platform a course was ingested from.
type ContentProvider struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	APIEndpoint string `json:"apiEndpoint,omitempty"`
}

// Course is a published course in canonical (English) text.
type Course struct {
	ID           int64  `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Instructor   string `json:"instructor"`
	ThumbnailURL string `json:"thumbnailUrl,omitempty"`
	ProviderID   int64  `json:"providerId"`
	Rating       int    `json:"rating"` // 0-5
	RatingCount  int    `json:"ratingCount"`
	IsNew        bool   `json:"isNew"`
}

// Module is one video lesson inside a course.
type Module struct {
	ID              int64  `json:"id"`
	CourseID        int64  `json:"courseId"`
	Title           string `json:"title"`
	Description     string `json:"description,omitempty"`
	Position        int    `json:"position"`
	VideoURL        string `json:"videoUrl"`
	DurationSeconds int    `json:"durationSeconds"`
}

// Segment is a timestamped span of transcript text. Segments are stored
// ordered by StartTime ascending and do not overlap.
type Segment struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Text      string  `json:"text"`
}

// Transcript is the segment list for one module in one language.
type Transcript struct {
	ID       int64     `json:"id"`
	ModuleID int64     `json:"moduleId"`
	Language lang.Code `json:"languageCode"`
	Segments []Segment `json:"segments"`
}

// QuizQuestion is a stored multiple-choice question for a module.
type QuizQuestion struct {
	ID                 int64     `json:"id"`
	ModuleID           int64     `json:"moduleId"`
	QuestionText       string    `json:"questionText"`
	Options            []string  `json:"options"`
	CorrectOptionIndex int       `json:"correctOptionIndex"`
	Explanation        string    `json:"explanation,omitempty"`
	Language           lang.Code `json:"languageCode"`
	AppearanceTime     int       `json:"appearanceTime,omitempty"` // seconds into the video
	Difficulty         int       `json:"difficulty"`               // 1-3
}

// UserProgress tracks one user's position in one module.
type UserProgress struct {
	ID               int64      `json:"id"`
	UserID           int64      `json:"userId"`
	CourseID         int64      `json:"courseId"`
	ModuleID         int64      `json:"moduleId"`
	LastPosition     int        `json:"lastPosition"` // seconds into the video
	Completed        bool       `json:"completed"`
	CompletedAt      *time.Time `json:"completedAt,omitempty"`
	WeeklyHoursSpent float64    `json:"weeklyHoursSpent"`
}

// UserQuizResult records one graded answer.
type UserQuizResult struct {
	ID             int64     `json:"id"`
	UserID         int64     `json:"userId"`
	QuestionID     int64     `json:"questionId"`
	SelectedOption int       `json:"selectedOption"`
	IsCorrect      bool      `json:"isCorrect"`
	AttemptedAt    time.Time `json:"attemptedAt"`
}

// LearningPath is an ordered sequence of courses.
type LearningPath struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Icon        string  `json:"icon"`
	CourseIDs   []int64 `json:"courses"`
}
