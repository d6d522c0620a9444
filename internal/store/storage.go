// Package store holds the platform catalog: users, providers, courses,
// modules, transcripts, quiz questions, progress and learning paths. Two
// implementations exist: a seeded in-memory store and a sqlite-backed one.
package store

import (
	"context"
	"errors"

	"github.com/globalacademy/platform/internal/lang"
)

// ErrNotFound is returned when a referenced record does not exist.
var ErrNotFound = errors.New("record not found")

// Storage is the catalog contract consumed by the content service and the
// HTTP layer. Transcripts and quiz questions are addressed by
// (moduleID, language).
type Storage interface {
	// Users
	User(ctx context.Context, id int64) (User, error)
	UserByUsername(ctx context.Context, username string) (User, error)
	CreateUser(ctx context.Context, u User) (User, error)
	UpdateUser(ctx context.Context, u User) error

	// Content providers
	ContentProviders(ctx context.Context) ([]ContentProvider, error)
	ContentProvider(ctx context.Context, id int64) (ContentProvider, error)
	CreateContentProvider(ctx context.Context, p ContentProvider) (ContentProvider, error)

	// Courses
	Courses(ctx context.Context) ([]Course, error)
	Course(ctx context.Context, id int64) (Course, error)
	CreateCourse(ctx context.Context, c Course) (Course, error)
	RecommendedCourses(ctx context.Context, userID int64, limit int) ([]Course, error)
	CoursesByLearningPath(ctx context.Context, pathID int64) ([]Course, error)

	// Modules
	ModulesByCourse(ctx context.Context, courseID int64) ([]Module, error)
	Module(ctx context.Context, id int64) (Module, error)
	CreateModule(ctx context.Context, m Module) (Module, error)

	// Transcripts
	TranscriptByModule(ctx context.Context, moduleID int64, language lang.Code) (Transcript, error)
	CreateTranscript(ctx context.Context, t Transcript) (Transcript, error)

	// Quiz questions
	QuizQuestionsByModule(ctx context.Context, moduleID int64, language lang.Code) ([]QuizQuestion, error)
	QuizQuestion(ctx context.Context, id int64) (QuizQuestion, error)
	CreateQuizQuestion(ctx context.Context, q QuizQuestion) (QuizQuestion, error)

	// Progress. courseID 0 means all courses.
	UserProgress(ctx context.Context, userID, courseID int64) ([]UserProgress, error)
	CreateUserProgress(ctx context.Context, p UserProgress) (UserProgress, error)
	UpdateUserProgress(ctx context.Context, p UserProgress) error
	WeeklyHours(ctx context.Context, userID int64) (float64, error)
	ResetWeeklyHours(ctx context.Context) error

	// Quiz results. moduleID 0 means all modules.
	SaveQuizResult(ctx context.Context, r UserQuizResult) (UserQuizResult, error)
	QuizResults(ctx context.Context, userID, moduleID int64) ([]UserQuizResult, error)

	// Learning paths
	LearningPaths(ctx context.Context) ([]LearningPath, error)
	LearningPath(ctx context.Context, id int64) (LearningPath, error)
	CreateLearningPath(ctx context.Context, p LearningPath) (LearningPath, error)
	LearningPathProgress(ctx context.Context, userID, pathID int64) (int, error)
}
