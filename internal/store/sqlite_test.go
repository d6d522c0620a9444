package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalacademy/platform/internal/lang"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "platform.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreRequiresPath(t *testing.T) {
	_, err := NewSQLiteStore("   ")
	require.Error(t, err)
}

func TestSQLiteStoreMigrationsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platform.db")

	s, err := NewSQLiteStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	// Reopening must not re-apply migrations.
	s, err = NewSQLiteStore(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Courses(context.Background())
	require.NoError(t, err)
}

func TestSQLiteStoreSeedRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)
	require.NoError(t, Seed(ctx, s))

	courses, err := s.Courses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 3)
	assert.True(t, courses[0].IsNew)

	modules, err := s.ModulesByCourse(ctx, courses[0].ID)
	require.NoError(t, err)
	require.Len(t, modules, 2)

	transcript, err := s.TranscriptByModule(ctx, modules[0].ID, lang.English)
	require.NoError(t, err)
	require.Len(t, transcript.Segments, 3)
	assert.Equal(t, "Welcome to Introduction to AI", transcript.Segments[0].Text)
	assert.Equal(t, 12.0, transcript.Segments[0].EndTime)

	_, err = s.TranscriptByModule(ctx, modules[0].ID, lang.Chinese)
	assert.ErrorIs(t, err, ErrNotFound)

	questions, err := s.QuizQuestionsByModule(ctx, modules[0].ID, lang.English)
	require.NoError(t, err)
	require.Len(t, questions, 2)
	assert.Len(t, questions[0].Options, 4)

	user, err := s.UserByUsername(ctx, "demo")
	require.NoError(t, err)
	assert.Equal(t, lang.English, user.PreferredLanguage)
}

func TestSQLiteStoreProgressLifecycle(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	created, err := s.CreateUserProgress(ctx, UserProgress{
		UserID:           3,
		CourseID:         1,
		ModuleID:         2,
		LastPosition:     45,
		WeeklyHoursSpent: 0.75,
	})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	now := time.Now().UTC().Truncate(time.Second)
	created.Completed = true
	created.CompletedAt = &now
	created.WeeklyHoursSpent = 1.25
	require.NoError(t, s.UpdateUserProgress(ctx, created))

	list, err := s.UserProgress(ctx, 3, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, list[0].Completed)
	require.NotNil(t, list[0].CompletedAt)
	assert.True(t, list[0].CompletedAt.Equal(now))

	hours, err := s.WeeklyHours(ctx, 3)
	require.NoError(t, err)
	assert.InDelta(t, 1.25, hours, 0.001)

	require.NoError(t, s.ResetWeeklyHours(ctx))
	hours, err = s.WeeklyHours(ctx, 3)
	require.NoError(t, err)
	assert.Zero(t, hours)

	err = s.UpdateUserProgress(ctx, UserProgress{ID: 9999})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteStoreQuizResults(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	q1, err := s.CreateQuizQuestion(ctx, QuizQuestion{
		ModuleID:     10,
		QuestionText: "first",
		Options:      []string{"a", "b", "c", "d"},
		Language:     lang.English,
	})
	require.NoError(t, err)
	q2, err := s.CreateQuizQuestion(ctx, QuizQuestion{
		ModuleID:     11,
		QuestionText: "second",
		Options:      []string{"a", "b", "c", "d"},
		Language:     lang.English,
	})
	require.NoError(t, err)

	_, err = s.SaveQuizResult(ctx, UserQuizResult{UserID: 3, QuestionID: q1.ID, SelectedOption: 0, IsCorrect: true})
	require.NoError(t, err)
	_, err = s.SaveQuizResult(ctx, UserQuizResult{UserID: 3, QuestionID: q2.ID, SelectedOption: 2})
	require.NoError(t, err)

	all, err := s.QuizResults(ctx, 3, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.False(t, all[0].AttemptedAt.IsZero())

	scoped, err := s.QuizResults(ctx, 3, 10)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.True(t, scoped[0].IsCorrect)
}

func TestSQLiteStoreLearningPathProgress(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	course, err := s.CreateCourse(ctx, Course{Title: "solo", Description: "d", Instructor: "i"})
	require.NoError(t, err)

	var modules []Module
	for i := 1; i <= 2; i++ {
		m, err := s.CreateModule(ctx, Module{CourseID: course.ID, Title: "m", Position: i, VideoURL: "/v", DurationSeconds: 60})
		require.NoError(t, err)
		modules = append(modules, m)
	}

	path, err := s.CreateLearningPath(ctx, LearningPath{Title: "p", CourseIDs: []int64{course.ID}})
	require.NoError(t, err)

	_, err = s.CreateUserProgress(ctx, UserProgress{UserID: 1, CourseID: course.ID, ModuleID: modules[0].ID, Completed: true})
	require.NoError(t, err)

	progress, err := s.LearningPathProgress(ctx, 1, path.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, progress)

	_, err = s.LearningPathProgress(ctx, 1, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
