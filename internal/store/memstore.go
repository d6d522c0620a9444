package store

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/globalacademy/platform/internal/lang"
)

// MemStore is the in-memory Storage implementation. It is the default for
// development and tests; state lives for the process lifetime only.
type MemStore struct {
	mu sync.RWMutex

	users         map[int64]User
	providers     map[int64]ContentProvider
	courses       map[int64]Course
	modules       map[int64]Module
	transcripts   map[int64]Transcript
	questions     map[int64]QuizQuestion
	progress      map[int64]UserProgress
	quizResults   map[int64]UserQuizResult
	learningPaths map[int64]LearningPath

	nextID map[string]int64
}

var _ Storage = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		users:         make(map[int64]User),
		providers:     make(map[int64]ContentProvider),
		courses:       make(map[int64]Course),
		modules:       make(map[int64]Module),
		transcripts:   make(map[int64]Transcript),
		questions:     make(map[int64]QuizQuestion),
		progress:      make(map[int64]UserProgress),
		quizResults:   make(map[int64]UserQuizResult),
		learningPaths: make(map[int64]LearningPath),
		nextID:        make(map[string]int64),
	}
}

func (s *MemStore) allocID(kind string) int64 {
	s.nextID[kind]++
	return s.nextID[kind]
}

// Users

func (s *MemStore) User(_ context.Context, id int64) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (s *MemStore) UserByUsername(_ context.Context, username string) (User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (s *MemStore) CreateUser(_ context.Context, u User) (User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = s.allocID("users")
	if u.PreferredLanguage == "" {
		u.PreferredLanguage = lang.English
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *MemStore) UpdateUser(_ context.Context, u User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return ErrNotFound
	}
	s.users[u.ID] = u
	return nil
}

// Content providers

func (s *MemStore) ContentProviders(_ context.Context) ([]ContentProvider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]ContentProvider, 0, len(s.providers))
	for _, p := range s.providers {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) ContentProvider(_ context.Context, id int64) (ContentProvider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.providers[id]
	if !ok {
		return ContentProvider{}, ErrNotFound
	}
	return p, nil
}

func (s *MemStore) CreateContentProvider(_ context.Context, p ContentProvider) (ContentProvider, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.allocID("providers")
	s.providers[p.ID] = p
	return p, nil
}

// Courses

func (s *MemStore) Courses(_ context.Context) ([]Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Course, 0, len(s.courses))
	for _, c := range s.courses {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) Course(_ context.Context, id int64) (Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.courses[id]
	if !ok {
		return Course{}, ErrNotFound
	}
	return c, nil
}

func (s *MemStore) CreateCourse(_ context.Context, c Course) (Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.allocID("courses")
	s.courses[c.ID] = c
	return c, nil
}

// RecommendedCourses returns the highest-rated courses. User history is not
// consulted yet; the id is accepted for a future personalized ranking.
func (s *MemStore) RecommendedCourses(ctx context.Context, _ int64, limit int) ([]Course, error) {
	if limit <= 0 {
		limit = 3
	}
	courses, err := s.Courses(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(courses, func(i, j int) bool { return courses[i].Rating > courses[j].Rating })
	if len(courses) > limit {
		courses = courses[:limit]
	}
	return courses, nil
}

func (s *MemStore) CoursesByLearningPath(ctx context.Context, pathID int64) ([]Course, error) {
	path, err := s.LearningPath(ctx, pathID)
	if err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Course, 0, len(path.CourseIDs))
	for _, id := range path.CourseIDs {
		if c, ok := s.courses[id]; ok {
			out = append(out, c)
		}
	}
	return out, nil
}

// Modules

func (s *MemStore) ModulesByCourse(_ context.Context, courseID int64) ([]Module, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Module, 0)
	for _, m := range s.modules {
		if m.CourseID == courseID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (s *MemStore) Module(_ context.Context, id int64) (Module, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.modules[id]
	if !ok {
		return Module{}, ErrNotFound
	}
	return m, nil
}

func (s *MemStore) CreateModule(_ context.Context, m Module) (Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.allocID("modules")
	s.modules[m.ID] = m
	return m, nil
}

// Transcripts

func (s *MemStore) TranscriptByModule(_ context.Context, moduleID int64, language lang.Code) (Transcript, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, t := range s.transcripts {
		if t.ModuleID == moduleID && t.Language == language {
			return t, nil
		}
	}
	return Transcript{}, ErrNotFound
}

func (s *MemStore) CreateTranscript(_ context.Context, t Transcript) (Transcript, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.allocID("transcripts")
	s.transcripts[t.ID] = t
	return t, nil
}

// Quiz questions

func (s *MemStore) QuizQuestionsByModule(_ context.Context, moduleID int64, language lang.Code) ([]QuizQuestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]QuizQuestion, 0)
	for _, q := range s.questions {
		if q.ModuleID == moduleID && q.Language == language {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) QuizQuestion(_ context.Context, id int64) (QuizQuestion, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[id]
	if !ok {
		return QuizQuestion{}, ErrNotFound
	}
	return q, nil
}

func (s *MemStore) CreateQuizQuestion(_ context.Context, q QuizQuestion) (QuizQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q.ID = s.allocID("questions")
	if q.Language == "" {
		q.Language = lang.English
	}
	s.questions[q.ID] = q
	return q, nil
}

// Progress

func (s *MemStore) UserProgress(_ context.Context, userID, courseID int64) ([]UserProgress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]UserProgress, 0)
	for _, p := range s.progress {
		if p.UserID != userID {
			continue
		}
		if courseID != 0 && p.CourseID != courseID {
			continue
		}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) CreateUserProgress(_ context.Context, p UserProgress) (UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.allocID("progress")
	s.progress[p.ID] = p
	return p, nil
}

func (s *MemStore) UpdateUserProgress(_ context.Context, p UserProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.progress[p.ID]; !ok {
		return ErrNotFound
	}
	s.progress[p.ID] = p
	return nil
}

func (s *MemStore) WeeklyHours(_ context.Context, userID int64) (float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var total float64
	for _, p := range s.progress {
		if p.UserID == userID {
			total += p.WeeklyHoursSpent
		}
	}
	return total, nil
}

func (s *MemStore) ResetWeeklyHours(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.progress {
		p.WeeklyHoursSpent = 0
		s.progress[id] = p
	}
	return nil
}

// Quiz results

func (s *MemStore) SaveQuizResult(_ context.Context, r UserQuizResult) (UserQuizResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = s.allocID("quizResults")
	s.quizResults[r.ID] = r
	return r, nil
}

func (s *MemStore) QuizResults(_ context.Context, userID, moduleID int64) ([]UserQuizResult, error) {
	s.mu.RLock()
	questions := make(map[int64]QuizQuestion, len(s.questions))
	for id, q := range s.questions {
		questions[id] = q
	}
	out := make([]UserQuizResult, 0)
	for _, r := range s.quizResults {
		if r.UserID != userID {
			continue
		}
		if moduleID != 0 {
			q, ok := questions[r.QuestionID]
			if !ok || q.ModuleID != moduleID {
				continue
			}
		}
		out = append(out, r)
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Learning paths

func (s *MemStore) LearningPaths(_ context.Context) ([]LearningPath, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]LearningPath, 0, len(s.learningPaths))
	for _, p := range s.learningPaths {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *MemStore) LearningPath(_ context.Context, id int64) (LearningPath, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.learningPaths[id]
	if !ok {
		return LearningPath{}, ErrNotFound
	}
	return p, nil
}

func (s *MemStore) CreateLearningPath(_ context.Context, p LearningPath) (LearningPath, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.allocID("learningPaths")
	s.learningPaths[p.ID] = p
	return p, nil
}

// LearningPathProgress reports the share of the path's modules the user has
// completed, as a 0-100 percentage.
func (s *MemStore) LearningPathProgress(ctx context.Context, userID, pathID int64) (int, error) {
	path, err := s.LearningPath(ctx, pathID)
	if err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var total, completed int
	for _, courseID := range path.CourseIDs {
		for _, m := range s.modules {
			if m.CourseID != courseID {
				continue
			}
			total++
			for _, p := range s.progress {
				if p.UserID == userID && p.ModuleID == m.ID && p.Completed {
					completed++
					break
				}
			}
		}
	}
	if total == 0 {
		return 0, nil
	}
	return int(math.Round(float64(completed) / float64(total) * 100)), nil
}
