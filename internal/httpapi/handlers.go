package httpapi

import (
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/globalacademy/platform/internal/assessment"
	"github.com/globalacademy/platform/internal/content"
	"github.com/globalacademy/platform/internal/lang"
	"github.com/globalacademy/platform/internal/store"
)

func (s *Server) handleLanguages(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, lang.Names())
}

func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	language, ok := queryLanguage(w, r)
	if !ok {
		return
	}
	courses, err := s.content.Courses(r.Context(), language)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (s *Server) handleCourseDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	language, ok := queryLanguage(w, r)
	if !ok {
		return
	}
	detail, err := s.content.Course(r.Context(), id, language)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleModule(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	language, ok := queryLanguage(w, r)
	if !ok {
		return
	}
	module, err := s.content.Module(r.Context(), id, language)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, module)
}

func (s *Server) handleModuleQuestions(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	language, ok := queryLanguage(w, r)
	if !ok {
		return
	}
	questions, err := s.content.QuizQuestions(r.Context(), id, language)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, questions)
}

type generateQuestionRequest struct {
	Language     string                  `json:"language"`
	Difficulty   int                     `json:"difficulty"`
	QuestionType assessment.QuestionType `json:"questionType"`
}

func (s *Server) handleGenerateQuestion(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req generateQuestionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	language, err := lang.ParseOrDefault(req.Language)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid language code")
		return
	}
	if req.Difficulty == 0 {
		req.Difficulty = 1
	}
	if req.Difficulty < 1 || req.Difficulty > 3 {
		writeError(w, http.StatusBadRequest, "difficulty must be between 1 and 3")
		return
	}
	if req.QuestionType != "" && !req.QuestionType.Valid() {
		writeError(w, http.StatusBadRequest, "invalid question type")
		return
	}

	question, err := s.content.GenerateQuestion(r.Context(), id, language, req.Difficulty, req.QuestionType)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

type summarizeRequest struct {
	Language     string   `json:"language"`
	SectionStart *float64 `json:"sectionStart"`
	SectionEnd   *float64 `json:"sectionEnd"`
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req summarizeRequest
	if !decodeBody(w, r, &req) {
		return
	}
	language, err := lang.ParseOrDefault(req.Language)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid language code")
		return
	}

	var section *content.Section
	if req.SectionStart != nil || req.SectionEnd != nil {
		section = &content.Section{End: math.Inf(1)}
		if req.SectionStart != nil {
			section.Start = *req.SectionStart
		}
		if req.SectionEnd != nil {
			section.End = *req.SectionEnd
		}
		if section.End <= section.Start {
			writeError(w, http.StatusBadRequest, "sectionEnd must be after sectionStart")
			return
		}
	}

	summary, err := s.content.Summarize(r.Context(), id, language, section)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type quizFeedbackRequest struct {
	Question      string `json:"question"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	Context       string `json:"context"`
	Language      string `json:"language"`
}

func (s *Server) handleQuizFeedback(w http.ResponseWriter, r *http.Request) {
	var req quizFeedbackRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Question == "" || req.UserAnswer == "" {
		writeError(w, http.StatusBadRequest, "question and userAnswer are required")
		return
	}
	language, err := lang.ParseOrDefault(req.Language)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid language code")
		return
	}

	feedback := s.feedback.GenerateFeedback(r.Context(), assessment.FeedbackRequest{
		Question:      req.Question,
		UserAnswer:    req.UserAnswer,
		CorrectAnswer: req.CorrectAnswer,
		Context:       req.Context,
		Language:      language,
	})
	writeJSON(w, http.StatusOK, feedback)
}

// quizCreditHours is the weekly study time credited for a correct answer.
const quizCreditHours = 0.1

type quizAnswerRequest struct {
	UserID         int64 `json:"userId"`
	QuestionID     int64 `json:"questionId"`
	SelectedOption int   `json:"selectedOption"`
}

type quizAnswerResponse struct {
	IsCorrect          bool   `json:"isCorrect"`
	CorrectOptionIndex int    `json:"correctOptionIndex"`
	Explanation        string `json:"explanation"`
}

func (s *Server) handleQuizAnswer(w http.ResponseWriter, r *http.Request) {
	var req quizAnswerRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID <= 0 || req.QuestionID <= 0 {
		writeError(w, http.StatusBadRequest, "userId and questionId are required")
		return
	}

	question, err := s.store.QuizQuestion(r.Context(), req.QuestionID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	isCorrect := question.CorrectOptionIndex == req.SelectedOption
	if _, err := s.store.SaveQuizResult(r.Context(), store.UserQuizResult{
		UserID:         req.UserID,
		QuestionID:     req.QuestionID,
		SelectedOption: req.SelectedOption,
		IsCorrect:      isCorrect,
		AttemptedAt:    time.Now().UTC(),
	}); err != nil {
		writeStoreError(w, err)
		return
	}

	if isCorrect {
		if err := s.creditQuizProgress(r, req.UserID, question.ModuleID); err != nil {
			writeStoreError(w, err)
			return
		}
	}

	writeJSON(w, http.StatusOK, quizAnswerResponse{
		IsCorrect:          isCorrect,
		CorrectOptionIndex: question.CorrectOptionIndex,
		Explanation:        question.Explanation,
	})
}

// creditQuizProgress adds the quiz credit to the user's progress row for the
// module, creating one if needed.
func (s *Server) creditQuizProgress(r *http.Request, userID, moduleID int64) error {
	module, err := s.store.Module(r.Context(), moduleID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}

	rows, err := s.store.UserProgress(r.Context(), userID, module.CourseID)
	if err != nil {
		return err
	}
	for _, row := range rows {
		if row.ModuleID == moduleID {
			row.WeeklyHoursSpent += quizCreditHours
			return s.store.UpdateUserProgress(r.Context(), row)
		}
	}

	_, err = s.store.CreateUserProgress(r.Context(), store.UserProgress{
		UserID:           userID,
		CourseID:         module.CourseID,
		ModuleID:         moduleID,
		WeeklyHoursSpent: quizCreditHours,
	})
	return err
}

type progressUpdateRequest struct {
	UserID       int64    `json:"userId"`
	CourseID     int64    `json:"courseId"`
	ModuleID     int64    `json:"moduleId"`
	LastPosition int      `json:"lastPosition"`
	Completed    *bool    `json:"completed"`
	TimeSpent    *float64 `json:"timeSpent"` // minutes spent this session
}

func (s *Server) handleProgressUpdate(w http.ResponseWriter, r *http.Request) {
	var req progressUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID <= 0 || req.CourseID <= 0 || req.ModuleID <= 0 {
		writeError(w, http.StatusBadRequest, "userId, courseId and moduleId are required")
		return
	}

	additionalHours := 0.0
	if req.TimeSpent != nil {
		additionalHours = *req.TimeSpent / 60
	}

	rows, err := s.store.UserProgress(r.Context(), req.UserID, req.CourseID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	for _, row := range rows {
		if row.ModuleID != req.ModuleID {
			continue
		}
		row.LastPosition = req.LastPosition
		row.WeeklyHoursSpent += additionalHours
		if req.Completed != nil {
			row.Completed = *req.Completed
			if *req.Completed && row.CompletedAt == nil {
				now := time.Now().UTC()
				row.CompletedAt = &now
			}
		}
		if err := s.store.UpdateUserProgress(r.Context(), row); err != nil {
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, row)
		return
	}

	created := store.UserProgress{
		UserID:           req.UserID,
		CourseID:         req.CourseID,
		ModuleID:         req.ModuleID,
		LastPosition:     req.LastPosition,
		WeeklyHoursSpent: additionalHours,
	}
	if req.Completed != nil && *req.Completed {
		now := time.Now().UTC()
		created.Completed = true
		created.CompletedAt = &now
	}
	created, err = s.store.CreateUserProgress(r.Context(), created)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, created)
}

func (s *Server) handleUserProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r)
	if !ok {
		return
	}
	var courseID int64
	if raw := r.URL.Query().Get("course"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid course id")
			return
		}
		courseID = parsed
	}
	rows, err := s.store.UserProgress(r.Context(), userID, courseID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

type weeklyProgressResponse struct {
	CurrentHours float64 `json:"currentHours"`
	GoalHours    int     `json:"goalHours"`
	Percentage   int     `json:"percentage"`
}

func (s *Server) handleWeeklyProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r)
	if !ok {
		return
	}
	user, err := s.store.User(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	hours, err := s.store.WeeklyHours(r.Context(), userID)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	goal := user.WeeklyGoalHours
	if goal <= 0 {
		goal = 4
	}
	percentage := int(math.Min(100, math.Round(hours/float64(goal)*100)))

	writeJSON(w, http.StatusOK, weeklyProgressResponse{
		CurrentHours: hours,
		GoalHours:    goal,
		Percentage:   percentage,
	})
}

func (s *Server) handleLearningPaths(w http.ResponseWriter, r *http.Request) {
	language, ok := queryLanguage(w, r)
	if !ok {
		return
	}
	paths, err := s.content.LearningPaths(r.Context(), language)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, paths)
}

func (s *Server) handleLearningPathProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	userID, err := strconv.ParseInt(r.URL.Query().Get("user"), 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "user query parameter is required")
		return
	}
	progress, err := s.store.LearningPathProgress(r.Context(), userID, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"progress": progress})
}

func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	language, ok := queryLanguage(w, r)
	if !ok {
		return
	}
	userID, err := strconv.ParseInt(r.URL.Query().Get("user"), 10, 64)
	if err != nil || userID <= 0 {
		writeError(w, http.StatusBadRequest, "user query parameter is required")
		return
	}
	limit := 3
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = parsed
	}

	courses, err := s.content.Recommendations(r.Context(), userID, limit, language)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, courses)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// queryLanguage parses the language query parameter, defaulting to English.
func queryLanguage(w http.ResponseWriter, r *http.Request) (lang.Code, bool) {
	language, err := lang.ParseOrDefault(r.URL.Query().Get("language"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid language code")
		return "", false
	}
	return language, true
}

// pathID parses the {id} path parameter.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json body")
		return false
	}
	return true
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{
		"error": msg,
	})
}
