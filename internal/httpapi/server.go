// Package httpapi exposes the platform over HTTP: localized content,
// AI-generated questions and summaries, quiz grading and progress tracking.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/globalacademy/platform/internal/assessment"
	"github.com/globalacademy/platform/internal/content"
	"github.com/globalacademy/platform/internal/store"
)

// feedbackGenerator is the slice of the assessment generator the feedback
// endpoint needs.
type feedbackGenerator interface {
	GenerateFeedback(ctx context.Context, req assessment.FeedbackRequest) assessment.Feedback
}

type Server struct {
	store    store.Storage
	content  *content.Service
	feedback feedbackGenerator

	readHeaderTimeout time.Duration

	router *chi.Mux
	server *http.Server
}

type Option func(*Server)

// WithReadHeaderTimeout overrides the default 5s header read timeout.
func WithReadHeaderTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.readHeaderTimeout = d
	}
}

func NewServer(st store.Storage, contentSvc *content.Service, feedback feedbackGenerator, opts ...Option) *Server {
	s := &Server{
		store:             st,
		content:           contentSvc,
		feedback:          feedback,
		readHeaderTimeout: 5 * time.Second,
		router:            chi.NewRouter(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ListenAndServe(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: s.readHeaderTimeout,
	}
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func (s *Server) routes() {
	s.router.Use(recoverer)
	s.router.Use(requestID)
	s.router.Use(requestLogger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/languages", s.handleLanguages)

		r.Get("/courses", s.handleListCourses)
		r.Get("/courses/{id}", s.handleCourseDetail)

		r.Get("/modules/{id}", s.handleModule)
		r.Get("/modules/{id}/questions", s.handleModuleQuestions)
		r.Post("/modules/{id}/generate-question", s.handleGenerateQuestion)
		r.Post("/modules/{id}/summarize", s.handleSummarize)

		r.Post("/quiz/feedback", s.handleQuizFeedback)
		r.Post("/quiz/answer", s.handleQuizAnswer)

		r.Post("/progress", s.handleProgressUpdate)
		r.Get("/users/{id}/progress", s.handleUserProgress)
		r.Get("/users/{id}/weekly-progress", s.handleWeeklyProgress)

		r.Get("/learning-paths", s.handleLearningPaths)
		r.Get("/learning-paths/{id}/progress", s.handleLearningPathProgress)
		r.Get("/recommendations", s.handleRecommendations)
	})

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Method(http.MethodGet, "/metrics", promhttp.Handler())
}
