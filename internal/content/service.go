// Package content orchestrates the localization pipeline: it joins the
// catalog, the translation service and the question generator into the
// localized views the API serves.
package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/globalacademy/platform/internal/assessment"
	"github.com/globalacademy/platform/internal/lang"
	"github.com/globalacademy/platform/internal/log"
	"github.com/globalacademy/platform/internal/store"
)

// Translator renders text in a target language. Implementations never fail:
// on backend trouble they return the source text unchanged.
type Translator interface {
	Translate(ctx context.Context, text string, source, target lang.Code) string
}

// Generator produces quiz questions and summaries from transcript text.
type Generator interface {
	GenerateQuestion(ctx context.Context, req assessment.QuestionRequest) assessment.GeneratedQuestion
	SummarizeContent(ctx context.Context, req assessment.SummarizeRequest) assessment.Summary
}

// Service builds localized course content on demand. Canonical catalog text
// is English; everything else is translated per request (and served from the
// translation cache on repeats).
type Service struct {
	store      store.Storage
	translator Translator
	generator  Generator
	logger     zerolog.Logger
}

func NewService(st store.Storage, translator Translator, generator Generator) *Service {
	return &Service{
		store:      st,
		translator: translator,
		generator:  generator,
		logger:     log.WithComponent("content"),
	}
}

// Courses lists all courses localized to the target language. Courses whose
// provider no longer resolves are skipped rather than failing the listing.
func (s *Service) Courses(ctx context.Context, target lang.Code) ([]LocalizedCourse, error) {
	courses, err := s.store.Courses(ctx)
	if err != nil {
		return nil, err
	}
	providers, err := s.store.ContentProviders(ctx)
	if err != nil {
		return nil, err
	}
	providerNames := make(map[int64]string, len(providers))
	for _, p := range providers {
		providerNames[p.ID] = p.Name
	}

	out := make([]LocalizedCourse, 0, len(courses))
	for _, course := range courses {
		name, ok := providerNames[course.ProviderID]
		if !ok {
			s.logger.Warn().
				Int64("course_id", course.ID).
				Int64("provider_id", course.ProviderID).
				Msg("skipping course with unknown provider")
			continue
		}
		s.localizeCourse(ctx, &course, target)
		out = append(out, LocalizedCourse{Course: course, ProviderName: name})
	}
	return out, nil
}

// Course returns one course with its modules, localized.
func (s *Service) Course(ctx context.Context, courseID int64, target lang.Code) (LocalizedCourseDetail, error) {
	course, err := s.store.Course(ctx, courseID)
	if err != nil {
		return LocalizedCourseDetail{}, err
	}
	provider, err := s.store.ContentProvider(ctx, course.ProviderID)
	if err != nil {
		return LocalizedCourseDetail{}, fmt.Errorf("provider %d: %w", course.ProviderID, err)
	}
	modules, err := s.store.ModulesByCourse(ctx, courseID)
	if err != nil {
		return LocalizedCourseDetail{}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.localizeCourse(gctx, &course, target)
		return nil
	})
	for i := range modules {
		g.Go(func() error {
			s.localizeModule(gctx, &modules[i], target)
			return nil
		})
	}
	_ = g.Wait()

	return LocalizedCourseDetail{
		LocalizedCourse: LocalizedCourse{Course: course, ProviderName: provider.Name},
		Modules:         modules,
	}, nil
}

// Module returns one module with its transcript in the target language. A
// transcript persisted in the target language wins; otherwise the English
// transcript is translated segment by segment and served with VirtualID.
func (s *Service) Module(ctx context.Context, moduleID int64, target lang.Code) (LocalizedModule, error) {
	module, err := s.store.Module(ctx, moduleID)
	if err != nil {
		return LocalizedModule{}, err
	}

	transcript, err := s.localizedTranscript(ctx, moduleID, target)
	if err != nil {
		return LocalizedModule{}, err
	}

	s.localizeModule(ctx, &module, target)
	return LocalizedModule{Module: module, Transcript: transcript}, nil
}

func (s *Service) localizedTranscript(ctx context.Context, moduleID int64, target lang.Code) (LocalizedTranscript, error) {
	persisted, err := s.store.TranscriptByModule(ctx, moduleID, target)
	if err == nil {
		return LocalizedTranscript{ID: persisted.ID, Segments: persisted.Segments}, nil
	}
	if err != store.ErrNotFound {
		return LocalizedTranscript{}, err
	}

	english, err := s.store.TranscriptByModule(ctx, moduleID, lang.English)
	if err != nil {
		if err == store.ErrNotFound {
			return LocalizedTranscript{}, fmt.Errorf("transcript for module %d: %w", moduleID, store.ErrNotFound)
		}
		return LocalizedTranscript{}, err
	}

	segments := make([]store.Segment, len(english.Segments))
	copy(segments, english.Segments)

	g, gctx := errgroup.WithContext(ctx)
	for i := range segments {
		g.Go(func() error {
			segments[i].Text = s.translator.Translate(gctx, segments[i].Text, lang.English, target)
			return nil
		})
	}
	_ = g.Wait()

	return LocalizedTranscript{ID: VirtualID, Segments: segments}, nil
}

// QuizQuestions returns the module's questions in the target language.
// Questions persisted in the target language win; otherwise English questions
// are translated field by field, keeping their ids so grading still works. No
// questions is an empty slice, not an error.
func (s *Service) QuizQuestions(ctx context.Context, moduleID int64, target lang.Code) ([]store.QuizQuestion, error) {
	questions, err := s.store.QuizQuestionsByModule(ctx, moduleID, target)
	if err != nil {
		return nil, err
	}
	if len(questions) > 0 {
		return questions, nil
	}

	english, err := s.store.QuizQuestionsByModule(ctx, moduleID, lang.English)
	if err != nil {
		return nil, err
	}

	out := make([]store.QuizQuestion, len(english))
	g, gctx := errgroup.WithContext(ctx)
	for i := range english {
		g.Go(func() error {
			q := english[i]
			q.Language = target

			options := make([]string, len(q.Options))
			qg, qctx := errgroup.WithContext(gctx)
			qg.Go(func() error {
				q.QuestionText = s.translator.Translate(qctx, q.QuestionText, lang.English, target)
				return nil
			})
			qg.Go(func() error {
				q.Explanation = s.translator.Translate(qctx, q.Explanation, lang.English, target)
				return nil
			})
			for j := range q.Options {
				qg.Go(func() error {
					options[j] = s.translator.Translate(qctx, q.Options[j], lang.English, target)
					return nil
				})
			}
			_ = qg.Wait()

			q.Options = options
			out[i] = q
			return nil
		})
	}
	_ = g.Wait()

	return out, nil
}

// GenerateQuestion builds a fresh quiz question from the module's localized
// transcript. Short-answer generations are adapted into the multiple-choice
// shape: the sample answer is the correct option, distractors are derived
// from the key points. The result carries VirtualID and is not persisted.
func (s *Service) GenerateQuestion(ctx context.Context, moduleID int64, target lang.Code, difficulty int, questionType assessment.QuestionType) (store.QuizQuestion, error) {
	if questionType == "" {
		questionType = assessment.MultipleChoice
	}
	if difficulty <= 0 {
		difficulty = 1
	}

	module, err := s.Module(ctx, moduleID, target)
	if err != nil {
		return store.QuizQuestion{}, err
	}

	existing, err := s.QuizQuestions(ctx, moduleID, target)
	if err != nil {
		return store.QuizQuestion{}, err
	}
	previous := make([]string, 0, len(existing))
	for _, q := range existing {
		previous = append(previous, q.QuestionText)
	}

	generated := s.generator.GenerateQuestion(ctx, assessment.QuestionRequest{
		Transcript:        transcriptText(module.Transcript.Segments),
		Difficulty:        difficulty,
		PreviousQuestions: previous,
		Type:              questionType,
		Language:          target,
	})

	question := store.QuizQuestion{
		ID:           VirtualID,
		ModuleID:     moduleID,
		QuestionText: generated.QuestionText,
		Explanation:  generated.Explanation,
		Language:     target,
		Difficulty:   difficulty,
	}
	if generated.Type() == assessment.MultipleChoice {
		question.Options = generated.Options
		question.CorrectOptionIndex = generated.CorrectOptionIndex
		return question, nil
	}

	question.Options = adaptShortAnswer(generated)
	question.CorrectOptionIndex = 0
	return question, nil
}

// adaptShortAnswer converts a short-answer generation into four options with
// the sample answer first.
func adaptShortAnswer(q assessment.GeneratedQuestion) []string {
	first := "the content"
	second := first
	if len(q.KeyPoints) > 0 {
		first = q.KeyPoints[0]
		second = first
	}
	if len(q.KeyPoints) > 1 {
		second = q.KeyPoints[1]
	}
	return []string{
		q.SampleAnswer,
		fmt.Sprintf("Incorrect answer based on %s", first),
		fmt.Sprintf("Incorrect answer based on %s", second),
		"None of the above",
	}
}

// Summarize condenses the module's localized transcript. A non-nil section
// restricts the input to segments overlapping [Start, End) seconds.
func (s *Service) Summarize(ctx context.Context, moduleID int64, target lang.Code, section *Section) (assessment.Summary, error) {
	module, err := s.Module(ctx, moduleID, target)
	if err != nil {
		return assessment.Summary{}, err
	}

	segments := module.Transcript.Segments
	if section != nil {
		segments = sliceSection(segments, *section)
	}

	return s.generator.SummarizeContent(ctx, assessment.SummarizeRequest{
		Transcript: transcriptText(segments),
		Language:   target,
	}), nil
}

func sliceSection(segments []store.Segment, section Section) []store.Segment {
	out := make([]store.Segment, 0, len(segments))
	for _, seg := range segments {
		if seg.EndTime > section.Start && seg.StartTime < section.End {
			out = append(out, seg)
		}
	}
	return out
}

func transcriptText(segments []store.Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, seg.Text)
	}
	return strings.Join(parts, " ")
}

// LearningPaths lists all learning paths with localized titles and
// descriptions.
func (s *Service) LearningPaths(ctx context.Context, target lang.Code) ([]store.LearningPath, error) {
	paths, err := s.store.LearningPaths(ctx)
	if err != nil {
		return nil, err
	}
	for i := range paths {
		paths[i].Title = s.translator.Translate(ctx, paths[i].Title, lang.English, target)
		paths[i].Description = s.translator.Translate(ctx, paths[i].Description, lang.English, target)
	}
	return paths, nil
}

// Recommendations returns top-rated courses the user has not completed,
// localized.
func (s *Service) Recommendations(ctx context.Context, userID int64, limit int, target lang.Code) ([]LocalizedCourse, error) {
	courses, err := s.store.RecommendedCourses(ctx, userID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]LocalizedCourse, 0, len(courses))
	for _, course := range courses {
		provider, err := s.store.ContentProvider(ctx, course.ProviderID)
		if err != nil {
			if err == store.ErrNotFound {
				continue
			}
			return nil, err
		}
		s.localizeCourse(ctx, &course, target)
		out = append(out, LocalizedCourse{Course: course, ProviderName: provider.Name})
	}
	return out, nil
}

// Catalog text is stored in English, so localization passes the source
// explicitly instead of going through detection.
func (s *Service) localizeCourse(ctx context.Context, course *store.Course, target lang.Code) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		course.Title = s.translator.Translate(gctx, course.Title, lang.English, target)
		return nil
	})
	g.Go(func() error {
		course.Description = s.translator.Translate(gctx, course.Description, lang.English, target)
		return nil
	})
	_ = g.Wait()
}

func (s *Service) localizeModule(ctx context.Context, module *store.Module, target lang.Code) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		module.Title = s.translator.Translate(gctx, module.Title, lang.English, target)
		return nil
	})
	g.Go(func() error {
		module.Description = s.translator.Translate(gctx, module.Description, lang.English, target)
		return nil
	})
	_ = g.Wait()
}
