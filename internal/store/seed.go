package store

import (
	"context"
	"fmt"

	"github.com/globalacademy/platform/internal/lang"
)

// Seed loads the demo catalog into an empty store: one provider, three AI
// courses, modules with an English transcript (plus a persisted Spanish one
// for the first module), quiz questions and a learning path.
func Seed(ctx context.Context, s Storage) error {
	provider, err := s.CreateContentProvider(ctx, ContentProvider{
		Name:        "GlobalAcademy Originals",
		Description: "First-party course catalog",
	})
	if err != nil {
		return fmt.Errorf("seed provider: %w", err)
	}

	intro, err := s.CreateCourse(ctx, Course{
		Title:        "Introduction to AI",
		Description:  "Welcome to Introduction to AI",
		Instructor:   "Dr. Elena Vasquez",
		ThumbnailURL: "/thumbnails/intro-ai.jpg",
		ProviderID:   provider.ID,
		Rating:       5,
		RatingCount:  128,
		IsNew:        true,
	})
	if err != nil {
		return fmt.Errorf("seed course: %w", err)
	}

	ml, err := s.CreateCourse(ctx, Course{
		Title:        "Machine Learning Basics",
		Description:  "Core concepts of machine learning with hands-on examples",
		Instructor:   "Prof. James Okafor",
		ThumbnailURL: "/thumbnails/ml-basics.jpg",
		ProviderID:   provider.ID,
		Rating:       4,
		RatingCount:  86,
	})
	if err != nil {
		return fmt.Errorf("seed course: %w", err)
	}

	nn, err := s.CreateCourse(ctx, Course{
		Title:        "Neural Networks in Depth",
		Description:  "From perceptrons to deep architectures",
		Instructor:   "Dr. Mei Lin",
		ThumbnailURL: "/thumbnails/neural-nets.jpg",
		ProviderID:   provider.ID,
		Rating:       4,
		RatingCount:  52,
	})
	if err != nil {
		return fmt.Errorf("seed course: %w", err)
	}

	mod1, err := s.CreateModule(ctx, Module{
		CourseID:        intro.ID,
		Title:           "What is Artificial Intelligence?",
		Description:     "A tour of the field and its history",
		Position:        1,
		VideoURL:        "/videos/intro-ai/1.mp4",
		DurationSeconds: 540,
	})
	if err != nil {
		return fmt.Errorf("seed module: %w", err)
	}

	mod2, err := s.CreateModule(ctx, Module{
		CourseID:        intro.ID,
		Title:           "Machine Learning Basics",
		Description:     "How machines learn from data",
		Position:        2,
		VideoURL:        "/videos/intro-ai/2.mp4",
		DurationSeconds: 620,
	})
	if err != nil {
		return fmt.Errorf("seed module: %w", err)
	}

	if _, err := s.CreateModule(ctx, Module{
		CourseID:        ml.ID,
		Title:           "Supervised Learning",
		Description:     "Learning from labeled examples",
		Position:        1,
		VideoURL:        "/videos/ml-basics/1.mp4",
		DurationSeconds: 710,
	}); err != nil {
		return fmt.Errorf("seed module: %w", err)
	}

	if _, err := s.CreateTranscript(ctx, Transcript{
		ModuleID: mod1.ID,
		Language: lang.English,
		Segments: []Segment{
			{StartTime: 0, EndTime: 12, Text: "Welcome to Introduction to AI"},
			{StartTime: 12, EndTime: 31, Text: "Artificial Intelligence is the study of systems that act intelligently"},
			{StartTime: 31, EndTime: 55, Text: "In this course we will explore the foundations of the field"},
		},
	}); err != nil {
		return fmt.Errorf("seed transcript: %w", err)
	}

	// Persisted Spanish transcript for the first module; other languages are
	// produced on demand by the localization pipeline.
	if _, err := s.CreateTranscript(ctx, Transcript{
		ModuleID: mod1.ID,
		Language: lang.Spanish,
		Segments: []Segment{
			{StartTime: 0, EndTime: 12, Text: "Bienvenido a Introducción a la IA"},
			{StartTime: 12, EndTime: 31, Text: "La Inteligencia Artificial es el estudio de sistemas que actúan de forma inteligente"},
			{StartTime: 31, EndTime: 55, Text: "En este curso exploraremos los fundamentos del campo"},
		},
	}); err != nil {
		return fmt.Errorf("seed transcript: %w", err)
	}

	if _, err := s.CreateTranscript(ctx, Transcript{
		ModuleID: mod2.ID,
		Language: lang.English,
		Segments: []Segment{
			{StartTime: 0, EndTime: 18, Text: "Machine Learning Basics"},
			{StartTime: 18, EndTime: 47, Text: "Machine learning lets computers improve from experience without explicit programming"},
		},
	}); err != nil {
		return fmt.Errorf("seed transcript: %w", err)
	}

	if _, err := s.CreateQuizQuestion(ctx, QuizQuestion{
		ModuleID:     mod1.ID,
		QuestionText: "What does AI stand for?",
		Options: []string{
			"Artificial Intelligence",
			"Automated Inference",
			"Advanced Integration",
			"Algorithmic Iteration",
		},
		CorrectOptionIndex: 0,
		Explanation:        "AI is short for Artificial Intelligence.",
		Language:           lang.English,
		AppearanceTime:     60,
		Difficulty:         1,
	}); err != nil {
		return fmt.Errorf("seed question: %w", err)
	}

	if _, err := s.CreateQuizQuestion(ctx, QuizQuestion{
		ModuleID:     mod1.ID,
		QuestionText: "Which of these is a subfield of AI?",
		Options: []string{
			"Machine learning",
			"Plate tectonics",
			"Organic chemistry",
			"Medieval history",
		},
		CorrectOptionIndex: 0,
		Explanation:        "Machine learning is one of the central subfields of AI.",
		Language:           lang.English,
		AppearanceTime:     300,
		Difficulty:         1,
	}); err != nil {
		return fmt.Errorf("seed question: %w", err)
	}

	if _, err := s.CreateLearningPath(ctx, LearningPath{
		Title:       "AI Foundations",
		Description: "From zero to working neural networks",
		Icon:        "school",
		CourseIDs:   []int64{intro.ID, ml.ID, nn.ID},
	}); err != nil {
		return fmt.Errorf("seed learning path: %w", err)
	}

	if _, err := s.CreateUser(ctx, User{
		Username:          "demo",
		Password:          "demo",
		DisplayName:       "Demo Learner",
		Email:             "demo@globalacademy.example",
		PreferredLanguage: lang.English,
		WeeklyGoalHours:   4,
	}); err != nil {
		return fmt.Errorf("seed user: %w", err)
	}

	return nil
}
