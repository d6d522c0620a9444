package translation

import (
	"context"
	"fmt"
	"strings"

	"github.com/globalacademy/platform/internal/lang"
)

// Backend translates a single piece of text between two supported languages.
// Implementations are expected to be safe for concurrent use.
type Backend interface {
	Translate(ctx context.Context, text string, source, target lang.Code) (string, error)
}

// StaticBackend is the deterministic reference backend: a lookup table of
// known strings, tagging everything else with the target language code. It
// stands in for a real machine-translation provider in development and tests.
type StaticBackend struct {
	table map[string]map[lang.Code]string
}

// NewStaticBackend builds the backend with the demo phrase table.
func NewStaticBackend() *StaticBackend {
	return &StaticBackend{table: demoTranslations}
}

func (b *StaticBackend) Translate(_ context.Context, text string, _, target lang.Code) (string, error) {
	if byLang, ok := b.table[text]; ok {
		if translated, ok := byLang[target]; ok {
			return translated, nil
		}
	}
	return fmt.Sprintf("[%s] %s", target, text), nil
}

var demoTranslations = map[string]map[lang.Code]string{
	"Welcome to Introduction to AI": {
		lang.English: "Welcome to Introduction to AI",
		lang.Spanish: "Bienvenido a Introducción a la IA",
		lang.French:  "Bienvenue à l'Introduction à l'IA",
		lang.Chinese: "欢迎来到人工智能介绍",
		lang.Russian: "Добро пожаловать в Введение в ИИ",
	},
	"Machine Learning Basics": {
		lang.English: "Machine Learning Basics",
		lang.Spanish: "Fundamentos de Aprendizaje Automático",
		lang.French:  "Bases de l'Apprentissage Automatique",
		lang.Chinese: "机器学习基础",
		lang.Russian: "Основы Машинного Обучения",
	},
	"Artificial Intelligence": {
		lang.English: "Artificial Intelligence",
		lang.Spanish: "Inteligencia Artificial",
		lang.French:  "Intelligence Artificielle",
		lang.Chinese: "人工智能",
		lang.Russian: "Искусственный Интеллект",
	},
	"Introduction to AI": {
		lang.English: "Introduction to AI",
		lang.Spanish: "Introducción a la IA",
		lang.French:  "Introduction à l'IA",
		lang.Chinese: "人工智能简介",
		lang.Russian: "Введение в ИИ",
	},
}

// chatCompleter is the slice of the LLM client the backend needs.
type chatCompleter interface {
	SimpleChat(ctx context.Context, prompt string, systemPrompt string) (string, error)
}

// LLMBackend translates through the chat-completions client. Used when a
// configured deployment prefers model translations over the static table.
type LLMBackend struct {
	chat chatCompleter
}

// NewLLMBackend wraps a chat client as a translation backend.
func NewLLMBackend(chat chatCompleter) *LLMBackend {
	return &LLMBackend{chat: chat}
}

func (b *LLMBackend) Translate(ctx context.Context, text string, source, target lang.Code) (string, error) {
	var prompt strings.Builder
	prompt.WriteString("You are a professional translator for an e-learning platform. ")
	prompt.WriteString(fmt.Sprintf("Translate course text from %s to %s. ", source.SelfName(), target.SelfName()))
	prompt.WriteString("Keep the register educational and natural. ")
	prompt.WriteString("Return ONLY the translated text with no explanations, notes, or quotation marks.")

	translated, err := b.chat.SimpleChat(ctx, text, prompt.String())
	if err != nil {
		return "", fmt.Errorf("llm translation failed: %w", err)
	}

	translated = strings.TrimSpace(translated)
	if translated == "" {
		return "", fmt.Errorf("llm translation returned empty text")
	}
	return translated, nil
}
