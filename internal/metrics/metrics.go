// Package metrics exposes the platform's prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TranslationCacheHits counts translation lookups served from cache.
	TranslationCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "globalacademy_translation_cache_hits_total",
		Help: "Translation requests answered from the in-process cache.",
	})

	// TranslationCacheMisses counts lookups that fell through to the backend.
	TranslationCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "globalacademy_translation_cache_misses_total",
		Help: "Translation requests that required a backend call.",
	})

	// BackendDegradations counts swallowed backend failures by operation.
	BackendDegradations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "globalacademy_backend_degradations_total",
		Help: "Backend failures absorbed into fallback responses.",
	}, []string{"operation"})

	// QuestionsGenerated counts LLM-generated quiz questions by type.
	QuestionsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "globalacademy_questions_generated_total",
		Help: "Quiz questions produced by the generator.",
	}, []string{"type"})
)
