// Package translation localizes stored course text on demand, caching results
// in-process and degrading to source-language passthrough when the backend is
// unavailable.
package translation

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/globalacademy/platform/internal/lang"
	"github.com/globalacademy/platform/internal/log"
	"github.com/globalacademy/platform/internal/metrics"
)

// Service answers translation requests from the cache first and the backend
// second. Backend failures never surface: the caller always gets usable text,
// untranslated in the worst case.
type Service struct {
	cache   *Cache
	backend Backend
	logger  zerolog.Logger
}

// NewService wires a cache and a backend into a translation service.
func NewService(cache *Cache, backend Backend) *Service {
	return &Service{
		cache:   cache,
		backend: backend,
		logger:  log.WithComponent("translation"),
	}
}

// Translate returns text in the target language. An empty source language is
// detected from the text itself. Identical source and target return the input
// untouched with no cache or backend traffic.
func (s *Service) Translate(ctx context.Context, text string, source, target lang.Code) string {
	if text == "" {
		return text
	}
	if source == "" {
		source = lang.Detect(text)
	}
	if source == target {
		return text
	}

	if cached, ok := s.cache.Lookup(text, source, target); ok {
		metrics.TranslationCacheHits.Inc()
		return cached
	}
	metrics.TranslationCacheMisses.Inc()

	translated, err := s.backend.Translate(ctx, text, source, target)
	if err != nil {
		// Untranslated text beats an error page. Log and move on.
		metrics.BackendDegradations.WithLabelValues("translate").Inc()
		s.logger.Warn().Err(err).
			Str("source", string(source)).
			Str("target", string(target)).
			Msg("translation backend failed, returning source text")
		return text
	}

	s.cache.Store(CachedTranslation{
		SourceText:     text,
		SourceLanguage: source,
		TargetLanguage: target,
		TranslatedText: translated,
	})
	return translated
}

// EvictExpired drops expired cache entries. Called from the maintenance cron
// in addition to the opportunistic eviction inside lookups.
func (s *Service) EvictExpired() {
	s.cache.EvictExpired()
}
