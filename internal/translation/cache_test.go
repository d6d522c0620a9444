package translation

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/globalacademy/platform/internal/lang"
)

func TestCacheLookupExactMatch(t *testing.T) {
	cache := NewCache(0, 0, 0)
	cache.Store(CachedTranslation{
		SourceText:     "Hello",
		SourceLanguage: lang.English,
		TargetLanguage: lang.Spanish,
		TranslatedText: "Hola",
	})

	got, ok := cache.Lookup("Hello", lang.English, lang.Spanish)
	require.True(t, ok)
	assert.Equal(t, "Hola", got)

	// No fuzzy matching: different text, case, or language pair all miss.
	_, ok = cache.Lookup("hello", lang.English, lang.Spanish)
	assert.False(t, ok)
	_, ok = cache.Lookup("Hello", lang.English, lang.French)
	assert.False(t, ok)
	_, ok = cache.Lookup("Hello", lang.Spanish, lang.English)
	assert.False(t, ok)
}

func TestCacheExpiry(t *testing.T) {
	cache := NewCache(30*24*time.Hour, 0, 0)

	now := time.Now()
	cache.now = func() time.Time { return now }

	cache.Store(CachedTranslation{
		SourceText:     "Hello",
		SourceLanguage: lang.English,
		TargetLanguage: lang.Spanish,
		TranslatedText: "Hola",
	})

	_, ok := cache.Lookup("Hello", lang.English, lang.Spanish)
	require.True(t, ok)

	// Jump the clock past the TTL: the entry must be evicted on lookup.
	now = now.Add(31 * 24 * time.Hour)
	_, ok = cache.Lookup("Hello", lang.English, lang.Spanish)
	assert.False(t, ok)
	assert.Zero(t, cache.Len())
}

func TestCacheTrimDropsOldest(t *testing.T) {
	cache := NewCache(time.Hour, 10, 5)

	base := time.Now()
	for i := 0; i < 11; i++ {
		cache.Store(CachedTranslation{
			SourceText:     fmt.Sprintf("text-%d", i),
			SourceLanguage: lang.English,
			TargetLanguage: lang.Spanish,
			TranslatedText: fmt.Sprintf("texto-%d", i),
			Timestamp:      base.Add(time.Duration(i) * time.Second),
		})
	}

	// Crossing the maximum trims down to the newest five.
	assert.Equal(t, 5, cache.Len())

	_, ok := cache.Lookup("text-0", lang.English, lang.Spanish)
	assert.False(t, ok, "oldest entry should have been dropped")
	_, ok = cache.Lookup("text-10", lang.English, lang.Spanish)
	assert.True(t, ok, "newest entry should survive the trim")
	_, ok = cache.Lookup("text-6", lang.English, lang.Spanish)
	assert.True(t, ok)
}

func TestCacheNeverExceedsMaximum(t *testing.T) {
	cache := NewCache(time.Hour, 10, 5)

	for i := 0; i < 100; i++ {
		cache.Store(CachedTranslation{
			SourceText:     fmt.Sprintf("text-%d", i),
			SourceLanguage: lang.English,
			TargetLanguage: lang.French,
			TranslatedText: fmt.Sprintf("texte-%d", i),
		})
		assert.LessOrEqual(t, cache.Len(), 10)
	}
}
