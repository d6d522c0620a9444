package translation

import (
	"sync"
	"time"

	"github.com/globalacademy/platform/internal/lang"
)

// CachedTranslation is one cache entry. Identity is the
// (SourceText, SourceLanguage, TargetLanguage) tuple.
type CachedTranslation struct {
	SourceText     string
	SourceLanguage lang.Code
	TargetLanguage lang.Code
	TranslatedText string
	Timestamp      time.Time
}

const (
	// DefaultCacheTTL is how long a translation stays valid.
	DefaultCacheTTL = 30 * 24 * time.Hour
	// DefaultCacheMaxEntries triggers a trim when exceeded.
	DefaultCacheMaxEntries = 1000
	// DefaultCacheTrimTo is the population kept after a trim.
	DefaultCacheTrimTo = 500
)

// Cache holds translated strings for the lifetime of the process. Entries
// expire after the TTL; when the population grows past maxEntries the oldest
// entries are dropped until trimTo remain. Insertion order, not access order,
// decides what survives.
type Cache struct {
	mu         sync.Mutex
	entries    []CachedTranslation
	ttl        time.Duration
	maxEntries int
	trimTo     int

	now func() time.Time // injectable clock for tests
}

// NewCache creates a cache with the given bounds. Non-positive arguments fall
// back to the defaults.
func NewCache(ttl time.Duration, maxEntries, trimTo int) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if maxEntries <= 0 {
		maxEntries = DefaultCacheMaxEntries
	}
	if trimTo <= 0 || trimTo > maxEntries {
		trimTo = DefaultCacheTrimTo
	}
	return &Cache{
		ttl:        ttl,
		maxEntries: maxEntries,
		trimTo:     trimTo,
		now:        time.Now,
	}
}

// Lookup returns the cached translation for an exact text and language pair
// match. Expired entries are evicted before the scan.
func (c *Cache) Lookup(text string, source, target lang.Code) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.evictExpiredLocked()

	for _, entry := range c.entries {
		if entry.SourceText == text && entry.SourceLanguage == source && entry.TargetLanguage == target {
			return entry.TranslatedText, true
		}
	}
	return "", false
}

// Store appends an entry, stamping it with the current time, then trims the
// oldest entries if the population crossed the maximum.
func (c *Cache) Store(entry CachedTranslation) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry.Timestamp.IsZero() {
		entry.Timestamp = c.now()
	}
	c.entries = append(c.entries, entry)

	if len(c.entries) > c.maxEntries {
		// Entries are appended in arrival order, so the slice is already
		// oldest-first; keep the newest trimTo.
		c.entries = append([]CachedTranslation(nil), c.entries[len(c.entries)-c.trimTo:]...)
	}
}

// EvictExpired drops all entries older than the TTL.
func (c *Cache) EvictExpired() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictExpiredLocked()
}

func (c *Cache) evictExpiredLocked() {
	cutoff := c.now().Add(-c.ttl)
	kept := c.entries[:0]
	for _, entry := range c.entries {
		if entry.Timestamp.After(cutoff) {
			kept = append(kept, entry)
		}
	}
	c.entries = kept
}

// Len reports the current population.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
