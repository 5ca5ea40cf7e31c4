package cache

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/LearnWithSuryaa/analyzer-app/foundation/krama"
	"github.com/LearnWithSuryaa/analyzer-app/foundation/utils/stringx"
)

// ResultCache caches analysis results by normalized sentence
type ResultCache struct {
	cache *Cache
}

// NewResultCache creates a result cache
func NewResultCache(cfg Config) *ResultCache {
	return &ResultCache{cache: New(cfg)}
}

// ResultKey generates a cache key for a sentence. Sentences that differ only
// in case, commas or spacing share a key.
func ResultKey(text string) string {
	normalized := stringx.NormalizeSentence(text)
	hash := sha256.Sum256([]byte(normalized))
	return "result:" + hex.EncodeToString(hash[:16]) // Use first 16 bytes
}

// Get retrieves a cached result
func (c *ResultCache) Get(text string) (*krama.Result, bool) {
	if val, ok := c.cache.Get(ResultKey(text)); ok {
		if result, ok := val.(*krama.Result); ok {
			return result, true
		}
	}
	return nil, false
}

// Set caches a result
func (c *ResultCache) Set(text string, result *krama.Result) {
	if result == nil {
		return
	}
	c.cache.Set(ResultKey(text), result)
}

// Invalidate drops every cached result, e.g. after a lexicon reload
func (c *ResultCache) Invalidate() {
	c.cache.Clear()
}

// Stats returns cache statistics
func (c *ResultCache) Stats() Stats {
	return c.cache.Stats()
}

// Close stops background cleanup
func (c *ResultCache) Close() {
	c.cache.Close()
}
