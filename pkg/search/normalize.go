package search

import (
	"strings"
	"sync"
)

// DefaultCacheSize bounds the normalization memo cache. Dictionary
// fields are normalized once at index build; the cache mainly absorbs
// repeated queries and gloss-mode definition lookups.
const DefaultCacheSize = 1000

const (
	cjkFirst = '一'
	cjkLast  = '鿿'
)

// Normalize strips every rune outside ASCII letters and the CJK Unified
// Ideographs block, lowercasing the letters that remain. It is pure and
// idempotent; every other character (digits, punctuation, whitespace,
// tone-marked vowels, other scripts) is deleted.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r + ('a' - 'A'))
		case r >= cjkFirst && r <= cjkLast:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Normalizer memoizes Normalize behind a bounded LRU cache so repeated
// queries and gloss scans skip recomputation. Safe for concurrent use.
type Normalizer struct {
	mu       sync.Mutex
	capacity int
	cached   map[string]string
	lastUsed map[string]int64
	clock    int64
}

// NewNormalizer creates a Normalizer holding at most capacity entries.
// Non-positive capacities fall back to DefaultCacheSize.
func NewNormalizer(capacity int) *Normalizer {
	if capacity <= 0 {
		capacity = DefaultCacheSize
	}
	return &Normalizer{
		capacity: capacity,
		cached:   make(map[string]string, capacity),
		lastUsed: make(map[string]int64, capacity),
	}
}

// Normalize returns the canonical form of s, serving repeated inputs
// from the cache.
func (n *Normalizer) Normalize(s string) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	if out, ok := n.cached[s]; ok {
		n.clock++
		n.lastUsed[s] = n.clock
		return out
	}

	out := Normalize(s)
	if len(n.cached) >= n.capacity {
		n.evictLRU()
	}
	n.clock++
	n.cached[s] = out
	n.lastUsed[s] = n.clock
	return out
}

// Len reports how many inputs are currently cached.
func (n *Normalizer) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.cached)
}

// evictLRU drops the least recently used entry. Callers hold n.mu.
func (n *Normalizer) evictLRU() {
	var oldest string
	var oldestTime int64 = 9223372036854775807

	for s, used := range n.lastUsed {
		if used < oldestTime {
			oldestTime = used
			oldest = s
		}
	}
	delete(n.cached, oldest)
	delete(n.lastUsed, oldest)
}
