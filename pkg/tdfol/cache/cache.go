// Package cache provides a content-addressed, bounded, expiring store for
// proof results. Keys are derived from the canonical forms of the goal and
// the axiom set, so any change to either produces a distinct key.
package cache

import (
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/cognicore/tdfol/pkg/tdfol/ast"
)

// DefaultSize and DefaultTTL apply when an option is zero.
const (
	DefaultSize = 1024
	DefaultTTL  = 10 * time.Minute
)

// Stats is a snapshot of cache counters.
type Stats struct {
	TotalRequests uint64
	Hits          uint64
	Misses        uint64
	Size          int
}

// HitRate is Hits over TotalRequests, zero when empty.
func (s Stats) HitRate() float64 {
	if s.TotalRequests == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.TotalRequests)
}

// Cache wraps an expiring LRU of proof results. Safe for concurrent use.
type Cache struct {
	mu     sync.Mutex
	lru    *expirable.LRU[string, ast.ProofResult]
	hits   uint64
	misses uint64
}

// New builds a cache holding at most size entries, each expiring after
// ttl. Zero values fall back to the defaults.
func New(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		lru: expirable.NewLRU[string, ast.ProofResult](size, nil, ttl),
	}
}

// Key derives the content address for a goal under an axiom set.
func Key(goal ast.Formula, kb *ast.KnowledgeBase) string {
	var axioms []ast.Formula
	if kb != nil {
		axioms = append(kb.Axioms(), kb.Theorems()...)
	}
	return ast.ContentKey(goal, axioms)
}

// Get returns the cached result for key, if present and unexpired.
func (c *Cache) Get(key string) (ast.ProofResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	res, ok := c.lru.Get(key)
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return res, ok
}

// Set stores a result under key, evicting the least recently used entry
// when the cache is full.
func (c *Cache) Set(key string, res ast.ProofResult) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, res)
}

// Clear drops all entries and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
	c.hits = 0
	c.misses = 0
}

// Stats snapshots the counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		TotalRequests: c.hits + c.misses,
		Hits:          c.hits,
		Misses:        c.misses,
		Size:          c.lru.Len(),
	}
}

var (
	defaultMu    sync.Mutex
	defaultCache *Cache
)

// Default returns the process-wide shared cache, creating it on first use.
func Default() *Cache {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultCache == nil {
		defaultCache = New(DefaultSize, DefaultTTL)
	}
	return defaultCache
}

// ResetDefault discards the shared cache; the next Default call creates a
// fresh one. Intended for tests.
func ResetDefault() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultCache = nil
}
