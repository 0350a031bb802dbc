package analysis

import (
	"container/list"
	"sync"

	"github.com/Veraticus/qr-signal/internal/model"
)

// DefaultCacheSize is the number of payloads a Cached analyzer remembers.
const DefaultCacheSize = 256

type cacheEntry struct {
	key    string
	result model.AnalysisResult
}

// Cached memoizes an Analyzer by raw payload. Analysis is deterministic,
// so a cached result is identical to a fresh one. The least recently used
// payload is evicted once the cache is full.
type Cached struct {
	next    Analyzer
	order   *list.List
	entries map[string]*list.Element
	size    int
	hits    int
	misses  int
	mu      sync.Mutex
}

// NewCached wraps next with an LRU cache of the given size.
func NewCached(next Analyzer, size int) *Cached {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cached{
		next:    next,
		order:   list.New(),
		entries: make(map[string]*list.Element, size),
		size:    size,
	}
}

// Analyze returns the cached result for raw, computing it on a miss.
func (c *Cached) Analyze(raw string) model.AnalysisResult {
	c.mu.Lock()
	if el, ok := c.entries[raw]; ok {
		c.order.MoveToFront(el)
		c.hits++
		result := el.Value.(*cacheEntry).result
		c.mu.Unlock()
		return result
	}
	c.misses++
	c.mu.Unlock()

	result := c.next.Analyze(raw)

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[raw]; ok {
		c.order.MoveToFront(el)
		return result
	}
	c.entries[raw] = c.order.PushFront(&cacheEntry{key: raw, result: result})
	for c.order.Len() > c.size {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}

	return result
}

// Stats returns the hit and miss counters.
func (c *Cached) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of cached payloads.
func (c *Cached) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
