package application

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"strconv"
	"sync"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
	"github.com/dallyp22/Scheduler-VS/pkg/metrics"
)

// MatrixCache holds built matrices keyed by the fingerprint of the SKU set
// they were built from. Any SKU upsert or recorded changeover invalidates it.
// Each invalidation starts a new generation; a matrix built during an older
// generation is never stored.
type MatrixCache struct {
	mu         sync.RWMutex
	entries    map[string]*domain.ChangeoverMatrix
	generation uint64
	metrics    *metrics.Metrics
}

// NewMatrixCache creates an empty cache
func NewMatrixCache(m *metrics.Metrics) *MatrixCache {
	return &MatrixCache{
		entries: make(map[string]*domain.ChangeoverMatrix),
		metrics: m,
	}
}

// MatrixFingerprint derives the cache key of a SKU set from the IDs and
// versions of its SKUs and the variance seed. Input order does not matter.
func MatrixFingerprint(skus []domain.SKU, seed *int64) string {
	parts := make([]string, len(skus))
	for i, s := range skus {
		parts[i] = s.ID + "@" + strconv.Itoa(s.Version)
	}
	slices.Sort(parts)

	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	if seed != nil {
		h.Write([]byte("seed=" + strconv.FormatInt(*seed, 10)))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached matrix for a fingerprint
func (c *MatrixCache) Get(key string) (*domain.ChangeoverMatrix, bool) {
	c.mu.RLock()
	m, ok := c.entries[key]
	c.mu.RUnlock()

	if c.metrics != nil {
		c.metrics.RecordMatrixLookup(ok)
	}
	return m, ok
}

// Generation returns the current invalidation generation. Read it before
// building a matrix and hand it to Put.
func (c *MatrixCache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation
}

// Put stores a matrix under a fingerprint if no invalidation happened since
// generation was read. It reports whether the matrix was stored.
func (c *MatrixCache) Put(key string, m *domain.ChangeoverMatrix, generation uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return false
	}
	c.entries[key] = m
	return true
}

// Invalidate drops every cached matrix and starts a new generation
func (c *MatrixCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	c.generation++
}

// Len returns the number of cached matrices
func (c *MatrixCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
