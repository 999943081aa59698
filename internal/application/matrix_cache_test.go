package application

import (
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dallyp22/Scheduler-VS/internal/domain"
	"github.com/dallyp22/Scheduler-VS/pkg/metrics"
)

func TestMatrixFingerprint(t *testing.T) {
	skus := createTestSKUs()
	reversed := slices.Clone(skus)
	slices.Reverse(reversed)

	bumped := slices.Clone(skus)
	bumped[0].Version = 2

	seed, other := int64(1), int64(2)

	base := MatrixFingerprint(skus, nil)
	assert.Len(t, base, 64)
	assert.Equal(t, base, MatrixFingerprint(reversed, nil), "input order must not matter")
	assert.NotEqual(t, base, MatrixFingerprint(bumped, nil), "a version bump changes the key")
	assert.NotEqual(t, base, MatrixFingerprint(skus, &seed))
	assert.NotEqual(t, MatrixFingerprint(skus, &seed), MatrixFingerprint(skus, &other))
	assert.NotEqual(t, base, MatrixFingerprint(skus[:2], nil))
}

func TestMatrixCache(t *testing.T) {
	cache := NewMatrixCache(metrics.New(metrics.DefaultConfig("test")))
	m := domain.BuildMatrix(createTestSKUs(), domain.MatrixOptions{Version: "v1"})

	_, ok := cache.Get("k")
	assert.False(t, ok)

	assert.True(t, cache.Put("k", m, cache.Generation()))
	got, ok := cache.Get("k")
	assert.True(t, ok)
	assert.Same(t, m, got)
	assert.Equal(t, 1, cache.Len())

	cache.Invalidate()
	_, ok = cache.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())
}

func TestMatrixCache_StaleGenerationIsDropped(t *testing.T) {
	cache := NewMatrixCache(nil)
	stale := domain.BuildMatrix(createTestSKUs(), domain.MatrixOptions{Version: "before-feedback"})

	generation := cache.Generation()
	cache.Invalidate()

	assert.False(t, cache.Put("k", stale, generation))
	_, ok := cache.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Len())

	fresh := domain.BuildMatrix(createTestSKUs(), domain.MatrixOptions{Version: "after-feedback"})
	assert.True(t, cache.Put("k", fresh, cache.Generation()))
	got, ok := cache.Get("k")
	require.True(t, ok)
	assert.Equal(t, "after-feedback", got.Version)
}

func TestMatrixCache_Concurrent(t *testing.T) {
	cache := NewMatrixCache(nil)
	m := domain.BuildMatrix(createTestSKUs(), domain.MatrixOptions{})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%4 == 0 {
				cache.Invalidate()
				return
			}
			cache.Put("k", m, cache.Generation())
			cache.Get("k")
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, cache.Len(), 1)
}
