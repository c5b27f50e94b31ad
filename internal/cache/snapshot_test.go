package cache_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/safari-storefront/internal/cache"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// countingLoader returns successive integers and counts store round trips.
func countingLoader(calls *atomic.Int32) cache.LoadFunc[int] {
	return func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}
}

func TestNewSnapshot(t *testing.T) {
	s := cache.NewSnapshot[[]string]("test-new")

	assert.Equal(t, "test-new", s.Name())
	entry := s.Entry()
	assert.False(t, entry.Present, "a new snapshot must start empty")
	assert.True(t, entry.LastRefreshedAt.IsZero())
}

func TestSnapshotGet(t *testing.T) {
	ctx := t.Context()

	t.Run("Success - Second call within TTL is served from cache", func(t *testing.T) {
		// Arrange
		clock := newFakeClock()
		s := cache.NewSnapshot[int]("test-hit", cache.WithClock(clock.Now))
		var calls atomic.Int32

		// Act
		first, err1 := s.Get(ctx, countingLoader(&calls))
		clock.Advance(cache.DefaultTTL - time.Second)
		second, err2 := s.Get(ctx, countingLoader(&calls))

		// Assert
		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.Equal(t, 1, first)
		assert.Equal(t, 1, second)
		assert.Equal(t, int32(1), calls.Load(), "only one store query within TTL")
		assert.Equal(t, float64(1), testutil.ToFloat64(cache.CacheHits.WithLabelValues("test-hit")))
		assert.Equal(t, float64(1), testutil.ToFloat64(cache.CacheMisses.WithLabelValues("test-hit")))
	})

	t.Run("Success - Call at TTL reloads and moves LastRefreshedAt", func(t *testing.T) {
		// Arrange
		clock := newFakeClock()
		s := cache.NewSnapshot[int]("test-expire", cache.WithClock(clock.Now))
		var calls atomic.Int32

		_, err := s.Get(ctx, countingLoader(&calls))
		require.NoError(t, err)
		firstRefresh := s.Entry().LastRefreshedAt

		// Act
		clock.Advance(cache.DefaultTTL)
		value, err := s.Get(ctx, countingLoader(&calls))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, value)
		assert.Equal(t, int32(2), calls.Load())
		assert.Equal(t, firstRefresh.Add(cache.DefaultTTL), s.Entry().LastRefreshedAt)
		assert.Equal(t, float64(2), testutil.ToFloat64(cache.CacheRefreshes.WithLabelValues("test-expire")))
	})

	t.Run("Success - Custom TTL", func(t *testing.T) {
		clock := newFakeClock()
		s := cache.NewSnapshot[int]("test-ttl", cache.WithClock(clock.Now), cache.WithTTL(time.Second))
		var calls atomic.Int32

		_, _ = s.Get(ctx, countingLoader(&calls))
		clock.Advance(time.Second)
		_, _ = s.Get(ctx, countingLoader(&calls))

		assert.Equal(t, int32(2), calls.Load())
	})

	t.Run("Success - Empty payload is still cached", func(t *testing.T) {
		clock := newFakeClock()
		s := cache.NewSnapshot[[]string]("test-empty", cache.WithClock(clock.Now))
		var calls atomic.Int32
		load := func(context.Context) ([]string, error) {
			calls.Add(1)
			return []string{}, nil
		}

		_, _ = s.Get(ctx, load)
		_, _ = s.Get(ctx, load)

		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("Failure - Store error leaves the previous entry untouched", func(t *testing.T) {
		// Arrange
		clock := newFakeClock()
		s := cache.NewSnapshot[int]("test-error", cache.WithClock(clock.Now))
		var calls atomic.Int32

		_, err := s.Get(ctx, countingLoader(&calls))
		require.NoError(t, err)
		before := s.Entry()

		storeErr := errors.New("store unavailable")
		failing := func(context.Context) (int, error) { return 0, storeErr }

		// Act
		clock.Advance(cache.DefaultTTL + time.Minute)
		value, err := s.Get(ctx, failing)

		// Assert
		assert.ErrorIs(t, err, storeErr)
		assert.Zero(t, value)
		assert.Equal(t, before, s.Entry(), "a failed refresh must not clear or reset the entry")
		assert.Equal(t, float64(1), testutil.ToFloat64(cache.CacheErrors.WithLabelValues("test-error")))
	})

	t.Run("Failure - Failed refresh does not extend the TTL window", func(t *testing.T) {
		// Arrange
		clock := newFakeClock()
		s := cache.NewSnapshot[int]("test-no-extend", cache.WithClock(clock.Now))
		var calls atomic.Int32
		_, _ = s.Get(ctx, countingLoader(&calls))

		clock.Advance(cache.DefaultTTL)
		_, err := s.Get(ctx, func(context.Context) (int, error) { return 0, errors.New("timeout") })
		require.Error(t, err)

		// Act
		value, err := s.Get(ctx, countingLoader(&calls))

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 2, value, "the stale entry is not servable, the next call reloads")
	})

	t.Run("Success - Concurrent misses each query the store", func(t *testing.T) {
		// Arrange
		s := cache.NewSnapshot[int]("test-herd")
		var calls atomic.Int32
		var inLoad sync.WaitGroup
		inLoad.Add(2)

		load := func(context.Context) (int, error) {
			n := int(calls.Add(1))
			inLoad.Done()
			inLoad.Wait()
			return n, nil
		}

		// Act
		var wg sync.WaitGroup
		results := make([]int, 2)
		for i := range 2 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				results[i], _ = s.Get(ctx, load)
			}()
		}

		done := make(chan struct{})
		go func() {
			wg.Wait()
			close(done)
		}()

		// Assert
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatal("concurrent misses were serialised")
		}

		assert.Equal(t, int32(2), calls.Load())
		assert.ElementsMatch(t, []int{1, 2}, results)
		assert.Contains(t, []int{1, 2}, s.Entry().Payload)
	})
}
