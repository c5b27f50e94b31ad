package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const DefaultTTL = 5 * time.Minute

// Entry is one cached payload and the time it was loaded.
type Entry[T any] struct {
	Payload         T
	Present         bool
	LastRefreshedAt time.Time
}

// Fresh reports whether the payload may be served at now.
func (e Entry[T]) Fresh(now time.Time, ttl time.Duration) bool {
	return e.Present && now.Sub(e.LastRefreshedAt) < ttl
}

// LoadFunc reads the resource from the backing store.
type LoadFunc[T any] func(ctx context.Context) (T, error)

// Snapshot caches a single resource as one blob.
//
// Concurrent misses are not coalesced: each caller runs its own load and the last
// write wins. A failed load leaves the previous entry untouched.
type Snapshot[T any] struct {
	name string
	ttl  time.Duration
	now  func() time.Time

	mu    sync.RWMutex
	entry Entry[T]
}

type Option func(*options)

type options struct {
	ttl time.Duration
	now func() time.Time
}

func WithTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.ttl = ttl
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func NewSnapshot[T any](name string, opts ...Option) *Snapshot[T] {
	o := options{ttl: DefaultTTL, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &Snapshot[T]{
		name: name,
		ttl:  o.ttl,
		now:  o.now,
	}
}

func (s *Snapshot[T]) Name() string {
	return s.name
}

// Entry returns a copy of the current entry.
func (s *Snapshot[T]) Entry() Entry[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.entry
}

// Get serves the cached payload while it is fresh and otherwise reloads it.
func (s *Snapshot[T]) Get(ctx context.Context, load LoadFunc[T]) (T, error) {

	now := s.now()

	s.mu.RLock()
	entry := s.entry
	s.mu.RUnlock()

	if entry.Fresh(now, s.ttl) {
		CacheHits.WithLabelValues(s.name).Inc()
		slog.Debug("Serving from cache", slog.String("resource", s.name))
		return entry.Payload, nil
	}

	CacheMisses.WithLabelValues(s.name).Inc()

	payload, err := load(ctx)
	if err != nil {
		CacheErrors.WithLabelValues(s.name).Inc()
		var zero T
		return zero, err
	}

	s.mu.Lock()
	s.entry = Entry[T]{Payload: payload, Present: true, LastRefreshedAt: now}
	s.mu.Unlock()

	CacheRefreshes.WithLabelValues(s.name).Inc()
	slog.Info("Cache refreshed", slog.String("resource", s.name))

	return payload, nil
}
