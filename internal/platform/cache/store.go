package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/courtsidelive/courtside/internal/platform/logging"
	"github.com/courtsidelive/courtside/internal/platform/resilience"
)

// ErrEmptyResult marks a fetch that succeeded at the transport level but
// produced a payload the source owner considers unusable.
var ErrEmptyResult = errors.New("fetch returned empty result")

// TTLFunc derives the expiry window for a freshly fetched payload, so a
// source can shorten its own refresh interval while its data is volatile.
type TTLFunc[T any] func(payload T) time.Duration

// StaticTTL returns a TTLFunc that ignores the payload.
func StaticTTL[T any](d time.Duration) TTLFunc[T] {
	return func(T) time.Duration { return d }
}

// Status reports cache freshness for operator endpoints.
type Status struct {
	Source      string    `json:"source"`
	Fresh       bool      `json:"fresh"`
	HasLastGood bool      `json:"has_last_good"`
	LastSuccess time.Time `json:"last_success"`
	ExpiresAt   time.Time `json:"expires_at"`
	LastError   string    `json:"last_error,omitempty"`
}

// Fallback wraps a single source fetch with a TTL'd slot plus a last-good
// snapshot that survives both expiry and fetch failure. One Fallback is owned
// per source; readers during an in-flight refresh are served the previous
// last-good value.
type Fallback[T any] struct {
	name    string
	ttl     TTLFunc[T]
	isEmpty func(T) bool
	logger  *logging.Logger
	flight  resilience.SingleFlight

	mu          sync.RWMutex
	value       T
	expiresAt   time.Time
	hasValue    bool
	lastGood    T
	hasLastGood bool
	lastSuccess time.Time
	lastErr     error
}

// Option configures a Fallback.
type Option[T any] func(*Fallback[T])

// WithEmptyCheck marks fetched payloads for which fn returns true as
// failures: the cache and last-good slots are left untouched.
func WithEmptyCheck[T any](fn func(T) bool) Option[T] {
	return func(f *Fallback[T]) { f.isEmpty = fn }
}

func NewFallback[T any](name string, ttl TTLFunc[T], logger *logging.Logger, opts ...Option[T]) *Fallback[T] {
	if logger == nil {
		logger = logging.Default()
	}
	f := &Fallback[T]{
		name:   name,
		ttl:    ttl,
		logger: logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Fallback[T]) Name() string { return f.name }

// GetOrFetch returns the cached value when present and unexpired; otherwise
// it runs fetch. A successful fetch rebuilds the cache entry with an expiry
// computed from the payload itself and overwrites the last-good slot. A
// failed or empty fetch leaves both slots untouched and returns the last-good
// value, which is the zero value before the first success. Concurrent misses
// share one fetch.
func (f *Fallback[T]) GetOrFetch(ctx context.Context, fetch func(context.Context) (T, error)) T {
	if v, ok := f.cached(); ok {
		return v
	}

	out, _, _ := f.flight.Do(f.name, func() (any, error) {
		if v, ok := f.cached(); ok {
			return v, nil
		}

		fetched, err := fetch(ctx)
		if err == nil && f.isEmpty != nil && f.isEmpty(fetched) {
			err = ErrEmptyResult
		}
		if err != nil {
			f.mu.Lock()
			f.lastErr = err
			last := f.lastGood
			f.mu.Unlock()
			f.logger.WarnContext(ctx, "fetch failed, serving last good value",
				"source", f.name, "error", err)
			return last, nil
		}

		ttl := f.ttl(fetched)
		now := time.Now()
		f.mu.Lock()
		f.value = fetched
		f.expiresAt = now.Add(ttl)
		f.hasValue = true
		f.lastGood = fetched
		f.hasLastGood = true
		f.lastSuccess = now
		f.lastErr = nil
		f.mu.Unlock()
		f.logger.InfoContext(ctx, "cache refreshed", "source", f.name, "ttl", ttl)
		return fetched, nil
	})

	v, ok := out.(T)
	if !ok {
		var zero T
		return zero
	}
	return v
}

// Peek returns the last-good value without triggering a fetch.
func (f *Fallback[T]) Peek() (T, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastGood, f.hasLastGood
}

func (f *Fallback[T]) Status() Status {
	f.mu.RLock()
	defer f.mu.RUnlock()

	st := Status{
		Source:      f.name,
		Fresh:       f.hasValue && time.Now().Before(f.expiresAt),
		HasLastGood: f.hasLastGood,
		LastSuccess: f.lastSuccess,
	}
	if f.hasValue {
		st.ExpiresAt = f.expiresAt
	}
	if f.lastErr != nil {
		st.LastError = f.lastErr.Error()
	}
	return st
}

func (f *Fallback[T]) cached() (T, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.hasValue && time.Now().Before(f.expiresAt) {
		return f.value, true
	}
	var zero T
	return zero, false
}
