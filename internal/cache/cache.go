// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores analysis results keyed by a SHA-256 hash of the
// exact input text. Entries expire lazily: a read compares the entry's
// storage time against an injected clock, so tests control expiry without
// sleeping.
//
// Usage Example:
//
//	c := cache.New[types.SentimentResult](cache.NewMemory(0), cache.Options{
//		Namespace: "sentiment",
//		TTL:       24 * time.Hour,
//	})
//	if r, ok := c.Get(ctx, text); ok {
//		return r
//	}
//	c.Put(ctx, text, result)
//
// Backend failures are logged and treated as misses; a cache never fails the
// analysis it serves.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"sync/atomic"
	"time"
)

// DefaultTTL is the lifetime of a cached result when none is configured.
const DefaultTTL = 24 * time.Hour

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the real wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Backend stores opaque values by key.
type Backend interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key. Backends with native expiry use ttl;
	// others may ignore it.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Options configures a Cache.
type Options struct {
	// Namespace separates caches that share a backend.
	Namespace string

	// TTL is the entry lifetime. Zero uses DefaultTTL.
	TTL time.Duration

	// Clock decides expiry. Nil uses SystemClock.
	Clock Clock

	// Logger receives backend errors. Nil uses slog.Default().
	Logger *slog.Logger
}

// Stats counts cache activity since creation.
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Writes int64 `json:"writes"`
}

// Cache is a typed, namespaced, expiring view over a Backend. It is safe
// for concurrent use when its backend is.
type Cache[T any] struct {
	backend   Backend
	namespace string
	ttl       time.Duration
	clock     Clock
	logger    *slog.Logger

	hits, misses, writes atomic.Int64
}

// New returns a Cache over backend.
func New[T any](backend Backend, opts Options) *Cache[T] {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Cache[T]{
		backend:   backend,
		namespace: opts.Namespace,
		ttl:       opts.TTL,
		clock:     opts.Clock,
		logger:    opts.Logger,
	}
}

// entry is the stored form of a cached value.
type entry[T any] struct {
	StoredAt time.Time `json:"stored_at"`
	Value    T         `json:"value"`
}

// Key returns the content hash used to key text.
func Key(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func (c *Cache[T]) key(text string) string {
	if c.namespace == "" {
		return Key(text)
	}
	return c.namespace + ":" + Key(text)
}

// Get returns the cached value for text if present and not expired.
func (c *Cache[T]) Get(ctx context.Context, text string) (T, bool) {
	var zero T
	data, ok, err := c.backend.Get(ctx, c.key(text))
	if err != nil {
		c.logger.Warn("cache read failed", "namespace", c.namespace, "error", err)
	}
	if err != nil || !ok {
		c.misses.Add(1)
		return zero, false
	}

	var e entry[T]
	if err := json.Unmarshal(data, &e); err != nil {
		c.logger.Warn("cache entry unreadable", "namespace", c.namespace, "error", err)
		c.misses.Add(1)
		return zero, false
	}
	if c.clock.Now().Sub(e.StoredAt) >= c.ttl {
		c.misses.Add(1)
		return zero, false
	}

	c.hits.Add(1)
	return e.Value, true
}

// Put stores value for text, stamped with the current clock time.
func (c *Cache[T]) Put(ctx context.Context, text string, value T) {
	data, err := json.Marshal(entry[T]{StoredAt: c.clock.Now(), Value: value})
	if err != nil {
		c.logger.Warn("cache entry not encodable", "namespace", c.namespace, "error", err)
		return
	}
	if err := c.backend.Set(ctx, c.key(text), data, c.ttl); err != nil {
		c.logger.Warn("cache write failed", "namespace", c.namespace, "error", err)
		return
	}
	c.writes.Add(1)
}

// Stats returns the hit, miss, and write counts.
func (c *Cache[T]) Stats() Stats {
	return Stats{
		Hits:   c.hits.Load(),
		Misses: c.misses.Load(),
		Writes: c.writes.Load(),
	}
}
