// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pdiddy/docsight/pkg/types"
)

// keyPrefix namespaces every docsight key in a shared redis database.
const keyPrefix = "docsight:"

// Redis is a Backend on a redis server, so cached results are shared across
// server instances. Keys also carry a native redis TTL.
type Redis struct {
	client *redis.Client
}

// NewRedis returns a Backend using client.
func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

// Get implements Backend.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

// Set implements Backend.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Backends hands out one Backend per cache namespace: a fresh Memory each
// time, or the shared Redis when a redis URL is configured.
type Backends struct {
	capacity int
	client   *redis.Client
}

// Open prepares backends for cfg. With a redis URL it connects and pings
// the server.
func Open(ctx context.Context, cfg types.CacheConfig) (*Backends, error) {
	b := &Backends{capacity: cfg.Capacity}
	if cfg.RedisURL == "" {
		return b, nil
	}

	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	b.client = client
	return b, nil
}

// New returns a backend for one namespace.
func (b *Backends) New() Backend {
	if b.client != nil {
		return NewRedis(b.client)
	}
	return NewMemory(b.capacity)
}

// Close releases the redis connection, if any.
func (b *Backends) Close() error {
	if b.client == nil {
		return nil
	}
	return b.client.Close()
}
