package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Redis is the Store backed by a Redis instance, for deployments where
// export blobs should survive process restarts or be shared across
// replicas. Backend errors degrade to cache misses.
type Redis struct {
	rdb *redis.Client
	log zerolog.Logger
}

// NewRedis connects and validates a Redis-backed store.
func NewRedis(ctx context.Context, url string, log zerolog.Logger) (*Redis, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	log.Info().
		Str("addr", opt.Addr).
		Int("db", opt.DB).
		Msg("Redis cache connected")

	return &Redis{rdb: rdb, log: log}, nil
}

// Get returns the cached value; any backend error reads as a miss.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return nil, false
	}
	return data, true
}

// Set stores a value with the given TTL; failures are logged, not
// propagated.
func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.rdb.Set(ctx, key, value, ttl).Err(); err != nil {
		r.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

// Close releases the underlying client.
func (r *Redis) Close() error { return r.rdb.Close() }
