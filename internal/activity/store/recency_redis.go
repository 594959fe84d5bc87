package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis key prefix for per-user recency markers.
const recencyKeyPrefix = "practice:last:"

// RedisRecencyStore keeps the per-user last-practiced marker in Redis so it
// is shared across instances. This replaces any notion of an in-process
// "currently recording" flag: concurrent inserts from two devices simply both
// touch the marker.
type RedisRecencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisRecency constructs a Redis-backed recency store.
func NewRedisRecency(client *redis.Client, ttl time.Duration) *RedisRecencyStore {
	return &RedisRecencyStore{client: client, ttl: ttl}
}

// Touch records that the user practiced at the given instant.
func (s *RedisRecencyStore) Touch(ctx context.Context, userID int64, at time.Time) error {
	key := fmt.Sprintf("%s%d", recencyKeyPrefix, userID)
	if err := s.client.Set(ctx, key, at.UTC().Format(time.RFC3339Nano), s.ttl).Err(); err != nil {
		return fmt.Errorf("touch recency marker: %w", err)
	}
	return nil
}

// LastPracticedAt returns the user's most recent practice instant, or nil if
// the marker is absent or expired.
func (s *RedisRecencyStore) LastPracticedAt(ctx context.Context, userID int64) (*time.Time, error) {
	key := fmt.Sprintf("%s%d", recencyKeyPrefix, userID)
	raw, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("get recency marker: %w", err)
	}
	at, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return nil, fmt.Errorf("parse recency marker: %w", err)
	}
	return &at, nil
}
