package ratelimit

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the limiter with Redis so multiple instances share
// one attempt counter. Records live in a hash with a TTL of one window.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(client *redis.Client, keyPrefix string) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = "loginlimit:"
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix}
}

func (s *RedisStore) key(id string) string {
	return s.keyPrefix + id
}

// Get returns the attempt record for id, or nil when absent.
func (s *RedisStore) Get(ctx context.Context, id string) (*Attempt, error) {
	vals, err := s.client.HGetAll(ctx, s.key(id)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read attempt record: %w", err)
	}
	if len(vals) == 0 {
		return nil, nil
	}

	count, err := strconv.Atoi(vals["count"])
	if err != nil {
		return nil, fmt.Errorf("malformed attempt count: %w", err)
	}
	lastMs, err := strconv.ParseInt(vals["last_attempt_ms"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("malformed attempt timestamp: %w", err)
	}

	return &Attempt{
		Count:       count,
		LastAttempt: time.UnixMilli(lastMs),
	}, nil
}

// Set stores the attempt record for id with the given TTL.
func (s *RedisStore) Set(ctx context.Context, id string, a Attempt, ttl time.Duration) error {
	key := s.key(id)
	if err := s.client.HSet(ctx, key,
		"count", strconv.Itoa(a.Count),
		"last_attempt_ms", strconv.FormatInt(a.LastAttempt.UnixMilli(), 10),
	).Err(); err != nil {
		return fmt.Errorf("failed to write attempt record: %w", err)
	}
	if err := s.client.Expire(ctx, key, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set attempt record ttl: %w", err)
	}
	return nil
}

// Delete removes the attempt record for id.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete attempt record: %w", err)
	}
	return nil
}
