package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "agroverse:session:"

// RedisStore is a Store backed by Redis keys with a TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	suffix string
}

// NewRedisStore stores values under agroverse:session:<id>:<suffix>.
func NewRedisStore(client *redis.Client, ttl time.Duration, suffix string) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, suffix: suffix}
}

func (s *RedisStore) key(id string) string {
	return keyPrefix + id + ":" + s.suffix
}

// Put overwrites the value with SET and resets its TTL.
func (s *RedisStore) Put(ctx context.Context, id string, value []byte) error {
	if err := s.client.Set(ctx, s.key(id), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, id string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get session: %w", err)
	}
	return val, true, nil
}

func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Dial parses url, connects, and retries the initial ping with exponential
// backoff until maxWait elapses.
func Dial(ctx context.Context, url string, maxWait time.Duration) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	client := redis.NewClient(opts)

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = maxWait

	err = backoff.Retry(func() error {
		return client.Ping(ctx).Err()
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	return client, nil
}
