// Package cache stores submit responses in Redis so a retried request
// with the same Idempotency-Key replays the first response.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrMiss = errors.New("cache miss")

type IdempotencyStore interface {
	Get(ctx context.Context, userID int64, key string) ([]byte, error)
	Put(ctx context.Context, userID int64, key string, payload []byte) error
}

type RedisIdempotency struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisIdempotency(client *redis.Client, ttl time.Duration) *RedisIdempotency {
	return &RedisIdempotency{client: client, ttl: ttl}
}

// Connect opens a client and checks it with a PING.
func Connect(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return client, nil
}

func redisKey(userID int64, key string) string {
	return "drivequiz:submit:" + strconv.FormatInt(userID, 10) + ":" + key
}

func (s *RedisIdempotency) Get(ctx context.Context, userID int64, key string) ([]byte, error) {
	b, err := s.client.Get(ctx, redisKey(userID, key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("error get submit response in cache: %w", err)
	}
	return b, nil
}

// Put stores the first response only; a concurrent duplicate keeps the
// earlier value.
func (s *RedisIdempotency) Put(ctx context.Context, userID int64, key string, payload []byte) error {
	if err := s.client.SetNX(ctx, redisKey(userID, key), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("error saving submit response to cache: %w", err)
	}
	return nil
}

// Nop never hits. It stands in when Redis is not configured.
type Nop struct{}

func (Nop) Get(context.Context, int64, string) ([]byte, error) { return nil, ErrMiss }
func (Nop) Put(context.Context, int64, string, []byte) error { return nil }
