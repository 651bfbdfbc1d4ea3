package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/robdan25/gofundme-reimagined-relief-sub000/internal/logger"
)

// redisKey is the fixed key the JSON payload lives under. Kept deliberately
// versionless to match the sqlite store; the Snapshot decode tolerates old
// shapes.
const redisKey = "reliefnews:snapshot"

const redisTimeout = 2 * time.Second

// RedisStore shares one snapshot between instances, so only one of them
// pays for a refresh per TTL window. Staleness is judged by the Source
// wrapper, not by Redis expiry — an expired-by-TTL snapshot must still be
// servable when a refresh fails.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func (s *RedisStore) Get() (Snapshot, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	payload, err := s.client.Get(ctx, redisKey).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("redis cache read failed", "error", err)
		}
		return Snapshot{}, false
	}

	var snap Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		logger.Warn("redis cache payload unreadable, ignoring", "error", err)
		return Snapshot{}, false
	}
	return snap, true
}

func (s *RedisStore) Set(snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := s.client.Set(ctx, redisKey, payload, 0).Err(); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	return s.client.Del(ctx, redisKey).Err()
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
