package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"secretariat/api/internal/config"
)

func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}

// KVStore adapts the redis client to the plain key-value interface the draft
// store consumes.
type KVStore struct {
	client *redis.Client
}

func NewKVStore(client *redis.Client) *KVStore {
	return &KVStore{client: client}
}

func (s *KVStore) Set(ctx context.Context, key, value string) error {
	return s.client.Set(ctx, key, value, 0).Err()
}

func (s *KVStore) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (s *KVStore) Del(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Once sets a permanent marker key and reports whether this call created it.
// Used for one-shot events that must never fire twice.
func (s *KVStore) Once(ctx context.Context, key string) (bool, error) {
	return s.client.SetNX(ctx, key, "1", 0).Result()
}

// SetFlag caches a boolean under key for ttl.
func (s *KVStore) SetFlag(ctx context.Context, key string, value bool, ttl time.Duration) error {
	v := "0"
	if value {
		v = "1"
	}
	return s.client.Set(ctx, key, v, ttl).Err()
}

// GetFlag reads a cached boolean; ok is false when the key is absent.
func (s *KVStore) GetFlag(ctx context.Context, key string) (value bool, ok bool, err error) {
	v, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, false, nil
		}
		return false, false, err
	}
	return v == "1", true, nil
}
