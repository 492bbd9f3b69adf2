package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache keeps the last good copy of each controller's collection.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) SnapshotKey(name string) string {
	return "snapshot:" + name
}

func (c *RedisCache) SaveSnapshot(ctx context.Context, name string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, c.SnapshotKey(name), payload, c.TTL).Err()
}

// LoadSnapshot decodes the stored snapshot into out. It reports false when none exists.
func (c *RedisCache) LoadSnapshot(ctx context.Context, name string, out any) (bool, error) {
	raw, err := c.Client.Get(ctx, c.SnapshotKey(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) Invalidate(ctx context.Context, name string) error {
	return c.Client.Del(ctx, c.SnapshotKey(name)).Err()
}
