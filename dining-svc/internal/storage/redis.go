package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"tableside/dining-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const menuCacheKey = "menu:items"

// RedisCache holds the serialized full menu.
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: client, TTL: ttl}
}

func (c *RedisCache) GetMenu(ctx context.Context) ([]domain.MenuItem, bool, error) {
	raw, err := c.Client.Get(ctx, menuCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var items []domain.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, err
	}
	return items, true, nil
}

func (c *RedisCache) SetMenu(ctx context.Context, items []domain.MenuItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.Client.Set(ctx, menuCacheKey, payload, c.TTL).Err()
}

func (c *RedisCache) InvalidateMenu(ctx context.Context) error {
	return c.Client.Del(ctx, menuCacheKey).Err()
}

// RedisMarker remembers processed webhook deliveries.
type RedisMarker struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisMarker(client *redis.Client, ttl time.Duration) *RedisMarker {
	return &RedisMarker{Client: client, TTL: ttl}
}

func (m *RedisMarker) key(id string) string {
	return "webhook:" + id
}

func (m *RedisMarker) Seen(ctx context.Context, id string) (bool, error) {
	res, err := m.Client.Exists(ctx, m.key(id)).Result()
	if err != nil {
		return false, err
	}
	return res > 0, nil
}

func (m *RedisMarker) Mark(ctx context.Context, id string) error {
	return m.Client.Set(ctx, m.key(id), "1", m.TTL).Err()
}
