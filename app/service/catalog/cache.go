package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"ariatravel/app/config"
	"ariatravel/app/model"

	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

const cachePrefix = "aria:destinations:"

// Cache keeps short-lived catalog snapshots in redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache returns nil when no redis url is configured.
func NewCache(cfg config.Redis) (*Cache, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	return NewCacheWithClient(redis.NewClient(opts), cfg.TTL), nil
}

func NewCacheWithClient(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

func (c *Cache) key(queryKey string) string {
	return cachePrefix + queryKey
}

func (c *Cache) Get(ctx context.Context, queryKey string) ([]model.Destination, bool) {
	data, err := c.client.Get(ctx, c.key(queryKey)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("Catalog cache read failed", "error", err)
		}
		return nil, false
	}

	var destinations []model.Destination
	if err = sonic.Unmarshal(data, &destinations); err != nil {
		slog.Warn("Catalog cache entry is malformed", "error", err)
		return nil, false
	}

	if len(destinations) == 0 {
		return nil, false
	}

	return destinations, true
}

func (c *Cache) Set(ctx context.Context, queryKey string, destinations []model.Destination) {
	data, err := sonic.Marshal(destinations)
	if err != nil {
		slog.Warn("Failed to marshal catalog snapshot", "error", err)
		return
	}

	if err = c.client.Set(ctx, c.key(queryKey), data, c.ttl).Err(); err != nil {
		slog.Warn("Catalog cache write failed", "error", err)
	}
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) Close() error {
	return c.client.Close()
}
