package cache

import (
	"context"
	"fmt"
	"time"

	"bookmeet-api/core/constants"
	"bookmeet-api/core/logger"

	"github.com/redis/go-redis/v9"
)

// Cache wraps the redis operations the modules need: short-lived caching of
// resolved slot lists and login attempt throttling.
type Cache interface {
	GetSlots(ctx context.Context, key string) (string, bool, error)
	SetSlots(ctx context.Context, key string, payload string) error
	InvalidateSlots(ctx context.Context, pattern string) error

	IncrementLoginAttempt(ctx context.Context, key string) error
	LoginAttempts(ctx context.Context, key string) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	Del(ctx context.Context, key string) error

	Ping(ctx context.Context) error
	Close() error
}

type CacheConfig struct {
	Addr     string
	Password string
	DB       int
}

type redisCache struct {
	client *redis.Client
}

func NewCache(cfg CacheConfig) (Cache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	logger.Info("Redis cache initialized", "addr", cfg.Addr, "db", cfg.DB)
	return &redisCache{client: client}, nil
}

// SlotsKey builds the cache key for a resolved slot list.
func SlotsKey(slug string, date string) string {
	return fmt.Sprintf("slots:%s:%s", slug, date)
}

// LoginKey builds the throttle key for a login source.
func LoginKey(identifier string) string {
	return fmt.Sprintf("login_attempts:%s", identifier)
}

func (c *redisCache) GetSlots(ctx context.Context, key string) (string, bool, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (c *redisCache) SetSlots(ctx context.Context, key string, payload string) error {
	return c.client.Set(ctx, key, payload, constants.SlotCacheTTL).Err()
}

// InvalidateSlots deletes every cached slot list matching the pattern, e.g.
// "slots:intro-call:*" after a booking or "slots:*" after an availability save.
func (c *redisCache) InvalidateSlots(ctx context.Context, pattern string) error {
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (c *redisCache) IncrementLoginAttempt(ctx context.Context, key string) error {
	return c.client.Incr(ctx, key).Err()
}

func (c *redisCache) LoginAttempts(ctx context.Context, key string) (int64, error) {
	val, err := c.client.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}

func (c *redisCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Expire(ctx, key, ttl).Err()
}

func (c *redisCache) Del(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}

func (c *redisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Close() error {
	return c.client.Close()
}
