package cache

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-catalog-service/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Config struct {
	Addr     string
	Password string
	DB       int
}

type RedisClient struct {
	Client *redis.Client
}

func NewRedisClient(cfg *Config) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return &RedisClient{Client: rdb}, nil
}

func (c *RedisClient) Close() error {
	return c.Client.Close()
}

// ListCache stores JSON-encoded listing pages under a common key prefix.
// Keys carry a generation number that Flush bumps, so a page read before a
// flush is never served after it. A nil *ListCache is valid and never hits,
// so callers can run without Redis.
type ListCache struct {
	rc     *RedisClient
	prefix string
	ttl    time.Duration
	logger logger.ZapLogger
}

const defaultListTTL = 30 * time.Second

func NewListCache(rc *RedisClient, prefix string, ttl time.Duration, log logger.ZapLogger) *ListCache {
	if ttl <= 0 {
		ttl = defaultListTTL
	}
	return &ListCache{
		rc:     rc,
		prefix: prefix,
		ttl:    ttl,
		logger: log,
	}
}

func (c *ListCache) generationKey() string {
	return c.prefix + "generation"
}

// Key hashes a canonical description of the query into a cache key for the
// current generation. It must be called before the query runs. An empty key
// means the generation could not be read and the result must not be cached.
func (c *ListCache) Key(ctx context.Context, canonical string) string {
	if c == nil {
		return ""
	}
	gen, err := c.rc.Client.Get(ctx, c.generationKey()).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn("list cache generation read failed", zap.Error(err))
		return ""
	}
	return fmt.Sprintf("%sg%d:%x", c.prefix, gen, md5.Sum([]byte(canonical)))
}

// Get decodes the cached value for key into dest and reports whether it did.
func (c *ListCache) Get(ctx context.Context, key string, dest any) bool {
	if c == nil || key == "" {
		return false
	}
	val, err := c.rc.Client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("list cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(val, dest); err != nil {
		c.logger.Warn("list cache entry is corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *ListCache) Set(ctx context.Context, key string, value any) {
	if c == nil || key == "" {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("list cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.rc.Client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Warn("list cache write failed", zap.String("key", key), zap.Error(err))
	}
}

// Flush starts a new generation, which makes every stored page unreachable;
// old pages expire with their TTL. It must run after a write that changes
// stock, prices, items or reservations has committed.
func (c *ListCache) Flush(ctx context.Context) {
	if c == nil {
		return
	}
	if err := c.rc.Client.Incr(ctx, c.generationKey()).Err(); err != nil {
		c.logger.Warn("list cache invalidation failed", zap.Error(err))
	}
}
