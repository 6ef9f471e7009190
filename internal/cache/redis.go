// Package cache bọc go-redis client thành cache JSON dùng cho dữ liệu đọc nhiều (settings tenant).
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ndip23/pressing-management-system-sub000/config"
	"github.com/redis/go-redis/v9"
)

// RedisCache cache JSON trên Redis
type RedisCache struct {
	rdb    *redis.Client
	prefix string
}

// NewRedisCache tạo cache từ redis.Options
func NewRedisCache(options redis.Options, prefix string) *RedisCache {
	return &RedisCache{rdb: redis.NewClient(&options), prefix: prefix}
}

// NewRedisCacheFromConfig tạo cache từ cấu hình, trả nil khi không cấu hình Redis
func NewRedisCacheFromConfig(cfg *config.Configuration) *RedisCache {
	if cfg == nil || !cfg.RedisConfigured() {
		return nil
	}
	return NewRedisCache(redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, "pressing:")
}

func (c *RedisCache) key(k string) string {
	return c.prefix + k
}

// GetJSON đọc key và decode vào dest. found = false khi key không tồn tại
func (c *RedisCache) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	raw, err := c.rdb.Get(ctx, c.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("redis decode %s: %w", key, err)
	}
	return true, nil
}

// SetJSON encode value và lưu với TTL
func (c *RedisCache) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis encode %s: %w", key, err)
	}
	if err := c.rdb.Set(ctx, c.key(key), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete xóa key
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	if err := c.rdb.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}

// Ping kiểm tra kết nối Redis
func (c *RedisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close đóng kết nối Redis
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
