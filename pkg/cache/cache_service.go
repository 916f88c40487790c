package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"affiliate_coupons/internal/pkg/config"

	"github.com/redis/go-redis/v9"
)

// CacheService 缓存服务接口
// expiration <= 0 表示永不过期
type CacheService interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	// Add 仅在键不存在时写入；键已存在时为 no-op
	Add(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// RedisCache Redis 缓存实现
type RedisCache struct {
	client *redis.Client
	prefix string
}

// NewRedisCache 创建 Redis 缓存服务
func NewRedisCache(client *redis.Client) CacheService {
	prefix := config.GlobalConfig.Cache.Prefix
	if config.GlobalConfig.Server.Mode == "test" {
		prefix = "test:" + prefix
	}
	return &RedisCache{
		client: client,
		prefix: prefix,
	}
}

// getKey 获取完整的缓存键
func (c *RedisCache) getKey(key string) string {
	return c.prefix + key
}

// Get 获取缓存
func (c *RedisCache) Get(ctx context.Context, key string, dest interface{}) error {
	fullKey := c.getKey(key)
	val, err := c.client.Get(ctx, fullKey).Result()
	if err != nil {
		if err == redis.Nil {
			return fmt.Errorf("cache miss")
		}
		return fmt.Errorf("cache get error: %w", err)
	}

	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("cache unmarshal error: %w", err)
	}

	return nil
}

// Set 设置缓存
func (c *RedisCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	fullKey := c.getKey(key)

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if expiration < 0 {
		expiration = 0
	}
	if err := c.client.Set(ctx, fullKey, data, expiration).Err(); err != nil {
		return fmt.Errorf("cache set error: %w", err)
	}

	return nil
}

// Add 仅在键不存在时写入（SETNX 语义）
func (c *RedisCache) Add(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	fullKey := c.getKey(key)

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	if expiration < 0 {
		expiration = 0
	}
	if err := c.client.SetNX(ctx, fullKey, data, expiration).Err(); err != nil {
		return fmt.Errorf("cache add error: %w", err)
	}

	return nil
}

// Delete 删除缓存
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	fullKey := c.getKey(key)
	return c.client.Del(ctx, fullKey).Err()
}

// Exists 检查缓存是否存在
func (c *RedisCache) Exists(ctx context.Context, key string) (bool, error) {
	fullKey := c.getKey(key)
	result, err := c.client.Exists(ctx, fullKey).Result()
	return result > 0, err
}

// MemoryCache 内存缓存实现（用于开发/测试）
type MemoryCache struct {
	data map[string]*cacheItem
	mu   sync.RWMutex
}

type cacheItem struct {
	value      []byte
	expiration time.Time // 零值表示永不过期
}

func (i *cacheItem) expired() bool {
	return !i.expiration.IsZero() && time.Now().After(i.expiration)
}

// NewMemoryCache 创建内存缓存
func NewMemoryCache() CacheService {
	return &MemoryCache{
		data: make(map[string]*cacheItem),
	}
}

func (c *MemoryCache) getKey(key string) string {
	return "mem:" + key
}

func (c *MemoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.data[c.getKey(key)]
	if !exists || item.expired() {
		return fmt.Errorf("cache miss")
	}

	return json.Unmarshal(item.value, dest)
}

func (c *MemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[c.getKey(key)] = &cacheItem{
		value:      data,
		expiration: expireAt(expiration),
	}

	// 清理过期项
	c.cleanup()
	return nil
}

func (c *MemoryCache) Add(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal error: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	fullKey := c.getKey(key)
	if item, exists := c.data[fullKey]; exists && !item.expired() {
		return nil
	}

	c.data[fullKey] = &cacheItem{
		value:      data,
		expiration: expireAt(expiration),
	}
	return nil
}

func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.data, c.getKey(key))
	return nil
}

func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.data[c.getKey(key)]
	if !exists || item.expired() {
		return false, nil
	}
	return true, nil
}

func (c *MemoryCache) cleanup() {
	for key, item := range c.data {
		if item.expired() {
			delete(c.data, key)
		}
	}
}

func expireAt(expiration time.Duration) time.Time {
	if expiration <= 0 {
		return time.Time{}
	}
	return time.Now().Add(expiration)
}
