package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the connection settings for the avatar cache.
type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type RedisAvatarCache struct {
	client *redis.Client
	prefix string
}

func NewRedisAvatarCache(cfg RedisConfig, prefix string) (*RedisAvatarCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisAvatarCacheFromClient(client, prefix), nil
}

// NewRedisAvatarCacheFromClient wraps an existing client without pinging it.
func NewRedisAvatarCacheFromClient(client *redis.Client, prefix string) *RedisAvatarCache {
	return &RedisAvatarCache{
		client: client,
		prefix: prefix,
	}
}

func (c *RedisAvatarCache) key(studentID int64) string {
	return fmt.Sprintf("%s:student:%d", c.prefix, studentID)
}

func (c *RedisAvatarCache) Get(ctx context.Context, studentID int64) (*AvatarEntry, error) {
	data, err := c.client.Get(ctx, c.key(studentID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	var entry AvatarEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cache data: %w", err)
	}

	return &entry, nil
}

func (c *RedisAvatarCache) Set(ctx context.Context, entry *AvatarEntry, ttl time.Duration) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	if err := c.client.Set(ctx, c.key(entry.StudentID), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set in redis: %w", err)
	}

	return nil
}

func (c *RedisAvatarCache) Delete(ctx context.Context, studentIDs ...int64) error {
	if len(studentIDs) == 0 {
		return nil
	}

	keys := make([]string, 0, len(studentIDs))
	for _, id := range studentIDs {
		keys = append(keys, c.key(id))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}

	return nil
}

func (c *RedisAvatarCache) Close() error {
	return c.client.Close()
}
