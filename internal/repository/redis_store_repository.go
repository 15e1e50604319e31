package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	appErrors "github.com/kutrumbo/unlockapp/pkg/errors"
)

const redisScanBatch = 500

// RedisStoreRepository exposes a Redis database as the shared string store.
type RedisStoreRepository struct {
	client *redis.Client
}

// NewRedisStoreRepository constructs a Redis-backed store.
func NewRedisStoreRepository(client *redis.Client) *RedisStoreRepository {
	return &RedisStoreRepository{client: client}
}

// GetAllKeys walks the keyspace with SCAN. SCAN may repeat keys, so the result is de-duplicated.
func (r *RedisStoreRepository) GetAllKeys(ctx context.Context) ([]string, error) {
	seen := make(map[string]struct{})
	keys := make([]string, 0)

	iter := r.client.Scan(ctx, 0, "*", redisScanBatch).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("redis scan: %w", err)
	}
	return keys, nil
}

// GetItem returns the string stored at key. A key of another Redis type is
// reported as a corrupt record rather than a store failure.
func (r *RedisStoreRepository) GetItem(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		if strings.HasPrefix(err.Error(), "WRONGTYPE") {
			return "", false, appErrors.WrapAs(appErrors.ErrRecordCorrupt, err, "redis key "+key+" is not a string")
		}
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return value, true, nil
}

// SetItem stores value at key without expiry.
func (r *RedisStoreRepository) SetItem(ctx context.Context, key, value string) error {
	if err := r.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Ping checks connectivity.
func (r *RedisStoreRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying Redis connection.
func (r *RedisStoreRepository) Close() error {
	return r.client.Close()
}
