package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/kutrumbo/unlockapp/pkg/config"
)

// NewRedis connects to the Redis database holding the shared store. The
// client is returned only once a ping within ctx succeeds.
func NewRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	return client, nil
}
