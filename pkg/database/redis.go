package database

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/Junior279753/geopoll-sub000/internal/config"
)

// NewUniversalRedisClient создает новый клиент Redis на основе унифицированной
// конфигурации. Поддерживает режимы single, sentinel, cluster.
func NewUniversalRedisClient(cfg config.RedisConfig) (redis.UniversalClient, error) {
	ctx := context.Background()

	addresses := cfg.Addrs
	if len(addresses) == 0 {
		if cfg.Addr != "" {
			addresses = []string{cfg.Addr}
		} else {
			return nil, fmt.Errorf("redis configuration error: Addrs or Addr must be provided")
		}
	}

	options := &redis.UniversalOptions{
		Addrs:    addresses,
		Password: cfg.Password,
		DB:       cfg.DB,
	}

	redisMode := cfg.Mode
	if redisMode == "" {
		redisMode = "single"
	}

	switch redisMode {
	case "sentinel":
		if cfg.MasterName == "" {
			return nil, fmt.Errorf("redis sentinel mode requires MasterName")
		}
		options.MasterName = cfg.MasterName
	case "cluster", "single":
		// NewUniversalClient сам определяет режим по адресам и MasterName
	default:
		return nil, fmt.Errorf("unsupported redis mode: %s", redisMode)
	}

	client := redis.NewUniversalClient(options)

	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis (mode: %s, addrs: %v): %w", redisMode, addresses, err)
	}

	return client, nil
}
