package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/domain/shared"
	"github.com/RaymondAkiiki/property-management-webapp-sub001/internal/infrastructure/config"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient connects to Redis and verifies the connection with PING
func NewRedisClient(cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// NewLocker builds the unit locker selected by cfg.Backend.
// client may be nil unless the backend is "redis".
func NewLocker(cfg config.LockConfig, client redis.UniversalClient, logger *zap.Logger) (shared.Locker, error) {
	switch cfg.Backend {
	case "redis":
		if client == nil {
			return nil, fmt.Errorf("redis lock backend requires a redis client")
		}
		logger.Info("using Redis unit locker", zap.Duration("ttl", cfg.TTL), zap.Duration("wait", cfg.Wait))
		return NewRedisLocker(client, cfg.TTL, cfg.Wait), nil
	case "memory", "":
		logger.Warn("using in-memory unit locker; occupancy is only serialized within this process")
		return NewInMemoryLocker(cfg.Wait), nil
	default:
		return nil, fmt.Errorf("unknown lock backend %q", cfg.Backend)
	}
}
