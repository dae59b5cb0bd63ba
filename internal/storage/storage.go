// Package storage builds the ledger Store selected by configuration: the
// in-process memory store, or postgres through gorm with an optional redis
// wallet cache in front of it.
package storage

import (
	"context"
	"fmt"

	"btcwallet/internal/config"
	"btcwallet/internal/repositories"
	"btcwallet/internal/repositories/cache"
	"btcwallet/internal/repositories/memory"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Backend is an opened Store plus the connections behind it. DB and Cache
// are nil when the backend does not use them.
type Backend struct {
	Store repositories.Store
	DB    *gorm.DB
	Cache *cache.CacheService
}

// Open connects the configured backend. Redis failing its first ping is
// not fatal: the store runs uncached and the failure is logged.
func Open(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*Backend, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		log.Info("using in-memory store")
		return &Backend{Store: memory.NewStore()}, nil
	case config.StoragePostgres:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}

	db, err := repositories.InitDB(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	b := &Backend{DB: db}

	var walletCache repositories.WalletCache
	if cfg.Redis.Enabled {
		b.Cache = openCache(ctx, cfg.Redis, log)
		if b.Cache != nil {
			walletCache = b.Cache
		}
	}

	b.Store = repositories.NewGormStore(db, walletCache)
	return b, nil
}

func openCache(ctx context.Context, cfg config.RedisConfig, log logrus.FieldLogger) *cache.CacheService {
	client := cache.NewRedisClient(&cache.RedisConfig{
		Host:     cfg.Host,
		Port:     cfg.Port,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := cache.Ping(ctx, client); err != nil {
		log.WithError(err).Warn("redis unavailable, wallet cache disabled")
		_ = client.Close()
		return nil
	}
	log.WithField("addr", client.Options().Addr).Info("redis wallet cache enabled")
	return cache.NewCacheService(client, cfg.TTL, log)
}

// HealthChecks returns one probe per connection the backend holds.
func (b *Backend) HealthChecks() map[string]func(context.Context) error {
	checks := map[string]func(context.Context) error{}
	if b.DB != nil {
		checks["database"] = func(ctx context.Context) error {
			sqlDB, err := b.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}
	}
	if b.Cache != nil {
		checks["redis"] = b.Cache.HealthCheck
	}
	return checks
}

// PoolStats reports the redis pool, or nil without a cache.
func (b *Backend) PoolStats() *redis.PoolStats {
	if b.Cache == nil {
		return nil
	}
	return b.Cache.GetStats()
}

func (b *Backend) Close() error {
	var firstErr error
	if b.DB != nil {
		if sqlDB, err := b.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				firstErr = fmt.Errorf("failed to close database connection: %w", err)
			}
		}
	}
	if b.Cache != nil {
		if err := b.Cache.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to close redis connection: %w", err)
		}
	}
	return firstErr
}
