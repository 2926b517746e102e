package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"store-ledger/internal/config"
	"store-ledger/pkg/database"
)

// OpenCollectionStore connects the backend named by cfg.Store.Driver
func OpenCollectionStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (CollectionStore, error) {
	switch cfg.Store.Driver {
	case config.DriverBolt:
		if err := os.MkdirAll(filepath.Dir(cfg.Store.BoltPath), 0o755); err != nil {
			return nil, fmt.Errorf("create bolt dir: %w", err)
		}
		store, err := NewBoltCollectionStore(cfg.Store.BoltPath, cfg.Store.BoltTimeout)
		if err != nil {
			return nil, err
		}
		log.Info("collection store opened", zap.String("driver", "bolt"), zap.String("path", cfg.Store.BoltPath))
		return store, nil

	case config.DriverPostgres, config.DriverSQLite:
		return openGormStore(cfg, log)

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Info("collection store opened", zap.String("driver", "redis"), zap.String("addr", cfg.Redis.Addr()))
		return NewRedisCollectionStore(client, cfg.Redis.KeyPrefix), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}

func openGormStore(cfg *config.Config, log *zap.Logger) (CollectionStore, error) {
	var (
		db  *gorm.DB
		err error
	)
	if cfg.Store.Driver == config.DriverSQLite {
		db, err = database.ConnectSQLite(cfg.Store.SQLitePath, cfg.Log.Level, log)
	} else {
		db, err = database.ConnectPostgres(cfg.Database, cfg.Log.Level, log)
	}
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return NewGormCollectionStore(db), nil
}
