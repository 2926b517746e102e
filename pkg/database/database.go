package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"store-ledger/internal/config"
	"store-ledger/internal/logger"
	"store-ledger/internal/model"
)

// ConnectPostgres opens the postgres pool described by cfg
func ConnectPostgres(cfg config.DatabaseConfig, logLevel string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // Disables implicit prepared statements for poolers in transaction mode
	}), &gorm.Config{
		Logger:      logger.NewGormLogger(log, logger.GormLevel(logLevel), cfg.SlowThreshold),
		PrepareStmt: false,
	})
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Minute)

	log.Info("database connection established", zap.String("driver", "postgres"), zap.String("host", cfg.Host))
	return db, nil
}

// ConnectSQLite opens a single-file database. One connection keeps writers serialized.
func ConnectSQLite(path, logLevel string, log *zap.Logger) (*gorm.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.NewGormLogger(log, logger.GormLevel(logLevel), 0),
	})
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	log.Info("database connection established", zap.String("driver", "sqlite"), zap.String("path", path))
	return db, nil
}

// Migrate creates the collection table
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&model.Collection{})
}
