package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"store-ledger/internal/model"
)

type gormCollectionStore struct {
	db *gorm.DB
}

// NewGormCollectionStore keeps collections in the ledger_collections table.
// The table is created by database.Migrate.
func NewGormCollectionStore(db *gorm.DB) CollectionStore {
	return &gormCollectionStore{db}
}

func (s *gormCollectionStore) Load(ctx context.Context, key string) (model.Collection, error) {
	var col model.Collection
	err := s.db.WithContext(ctx).First(&col, "collection_key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Collection{Key: key}, nil
	}
	return col, err
}

func (s *gormCollectionStore) Save(ctx context.Context, key string, data []byte, expectedVersion uint64) (uint64, error) {
	next := expectedVersion + 1

	// First save of a key inserts; a concurrent insert makes this a no-op
	if expectedVersion == 0 {
		res := s.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&model.Collection{Key: key, Data: data, Version: next})
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected == 0 {
			return 0, ErrVersionConflict
		}
		return next, nil
	}

	res := s.db.WithContext(ctx).
		Model(&model.Collection{}).
		Where("collection_key = ? AND version = ?", key, expectedVersion).
		Updates(map[string]interface{}{
			"data":       data,
			"version":    next,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return 0, res.Error
	}
	if res.RowsAffected == 0 {
		return 0, ErrVersionConflict
	}
	return next, nil
}

func (s *gormCollectionStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
