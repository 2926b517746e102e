package repository

import (
	"context"
	"errors"

	"store-ledger/internal/model"
)

var (
	ErrVersionConflict = errors.New("collection was modified concurrently")
	ErrRecordNotFound  = errors.New("record not found")
	ErrStoreMismatch   = errors.New("record belongs to another store")
)

// CollectionStore keeps one JSON blob per collection key behind a version token.
// Load of a missing key returns an empty collection at version 0.
// Save succeeds only when the stored version still equals expectedVersion.
type CollectionStore interface {
	Load(ctx context.Context, key string) (model.Collection, error)
	Save(ctx context.Context, key string, data []byte, expectedVersion uint64) (uint64, error)
	Close() error
}
