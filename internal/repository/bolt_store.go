package repository

import (
	"context"
	"encoding/binary"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"store-ledger/internal/model"
)

var collectionsBucket = []byte("collections")

const versionPrefixLen = 8

type boltCollectionStore struct {
	db *bolt.DB
}

// NewBoltCollectionStore opens (or creates) the bolt file at path
func NewBoltCollectionStore(path string, timeout time.Duration) (CollectionStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("open bolt store %s: %w", path, err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(collectionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return &boltCollectionStore{db: db}, nil
}

func (s *boltCollectionStore) Load(ctx context.Context, key string) (model.Collection, error) {
	col := model.Collection{Key: key}
	if err := ctx.Err(); err != nil {
		return col, err
	}

	err := s.db.View(func(tx *bolt.Tx) error {
		raw := tx.Bucket(collectionsBucket).Get([]byte(key))
		if raw == nil {
			return nil
		}
		version, data, err := splitValue(raw)
		if err != nil {
			return fmt.Errorf("collection %s: %w", key, err)
		}
		col.Version = version
		// bolt values are only valid inside the transaction
		col.Data = append([]byte(nil), data...)
		return nil
	})
	return col, err
}

func (s *boltCollectionStore) Save(ctx context.Context, key string, data []byte, expectedVersion uint64) (uint64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var next uint64
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(collectionsBucket)

		var current uint64
		if raw := b.Get([]byte(key)); raw != nil {
			v, _, err := splitValue(raw)
			if err != nil {
				return fmt.Errorf("collection %s: %w", key, err)
			}
			current = v
		}
		if current != expectedVersion {
			return ErrVersionConflict
		}

		next = current + 1
		value := make([]byte, versionPrefixLen+len(data))
		binary.BigEndian.PutUint64(value, next)
		copy(value[versionPrefixLen:], data)
		return b.Put([]byte(key), value)
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (s *boltCollectionStore) Close() error {
	return s.db.Close()
}

func splitValue(raw []byte) (uint64, []byte, error) {
	if len(raw) < versionPrefixLen {
		return 0, nil, fmt.Errorf("corrupt value of %d bytes", len(raw))
	}
	return binary.BigEndian.Uint64(raw[:versionPrefixLen]), raw[versionPrefixLen:], nil
}
