package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"store-ledger/internal/model"
)

const (
	fieldData    = "data"
	fieldVersion = "version"
)

type redisCollectionStore struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisCollectionStore keeps each collection in a hash under keyPrefix+key
func NewRedisCollectionStore(client *redis.Client, keyPrefix string) CollectionStore {
	if keyPrefix == "" {
		keyPrefix = "ledger:"
	}
	return &redisCollectionStore{client: client, keyPrefix: keyPrefix}
}

func (s *redisCollectionStore) Load(ctx context.Context, key string) (model.Collection, error) {
	return readCollection(ctx, s.client, s.keyPrefix+key, key)
}

func (s *redisCollectionStore) Save(ctx context.Context, key string, data []byte, expectedVersion uint64) (uint64, error) {
	redisKey := s.keyPrefix + key
	next := expectedVersion + 1

	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readCollection(ctx, tx, redisKey, key)
		if err != nil {
			return err
		}
		if current.Version != expectedVersion {
			return ErrVersionConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, redisKey, fieldData, data, fieldVersion, next)
			return nil
		})
		return err
	}, redisKey)

	if errors.Is(err, redis.TxFailedErr) {
		return 0, ErrVersionConflict
	}
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (s *redisCollectionStore) Close() error {
	return s.client.Close()
}

type hashReader interface {
	HMGet(ctx context.Context, key string, fields ...string) *redis.SliceCmd
}

func readCollection(ctx context.Context, c hashReader, redisKey, key string) (model.Collection, error) {
	col := model.Collection{Key: key}

	values, err := c.HMGet(ctx, redisKey, fieldData, fieldVersion).Result()
	if err != nil {
		return col, fmt.Errorf("failed to read collection %s: %w", key, err)
	}
	if len(values) != 2 || values[1] == nil {
		return col, nil
	}

	version, err := strconv.ParseUint(fmt.Sprint(values[1]), 10, 64)
	if err != nil {
		return col, fmt.Errorf("collection %s has a bad version: %w", key, err)
	}
	col.Version = version
	if data, ok := values[0].(string); ok {
		col.Data = []byte(data)
	}
	return col, nil
}
