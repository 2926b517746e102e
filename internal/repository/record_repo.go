package repository

import (
	"context"
	"errors"
	"time"

	"store-ledger/internal/model"
)

// DefaultMaxRetries bounds how often a mutation is replayed after a version conflict
const DefaultMaxRetries = 3

// RecordRepository is a store-scoped collection of records kept newest first.
// Every mutation is one load, apply, save cycle against the collection's version.
type RecordRepository[R model.Record] interface {
	FindAll(ctx context.Context) ([]R, error)
	FindByScope(ctx context.Context, scope model.StoreScope) ([]R, error)
	FindByID(ctx context.Context, scope model.StoreScope, id int64) (R, error)
	Create(ctx context.Context, build func(id int64) R) (R, error)
	Update(ctx context.Context, store model.StoreID, id int64, apply func(current R) (R, error)) (R, error)
	Delete(ctx context.Context, store model.StoreID, id int64) error
	ReplaceStore(ctx context.Context, store model.StoreID, records []R) error
}

type recordRepo[R model.Record] struct {
	store      CollectionStore
	key        string
	maxRetries int
	now        func() time.Time
}

// NewRecordRepo binds a repository to one collection key
func NewRecordRepo[R model.Record](store CollectionStore, key string, maxRetries int) RecordRepository[R] {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &recordRepo[R]{store: store, key: key, maxRetries: maxRetries, now: time.Now}
}

func (r *recordRepo[R]) load(ctx context.Context) ([]R, uint64, error) {
	col, err := r.store.Load(ctx, r.key)
	if err != nil {
		return nil, 0, err
	}
	records, err := decodeRecords[R](col.Data)
	if err != nil {
		return nil, 0, err
	}
	return records, col.Version, nil
}

// mutate replays apply on a fresh read until the save wins or retries run out
func (r *recordRepo[R]) mutate(ctx context.Context, apply func([]R) ([]R, error)) error {
	for attempt := 0; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		records, version, err := r.load(ctx)
		if err != nil {
			return err
		}
		next, err := apply(records)
		if err != nil {
			return err
		}
		data, err := encodeRecords(next)
		if err != nil {
			return err
		}

		_, err = r.store.Save(ctx, r.key, data, version)
		if errors.Is(err, ErrVersionConflict) && attempt < r.maxRetries {
			continue
		}
		return err
	}
}

func (r *recordRepo[R]) FindAll(ctx context.Context) ([]R, error) {
	records, _, err := r.load(ctx)
	return records, err
}

func (r *recordRepo[R]) FindByScope(ctx context.Context, scope model.StoreScope) ([]R, error) {
	records, _, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	if scope.All() {
		return records, nil
	}
	out := make([]R, 0, len(records))
	for _, rec := range records {
		if rec.StoreRef() == scope.Store() {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *recordRepo[R]) FindByID(ctx context.Context, scope model.StoreScope, id int64) (R, error) {
	var zero R
	records, _, err := r.load(ctx)
	if err != nil {
		return zero, err
	}
	for _, rec := range records {
		if rec.RecordID() == id && scope.Includes(rec.StoreRef()) {
			return rec, nil
		}
	}
	return zero, ErrRecordNotFound
}

func (r *recordRepo[R]) Create(ctx context.Context, build func(id int64) R) (R, error) {
	var created R
	err := r.mutate(ctx, func(records []R) ([]R, error) {
		created = build(NewRecordID(records, r.now()))
		return append([]R{created}, records...), nil
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return created, nil
}

func (r *recordRepo[R]) Update(ctx context.Context, store model.StoreID, id int64, apply func(current R) (R, error)) (R, error) {
	var updated R
	err := r.mutate(ctx, func(records []R) ([]R, error) {
		for i, rec := range records {
			if rec.RecordID() != id || rec.StoreRef() != store {
				continue
			}
			next, err := apply(rec)
			if err != nil {
				return nil, err
			}
			if next.RecordID() != id || next.StoreRef() != store {
				return nil, ErrStoreMismatch
			}
			out := append([]R(nil), records...)
			out[i] = next
			updated = next
			return out, nil
		}
		return nil, ErrRecordNotFound
	})
	if err != nil {
		var zero R
		return zero, err
	}
	return updated, nil
}

func (r *recordRepo[R]) Delete(ctx context.Context, store model.StoreID, id int64) error {
	return r.mutate(ctx, func(records []R) ([]R, error) {
		out := make([]R, 0, len(records))
		found := false
		for _, rec := range records {
			if rec.RecordID() == id && rec.StoreRef() == store {
				found = true
				continue
			}
			out = append(out, rec)
		}
		if !found {
			return nil, ErrRecordNotFound
		}
		return out, nil
	})
}

// ReplaceStore drops every record of store and appends the given set
func (r *recordRepo[R]) ReplaceStore(ctx context.Context, store model.StoreID, records []R) error {
	for _, rec := range records {
		if rec.StoreRef() != store {
			return ErrStoreMismatch
		}
	}
	return r.mutate(ctx, func(current []R) ([]R, error) {
		out := make([]R, 0, len(current)+len(records))
		for _, rec := range current {
			if rec.StoreRef() != store {
				out = append(out, rec)
			}
		}
		return append(out, records...), nil
	})
}

// NewRecordID returns the creation-time clock in milliseconds, bumped past
// the highest existing id so two records created in the same millisecond
// still get distinct ids.
func NewRecordID[R model.Record](existing []R, now time.Time) int64 {
	id := now.UnixMilli()
	for _, rec := range existing {
		if rec.RecordID() >= id {
			id = rec.RecordID() + 1
		}
	}
	return id
}
