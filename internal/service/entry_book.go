package service

import (
	"context"
	"fmt"

	"store-ledger/internal/model"
	"store-ledger/internal/repository"
)

// entryBook erases the variant type of a ledger repository
type entryBook interface {
	list(ctx context.Context, scope model.StoreScope) ([]model.Entry, error)
	get(ctx context.Context, scope model.StoreScope, id int64) (model.Entry, error)
	create(ctx context.Context, entry model.Entry) (model.Entry, error)
	update(ctx context.Context, store model.StoreID, id int64, apply func(current model.Entry) (model.Entry, error)) (model.Entry, error)
	delete(ctx context.Context, store model.StoreID, id int64) error
}

type typedBook[E model.Entry] struct {
	repo repository.RecordRepository[E]
}

func newBooks(repos *repository.Repositories) map[model.Kind]entryBook {
	return map[model.Kind]entryBook{
		model.KindSale:          typedBook[model.Sale]{repos.Sales},
		model.KindIncome:        typedBook[model.Income]{repos.Income},
		model.KindCredit:        typedBook[model.Credit]{repos.Credits},
		model.KindPersonalUse:   typedBook[model.PersonalUse]{repos.PersonalUse},
		model.KindReceivedStock: typedBook[model.ReceivedStock]{repos.ReceivedStock},
	}
}

func (b typedBook[E]) list(ctx context.Context, scope model.StoreScope) ([]model.Entry, error) {
	records, err := b.repo.FindByScope(ctx, scope)
	if err != nil {
		return nil, err
	}
	entries := make([]model.Entry, len(records))
	for i, r := range records {
		entries[i] = r
	}
	return entries, nil
}

func (b typedBook[E]) get(ctx context.Context, scope model.StoreScope, id int64) (model.Entry, error) {
	record, err := b.repo.FindByID(ctx, scope, id)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (b typedBook[E]) create(ctx context.Context, entry model.Entry) (model.Entry, error) {
	typed, ok := entry.(E)
	if !ok {
		return nil, fmt.Errorf("entry of kind %s does not belong to this book", entry.Kind())
	}
	created, err := b.repo.Create(ctx, func(id int64) E {
		h := model.EntryHeader{ID: id, StoreID: typed.StoreRef(), Date: typed.EntryDate()}
		return model.WithHeader(typed, h).(E)
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (b typedBook[E]) update(ctx context.Context, store model.StoreID, id int64, apply func(current model.Entry) (model.Entry, error)) (model.Entry, error) {
	updated, err := b.repo.Update(ctx, store, id, func(current E) (E, error) {
		var zero E
		next, err := apply(current)
		if err != nil {
			return zero, err
		}
		typed, ok := next.(E)
		if !ok {
			return zero, fmt.Errorf("entry of kind %s does not belong to this book", next.Kind())
		}
		return typed, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (b typedBook[E]) delete(ctx context.Context, store model.StoreID, id int64) error {
	return b.repo.Delete(ctx, store, id)
}
