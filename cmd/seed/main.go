package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"store-ledger/internal/catalog"
	"store-ledger/internal/config"
	"store-ledger/internal/ledger"
	"store-ledger/internal/logger"
	"store-ledger/internal/model"
	"store-ledger/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}
	zl, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		log.Fatal("Failed to create logger: ", err)
	}
	defer zl.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := repository.OpenCollectionStore(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("failed to open collection store", zap.Error(err))
	}
	defer store.Close()

	repos := repository.NewRepositories(store, cfg.Store.MaxRetries)
	if err := seed(ctx, repos, catalog.Default(), buildDemoData(time.Now()), zl); err != nil {
		zl.Fatal("seed failed", zap.Error(err))
	}
	zl.Info("demo data loaded", zap.String("driver", cfg.Store.Driver))
}

// seed replaces each store's rows with the demo rows, so running it twice is harmless
func seed(ctx context.Context, repos *repository.Repositories, cat *catalog.Catalog, data demoData, log *zap.Logger) error {
	for _, s := range cat.Stores() {
		steps := []struct {
			name string
			run  func() error
		}{
			{"sales", func() error { return replace(ctx, repos.Sales, s.ID, data.Sales) }},
			{"income", func() error { return replace(ctx, repos.Income, s.ID, data.Income) }},
			{"credits", func() error { return replace(ctx, repos.Credits, s.ID, data.Credits) }},
			{"personal use", func() error { return replace(ctx, repos.PersonalUse, s.ID, data.PersonalUse) }},
			{"received stock", func() error { return replace(ctx, repos.ReceivedStock, s.ID, data.ReceivedStock) }},
			{"inventory", func() error { return replace(ctx, repos.Inventory, s.ID, data.Inventory) }},
			{"materials", func() error { return replace(ctx, repos.Materials, s.ID, data.Materials) }},
		}
		for _, step := range steps {
			if err := step.run(); err != nil {
				log.Error("failed to seed collection", zap.String("collection", step.name), zap.String("store", string(s.ID)), zap.Error(err))
				return err
			}
		}
		log.Info("store seeded", zap.String("store", string(s.ID)))
	}
	return nil
}

func replace[R model.Record](ctx context.Context, repo repository.RecordRepository[R], store model.StoreID, rows []R) error {
	return repo.ReplaceStore(ctx, store, ledger.Scope(rows, model.ScopeOf(store)))
}
