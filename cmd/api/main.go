package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"store-ledger/internal/catalog"
	"store-ledger/internal/config"
	"store-ledger/internal/handler"
	"store-ledger/internal/logger"
	"store-ledger/internal/repository"
	"store-ledger/internal/service"
	"store-ledger/internal/ws"
	"store-ledger/pkg/jwt"

	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// 1. Load config (.env, config.toml, LEDGER_* env)
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	// 2. Logger
	zl, err := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output})
	if err != nil {
		log.Fatal("Failed to create logger: ", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Collection store
	store, err := repository.OpenCollectionStore(ctx, cfg, zl)
	if err != nil {
		zl.Fatal("failed to open collection store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer store.Close()

	// 4. WebSocket hub
	wsHub := ws.NewHub(zl)
	go wsHub.Run(ctx)

	// 5. Dependency Injection (Wiring Layers)
	cat := catalog.Default()
	repos := repository.NewRepositories(store, cfg.Store.MaxRetries)

	ledgerService := service.NewLedgerService(repos, cat, wsHub, zl)
	invService := service.NewInventoryService(repos, cat, wsHub, zl)
	dashService := service.NewDashboardService(repos, cat, zl)

	issuer, err := jwt.NewIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		zl.Fatal("failed to create token issuer", zap.Error(err))
	}

	// 6. Setup Fiber
	app := handler.NewApp(cfg.App.Name)
	app.Use(recover.New())
	app.Use(logger.FiberMiddleware(zl.Named("http")))
	app.Use(cors.New())

	handler.SetupRoutes(app, handler.Handlers{
		Catalog:   handler.NewCatalogHandler(cat),
		Ledger:    handler.NewLedgerHandler(ledgerService, dashService, cat),
		Inventory: handler.NewInventoryHandler(invService),
		Dashboard: handler.NewDashboardHandler(dashService),
	}, issuer, wsHub)

	// 7. Graceful Shutdown
	go func() {
		addr := ":" + cfg.App.Port
		zl.Info("server listening", zap.String("addr", addr), zap.String("env", cfg.App.Env), zap.String("store", cfg.Store.Driver))
		if err := app.Listen(addr); err != nil {
			zl.Error("server stopped", zap.Error(err))
			stop()
		}
	}()

	<-ctx.Done()

	zl.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		zl.Error("server forced to shutdown", zap.Error(err))
	}
	zl.Info("server exited")
}
