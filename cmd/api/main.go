package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"go.uber.org/zap"

	clicksHttp "click-stats-service/internal/clicks/adapters/http/fiber"
	clicksMemory "click-stats-service/internal/clicks/adapters/memory"
	clicksMongo "click-stats-service/internal/clicks/adapters/mongo"
	clicksRepoPg "click-stats-service/internal/clicks/adapters/postgres"
	"click-stats-service/internal/clicks/core/ports"
	clicksUsecase "click-stats-service/internal/clicks/core/usecase"

	statsHttp "click-stats-service/internal/stats/adapters/http/fiber"
	statsUsecase "click-stats-service/internal/stats/core/usecase"

	"click-stats-service/docs"
	"click-stats-service/internal/config"
	"click-stats-service/internal/db"
	"click-stats-service/internal/db/migrate"
	"click-stats-service/internal/httpserver"
	"click-stats-service/internal/logger"
	"click-stats-service/internal/observability"
)

// @title Click Stats Service API
// @version 1.0
// @description Records A/B/C/D clicks and serves hourly and daily statistics
// @host localhost:8080
// @BasePath /
func main() {
	// Config
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log, err := logger.New(cfg.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting click stats service",
		zap.String("environment", cfg.Environment),
		zap.String("store", cfg.StoreDriver),
		zap.String("timezone", cfg.Location().String()))

	docs.SwaggerInfo.Host = cfg.SwaggerHost

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	store, ping, closeStore, err := openStore(ctx, cfg, log)
	cancel()
	if err != nil {
		log.Fatal("Failed to open click store", zap.Error(err))
	}
	defer closeStore()

	metrics := observability.NewMetrics()

	// Usecases
	submitClickUC := clicksUsecase.NewSubmitClickUseCase(store)
	getDayUC := statsUsecase.NewGetDayUseCase(store, cfg.Location())
	getSeriesUC := statsUsecase.NewGetSeriesUseCase(store, cfg.Location(), cfg.SeriesDefaultDays, cfg.SeriesMaxDays)
	getDashboardUC := statsUsecase.NewGetDashboardUseCase(getDayUC, getSeriesUC)

	// HTTP (Fiber) app + handlers
	clicksHandler := clicksHttp.NewClickHandler(submitClickUC, log,
		clicksHttp.WithRecorder(metrics),
		clicksHttp.WithTrustForwardedFor(cfg.TrustForwardedFor))
	statsHandler := statsHttp.NewStatsHandler(getDayUC, getSeriesUC, getDashboardUC, log)

	app := httpserver.New(clicksHandler, statsHandler, httpserver.Options{
		Log:            log,
		Metrics:        metrics,
		Ping:           ping,
		RequestTimeout: cfg.RequestTimeout,
	})

	// Graceful shutdown
	go func() {
		if err := app.Listen(cfg.HTTPAddr); err != nil {
			log.Error("Fiber stopped", zap.Error(err))
		}
	}()

	log.Info("Server started", zap.String("address", cfg.HTTPAddr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit

	log.Info("Shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error("Fiber shutdown error", zap.Error(err))
	}

	log.Info("Server exiting")
}

// openStore builds the click store selected by STORE_DRIVER and returns a
// health probe and a close function alongside it.
func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (ports.ClickStorePort, httpserver.PingFunc, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		conn, err := db.Open(ctx, cfg.PostgresDSN, db.PoolConfig{
			MaxOpenConns:    cfg.PostgresMaxOpenConns,
			MaxIdleConns:    cfg.PostgresMaxIdleConns,
			ConnMaxLifetime: cfg.PostgresConnMaxLifetime,
		})
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.AutoMigrate {
			if err := migrate.Run(conn, migrate.DirectionUp); err != nil {
				_ = conn.Close()
				return nil, nil, nil, fmt.Errorf("migrate: %w", err)
			}
			log.Info("Postgres schema up to date")
		}
		closeFn := func() {
			if err := conn.Close(); err != nil {
				log.Error("Failed to close postgres", zap.Error(err))
			}
		}
		return clicksRepoPg.NewClickRepository(clicksRepoPg.NewSQLDB(conn)), conn.PingContext, closeFn, nil

	case config.DriverMongo:
		client, err := clicksMongo.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, nil, err
		}
		store := clicksMongo.NewClickStore(client.Database(cfg.MongoDatabase))
		if err := store.EnsureSchema(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, nil, err
		}
		closeFn := func() {
			dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := client.Disconnect(dctx); err != nil {
				log.Error("Failed to disconnect mongo", zap.Error(err))
			}
		}
		return store, store.Ping, closeFn, nil

	default:
		log.Warn("Using in-memory click store; clicks are lost on restart")
		store := clicksMemory.NewClickStore()
		return store, store.Ping, func() {}, nil
	}
}
