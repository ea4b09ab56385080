package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"tasktracker/internal/adapter/database"
	"tasktracker/internal/adapter/database/postgres"
	"tasktracker/internal/adapter/database/sqlite"
	api "tasktracker/internal/adapter/http"
	"tasktracker/pkg/config"
	"tasktracker/pkg/logger"
	"tasktracker/pkg/ratelimit"
	"tasktracker/pkg/tracing"
)

const serviceVersion = "1.0.0"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()

	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	appLogger, err := logger.New(logger.Config{
		ServiceName: cfg.ServiceName,
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		LokiURL:     cfg.Telemetry.LokiURL,
	})

	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	defer appLogger.Sync()
	defer logger.Install(appLogger)()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Fatal("Server stopped with error", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.AppConfig, appLogger *otelzap.Logger) error {
	telemetry, err := tracing.InitTelemetry(ctx, tracing.TelemetryConfig{
		ServiceName:    cfg.ServiceName,
		ServiceVersion: serviceVersion,
		Environment:    cfg.Environment,
		MetricsPort:    cfg.Telemetry.MetricsPort,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
	}, appLogger.Logger)

	if err != nil {
		return err
	}

	defer func() {
		if err := telemetry.Shutdown(context.Background()); err != nil {
			appLogger.Error("Failed to shutdown telemetry", zap.Error(err))
		}
	}()

	metrics := tracing.NewAppMetrics(telemetry.PrometheusRegistry)

	db, err := openDatabase(ctx, cfg)

	if err != nil {
		return err
	}

	defer db.Close()

	store, closeStore, err := rateLimitStore(ctx, cfg)

	if err != nil {
		return err
	}

	defer closeStore()

	return api.StartServer(ctx, api.ServerDeps{
		Config:  cfg,
		DB:      db,
		Store:   store,
		Metrics: metrics,
		Logger:  appLogger,
	})
}

func openDatabase(ctx context.Context, cfg *config.AppConfig) (*database.DB, error) {
	if cfg.Database.Driver == config.DriverPostgres {
		return postgres.NewDB(ctx, postgres.Options{URL: cfg.Database.URL, LogSQL: cfg.Database.LogSQL})
	}

	return sqlite.NewDB(ctx, sqlite.Options{Path: cfg.Database.Path, LogSQL: cfg.Database.LogSQL})
}

// rateLimitStore shares counters through Redis when configured, otherwise
// they live in this process only.
func rateLimitStore(ctx context.Context, cfg *config.AppConfig) (ratelimit.Store, func(), error) {
	if cfg.RateLimit.RedisURL == "" {
		return ratelimit.NewMemoryStore(), func() {}, nil
	}

	store, err := ratelimit.NewRedisStore(ctx, cfg.RateLimit.RedisURL)

	if err != nil {
		return nil, nil, err
	}

	return store, func() { _ = store.Close() }, nil
}
