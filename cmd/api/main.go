// Copyright (c) 2026 Cinedex. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Cinedex HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis when REDIS_URL is set.
//  5. Run database migrations (idempotent).
//  6. Wire the gateway, catalog and service, then load the catalog.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/taibuivan/cinedex/internal/api"
	"github.com/taibuivan/cinedex/internal/core/category"
	"github.com/taibuivan/cinedex/internal/core/genre"
	"github.com/taibuivan/cinedex/internal/core/movie"
	"github.com/taibuivan/cinedex/internal/platform/config"
	"github.com/taibuivan/cinedex/internal/platform/constants"
	"github.com/taibuivan/cinedex/internal/platform/metrics"
	"github.com/taibuivan/cinedex/internal/platform/migration"
	pgstore "github.com/taibuivan/cinedex/internal/platform/postgres"
	redisstore "github.com/taibuivan/cinedex/internal/platform/redis"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	log := rawLog.With(slog.String("app", "cinedex"))
	slog.SetDefault(log)

	log.Info("[Cinedex] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "cinedex"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("cache_enabled", cfg.CacheEnabled()),
	)

	// Startup deadline so misconfiguration fails fast.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, cfg.GatewayTimeout, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var rdb *goredis.Client
	if cfg.CacheEnabled() {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	genres := genre.NewCachedRepository(genre.NewPostgresRepository(pool), rdb, cfg.ReferenceCacheTTL, log)
	categories := category.NewCachedRepository(category.NewPostgresRepository(pool), rdb, cfg.ReferenceCacheTTL, log)

	// Migrations may have changed the seeded reference lists.
	if err := genres.Invalidate(startupCtx); err != nil {
		log.Warn("reference_cache_invalidate_failed", slog.String("key", constants.RedisKeyGenres), slog.Any("error", err))
	}
	if err := categories.Invalidate(startupCtx); err != nil {
		log.Warn("reference_cache_invalidate_failed", slog.String("key", constants.RedisKeyCategories), slog.Any("error", err))
	}

	gateway := movie.NewBreakerGateway(
		movie.NewPostgresGateway(pool, genres, categories, cfg.GatewayTimeout),
		movie.BreakerSettings{
			Name:        "catalog-store",
			MaxFailures: cfg.BreakerMaxFailures,
			OpenTimeout: cfg.BreakerOpenTimeout,
		},
		log,
	)

	catalog := movie.NewCatalog()
	service := movie.NewService(gateway, catalog, metrics.NewRecorder(), log)

	// An unreachable store leaves the catalog empty until POST /catalog/refresh.
	if err := service.Refresh(startupCtx); err != nil {
		log.Error("initial_catalog_load_failed", slog.Any("error", err))
	}

	// ── 7. Health handlers ────────────────────────────────────────────────
	deps := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
		CatalogSize: catalog.Len,
	}
	if rdb != nil {
		deps.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}
	liveness, readiness := api.NewHealthHandlers(deps, log)

	// ── 8. HTTP Server ────────────────────────────────────────────────────
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	server := api.NewServer(rootCtx, cfg, log, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Movie:     movie.NewHandler(service, cfg.FeaturedLimit),
	})

	// ── 9. Graceful Shutdown ──────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
