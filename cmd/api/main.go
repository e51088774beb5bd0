// Copyright (c) 2026 Anicat. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command api is the entry point for the Anicat HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis and NATS when configured.
//  5. Run database migrations (idempotent).
//  6. Wire services and HTTP handlers.
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

	"github.com/taibuivan/anicat/internal/api"
	"github.com/taibuivan/anicat/internal/auth"
	"github.com/taibuivan/anicat/internal/core/anime"
	"github.com/taibuivan/anicat/internal/core/episode"
	"github.com/taibuivan/anicat/internal/core/genre"
	"github.com/taibuivan/anicat/internal/core/season"
	"github.com/taibuivan/anicat/internal/platform/config"
	"github.com/taibuivan/anicat/internal/platform/constants"
	"github.com/taibuivan/anicat/internal/platform/events"
	"github.com/taibuivan/anicat/internal/platform/migration"
	pgstore "github.com/taibuivan/anicat/internal/platform/postgres"
	redisstore "github.com/taibuivan/anicat/internal/platform/redis"
	"github.com/taibuivan/anicat/internal/platform/sec"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	level := new(slog.LevelVar)
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})).
		With(slog.String("app", "anicat"))
	slog.SetDefault(log)

	log.Info("service_initializing", slog.String("version", constants.AppVersion))

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		level.Set(slog.LevelDebug)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("registration", cfg.AllowRegistration),
	)

	// Root context lives until shutdown; it stops background loops such as
	// the rate limiter cleanup.
	rootCtx, rootCancel := context.WithCancel(context.Background())
	defer rootCancel()

	// Startup deadline so misconfiguration is caught quickly rather than
	// hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(rootCtx, 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	probes := []api.Probe{{
		Name:  "postgres",
		Check: func(ctx context.Context) error { return pgstore.Ping(ctx, pool) },
	}}

	// ── 4. Optional Infrastructure ────────────────────────────────────────
	var guard auth.AttemptGuard
	if cfg.RedisURL != "" {
		rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		must(log, err, "connect to redis")
		defer func() {
			log.Info("closing redis client")
			if cerr := rdb.Close(); cerr != nil {
				log.Error("redis close error", slog.Any("error", cerr))
			}
		}()

		guard = auth.NewAttemptGuard(rdb)
		probes = append(probes, api.Probe{
			Name:  "redis",
			Check: func(ctx context.Context) error { return redisstore.Ping(ctx, rdb) },
		})
	} else {
		log.Warn("redis_disabled", slog.String("effect", "login throttling off"))
	}

	var publisher *events.Publisher
	if cfg.NatsURL != "" {
		nc, err := events.Connect(events.Options{URL: cfg.NatsURL, Name: constants.AppName}, log)
		must(log, err, "connect to nats")
		defer func() {
			log.Info("draining nats connection")
			if derr := nc.Drain(); derr != nil {
				log.Error("nats drain error", slog.Any("error", derr))
			}
		}()

		publisher = events.NewPublisher(nc, log)
		probes = append(probes, api.Probe{
			Name:  "nats",
			Check: func(ctx context.Context) error { return nc.FlushWithContext(ctx) },
		})
	} else {
		log.Warn("nats_disabled", slog.String("effect", "catalog events off"))
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Domain Wiring ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	authService := auth.NewService(auth.NewUserRepository(pool), jwtSvc, guard, log)

	genreRepository := genre.NewPostgresRepository(pool)
	animeRepository := anime.NewPostgresRepository(pool)
	seasonRepository := season.NewPostgresRepository(pool)
	episodeRepository := episode.NewPostgresRepository(pool)

	genreService := genre.NewService(genreRepository, publisher, log)
	animeService := anime.NewService(animeRepository, genreService, seasonRepository, episodeRepository, publisher, log)
	seasonService := season.NewService(seasonRepository, episodeRepository, animeRepository, publisher, log)
	episodeService := episode.NewService(episodeRepository, seasonRepository, publisher, log)

	liveness, readiness := api.NewHealthHandlers(log, probes...)

	// ── 7. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, cfg.AllowRegistration),
		Genre:     genre.NewHandler(genreService),
		Anime:     anime.NewHandler(animeService),
		Season:    season.NewHandler(seasonService),
		Episode:   episode.NewHandler(episodeService),
	}

	server := api.NewServer(rootCtx, cfg, log, authService, handlers)

	// ── 8. Graceful Shutdown ──────────────────────────────────────────────
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

	// Give in-flight requests enough time to complete.
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
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
