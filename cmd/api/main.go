// Package main is the entry point for the tripmatch API server.
// Its sole responsibility is wiring dependencies together and starting the
// server and the feed cache's background worker. No business logic belongs here.
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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pkordes/tripmatch/backend/internal/config"
	"github.com/pkordes/tripmatch/backend/internal/feed"
	"github.com/pkordes/tripmatch/backend/internal/handler"
	"github.com/pkordes/tripmatch/backend/internal/middleware"
	"github.com/pkordes/tripmatch/backend/internal/repo"
	"github.com/pkordes/tripmatch/backend/internal/service"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// log/slog is the stdlib structured logger introduced in Go 1.21.
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately — the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Feed cache -------------------------------------------------------
	// The cache reads through the FeedSource adapter and is the only
	// in-memory state in the process. Likes and memberships write through
	// their repos first; the cache is invalidated or patched afterwards.
	source := repo.NewFeedSource(
		repo.NewGroupRepo(pool),
		repo.NewIdentityRepo(pool, cfg.PictureBaseURL),
		repo.NewSubEventRepo(pool, cfg.PictureBaseURL),
	)
	cache := feed.New(source, logger, feed.Options{
		WarmThreshold:      cfg.FeedWarmThreshold,
		RebuildConcurrency: cfg.RebuildConcurrency,
		RefreshInterval:    cfg.RefreshInterval,
		SweepInterval:      cfg.SweepInterval,
	})

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go cache.Run(workerCtx)

	likes := service.NewLikeService(repo.NewLikeRepo(pool), cache)
	members := service.NewMembershipService(repo.NewMembershipRepo(pool), cache)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(1 << 20)) // 1 MiB

	handler.NewServer(cache, likes, members).Routes(r)

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, stop the background worker at
	// its next tick, then give in-flight requests up to 15 seconds to
	// complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
