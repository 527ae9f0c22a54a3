package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/msomdec/rewise/internal/config"
	"github.com/msomdec/rewise/internal/handler"
	"github.com/msomdec/rewise/internal/repository/sqlite"
	"github.com/msomdec/rewise/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logOpts := &slog.HandlerOptions{Level: cfg.LogLevel}
	logger := slog.New(slog.NewMultiHandler(
		slog.NewTextHandler(os.Stdout, logOpts),
		slog.NewJSONHandler(os.Stderr, logOpts),
	))
	slog.SetDefault(logger)

	// Graceful shutdown on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("database migrations applied")

	catalog := service.NewCatalogService(db.Cards())
	if cfg.CatalogPath != "" {
		if _, err := catalog.ImportFile(ctx, cfg.CatalogPath); err != nil {
			slog.Error("failed to import deck", "path", cfg.CatalogPath, "error", err)
			os.Exit(1)
		}
	}

	// Seed the default deck (idempotent).
	if err := catalog.SeedDefault(ctx); err != nil {
		slog.Error("failed to seed default deck", "error", err)
		os.Exit(1)
	}

	cards, err := catalog.List(ctx)
	if err != nil {
		slog.Error("failed to load catalog", "error", err)
		os.Exit(1)
	}

	study, err := service.NewStudyService(ctx, db.KV(), cards, time.Now, cfg.Location)
	if err != nil {
		slog.Error("failed to start study session", "error", err)
		os.Exit(1)
	}

	if cfg.RolloverEnabled {
		rollover := service.NewRolloverScheduler(study, cfg.Location)
		if err := rollover.Start(); err != nil {
			slog.Error("failed to schedule rollover", "error", err)
			os.Exit(1)
		}
		defer rollover.Stop()
	}

	limiter := service.NewTokenBucket(cfg.RateLimitPerSec, cfg.RateLimitBurst)
	go limiter.RunCleanup(ctx, 5*time.Minute, 10*time.Minute)

	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, study, limiter)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler.SecurityHeaders(mux),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB
	}

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "cards", len(cards), "timezone", cfg.Location.String())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
