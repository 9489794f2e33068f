// Command api is the Scoracle Scout API server.
//
// Usage:
//
//	scout-api
//	STORE_BACKEND=sqlite SQLITE_PATH=games.db API_PORT=8080 scout-api

// @title Scoracle Scout API
// @version 1.0.0
// @description Basketball game-log analytics exposed as tool calls. Each tool answers one question over the game log relation and returns text: a JSON payload or a diagnostic sentence.
// @host localhost:8000
// @BasePath /api/v1
// @schemes http https
// @contact.name Scoracle
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/albapepper/scoracle-scout/internal/api"
	"github.com/albapepper/scoracle-scout/internal/config"
	"github.com/albapepper/scoracle-scout/internal/gamelog"
	"github.com/albapepper/scoracle-scout/internal/maintenance"
	"github.com/albapepper/scoracle-scout/internal/scout"
	"github.com/albapepper/scoracle-scout/internal/tools"

	_ "github.com/albapepper/scoracle-scout/docs" // swagger docs
)

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Open the game log store
	store, err := gamelog.Open(ctx, cfg, logger)
	if err != nil {
		logger.Error("Failed to open game log store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	if store.Writer != nil {
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Error("Failed to create schema", "error", err)
			os.Exit(1)
		}
	}

	// Engine and tool registry
	engine := scout.New(store.Source, logger)
	registry := tools.New(engine, logger)
	logger.Info("Tools registered", "count", len(registry.Definitions()))

	// Start maintenance tickers (store health, scheduled refresh)
	go maintenance.Start(ctx, maintenance.Tasks(cfg, store, logger), logger)

	// Create router
	router := api.NewRouter(store, registry, cfg, logger)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Scoracle Scout API",
			"addr", addr,
			"environment", cfg.Environment,
			"store", cfg.StoreBackend,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
