// Package main is the entry point for the blog API server.
//
// MAIN PACKAGE IN GO:
// main should stay minimal. Its job is to:
//  1. Read configuration (internal/config: .env file + environment)
//  2. Create dependencies (logger, storage)
//  3. Start the application and clean up when it stops
//
// All actual logic lives in imported packages (internal/server, internal/service, etc.).
//
// WHY cmd/server/?
// The cmd/ directory is a Go convention for executable entry points. Each
// executable gets its own directory with its own main.go.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/sakif/blogstack/internal/config"
	"github.com/sakif/blogstack/internal/repository"
	"github.com/sakif/blogstack/internal/repository/memory"
	"github.com/sakif/blogstack/internal/repository/sqlstore"
	"github.com/sakif/blogstack/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	// === 1. READ CONFIGURATION ===
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// === 2. SET UP LOGGING ===
	// Text output for humans; the level comes from LOG_LEVEL. SetDefault
	// makes package-level slog calls (e.g. in handler response helpers) use
	// the same handler.
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// === 3. OPEN STORAGE ===
	// Chosen once, here, from configuration. Everything downstream sees only
	// repository.Storage.
	startup, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := openStorage(startup, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	// === 4. CREATE THE SERVER ===
	srv, err := server.New(cfg, store, logger)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// === 5. SEED DEFAULTS ===
	if cfg.SeedDefaults {
		if err := srv.Seed(startup); err != nil {
			return fmt.Errorf("seeding defaults: %w", err)
		}
	}

	// Start() blocks until SIGINT/SIGTERM; the deferred Close runs after.
	return srv.Start()
}

func openStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (repository.Storage, error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		logger.Warn("using in-memory storage: data is lost on restart")
		return memory.New(), nil

	case config.DriverSQLite:
		// Ensure the data directory exists (like `mkdir -p`).
		dir := filepath.Dir(cfg.DBPath)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
		}
		return openSQL(ctx, sqlstore.Config{Driver: sqlstore.DriverSQLite, DSN: cfg.DBPath}, logger,
			slog.String("path", cfg.DBPath))

	case config.DriverPostgres:
		return openSQL(ctx, sqlstore.Config{Driver: sqlstore.DriverPostgres, DSN: cfg.DatabaseURL}, logger)
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

func openSQL(ctx context.Context, cfg sqlstore.Config, logger *slog.Logger, attrs ...any) (repository.Storage, error) {
	store, err := sqlstore.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %w", cfg.Driver, err)
	}
	logger.Info("storage ready", append([]any{slog.String("driver", store.Driver())}, attrs...)...)
	return store, nil
}
