package gamelog

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/albapepper/scoracle-scout/internal/config"
	"github.com/albapepper/scoracle-scout/internal/db"
)

// Store bundles the configured backend's source, its writer (nil for CSV) and
// the resources to release on shutdown.
type Store struct {
	Backend string
	Source  Source
	Writer  Writer

	pool   *db.Pool
	sqlite *sql.DB
}

// Open connects to the backend named by cfg.StoreBackend.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{Backend: cfg.StoreBackend}

	switch cfg.StoreBackend {
	case config.StorePostgres:
		pool, err := db.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		s.pool = pool
		s.Source = NewPostgresSource(pool.Pool)
		s.Writer = NewPostgresWriter(pool.Pool)
		logger.Info("Game log store opened", "backend", cfg.StoreBackend,
			"min_conns", cfg.DBPoolMinConns, "max_conns", cfg.DBPoolMaxConns)

	case config.StoreSQLite:
		sqlDB, err := OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		s.sqlite = sqlDB
		s.Source = NewSQLiteSource(sqlDB)
		s.Writer = NewSQLiteWriter(sqlDB)
		logger.Info("Game log store opened", "backend", cfg.StoreBackend, "path", cfg.SQLitePath)

	case config.StoreCSV:
		s.Source = NewCSVSource(cfg.CSVPath)
		logger.Info("Game log store opened", "backend", cfg.StoreBackend, "path", cfg.CSVPath)

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
	return s, nil
}

// EnsureSchema creates the game_logs table on SQL backends.
func (s *Store) EnsureSchema(ctx context.Context) error {
	switch {
	case s.pool != nil:
		return NewPostgresWriter(s.pool.Pool).EnsureSchema(ctx)
	case s.sqlite != nil:
		if _, err := s.sqlite.ExecContext(ctx, SQLiteSchema); err != nil {
			return fmt.Errorf("create %s: %w", Table, err)
		}
		return nil
	}
	return fmt.Errorf("store backend %q has no schema", s.Backend)
}

// HealthCheck verifies the backend is reachable without loading the relation.
func (s *Store) HealthCheck(ctx context.Context) error {
	switch {
	case s.pool != nil:
		return s.pool.HealthCheck(ctx)
	case s.sqlite != nil:
		return s.sqlite.PingContext(ctx)
	}
	_, err := s.Source.Load(ctx)
	return err
}

// Close releases connections.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.sqlite != nil {
		s.sqlite.Close()
	}
}
