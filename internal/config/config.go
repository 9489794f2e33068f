// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/scout.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Store backends
// --------------------------------------------------------------------------

const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreCSV      = "csv"
)

// CurrentSeason is the start year of the NBA season ingestion defaults to.
const CurrentSeason = 2025

// --------------------------------------------------------------------------
// Config struct, populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Game log store
	StoreBackend string // postgres, sqlite, csv
	CSVPath      string
	SQLitePath   string

	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Ingestion
	BDLAPIKey            string
	BDLRequestsPerMinute int

	// Maintenance tickers (zero disables)
	HealthCheckInterval time.Duration
	RefreshInterval     time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		StoreBackend: strings.ToLower(envOr("STORE_BACKEND", StoreCSV)),
		CSVPath:      envOr("GAMES_CSV_PATH", "all_games.csv"),
		SQLitePath:   envOr("SQLITE_PATH", "games.db"),

		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		BDLAPIKey:            envOr("BALLDONTLIE_API_KEY", ""),
		BDLRequestsPerMinute: envInt("BDL_REQUESTS_PER_MINUTE", 60),

		HealthCheckInterval: time.Duration(envInt("HEALTH_CHECK_INTERVAL_MINUTES", 5)) * time.Minute,
		RefreshInterval:     time.Duration(envInt("REFRESH_INTERVAL_MINUTES", 0)) * time.Minute,
	}

	switch cfg.StoreBackend {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL must be set when STORE_BACKEND=%s", StorePostgres)
		}
	case StoreSQLite, StoreCSV:
	default:
		return nil, fmt.Errorf("unknown STORE_BACKEND %q (want %s, %s or %s)",
			cfg.StoreBackend, StorePostgres, StoreSQLite, StoreCSV)
	}
	return cfg, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
