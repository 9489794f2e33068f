// Command scout is the Scoracle Scout CLI: game log ingestion, schema
// management and direct tool calls against the configured store.
//
// Usage:
//
//	scout ingest csv --file all_games.csv
//	scout ingest nba --season 2023
//	scout schema --apply
//	scout tools list
//	scout tools call calculate_player_averages --args '{"player_name":"LeBron James"}'
//	scout mcp
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/albapepper/scoracle-scout/internal/config"
	"github.com/albapepper/scoracle-scout/internal/gamelog"
	"github.com/albapepper/scoracle-scout/internal/mcpserver"
	"github.com/albapepper/scoracle-scout/internal/provider/bdl"
	"github.com/albapepper/scoracle-scout/internal/scout"
	"github.com/albapepper/scoracle-scout/internal/seed"
	"github.com/albapepper/scoracle-scout/internal/tools"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "scout",
		Short: "Scoracle Scout game log CLI",
	}

	root.AddCommand(ingestCmd())
	root.AddCommand(schemaCmd())
	root.AddCommand(toolsCmd())
	root.AddCommand(mcpCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// ingest command
// --------------------------------------------------------------------------

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Load game logs into the configured SQL store",
	}
	cmd.AddCommand(ingestCSVCmd())
	cmd.AddCommand(ingestNBACmd())
	return cmd
}

func ingestCSVCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Import an all_games.csv export",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithWriter(func(ctx context.Context, cfg *config.Config, store *gamelog.Store) error {
				start := time.Now()
				result, err := seed.ImportCSV(ctx, store.Writer, file, logger)
				logger.Info("CSV import finished", "duration", time.Since(start).Round(time.Millisecond), "summary", result.Summary())
				return err
			})
		},
	}
	cmd.Flags().StringVar(&file, "file", "all_games.csv", "CSV file to import")
	return cmd
}

func ingestNBACmd() *cobra.Command {
	var season int
	cmd := &cobra.Command{
		Use:   "nba",
		Short: "Ingest one NBA season of game logs from BallDontLie",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithWriter(func(ctx context.Context, cfg *config.Config, store *gamelog.Store) error {
				if cfg.BDLAPIKey == "" {
					return fmt.Errorf("BALLDONTLIE_API_KEY is required")
				}
				handler := bdl.NewNBAHandler(cfg.BDLAPIKey, cfg.BDLRequestsPerMinute, logger)
				start := time.Now()
				result := seed.SeedNBA(ctx, store.Writer, handler, season, logger)
				logger.Info("NBA ingest finished", "duration", time.Since(start).Round(time.Second), "summary", result.Summary())
				if len(result.Errors) > 0 {
					for _, e := range result.Errors {
						logger.Error("ingest error", "error", e)
					}
					return fmt.Errorf("%d ingest errors", len(result.Errors))
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&season, "season", config.CurrentSeason, "Season start year")
	return cmd
}

// --------------------------------------------------------------------------
// schema command
// --------------------------------------------------------------------------

func schemaCmd() *cobra.Command {
	var apply bool
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print or apply the game_logs DDL for the configured backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !apply {
				cfg, err := config.Load()
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				switch cfg.StoreBackend {
				case config.StorePostgres:
					fmt.Fprint(cmd.OutOrStdout(), gamelog.PostgresSchema)
				case config.StoreSQLite:
					fmt.Fprint(cmd.OutOrStdout(), gamelog.SQLiteSchema)
				default:
					return fmt.Errorf("store backend %q has no schema", cfg.StoreBackend)
				}
				return nil
			}
			return runWithStore(func(ctx context.Context, cfg *config.Config, store *gamelog.Store) error {
				if err := store.EnsureSchema(ctx); err != nil {
					return err
				}
				logger.Info("Schema applied", "backend", store.Backend, "table", gamelog.Table)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&apply, "apply", false, "Create the table instead of printing the DDL")
	return cmd
}

// --------------------------------------------------------------------------
// tools command
// --------------------------------------------------------------------------

func toolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List or call the analytical tools",
	}
	cmd.AddCommand(toolsListCmd())
	cmd.AddCommand(toolsCallCmd())
	return cmd
}

func toolsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Print every tool declaration as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := tools.New(nil, logger)
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(registry.Definitions())
		},
	}
}

func toolsCallCmd() *cobra.Command {
	var rawArgs string
	cmd := &cobra.Command{
		Use:   "call <name>",
		Short: "Run one tool against the configured store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return runWithStore(func(ctx context.Context, cfg *config.Config, store *gamelog.Store) error {
				registry := tools.New(scout.New(store.Source, logger), logger)
				if !registry.Has(name) {
					return &tools.UnknownToolError{Name: name}
				}
				fmt.Fprintln(cmd.OutOrStdout(), registry.Invoke(ctx, name, json.RawMessage(rawArgs)))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rawArgs, "args", "{}", "Tool arguments as a JSON object")
	return cmd
}

// --------------------------------------------------------------------------
// mcp command
// --------------------------------------------------------------------------

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the tools over MCP on stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithStore(func(ctx context.Context, cfg *config.Config, store *gamelog.Store) error {
				registry := tools.New(scout.New(store.Source, logger), logger)
				return mcpserver.Serve(mcpserver.New(registry, logger))
			})
		},
	}
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runWithStore handles config loading, store connection, and context cancellation.
func runWithStore(fn func(ctx context.Context, cfg *config.Config, store *gamelog.Store) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	store, err := gamelog.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer store.Close()

	return fn(ctx, cfg, store)
}

// runWithWriter is runWithStore for commands that write: the backend must be
// a SQL store and its table must exist.
func runWithWriter(fn func(ctx context.Context, cfg *config.Config, store *gamelog.Store) error) error {
	return runWithStore(func(ctx context.Context, cfg *config.Config, store *gamelog.Store) error {
		if store.Writer == nil {
			return fmt.Errorf("store backend %q is read-only; set STORE_BACKEND to %s or %s",
				store.Backend, config.StorePostgres, config.StoreSQLite)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			return err
		}
		return fn(ctx, cfg, store)
	})
}
