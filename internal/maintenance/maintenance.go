// Package maintenance runs periodic background tasks as Go tickers inside the
// API process: store health probes and the scheduled re-ingest of the current
// NBA season.
package maintenance

import (
	"context"
	"log/slog"
	"time"

	"github.com/albapepper/scoracle-scout/internal/config"
	"github.com/albapepper/scoracle-scout/internal/gamelog"
	"github.com/albapepper/scoracle-scout/internal/provider/bdl"
	"github.com/albapepper/scoracle-scout/internal/seed"
)

// Task is one periodic job. A zero Interval disables it.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context)
}

// Tasks builds the maintenance tasks the configuration enables. The refresh
// task needs a writable store and a BallDontLie key.
func Tasks(cfg *config.Config, store *gamelog.Store, logger *slog.Logger) []Task {
	tasks := []Task{{
		Name:     "store_health",
		Interval: cfg.HealthCheckInterval,
		Run:      func(ctx context.Context) { probeStore(ctx, store, logger) },
	}}

	if cfg.RefreshInterval > 0 {
		switch {
		case store.Writer == nil:
			logger.Info("Scheduled refresh disabled (read-only store)", "backend", store.Backend)
		case cfg.BDLAPIKey == "":
			logger.Info("Scheduled refresh disabled (no BALLDONTLIE_API_KEY)")
		default:
			handler := bdl.NewNBAHandler(cfg.BDLAPIKey, cfg.BDLRequestsPerMinute, logger)
			tasks = append(tasks, Task{
				Name:     "refresh",
				Interval: cfg.RefreshInterval,
				Run: func(ctx context.Context) {
					result := seed.SeedNBA(ctx, store.Writer, handler, config.CurrentSeason, logger)
					logger.Info("Scheduled refresh finished", "summary", result.Summary())
				},
			})
		}
	}
	return tasks
}

// Start launches every enabled task on its own ticker. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, tasks []Task, logger *slog.Logger) {
	tickers := make([]*time.Ticker, 0, len(tasks))
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	for _, task := range tasks {
		if task.Interval <= 0 || task.Run == nil {
			continue
		}
		t := time.NewTicker(task.Interval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, task, logger)
		logger.Info("Maintenance ticker started", "task", task.Name, "interval", task.Interval)
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, task Task, logger *slog.Logger) {
	for {
		select {
		case <-ch:
			start := time.Now()
			task.Run(ctx)
			logger.Debug("Maintenance task ran", "task", task.Name, "duration", time.Since(start).Round(time.Millisecond))
		case <-ctx.Done():
			return
		}
	}
}

// probeStore logs when the game log store stops answering.
func probeStore(ctx context.Context, store *gamelog.Store, logger *slog.Logger) {
	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := store.HealthCheck(probeCtx); err != nil {
		logger.Warn("Store health probe failed", "backend", store.Backend, "error", err)
	}
}
