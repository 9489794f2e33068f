// Package scout answers structured questions over the game log relation:
// averages, totals, seasons played, head-to-head comparisons, career highs,
// season progressions and leaderboards against an opponent.
//
// Every operation loads a fresh snapshot from the configured source, resolves
// user vocabulary through package canonical, filters, then aggregates. The
// engine holds no mutable state and is safe for concurrent use.
package scout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/albapepper/scoracle-scout/internal/gamelog"
)

// Engine runs analytical operations against a game log source.
type Engine struct {
	source gamelog.Source
	logger *slog.Logger
}

// New creates an Engine. A nil logger falls back to slog.Default().
func New(source gamelog.Source, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{source: source, logger: logger}
}

// load fetches the full relation. Failures are wrapped in *StoreError.
func (e *Engine) load(ctx context.Context, op string) ([]gamelog.Record, error) {
	start := time.Now()
	records, err := e.source.Load(ctx)
	if err != nil {
		return nil, &StoreError{Err: err}
	}
	e.logger.Debug("game logs loaded", "op", op, "rows", len(records), "elapsed", time.Since(start))
	return records, nil
}

// --------------------------------------------------------------------------
// Errors
// --------------------------------------------------------------------------

var (
	// ErrNoData matches every *NoDataError.
	ErrNoData = errors.New("no game data found")
	// ErrInvalidRequest is wrapped by request validation failures.
	ErrInvalidRequest = errors.New("invalid request")
)

// NoDataError reports that filtering left nothing to aggregate. Message is a
// complete sentence suitable for the calling agent.
type NoDataError struct {
	Message string
}

func (e *NoDataError) Error() string        { return e.Message }
func (e *NoDataError) Is(target error) bool { return target == ErrNoData }

func noData(format string, args ...any) error {
	return &NoDataError{Message: fmt.Sprintf(format, args...)}
}

// UnknownStatError lists stat names that did not resolve to a column.
type UnknownStatError struct {
	Stats []string
}

func (e *UnknownStatError) Error() string {
	return "unknown stat: " + strings.Join(e.Stats, ", ")
}

// UnknownTeamError reports a team name with no canonical code.
type UnknownTeamError struct {
	Team string
}

func (e *UnknownTeamError) Error() string {
	return fmt.Sprintf("unknown team %q", e.Team)
}

// StoreError wraps a failure to load or decode the relation.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string { return "load game logs: " + e.Err.Error() }
func (e *StoreError) Unwrap() error { return e.Err }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
