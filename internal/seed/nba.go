package seed

import (
	"context"
	"log/slog"

	"github.com/albapepper/scoracle-scout/internal/gamelog"
	"github.com/albapepper/scoracle-scout/internal/provider/bdl"
)

const writeBatchSize = 500

// SeedNBA runs the full NBA seed flow for one season: teams -> regular season
// game logs -> postseason game logs. Rows are written in batches as they
// arrive; a failed batch is recorded and seeding continues.
func SeedNBA(ctx context.Context, w gamelog.Writer, handler *bdl.NBAHandler, season int, logger *slog.Logger) SeedResult {
	var result SeedResult

	// 1. Teams
	logger.Info("Resolving NBA teams...")
	teams, err := handler.GetTeamCodes(ctx)
	if err != nil {
		result.AddErrorf("fetch NBA teams: %v", err)
		return result
	}
	result.TeamsResolved = len(teams)
	logger.Info("NBA teams done", "count", result.TeamsResolved)

	// 2. Game logs, regular season then playoffs
	for _, postseason := range []bool{false, true} {
		label := gamelog.RegularSeason
		if postseason {
			label = gamelog.Playoffs
		}
		logger.Info("Seeding NBA game logs...", "season", bdl.SeasonLabel(season), "game_type", label)

		batch := make([]gamelog.Record, 0, writeBatchSize)
		flush := func() {
			if len(batch) == 0 {
				return
			}
			n, err := w.Write(ctx, batch)
			if err != nil {
				result.AddErrorf("write %d %s game logs: %v", len(batch), label, err)
			}
			result.GameLogsWritten += n
			batch = batch[:0]
		}

		err := handler.GetGameLogs(ctx, season, postseason, teams, func(rec gamelog.Record) error {
			batch = append(batch, rec)
			result.GameLogsFetched++
			if len(batch) == writeBatchSize {
				flush()
				logger.Info("NBA game log progress", "fetched", result.GameLogsFetched, "written", result.GameLogsWritten)
			}
			return nil
		})
		flush()
		if err != nil {
			result.AddErrorf("fetch NBA %s game logs: %v", label, err)
		}
	}

	logger.Info("NBA seed complete", "summary", result.Summary())
	return result
}
