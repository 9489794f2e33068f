package seed

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/albapepper/scoracle-scout/internal/gamelog"
)

// ImportCSV loads an all_games.csv export into w, preserving file order.
func ImportCSV(ctx context.Context, w gamelog.Writer, path string, logger *slog.Logger) (SeedResult, error) {
	var result SeedResult

	f, err := os.Open(path)
	if err != nil {
		return result, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := gamelog.ParseCSV(f)
	if err != nil {
		return result, fmt.Errorf("parse %s: %w", path, err)
	}
	result.GameLogsFetched = len(records)
	logger.Info("CSV parsed", "path", path, "rows", len(records))

	for start := 0; start < len(records); start += writeBatchSize {
		end := min(start+writeBatchSize, len(records))
		n, err := w.Write(ctx, records[start:end])
		result.GameLogsWritten += n
		if err != nil {
			return result, fmt.Errorf("write rows %d-%d: %w", start+1, end, err)
		}
	}

	logger.Info("CSV import complete", "summary", result.Summary())
	return result, nil
}
