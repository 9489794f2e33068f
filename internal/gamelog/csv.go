package gamelog

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
)

// CSVSource reads the relation from a CSV export with a header row in the
// all_games.csv layout. The file is re-read on every Load.
type CSVSource struct {
	Path string
}

// NewCSVSource creates a source for the file at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

// Load opens and parses the file.
func (s *CSVSource) Load(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open game log csv: %w", err)
	}
	defer f.Close()
	return ParseCSV(f)
}

// ParseCSV decodes a game log CSV. Column order is taken from the header;
// unknown columns are ignored and game_type may be absent. Numeric cells may
// be written as integers or integral floats ("25.0"); empty numeric cells read
// as zero. Any other numeric content is a *MalformedError.
func ParseCSV(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, col := range Columns {
		if col == "game_type" {
			continue
		}
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("csv header missing column %q", col)
		}
	}

	var records []Record
	for row := 1; ; row++ {
		fields, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", row, err)
		}

		cell := func(col string) string {
			i, ok := index[col]
			if !ok || i >= len(fields) {
				return ""
			}
			return strings.TrimSpace(fields[i])
		}

		rec := Record{
			PlayerName: cell("player_name"),
			Season:     cell("season"),
			GameID:     cell("game_id"),
			Opponent:   strings.ToUpper(cell("opponent")),
			GameType:   cell("game_type"),
		}
		if rec.PlayerID, err = parseInt(cell("player_id")); err != nil {
			return nil, &MalformedError{Row: row, Column: "player_id", Value: cell("player_id"), Err: err}
		}
		for _, col := range Columns[5:17] {
			v, err := parseInt(cell(col))
			if err != nil {
				return nil, &MalformedError{Row: row, Column: col, Value: cell(col), Err: err}
			}
			*rec.statField(col) = v
		}
		records = append(records, rec)
	}
	return records, nil
}

var errNotIntegral = errors.New("not an integral number")

func parseInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, errNotIntegral
	}
	return int(f), nil
}
