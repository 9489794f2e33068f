// Package gamelog is the read side of the per-game record store. A Source
// returns the complete current relation on every Load; nothing is cached
// between calls. Writers exist only for the ingestion CLI.
package gamelog

import (
	"context"
	"fmt"

	"github.com/albapepper/scoracle-scout/internal/canonical"
)

// Record is one player's box score line for one game.
type Record struct {
	PlayerID   int    `json:"player_id"`
	PlayerName string `json:"player_name"`
	Season     string `json:"season"` // "2023-24"
	GameID     string `json:"game_id"`
	Opponent   string `json:"opponent"`            // canonical 3-letter code
	GameType   string `json:"game_type,omitempty"` // "Regular Season", "Playoffs"; empty when unknown

	PTS       int `json:"pts"`
	REB       int `json:"reb"`
	AST       int `json:"ast"`
	PlusMinus int `json:"plus_minus"`
	BLK       int `json:"blk"`
	STL       int `json:"stl"`
	TOV       int `json:"tov"`
	PF        int `json:"pf"`
	FGM       int `json:"fgm"`
	FGA       int `json:"fga"`
	FG3M      int `json:"fg3m"`
	FG3A      int `json:"fg3a"`
}

// Game types written by the ingestion CLI.
const (
	RegularSeason = "Regular Season"
	Playoffs      = "Playoffs"
)

// Columns is the fixed column order of the store, shared by the CSV layout and
// the game_logs table. game_type is optional in CSV files.
var Columns = []string{
	"player_id", "player_name", "season", "game_id", "opponent",
	canonical.Points, canonical.Rebounds, canonical.Assists, canonical.PlusMinus,
	canonical.Blocks, canonical.Steals, canonical.Turnovers, canonical.Fouls,
	canonical.FieldGoalsMade, canonical.FieldGoalsAtt, canonical.ThreesMade, canonical.ThreesAtt,
	"game_type",
}

// Stat returns the value of a canonical stat column.
func (r *Record) Stat(col string) (int, bool) {
	if p := r.statField(col); p != nil {
		return *p, true
	}
	return 0, false
}

func (r *Record) statField(col string) *int {
	switch col {
	case canonical.Points:
		return &r.PTS
	case canonical.Rebounds:
		return &r.REB
	case canonical.Assists:
		return &r.AST
	case canonical.PlusMinus:
		return &r.PlusMinus
	case canonical.Blocks:
		return &r.BLK
	case canonical.Steals:
		return &r.STL
	case canonical.Turnovers:
		return &r.TOV
	case canonical.Fouls:
		return &r.PF
	case canonical.FieldGoalsMade:
		return &r.FGM
	case canonical.FieldGoalsAtt:
		return &r.FGA
	case canonical.ThreesMade:
		return &r.FG3M
	case canonical.ThreesAtt:
		return &r.FG3A
	}
	return nil
}

// values returns the record in Columns order for bulk writers.
func (r *Record) values() []any {
	var gameType any
	if r.GameType != "" {
		gameType = r.GameType
	}
	return []any{
		r.PlayerID, r.PlayerName, r.Season, r.GameID, r.Opponent,
		r.PTS, r.REB, r.AST, r.PlusMinus, r.BLK, r.STL, r.TOV, r.PF,
		r.FGM, r.FGA, r.FG3M, r.FG3A, gameType,
	}
}

// scanTargets returns pointers in Columns order for row scanners.
func (r *Record) scanTargets() []any {
	return []any{
		&r.PlayerID, &r.PlayerName, &r.Season, &r.GameID, &r.Opponent,
		&r.PTS, &r.REB, &r.AST, &r.PlusMinus, &r.BLK, &r.STL, &r.TOV, &r.PF,
		&r.FGM, &r.FGA, &r.FG3M, &r.FG3A, &r.GameType,
	}
}

// --------------------------------------------------------------------------
// Sources
// --------------------------------------------------------------------------

// Source loads the full relation. Implementations must return rows in storage
// (insertion) order; tie-breaking in the query layer depends on it.
type Source interface {
	Load(ctx context.Context) ([]Record, error)
}

// Writer appends records to a store. Rows already present (same player and
// game) are skipped; the number of newly written rows is returned.
type Writer interface {
	Write(ctx context.Context, records []Record) (int, error)
}

// MemorySource serves a fixed slice. Each Load returns a copy so callers cannot
// mutate the backing rows.
type MemorySource struct {
	Records []Record
}

// Load returns a copy of the records.
func (m *MemorySource) Load(ctx context.Context) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Record, len(m.Records))
	copy(out, m.Records)
	return out, nil
}

// MalformedError reports a row that could not be decoded.
type MalformedError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("malformed record at row %d: column %s=%q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *MalformedError) Unwrap() error { return e.Err }
