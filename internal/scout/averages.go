package scout

import (
	"context"
	"strings"

	"github.com/albapepper/scoracle-scout/internal/canonical"
	"github.com/albapepper/scoracle-scout/internal/gamelog"
)

// averagedStats are averaged per game; fg and fg3 percentages follow them.
var averagedStats = []string{
	canonical.Points, canonical.Rebounds, canonical.Assists, canonical.Blocks,
	canonical.Steals, canonical.Turnovers, canonical.PlusMinus,
}

// totalledStats extends averagedStats with shot makes and attempts.
var totalledStats = append(append([]string{}, averagedStats...),
	canonical.FieldGoalsMade, canonical.FieldGoalsAtt, canonical.ThreesMade, canonical.ThreesAtt)

// Percentage keys reported alongside the averaged stats.
const (
	FieldGoalPct = "fg_percentage"
	ThreePct     = "fg3_percentage"
)

// AveragesRequest selects the games to average for one player.
type AveragesRequest struct {
	Player   string
	Seasons  []string
	Opponent string // any team alias; unknown names match nothing
	GameType string
}

func (r AveragesRequest) filter() (Filter, error) {
	if strings.TrimSpace(r.Player) == "" {
		return Filter{}, invalid("player name is required")
	}
	f := Filter{Player: r.Player, Seasons: r.Seasons, GameType: r.GameType}
	if strings.TrimSpace(r.Opponent) != "" {
		f.Opponent, _ = canonical.TeamCode(r.Opponent)
	}
	return f, nil
}

// Averages computes per-game means for a player.
func (e *Engine) Averages(ctx context.Context, req AveragesRequest) (*AveragesResult, error) {
	f, err := req.filter()
	if err != nil {
		return nil, err
	}
	records, err := e.load(ctx, "averages")
	if err != nil {
		return nil, err
	}
	games := f.Apply(records)
	if len(games) == 0 {
		return nil, noData("No game data found for the specified criteria.")
	}
	return &AveragesResult{GamesFound: len(games), Averages: averages(games)}, nil
}

// TotalsRequest selects the games to sum for one player.
type TotalsRequest AveragesRequest

// Totals computes integer sums for a player.
func (e *Engine) Totals(ctx context.Context, req TotalsRequest) (*TotalsResult, error) {
	f, err := AveragesRequest(req).filter()
	if err != nil {
		return nil, err
	}
	records, err := e.load(ctx, "totals")
	if err != nil {
		return nil, err
	}
	games := f.Apply(records)
	if len(games) == 0 {
		return nil, noData("No game data found for the specified criteria.")
	}

	totals := make(OrderedMap[int], 0, len(totalledStats))
	for _, col := range totalledStats {
		totals = append(totals, Entry[int]{Key: col, Value: sum(games, col)})
	}
	return &TotalsResult{GamesFound: len(games), Totals: totals}, nil
}

// CompareRequest names the two players to compare.
type CompareRequest struct {
	PlayerA string
	PlayerB string
	Seasons []string
}

// Compare averages each player independently. A player without matching games
// is reported as NoDataMarker; the comparison itself does not fail.
func (e *Engine) Compare(ctx context.Context, req CompareRequest) (*CompareResult, error) {
	if strings.TrimSpace(req.PlayerA) == "" || strings.TrimSpace(req.PlayerB) == "" {
		return nil, invalid("two player names are required")
	}
	records, err := e.load(ctx, "compare")
	if err != nil {
		return nil, err
	}

	result := &CompareResult{}
	for _, name := range []string{req.PlayerA, req.PlayerB} {
		if _, seen := result.Players.Get(name); seen {
			continue
		}
		games := Filter{Player: name, Seasons: req.Seasons}.Apply(records)
		if len(games) == 0 {
			result.Players = append(result.Players, Entry[any]{Key: name, Value: NoDataMarker})
			continue
		}
		result.Players = append(result.Players, Entry[any]{Key: name, Value: averages(games)})
	}
	return result, nil
}

// averages builds the averaged stat line for a non-empty game set.
func averages(games []gamelog.Record) OrderedMap[Decimal] {
	n := float64(len(games))
	line := make(OrderedMap[Decimal], 0, len(averagedStats)+2)
	for _, col := range averagedStats {
		line = append(line, Entry[Decimal]{Key: col, Value: round1(float64(sum(games, col)) / n)})
	}
	line = append(line,
		Entry[Decimal]{Key: FieldGoalPct, Value: round1(percentage(sum(games, canonical.FieldGoalsMade), sum(games, canonical.FieldGoalsAtt)))},
		Entry[Decimal]{Key: ThreePct, Value: round1(percentage(sum(games, canonical.ThreesMade), sum(games, canonical.ThreesAtt)))},
	)
	return line
}

// percentage is made/attempted*100, or 0 when nothing was attempted.
func percentage(made, attempted int) float64 {
	if attempted == 0 {
		return 0
	}
	return float64(made) / float64(attempted) * 100
}

func sum(games []gamelog.Record, col string) int {
	total := 0
	for i := range games {
		v, _ := games[i].Stat(col)
		total += v
	}
	return total
}

func mean(games []gamelog.Record, col string) float64 {
	if len(games) == 0 {
		return 0
	}
	return float64(sum(games, col)) / float64(len(games))
}
