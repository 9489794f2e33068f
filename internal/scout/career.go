package scout

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/albapepper/scoracle-scout/internal/canonical"
	"github.com/albapepper/scoracle-scout/internal/gamelog"
)

// SeasonInfoRequest names the player whose seasons are listed.
type SeasonInfoRequest struct {
	Player string
}

// SeasonInfo lists a player's distinct seasons in storage order.
func (e *Engine) SeasonInfo(ctx context.Context, req SeasonInfoRequest) (*SeasonInfoResult, error) {
	if strings.TrimSpace(req.Player) == "" {
		return nil, invalid("player name is required")
	}
	records, err := e.load(ctx, "season_info")
	if err != nil {
		return nil, err
	}
	games := Filter{Player: req.Player}.Apply(records)
	if len(games) == 0 {
		return nil, noData("No data found for this player.")
	}

	seen := make(map[string]bool)
	seasons := make([]string, 0)
	for _, g := range games {
		if !seen[g.Season] {
			seen[g.Season] = true
			seasons = append(seasons, g.Season)
		}
	}
	return &SeasonInfoResult{
		PlayerName:    games[0].PlayerName,
		SeasonCount:   len(seasons),
		SeasonsPlayed: seasons,
	}, nil
}

// CareerHighRequest names a player and a single stat.
type CareerHighRequest struct {
	Player  string
	Stat    string
	Seasons []string
}

// CareerHigh finds the player's single game with the highest value of a stat.
// The earliest stored game wins ties.
func (e *Engine) CareerHigh(ctx context.Context, req CareerHighRequest) (*CareerHighResult, error) {
	if strings.TrimSpace(req.Player) == "" {
		return nil, invalid("player name is required")
	}
	col, ok := canonical.StatColumn(req.Stat)
	if !ok {
		return nil, &UnknownStatError{Stats: []string{req.Stat}}
	}
	records, err := e.load(ctx, "career_high")
	if err != nil {
		return nil, err
	}
	games := Filter{Player: req.Player, Seasons: req.Seasons}.Apply(records)
	if len(games) == 0 {
		return nil, noData("No data found for this player.")
	}

	best := maxGame(games, col)
	value, _ := best.Stat(col)
	return &CareerHighResult{
		PlayerName: best.PlayerName,
		Stat:       req.Stat,
		StatValue:  value,
		Season:     best.Season,
		Opponent:   best.Opponent,
		GameID:     best.GameID,
	}, nil
}

// maxGame returns the first game holding the maximum of col. games must be
// non-empty.
func maxGame(games []gamelog.Record, col string) *gamelog.Record {
	best := &games[0]
	bestValue, _ := best.Stat(col)
	for i := 1; i < len(games); i++ {
		if v, _ := games[i].Stat(col); v > bestValue {
			best, bestValue = &games[i], v
		}
	}
	return best
}

// ProgressionRequest names a player and one or more stats. Stats are resolved
// through the synonym table; the names given are the keys of the result.
type ProgressionRequest struct {
	Player string
	Stats  []string
}

// Progression computes each stat's per-season mean, career mean and peak
// season for a player.
func (e *Engine) Progression(ctx context.Context, req ProgressionRequest) (*ProgressionResult, error) {
	if strings.TrimSpace(req.Player) == "" {
		return nil, invalid("player name is required")
	}
	stats, bad := canonical.StatColumns(strings.Join(req.Stats, ","))
	if len(bad) > 0 {
		return nil, &UnknownStatError{Stats: bad}
	}
	if len(stats) == 0 {
		return nil, invalid("at least one stat is required")
	}

	records, err := e.load(ctx, "progression")
	if err != nil {
		return nil, err
	}
	games := Filter{Player: req.Player}.Apply(records)
	if len(games) == 0 {
		return nil, noData("No data found for player '%s'.", req.Player)
	}

	bySeason := groupBySeason(games)
	result := &ProgressionResult{PlayerName: games[0].PlayerName}
	for _, stat := range stats {
		if _, dup := result.ProgressionData.Get(stat.Name); dup {
			continue
		}
		result.ProgressionData = append(result.ProgressionData, Entry[StatProgression]{
			Key:   stat.Name,
			Value: progression(bySeason, games, stat.Column),
		})
	}
	return result, nil
}

type seasonGroup struct {
	season string
	games  []gamelog.Record
}

// groupBySeason groups games by season, ordered chronologically.
func groupBySeason(games []gamelog.Record) []seasonGroup {
	index := make(map[string]int)
	var groups []seasonGroup
	for _, g := range games {
		i, ok := index[g.Season]
		if !ok {
			i = len(groups)
			index[g.Season] = i
			groups = append(groups, seasonGroup{season: g.Season})
		}
		groups[i].games = append(groups[i].games, g)
	}
	slices.SortStableFunc(groups, func(a, b seasonGroup) int {
		return CompareSeasons(a.season, b.season)
	})
	return groups
}

func progression(groups []seasonGroup, games []gamelog.Record, col string) StatProgression {
	p := StatProgression{CareerAverage: round1(mean(games, col))}
	for i, g := range groups {
		v := round1(mean(g.games, col))
		p.SeasonBySeason = append(p.SeasonBySeason, Entry[Decimal]{Key: g.season, Value: v})
		if i == 0 || v > p.PeakValue {
			p.PeakSeason, p.PeakValue = g.season, v
		}
	}
	return p
}

// CompareSeasons orders season labels by their leading year, falling back to
// string order for labels without one.
func CompareSeasons(a, b string) int {
	ya, errA := leadingYear(a)
	yb, errB := leadingYear(b)
	if errA == nil && errB == nil && ya != yb {
		return ya - yb
	}
	return strings.Compare(a, b)
}

func leadingYear(season string) (int, error) {
	head, _, _ := strings.Cut(season, "-")
	return strconv.Atoi(strings.TrimSpace(head))
}
