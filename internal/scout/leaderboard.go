package scout

import (
	"context"
	"slices"
	"strings"

	"github.com/albapepper/scoracle-scout/internal/canonical"
	"github.com/albapepper/scoracle-scout/internal/gamelog"
)

// LeaderboardRequest asks who performs best in a stat against one opponent.
type LeaderboardRequest struct {
	Opponent string
	Stat     string // defaults to points
	Season   string // comma-separated; empty means all seasons
}

// Leaderboard finds the player with the highest per-game mean of a stat against
// an opponent. Ties go to the alphabetically first player name.
func (e *Engine) Leaderboard(ctx context.Context, req LeaderboardRequest) (*LeaderboardResult, error) {
	if strings.TrimSpace(req.Opponent) == "" {
		return nil, invalid("opponent team is required")
	}
	team, ok := canonical.TeamCode(req.Opponent)
	if !ok {
		return nil, &UnknownTeamError{Team: req.Opponent}
	}
	stat := req.Stat
	if strings.TrimSpace(stat) == "" {
		stat = "points"
	}
	col, ok := canonical.StatColumn(stat)
	if !ok {
		return nil, &UnknownStatError{Stats: []string{stat}}
	}

	records, err := e.load(ctx, "leaderboard")
	if err != nil {
		return nil, err
	}
	games := Filter{Opponent: team, Seasons: ParseSeasons(req.Season)}.Apply(records)
	if len(games) == 0 {
		return nil, noData("No game data found against %s for the specified criteria.", req.Opponent)
	}

	byPlayer := make(map[string][]gamelog.Record)
	for _, g := range games {
		byPlayer[g.PlayerName] = append(byPlayer[g.PlayerName], g)
	}
	names := make([]string, 0, len(byPlayer))
	for name := range byPlayer {
		names = append(names, name)
	}
	slices.Sort(names)

	top, topMean := names[0], mean(byPlayer[names[0]], col)
	for _, name := range names[1:] {
		if m := mean(byPlayer[name], col); m > topMean {
			top, topMean = name, m
		}
	}

	topGames := byPlayer[top]
	high, _ := maxGame(topGames, col).Stat(col)

	inSeason := strings.TrimSpace(req.Season)
	if inSeason == "" {
		inSeason = AllTime
	}
	return &LeaderboardResult{
		TopPerformer:   top,
		AgainstTeam:    team,
		InSeason:       inSeason,
		Stat:           stat,
		AverageValue:   round1(topMean),
		GamesPlayed:    len(topGames),
		SingleGameHigh: high,
	}, nil
}
