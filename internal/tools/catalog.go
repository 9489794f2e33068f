package tools

import (
	"context"
	"strings"

	"github.com/albapepper/scoracle-scout/internal/scout"
)

type averagesArgs struct {
	PlayerName string `json:"player_name"`
	Seasons    string `json:"seasons"`
	Opponent   string `json:"opponent"`
	GameType   string `json:"game_type"`
}

type seasonInfoArgs struct {
	PlayerName string `json:"player_name"`
}

type compareArgs struct {
	PlayerAName string `json:"player_a_name"`
	PlayerBName string `json:"player_b_name"`
	Seasons     string `json:"seasons"`
}

type careerHighArgs struct {
	PlayerName string `json:"player_name"`
	Stat       string `json:"stat"`
	Seasons    string `json:"seasons"`
}

type progressionArgs struct {
	PlayerName string `json:"player_name"`
	Stats      string `json:"stats"`
}

type topPerformerArgs struct {
	OpponentTeam string `json:"opponent_team"`
	Stat         string `json:"stat"`
	Season       string `json:"season"`
}

var (
	propPlayer   = Property{Type: "string", Description: "Full player name, e.g. 'Stephen Curry'. Case-insensitive."}
	propSeasons  = Property{Type: "string", Description: "Optional comma-separated seasons in YYYY-YY form, e.g. '2022-23, 2023-24'."}
	propOpponent = Property{Type: "string", Description: "Optional opponent team: nickname, city or 3-letter code."}
	propGameType = Property{Type: "string", Description: "Optional game type, e.g. 'Regular Season' or 'Playoffs'."}
	propStat     = Property{Type: "string", Description: "Statistic name, e.g. 'points', 'rebounds', 'assists', 'three-pointers made'."}
)

func catalog(e *scout.Engine) []tool {
	return []tool{
		{
			def: Definition{
				Name:        PlayerAverages,
				Description: "Per-game averages for a player, optionally filtered by seasons, opponent and game type. Includes field goal and three-point percentages.",
				Parameters: Schema{Type: "object", Required: []string{"player_name"}, Properties: map[string]Property{
					"player_name": propPlayer, "seasons": propSeasons, "opponent": propOpponent, "game_type": propGameType,
				}},
			},
			run: bind(func(ctx context.Context, a averagesArgs) (any, error) {
				return e.Averages(ctx, scout.AveragesRequest{
					Player: a.PlayerName, Seasons: scout.ParseSeasons(a.Seasons), Opponent: a.Opponent, GameType: a.GameType,
				})
			}),
		},
		{
			def: Definition{
				Name:        PlayerTotals,
				Description: "Cumulative totals for a player, optionally filtered by seasons, game type and opponent.",
				Parameters: Schema{Type: "object", Required: []string{"player_name"}, Properties: map[string]Property{
					"player_name": propPlayer, "seasons": propSeasons, "game_type": propGameType, "opponent": propOpponent,
				}},
			},
			run: bind(func(ctx context.Context, a averagesArgs) (any, error) {
				return e.Totals(ctx, scout.TotalsRequest{
					Player: a.PlayerName, Seasons: scout.ParseSeasons(a.Seasons), Opponent: a.Opponent, GameType: a.GameType,
				})
			}),
		},
		{
			def: Definition{
				Name:        PlayerSeasons,
				Description: "Lists the seasons a player has game data for.",
				Parameters: Schema{Type: "object", Required: []string{"player_name"}, Properties: map[string]Property{
					"player_name": propPlayer,
				}},
			},
			run: bind(func(ctx context.Context, a seasonInfoArgs) (any, error) {
				return e.SeasonInfo(ctx, scout.SeasonInfoRequest{Player: a.PlayerName})
			}),
		},
		{
			def: Definition{
				Name:        ComparePlayers,
				Description: "Compares the per-game averages of two players, optionally over specific seasons.",
				Parameters: Schema{Type: "object", Required: []string{"player_a_name", "player_b_name"}, Properties: map[string]Property{
					"player_a_name": propPlayer, "player_b_name": propPlayer, "seasons": propSeasons,
				}},
			},
			run: bind(func(ctx context.Context, a compareArgs) (any, error) {
				return e.Compare(ctx, scout.CompareRequest{
					PlayerA: a.PlayerAName, PlayerB: a.PlayerBName, Seasons: scout.ParseSeasons(a.Seasons),
				})
			}),
		},
		{
			def: Definition{
				Name:        PlayerCareerHigh,
				Description: "Finds the single game in which a player recorded their highest value of a statistic.",
				Parameters: Schema{Type: "object", Required: []string{"player_name", "stat"}, Properties: map[string]Property{
					"player_name": propPlayer, "stat": propStat, "seasons": propSeasons,
				}},
			},
			run: bind(func(ctx context.Context, a careerHighArgs) (any, error) {
				return e.CareerHigh(ctx, scout.CareerHighRequest{
					Player: a.PlayerName, Stat: a.Stat, Seasons: scout.ParseSeasons(a.Seasons),
				})
			}),
		},
		{
			def: Definition{
				Name:        StatProgression,
				Description: "Season-by-season averages of one or more statistics for a player, with career average and peak season.",
				Parameters: Schema{Type: "object", Required: []string{"player_name", "stats"}, Properties: map[string]Property{
					"player_name": propPlayer,
					"stats":       {Type: "string", Description: "Comma-separated statistic names, e.g. 'points, assists, steals'."},
				}},
			},
			run: bind(func(ctx context.Context, a progressionArgs) (any, error) {
				return e.Progression(ctx, scout.ProgressionRequest{Player: a.PlayerName, Stats: strings.Split(a.Stats, ",")})
			}),
		},
		{
			def: Definition{
				Name:        TopPerformer,
				Description: "Finds the player with the highest per-game average of a statistic against a team, optionally within one season.",
				Parameters: Schema{Type: "object", Required: []string{"opponent_team"}, Properties: map[string]Property{
					"opponent_team": {Type: "string", Description: "Opponent team: nickname, city or 3-letter code."},
					"stat":          {Type: "string", Description: "Statistic name; defaults to 'points'."},
					"season":        {Type: "string", Description: "Optional season in YYYY-YY form."},
				}},
			},
			run: bind(func(ctx context.Context, a topPerformerArgs) (any, error) {
				return e.Leaderboard(ctx, scout.LeaderboardRequest{Opponent: a.OpponentTeam, Stat: a.Stat, Season: a.Season})
			}),
		},
	}
}
