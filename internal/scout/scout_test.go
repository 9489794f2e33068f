package scout

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-scout/internal/gamelog"
)

func fixture() []gamelog.Record {
	return []gamelog.Record{
		{PlayerID: 1, PlayerName: "A. Example", Season: "2023-24", GameID: "g1", Opponent: "BOS", GameType: gamelog.RegularSeason,
			PTS: 20, REB: 5, AST: 7, PlusMinus: -3, BLK: 1, STL: 2, TOV: 3, PF: 2, FGM: 8, FGA: 16, FG3M: 2, FG3A: 6},
		{PlayerID: 1, PlayerName: "A. Example", Season: "2023-24", GameID: "g2", Opponent: "BOS", GameType: gamelog.RegularSeason,
			PTS: 30, REB: 7, AST: 4, PlusMinus: 9, BLK: 0, STL: 1, TOV: 2, PF: 4, FGM: 11, FGA: 20, FG3M: 4, FG3A: 9},
		{PlayerID: 1, PlayerName: "A. Example", Season: "2022-23", GameID: "g3", Opponent: "NYK", GameType: gamelog.Playoffs,
			PTS: 30, REB: 10, AST: 2, PlusMinus: 4, BLK: 2, STL: 0, TOV: 1, PF: 3, FGM: 12, FGA: 22, FG3M: 1, FG3A: 3},
		{PlayerID: 2, PlayerName: "B. Sample", Season: "2023-24", GameID: "g1", Opponent: "BOS", GameType: gamelog.RegularSeason,
			PTS: 25, REB: 12, AST: 1, PlusMinus: 2, BLK: 3, STL: 1, TOV: 2, PF: 5},
		{PlayerID: 2, PlayerName: "B. Sample", Season: "2019-20", GameID: "g9", Opponent: "LAL", GameType: gamelog.RegularSeason,
			PTS: 10, REB: 8, AST: 0},
		{PlayerID: 3, PlayerName: "C. Tied", Season: "2023-24", GameID: "g4", Opponent: "BOS", GameType: gamelog.RegularSeason,
			PTS: 25, REB: 2, AST: 2},
	}
}

func newEngine(records []gamelog.Record) *Engine {
	return New(&gamelog.MemorySource{Records: records}, nil)
}

type failingSource struct{ err error }

func (f failingSource) Load(context.Context) ([]gamelog.Record, error) { return nil, f.err }

func TestAveragesScenario(t *testing.T) {
	e := newEngine(fixture())
	res, err := e.Averages(context.Background(), AveragesRequest{Player: "a. example", Seasons: []string{"2023-24"}, Opponent: "celtics"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.GamesFound)

	pts, ok := res.Averages.Get("pts")
	require.True(t, ok)
	assert.Equal(t, Decimal(25.0), pts)

	fg, _ := res.Averages.Get(FieldGoalPct)
	assert.Equal(t, Decimal(52.8), fg) // 19/36

	assert.Equal(t, []string{"pts", "reb", "ast", "blk", "stl", "tov", "plus_minus", FieldGoalPct, ThreePct}, res.Averages.Keys())
}

func TestAveragesZeroAttempts(t *testing.T) {
	e := newEngine(fixture())
	res, err := e.Averages(context.Background(), AveragesRequest{Player: "B. Sample"})
	require.NoError(t, err)

	fg, _ := res.Averages.Get(FieldGoalPct)
	fg3, _ := res.Averages.Get(ThreePct)
	assert.Equal(t, Decimal(0), fg)
	assert.Equal(t, Decimal(0), fg3)
}

func TestAveragesGameTypeFilter(t *testing.T) {
	e := newEngine(fixture())
	res, err := e.Averages(context.Background(), AveragesRequest{Player: "A. Example", GameType: "playoffs"})
	require.NoError(t, err)
	assert.Equal(t, 1, res.GamesFound)
}

func TestAveragesNoData(t *testing.T) {
	e := newEngine(fixture())
	_, err := e.Averages(context.Background(), AveragesRequest{Player: "Nobody Here"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoData))
	assert.Equal(t, "No game data found for the specified criteria.", err.Error())
}

func TestAveragesUnknownTeamMatchesNothing(t *testing.T) {
	e := newEngine(fixture())
	_, err := e.Averages(context.Background(), AveragesRequest{Player: "A. Example", Opponent: "Sonics"})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestTeamAliasesSelectSameRows(t *testing.T) {
	e := newEngine(fixture())
	var results []*AveragesResult
	for _, alias := range []string{"BOS", "bos", "Celtics", "boston", "Boston Celtics"} {
		res, err := e.Averages(context.Background(), AveragesRequest{Player: "A. Example", Opponent: alias})
		require.NoError(t, err, alias)
		results = append(results, res)
	}
	for _, r := range results[1:] {
		assert.Equal(t, results[0], r)
	}
}

func TestTotalsMatchAverages(t *testing.T) {
	e := newEngine(fixture())
	ctx := context.Background()

	avg, err := e.Averages(ctx, AveragesRequest{Player: "A. Example"})
	require.NoError(t, err)
	tot, err := e.Totals(ctx, TotalsRequest{Player: "A. Example"})
	require.NoError(t, err)
	require.Equal(t, avg.GamesFound, tot.GamesFound)

	for _, col := range averagedStats {
		a, _ := avg.Averages.Get(col)
		s, _ := tot.Totals.Get(col)
		assert.InDelta(t, float64(s)/float64(tot.GamesFound), float64(a), 0.05, col)
	}

	pts, _ := tot.Totals.Get("pts")
	assert.Equal(t, 80, pts)
	fga, _ := tot.Totals.Get("fga")
	assert.Equal(t, 58, fga)
}

func TestSeasonInfoKeepsStorageOrder(t *testing.T) {
	e := newEngine(fixture())
	res, err := e.SeasonInfo(context.Background(), SeasonInfoRequest{Player: "B. SAMPLE"})
	require.NoError(t, err)
	assert.Equal(t, "B. Sample", res.PlayerName)
	assert.Equal(t, 2, res.SeasonCount)
	assert.Equal(t, []string{"2023-24", "2019-20"}, res.SeasonsPlayed)
}

func TestCompareWithMissingPlayer(t *testing.T) {
	e := newEngine(fixture())
	res, err := e.Compare(context.Background(), CompareRequest{PlayerA: "A. Example", PlayerB: "Ghost"})
	require.NoError(t, err)

	assert.Equal(t, []string{"A. Example", "Ghost"}, res.Players.Keys())
	ghost, _ := res.Players.Get("Ghost")
	assert.Equal(t, NoDataMarker, ghost)

	line, _ := res.Players.Get("A. Example")
	avg, ok := line.(OrderedMap[Decimal])
	require.True(t, ok)
	pts, _ := avg.Get("pts")
	assert.Equal(t, Decimal(26.7), pts)

	raw, err := json.Marshal(res)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Ghost":"No data found."`)
}

func TestCareerHigh(t *testing.T) {
	e := newEngine(fixture())
	res, err := e.CareerHigh(context.Background(), CareerHighRequest{Player: "A. Example", Stat: "Points"})
	require.NoError(t, err)

	// g2 and g3 both score 30; the earlier stored row wins.
	assert.Equal(t, 30, res.StatValue)
	assert.Equal(t, "2023-24", res.Season)
	assert.Equal(t, "BOS", res.Opponent)
	assert.Equal(t, "g2", res.GameID)

	again, err := e.CareerHigh(context.Background(), CareerHighRequest{Player: "A. Example", Stat: "pts"})
	require.NoError(t, err)
	assert.Equal(t, res.GameID, again.GameID)
}

func TestCareerHighSynonymsAgree(t *testing.T) {
	e := newEngine(fixture())
	a, err := e.CareerHigh(context.Background(), CareerHighRequest{Player: "A. Example", Stat: "three-pointers made"})
	require.NoError(t, err)
	b, err := e.CareerHigh(context.Background(), CareerHighRequest{Player: "A. Example", Stat: "fg3m"})
	require.NoError(t, err)
	assert.Equal(t, a.StatValue, b.StatValue)
	assert.Equal(t, a.GameID, b.GameID)
	assert.Equal(t, 4, a.StatValue)
}

func TestCareerHighUnknownStat(t *testing.T) {
	e := newEngine(fixture())
	_, err := e.CareerHigh(context.Background(), CareerHighRequest{Player: "A. Example", Stat: "dunks"})
	var statErr *UnknownStatError
	require.ErrorAs(t, err, &statErr)
	assert.Equal(t, []string{"dunks"}, statErr.Stats)
}

func TestProgression(t *testing.T) {
	e := newEngine(fixture())
	res, err := e.Progression(context.Background(), ProgressionRequest{Player: "A. Example", Stats: []string{"points", "REB"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"points", "reb"}, res.ProgressionData.Keys())

	pts, _ := res.ProgressionData.Get("points")
	assert.Equal(t, []string{"2022-23", "2023-24"}, pts.SeasonBySeason.Keys())
	assert.Equal(t, Decimal(26.7), pts.CareerAverage)
	assert.Equal(t, "2022-23", pts.PeakSeason)
	assert.Equal(t, Decimal(30.0), pts.PeakValue)

	for _, entry := range res.ProgressionData {
		peak := Decimal(math.Inf(-1))
		for _, s := range entry.Value.SeasonBySeason {
			peak = max(peak, s.Value)
		}
		assert.Equal(t, peak, entry.Value.PeakValue, entry.Key)
	}
}

func TestProgressionInvalidStats(t *testing.T) {
	e := newEngine(fixture())
	_, err := e.Progression(context.Background(), ProgressionRequest{Player: "A. Example", Stats: []string{"points", "dunks", "vibes"}})
	var statErr *UnknownStatError
	require.ErrorAs(t, err, &statErr)
	assert.Equal(t, []string{"dunks", "vibes"}, statErr.Stats)
}

func TestLeaderboard(t *testing.T) {
	e := newEngine(fixture())
	res, err := e.Leaderboard(context.Background(), LeaderboardRequest{Opponent: "Celtics", Stat: "points", Season: "2023-24"})
	require.NoError(t, err)

	// A. Example, B. Sample and C. Tied all average 25.0; alphabetical order wins.
	assert.Equal(t, "A. Example", res.TopPerformer)
	assert.Equal(t, "BOS", res.AgainstTeam)
	assert.Equal(t, "2023-24", res.InSeason)
	assert.Equal(t, Decimal(25.0), res.AverageValue)
	assert.Equal(t, 2, res.GamesPlayed)
	assert.Equal(t, 30, res.SingleGameHigh)
	assert.GreaterOrEqual(t, float64(res.SingleGameHigh), float64(res.AverageValue))
}

func TestLeaderboardAllTimeAndDefaultStat(t *testing.T) {
	e := newEngine(fixture())
	res, err := e.Leaderboard(context.Background(), LeaderboardRequest{Opponent: "LAL"})
	require.NoError(t, err)
	assert.Equal(t, AllTime, res.InSeason)
	assert.Equal(t, "points", res.Stat)
	assert.Equal(t, "B. Sample", res.TopPerformer)
}

func TestLeaderboardNoGames(t *testing.T) {
	e := newEngine(fixture())
	_, err := e.Leaderboard(context.Background(), LeaderboardRequest{Opponent: "Celtics", Season: "1999-00"})
	require.ErrorIs(t, err, ErrNoData)
	assert.Contains(t, err.Error(), "No game data found")
}

func TestLeaderboardUnknownTeam(t *testing.T) {
	e := newEngine(fixture())
	_, err := e.Leaderboard(context.Background(), LeaderboardRequest{Opponent: "Sonics"})
	var teamErr *UnknownTeamError
	require.ErrorAs(t, err, &teamErr)
	assert.Equal(t, "Sonics", teamErr.Team)
}

func TestStoreFailure(t *testing.T) {
	boom := errors.New("disk gone")
	e := New(failingSource{err: boom}, nil)
	_, err := e.Totals(context.Background(), TotalsRequest{Player: "A. Example"})
	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.ErrorIs(t, err, boom)
}

func TestMissingPlayerIsInvalid(t *testing.T) {
	e := newEngine(fixture())
	_, err := e.SeasonInfo(context.Background(), SeasonInfoRequest{Player: "  "})
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCompareSeasons(t *testing.T) {
	tests := []struct {
		a, b string
		less bool
	}{
		{"2019-20", "2023-24", true},
		{"2023-24", "2019-20", false},
		{"1999-00", "2000-01", true},
		{"abc", "2000-01", false},
	}
	for _, tt := range tests {
		t.Run(tt.a+"_"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.less, CompareSeasons(tt.a, tt.b) < 0)
		})
	}
}

func TestDecimalJSON(t *testing.T) {
	raw, err := json.Marshal(AveragesResult{GamesFound: 2, Averages: OrderedMap[Decimal]{{Key: "pts", Value: 25}, {Key: "reb", Value: 6}}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"games_found":2,"averages":{"pts":25.0,"reb":6.0}}`, string(raw))
	assert.Equal(t, `{"games_found":2,"averages":{"pts":25.0,"reb":6.0}}`, string(raw))
}
