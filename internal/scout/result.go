package scout

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
)

// Decimal is a value rounded to one decimal place. It always serializes with
// exactly one fractional digit ("25.0").
type Decimal float64

func round1(v float64) Decimal {
	return Decimal(math.Round(v*10) / 10)
}

func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(float64(d), 'f', 1, 64)), nil
}

// Entry is one key/value pair of an OrderedMap.
type Entry[V any] struct {
	Key   string
	Value V
}

// OrderedMap serializes as a JSON object whose keys keep insertion order.
type OrderedMap[V any] []Entry[V]

// Get returns the value stored under key.
func (m OrderedMap[V]) Get(key string) (V, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	var zero V
	return zero, false
}

// Keys returns the keys in order.
func (m OrderedMap[V]) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

func (m OrderedMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// --------------------------------------------------------------------------
// Result shapes. Field order is the serialized key order.
// --------------------------------------------------------------------------

// AveragesResult is the per-game mean of the averaged stat set.
type AveragesResult struct {
	GamesFound int                 `json:"games_found"`
	Averages   OrderedMap[Decimal] `json:"averages"`
}

// TotalsResult is the integer sum of the totalled stat set.
type TotalsResult struct {
	GamesFound int             `json:"games_found"`
	Totals     OrderedMap[int] `json:"totals"`
}

// SeasonInfoResult lists the distinct seasons a player appears in.
type SeasonInfoResult struct {
	PlayerName    string   `json:"player_name"`
	SeasonCount   int      `json:"season_count"`
	SeasonsPlayed []string `json:"seasons_played"`
}

// NoDataMarker replaces the averages of a compared player without rows.
const NoDataMarker = "No data found."

// CompareResult maps each player name to an OrderedMap[Decimal] of averages
// or to NoDataMarker.
type CompareResult struct {
	Players OrderedMap[any]
}

func (r CompareResult) MarshalJSON() ([]byte, error) {
	return r.Players.MarshalJSON()
}

// CareerHighResult identifies the single game with the highest value of a stat.
type CareerHighResult struct {
	PlayerName string `json:"player_name"`
	Stat       string `json:"stat"`
	StatValue  int    `json:"stat_value"`
	Season     string `json:"season"`
	Opponent   string `json:"opponent"`
	GameID     string `json:"game_id"`
}

// StatProgression is the season-indexed trend of one stat.
type StatProgression struct {
	CareerAverage  Decimal             `json:"career_average"`
	PeakSeason     string              `json:"peak_season"`
	PeakValue      Decimal             `json:"peak_value"`
	SeasonBySeason OrderedMap[Decimal] `json:"season_by_season"`
}

// ProgressionResult holds one StatProgression per requested stat name.
type ProgressionResult struct {
	PlayerName      string                      `json:"player_name"`
	ProgressionData OrderedMap[StatProgression] `json:"progression_data"`
}

// LeaderboardResult is the best per-game performer against an opponent.
type LeaderboardResult struct {
	TopPerformer   string  `json:"top_performer"`
	AgainstTeam    string  `json:"against_team"`
	InSeason       string  `json:"in_season"`
	Stat           string  `json:"stat"`
	AverageValue   Decimal `json:"average_value"`
	GamesPlayed    int     `json:"games_played"`
	SingleGameHigh int     `json:"single_game_high"`
}

// AllTime is the in_season value of an unfiltered leaderboard.
const AllTime = "All-Time"
