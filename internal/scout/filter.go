package scout

import (
	"strings"

	"github.com/albapepper/scoracle-scout/internal/gamelog"
)

// Filter is a conjunction of record predicates. Zero-valued fields impose no
// constraint. Opponent must already be a canonical team code.
type Filter struct {
	Player   string   // case-insensitive exact match
	Seasons  []string // membership
	Opponent string   // exact match
	GameType string   // case-insensitive exact match
}

// Apply returns the records matching every set predicate, in input order.
func (f Filter) Apply(records []gamelog.Record) []gamelog.Record {
	player := strings.ToLower(strings.TrimSpace(f.Player))
	var seasons map[string]bool
	if len(f.Seasons) > 0 {
		seasons = make(map[string]bool, len(f.Seasons))
		for _, s := range f.Seasons {
			seasons[s] = true
		}
	}

	out := make([]gamelog.Record, 0)
	for _, r := range records {
		if player != "" && strings.ToLower(r.PlayerName) != player {
			continue
		}
		if seasons != nil && !seasons[r.Season] {
			continue
		}
		if f.Opponent != "" && r.Opponent != f.Opponent {
			continue
		}
		if f.GameType != "" && !strings.EqualFold(r.GameType, f.GameType) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ParseSeasons splits a comma-separated season list, trimming each element and
// dropping empties. An empty input yields nil (no season constraint).
func ParseSeasons(list string) []string {
	var seasons []string
	for _, s := range strings.Split(list, ",") {
		if s = strings.TrimSpace(s); s != "" {
			seasons = append(seasons, s)
		}
	}
	return seasons
}
