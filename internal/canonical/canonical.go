// Package canonical maps free-form user vocabulary onto the canonical keys used
// at rest: stat synonyms onto game_logs column names and team nicknames, cities
// and abbreviations onto 3-letter team codes.
//
// Lookups are case-insensitive and whitespace-trimmed. The tables are read-only
// after package init and safe for concurrent use.
package canonical

import (
	"sort"
	"strings"
)

// Canonical stat columns.
const (
	Points         = "pts"
	Rebounds       = "reb"
	Assists        = "ast"
	Blocks         = "blk"
	Steals         = "stl"
	Turnovers      = "tov"
	Fouls          = "pf"
	PlusMinus      = "plus_minus"
	FieldGoalsMade = "fgm"
	FieldGoalsAtt  = "fga"
	ThreesMade     = "fg3m"
	ThreesAtt      = "fg3a"
)

// statSynonyms maps every accepted spelling to its column. Canonical codes map
// to themselves so that "pts" and "points" resolve identically.
var statSynonyms = map[string]string{
	"points": Points, "point": Points, "pts": Points, "scoring": Points,
	"rebounds": Rebounds, "rebound": Rebounds, "boards": Rebounds, "reb": Rebounds,
	"assists": Assists, "assist": Assists, "ast": Assists, "dimes": Assists,
	"blocks": Blocks, "block": Blocks, "blk": Blocks,
	"steals": Steals, "steal": Steals, "stl": Steals,
	"turnovers": Turnovers, "turnover": Turnovers, "tov": Turnovers, "to": Turnovers,
	"fouls": Fouls, "personal fouls": Fouls, "pf": Fouls,
	"plus-minus": PlusMinus, "plus minus": PlusMinus, "plus_minus": PlusMinus, "+/-": PlusMinus,
	"field goals made": FieldGoalsMade, "field goals": FieldGoalsMade, "fgm": FieldGoalsMade,
	"field goal attempts": FieldGoalsAtt, "field goals attempted": FieldGoalsAtt, "fga": FieldGoalsAtt,
	"three-pointers made": ThreesMade, "three pointers made": ThreesMade, "threes": ThreesMade,
	"3pm": ThreesMade, "3-pointers made": ThreesMade, "fg3m": ThreesMade,
	"three-pointers attempted": ThreesAtt, "three pointers attempted": ThreesAtt,
	"3pa": ThreesAtt, "fg3a": ThreesAtt,
}

// StatColumn resolves a stat name or synonym to its canonical column.
func StatColumn(name string) (string, bool) {
	col, ok := statSynonyms[normalize(name)]
	return col, ok
}

// StatColumns resolves a comma-separated list of stat names. Tokens are
// trimmed and lower-cased; empty tokens are skipped. Every token that does not
// resolve is returned in invalid, in input order.
func StatColumns(list string) (resolved []Stat, invalid []string) {
	for _, raw := range strings.Split(list, ",") {
		token := normalize(raw)
		if token == "" {
			continue
		}
		col, ok := statSynonyms[token]
		if !ok {
			invalid = append(invalid, token)
			continue
		}
		resolved = append(resolved, Stat{Name: token, Column: col})
	}
	return resolved, invalid
}

// Stat pairs the name a caller used with the column it resolved to.
type Stat struct {
	Name   string
	Column string
}

// IsStatColumn reports whether col is one of the canonical columns.
func IsStatColumn(col string) bool {
	for _, c := range statSynonyms {
		if c == col {
			return true
		}
	}
	return false
}

// --------------------------------------------------------------------------
// Teams
// --------------------------------------------------------------------------

// Team describes one franchise and every alias that resolves to it.
type Team struct {
	Code    string
	City    string
	Name    string
	Aliases []string
}

// Teams lists the thirty franchises by canonical code.
var Teams = []Team{
	{Code: "ATL", City: "Atlanta", Name: "Hawks"},
	{Code: "BOS", City: "Boston", Name: "Celtics"},
	{Code: "BKN", City: "Brooklyn", Name: "Nets", Aliases: []string{"bkn", "brk"}},
	{Code: "CHA", City: "Charlotte", Name: "Hornets", Aliases: []string{"cho"}},
	{Code: "CHI", City: "Chicago", Name: "Bulls"},
	{Code: "CLE", City: "Cleveland", Name: "Cavaliers", Aliases: []string{"cavs"}},
	{Code: "DAL", City: "Dallas", Name: "Mavericks", Aliases: []string{"mavs"}},
	{Code: "DEN", City: "Denver", Name: "Nuggets"},
	{Code: "DET", City: "Detroit", Name: "Pistons"},
	{Code: "GSW", City: "Golden State", Name: "Warriors", Aliases: []string{"dubs", "gs"}},
	{Code: "HOU", City: "Houston", Name: "Rockets"},
	{Code: "IND", City: "Indiana", Name: "Pacers"},
	{Code: "LAC", City: "LA Clippers", Name: "Clippers", Aliases: []string{"los angeles clippers"}},
	{Code: "LAL", City: "Los Angeles", Name: "Lakers", Aliases: []string{"la lakers", "los angeles lakers"}},
	{Code: "MEM", City: "Memphis", Name: "Grizzlies", Aliases: []string{"grizz"}},
	{Code: "MIA", City: "Miami", Name: "Heat"},
	{Code: "MIL", City: "Milwaukee", Name: "Bucks"},
	{Code: "MIN", City: "Minnesota", Name: "Timberwolves", Aliases: []string{"wolves"}},
	{Code: "NOP", City: "New Orleans", Name: "Pelicans", Aliases: []string{"pels", "nop", "no"}},
	{Code: "NYK", City: "New York", Name: "Knicks", Aliases: []string{"ny"}},
	{Code: "OKC", City: "Oklahoma City", Name: "Thunder"},
	{Code: "ORL", City: "Orlando", Name: "Magic"},
	{Code: "PHI", City: "Philadelphia", Name: "76ers", Aliases: []string{"sixers", "philly"}},
	{Code: "PHX", City: "Phoenix", Name: "Suns", Aliases: []string{"pho"}},
	{Code: "POR", City: "Portland", Name: "Trail Blazers", Aliases: []string{"blazers"}},
	{Code: "SAC", City: "Sacramento", Name: "Kings"},
	{Code: "SAS", City: "San Antonio", Name: "Spurs", Aliases: []string{"sa"}},
	{Code: "TOR", City: "Toronto", Name: "Raptors", Aliases: []string{"raps"}},
	{Code: "UTA", City: "Utah", Name: "Jazz", Aliases: []string{"uth"}},
	{Code: "WAS", City: "Washington", Name: "Wizards", Aliases: []string{"wsh"}},
}

var (
	teamAliases = make(map[string]string)
	teamCodes   = make(map[string]bool)
)

func init() {
	for _, t := range Teams {
		teamCodes[t.Code] = true
		keys := append([]string{t.Code, t.City, t.Name, t.City + " " + t.Name}, t.Aliases...)
		for _, k := range keys {
			teamAliases[normalize(k)] = t.Code
		}
	}
}

// TeamCode resolves a nickname, city or abbreviation to the canonical team
// code. When nothing matches, the upper-cased input is returned with ok=false;
// filtering on that value simply matches no rows.
func TeamCode(name string) (code string, ok bool) {
	if code, ok := teamAliases[normalize(name)]; ok {
		return code, true
	}
	return strings.ToUpper(strings.TrimSpace(name)), false
}

// IsTeamCode reports whether code is one of the canonical team codes.
func IsTeamCode(code string) bool {
	return teamCodes[code]
}

// TeamCodes returns every canonical team code, sorted.
func TeamCodes() []string {
	codes := make([]string, 0, len(teamCodes))
	for c := range teamCodes {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
