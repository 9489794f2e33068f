package canonical

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"points", Points, true},
		{"  PTS ", Points, true},
		{"Rebounds", Rebounds, true},
		{"dimes", Assists, true},
		{"+/-", PlusMinus, true},
		{"three-pointers made", ThreesMade, true},
		{"3PA", ThreesAtt, true},
		{"minutes", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := StatColumn(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStatColumns(t *testing.T) {
	resolved, invalid := StatColumns("Points, assists,, bogus ,steals, xyz")
	assert.Equal(t, []Stat{
		{Name: "points", Column: Points},
		{Name: "assists", Column: Assists},
		{Name: "steals", Column: Steals},
	}, resolved)
	assert.Equal(t, []string{"bogus", "xyz"}, invalid)

	resolved, invalid = StatColumns(" , ")
	assert.Empty(t, resolved)
	assert.Empty(t, invalid)
}

func TestIsStatColumn(t *testing.T) {
	assert.True(t, IsStatColumn(Points))
	assert.True(t, IsStatColumn(ThreesAtt))
	assert.False(t, IsStatColumn("points"))
}

func TestTeamCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"lakers", "LAL", true},
		{"Los Angeles Lakers", "LAL", true},
		{"Golden State", "GSW", true},
		{"warriors", "GSW", true},
		{"gsw", "GSW", true},
		{" Sixers ", "PHI", true},
		{"Trail Blazers", "POR", true},
		{"BRK", "BKN", true},
		{"Boston Celtics", "BOS", true},
		{"Sonics", "SONICS", false},
		{" sea ", "SEA", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := TeamCode(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEveryTeamResolvesToItself(t *testing.T) {
	for _, team := range Teams {
		for _, name := range []string{team.Code, team.City, team.Name, team.City + " " + team.Name} {
			code, ok := TeamCode(name)
			assert.True(t, ok, name)
			assert.Equal(t, team.Code, code, name)
		}
	}
}

func TestTeamCodes(t *testing.T) {
	codes := TeamCodes()
	assert.Len(t, codes, 30)
	assert.IsIncreasing(t, codes)
	assert.True(t, IsTeamCode("OKC"))
	assert.False(t, IsTeamCode("okc"))
}
