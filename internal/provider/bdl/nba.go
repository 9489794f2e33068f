package bdl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/albapepper/scoracle-scout/internal/canonical"
	"github.com/albapepper/scoracle-scout/internal/gamelog"
)

const nbaBaseURL = "https://api.balldontlie.io/v1"

// NBAHandler fetches NBA box scores from BallDontLie and normalizes them into
// game log records.
type NBAHandler struct {
	client *Client
	logger *slog.Logger
}

// NewNBAHandler creates an NBA handler with the given API key.
func NewNBAHandler(apiKey string, requestsPerMinute int, logger *slog.Logger) *NBAHandler {
	return NewNBAHandlerWithClient(NewClient(nbaBaseURL, apiKey, requestsPerMinute, logger), logger)
}

// NewNBAHandlerWithClient creates an NBA handler over an existing client.
func NewNBAHandlerWithClient(client *Client, logger *slog.Logger) *NBAHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &NBAHandler{client: client, logger: logger}
}

// --------------------------------------------------------------------------
// Teams
// --------------------------------------------------------------------------

type bdlTeamRaw struct {
	ID           int    `json:"id"`
	Abbreviation string `json:"abbreviation"`
	City         string `json:"city"`
	Name         string `json:"name"`
}

// GetTeamCodes returns BDL team id → canonical team code.
func (h *NBAHandler) GetTeamCodes(ctx context.Context) (map[int]string, error) {
	resp, err := h.client.get(ctx, "/teams", nil)
	if err != nil {
		return nil, fmt.Errorf("fetch NBA teams: %w", err)
	}

	var raw []bdlTeamRaw
	if err := json.Unmarshal(resp.Data, &raw); err != nil {
		return nil, fmt.Errorf("decode NBA teams: %w", err)
	}

	codes := make(map[int]string, len(raw))
	for _, t := range raw {
		code, ok := canonical.TeamCode(t.Abbreviation)
		if !ok {
			// Historical franchises are kept under their own abbreviation.
			h.logger.Debug("Non-canonical team abbreviation", "id", t.ID, "abbreviation", t.Abbreviation)
		}
		codes[t.ID] = code
	}
	return codes, nil
}

// --------------------------------------------------------------------------
// Game logs (cursor-paginated box scores)
// --------------------------------------------------------------------------

type bdlStatRaw struct {
	ID       int             `json:"id"`
	Min      json.RawMessage `json:"min"`
	PTS      *int            `json:"pts"`
	REB      *int            `json:"reb"`
	AST      *int            `json:"ast"`
	STL      *int            `json:"stl"`
	BLK      *int            `json:"blk"`
	Turnover *int            `json:"turnover"`
	PF       *int            `json:"pf"`
	FGM      *int            `json:"fgm"`
	FGA      *int            `json:"fga"`
	FG3M     *int            `json:"fg3m"`
	FG3A     *int            `json:"fg3a"`
	Player   struct {
		ID        int    `json:"id"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
	} `json:"player"`
	Team struct {
		ID int `json:"id"`
	} `json:"team"`
	Game struct {
		ID            int  `json:"id"`
		Season        int  `json:"season"`
		Postseason    bool `json:"postseason"`
		HomeTeamID    int  `json:"home_team_id"`
		VisitorTeamID int  `json:"visitor_team_id"`
	} `json:"game"`
}

// GetGameLogs iterates every box score line of a season, calling fn for each
// line where the player saw the floor. teams maps BDL team ids to codes (see
// GetTeamCodes).
func (h *NBAHandler) GetGameLogs(ctx context.Context, season int, postseason bool, teams map[int]string, fn func(gamelog.Record) error) error {
	params := url.Values{
		"seasons[]":  {strconv.Itoa(season)},
		"postseason": {strconv.FormatBool(postseason)},
		"per_page":   {"100"},
	}

	for {
		resp, err := h.client.get(ctx, "/stats", params)
		if err != nil {
			return fmt.Errorf("fetch NBA game logs: %w", err)
		}

		var raw []bdlStatRaw
		if err := json.Unmarshal(resp.Data, &raw); err != nil {
			return fmt.Errorf("decode NBA game logs: %w", err)
		}

		for _, r := range raw {
			if !played(r.Min) {
				continue
			}
			if err := fn(normalizeGameLog(r, teams)); err != nil {
				return err
			}
		}

		if resp.Meta.NextCursor == nil {
			break
		}
		params.Set("cursor", strconv.Itoa(*resp.Meta.NextCursor))
	}
	return nil
}

func normalizeGameLog(raw bdlStatRaw, teams map[int]string) gamelog.Record {
	opponentID := raw.Game.HomeTeamID
	if raw.Team.ID == raw.Game.HomeTeamID {
		opponentID = raw.Game.VisitorTeamID
	}
	opponent, ok := teams[opponentID]
	if !ok {
		opponent = strconv.Itoa(opponentID)
	}

	gameType := gamelog.RegularSeason
	if raw.Game.Postseason {
		gameType = gamelog.Playoffs
	}

	// BDL box scores carry no plus-minus; it stays zero.
	return gamelog.Record{
		PlayerID:   raw.Player.ID,
		PlayerName: strings.TrimSpace(raw.Player.FirstName + " " + raw.Player.LastName),
		Season:     SeasonLabel(raw.Game.Season),
		GameID:     strconv.Itoa(raw.Game.ID),
		Opponent:   opponent,
		GameType:   gameType,
		PTS:        deref(raw.PTS),
		REB:        deref(raw.REB),
		AST:        deref(raw.AST),
		BLK:        deref(raw.BLK),
		STL:        deref(raw.STL),
		TOV:        deref(raw.Turnover),
		PF:         deref(raw.PF),
		FGM:        deref(raw.FGM),
		FGA:        deref(raw.FGA),
		FG3M:       deref(raw.FG3M),
		FG3A:       deref(raw.FG3A),
	}
}

// SeasonLabel formats a season start year as "2023-24".
func SeasonLabel(startYear int) string {
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// played reports whether a BDL minutes value is non-zero. BDL sends minutes as
// a string ("34", "34:12", "00") or null for players who did not play.
func played(minutes json.RawMessage) bool {
	var s string
	if err := json.Unmarshal(minutes, &s); err != nil {
		var n float64
		if err := json.Unmarshal(minutes, &n); err != nil {
			return false
		}
		return n > 0
	}
	head, _, _ := strings.Cut(strings.TrimSpace(s), ":")
	n, err := strconv.Atoi(head)
	if err != nil {
		return false
	}
	return n > 0 || strings.Trim(s, "0:") != ""
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
