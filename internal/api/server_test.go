package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-scout/internal/api/handler"
	"github.com/albapepper/scoracle-scout/internal/api/respond"
	"github.com/albapepper/scoracle-scout/internal/config"
	"github.com/albapepper/scoracle-scout/internal/gamelog"
	"github.com/albapepper/scoracle-scout/internal/scout"
	"github.com/albapepper/scoracle-scout/internal/tools"
)

const gamesCSV = `player_id,player_name,season,game_id,opponent,pts,reb,ast,plus_minus,blk,stl,tov,pf,fgm,fga,fg3m,fg3a
1,A. Example,2023-24,g1,BOS,20,4,5,3,1,1,2,2,8,15,2,5
1,A. Example,2023-24,g2,BOS,30,6,7,-4,0,2,3,1,12,20,4,8
2,B. Sample,2023-24,g3,BOS,18,10,2,5,2,0,1,3,7,14,0,1
`

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestServer(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()
	path := filepath.Join(t.TempDir(), "all_games.csv")
	require.NoError(t, os.WriteFile(path, []byte(gamesCSV), 0o644))

	cfg.StoreBackend = config.StoreCSV
	cfg.CSVPath = path
	store, err := gamelog.Open(context.Background(), cfg, discard)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	registry := tools.New(scout.New(store.Source, discard), discard)
	return NewRouter(store, registry, cfg, discard)
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthRoutes(t *testing.T) {
	h := newTestServer(t, &config.Config{})

	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"healthy"`)

	rec = do(t, h, http.MethodGet, "/health/store", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"store":"csv"`)

	rec = do(t, h, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var root map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &root))
	assert.Equal(t, float64(7), root["tools"])
}

func TestStoreHealthUnavailable(t *testing.T) {
	cfg := &config.Config{}
	h := newTestServer(t, cfg)
	require.NoError(t, os.Remove(cfg.CSVPath))

	rec := do(t, h, http.MethodGet, "/health/store", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), `"unhealthy"`)
}

func TestListTools(t *testing.T) {
	h := newTestServer(t, &config.Config{})
	rec := do(t, h, http.MethodGet, "/api/v1/tools", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var defs []tools.Definition
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &defs))
	require.Len(t, defs, 7)
	assert.Equal(t, tools.PlayerAverages, defs[0].Name)
}

func TestInvokeTool(t *testing.T) {
	h := newTestServer(t, &config.Config{})

	rec := do(t, h, http.MethodPost, "/api/v1/tools/"+tools.PlayerAverages, `{"player_name":"a. example","opponent":"celtics"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var out handler.ToolOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, tools.PlayerAverages, out.Tool)

	var avg struct {
		GamesFound int                `json:"games_found"`
		Averages   map[string]float64 `json:"averages"`
	}
	require.NoError(t, json.Unmarshal([]byte(out.Output), &avg), out.Output)
	assert.Equal(t, 2, avg.GamesFound)
	assert.Equal(t, 25.0, avg.Averages["pts"])
	assert.Equal(t, -0.5, avg.Averages["plus_minus"])

	rec = do(t, h, http.MethodPost, "/api/v1/tools/"+tools.TopPerformer, `{"opponent_team":"Boston","stat":"rebounds"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t,
		`{"top_performer":"B. Sample","against_team":"BOS","in_season":"All-Time","stat":"rebounds","average_value":10.0,"games_played":1,"single_game_high":10}`,
		out.Output)
}

func TestInvokeToolDiagnostics(t *testing.T) {
	h := newTestServer(t, &config.Config{})

	rec := do(t, h, http.MethodPost, "/api/v1/tools/"+tools.PlayerSeasons, `{"player_name":"Nobody"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var out handler.ToolOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "No data found for this player.", out.Output)

	rec = do(t, h, http.MethodPost, "/api/v1/tools/"+tools.PlayerSeasons, "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Invalid arguments: player name is required.", out.Output)

	rec = do(t, h, http.MethodPost, "/api/v1/tools/"+tools.TopPerformer, `{"opponent_team":"Sonics"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Could not find the team 'Sonics'.", out.Output)
}

func TestInvokeUnknownTool(t *testing.T) {
	h := newTestServer(t, &config.Config{})
	rec := do(t, h, http.MethodPost, "/api/v1/tools/drop_tables", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp respond.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "UNKNOWN_TOOL", resp.Error.Code)
}

func TestInvokeToolBodyTooLarge(t *testing.T) {
	h := newTestServer(t, &config.Config{})
	body := `{"player_name":"` + strings.Repeat("x", 70<<10) + `"}`
	rec := do(t, h, http.MethodPost, "/api/v1/tools/"+tools.PlayerSeasons, body)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestRateLimit(t *testing.T) {
	h := newTestServer(t, &config.Config{
		RateLimitEnabled:  true,
		RateLimitRequests: 1,
		RateLimitWindow:   time.Minute,
	})

	assert.Equal(t, http.StatusOK, do(t, h, http.MethodGet, "/health", "").Code)
	rec := do(t, h, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))
}

func TestRequestLoggerPassesStatus(t *testing.T) {
	h := RequestLogger(discard)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}
