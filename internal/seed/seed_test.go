package seed

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/albapepper/scoracle-scout/internal/gamelog"
	"github.com/albapepper/scoracle-scout/internal/provider/bdl"
)

type memoryWriter struct {
	records []gamelog.Record
	failOn  int
	calls   int
}

func (m *memoryWriter) Write(_ context.Context, records []gamelog.Record) (int, error) {
	m.calls++
	if m.failOn > 0 && m.calls == m.failOn {
		return 0, errors.New("disk full")
	}
	m.records = append(m.records, records...)
	return len(records), nil
}

var quietLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

const csvData = `player_id,player_name,season,game_id,opponent,pts,reb,ast,plus_minus,blk,stl,tov,pf,fgm,fga,fg3m,fg3a
1,A. Example,2023-24,g1,BOS,20,5,7,-3,1,2,3,2,8,16,2,6
1,A. Example,2023-24,g2,BOS,30,7,4,9,0,1,2,4,11,20,4,9
`

func TestImportCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all_games.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))

	w := &memoryWriter{}
	result, err := ImportCSV(context.Background(), w, path, quietLogger)
	require.NoError(t, err)
	assert.Equal(t, 2, result.GameLogsFetched)
	assert.Equal(t, 2, result.GameLogsWritten)
	require.Len(t, w.records, 2)
	assert.Equal(t, "g1", w.records[0].GameID)
	assert.Equal(t, "teams=0 fetched=2 written=2 skipped=0 errors=0", result.Summary())
}

func TestImportCSVWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "all_games.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0o644))

	_, err := ImportCSV(context.Background(), &memoryWriter{failOn: 1}, path, quietLogger)
	assert.ErrorContains(t, err, "disk full")
}

func TestImportCSVMissingFile(t *testing.T) {
	_, err := ImportCSV(context.Background(), &memoryWriter{}, filepath.Join(t.TempDir(), "none.csv"), quietLogger)
	assert.ErrorContains(t, err, "open")
}

func TestSeedResultAdd(t *testing.T) {
	var total SeedResult
	total.Add(SeedResult{TeamsResolved: 30, GameLogsFetched: 10, GameLogsWritten: 8})
	total.Add(SeedResult{GameLogsFetched: 5, GameLogsWritten: 5, Errors: []string{"x"}})
	total.AddErrorf("batch %d failed", 3)

	assert.Equal(t, "teams=30 fetched=15 written=13 skipped=2 errors=2", total.Summary())
}

func TestSeedNBA(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/teams", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":2,"abbreviation":"BOS"},{"id":10,"abbreviation":"GSW"}],"meta":{}}`))
	})
	mux.HandleFunc("/stats", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("postseason") == "true" {
			w.Write([]byte(`{"data":[],"meta":{"next_cursor":null}}`))
			return
		}
		w.Write([]byte(`{"data":[{"id":1,"min":"30","pts":22,"player":{"id":5,"first_name":"A.","last_name":"Example"},
			"team":{"id":2},"game":{"id":77,"season":2023,"postseason":false,"home_team_id":10,"visitor_team_id":2}}],
			"meta":{"next_cursor":null}}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	handler := bdl.NewNBAHandlerWithClient(bdl.NewClient(srv.URL, "k", 60000, quietLogger), quietLogger)
	w := &memoryWriter{}
	result := SeedNBA(context.Background(), w, handler, 2023, quietLogger)

	assert.Empty(t, result.Errors)
	assert.Equal(t, 2, result.TeamsResolved)
	assert.Equal(t, 1, result.GameLogsWritten)
	require.Len(t, w.records, 1)
	assert.Equal(t, "GSW", w.records[0].Opponent)
	assert.Equal(t, "2023-24", w.records[0].Season)
	assert.Equal(t, "A. Example", w.records[0].PlayerName)
}
