package gamelog

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"
)

// Table is the game log table name, shared by both SQL backends.
const Table = "game_logs"

// PostgresSchema creates the game_logs table. The serial id preserves
// insertion order, which Load relies on.
const PostgresSchema = `
CREATE TABLE IF NOT EXISTS ` + Table + ` (
	id          BIGSERIAL PRIMARY KEY,
	player_id   INTEGER NOT NULL DEFAULT 0,
	player_name TEXT    NOT NULL,
	season      TEXT    NOT NULL,
	game_id     TEXT    NOT NULL,
	opponent    TEXT    NOT NULL,
	pts         INTEGER NOT NULL DEFAULT 0,
	reb         INTEGER NOT NULL DEFAULT 0,
	ast         INTEGER NOT NULL DEFAULT 0,
	plus_minus  INTEGER NOT NULL DEFAULT 0,
	blk         INTEGER NOT NULL DEFAULT 0,
	stl         INTEGER NOT NULL DEFAULT 0,
	tov         INTEGER NOT NULL DEFAULT 0,
	pf          INTEGER NOT NULL DEFAULT 0,
	fgm         INTEGER NOT NULL DEFAULT 0,
	fga         INTEGER NOT NULL DEFAULT 0,
	fg3m        INTEGER NOT NULL DEFAULT 0,
	fg3a        INTEGER NOT NULL DEFAULT 0,
	game_type   TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	UNIQUE (player_name, game_id)
);
CREATE INDEX IF NOT EXISTS idx_game_logs_player ON ` + Table + ` (lower(player_name));
CREATE INDEX IF NOT EXISTS idx_game_logs_opponent ON ` + Table + ` (opponent, season);
`

// SQLiteSchema is the SQLite rendition of PostgresSchema.
const SQLiteSchema = `
CREATE TABLE IF NOT EXISTS ` + Table + ` (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	player_id   INTEGER NOT NULL DEFAULT 0,
	player_name TEXT    NOT NULL,
	season      TEXT    NOT NULL,
	game_id     TEXT    NOT NULL,
	opponent    TEXT    NOT NULL,
	pts         INTEGER NOT NULL DEFAULT 0,
	reb         INTEGER NOT NULL DEFAULT 0,
	ast         INTEGER NOT NULL DEFAULT 0,
	plus_minus  INTEGER NOT NULL DEFAULT 0,
	blk         INTEGER NOT NULL DEFAULT 0,
	stl         INTEGER NOT NULL DEFAULT 0,
	tov         INTEGER NOT NULL DEFAULT 0,
	pf          INTEGER NOT NULL DEFAULT 0,
	fgm         INTEGER NOT NULL DEFAULT 0,
	fga         INTEGER NOT NULL DEFAULT 0,
	fg3m        INTEGER NOT NULL DEFAULT 0,
	fg3a        INTEGER NOT NULL DEFAULT 0,
	game_type   TEXT,
	created_at  TEXT    NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (player_name, game_id)
);
CREATE INDEX IF NOT EXISTS idx_game_logs_opponent ON ` + Table + ` (opponent, season);
`

// selectAll reads every row in insertion order. game_type is coalesced so both
// drivers can scan into a plain string.
var selectAll = `SELECT ` + selectList() + ` FROM ` + Table + ` ORDER BY id`

func selectList() string {
	cols := make([]string, len(Columns))
	for i, c := range Columns {
		if c == "game_type" {
			c = "COALESCE(game_type, '')"
		}
		cols[i] = c
	}
	return strings.Join(cols, ", ")
}

// --------------------------------------------------------------------------
// Postgres
// --------------------------------------------------------------------------

// PostgresSource loads the relation from Postgres.
type PostgresSource struct {
	pool *pgxpool.Pool
}

// NewPostgresSource creates a source backed by pool.
func NewPostgresSource(pool *pgxpool.Pool) *PostgresSource {
	return &PostgresSource{pool: pool}
}

// Load reads every game log row.
func (s *PostgresSource) Load(ctx context.Context) ([]Record, error) {
	rows, err := s.pool.Query(ctx, selectAll)
	if err != nil {
		return nil, fmt.Errorf("query game logs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(rec.scanTargets()...); err != nil {
			return nil, fmt.Errorf("scan game log: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// PostgresWriter appends records with batched inserts.
type PostgresWriter struct {
	pool      *pgxpool.Pool
	batchSize int
}

// NewPostgresWriter creates a writer backed by pool.
func NewPostgresWriter(pool *pgxpool.Pool) *PostgresWriter {
	return &PostgresWriter{pool: pool, batchSize: 500}
}

// EnsureSchema creates the game_logs table if needed.
func (w *PostgresWriter) EnsureSchema(ctx context.Context) error {
	if _, err := w.pool.Exec(ctx, PostgresSchema); err != nil {
		return fmt.Errorf("create %s: %w", Table, err)
	}
	return nil
}

// Write inserts records, skipping rows that already exist.
func (w *PostgresWriter) Write(ctx context.Context, records []Record) (int, error) {
	insert := insertSQL(func(i int) string { return fmt.Sprintf("$%d", i) }) +
		" ON CONFLICT (player_name, game_id) DO NOTHING"

	written := 0
	for start := 0; start < len(records); start += w.batchSize {
		end := min(start+w.batchSize, len(records))

		batch := &pgx.Batch{}
		for i := start; i < end; i++ {
			batch.Queue(insert, records[i].values()...)
		}

		br := w.pool.SendBatch(ctx, batch)
		for i := start; i < end; i++ {
			tag, err := br.Exec()
			if err != nil {
				br.Close()
				return written, fmt.Errorf("insert game log %s/%s: %w", records[i].PlayerName, records[i].GameID, err)
			}
			written += int(tag.RowsAffected())
		}
		if err := br.Close(); err != nil {
			return written, fmt.Errorf("close batch: %w", err)
		}
	}
	return written, nil
}

// --------------------------------------------------------------------------
// SQLite
// --------------------------------------------------------------------------

// OpenSQLite opens (creating if needed) a SQLite game log store.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, SQLiteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create %s: %w", Table, err)
	}
	return db, nil
}

// SQLiteSource loads the relation from a SQLite database.
type SQLiteSource struct {
	db *sql.DB
}

// NewSQLiteSource creates a source backed by db.
func NewSQLiteSource(db *sql.DB) *SQLiteSource {
	return &SQLiteSource{db: db}
}

// Load reads every game log row.
func (s *SQLiteSource) Load(ctx context.Context) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, selectAll)
	if err != nil {
		return nil, fmt.Errorf("query game logs: %w", err)
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var rec Record
		if err := rows.Scan(rec.scanTargets()...); err != nil {
			return nil, fmt.Errorf("scan game log: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// SQLiteWriter appends records inside a single transaction.
type SQLiteWriter struct {
	db *sql.DB
}

// NewSQLiteWriter creates a writer backed by db.
func NewSQLiteWriter(db *sql.DB) *SQLiteWriter {
	return &SQLiteWriter{db: db}
}

// Write inserts records, skipping rows that already exist.
func (w *SQLiteWriter) Write(ctx context.Context, records []Record) (int, error) {
	tx, err := w.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, strings.Replace(
		insertSQL(func(int) string { return "?" }), "INSERT INTO", "INSERT OR IGNORE INTO", 1))
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	written := 0
	for i := range records {
		res, err := stmt.ExecContext(ctx, records[i].values()...)
		if err != nil {
			return 0, fmt.Errorf("insert game log %s/%s: %w", records[i].PlayerName, records[i].GameID, err)
		}
		n, _ := res.RowsAffected()
		written += int(n)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return written, nil
}

func insertSQL(placeholder func(i int) string) string {
	marks := make([]string, len(Columns))
	for i := range Columns {
		marks[i] = placeholder(i + 1)
	}
	return "INSERT INTO " + Table + " (" + strings.Join(Columns, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
}
