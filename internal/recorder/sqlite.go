package recorder

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/phuslu/log"
	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// SQLiteRecorder persists the run history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets history readers run while a scheduled run writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

// Open returns a SQLite recorder for dbPath, or a NoopRecorder when dbPath is
// empty or the database cannot be opened.
func Open(dbPath string) Recorder {
	if dbPath == "" {
		return NewNoopRecorder()
	}
	r, err := NewSQLiteRecorder(dbPath)
	if err != nil {
		log.Warn().Err(err).Str("path", dbPath).Msg("run history disabled")
		return NewNoopRecorder()
	}
	return r
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id           TEXT PRIMARY KEY,
			timestamp    INTEGER NOT NULL,
			source       TEXT,
			price_field  TEXT,
			row_count    INTEGER,
			start_date   TEXT,
			end_date     TEXT,
			cagr         REAL,
			annual_vol   REAL,
			sharpe       REAL,
			max_drawdown REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// nullable maps NaN and ±Inf to NULL.
func nullable(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

func fromNull(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}

func (r *SQLiteRecorder) RecordRun(run *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	k := run.KPI
	sharpe := sql.NullFloat64{}
	if k.Sharpe != nil {
		sharpe = nullable(*k.Sharpe)
	}
	_, err := r.db.Exec(`INSERT INTO runs
		(id, timestamp, source, price_field, row_count,
		 start_date, end_date, cagr, annual_vol, sharpe, max_drawdown)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		run.ID, run.Timestamp.Unix(), run.Source, run.PriceField, run.Rows,
		k.StartDate.Format(dateLayout), k.EndDate.Format(dateLayout),
		nullable(k.CAGR), nullable(k.AnnualVol), sharpe, nullable(k.MaxDrawdown),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

const selectRuns = `SELECT id, timestamp, source, price_field, row_count,
	start_date, end_date, cagr, annual_vol, sharpe, max_drawdown
	FROM runs ORDER BY timestamp DESC, rowid DESC`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*RunRecord, error) {
	var (
		run               RunRecord
		ts                int64
		start, end        string
		cagr, vol, sharpe sql.NullFloat64
		maxDD             sql.NullFloat64
	)
	if err := s.Scan(&run.ID, &ts, &run.Source, &run.PriceField, &run.Rows,
		&start, &end, &cagr, &vol, &sharpe, &maxDD); err != nil {
		return nil, err
	}
	run.Timestamp = time.Unix(ts, 0)
	var err error
	if run.KPI.StartDate, err = time.Parse(dateLayout, start); err != nil {
		return nil, fmt.Errorf("run %s start date: %w", run.ID, err)
	}
	if run.KPI.EndDate, err = time.Parse(dateLayout, end); err != nil {
		return nil, fmt.Errorf("run %s end date: %w", run.ID, err)
	}
	run.KPI.CAGR = fromNull(cagr)
	run.KPI.AnnualVol = fromNull(vol)
	run.KPI.MaxDrawdown = fromNull(maxDD)
	if sharpe.Valid {
		v := sharpe.Float64
		run.KPI.Sharpe = &v
	}
	return &run, nil
}

func (r *SQLiteRecorder) Latest() (*RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	run, err := scanRun(r.db.QueryRow(selectRuns + " LIMIT 1"))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoRuns
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return run, nil
}

func (r *SQLiteRecorder) List(limit int) ([]RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.Query(selectRuns+" LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("list runs: %w", err)
		}
		out = append(out, *run)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
