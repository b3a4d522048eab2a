// Package store persists bar series to SQLite. Each save is recorded as an
// ingest run with a ULID identifier.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/funningboy/PyTradeLib/bar"
	"github.com/funningboy/PyTradeLib/internal/id"
)

type Store struct {
	db *sql.DB
}

// IngestRun describes one completed SaveSeries call.
type IngestRun struct {
	RunID      string
	Symbol     string
	Frequency  bar.Frequency
	BarCount   int
	IngestedAt time.Time
}

// Open opens (creating if needed) the database at path and applies the
// schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSeries writes a chronological series in one transaction, upserting on
// (symbol, frequency, date_time), and returns the run ID.
func (s *Store) SaveSeries(ctx context.Context, symbol string, freq bar.Frequency, bars []*bar.Bar) (string, error) {
	if !freq.Valid() {
		return "", fmt.Errorf("invalid frequency %s", freq)
	}
	if len(bars) == 0 {
		return "", fmt.Errorf("no bars to save for %s", symbol)
	}

	runID := id.New()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO bars
		(symbol, frequency, date_time, open, high, low, close, volume, adj_close, run_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(symbol, frequency, date_time) DO UPDATE SET
			open=excluded.open, high=excluded.high, low=excluded.low,
			close=excluded.close, volume=excluded.volume,
			adj_close=excluded.adj_close, run_id=excluded.run_id`)
	if err != nil {
		return "", err
	}
	defer stmt.Close()

	for _, b := range bars {
		_, err = stmt.ExecContext(ctx, symbol, freq.String(), b.DateTime().UTC(),
			b.Open(), b.High(), b.Low(), b.Close(), b.Volume(), b.AdjClose(), runID)
		if err != nil {
			return "", fmt.Errorf("insert bar %s: %w", b, err)
		}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO ingest_runs (run_id, symbol, frequency, bar_count, ingested_at)
		VALUES (?, ?, ?, ?, ?)`,
		runID, symbol, freq.String(), len(bars), time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("record run: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

// LoadSeries returns the stored series in chronological order. Stored rows
// are re-validated through bar.New, so a corrupted row fails the load.
func (s *Store) LoadSeries(ctx context.Context, symbol string, freq bar.Frequency) ([]*bar.Bar, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date_time, open, high, low, close, volume, adj_close
		FROM bars WHERE symbol = ? AND frequency = ?
		ORDER BY date_time`,
		symbol, freq.String())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bars []*bar.Bar
	for rows.Next() {
		var dt time.Time
		var open, high, low, close, volume, adjClose float64
		if err := rows.Scan(&dt, &open, &high, &low, &close, &volume, &adjClose); err != nil {
			return nil, err
		}
		b, err := bar.New(dt, open, high, low, close, volume, adjClose)
		if err != nil {
			return nil, fmt.Errorf("stored bar for %s invalid: %w", symbol, err)
		}
		bars = append(bars, b)
	}
	return bars, rows.Err()
}

// Symbols lists the distinct symbols with stored bars.
func (s *Store) Symbols(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT symbol FROM bars ORDER BY symbol`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var symbols []string
	for rows.Next() {
		var symbol string
		if err := rows.Scan(&symbol); err != nil {
			return nil, err
		}
		symbols = append(symbols, symbol)
	}
	return symbols, rows.Err()
}

// Runs lists all ingest runs, newest first.
func (s *Store) Runs(ctx context.Context) ([]IngestRun, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, symbol, frequency, bar_count, ingested_at
		FROM ingest_runs ORDER BY run_id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []IngestRun
	for rows.Next() {
		var r IngestRun
		var freqName string
		if err := rows.Scan(&r.RunID, &r.Symbol, &freqName, &r.BarCount, &r.IngestedAt); err != nil {
			return nil, err
		}
		if r.Frequency, err = bar.ParseFrequency(freqName); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
