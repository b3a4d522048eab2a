// store/schema.go
package store

const Schema = `
CREATE TABLE IF NOT EXISTS bars (
	symbol TEXT NOT NULL,
	frequency TEXT NOT NULL,
	date_time DATETIME NOT NULL,
	open REAL NOT NULL,
	high REAL NOT NULL,
	low REAL NOT NULL,
	close REAL NOT NULL,
	volume REAL NOT NULL,
	adj_close REAL NOT NULL,
	run_id TEXT NOT NULL,
	PRIMARY KEY (symbol, frequency, date_time)
);

CREATE TABLE IF NOT EXISTS ingest_runs (
	run_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	frequency TEXT NOT NULL,
	bar_count INTEGER NOT NULL,
	ingested_at DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_bars_symbol ON bars(symbol, frequency);
`
