package recorder

import (
	"database/sql"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists scan history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS scans (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			scan_date       INTEGER NOT NULL,
			symbols_scanned INTEGER NOT NULL,
			match_count     INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_date ON scans(scan_date)`,

		`CREATE TABLE IF NOT EXISTS matches (
			id                    INTEGER PRIMARY KEY AUTOINCREMENT,
			scan_id               INTEGER NOT NULL REFERENCES scans(id),
			symbol                TEXT NOT NULL,
			score                 INTEGER NOT NULL,
			last_price            REAL,
			volatility            REAL,
			volume_ratio          REAL,
			price_above_mas       INTEGER,
			decreasing_volatility INTEGER,
			higher_lows           INTEGER,
			volume_dry_up         INTEGER,
			remarks               TEXT,
			trigger_date          INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_symbol ON matches(symbol)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordScan(run *ScanRun) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO scans (scan_date, symbols_scanned, match_count) VALUES (?, ?, ?)`,
		run.ScanDate.Unix(), run.SymbolsScanned, len(run.Matches),
	)
	if err != nil {
		return fmt.Errorf("insert scan: %w", err)
	}
	scanID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("scan id: %w", err)
	}

	for _, m := range run.Matches {
		v := m.Verdict
		if _, err := tx.Exec(
			`INSERT INTO matches (scan_id, symbol, score, last_price, volatility, volume_ratio,
				price_above_mas, decreasing_volatility, higher_lows, volume_dry_up, remarks, trigger_date)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			scanID, m.Symbol, v.Score, v.LastPrice, v.CurrentVolatility, v.VolumeRatio,
			v.Criteria.PriceAboveMAs, v.Criteria.DecreasingVolatility,
			v.Criteria.HigherLows, v.Criteria.VolumeDryUp,
			v.Remarks, v.TriggerDate.Unix(),
		); err != nil {
			return fmt.Errorf("insert match %s: %w", m.Symbol, err)
		}
	}

	return tx.Commit()
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
