package recorder

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VCPScanner/internal/model"
)

func TestSQLiteRecorder_RecordScan(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "scans.db"))
	require.NoError(t, err)
	defer rec.Close()

	run := &ScanRun{
		ScanDate:       time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		SymbolsScanned: 3,
		Matches:        []model.Match{sampleMatch()},
	}
	require.NoError(t, rec.RecordScan(run))

	var scanCount, matchCount int
	require.NoError(t, rec.db.QueryRow(`SELECT COUNT(*) FROM scans`).Scan(&scanCount))
	require.NoError(t, rec.db.QueryRow(`SELECT COUNT(*) FROM matches`).Scan(&matchCount))
	assert.Equal(t, 1, scanCount)
	assert.Equal(t, 1, matchCount)

	var symbol, remarks string
	var score int
	require.NoError(t, rec.db.QueryRow(
		`SELECT symbol, score, remarks FROM matches`).Scan(&symbol, &score, &remarks))
	assert.Equal(t, "AAA", symbol)
	assert.Equal(t, 100, score)
	assert.Equal(t, "Price Above Mas, Decreasing Volatility, Higher Lows, Volume Dry Up", remarks)
}

func TestSQLiteRecorder_EmptyScanStillRecorded(t *testing.T) {
	rec, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "scans.db"))
	require.NoError(t, err)
	defer rec.Close()

	run := &ScanRun{ScanDate: time.Now(), SymbolsScanned: 5}
	require.NoError(t, rec.RecordScan(run))

	var matchTotal int
	require.NoError(t, rec.db.QueryRow(`SELECT SUM(match_count) FROM scans`).Scan(&matchTotal))
	assert.Equal(t, 0, matchTotal)
}
