package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "watchlist.txt", cfg.Watchlist)
	assert.Equal(t, "vcp_results.csv", cfg.Output.CSVPath)
	assert.Equal(t, "1y", cfg.Scan.Period)
	assert.Equal(t, 60, cfg.Scan.RecentDays)
	assert.Equal(t, 20, cfg.Scan.ShortWindow)
	assert.Equal(t, 50, cfg.Scan.LongWindow)
	assert.Equal(t, 20, cfg.Scan.VolatilityWindow)
	assert.Equal(t, 50, cfg.Scan.VolumeWindow)
	assert.Equal(t, 0.8, cfg.Scan.VolatilityThreshold)
	assert.Equal(t, 0.8, cfg.Scan.VolumeThreshold)
	assert.Equal(t, 3, cfg.Scan.Retries)
	assert.Equal(t, 2*time.Second, cfg.RetryDelay())
	assert.Equal(t, 8, cfg.Scan.Workers)
	require.NoError(t, cfg.Validate())
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := `
watchlist: symbols.txt
scan:
  period: 6mo
  recent_days: 45
  workers: 4
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("SCAN_PERIOD", "2y")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "symbols.txt", cfg.Watchlist)
	assert.Equal(t, "2y", cfg.Scan.Period) // env wins over file
	assert.Equal(t, 45, cfg.Scan.RecentDays)
	assert.Equal(t, 4, cfg.Scan.Workers)
}

func TestValidate_RejectsShortRecentWindow(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.Scan.RecentDays = 40

	assert.ErrorContains(t, cfg.Validate(), "recent_days")
}

func TestValidate_RejectsBadRetrySettings(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.Scan.Retries = 0
	assert.ErrorContains(t, cfg.Validate(), "retries")

	cfg.Scan.Retries = 3
	cfg.Scan.Workers = 0
	assert.ErrorContains(t, cfg.Validate(), "workers")
}

func TestValidate_RejectsInvertedWindows(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	cfg.Scan.ShortWindow = 50
	cfg.Scan.LongWindow = 20

	assert.ErrorContains(t, cfg.Validate(), "long_window")
}
