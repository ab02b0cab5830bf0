package watchlist

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.txt")
	content := "AAPL\n\n  MSFT  \nGOOG\n\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	symbols, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, []string{"AAPL", "MSFT", "GOOG"}, symbols)
}

func TestLoad_MissingFile(t *testing.T) {
	symbols, err := Load(filepath.Join(t.TempDir(), "nope.txt"))

	assert.Error(t, err)
	assert.Empty(t, symbols)
}

func TestLoad_EmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n\n"), 0o644))

	symbols, err := Load(path)

	require.NoError(t, err)
	assert.Empty(t, symbols)
}
