package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dungeon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, "seed: 42\nticks: 5\nlog_level: debug\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, 5, cfg.Ticks)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 200, cfg.PathSearchLimit, "absent field keeps default")
	assert.Empty(t, cfg.MetricsAddr)
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
	t.Run("bad yaml", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "seed: [1, 2\n"))
		assert.Error(t, err)
	})
	for name, body := range map[string]string{
		"negative search limit": "path_search_limit: -5\n",
		"zero search limit":     "path_search_limit: 0\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.ErrorContains(t, err, "path_search_limit")
		})
	}
	t.Run("negative ticks", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "ticks: -1\n"))
		assert.ErrorContains(t, err, "ticks")
	})
}

func TestLoadConfigKeepsExplicitZero(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "seed: 0\nticks: 0\n"))
	require.NoError(t, err)
	assert.Equal(t, int64(0), cfg.Seed, "explicit seed 0 is a valid fixed seed")
	assert.Equal(t, 0, cfg.Ticks)
	assert.Equal(t, 200, cfg.PathSearchLimit)
}
