package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadConfig_TOML(t *testing.T) {
	c, err := readConfig("config.toml")
	require.NoError(t, err)
	assert.Equal(t, "auto", c.Sweep.SortAxis)
	assert.Equal(t, 2*time.Second, c.Sweep.ProgressLog.Every.Duration)
	require.NoError(t, c.Validate())
}

func TestReadConfig_Unknown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("motd = \"hi\"\n[sweep]\nthreads = 4\n"), 0o644))
	_, err := readConfig(path)
	var unknown errUnknownConfig
	require.True(t, errors.As(err, &unknown))
	assert.ElementsMatch(t, errUnknownConfig{"motd", "sweep.threads"}, unknown)
}

func TestReadConfig_YAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
inflation: 0.5
ground-truth: [a.json]
sweep:
  workers: 3
  sort-axis: y
`), 0o644))
	c, err := readConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 0.5, c.Inflation)
	assert.Equal(t, []string{"a.json"}, c.GroundTruth)
	assert.Equal(t, 3, c.Sweep.Workers)
	assert.Equal(t, "y", c.Sweep.SortAxis)
	// не задане в файлі лишається за замовчуванням
	assert.Equal(t, 2*time.Second, c.Sweep.ProgressLog.Every.Duration)

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("sweep:\n  threads: 4\n"), 0o644))
	_, err = readConfig(bad)
	assert.Error(t, err)
}

func TestReadConfig_MissingDefault(t *testing.T) {
	c, err := readConfig(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, "auto", c.Sweep.SortAxis)
}
