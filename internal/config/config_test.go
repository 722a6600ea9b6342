package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, TokenStoreFile, cfg.TokenStore)
	assert.Equal(t, HistoryFileName, filepath.Base(cfg.HistoryFile))
	assert.Equal(t, TokenFileName, filepath.Base(cfg.TokenFile))
	assert.Equal(t, ExportFileName, filepath.Base(cfg.ExportFile))
	assert.Equal(t, path, cfg.Path())
}

func TestLoadFromParsesJSON5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	content := `{
  // comments and trailing commas are fine
  history_file: "/tmp/h.json",
  timeout: "5s",
  replay_rate: "0.5",
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/h.json", cfg.HistoryFile)

	timeout, err := cfg.RequestTimeout()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, timeout)

	rate, err := cfg.ReplayRatePerSecond()
	require.NoError(t, err)
	assert.Equal(t, 0.5, rate)
}

func TestLoadFromRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{name: "bad token store", content: `{token_store: "vault"}`, errPart: "invalid token_store"},
		{name: "bad timeout", content: `{timeout: "soon"}`, errPart: "invalid timeout"},
		{name: "zero replay rate", content: `{replay_rate: "0"}`, errPart: "invalid replay_rate"},
		{name: "bad output", content: `{default_output: "yaml"}`, errPart: "invalid default_output"},
		{name: "malformed", content: `{`, errPart: "failed to parse config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.json5")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			_, err := LoadFrom(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestSetPersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json5")
	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	require.NoError(t, cfg.Set("timeout", "750ms"))

	reloaded, err := LoadFrom(path)
	require.NoError(t, err)
	value, err := reloaded.Get("timeout")
	require.NoError(t, err)
	assert.Equal(t, "750ms", value)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSetRejectsInvalidValueWithoutSaving(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	cfg, err := LoadFrom(path)
	require.NoError(t, err)

	err = cfg.Set("token_store", "vault")
	require.Error(t, err)
	assert.Equal(t, TokenStoreFile, cfg.TokenStore)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestUnknownKey(t *testing.T) {
	cfg := Default()

	_, err := cfg.Get("proxy")
	assert.ErrorContains(t, err, "unknown config key")
	assert.ErrorContains(t, cfg.Set("proxy", "http://localhost:3128"), "unknown config key")
	assert.ErrorContains(t, cfg.Unset("proxy"), "unknown config key")
}

func TestKeys(t *testing.T) {
	keys := Default().Keys()
	assert.Equal(t, []string{
		"history_file", "token_file", "export_file", "token_store",
		"timeout", "replay_rate", "default_output",
	}, keys)
}
