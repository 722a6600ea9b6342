package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/semmy-space/req/internal/config"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".req_token.json")
	store := NewFileStore(path)

	_, err := store.Get(TokenKey)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(TokenKey, "a.b.c"))

	value, err := store.Get(TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "a.b.c", value)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"token\": \"a.b.c\"\n}", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestFileStoreSetOverwrites(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "token.json"))

	require.NoError(t, store.Set(TokenKey, "first.token"))
	require.NoError(t, store.Set(TokenKey, "second.token"))

	value, err := store.Get(TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "second.token", value)

	keys, err := store.List()
	require.NoError(t, err)
	assert.Equal(t, []string{TokenKey}, keys)
}

func TestFileStoreDeleteRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	store := NewFileStore(path)

	require.NoError(t, store.Set(TokenKey, "a.b"))
	require.NoError(t, store.Delete(TokenKey))

	assert.NoFileExists(t, path)
	assert.ErrorIs(t, store.Delete(TokenKey), ErrNotFound)
}

func TestFileStoreMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))
	store := NewFileStore(path)

	_, err := store.Get(TokenKey)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	// Set recovers by overwriting
	require.NoError(t, store.Set(TokenKey, "x.y"))
	value, err := store.Get(TokenKey)
	require.NoError(t, err)
	assert.Equal(t, "x.y", value)
}

func TestFileStoreDeleteMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0600))

	require.NoError(t, NewFileStore(path).Delete(TokenKey))
	assert.NoFileExists(t, path)
}

func TestNewStoreDefaultsToFile(t *testing.T) {
	cfg := config.Default()
	cfg.TokenFile = filepath.Join(t.TempDir(), "token.json")

	store := NewStore(cfg, os.Stderr)

	fs, ok := store.(*FileStore)
	require.True(t, ok)
	assert.Equal(t, cfg.TokenFile, fs.Path())
	assert.Equal(t, cfg.TokenFile, Describe(store))
}
