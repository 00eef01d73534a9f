package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("corpus.dir", "/data/laws"))
	require.NoError(t, store.Set("retrieval.top_k", 4))
	require.NoError(t, store.Set("verbose", true))

	assert.Equal(t, "/data/laws", store.GetString("corpus.dir"))
	assert.Equal(t, 4, store.GetInt("retrieval.top_k"))
	assert.True(t, store.GetBool("verbose"))
}

func TestConfigStore_MissingKeys(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, store.GetString("nope"))
	assert.Zero(t, store.GetInt("nope"))
	assert.False(t, store.GetBool("nope"))
	assert.Nil(t, store.GetStringSlice("nope"))
}

func TestConfigStore_PersistsAcrossInstances(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("backend.order", []string{"openrouter", "ollama"}))

	reopened, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"openrouter", "ollama"}, reopened.GetStringSlice("backend.order"))
}

func TestConfigStore_ResolvesNestedTables(t *testing.T) {
	dir := t.TempDir()

	content := "[embedding]\nprovider = \"hash\"\ndimensions = 256\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "hash", store.GetString("embedding.provider"))
	assert.Equal(t, 256, store.GetInt("embedding.dimensions"))
}

func TestConfigStore_FilePermissions(t *testing.T) {
	dir := t.TempDir()

	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("backend.openrouter.api_key", "secret"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}
