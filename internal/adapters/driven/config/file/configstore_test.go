package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
	assert.Empty(t, store.Keys())
}

func TestConfigStore_SetPersistsNestedTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("viewer.dpi", 150))
	require.NoError(t, store.Set("annotations.default_color", "#00FF00"))

	raw, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "[viewer]")
	assert.Contains(t, string(raw), "[annotations]")

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_ReloadTypes(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("documents.recent_limit", 20))
	require.NoError(t, store.Set("annotations.default_stroke", 2.5))
	require.NoError(t, store.Set("annotations.strict_types", false))
	require.NoError(t, store.Set("annotations.default_layer", "Notes"))

	reloaded, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 20, reloaded.GetInt("documents.recent_limit"))
	assert.InDelta(t, 2.5, reloaded.GetFloat("annotations.default_stroke"), 1e-9)
	assert.InDelta(t, 20.0, reloaded.GetFloat("documents.recent_limit"), 1e-9)
	assert.False(t, reloaded.GetBool("annotations.strict_types"))
	_, ok := reloaded.Get("annotations.strict_types")
	assert.True(t, ok)
	assert.Equal(t, "Notes", reloaded.GetString("annotations.default_layer"))
	assert.Equal(t, []string{
		"annotations.default_layer",
		"annotations.default_stroke",
		"annotations.strict_types",
		"documents.recent_limit",
	}, reloaded.Keys())
}

func TestConfigStore_LoadHandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := "[viewer]\ndpi = 300\n\n[annotations]\ndefault_stroke = 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, 300, store.GetInt("viewer.dpi"))
	assert.InDelta(t, 3.0, store.GetFloat("annotations.default_stroke"), 1e-9)
}

func TestConfigStore_InvalidFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not = [valid"), 0600))

	_, err := NewConfigStore(tmpDir)
	assert.Error(t, err)
}

func TestConfigStore_WrongTypeGetters(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("viewer.dpi", "high"))

	assert.Equal(t, 0, store.GetInt("viewer.dpi"))
	assert.Zero(t, store.GetFloat("viewer.dpi"))
	assert.False(t, store.GetBool("viewer.dpi"))
	assert.Empty(t, store.GetString("missing"))
}

func TestNestMap_ScalarPrefixStaysFlat(t *testing.T) {
	nested := nestMap(map[string]any{
		"viewer":     "x",
		"viewer.dpi": 96,
		"a.b.c":      1,
	})

	assert.Equal(t, "x", nested["viewer"])
	assert.Equal(t, 96, nested["viewer.dpi"])
	assert.Equal(t, map[string]any{"b": map[string]any{"c": 1}}, nested["a"])
}

func TestFlattenMap(t *testing.T) {
	flat := flattenMap(map[string]any{
		"a": map[string]any{"b": int64(1), "c": map[string]any{"d": "x"}},
		"e": true,
	}, "")

	assert.Equal(t, map[string]any{"a.b": int64(1), "a.c.d": "x", "e": true}, flat)
}

func TestConfigStore_GetIntTruncatesFloat(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("viewer.dpi", 150.0))
	assert.Equal(t, 150, store.GetInt("viewer.dpi"))
}
