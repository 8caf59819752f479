package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic_ReplacesContents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")

	require.NoError(t, WriteFileAtomic(path, []byte("one"), 0600))
	require.NoError(t, WriteFileAtomic(path, []byte("two"), 0600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope", "doc.json")
	assert.Error(t, WriteFileAtomic(path, []byte("x"), 0600))
}

func TestBestEffortBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")

	// Nothing to back up yet.
	BestEffortBackup(path, 0600)
	_, err := os.Stat(path + ".bak")
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0600))
	BestEffortBackup(path, 0600)

	data, err := os.ReadFile(path + ".bak")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	type doc struct {
		Name  string         `json:"name"`
		Items map[string]int `json:"items"`
	}
	path := filepath.Join(t.TempDir(), "doc.json")
	in := doc{Name: "x", Items: map[string]int{"b": 2, "a": 1}}

	require.NoError(t, WriteJSON(path, in, 0600))

	var out doc
	require.NoError(t, ReadJSON(path, &out))
	assert.Equal(t, in, out)
}

func TestReadJSON_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0600))

	var out map[string]any
	assert.Error(t, ReadJSON(path, &out))
}
