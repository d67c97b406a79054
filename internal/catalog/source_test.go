package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestListFiles_GroupsByFolderAndSkipsNonJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "series", "horus-heresy.json"), "{}")
	writeFile(t, filepath.Join(dir, "series", "notes.txt"), "")
	writeFile(t, filepath.Join(dir, "singles", "eisenhorn.json"), "{}")
	// vocabulary documents live at the root and must not be listed
	writeFile(t, filepath.Join(dir, "tags.json"), "[]")
	writeFile(t, filepath.Join(dir, "factions.json"), "[]")

	files, err := NewSource(dir).ListFiles()
	require.NoError(t, err)

	assert.Equal(t, []string{"horus-heresy.json"}, files["series"])
	assert.Equal(t, []string{"eisenhorn.json"}, files["singles"])
	assert.Empty(t, files["novellas"], "missing folder is skipped, not an error")
}

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "singles", "eisenhorn.json"), `{"id":"s1"}`)

	source := NewSource(dir)

	data, err := source.ReadDocument("singles", "eisenhorn.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"s1"}`, string(data))
}

func TestReadDocument_RejectsPathEscapes(t *testing.T) {
	source := NewSource(t.TempDir())

	for _, bad := range [][2]string{
		{"..", "secrets.json"},
		{"series", "../tags.json"},
		{"series/..", "x.json"},
		{"", "x.json"},
	} {
		_, err := source.ReadDocument(bad[0], bad[1])
		assert.ErrorIs(t, err, ErrBadPath, "folder=%q file=%q", bad[0], bad[1])
	}
}
