package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrBadPath = errors.New("invalid folder or file name")

// Source reads catalog documents from a data directory laid out as
// data/{series,singles,novellas,anthologies}/*.json. The canonical
// vocabulary documents live at the data root and are never listed here.
type Source struct {
	root string
}

func NewSource(root string) *Source {
	return &Source{root: root}
}

// ListFiles returns the importable JSON files grouped by category folder.
// Missing folders are skipped rather than reported as errors, so a data
// directory that only carries series still lists cleanly.
func (s *Source) ListFiles() (map[string][]string, error) {
	out := make(map[string][]string, len(Folders))
	for _, folder := range Folders {
		entries, err := os.ReadDir(filepath.Join(s.root, folder))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("list %s: %w", folder, err)
		}
		var files []string
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
				continue
			}
			files = append(files, entry.Name())
		}
		out[folder] = files
	}
	return out, nil
}

// ReadDocument returns the raw content of one source document. Folder and
// file names must be bare names; anything that looks like a path escape is
// rejected before touching the filesystem.
func (s *Source) ReadDocument(folder, file string) ([]byte, error) {
	if !validName(folder) || !validName(file) {
		return nil, ErrBadPath
	}
	return os.ReadFile(filepath.Join(s.root, folder, file))
}

func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
