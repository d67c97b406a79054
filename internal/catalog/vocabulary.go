package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// Canonical vocabulary documents, one sorted JSON string array each, kept at
// the data root as the single source of truth for every category.
const (
	TagsFile     = "tags.json"
	FactionsFile = "factions.json"
)

// Vocabulary is one canonical label set plus its import-time working state.
// Lookups are case-insensitive; the spelling that entered the set first is
// the spelling every later match resolves to.
type Vocabulary struct {
	canonical map[string]string // folded label -> canonical spelling
	loaded    []string          // sorted snapshot as read from the store
}

func NewVocabulary(labels []string) *Vocabulary {
	v := &Vocabulary{canonical: make(map[string]string, len(labels))}
	for _, label := range labels {
		if _, ok := v.canonical[strings.ToLower(label)]; !ok {
			v.canonical[strings.ToLower(label)] = label
		}
	}
	v.loaded = v.Labels()
	return v
}

// Canonicalize trims raw and resolves it against the set. An unknown label
// becomes canonical as-is (first-seen casing wins). Empty labels stay empty
// and are not recorded.
func (v *Vocabulary) Canonicalize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	folded := strings.ToLower(trimmed)
	if canonical, ok := v.canonical[folded]; ok {
		return canonical
	}
	v.canonical[folded] = trimmed
	return trimmed
}

// CanonicalizeAll maps Canonicalize over a label list, dropping empties.
func (v *Vocabulary) CanonicalizeAll(raw []string) []string {
	if len(raw) == 0 {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, label := range raw {
		if canonical := v.Canonicalize(label); canonical != "" {
			out = append(out, canonical)
		}
	}
	return out
}

// Labels returns the canonical set sorted alphabetically.
func (v *Vocabulary) Labels() []string {
	out := make([]string, 0, len(v.canonical))
	for _, label := range v.canonical {
		out = append(out, label)
	}
	sort.Strings(out)
	return out
}

// Changed reports whether the set differs from what was loaded.
func (v *Vocabulary) Changed() bool {
	current := v.Labels()
	if len(current) != len(v.loaded) {
		return true
	}
	for i := range current {
		if current[i] != v.loaded[i] {
			return true
		}
	}
	return false
}

// VocabStore reads and writes the vocabulary documents under an exclusive
// file lock, so two import batches running at once cannot drop each other's
// new labels. Callers hold the lock for the whole read-modify-write.
type VocabStore struct {
	root string
	lock *flock.Flock
}

func NewVocabStore(root string) *VocabStore {
	return &VocabStore{
		root: root,
		lock: flock.New(filepath.Join(root, ".vocab.lock")),
	}
}

// Lock acquires the vocabulary lock, retrying until ctx expires.
func (s *VocabStore) Lock(ctx context.Context) error {
	ok, err := s.lock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("acquire vocabulary lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("vocabulary lock held by another import")
	}
	return nil
}

func (s *VocabStore) Unlock() error {
	return s.lock.Unlock()
}

// Load reads one vocabulary document. A missing document is an empty list,
// not an error; it will be created on the first write-back.
func (s *VocabStore) Load(name string) ([]string, error) {
	data, err := os.ReadFile(filepath.Join(s.root, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	var labels []string
	if err := json.Unmarshal(data, &labels); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return labels, nil
}

// Save writes one vocabulary document as a sorted, indented JSON array.
func (s *VocabStore) Save(name string, labels []string) error {
	sort.Strings(labels)
	data, err := json.MarshalIndent(labels, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := os.WriteFile(filepath.Join(s.root, name), append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
