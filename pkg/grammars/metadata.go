package grammars

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// metadataFileName is the grammar-declaration file every tree-sitter
// grammar repository ships at its root (or, for older grammars, as
// package.json's "tree-sitter" key — we only support the standalone
// file, the modern convention).
const metadataFileName = "tree-sitter.json"

// grammarEntry is one entry of tree-sitter.json's "grammars" array: the
// name of the grammar, the directory it lives in relative to the repo
// root, and the query files it declares for each query kind. A query
// field may be a single path or a list of paths; LoadMetadata (via
// normalizeQueryPaths) normalizes both shapes to a slice.
type grammarEntry struct {
	Name       string          `json:"name"`
	Path       string          `json:"path"`
	Highlights json.RawMessage `json:"highlights"`
	Injections json.RawMessage `json:"injections"`
	Locals     json.RawMessage `json:"locals"`
}

// Entry is a single declared grammar inside a repository, with its query
// file lists normalized to slices of paths relative to the grammar's
// directory (the repository root joined with Path).
type Entry struct {
	Name       string
	Path       string
	Highlights []string
	Injections []string
	Locals     []string
}

// rawMetadata mirrors tree-sitter.json's top-level shape.
type rawMetadata struct {
	Grammars []grammarEntry `json:"grammars"`
}

// LoadMetadata reads and parses <repoDir>/tree-sitter.json, returning the
// declared grammar entries. It fails with ErrGrammarInvalid if the file
// is missing, malformed, or declares no grammars.
func LoadMetadata(repoDir string) ([]Entry, error) {
	data, err := os.ReadFile(filepath.Join(repoDir, metadataFileName))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrGrammarInvalid, repoDir, err)
	}

	var raw rawMetadata
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrGrammarInvalid, repoDir, err)
	}
	if len(raw.Grammars) == 0 {
		return nil, fmt.Errorf("%w: %s declares no grammars", ErrGrammarInvalid, repoDir)
	}

	entries := make([]Entry, 0, len(raw.Grammars))
	for _, g := range raw.Grammars {
		path := g.Path
		if path == "" {
			path = "."
		}
		entries = append(entries, Entry{
			Name:       g.Name,
			Path:       path,
			Highlights: normalizeQueryPaths(g.Highlights),
			Injections: normalizeQueryPaths(g.Injections),
			Locals:     normalizeQueryPaths(g.Locals),
		})
	}
	return entries, nil
}

// normalizeQueryPaths decodes a query field that may be absent, a single
// JSON string, or an array of strings, always returning a slice (nil for
// absent/empty).
func normalizeQueryPaths(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if single == "" {
			return nil
		}
		return []string{single}
	}

	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return many
	}

	return nil
}

// EntryForName returns the entry named name, or the single entry if the
// repository declares exactly one grammar and name is empty.
func EntryForName(entries []Entry, name string) (Entry, bool) {
	if name == "" && len(entries) == 1 {
		return entries[0], true
	}
	for _, e := range entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}
