// Package highlight builds and caches per-language syntax-highlight
// configurations from installed tree-sitter grammars, and renders code
// into HTML span-wrapped spans using them. When a language has no
// installed grammar, the code is HTML-escaped verbatim rather than
// rendered plain.
package highlight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/WaylonWalker/markata-go/pkg/grammars"
)

// HighlighterConfig is the immutable configuration for one GrammarId: a
// compiled tree-sitter query over the language's concatenated highlight
// queries, plus the complete set of highlight names the query declares.
type HighlighterConfig struct {
	GrammarID string
	language  *sitter.Language
	query     *sitter.Query
	names     []string
}

// Names returns the complete set of highlight names this config's query
// declares, e.g. "variable.parameter", "punctuation.bracket".
func (c *HighlighterConfig) Names() []string { return c.names }

// BuildConfig constructs a HighlighterConfig for id by loading its
// compiled parser from store, reading its declared query files, and
// concatenating each query kind's files with newline separators (missing
// files substitute as empty, per the concatenation-not-merge rule).
func BuildConfig(store *grammars.Store, id string) (*HighlighterConfig, error) {
	id = grammars.Normalize(id)

	loaded, ok := store.Loader().Get(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrGrammarMissing, id)
	}

	repoDir, err := store.GetRepoForGrammar(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrGrammarMissing, id)
	}

	entries, err := grammars.LoadMetadata(repoDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrGrammarInvalid, id)
	}
	entry, ok := grammars.EntryForName(entries, id)
	if !ok {
		return nil, fmt.Errorf("%w: %s declares no grammar named %q", ErrGrammarInvalid, repoDir, id)
	}

	baseDir := filepath.Join(repoDir, entry.Path)
	highlightsSrc := concatQueryFiles(baseDir, entry.Highlights)
	injectionsSrc := concatQueryFiles(baseDir, entry.Injections)
	localsSrc := concatQueryFiles(baseDir, entry.Locals)

	combined := strings.Join([]string{highlightsSrc, injectionsSrc, localsSrc}, "\n")
	if strings.TrimSpace(highlightsSrc) == "" {
		return nil, fmt.Errorf("%w: %s", ErrQueriesMissing, id)
	}

	query, err := sitter.NewQuery([]byte(combined), loaded.Language)
	if err != nil {
		return nil, fmt.Errorf("compiling highlight query for %s: %w", id, err)
	}

	names := make([]string, 0, query.CaptureCount())
	for i := uint32(0); i < query.CaptureCount(); i++ {
		names = append(names, query.CaptureNameForId(i))
	}

	return &HighlighterConfig{
		GrammarID: id,
		language:  loaded.Language,
		query:     query,
		names:     names,
	}, nil
}

// concatQueryFiles reads each path (relative to baseDir) in order and
// joins their contents with newline separators. A path that fails to
// read contributes an empty string rather than aborting the whole
// concatenation — §4.3 treats missing files as empty, not fatal.
func concatQueryFiles(baseDir string, paths []string) string {
	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(filepath.Join(baseDir, p))
		if err != nil {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, string(data))
	}
	return strings.Join(parts, "\n")
}
