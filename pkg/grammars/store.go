// Package grammars owns a directory of tree-sitter grammar repositories:
// installing, updating, deleting, and enumerating them, and force-
// compiling their C sources into loadable parsers via pkg/treesitter.
package grammars

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/WaylonWalker/markata-go/pkg/gitsource"
	"github.com/WaylonWalker/markata-go/pkg/treesitter"
)

// appDirName is the platform data-directory subfolder grammars live
// under when no root is explicitly configured.
const appDirName = "tree-sitter-grammars"

// DefaultRoot returns the platform's XDG-data-like directory for
// grammars: $XDG_DATA_HOME/tree-sitter-grammars, falling back to
// os.UserCacheDir()/tree-sitter-grammars when XDG_DATA_HOME is unset.
func DefaultRoot() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName), nil
	}
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cacheDir, appDirName), nil
}

// EnsureGrammarsRoot creates root (and any missing parents) if it does
// not already exist, mirroring the original implementation's setup-time
// directory bootstrap.
func EnsureGrammarsRoot(root string) error {
	return os.MkdirAll(root, 0o755)
}

// Store owns a directory of grammar repositories and a compiled-parser
// loader. Construct with NewStore; the zero value is not usable.
type Store struct {
	root   string
	loader *treesitter.Loader
}

// NewStore returns a Store rooted at root. If root is empty, DefaultRoot
// is used.
func NewStore(root string) (*Store, error) {
	if root == "" {
		r, err := DefaultRoot()
		if err != nil {
			return nil, err
		}
		root = r
	}
	if err := EnsureGrammarsRoot(root); err != nil {
		return nil, err
	}
	return &Store{root: root, loader: treesitter.NewLoader()}, nil
}

// Root returns the grammars root directory this store manages.
func (s *Store) Root() string { return s.root }

// repoDir returns the expected on-disk directory for a grammar repo
// named name (the "tree-sitter-<name>" convention).
func (s *Store) repoDir(name string) string {
	return filepath.Join(s.root, "tree-sitter-"+name)
}

// GetRepoForGrammar returns the expected repository directory for id,
// failing if it is not present on disk.
func (s *Store) GetRepoForGrammar(id string) (string, error) {
	dir := s.repoDir(Normalize(id))
	if !isGitRepo(dir) {
		return "", fmt.Errorf("%w: %s", ErrGrammarMissing, id)
	}
	return dir, nil
}

// Install installs the grammar hosted at url: if it is already cloned,
// the existing clone is reused (no re-clone); otherwise it is cloned
// fresh. Either way the grammar is then force-recompiled. Compile
// failures leave the clone on disk untouched — only InstallError is
// returned, the directory remains for a later retry.
func (s *Store) Install(ctx context.Context, url string) (string, error) {
	name, err := gitsource.ExtractName(url)
	if err != nil {
		return "", &InstallError{URL: url, Err: err}
	}

	dir := filepath.Join(s.root, name)
	if !isGitRepo(dir) {
		if err := gitsource.Clone(ctx, url, s.root, gitsource.CloneOptions{Depth: 1, SingleBranch: true}); err != nil {
			return "", &InstallError{URL: url, Err: err}
		}
	}

	id := name
	const prefix = "tree-sitter-"
	if len(name) > len(prefix) && name[:len(prefix)] == prefix {
		id = name[len(prefix):]
	}
	if err := s.forceRebuild(Normalize(id), dir); err != nil {
		return "", &InstallError{URL: url, Err: err}
	}

	return name, nil
}

// Update pulls a currently-installed grammar and, if anything new was
// pulled, recompiles it. It returns whether a change occurred.
func (s *Store) Update(ctx context.Context, id string) (bool, error) {
	id = Normalize(id)
	dir, err := s.GetRepoForGrammar(id)
	if err != nil {
		return false, &UpdateError{GrammarID: id, Err: err}
	}

	changed, err := gitsource.Pull(ctx, dir)
	if err != nil {
		return false, &UpdateError{GrammarID: id, Err: err}
	}

	if changed {
		if err := s.forceRebuild(id, dir); err != nil {
			return false, &UpdateError{GrammarID: id, Err: err}
		}
	}

	return changed, nil
}

// Delete removes the grammar's repository directory and resets the
// loader's cached handle for it. It is safe to call on a grammar that is
// not installed — that surfaces as an error, it never panics.
func (s *Store) Delete(id string) error {
	id = Normalize(id)
	dir := s.repoDir(id)
	if !isGitRepo(dir) {
		return fmt.Errorf("%w: %s", ErrGrammarMissing, id)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("delete %s: %w", id, err)
	}
	s.loader.Reset(id)
	return nil
}

// List re-scans the grammars root directory and returns the
// sorted, deduplicated set of installed grammar ids. A grammar whose
// directory is present but whose metadata fails to parse is skipped
// rather than failing the whole listing.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("list grammars: %w", err)
	}

	seen := make(map[string]struct{})
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		const prefix = "tree-sitter-"
		if len(name) <= len(prefix) || name[:len(prefix)] != prefix {
			continue
		}
		id := name[len(prefix):]
		if !isGitRepo(filepath.Join(s.root, name)) {
			continue
		}
		grammarEntries, err := LoadMetadata(filepath.Join(s.root, name))
		if err != nil {
			continue
		}
		for _, g := range grammarEntries {
			if g.Name != "" {
				seen[g.Name] = struct{}{}
			}
		}
		seen[id] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// DepsReport describes whether the local toolchain dependencies needed to
// build grammars are present.
type DepsReport struct {
	GitInstalled       bool
	CCompilerInstalled bool
}

// OK reports whether every dependency is satisfied.
func (r DepsReport) OK() bool { return r.GitInstalled && r.CCompilerInstalled }

// Cause returns a human-readable reason the report is not OK, or "" if
// it is.
func (r DepsReport) Cause() string {
	switch {
	case !r.GitInstalled && !r.CCompilerInstalled:
		return "git and a C compiler are both missing from PATH"
	case !r.GitInstalled:
		return ErrNoGit.Error()
	case !r.CCompilerInstalled:
		return ErrNoCCompiler.Error()
	default:
		return ""
	}
}

// CheckLocalDeps verifies that git and a C compiler are discoverable on
// PATH, returning a report rather than a bare bool so callers can
// explain exactly what is missing.
func (s *Store) CheckLocalDeps(ctx context.Context) DepsReport {
	return DepsReport{
		GitInstalled:       gitsource.IsGitInstalled(ctx),
		CCompilerInstalled: treesitter.IsCCompilerAvailable(),
	}
}

// forceRebuild locates the grammar's primary entry's source directory
// and force-compiles+loads it. §4.2 requires compilation to proceed even
// when the loader would otherwise short-circuit on a cached handle.
func (s *Store) forceRebuild(id, repoDir string) error {
	entries, err := LoadMetadata(repoDir)
	if err != nil {
		return err
	}
	entry, ok := EntryForName(entries, id)
	if !ok {
		entry, ok = EntryForName(entries, "")
	}
	if !ok {
		return fmt.Errorf("%w: %s declares no grammar named %q", ErrGrammarInvalid, repoDir, id)
	}

	srcDir := filepath.Join(repoDir, entry.Path, "src")
	if _, err := s.loader.ForceLoad(id, srcDir); err != nil {
		return &CompileError{Dir: srcDir, Output: err.Error(), Err: err}
	}
	return nil
}

// Loader exposes the underlying compiled-parser loader so other
// packages (the highlighter factory) can resolve an already-installed
// grammar's *sitter.Language without recompiling it.
func (s *Store) Loader() *treesitter.Loader { return s.loader }

func isGitRepo(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info != nil
}
