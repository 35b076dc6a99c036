package grammars

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func mustMkGitRepo(t *testing.T, root, name, grammarName string) string {
	t.Helper()
	dir := filepath.Join(root, "tree-sitter-"+name)
	if err := os.MkdirAll(filepath.Join(dir, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}
	metadata := `{"grammars":[{"name":"` + grammarName + `","path":".","highlights":"queries/highlights.scm"}]}`
	if err := os.WriteFile(filepath.Join(dir, metadataFileName), []byte(metadata), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestNewStoreCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "grammars")
	s, err := NewStore(root)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if info, err := os.Stat(s.Root()); err != nil || !info.IsDir() {
		t.Fatalf("expected root to exist: %v", err)
	}
}

func TestListDedupesAndSorts(t *testing.T) {
	root := t.TempDir()
	mustMkGitRepo(t, root, "rust", "rust")
	mustMkGitRepo(t, root, "bash", "bash")

	s, err := NewStore(root)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	names, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 2 || names[0] != "bash" || names[1] != "rust" {
		t.Fatalf("List = %v, want [bash rust]", names)
	}
}

func TestListSkipsNonGitDirectories(t *testing.T) {
	root := t.TempDir()
	mustMkGitRepo(t, root, "rust", "rust")
	if err := os.MkdirAll(filepath.Join(root, "tree-sitter-stale"), 0o755); err != nil {
		t.Fatal(err)
	}

	s, err := NewStore(root)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	names, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(names) != 1 || names[0] != "rust" {
		t.Fatalf("List = %v, want [rust]", names)
	}
}

func TestGetRepoForGrammarMissing(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if _, err := s.GetRepoForGrammar("rust"); err == nil {
		t.Fatal("expected error for missing grammar")
	}
}

func TestGetRepoForGrammarResolvesAlias(t *testing.T) {
	root := t.TempDir()
	mustMkGitRepo(t, root, "rust", "rust")
	s, err := NewStore(root)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	dir, err := s.GetRepoForGrammar("rs")
	if err != nil {
		t.Fatalf("GetRepoForGrammar: %v", err)
	}
	if filepath.Base(dir) != "tree-sitter-rust" {
		t.Fatalf("got %q, want tree-sitter-rust", dir)
	}
}

func TestDeleteMissingGrammarFails(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if err := s.Delete("rust"); err == nil {
		t.Fatal("expected error deleting a grammar that was never installed")
	}
}

func TestDeleteRemovesDirectoryAndResetsLoader(t *testing.T) {
	root := t.TempDir()
	dir := mustMkGitRepo(t, root, "rust", "rust")
	s, err := NewStore(root)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	s.loader.handles["rust"] = nil // simulate a previously loaded handle

	if err := s.Delete("rust"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Fatalf("expected directory to be removed, stat err = %v", err)
	}
	if _, ok := s.loader.Get("rust"); ok {
		t.Fatal("expected loader handle to be reset")
	}
}

func TestCheckLocalDepsReportsCause(t *testing.T) {
	r := DepsReport{GitInstalled: false, CCompilerInstalled: true}
	if r.OK() {
		t.Fatal("expected report to be not OK")
	}
	if r.Cause() == "" {
		t.Fatal("expected a non-empty cause")
	}

	ok := DepsReport{GitInstalled: true, CCompilerInstalled: true}
	if !ok.OK() || ok.Cause() != "" {
		t.Fatalf("expected satisfied report to be OK with empty cause, got %+v", ok)
	}
}

func TestCheckLocalDepsDoesNotPanic(t *testing.T) {
	s, err := NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	_ = s.CheckLocalDeps(ctx)
}
