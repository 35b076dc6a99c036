package diskindex

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return p
}

func TestProgressBeforeStartIsZero(t *testing.T) {
	ix := New(t.TempDir(), 2, nil)
	if got := ix.Progress(); got != 0 {
		t.Fatalf("Progress() before Start = %d, want 0", got)
	}
}

func TestProgressIsZeroForEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	ix := New(dir, 2, nil)
	if err := ix.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := ix.Progress(); got != 0 {
		t.Fatalf("Progress() for empty root = %d, want 0", got)
	}
	stats := ix.Stats()
	if stats.MarkdownPathsCount != 0 || stats.HeadingsCount != 0 {
		t.Fatalf("Stats() = %+v, want zero", stats)
	}
}

func TestProgressIsHundredAfterStartCompletes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "# Hello\n")
	writeFile(t, dir, "b.md", "# World\n")

	ix := New(dir, 2, nil)
	if err := ix.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if got := ix.Progress(); got != 100 {
		t.Fatalf("Progress() after Start = %d, want 100", got)
	}
}

func TestSetWorkerCountAfterStartFails(t *testing.T) {
	dir := t.TempDir()
	ix := New(dir, 2, nil)
	if err := ix.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := ix.SetWorkerCount(4); err != ErrAlreadyStarted {
		t.Fatalf("SetWorkerCount after Start = %v, want ErrAlreadyStarted", err)
	}
}

func TestSetWorkerCountZeroFails(t *testing.T) {
	ix := New(t.TempDir(), 2, nil)
	if err := ix.SetWorkerCount(0); err != ErrInvalidThreadCount {
		t.Fatalf("SetWorkerCount(0) = %v, want ErrInvalidThreadCount", err)
	}
}

func TestSetWorkerCountBeforeStartSucceeds(t *testing.T) {
	ix := New(t.TempDir(), 2, nil)
	if err := ix.SetWorkerCount(8); err != nil {
		t.Fatalf("SetWorkerCount: %v", err)
	}
	if ix.workerCount != 8 {
		t.Fatalf("workerCount = %d, want 8", ix.workerCount)
	}
}

func TestStartCollectsHeadingsAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	pathA := writeFile(t, dir, "a.md", "# Shared Heading\n\nbody\n")
	pathB := writeFile(t, dir, "nested/b.md", "# Shared Heading\n\n## Other\n")

	ix := New(dir, 3, nil)
	if err := ix.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	stats := ix.Stats()
	if stats.MarkdownPathsCount != 2 {
		t.Fatalf("MarkdownPathsCount = %d, want 2", stats.MarkdownPathsCount)
	}
	if stats.HeadingsCount != 2 {
		t.Fatalf("HeadingsCount = %d, want 2 (Shared Heading, Other)", stats.HeadingsCount)
	}

	titles := ix.Titles()
	shared := titles["Shared Heading"]
	sort.Strings(shared)
	want := []string{pathA, pathB}
	sort.Strings(want)
	if len(shared) != 2 || shared[0] != want[0] || shared[1] != want[1] {
		t.Fatalf("Titles()[Shared Heading] = %v, want %v", shared, want)
	}
	if other := titles["Other"]; len(other) != 1 || other[0] != pathB {
		t.Fatalf("Titles()[Other] = %v, want [%s]", other, pathB)
	}
}

func TestStartIgnoresNonMarkdownFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.md", "# Heading\n")
	writeFile(t, dir, "notes.txt", "# Not indexed\n")

	ix := New(dir, 2, nil)
	if err := ix.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if stats := ix.Stats(); stats.MarkdownPathsCount != 1 {
		t.Fatalf("MarkdownPathsCount = %d, want 1", stats.MarkdownPathsCount)
	}
}

func TestStartHonorsIgnoreGlobs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "keep.md", "# Keep\n")
	writeFile(t, dir, "drafts/skip.md", "# Skip\n")

	ix := New(dir, 2, []string{"drafts/**"})
	if err := ix.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	files := ix.Files()
	if len(files) != 1 || filepath.Base(files[0]) != "keep.md" {
		t.Fatalf("Files() = %v, want only keep.md", files)
	}
}

func TestStartTwiceFailsSecondCall(t *testing.T) {
	ix := New(t.TempDir(), 1, nil)
	if err := ix.Start(); err != nil {
		t.Fatalf("first Start: %v", err)
	}
	if err := ix.Start(); err != ErrAlreadyStarted {
		t.Fatalf("second Start = %v, want ErrAlreadyStarted", err)
	}
}

func TestPartitionCeilingEqualChunks(t *testing.T) {
	files := []string{"a", "b", "c", "d", "e"}
	chunks := partition(files, 2)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2 (sizes 3,2)", len(chunks))
	}
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	if total != len(files) {
		t.Fatalf("chunks cover %d files, want %d", total, len(files))
	}
}

func TestPartitionEmptyFiles(t *testing.T) {
	if chunks := partition(nil, 4); chunks != nil {
		t.Fatalf("partition(nil, 4) = %v, want nil", chunks)
	}
}
