// Package benchmarks provides testing.B benchmarks for markata-go's
// rendering and search packages.
//
// Run benchmarks with:
//
//	go test -bench=. -run=^$ ./benchmarks/...
//
// For profiling:
//
//	go test -bench=BenchmarkHighlight -run=^$ -cpuprofile=cpu.prof -memprofile=mem.prof ./benchmarks/...
package benchmarks

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/WaylonWalker/markata-go/pkg/diskindex"
	"github.com/WaylonWalker/markata-go/pkg/fuzzysearch"
	"github.com/WaylonWalker/markata-go/pkg/grammars"
	"github.com/WaylonWalker/markata-go/pkg/highlight"
	"github.com/WaylonWalker/markata-go/pkg/mathrender"
)

const sampleGoSource = `package main

import (
	"fmt"
	"net/http"
)

func main() {
	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, "Hello, %s!", r.URL.Path[1:])
	})
	http.ListenAndServe(":8080", nil)
}
`

// BenchmarkHighlight measures the escaped-fallback path, since the
// tree-sitter path depends on a grammar being installed on the
// benchmarking machine.
func BenchmarkHighlight(b *testing.B) {
	store, err := grammars.NewStore(b.TempDir())
	if err != nil {
		b.Fatalf("NewStore: %v", err)
	}
	cache := highlight.NewCache(store)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Highlight("go", sampleGoSource)
	}
}

// BenchmarkMathRender measures Renderer.Render on a cache miss followed
// by a cache hit, reporting the combined cost.
func BenchmarkMathRender(b *testing.B) {
	r := mathrender.New(64 << 20)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		expr := fmt.Sprintf("x_%d^2 + y_%d^2 = z^2", i%37, i%37)
		if _, err := r.Render(expr); err != nil {
			b.Fatalf("Render: %v", err)
		}
	}
}

// BenchmarkDiskIndex measures a full Start() walk over a generated tree
// of Markdown fixtures.
func BenchmarkDiskIndex(b *testing.B) {
	root := b.TempDir()
	generateFixtureTree(b, root, 200)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ix := diskindex.New(root, 0, nil)
		if err := ix.Start(); err != nil {
			b.Fatalf("Start: %v", err)
		}
	}
}

// BenchmarkSearch measures FuzzySearcher.Search over an indexed fixture
// tree.
func BenchmarkSearch(b *testing.B) {
	root := b.TempDir()
	generateFixtureTree(b, root, 200)

	ix := diskindex.New(root, 0, nil)
	if err := ix.Start(); err != nil {
		b.Fatalf("Start: %v", err)
	}
	s := fuzzysearch.New(0)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Search(ix, "post", 20, nil)
	}
}

// generateFixtureTree writes n deterministic Markdown files under
// root/posts, each with two headings, for the index/search benchmarks.
func generateFixtureTree(b *testing.B, root string, n int) {
	b.Helper()
	dir := filepath.Join(root, "posts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		b.Fatalf("MkdirAll: %v", err)
	}
	for i := 0; i < n; i++ {
		content := fmt.Sprintf("# Post %d\n\nBody text for post %d.\n\n## Notes\n\nMore text.\n", i, i)
		path := filepath.Join(dir, fmt.Sprintf("post-%03d.md", i))
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			b.Fatalf("WriteFile: %v", err)
		}
	}
}
