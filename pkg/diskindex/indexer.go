// Package diskindex walks a directory tree for Markdown files, shards
// the file list across a worker pool, and extracts headings from each
// file concurrently with the rest of indexing — building the titles and
// paths data pkg/fuzzysearch queries.
package diskindex

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/WaylonWalker/markata-go/pkg/toc"
)

// flushInterval is how many files a worker processes before flushing its
// local progress count into the shared counter, per §4.9's measured
// contention-reduction property.
const flushInterval = 10

// Stats reports the indexer's current size: the number of distinct
// headings found and the number of Markdown files discovered.
type Stats struct {
	HeadingsCount      int
	MarkdownPathsCount int
}

// Indexer walks root for Markdown files and extracts their headings
// across workerCount workers. The zero value is not usable; construct
// with New.
type Indexer struct {
	root        string
	ignoreGlobs []string

	mu          sync.Mutex
	workerCount int
	started     bool

	titlesMu sync.RWMutex
	titles   map[string][]string

	files []string

	flushed atomic.Int64
}

// New returns an Indexer rooted at root with workerCount workers
// (runtime.NumCPU() if workerCount is 0). ignoreGlobs are doublestar
// patterns, matched against paths relative to root, that are skipped
// during the walk.
func New(root string, workerCount int, ignoreGlobs []string) *Indexer {
	if workerCount == 0 {
		workerCount = runtime.NumCPU()
	}
	return &Indexer{
		root:        root,
		ignoreGlobs: ignoreGlobs,
		workerCount: workerCount,
		titles:      make(map[string][]string),
	}
}

// SetWorkerCount changes the worker count before Start; it fails with
// ErrAlreadyStarted after Start has run, and with ErrInvalidThreadCount
// for a count of 0.
func (ix *Indexer) SetWorkerCount(n int) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	if ix.started {
		return ErrAlreadyStarted
	}
	if n == 0 {
		return ErrInvalidThreadCount
	}
	ix.workerCount = n
	return nil
}

// Start synchronously walks root collecting Markdown file paths in
// traversal order, partitions them into ceiling-equal chunks (at least
// one file each), and spawns one worker per non-empty chunk to extract
// headings. It blocks until every worker has joined.
func (ix *Indexer) Start() error {
	ix.mu.Lock()
	if ix.started {
		ix.mu.Unlock()
		return ErrAlreadyStarted
	}
	ix.started = true
	workerCount := ix.workerCount
	ix.mu.Unlock()

	files, err := ix.walk()
	if err != nil {
		return fmt.Errorf("walking %s: %w", ix.root, err)
	}
	ix.files = files

	chunks := partition(files, workerCount)

	var wg sync.WaitGroup
	for _, chunk := range chunks {
		if len(chunk) == 0 {
			continue
		}
		wg.Add(1)
		go func(paths []string) {
			defer wg.Done()
			ix.runWorker(paths)
		}(chunk)
	}
	wg.Wait()

	return nil
}

func (ix *Indexer) runWorker(paths []string) {
	local := 0
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err == nil {
			for _, heading := range toc.ExtractHeadings(string(data)) {
				ix.titlesMu.Lock()
				ix.titles[heading] = append(ix.titles[heading], p)
				ix.titlesMu.Unlock()
			}
		}

		local++
		if local >= flushInterval {
			ix.flushed.Add(int64(local))
			local = 0
		}
	}
	if local > 0 {
		ix.flushed.Add(int64(local))
	}
}

// Progress returns ceil((flushed/total)*100), or 0 when total is 0.
func (ix *Indexer) Progress() int {
	total := len(ix.files)
	if total == 0 {
		return 0
	}
	flushed := ix.flushed.Load()
	return int(math.Ceil(float64(flushed) / float64(total) * 100))
}

// Stats returns the current heading and file counts.
func (ix *Indexer) Stats() Stats {
	ix.titlesMu.RLock()
	headings := len(ix.titles)
	ix.titlesMu.RUnlock()
	return Stats{HeadingsCount: headings, MarkdownPathsCount: len(ix.files)}
}

// Titles returns the file paths recorded under heading, for
// pkg/fuzzysearch's title matcher.
func (ix *Indexer) Titles() map[string][]string {
	ix.titlesMu.RLock()
	defer ix.titlesMu.RUnlock()
	out := make(map[string][]string, len(ix.titles))
	for k, v := range ix.titles {
		cp := make([]string, len(v))
		copy(cp, v)
		out[k] = cp
	}
	return out
}

// Files returns the discovered Markdown paths, for pkg/fuzzysearch's
// path matcher.
func (ix *Indexer) Files() []string {
	out := make([]string, len(ix.files))
	copy(out, ix.files)
	return out
}

func (ix *Indexer) walk() ([]string, error) {
	root, err := filepath.Abs(ix.root)
	if err != nil {
		return nil, err
	}

	var files []string
	err = filepath.WalkDir(root, func(p string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, p)
		if relErr == nil && ix.isIgnored(rel) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(p), ".md") {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

func (ix *Indexer) isIgnored(relPath string) bool {
	for _, pattern := range ix.ignoreGlobs {
		if matched, _ := doublestar.Match(pattern, filepath.ToSlash(relPath)); matched {
			return true
		}
	}
	return false
}

// partition splits files into workerCount chunks of ceiling-equal size.
func partition(files []string, workerCount int) [][]string {
	if workerCount < 1 {
		workerCount = 1
	}
	if len(files) == 0 {
		return nil
	}
	chunkSize := int(math.Ceil(float64(len(files)) / float64(workerCount)))
	if chunkSize < 1 {
		chunkSize = 1
	}

	var chunks [][]string
	for i := 0; i < len(files); i += chunkSize {
		end := i + chunkSize
		if end > len(files) {
			end = len(files)
		}
		chunks = append(chunks, files[i:end])
	}
	return chunks
}
