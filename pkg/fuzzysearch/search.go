// Package fuzzysearch answers ranked top-k queries over a DiskIndexer
// snapshot: headings and paths are both scored with the same
// sahilm/fuzzy matcher (there is no separate title or path
// configuration), path matches get a priority boost, and every
// emission lands on a shared ordered sink that both ranks and
// (optionally) streams results live.
package fuzzysearch

import (
	"math"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
)

// Index is the read-only snapshot a Searcher queries: the headings map
// (heading text -> file paths that contain it) and the full Markdown
// path list, as produced by pkg/diskindex.
type Index interface {
	Titles() map[string][]string
	Files() []string
}

// Searcher runs fuzzy queries over an Index snapshot across a worker
// pool.
type Searcher struct {
	workerCount int
}

// New returns a Searcher with workerCount workers for the titles pass
// (runtime.NumCPU() if workerCount is 0). The path pass always runs as
// a single concurrent scan, per §4.10 ("in parallel on the main
// thread").
func New(workerCount int) *Searcher {
	if workerCount == 0 {
		workerCount = runtime.NumCPU()
	}
	return &Searcher{workerCount: workerCount}
}

// Search scores query against index's headings and paths, returning up
// to limit results ordered by descending priority (quality-trimmed to
// the top 25% priority band). If stream is non-nil, every emission is
// also forwarded on it before it is closed when Search returns; a
// blocked or disconnected stream stops receiving forwards but never
// affects the returned list.
func (s *Searcher) Search(index Index, query string, limit int, stream chan<- SearchResult) []SearchResult {
	query = strings.ToLower(query)

	titles := index.Titles()
	files := index.Files()

	titleKeys := make([]string, 0, len(titles))
	for k := range titles {
		titleKeys = append(titleKeys, k)
	}
	sort.Strings(titleKeys)

	sink := newOrderedSink(stream)
	defer sink.close()

	var wg sync.WaitGroup

	chunks := partitionStrings(titleKeys, s.workerCount)
	for _, chunk := range chunks {
		if len(chunk) == 0 {
			continue
		}
		wg.Add(1)
		go func(keys []string) {
			defer wg.Done()
			s.scoreTitles(keys, titles, query, sink)
		}(chunk)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		s.scorePaths(files, query, sink)
	}()

	wg.Wait()

	return sink.drain(limit)
}

func (s *Searcher) scoreTitles(keys []string, titles map[string][]string, query string, sink *orderedSink) {
	for _, title := range keys {
		matches := fuzzy.Find(query, []string{title})
		if len(matches) == 0 || matches[0].Score <= scoreThreshold {
			continue
		}
		priority := uint32(matches[0].Score)
		for _, path := range titles[title] {
			sink.insert(SearchResult{Path: path, Title: title, HasTitle: true, Priority: priority})
		}
	}
}

func (s *Searcher) scorePaths(files []string, query string, sink *orderedSink) {
	matches := fuzzy.Find(query, files)
	for _, m := range matches {
		if m.Score <= scoreThreshold {
			continue
		}
		priority := uint32(math.Floor(float64(m.Score) * pathBoost))
		sink.insert(SearchResult{Path: files[m.Index], Priority: priority})
	}
}

// partitionStrings splits keys into workerCount chunks of ceiling-equal
// size.
func partitionStrings(keys []string, workerCount int) [][]string {
	if workerCount < 1 {
		workerCount = 1
	}
	if len(keys) == 0 {
		return nil
	}
	chunkSize := int(math.Ceil(float64(len(keys)) / float64(workerCount)))
	if chunkSize < 1 {
		chunkSize = 1
	}

	var chunks [][]string
	for i := 0; i < len(keys); i += chunkSize {
		end := i + chunkSize
		if end > len(keys) {
			end = len(keys)
		}
		chunks = append(chunks, keys[i:end])
	}
	return chunks
}
