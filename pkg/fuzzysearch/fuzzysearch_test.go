package fuzzysearch

import (
	"testing"
)

type fakeIndex struct {
	titles map[string][]string
	files  []string
}

func (f fakeIndex) Titles() map[string][]string { return f.titles }
func (f fakeIndex) Files() []string              { return f.files }

func TestSearchRanksPathMatchAboveTitleMatch(t *testing.T) {
	idx := fakeIndex{
		titles: map[string][]string{
			"Hello": {"depth1/test4.md"},
		},
		files: []string{"depth1/hello.md", "depth1/test4.md", "depth2/test.md"},
	}

	s := New(2)
	results := s.Search(idx, "hello", 10, nil)

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(results), results)
	}
	if results[0].Path != "depth1/hello.md" || results[0].HasTitle {
		t.Fatalf("results[0] = %+v, want path match depth1/hello.md with no title", results[0])
	}
	if results[1].Path != "depth1/test4.md" || !results[1].HasTitle || results[1].Title != "Hello" {
		t.Fatalf("results[1] = %+v, want title match depth1/test4.md titled Hello", results[1])
	}
	if results[0].Priority <= results[1].Priority {
		t.Fatalf("path match priority %d should exceed title match priority %d", results[0].Priority, results[1].Priority)
	}
}

func TestSearchQualityTrimKeepsOnlyTopBand(t *testing.T) {
	idx := fakeIndex{
		titles: map[string][]string{
			"Testing":     {"a.md"},
			"Tutorial":    {"b.md"},
			"Unmatched t": {"c.md"},
		},
		files: []string{"test/depth1/hello.md", "test/depth1/test4.md", "test/depth2/test.md"},
	}

	s := New(3)
	results := s.Search(idx, "t", 100, nil)

	if len(results) == 0 {
		t.Fatalf("expected non-empty results")
	}
	top := results[0].Priority
	min := top - top/4
	for i := 1; i < len(results); i++ {
		if results[i].Priority > results[i-1].Priority {
			t.Fatalf("results not sorted by descending priority: %+v", results)
		}
		if results[i].Priority < min {
			t.Fatalf("result %+v has priority below quality-trim floor %d", results[i], min)
		}
	}
}

func TestSearchRespectsLimit(t *testing.T) {
	idx := fakeIndex{
		titles: map[string][]string{
			"Apple":    {"a.md"},
			"Applause": {"b.md"},
			"Apply":    {"c.md"},
		},
	}
	s := New(2)
	results := s.Search(idx, "app", 2, nil)
	if len(results) > 2 {
		t.Fatalf("got %d results, want at most 2", len(results))
	}
}

func TestSearchStreamsResultsAndClosesChannel(t *testing.T) {
	idx := fakeIndex{
		titles: map[string][]string{"Hello World": {"a.md"}},
		files:  []string{"hello-world.md"},
	}
	s := New(1)
	stream := make(chan SearchResult, 8)

	done := make(chan struct{})
	var seen []SearchResult
	go func() {
		for r := range stream {
			seen = append(seen, r)
		}
		close(done)
	}()

	results := s.Search(idx, "hello", 10, stream)
	<-done

	if len(results) == 0 {
		t.Fatalf("expected non-empty results")
	}
	if len(seen) != len(results) {
		t.Fatalf("stream delivered %d results, heap returned %d", len(seen), len(results))
	}
}

func TestSearchNoMatchesReturnsEmpty(t *testing.T) {
	idx := fakeIndex{titles: map[string][]string{"Zzz": {"a.md"}}, files: []string{"zzz.md"}}
	s := New(1)
	results := s.Search(idx, "qqqqqqqqqqqqqqqqqqqqqqzzzzzzzzzzzzzzzzzzzz", 10, nil)
	if len(results) != 0 {
		t.Fatalf("got %+v, want no matches", results)
	}
}

func TestPartitionStringsCeilingEqual(t *testing.T) {
	keys := []string{"a", "b", "c", "d", "e"}
	chunks := partitionStrings(keys, 2)
	total := 0
	for _, c := range chunks {
		total += len(c)
	}
	if total != len(keys) {
		t.Fatalf("chunks cover %d keys, want %d", total, len(keys))
	}
}
