package fuzzysearch

import (
	"container/heap"
	"math"
	"sync"
	"sync/atomic"
)

// orderedSink is the shared landing point for every worker's emissions:
// it inserts into a priority max-heap under a single lock, and
// optionally forwards each result on a subscriber channel. A blocked or
// disconnected subscriber disables further forwarding but never drops a
// heap insert.
type orderedSink struct {
	mu   sync.Mutex
	h    resultHeap
	seq  atomic.Uint64
	out  chan<- SearchResult
	down atomic.Bool
}

func newOrderedSink(out chan<- SearchResult) *orderedSink {
	return &orderedSink{out: out}
}

func (s *orderedSink) insert(r SearchResult) {
	seq := s.seq.Add(1)

	s.mu.Lock()
	heap.Push(&s.h, rankedResult{result: r, seq: seq})
	s.mu.Unlock()

	if s.out == nil || s.down.Load() {
		return
	}
	select {
	case s.out <- r:
	default:
		s.down.Store(true)
	}
}

// drain pops up to limit results in descending-priority order, then
// quality-trims: given top = the highest drained priority, keeps only
// results with priority >= top - floor(top/4).
func (s *orderedSink) drain(limit int) []SearchResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var drained []SearchResult
	for len(drained) < limit && s.h.Len() > 0 {
		item := heap.Pop(&s.h).(rankedResult)
		drained = append(drained, item.result)
	}
	if len(drained) == 0 {
		return drained
	}

	top := drained[0].Priority
	min := top - uint32(math.Floor(float64(top)/4))

	trimmed := drained[:0:0]
	for _, r := range drained {
		if r.Priority >= min {
			trimmed = append(trimmed, r)
		}
	}
	return trimmed
}

func (s *orderedSink) close() {
	if s.out != nil {
		close(s.out)
	}
}
