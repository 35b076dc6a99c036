package fuzzysearch

// SearchResult is one ranked match: a Markdown path, optionally the
// heading it matched under, and the priority it ranked at.
type SearchResult struct {
	Path     string
	Title    string
	HasTitle bool
	Priority uint32
}

// rankedResult adds the monotonic sequence number an ordered sink needs
// to break priority ties in insertion order.
type rankedResult struct {
	result SearchResult
	seq    uint64
}

// resultHeap is a max-heap on priority, with ties broken by the lower
// (earlier) sequence number — container/heap.Interface implementation.
type resultHeap []rankedResult

func (h resultHeap) Len() int { return len(h) }

func (h resultHeap) Less(i, j int) bool {
	if h[i].result.Priority != h[j].result.Priority {
		return h[i].result.Priority > h[j].result.Priority
	}
	return h[i].seq < h[j].seq
}

func (h resultHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *resultHeap) Push(x any) {
	*h = append(*h, x.(rankedResult))
}

func (h *resultHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
