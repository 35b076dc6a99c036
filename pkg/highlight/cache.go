package highlight

import (
	"html"
	"sync"

	"github.com/WaylonWalker/markata-go/pkg/grammars"
)

// Cache is the process-wide GrammarId → HighlighterConfig mapping. An
// entry present in the cache is always usable; a failed construction
// leaves no entry, so the next call simply retries the factory.
type Cache struct {
	store *grammars.Store

	mu      sync.RWMutex
	configs map[string]*HighlighterConfig
}

// NewCache returns a Cache backed by store for grammar resolution.
func NewCache(store *grammars.Store) *Cache {
	return &Cache{
		store:   store,
		configs: make(map[string]*HighlighterConfig),
	}
}

// Highlight implements §4.3's five-step algorithm: empty grammar id
// escapes verbatim; otherwise the id is normalized, looked up under a
// read lock, and on a miss a config is built outside any lock and
// inserted under a write lock (last write wins on a construction race).
// A missing or invalid grammar never aborts the render: it escapes the
// code verbatim, per §4.12. There is no degraded coloring in between.
func (c *Cache) Highlight(grammarID, code string) string {
	if grammarID == "" {
		return html.EscapeString(code)
	}

	id := grammars.Normalize(grammarID)

	c.mu.RLock()
	cfg, ok := c.configs[id]
	c.mu.RUnlock()
	if ok {
		return render(cfg, []byte(code))
	}

	cfg, err := BuildConfig(c.store, id)
	if err != nil {
		return html.EscapeString(code)
	}

	c.mu.Lock()
	if existing, ok := c.configs[id]; ok {
		cfg = existing
	} else {
		c.configs[id] = cfg
	}
	c.mu.Unlock()

	return render(cfg, []byte(code))
}

// Names returns the recognized highlight names for id if a config has
// already been built for it, for callers (the CSS projector) that need
// every name a given grammar can emit.
func (c *Cache) Names(grammarID string) ([]string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cfg, ok := c.configs[grammars.Normalize(grammarID)]
	if !ok {
		return nil, false
	}
	return cfg.Names(), true
}
