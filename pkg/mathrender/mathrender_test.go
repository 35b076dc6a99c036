package mathrender

import (
	"strings"
	"testing"
)

func TestWeightedCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := newWeightedCache(10)
	c.put("a", "12345") // weight 5
	c.put("b", "12345") // weight 10, at capacity

	if _, ok := c.get("a"); !ok {
		t.Fatal("expected a to still be cached")
	}

	c.put("c", "12345") // pushes total to 15; evict LRU (b, since a was just touched)
	if _, ok := c.get("b"); ok {
		t.Fatal("expected b to have been evicted")
	}
	if _, ok := c.get("a"); !ok {
		t.Fatal("expected a (recently used) to survive eviction")
	}
	if _, ok := c.get("c"); !ok {
		t.Fatal("expected c to be cached")
	}
}

func TestWeightedCacheUpdateExisting(t *testing.T) {
	c := newWeightedCache(100)
	c.put("a", "short")
	c.put("a", "a much longer value")
	got, ok := c.get("a")
	if !ok || got != "a much longer value" {
		t.Fatalf("get(a) = %q, %v", got, ok)
	}
}

func TestPrefixIDsRewritesDeclarationsAndReferences(t *testing.T) {
	svg := `<svg><defs><path id="glyph1"/></defs><use href="#glyph1"/><rect fill="url(#glyph1)"/></svg>`
	got := prefixIDs(svg, 7)

	want := `<svg><defs><path id="prefix7-glyph1"/></defs><use href="#prefix7-glyph1"/><rect fill="url(#prefix7-glyph1)"/></svg>`
	if got != want {
		t.Fatalf("prefixIDs =\n%s\nwant\n%s", got, want)
	}
}

func TestPrefixIDsDistinctCountersNeverCollide(t *testing.T) {
	svg := `<svg><path id="a"/></svg>`
	first := prefixIDs(svg, 1)
	second := prefixIDs(svg, 2)
	if first == second {
		t.Fatal("expected distinct prefixes for distinct counters")
	}
}

func TestWrapExpressionAddsDollarDelimiters(t *testing.T) {
	got := wrapExpression("P = 2 pi r")
	want := "$P = 2 pi r$"
	if got != want {
		t.Fatalf("wrapExpression = %q, want %q", got, want)
	}
}

func TestParseErrorIncludesHints(t *testing.T) {
	err := &ParseError{Expression: "x +", Message: "unexpected end of input", Hints: []string{"did you forget an operand?"}}
	msg := err.Error()
	if msg == "" {
		t.Fatal("expected non-empty error message")
	}
	if !strings.Contains(msg, "\ndid you forget an operand?") {
		t.Fatalf("expected hint on its own line in %q", msg)
	}
}
