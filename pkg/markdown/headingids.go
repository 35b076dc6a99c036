package markdown

import (
	"fmt"

	"github.com/yuin/goldmark/ast"

	"github.com/WaylonWalker/markata-go/pkg/security"
)

// headingIDs implements goldmark's parser.IDs, generating heading anchor
// ids as security.HeadingID(text) and de-duplicating collisions with a
// "-N" numeric suffix, the same convention goldmark's own default
// generator uses.
type headingIDs struct {
	used map[string]int
}

func newHeadingIDs() *headingIDs {
	return &headingIDs{used: make(map[string]int)}
}

// Generate returns the anchor id for a heading whose rendered text is
// value.
func (h *headingIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	base := security.HeadingID(string(value))
	return h.reserve(base)
}

func (h *headingIDs) reserve(base string) []byte {
	n, seen := h.used[base]
	if !seen {
		h.used[base] = 0
		return []byte(base)
	}
	n++
	h.used[base] = n
	return []byte(fmt.Sprintf("%s-%d", base, n))
}

// Put records an externally-supplied id (e.g. from an explicit {#id}
// attribute) so later auto-generated ids never collide with it.
func (h *headingIDs) Put(value []byte) {
	if _, ok := h.used[string(value)]; !ok {
		h.used[string(value)] = 0
	}
}
