package toc

import (
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	meta "github.com/yuin/goldmark-meta"
	gmparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/WaylonWalker/markata-go/pkg/security"
)

// Entry is one table-of-contents entry: heading text, level (1-6), and
// the anchor id the rendered document gives that heading.
type Entry struct {
	Text  string
	Level int
	ID    string
}

// Builder walks a document's AST with the same front-matter and
// header-id configuration the renderer itself uses, so every emitted id
// agrees with the anchor the rendered page actually carries.
type Builder struct {
	md goldmark.Markdown
}

// NewBuilder returns a Builder.
func NewBuilder() *Builder {
	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
		goldmark.WithParserOptions(
			gmparser.WithAutoHeadingID(),
		),
	)
	return &Builder{md: md}
}

// Build parses source and returns one Entry per heading, in document
// order.
func (b *Builder) Build(source []byte) ([]Entry, error) {
	ids := newTocIDs()
	reader := text.NewReader(source)
	doc := b.md.Parser().Parse(reader, gmparser.WithContext(gmparser.NewContext(gmparser.WithIDs(ids))))

	var entries []Entry
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		textContent := firstTextChild(heading, source)
		id := security.HeadingID(textContent)
		if raw, ok := heading.AttributeString("id"); ok {
			if bytesID, ok := raw.([]byte); ok {
				id = string(bytesID)
			}
		}
		entries = append(entries, Entry{Text: textContent, Level: heading.Level, ID: id})
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking document: %w", err)
	}

	return entries, nil
}

// firstTextChild returns the rendered text of a heading's first text
// child, per §4.8 ("read its first text child").
func firstTextChild(heading *ast.Heading, source []byte) string {
	for c := heading.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			return string(t.Segment.Value(source))
		}
	}
	return ""
}

// tocIDs mirrors the renderer's own de-duplicating id generator so a
// heading with the same text in both places gets the same anchor.
type tocIDs struct {
	used map[string]int
}

func newTocIDs() *tocIDs { return &tocIDs{used: make(map[string]int)} }

func (t *tocIDs) Generate(value []byte, _ ast.NodeKind) []byte {
	base := security.HeadingID(string(value))
	n, seen := t.used[base]
	if !seen {
		t.used[base] = 0
		return []byte(base)
	}
	n++
	t.used[base] = n
	return []byte(fmt.Sprintf("%s-%d", base, n))
}

func (t *tocIDs) Put(value []byte) {
	if _, ok := t.used[string(value)]; !ok {
		t.used[string(value)] = 0
	}
}
