// Package markdown drives CommonMark parsing with the core's configured
// extensions, dispatching fenced code to a HighlighterCache and dollar-
// delimited math to a MathRenderer, and returning a sanitize.Html value
// ready for HtmlSanitizer.
package markdown

import (
	"bytes"

	figure "github.com/mangoumbrella/goldmark-figure"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"go.abhg.dev/goldmark/anchor"

	"github.com/WaylonWalker/markata-go/pkg/highlight"
	"github.com/WaylonWalker/markata-go/pkg/mathrender"
	"github.com/WaylonWalker/markata-go/pkg/sanitize"
)

// Renderer drives the configured CommonMark pipeline: GFM tables/task
// lists/autolinks/strikethrough, front matter, dollar-delimited math,
// and security-prefixed heading ids.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer dispatching code fences to cache and math nodes
// to math.
func New(cache *highlight.Cache, math *mathrender.Renderer) *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.TaskList,
			extension.Strikethrough,
			extension.Linkify,
			meta.Meta,
			emoji.Emoji,
			figure.Figure,
			&anchor.Extender{},
			&mathExtension{cache: cache, math: math},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
			parser.WithIDs(newHeadingIDs()),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &Renderer{md: md}
}

// Render converts source to an Html value: raw rendered content, an
// empty theme CSS (the caller composes that from pkg/theme separately),
// and the empty image-rewrite policy §4.6 specifies.
func (r *Renderer) Render(source []byte) (sanitize.Html, error) {
	var buf bytes.Buffer
	ctx := parser.NewContext(parser.WithIDs(newHeadingIDs()))
	if err := r.md.Convert(source, &buf, parser.WithContext(ctx)); err != nil {
		return sanitize.Html{}, err
	}
	return sanitize.Html{
		Content: buf.String(),
		Policy:  sanitize.ImageURLPolicy{Kind: sanitize.PolicyNone},
	}, nil
}
