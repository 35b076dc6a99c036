package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"

	"github.com/WaylonWalker/markata-go/pkg/highlight"
	"github.com/WaylonWalker/markata-go/pkg/mathrender"
)

// mathExtension wires the dollar-math parsers and renderer into goldmark.
// priorityOverride must outrank the base html.Renderer's default
// registration priority (1000) so our FencedCodeBlock/CodeBlock funcs
// replace, rather than lose to, the stock ones. goldmark gives precedence
// to the lower number, so the value sits below 1000.
const priorityOverride = 100

type mathExtension struct {
	cache *highlight.Cache
	math  *mathrender.Renderer
}

func (e *mathExtension) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(
		parser.WithInlineParsers(
			util.Prioritized(newMathInlineParser(), 501),
		),
		parser.WithBlockParsers(
			util.Prioritized(newMathBlockParser(), 101),
		),
	)
	m.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(newMathNodeRenderer(e.math), priorityOverride),
			util.Prioritized(newCodeNodeRenderer(e.cache), priorityOverride),
		),
	)
}
