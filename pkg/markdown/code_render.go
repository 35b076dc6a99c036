package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/WaylonWalker/markata-go/pkg/highlight"
)

// codeNodeRenderer overrides goldmark's default FencedCodeBlock/CodeBlock
// rendering to dispatch code text through the HighlighterCache per §4.3,
// leaving the <pre>/<code> opening tags' own attributes unchanged.
type codeNodeRenderer struct {
	html.Config
	cache *highlight.Cache
}

func newCodeNodeRenderer(cache *highlight.Cache) renderer.NodeRenderer {
	return &codeNodeRenderer{Config: html.NewConfig(), cache: cache}
}

func (r *codeNodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.renderFenced)
	reg.Register(ast.KindCodeBlock, r.renderPlain)
}

func (r *codeNodeRenderer) renderFenced(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.FencedCodeBlock)
	language := ""
	if lang := n.Language(source); lang != nil {
		language = string(lang)
	}
	r.writeBlock(w, language, segmentsText(n.Lines(), source))
	return ast.WalkSkipChildren, nil
}

func (r *codeNodeRenderer) renderPlain(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*ast.CodeBlock)
	r.writeBlock(w, "", segmentsText(n.Lines(), source))
	return ast.WalkSkipChildren, nil
}

func (r *codeNodeRenderer) writeBlock(w util.BufWriter, language, code string) {
	w.WriteString("<pre><code>")
	w.WriteString(r.cache.Highlight(language, code))
	w.WriteString("</code></pre>\n")
}

// segmentsText concatenates a code block's raw source lines.
func segmentsText(lines *text.Segments, source []byte) string {
	var b strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return b.String()
}
