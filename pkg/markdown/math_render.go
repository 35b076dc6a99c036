package markdown

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"

	"github.com/WaylonWalker/markata-go/pkg/mathrender"
)

// mathNodeRenderer renders MathInline/MathBlock nodes by compiling their
// expression through a shared Renderer, wrapping the SVG per §4.6: a
// <p class='math-block'> for display math, a <span class='math-inline'>
// for inline math, or a <span class='parse-error'> on compile failure.
type mathNodeRenderer struct {
	html.Config
	math *mathrender.Renderer
}

func newMathNodeRenderer(math *mathrender.Renderer) renderer.NodeRenderer {
	return &mathNodeRenderer{Config: html.NewConfig(), math: math}
}

func (r *mathNodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindMathInline, r.renderInline)
	reg.Register(KindMathBlock, r.renderBlock)
}

func (r *mathNodeRenderer) renderInline(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*MathInline)
	w.WriteString("<span class='math-inline'>")
	w.WriteString(r.render(n.Expression))
	w.WriteString("</span>")
	return ast.WalkContinue, nil
}

func (r *mathNodeRenderer) renderBlock(w util.BufWriter, _ []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	n := node.(*MathBlock)
	w.WriteString("<p class='math-block'>")
	w.WriteString(r.render(n.Expression))
	w.WriteString("</p>")
	return ast.WalkContinue, nil
}

func (r *mathNodeRenderer) render(expr string) string {
	svg, err := r.math.Render(expr)
	if err != nil {
		return "<span class='parse-error'>" + string(util.EscapeHTML([]byte(err.Error()))) + "</span>"
	}
	return svg
}
