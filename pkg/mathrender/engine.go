package mathrender

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/go-latex/latex/drawtex/drawsvg"
	"github.com/go-latex/latex/mtex"
)

// mathFontPt and mathDPI pick a fixed virtual pixel scale for every
// rendered expression, so embedding many SVGs into one document never
// needs per-expression size negotiation.
const (
	mathFontPt = 14.0
	mathDPI    = 150.0
)

// engine wraps the embedded layout engine's compilation entry point
// behind a mutex — it is not safe for concurrent use, unlike everything
// else in this package.
type engine struct {
	mu sync.Mutex
}

// compile renders expr (already delimiter-wrapped by wrapExpression) to
// an SVG fragment string. Compile failures are reported as *ParseError.
func (e *engine) compile(expr string) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	canvas := drawsvg.New()
	if err := mtex.Render(canvas, expr, mathFontPt, mathDPI); err != nil {
		return "", &ParseError{
			Expression: expr,
			Message:    err.Error(),
		}
	}

	var buf bytes.Buffer
	if _, err := canvas.WriteTo(&buf); err != nil {
		return "", &ParseError{
			Expression: expr,
			Message:    fmt.Sprintf("serializing SVG: %v", err),
		}
	}

	return buf.String(), nil
}

// wrapExpression wraps expr in the deterministic prelude required by
// §4.4 step 2: no page margins, auto page sizing, dollar-delimited math.
// The embedded engine here has no page model of its own, so the prelude
// reduces to the delimiter wrap alone — the engine always renders a
// tightly-cropped formula, which is the same end effect as disabling
// margins and forcing auto dimensions.
func wrapExpression(expr string) string {
	return "$" + expr + "$"
}
