package markdown

import "github.com/yuin/goldmark/ast"

// KindMathInline is the AST node kind for dollar-delimited inline math.
var KindMathInline = ast.NewNodeKind("MathInline")

// KindMathBlock is the AST node kind for dollar-delimited display math.
var KindMathBlock = ast.NewNodeKind("MathBlock")

// MathInline is an inline math node: $expression$.
type MathInline struct {
	ast.BaseInline
	Expression string
}

func (n *MathInline) Kind() ast.NodeKind { return KindMathInline }

func (n *MathInline) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Expression": n.Expression}, nil)
}

// NewMathInline returns an inline math node holding expr.
func NewMathInline(expr string) *MathInline {
	return &MathInline{Expression: expr}
}

// MathBlock is a display math node: $$expression$$ on its own lines.
// Expression accumulates line by line while the block parser is open and
// is final once Close runs.
type MathBlock struct {
	ast.BaseBlock
	Expression string

	lines []string
}

func (n *MathBlock) Kind() ast.NodeKind { return KindMathBlock }

func (n *MathBlock) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Expression": n.Expression}, nil)
}

// NewMathBlock returns a display math node holding expr.
func NewMathBlock(expr string) *MathBlock {
	return &MathBlock{Expression: expr}
}
