package markdown

import (
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// mathBlockParser parses a display-math block: a line of exactly "$$",
// followed by one or more lines of raw expression text, closed by a line
// of exactly "$$".
type mathBlockParser struct{}

func newMathBlockParser() parser.BlockParser {
	return &mathBlockParser{}
}

func (p *mathBlockParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *mathBlockParser) Open(_ ast.Node, reader text.Reader, _ parser.Context) (ast.Node, parser.State) {
	line, _ := reader.PeekLine()
	if strings.TrimSpace(string(line)) != "$$" {
		return nil, parser.NoChildren
	}
	reader.Advance(len(line))
	return NewMathBlock(""), parser.NoChildren
}

func (p *mathBlockParser) Continue(node ast.Node, reader text.Reader, _ parser.Context) parser.State {
	mb := node.(*MathBlock)
	line, _ := reader.PeekLine()
	if strings.TrimSpace(string(line)) == "$$" {
		reader.Advance(len(line))
		return parser.Close
	}
	mb.lines = append(mb.lines, strings.TrimRight(string(line), "\r\n"))
	reader.Advance(len(line))
	return parser.Continue | parser.NoChildren
}

func (p *mathBlockParser) Close(node ast.Node, _ text.Reader, _ parser.Context) {
	mb := node.(*MathBlock)
	mb.Expression = strings.Join(mb.lines, "\n")
}

func (p *mathBlockParser) CanInterruptParagraph() bool { return true }
func (p *mathBlockParser) CanAcceptIndentedLine() bool { return false }
