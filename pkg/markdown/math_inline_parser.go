package markdown

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// mathInlineParser parses $expression$ (never $$, which the block parser
// owns when it opens a line): it finds the opening '$' and closes at the
// first '$' after it on the same line.
type mathInlineParser struct{}

func newMathInlineParser() parser.InlineParser {
	return &mathInlineParser{}
}

func (p *mathInlineParser) Trigger() []byte {
	return []byte{'$'}
}

func (p *mathInlineParser) Parse(_ ast.Node, block text.Reader, _ parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 2 || line[0] != '$' {
		return nil
	}
	if line[1] == '$' {
		// A double-dollar run belongs to the block parser, not inline math.
		return nil
	}

	closeIdx := -1
	for i := 1; i < len(line); i++ {
		if line[i] == '$' {
			closeIdx = i
			break
		}
	}
	if closeIdx == -1 || closeIdx == 1 {
		return nil
	}

	expr := string(line[1:closeIdx])
	block.Advance(closeIdx + 1)
	return NewMathInline(expr)
}
