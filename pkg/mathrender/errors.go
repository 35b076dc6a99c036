package mathrender

import "fmt"

// ParseError is returned when the layout engine fails to compile a math
// expression. It carries the original expression plus the engine's
// message and any hints, joined by newlines, per §4.4.
type ParseError struct {
	Expression string
	Message    string
	Hints      []string
}

func (e *ParseError) Error() string {
	out := fmt.Sprintf("math expression %q failed to compile: %s", e.Expression, e.Message)
	for _, h := range e.Hints {
		out += "\n" + h
	}
	return out
}
