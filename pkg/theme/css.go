package theme

import (
	"fmt"
	"sort"
	"strings"
)

// Project emits the scoped stylesheet for theme: a pre/code base rule
// pair plus one rule per populated recognized-name index, in ascending
// index order (a deterministic order the core requires to support
// regression testing).
func Project(theme *Theme, recognizedNames []string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "pre{background-color:%s;}\n", theme.Background.Color)
	fmt.Fprintf(&b, "code{color:%s;}\n", theme.Foreground.Color)

	indices := make([]int, 0, len(theme.ByIndex))
	for i := range theme.ByIndex {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	for _, i := range indices {
		if i < 0 || i >= len(recognizedNames) {
			continue
		}
		style := theme.ByIndex[i]
		name := recognizedNames[i]

		var decls strings.Builder
		fmt.Fprintf(&decls, "color:%s;", style.Color)
		if style.Bold {
			decls.WriteString("font-weight:bold;")
		}
		if style.Italic {
			decls.WriteString("font-style:italic;")
		}

		fmt.Fprintf(&b, "code .%s{%s}\n", name, decls.String())
	}

	return b.String()
}
