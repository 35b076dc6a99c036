package mathrender

import (
	"fmt"
	"regexp"
)

// idAttr and idRef match an SVG element's own id declaration and any
// reference to one (url(#id), href="#id", xlink:href="#id").
var (
	idAttr = regexp.MustCompile(`\bid="([^"]+)"`)
	idRef  = regexp.MustCompile(`(url\(#|(?:xlink:)?href="#)([^")]+)`)
)

// prefixIDs rewrites every id declaration and reference in svg by
// prepending "prefix<n>-", guaranteeing uniqueness when multiple SVGs
// produced by separate render calls are embedded into one document —
// this is the optimizer's one configured job per §4.4 step 5.
func prefixIDs(svg string, n uint64) string {
	prefix := fmt.Sprintf("prefix%d-", n)

	out := idAttr.ReplaceAllString(svg, `id="`+prefix+`${1}"`)
	out = idRef.ReplaceAllStringFunc(out, func(m string) string {
		sub := idRef.FindStringSubmatch(m)
		return sub[1] + prefix + sub[2]
	})
	return out
}
