package grammars

// aliases maps a short or alternate language token to its normalized
// GrammarId, per §3's alias table.
var aliases = map[string]string{
	"rs":     "rust",
	"sh":     "bash",
	"shell":  "bash",
	"vuejs":  "vue",
	"py":     "python",
	"hs":     "haskell",
	"md":     "markdown",
	"h":      "cpp",
	"hpp":    "cpp",
	"kt":     "kotlin",
	"rb":     "ruby",
	"js":     "javascript",
	"ts":     "typescript",
}

// Normalize resolves id through the alias table, returning it unchanged
// if it is not a known alias. The result is both the stable external
// identifier and the form every other component keys its state by.
func Normalize(id string) string {
	if resolved, ok := aliases[id]; ok {
		return resolved
	}
	return id
}
