// Package toc extracts Markdown headings two ways: a fast, line-oriented
// scan for plain heading text (HeadingExtractor), and a full AST walk
// whose heading-id generator follows the same scheme as the renderer's
// (security.HeadingID plus "-N" de-duplication) so anchor links agree
// with the rendered document (TocBuilder).
package toc

import (
	"bufio"
	"strings"
)

// ExtractHeadings scans source line by line, code-fence aware: a line
// starting with ``` or ~~~ toggles an in-code flag, and lines are
// ignored while inside a fence. Outside a fence, a line starting with
// one or more '#' followed by a single space is a heading; its trimmed
// text (hashes and surrounding whitespace removed) is emitted in
// document order.
func ExtractHeadings(source string) []string {
	var headings []string
	inCode := false

	scanner := bufio.NewScanner(strings.NewReader(source))
	for scanner.Scan() {
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inCode = !inCode
			continue
		}
		if inCode {
			continue
		}

		if text, ok := headingText(line); ok {
			headings = append(headings, text)
		}
	}

	return headings
}

// headingText reports whether line is an ATX heading ("# ... " with a
// single space after the hash run) and, if so, its trimmed text.
func headingText(line string) (string, bool) {
	i := 0
	for i < len(line) && line[i] == '#' {
		i++
	}
	if i == 0 || i >= len(line) || line[i] != ' ' {
		return "", false
	}
	return strings.TrimSpace(line[i+1:]), true
}
