// Package security provides the heading-id slugifier shared by the TOC
// builder and the markdown renderer, so that a table-of-contents entry's
// id always matches the anchor id the renderer assigns to the same
// heading (§8 "Header-id equivalence").
//
// It also owns the fixed security prefix prepended to every generated id,
// so that no attacker-controlled heading text can collide with an id
// chosen by the surrounding host application.
package security

import (
	"strings"
	"unicode"
)

// Prefix is prepended to every generated anchor id.
const Prefix = "h-"

// Slug lowercases text, turns each run of whitespace into a single
// hyphen, and drops every other rune that is not a letter, digit, or
// hyphen — it does not substitute a hyphen for dropped punctuation, so
// "brok!$en" becomes "broken" and a punctuation-only word surrounded by
// spaces (like an emoji) leaves the hyphens on both sides behind,
// producing a double hyphen. Leading and trailing hyphens are trimmed.
// Unicode letters (accented, CJK, ...) are preserved and lowercased.
func Slug(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inSpace := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r):
			if !inSpace {
				b.WriteRune('-')
				inSpace = true
			}
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(unicode.ToLower(r))
			inSpace = false
		case r == '-':
			b.WriteRune('-')
			inSpace = false
		default:
			// Punctuation and symbols (including emoji) are dropped
			// entirely, not replaced with a separator. This must not
			// bridge two whitespace runs into one: reset inSpace so a
			// space that follows still produces its own hyphen.
			inSpace = false
		}
	}

	return strings.Trim(b.String(), "-")
}

// HeadingID returns the security-prefixed slug of text, the id every
// generated heading anchor (TOC entry or rendered <h*> tag) must use.
func HeadingID(text string) string {
	return Prefix + Slug(text)
}
