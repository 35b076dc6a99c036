package highlight

import "errors"

// Sentinel errors for HighlighterFactory construction failures, named to
// match the core's vocabulary for this outcome.
var (
	// ErrGrammarMissing is returned when the requested grammar has no
	// compiled parser available through the store's loader.
	ErrGrammarMissing = errors.New("grammar not installed")

	// ErrGrammarInvalid is returned when a grammar's metadata declares no
	// grammar entries at all.
	ErrGrammarInvalid = errors.New("invalid grammar metadata")

	// ErrQueriesMissing is returned when a grammar declares no highlight
	// queries, so no HighlighterConfig could be built from it.
	ErrQueriesMissing = errors.New("no highlight queries declared")
)
