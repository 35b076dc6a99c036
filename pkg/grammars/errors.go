package grammars

import (
	"errors"
	"fmt"
)

// Sentinel errors for the grammar store's expected failure conditions.
var (
	// ErrGrammarMissing is returned when an operation targets a grammar
	// that has no corresponding repository on disk.
	ErrGrammarMissing = errors.New("grammar not installed")

	// ErrGrammarInvalid is returned when a repository's tree-sitter.json
	// is missing, malformed, or declares no grammars.
	ErrGrammarInvalid = errors.New("invalid grammar metadata")

	// ErrNoCCompiler is returned by CheckLocalDeps when no C compiler is
	// reachable on PATH.
	ErrNoCCompiler = errors.New("no C compiler found")

	// ErrNoGit is returned by CheckLocalDeps when git is not reachable.
	ErrNoGit = errors.New("git is not installed")
)

// InstallError wraps a failed Install call with the grammar's source URL
// and the underlying cause (clone failure or compile failure), as §4.12
// requires ("reports InstallFailed with cause").
type InstallError struct {
	URL string
	Err error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("install %s failed: %v", e.URL, e.Err)
}

func (e *InstallError) Unwrap() error { return e.Err }

// UpdateError wraps a failed Update call.
type UpdateError struct {
	GrammarID string
	Err       error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("update %s failed: %v", e.GrammarID, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }

// CompileError wraps a failed native-compile step with the compiler's
// combined output for diagnostics.
type CompileError struct {
	Dir    string
	Output string
	Err    error
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s failed: %v: %s", e.Dir, e.Err, e.Output)
}

func (e *CompileError) Unwrap() error { return e.Err }
