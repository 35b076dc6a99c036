package treesitter

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"
)

// compileTimeout bounds how long a single grammar compile is allowed to
// run; a hung `gcc` invocation must not wedge Install/Update forever.
const compileTimeout = 2 * time.Minute

// compileGrammar force-compiles the C sources under srcDir (parser.c and,
// if present, scanner.c) into a shared object using the system C
// compiler, returning the path to the produced library.
func compileGrammar(id, srcDir string) (string, error) {
	parserC := filepath.Join(srcDir, "parser.c")
	if _, err := os.Stat(parserC); err != nil {
		return "", fmt.Errorf("compile %s: %w", id, err)
	}

	out := cacheDir(srcDir)
	if err := ensureDir(out); err != nil {
		return "", fmt.Errorf("compile %s: %w", id, err)
	}
	soPath := filepath.Join(out, sharedObjectName(id))

	sources := []string{parserC}
	scannerC := filepath.Join(srcDir, "scanner.c")
	if _, err := os.Stat(scannerC); err == nil {
		sources = append(sources, scannerC)
	}
	scannerCC := filepath.Join(srcDir, "scanner.cc")
	compiler := "gcc"
	if _, err := os.Stat(scannerCC); err == nil {
		sources = append(sources, scannerCC)
		compiler = "g++"
	}

	args := []string{"-shared", "-fPIC", "-O2", "-I", srcDir, "-o", soPath}
	args = append(args, sources...)

	ctx, cancel := context.WithTimeout(context.Background(), compileTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, compiler, args...)
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("compile %s: %w", id, &compileFailure{Dir: srcDir, Output: buf.String(), Err: err})
	}

	return soPath, nil
}

// compileFailure carries the compiler's combined output for
// diagnostics, the same shape as grammars.CompileError (kept local here
// to avoid an import cycle; grammars wraps it again with the grammar id
// it already knows).
type compileFailure struct {
	Dir    string
	Output string
	Err    error
}

func (e *compileFailure) Error() string {
	return fmt.Sprintf("compiling %s: %v: %s", e.Dir, e.Err, e.Output)
}

func (e *compileFailure) Unwrap() error { return e.Err }

// IsCCompilerAvailable reports whether gcc or a compatible C compiler is
// reachable on PATH.
func IsCCompilerAvailable() bool {
	for _, name := range []string{"gcc", "cc", "clang"} {
		if _, err := exec.LookPath(name); err == nil {
			return true
		}
	}
	return false
}
