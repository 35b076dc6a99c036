// Package treesitter owns the native half of dynamic grammar loading:
// compiling a grammar's C sources into a shared object with the system
// C compiler, dlopen-ing the result, resolving its
// "tree_sitter_<name>" symbol, and wrapping it as a
// *sitter.Language the rest of the core can hand to a Parser or Query.
//
// Handles are cached by grammar id so repeated highlighter builds for
// the same language reuse one compiled parser. The cache is reset
// whenever a grammar is deleted, since the shared object backing a
// cached handle no longer exists on disk afterward.
package treesitter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"unsafe"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ebitengine/purego"
)

// LoadedGrammar is an in-memory handle to a compiled, dlopen-ed parser.
type LoadedGrammar struct {
	Name     string
	Language *sitter.Language
	// sharedObjectPath records the compiled library this handle was
	// loaded from.
	sharedObjectPath string
}

// Loader compiles grammar sources on demand and caches the resulting
// handles, process-wide, keyed by grammar id. Zero value is not usable;
// construct with NewLoader.
type Loader struct {
	mu      sync.Mutex
	handles map[string]*LoadedGrammar
}

// NewLoader returns an empty Loader.
func NewLoader() *Loader {
	return &Loader{handles: make(map[string]*LoadedGrammar)}
}

// Get returns the cached handle for id, if any.
func (l *Loader) Get(id string) (*LoadedGrammar, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	g, ok := l.handles[id]
	return g, ok
}

// ForceLoad compiles srcDir (a grammar's "src/" directory, containing
// parser.c and optionally scanner.c) into a shared object, dlopen-loads
// it, and replaces any cached handle for id — "force" because §4.2
// requires install/update to always recompile, never reuse a stale
// cached handle even if one exists.
func (l *Loader) ForceLoad(id, srcDir string) (*LoadedGrammar, error) {
	soPath, err := compileGrammar(id, srcDir)
	if err != nil {
		return nil, err
	}

	lang, err := loadLanguage(soPath, id)
	if err != nil {
		return nil, err
	}

	handle := &LoadedGrammar{Name: id, Language: lang, sharedObjectPath: soPath}

	l.mu.Lock()
	l.handles[id] = handle
	l.mu.Unlock()

	return handle, nil
}

// Reset drops the cached handle for id, so that a subsequent highlighter
// build or Names call never reports a grammar that was just deleted (§9
// open question).
func (l *Loader) Reset(id string) {
	l.mu.Lock()
	delete(l.handles, id)
	l.mu.Unlock()
}

// Names returns the grammar ids currently holding a cached handle,
// deduplicated (the same grammar directory can be reported more than
// once if ForceLoad is called twice for the same id; the map already
// collapses that).
func (l *Loader) Names() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	names := make([]string, 0, len(l.handles))
	for name := range l.handles {
		names = append(names, name)
	}
	return names
}

// loadLanguage dlopens soPath via purego (no cgo build step of our own
// required) and resolves its "tree_sitter_<name>" symbol, wrapping the
// resulting function pointer as a *sitter.Language the way any
// statically-linked grammar binding would.
func loadLanguage(soPath, name string) (*sitter.Language, error) {
	handle, err := purego.Dlopen(soPath, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, fmt.Errorf("dlopen %s: %w", soPath, err)
	}

	symbol := "tree_sitter_" + name
	var languageFn func() uintptr
	purego.RegisterLibFunc(&languageFn, handle, symbol)

	ptr := languageFn()
	if ptr == 0 {
		return nil, fmt.Errorf("symbol %s in %s returned a null language", symbol, soPath)
	}

	return sitter.NewLanguage(unsafe.Pointer(ptr)), nil
}

// sharedObjectName returns the platform-dependent file name for a
// compiled grammar's shared library. The loader never lets a caller
// choose this path — it is an implementation detail of compileGrammar.
func sharedObjectName(id string) string {
	switch runtime.GOOS {
	case "darwin":
		return "libtree-sitter-" + id + ".dylib"
	case "windows":
		return "tree-sitter-" + id + ".dll"
	default:
		return "libtree-sitter-" + id + ".so"
	}
}

// cacheDir returns the directory compiled shared objects are written
// into, alongside the grammar's own source tree so repeated builds for
// the same repo land in a stable, predictable place.
func cacheDir(srcDir string) string {
	return filepath.Join(filepath.Dir(srcDir), ".build")
}

func ensureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}
