// Package mathrender compiles math expressions to SVG through an
// embedded layout engine, with a weight-bounded cache and per-call
// unique element IDs so many rendered formulas can share one HTML
// document without id collisions.
package mathrender

import (
	"sync/atomic"
)

// Renderer is a singleton math compilation context: one engine (mutex
// guarded, not safe for concurrent compilation), one cache, and one
// monotonic id-prefix counter. The zero value is not usable; construct
// with New.
type Renderer struct {
	engine  *engine
	cache   *weightedCache
	counter atomic.Uint64
}

// New returns a Renderer whose cache is bounded to capacityBytes of
// total stored SVG weight.
func New(capacityBytes int64) *Renderer {
	return &Renderer{
		engine: &engine{},
		cache:  newWeightedCache(capacityBytes),
	}
}

// Render compiles expression to an optimized SVG fragment, implementing
// §4.4's six steps: cache lookup, prelude wrap, mutex-guarded compile,
// frame extraction (handled inside the engine), id-prefix optimization
// (falling back to the unoptimized SVG on failure — which here cannot
// fail, prefixIDs is a pure string rewrite), and cache insertion.
func (r *Renderer) Render(expression string) (string, error) {
	if cached, ok := r.cache.get(expression); ok {
		return cached, nil
	}

	wrapped := wrapExpression(expression)
	svg, err := r.engine.compile(wrapped)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Expression = expression
			return "", pe
		}
		return "", err
	}

	n := r.counter.Add(1)
	optimized := prefixIDs(svg, n)

	r.cache.put(expression, optimized)
	return optimized, nil
}
