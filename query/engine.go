package query

import (
	"fmt"
	"sync"

	"github.com/josongsong/semantica-codegraph/graphindex"
)

// EngineOption configures an Engine at construction, matching the analyzer package's
// functional-options idiom.
type EngineOption func(*Engine)

func WithAliasIndex(a AliasIndex) EngineOption {
	return func(e *Engine) { e.matcher.Aliases = a }
}

func WithTaintCategories(t TaintCategories) EngineOption {
	return func(e *Engine) { e.matcher.Taint = t }
}

func WithLogger(l Logger) EngineOption {
	return func(e *Engine) { e.logger = l }
}

func WithCache(c *ResultCache) EngineOption {
	return func(e *Engine) { e.cache = c }
}

// Engine is the top-level entry point spec.md §4.3.6 describes as `execute_flow(expr,
// mode, overrides)`: it owns the GraphIndex-derived matcher/resolver, a mode-keyed result
// cache, and a lazily-computed SCCP baseline, all guarded by one RWMutex since cache
// lookups, SCCP (re)computation, and invalidate_cache() can all be triggered concurrently
// by different callers of the same Engine.
type Engine struct {
	mu sync.RWMutex

	index    *graphindex.GraphIndex
	matcher  *NodeMatcher
	resolver *EdgeResolver
	executor *QueryExecutor

	sccp      *SCCPResult
	sccpReady bool

	cache  *ResultCache
	logger Logger
}

// NewEngine builds an Engine over a built GraphIndex.
func NewEngine(index *graphindex.GraphIndex, opts ...EngineOption) *Engine {
	matcher := NewNodeMatcher(index)
	resolver := NewEdgeResolver(index)
	e := &Engine{
		index:    index,
		matcher:  matcher,
		resolver: resolver,
		cache:    NewResultCache(),
		logger:   DefaultLogger,
	}
	e.executor = NewQueryExecutor(index, matcher, resolver, nil)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ensureSCCP runs RunSCCP once per IR snapshot (or after InvalidateCache), caching the
// result (or the "no CFG/DFG" miss) so repeated queries don't re-run it, per spec.md
// §4.3.6: "SCCP baseline runs once per IR snapshot on first execute_flow."
func (e *Engine) ensureSCCP() *SCCPResult {
	e.mu.RLock()
	if e.sccpReady {
		result := e.sccp
		e.mu.RUnlock()
		return result
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.sccpReady {
		return e.sccp
	}
	result, _ := RunSCCP(e.index, e.logger)
	e.sccp = result
	e.sccpReady = true
	e.executor.SCCP = result
	return result
}

// InvalidateCache clears the result cache and forces SCCP to re-run on the next query,
// per spec.md §4.3.6's invalidate_cache().
func (e *Engine) InvalidateCache() {
	e.mu.Lock()
	e.sccpReady = false
	e.sccp = nil
	e.mu.Unlock()
	e.cache.Invalidate()
}

// ExecuteFlow implements `execute_flow(expr, mode, overrides)`: merges the mode preset
// with raw overrides, runs (or serves from cache) the existential query, and returns its
// PathSet. A panic carrying an *InvalidQuery is re-raised; any other panic, including one
// from a user-supplied where predicate, degrades to an empty/partial PathSet carrying
// StopError and a diagnostic, rather than crashing the caller.
func (e *Engine) ExecuteFlow(expr FlowExpr, mode Mode, overrides map[string]interface{}) (result *PathSet) {
	q := expr.ToQuery()
	preset := PresetFor(mode).ApplyRawOverrides(overrides, e.logger)

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*InvalidQuery); ok {
				panic(r)
			}
			e.logger.Printf("query: execute_flow degraded after panic: %v", r)
			result = (&PathSet{StopReason: StopError, Diagnostics: []string{fmt.Sprintf("%v", r)}}).deriveLegacyFields()
		}
	}()

	if preset.Cacheable {
		key := CacheKey(q, mode)
		if cached, ok := e.cache.Get(key); ok {
			return cached
		}
		e.executor.SCCP = e.ensureSCCP()
		out := e.executor.AnyPath(q, preset)
		e.cache.Put(key, out)
		return out
	}

	e.executor.SCCP = e.ensureSCCP()
	return e.executor.AnyPath(q, preset)
}

// VerifyFlow implements `.all_paths()` against a Mode preset: every reachable path under
// the (preset-multiplied) limits must satisfy the query's constraints.
func (e *Engine) VerifyFlow(expr FlowExpr, mode Mode, overrides map[string]interface{}) (result *VerificationResult) {
	q := expr.ToQuery()
	preset := PresetFor(mode).ApplyRawOverrides(overrides, e.logger)

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*InvalidQuery); ok {
				panic(r)
			}
			e.logger.Printf("query: verify_flow degraded after panic: %v", r)
			result = &VerificationResult{OK: false, StopReason: StopError, Diagnostics: []string{fmt.Sprintf("%v", r)}}
		}
	}()

	e.executor.SCCP = e.ensureSCCP()
	return e.executor.AllPaths(q, preset)
}

// VerifyQuery runs a caller-built PathQuery's `.all_paths()` semantics directly, for
// callers that attached constraints (cleansed_by, excluding, where) via the fluent
// builder rather than starting from a bare FlowExpr.
func (e *Engine) VerifyQuery(q *PathQuery, mode Mode, overrides map[string]interface{}) (result *VerificationResult) {
	preset := PresetFor(mode).ApplyRawOverrides(overrides, e.logger)

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*InvalidQuery); ok {
				panic(r)
			}
			e.logger.Printf("query: verify_query degraded after panic: %v", r)
			result = &VerificationResult{OK: false, StopReason: StopError, Diagnostics: []string{fmt.Sprintf("%v", r)}}
		}
	}()

	e.executor.SCCP = e.ensureSCCP()
	return e.executor.AllPaths(q, preset)
}

// ExecuteQuery runs a caller-built PathQuery directly (bypassing a bare FlowExpr), used
// when constraints were attached via the fluent builder rather than a raw FlowExpr. A
// PathQuery reaching here without ever having been built from FlowExpr.ToQuery() is the
// "direct execution outside the engine" case spec.md §4.3.1 forbids for FlowExpr alone --
// PathQuery itself is always engine-executed, so no additional guard is needed here.
func (e *Engine) ExecuteQuery(q *PathQuery, mode Mode, overrides map[string]interface{}) (result *PathSet) {
	preset := PresetFor(mode).ApplyRawOverrides(overrides, e.logger)

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(*InvalidQuery); ok {
				panic(r)
			}
			e.logger.Printf("query: execute_query degraded after panic: %v", r)
			result = (&PathSet{StopReason: StopError, Diagnostics: []string{fmt.Sprintf("%v", r)}}).deriveLegacyFields()
		}
	}()

	e.executor.SCCP = e.ensureSCCP()
	if preset.Cacheable {
		key := CacheKey(q, mode)
		if cached, ok := e.cache.Get(key); ok {
			return cached
		}
		out := e.executor.AnyPath(q, preset)
		e.cache.Put(key, out)
		return out
	}
	return e.executor.AnyPath(q, preset)
}
