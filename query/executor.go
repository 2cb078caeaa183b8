package query

import (
	"github.com/josongsong/semantica-codegraph/graphindex"
)

// Strategy names the traversal algorithm QueryExecutor picks for one query, per
// spec.md §4.3.5's StrategySelector: "DepthFirst, BreadthFirst, CostBased, and Lazy".
type Strategy string

const (
	StrategyBreadthFirst Strategy = "BreadthFirst"
	StrategyDepthFirst   Strategy = "DepthFirst"
	StrategyCostBased    Strategy = "CostBased"
	StrategyLazy         Strategy = "Lazy"
)

// StrategySelector picks a Strategy from a query's declared depth, following spec.md
// §4.3.5: depth <= 2 uses BreadthFirst, depth > 5 uses DepthFirst, everything else is
// CostBased. Lazy is reserved for queries an executor explicitly marks for incremental
// consumption (e.g. .any_path() against an unbounded Any() source) rather than being
// chosen by depth alone.
type StrategySelector struct{}

func (StrategySelector) Select(q *PathQuery, lazy bool) Strategy {
	if lazy {
		return StrategyLazy
	}
	depth := q.MaxDepth
	if depth == 0 {
		depth = depthLimit(q)
	}
	switch {
	case depth <= 2:
		return StrategyBreadthFirst
	case depth > 5:
		return StrategyDepthFirst
	default:
		return StrategyCostBased
	}
}

// useDFS reports whether a Strategy should drive the traversal with DFS instead of BFS.
// CostBased runs BFS: it is "shortest path first" with the same budget shared as DFS, so
// there is nothing DFS-specific to gain once depth alone didn't already justify it.
func (s Strategy) useDFS() bool {
	return s == StrategyDepthFirst
}

// QueryExecutor implements spec.md §4.3.5's five-step pipeline: auto-convert FlowExpr to
// PathQuery, extract safety limits from the mode preset, run the traversal catching
// timeout/node-limit as partial-result stops, apply constraints in order, and set the
// final StopReason.
type QueryExecutor struct {
	Index    *graphindex.GraphIndex
	Matcher  *NodeMatcher
	Resolver *EdgeResolver
	SCCP     *SCCPResult
	Selector StrategySelector
}

func NewQueryExecutor(index *graphindex.GraphIndex, matcher *NodeMatcher, resolver *EdgeResolver, sccp *SCCPResult) *QueryExecutor {
	return &QueryExecutor{Index: index, Matcher: matcher, Resolver: resolver, SCCP: sccp}
}

// resolveLimits extracts the query's effective safety limits (spec.md §4.3.5 step (b)):
// any explicit .limit_paths/.limit_nodes/.timeout() call on the query wins; otherwise the
// preset's values apply.
func resolveLimits(q *PathQuery, preset Preset) {
	if q.LimitPaths == 0 {
		q.LimitPaths = preset.Paths
	}
	if q.LimitNodes == 0 {
		q.LimitNodes = preset.Nodes
	}
	if q.TimeoutMS == 0 {
		q.TimeoutMS = int(preset.Timeout.Milliseconds())
	}
	if q.MaxDepth == 0 {
		q.MaxDepth = preset.Depth
	}
}

// AnyPath executes q as an existential query: step (a)-(e) of spec.md §4.3.5, returning
// as soon as Traversal finds at least one matching path (or exhausts its budget).
func (x *QueryExecutor) AnyPath(q *PathQuery, preset Preset) *PathSet {
	if q == nil {
		return (&PathSet{StopReason: StopNoMatch}).deriveLegacyFields()
	}
	resolveLimits(q, preset)

	strategy := x.Selector.Select(q, false)
	t := &Traversal{Index: x.Index, Resolver: x.Resolver, SCCP: x.SCCP}
	raw := t.Run(x.Matcher, q, strategy.useDFS())

	// cleansed_by annotates rather than removes here: spec.md §8 scenario 2 is explicit
	// that ".any_path()"'s cleansed_by "keeps sanitized paths" (the path is still present,
	// flagged as sanitized), in contrast to excluding which always drops a match. Removal-
	// style cleansed_by semantics are reserved for AllPaths' violation-witness search below.
	filtered := x.applyConstraints(q, raw.Paths, false)
	ps := &PathSet{
		Paths: filtered, StopReason: raw.StopReason, Diagnostics: raw.Diagnostics,
		ElapsedMs: raw.ElapsedMs, NodesVisited: raw.NodesVisited,
	}
	return ps.deriveLegacyFields()
}

// AllPaths executes q as a universal query: spec.md §4.3.5's constraints (where,
// excluding, cleansed_by, within) remove the paths a caller has declared "safe" --
// notably cleansed_by drops every path that passes through a sanitizer -- so whatever
// survives filtering is exactly the set of uncleansed/unfiltered paths a universal safety
// property forbids. OK means nothing survived; otherwise the first survivor is the
// violation witness. An incomplete search (timeout, path/node limit) cannot prove the
// universal property either way, so it fails conservatively, per spec.md §4.3.5's
// "incomplete -> verification fails" rule.
func (x *QueryExecutor) AllPaths(q *PathQuery, preset Preset) *VerificationResult {
	if q == nil {
		return &VerificationResult{OK: true, StopReason: StopNoMatch}
	}
	universal := *q
	universal.LimitPaths = preset.Paths * 10
	universal.LimitNodes = preset.Nodes * 10
	resolveLimits(&universal, preset)

	strategy := x.Selector.Select(&universal, false)
	t := &Traversal{Index: x.Index, Resolver: x.Resolver, SCCP: x.SCCP}
	raw := t.Run(x.Matcher, &universal, strategy.useDFS())

	if raw.StopReason == StopTimeout || raw.StopReason == StopPathLimit || raw.StopReason == StopNodeLimit {
		return &VerificationResult{
			OK: false, StopReason: raw.StopReason, Diagnostics: raw.Diagnostics,
			ElapsedMs: raw.ElapsedMs, NodesVisited: raw.NodesVisited,
		}
	}

	// cleansed_by removes here: a path proven to pass through a sanitizer is not a
	// violation of the universal safety property being verified, so it must not survive
	// into the violation-witness search (spec.md §8 scenario 2's AllPaths contrast).
	filtered := x.applyConstraints(&universal, raw.Paths, true)
	if len(filtered) > 0 {
		return &VerificationResult{
			OK: false, ViolationPath: filtered[0], StopReason: StopComplete,
			ElapsedMs: raw.ElapsedMs, NodesVisited: raw.NodesVisited,
		}
	}
	return &VerificationResult{
		OK: true, StopReason: raw.StopReason,
		ElapsedMs: raw.ElapsedMs, NodesVisited: raw.NodesVisited,
	}
}

// applyConstraints applies where, excluding, cleansed_by, and within in that order
// (spec.md §4.3.5 step (d)). removeSanitized selects cleansed_by's two meanings: AllPaths
// passes true (a sanitized path cannot be a violation witness, so it is dropped before the
// witness search); AnyPath passes false (the path is kept, only annotated IsSanitized --
// spec.md §8 scenario 2: "the same path is retained").
func (x *QueryExecutor) applyConstraints(q *PathQuery, paths []*Path, removeSanitized bool) []*Path {
	out := paths
	for _, pred := range q.Wheres {
		out = filterPaths(out, pred)
	}
	if len(q.Excluding) > 0 {
		out = filterPaths(out, func(p *Path) bool {
			for _, id := range p.NodeIDs {
				if q.Excluding[id] {
					return false
				}
			}
			return true
		})
	}
	if len(q.CleansedBy) > 0 {
		sanitizers := map[string]bool{}
		for _, sel := range q.CleansedBy {
			for _, n := range x.Matcher.Match(sel) {
				sanitizers[n.ID] = true
			}
		}
		sanitized := func(p *Path) bool {
			for _, id := range p.NodeIDs {
				if sanitizers[id] {
					return true
				}
			}
			return false
		}
		if removeSanitized {
			out = filterPaths(out, func(p *Path) bool { return !sanitized(p) })
		} else {
			for _, p := range out {
				if sanitized(p) {
					p.IsSanitized = true
				}
			}
		}
	}
	if q.WithinScope != "" {
		scopeNodes := map[string]bool{}
		for _, n := range x.Matcher.Match(NodeSelector{Kind: SelModule, ModuleGlob: q.WithinScope}) {
			scopeNodes[n.ID] = true
		}
		within := func(p *Path) bool {
			for _, id := range p.NodeIDs {
				if n, ok := x.Index.Nodes.Get(id); ok && n.ParentID == q.WithinScope {
					return true
				}
			}
			return scopeNodes[q.WithinScope]
		}
		if q.WithinMode == WithinFilter {
			out = filterPaths(out, within)
		} else if q.WithinMode == WithinPrune {
			out = filterPaths(out, within)
		}
	}
	return out
}

func filterPaths(paths []*Path, keep func(p *Path) bool) []*Path {
	var out []*Path
	for _, p := range paths {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
