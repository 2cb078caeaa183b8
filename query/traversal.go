package query

import (
	"time"

	"github.com/josongsong/semantica-codegraph/graphindex"
)

// PathCollector enforces the budgets shared by both BFS and DFS traversal: max depth, max
// paths, max nodes visited, and a wall-clock deadline (spec.md §4.3.4).
type PathCollector struct {
	MaxDepth  int
	MaxPaths  int
	MaxNodes  int
	Deadline  time.Time

	Paths       []*Path
	visitedNodes map[string]bool
	stopReason  StopReason
}

func NewPathCollector(maxDepth, maxPaths, maxNodes int, timeout time.Duration) *PathCollector {
	pc := &PathCollector{
		MaxDepth: maxDepth, MaxPaths: maxPaths, MaxNodes: maxNodes,
		visitedNodes: map[string]bool{},
	}
	if timeout > 0 {
		pc.Deadline = time.Now().Add(timeout)
	}
	return pc
}

// ShouldStop reports whether the collector has hit a limit, and which one.
func (pc *PathCollector) ShouldStop() (bool, StopReason) {
	if !pc.Deadline.IsZero() && time.Now().After(pc.Deadline) {
		return true, StopTimeout
	}
	if pc.MaxPaths > 0 && len(pc.Paths) >= pc.MaxPaths {
		return true, StopPathLimit
	}
	if pc.MaxNodes > 0 && len(pc.visitedNodes) >= pc.MaxNodes {
		return true, StopNodeLimit
	}
	return false, ""
}

func (pc *PathCollector) markVisited(nodeID string) { pc.visitedNodes[nodeID] = true }

// VisitedCount reports the number of distinct nodes the collector has marked visited,
// surfaced to callers as PathSet.NodesVisited (spec.md §8 scenario 6: "nodes_visited == 1000").
func (pc *PathCollector) VisitedCount() int { return len(pc.visitedNodes) }

func (pc *PathCollector) record(path *Path) {
	pc.Paths = append(pc.Paths, path)
}

type frontierEntry struct {
	node  string
	nodes []string
	edges []string
	depth int
}

// Traversal runs BFS (shortest-path-first) or DFS (for queries the StrategySelector
// judges deep) over a GraphIndex, sharing one PathCollector between both algorithms.
type Traversal struct {
	Index    *graphindex.GraphIndex
	Resolver *EdgeResolver
	SCCP     *SCCPResult
}

func NewTraversal(index *graphindex.GraphIndex, resolver *EdgeResolver) *Traversal {
	return &Traversal{Index: index, Resolver: resolver}
}

// applyWildcardSelfLoopRule implements spec.md §4.3.4's rule: when the target selector is
// a wildcard, the source and target sets are de-overlapped so a trivial (length-0) path
// does not count, unless doing so would empty the target set — in which case the original
// target set is restored and paths of length > 0 are still accepted.
func applyWildcardSelfLoopRule(isWildcardTarget bool, sources, targets []*graphindex.UnifiedNode) []*graphindex.UnifiedNode {
	if !isWildcardTarget {
		return targets
	}
	sourceIDs := map[string]bool{}
	for _, s := range sources {
		sourceIDs[s.ID] = true
	}
	var deoverlapped []*graphindex.UnifiedNode
	for _, t := range targets {
		if !sourceIDs[t.ID] {
			deoverlapped = append(deoverlapped, t)
		}
	}
	if len(deoverlapped) == 0 {
		return targets
	}
	return deoverlapped
}

// Run performs the chosen directional BFS/DFS search for q's flow, honoring the
// cardinality-based direction flip, the wildcard-self-loop rule, and SCCP pruning.
func (t *Traversal) Run(matcher *NodeMatcher, q *PathQuery, useDFS bool) *PathSet {
	sourceNodes := matcher.Match(q.Flow.Source)
	targetNodes := matcher.Match(q.Flow.Target)

	isWildcardTarget := q.Flow.Target.Kind == SelAny || (q.Flow.Target.Kind == SelVar && q.Flow.Target.Name == "")
	targetNodes = applyWildcardSelfLoopRule(isWildcardTarget, sourceNodes, targetNodes)

	if len(sourceNodes) == 0 || len(targetNodes) == 0 {
		return (&PathSet{StopReason: StopNoMatch}).deriveLegacyFields()
	}

	// An explicit backward flow (`target << source`) seeds the search from the target set
	// and walks predecessors until a source node is hit, then finalizePath reverses the
	// collected sequence back to source-to-target order (spec.md §4.3.4: "Backward BFS
	// symmetric using incoming edges, reverses path before emitting").
	seedNodes, goalNodes := sourceNodes, targetNodes
	walkBackward := q.Flow.Backward
	if walkBackward {
		seedNodes, goalNodes = targetNodes, sourceNodes
	}

	// Cardinality-based direction flip: if |seed| >= 10x |goal|, flip which end is seeded
	// from for the same semantics at lower cost (spec.md §4.3.4).
	if len(seedNodes) >= 10*len(goalNodes) {
		seedNodes, goalNodes = goalNodes, seedNodes
		walkBackward = !walkBackward
	}

	goalSet := map[string]bool{}
	for _, n := range goalNodes {
		goalSet[n.ID] = true
	}

	deadline := time.Duration(q.TimeoutMS) * time.Millisecond
	collector := NewPathCollector(depthLimit(q), pathLimit(q), nodeLimit(q), deadline)

	started := time.Now()
	if useDFS {
		t.dfs(q, seedNodes, goalSet, walkBackward, collector)
	} else {
		t.bfs(q, seedNodes, goalSet, walkBackward, collector)
	}
	elapsed := time.Since(started)

	stop, reason := collector.ShouldStop()
	if !stop {
		reason = StopComplete
	}
	// An exhaustive search that legitimately found nothing (e.g. the only path to the
	// target was SCCP-pruned as unreachable) still reports Complete, not NoMatch: NoMatch
	// is reserved for an empty source/target selector set, already handled above before
	// the search ever starts (spec.md §8 scenario 5).
	ps := &PathSet{
		Paths:        collector.Paths,
		StopReason:   reason,
		ElapsedMs:    elapsed.Milliseconds(),
		NodesVisited: collector.VisitedCount(),
	}
	return ps.deriveLegacyFields()
}

func depthLimit(q *PathQuery) int {
	if q.Flow.MaxHops == 1 {
		return 1
	}
	if q.MaxDepth > 0 {
		return q.MaxDepth
	}
	return 10
}

func pathLimit(q *PathQuery) int {
	if q.LimitPaths > 0 {
		return q.LimitPaths
	}
	return 100
}

func nodeLimit(q *PathQuery) int {
	if q.LimitNodes > 0 {
		return q.LimitNodes
	}
	return 10_000
}

func (t *Traversal) bfs(q *PathQuery, sources []*graphindex.UnifiedNode, targetSet map[string]bool, backward bool, collector *PathCollector) {
	var queue []frontierEntry
	for _, s := range sources {
		collector.markVisited(s.ID)
		queue = append(queue, frontierEntry{node: s.ID, nodes: []string{s.ID}, depth: 0})
	}

	for len(queue) > 0 {
		if stop, _ := collector.ShouldStop(); stop {
			return
		}
		cur := queue[0]
		queue = queue[1:]

		if targetSet[cur.node] && len(cur.nodes) > 1 {
			collector.record(t.finalizePath(cur, backward))
			if stop, _ := collector.ShouldStop(); stop {
				return
			}
			continue
		}
		if collector.MaxDepth > 0 && cur.depth >= collector.MaxDepth {
			continue
		}
		if t.SCCP != nil && t.SCCP.IsUnreachable(cur.node) {
			continue
		}

		for _, e := range t.Resolver.Resolve(cur.node, q.Flow.Edge, backward) {
			next := NeighborOf(e, backward)
			if containsStr(cur.nodes, next) {
				continue
			}
			collector.markVisited(next)
			queue = append(queue, frontierEntry{
				node: next, nodes: append(append([]string{}, cur.nodes...), next),
				edges: append(append([]string{}, cur.edges...), e.ID), depth: cur.depth + 1,
			})
		}
	}
}

// dfs mirrors bfs but explores depth-first, used when the StrategySelector judges the
// query "deep" (spec.md §4.3.4: "DFS is chosen only when the strategy selector estimates
// a deep query").
func (t *Traversal) dfs(q *PathQuery, sources []*graphindex.UnifiedNode, targetSet map[string]bool, backward bool, collector *PathCollector) {
	var stack []frontierEntry
	for i := len(sources) - 1; i >= 0; i-- {
		s := sources[i]
		collector.markVisited(s.ID)
		stack = append(stack, frontierEntry{node: s.ID, nodes: []string{s.ID}, depth: 0})
	}

	for len(stack) > 0 {
		if stop, _ := collector.ShouldStop(); stop {
			return
		}
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if targetSet[cur.node] && len(cur.nodes) > 1 {
			collector.record(t.finalizePath(cur, backward))
			if stop, _ := collector.ShouldStop(); stop {
				return
			}
			continue
		}
		if collector.MaxDepth > 0 && cur.depth >= collector.MaxDepth {
			continue
		}
		if t.SCCP != nil && t.SCCP.IsUnreachable(cur.node) {
			continue
		}

		edges := t.Resolver.Resolve(cur.node, q.Flow.Edge, backward)
		for i := len(edges) - 1; i >= 0; i-- {
			e := edges[i]
			next := NeighborOf(e, backward)
			if containsStr(cur.nodes, next) {
				continue
			}
			collector.markVisited(next)
			stack = append(stack, frontierEntry{
				node: next, nodes: append(append([]string{}, cur.nodes...), next),
				edges: append(append([]string{}, cur.edges...), e.ID), depth: cur.depth + 1,
			})
		}
	}
}

// finalizePath reverses the collected node/edge sequence when the search ran backward, so
// Path.NodeIDs always reads source-to-target regardless of which direction the BFS/DFS
// actually walked (spec.md §4.3.4: "reverses the collected path before emitting it"), and
// flags the path Uncertain whenever it crosses a node the builder could only approximate
// (spec.md §6: PathResult's uncertain/uncertain_reasons; spec.md §9's HEAP_CUTOFF nodes are
// the only such approximation currently produced).
func (t *Traversal) finalizePath(cur frontierEntry, backward bool) *Path {
	p := &Path{NodeIDs: cur.nodes, EdgeIDs: cur.edges, Depth: cur.depth}
	if backward {
		nodes := make([]string, len(cur.nodes))
		for i, n := range cur.nodes {
			nodes[len(nodes)-1-i] = n
		}
		edges := make([]string, len(cur.edges))
		for i, e := range cur.edges {
			edges[len(edges)-1-i] = e
		}
		p.NodeIDs, p.EdgeIDs = nodes, edges
	}
	t.annotateUncertainty(p)
	return p
}

// annotateUncertainty sets Uncertain/UncertainReasons when any node on the path carries an
// "uncertain_reasons" attr (currently only the ir/ssa heap-element nodes do, tagged
// HEAP_CUTOFF).
func (t *Traversal) annotateUncertainty(p *Path) {
	if t.Index == nil {
		return
	}
	seen := map[string]bool{}
	for _, id := range p.NodeIDs {
		n, ok := t.Index.Nodes.Get(id)
		if !ok || n.Attrs == nil {
			continue
		}
		reason, ok := n.Attrs["uncertain_reasons"].(string)
		if !ok || reason == "" || seen[reason] {
			continue
		}
		seen[reason] = true
		p.Uncertain = true
		p.UncertainReasons = append(p.UncertainReasons, reason)
	}
}

func containsStr(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
