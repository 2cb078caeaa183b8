package graphindex

import (
	"sync"

	"github.com/josongsong/semantica-codegraph/ir"
)

// synthKind names ten synthetic edge classes: transitive CONTAINS closure, cross-file CALLS
// resolution, OVERRIDES chains, DFG reaching-definitions, CFG dominance, callee-parameter
// bridges, return-to-caller bridges, collection-load bridges, import-resolved aliasing, and
// heap-element escape edges. Only the first three are derived, by ContainsClosure,
// ResolveCall and OverrideChain; no code derives the other seven classes.
type synthKind string

const (
	synthContainsClosure synthKind = "contains_closure"
	synthCallResolution  synthKind = "call_resolution"
	synthOverrideChain   synthKind = "override_chain"
	synthReachingDef     synthKind = "reaching_def"
	synthDominance       synthKind = "dominance"
	synthCalleeParam     synthKind = "callee_param"
	synthReturnToCaller  synthKind = "return_to_caller"
	synthCollectionLoad  synthKind = "collection_load"
	synthImportAlias     synthKind = "import_alias"
	synthEscape          synthKind = "escape"
)

// EdgeIndex adjacency-lists the document's edges by source, target and kind. Its derived
// views (ContainsClosure, OverrideChain, ResolveCall) are recomputed on every call; the
// synthetic map is allocated but never filled, so nothing is cached.
type EdgeIndex struct {
	mu sync.RWMutex

	bySource map[string][]*ir.Edge
	byTarget map[string][]*ir.Edge
	byKind   map[ir.EdgeKind][]*ir.Edge

	synthetic map[synthKind][]*ir.Edge

	doc   *ir.IRDocument
	nodes *NodeIndex
}

// NewEdgeIndex builds the direct adjacency lists. Derived views are computed on request.
func NewEdgeIndex(doc *ir.IRDocument, nodes *NodeIndex) *EdgeIndex {
	idx := &EdgeIndex{
		bySource:  map[string][]*ir.Edge{},
		byTarget:  map[string][]*ir.Edge{},
		byKind:    map[ir.EdgeKind][]*ir.Edge{},
		synthetic: map[synthKind][]*ir.Edge{},
		doc:       doc,
		nodes:     nodes,
	}
	for _, e := range doc.Edges {
		idx.bySource[e.SourceID] = append(idx.bySource[e.SourceID], e)
		idx.byTarget[e.TargetID] = append(idx.byTarget[e.TargetID], e)
		idx.byKind[e.Kind] = append(idx.byKind[e.Kind], e)
	}
	return idx
}

// Out returns the direct outgoing edges of id, not including synthetic derivations.
func (e *EdgeIndex) Out(id string) []*ir.Edge {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]*ir.Edge(nil), e.bySource[id]...)
}

// In returns the direct incoming edges of id.
func (e *EdgeIndex) In(id string) []*ir.Edge {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]*ir.Edge(nil), e.byTarget[id]...)
}

// ByKind returns every direct edge of the given kind.
func (e *EdgeIndex) ByKind(kind ir.EdgeKind) []*ir.Edge {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]*ir.Edge(nil), e.byKind[kind]...)
}

// ContainsClosure returns every descendant reachable from id by following CONTAINS edges
// transitively. The walk is repeated on every call; the result is not cached.
func (e *EdgeIndex) ContainsClosure(id string) []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	seen := map[string]bool{}
	var walk func(cur string)
	walk = func(cur string) {
		for _, edge := range e.bySource[cur] {
			if edge.Kind != ir.EdgeContains {
				continue
			}
			if seen[edge.TargetID] {
				continue
			}
			seen[edge.TargetID] = true
			walk(edge.TargetID)
		}
	}
	walk(id)
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	return out
}

// OverrideChain follows OVERRIDES edges transitively from id (a method node) up to the
// root of its override hierarchy.
func (e *EdgeIndex) OverrideChain(id string) []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var chain []string
	cur := id
	visited := map[string]bool{}
	for {
		found := false
		for _, edge := range e.bySource[cur] {
			if edge.Kind == ir.EdgeOverrides && !visited[edge.TargetID] {
				visited[edge.TargetID] = true
				chain = append(chain, edge.TargetID)
				cur = edge.TargetID
				found = true
				break
			}
		}
		if !found {
			break
		}
	}
	return chain
}

// ResolveCall returns the CALLS edges out of id whose target resolved to a concrete
// function/method node rather than a callee_target bridge, i.e. cross-file resolution
// succeeded.
func (e *EdgeIndex) ResolveCall(id string) []*ir.Edge {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var out []*ir.Edge
	for _, edge := range e.bySource[id] {
		if edge.Kind != ir.EdgeCalls {
			continue
		}
		if target, ok := e.nodes.Get(edge.TargetID); ok && (target.Kind == ir.NodeFunction || target.Kind == ir.NodeMethod) {
			out = append(out, edge)
		}
	}
	return out
}

// Len reports the total number of direct edges indexed.
func (e *EdgeIndex) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.doc.Edges)
}
