package query

import (
	"github.com/josongsong/semantica-codegraph/graphindex"
	"github.com/josongsong/semantica-codegraph/ir"
)

// EdgeResolver implements `resolve(node_id, edge_selector, backward)` (spec.md §4.3.3):
// effective direction is `edge_selector.is_backward XOR backward`, and `ALL`/union
// selectors intersect against the requesting kind set.
type EdgeResolver struct {
	Index *graphindex.GraphIndex
}

func NewEdgeResolver(index *graphindex.GraphIndex) *EdgeResolver {
	return &EdgeResolver{Index: index}
}

func selectorKinds(sel EdgeSelector) []ir.EdgeKind {
	switch sel.Kind {
	case EdgeSelDFG:
		return []ir.EdgeKind{ir.EdgeDFG}
	case EdgeSelCFG:
		return []ir.EdgeKind{ir.EdgeCFG}
	case EdgeSelCALL:
		return []ir.EdgeKind{ir.EdgeCalls}
	case EdgeSelBINDS:
		return []ir.EdgeKind{ir.EdgeBinds}
	case EdgeSelRENDERS:
		return []ir.EdgeKind{ir.EdgeRenders}
	case EdgeSelESCAPES:
		return []ir.EdgeKind{ir.EdgeEscapes}
	case EdgeSelALL:
		return []ir.EdgeKind{
			ir.EdgeContains, ir.EdgeImports, ir.EdgeCalls, ir.EdgeOverrides, ir.EdgeDFG,
			ir.EdgeCFG, ir.EdgeBinds, ir.EdgeRenders, ir.EdgeEscapes, ir.EdgeExprTree,
			ir.EdgeReturnToCaller, ir.EdgeCalleeParam, ir.EdgeCollectionLoad,
		}
	case EdgeSelUnion:
		var kinds []ir.EdgeKind
		for _, op := range sel.Operands {
			kinds = append(kinds, selectorKinds(op)...)
		}
		return kinds
	default:
		return nil
	}
}

// Resolve returns the edges reachable from nodeID through sel, in the effective direction
// (sel.IsBackward XOR backward).
func (r *EdgeResolver) Resolve(nodeID string, sel EdgeSelector, backward bool) []*ir.Edge {
	effectiveBackward := sel.IsBackward != backward
	allowed := map[ir.EdgeKind]bool{}
	for _, k := range selectorKinds(sel) {
		allowed[k] = true
	}

	var candidates []*ir.Edge
	if effectiveBackward {
		candidates = r.Index.Edges.In(nodeID)
	} else {
		candidates = r.Index.Edges.Out(nodeID)
	}

	var out []*ir.Edge
	for _, e := range candidates {
		if allowed[e.Kind] {
			out = append(out, e)
		}
	}
	return out
}

// NeighborOf returns the node id on the far side of an edge, given the direction used to
// reach it: for a forward traversal that is TargetID, for backward it is SourceID.
func NeighborOf(e *ir.Edge, backward bool) string {
	if backward {
		return e.SourceID
	}
	return e.TargetID
}
