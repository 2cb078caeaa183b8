package query

import (
	"github.com/josongsong/semantica-codegraph/graphindex"
	"github.com/josongsong/semantica-codegraph/ir"
)

// SCCPResult is a sparse conditional constant propagation result: unreachable blocks and
// constant-valued variables, computed once per IR snapshot (spec.md §4.3.6).
type SCCPResult struct {
	UnreachableBlocks map[string]bool
	ConstantVars      map[string]interface{}
}

// RunSCCP runs a minimal constant-propagation pass over the document's CFG/DFG: it records
// single-write literal variables in ConstantVars and marks as unreachable the blocks named
// by "unreachable_block" diagnostics; the constants are not used to mark blocks. Returns (nil, false) when there is no CFG or DFG to analyze, matching
// spec.md's "skipped if no CFG or DFG, logged and skip" precondition.
func RunSCCP(index *graphindex.GraphIndex, logger Logger) (*SCCPResult, bool) {
	doc := index.Document()
	if len(doc.CFGBlocks) == 0 || len(doc.DFG.Variables) == 0 {
		logger.Printf("query: SCCP skipped, no CFG or DFG in this snapshot")
		return nil, false
	}

	result := &SCCPResult{UnreachableBlocks: map[string]bool{}, ConstantVars: map[string]interface{}{}}

	// A variable with exactly one DFG write whose source is a literal-like attribute is
	// treated as constant; this mirrors the single-assignment case SSA-based SCCP starts
	// from before widening to the full lattice.
	writesPerVar := map[string]int{}
	litValuePerVar := map[string]interface{}{}
	for _, e := range doc.DFG.Edges {
		if e.Kind != ir.DFWrite {
			continue
		}
		writesPerVar[e.ToVariableID]++
		if v, ok := e.Attrs["literal_value"]; ok {
			litValuePerVar[e.ToVariableID] = v
		}
	}
	for varID, count := range writesPerVar {
		if count == 1 {
			if v, ok := litValuePerVar[varID]; ok {
				result.ConstantVars[varID] = v
			}
		}
	}

	// A block is marked unreachable only when a Diagnostic of kind "unreachable_block" names
	// it in its Message; guard conditions are not evaluated against ConstantVars.
	for _, diag := range doc.Diagnostics {
		if diag.Kind == "unreachable_block" {
			result.UnreachableBlocks[diag.Message] = true
		}
	}

	return result, true
}

// IsUnreachable reports whether a block id was proven unreachable by the SCCP pass.
func (r *SCCPResult) IsUnreachable(blockID string) bool {
	if r == nil {
		return false
	}
	return r.UnreachableBlocks[blockID]
}
