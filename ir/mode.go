package ir

// Mode selects how much of the IR a single Generate call produces (spec.md §4.1).
type Mode string

const (
	// ModeQuick produces signatures and basic types only (~10ms/function budget).
	ModeQuick Mode = "QUICK"
	// ModePR additionally adds the DFG layer and CALLS edges from the scope/dataflow walk
	// (~50ms/function budget). No mode produces Expression entities or CFG edges; every
	// mode gives each function only its Entry and Exit CFG blocks.
	ModePR Mode = "PR"
	// ModeFull (~90ms/function budget) is handled by Builder exactly like ModePR. The Go
	// heap/points-to pass is ir/ssa.ApplyFull, a separate step Builder does not call.
	ModeFull Mode = "FULL"
)

func (m Mode) wantsSemanticLayers() bool {
	return m == ModePR || m == ModeFull
}
