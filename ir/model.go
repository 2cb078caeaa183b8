package ir

// ControlFlowSummary is the per-function complexity digest computed during the same
// walk that builds CONTAINS/CALLS edges (spec.md §4.1 step 6).
type ControlFlowSummary struct {
	CyclomaticComplexity int  `json:"cyclomatic_complexity"`
	HasLoop               bool `json:"has_loop"`
	HasTry                bool `json:"has_try"`
	BranchCount           int  `json:"branch_count"`
}

// Node is a symbol: file, module, class, function, method, lambda, parameter, variable,
// import, or external reference. Id is unique within a snapshot.
type Node struct {
	ID       string              `json:"id"`
	Kind     NodeKind            `json:"kind"`
	Name     string              `json:"name"`
	FQN      string              `json:"fqn"`
	FilePath string              `json:"file_path"`
	Span     *Span               `json:"span,omitempty"`
	BodySpan *Span               `json:"body_span,omitempty"`
	Language string              `json:"language"`
	ParentID string              `json:"parent_id,omitempty"`
	CFG      *ControlFlowSummary `json:"cfg_summary,omitempty"`
	Attrs    map[string]interface{} `json:"attrs,omitempty"`

	IsExternal bool `json:"is_external,omitempty"`
}

// Edge connects two nodes. Id is deterministic from (kind, source, target, occurrence)
// so repeated edges of the same kind between the same nodes coexist via Occurrence.
type Edge struct {
	ID         string                 `json:"id"`
	Kind       EdgeKind               `json:"kind"`
	SourceID   string                 `json:"source_id"`
	TargetID   string                 `json:"target_id"`
	Span       *Span                  `json:"span,omitempty"`
	Occurrence int                    `json:"occurrence"`
	Attrs      map[string]interface{} `json:"attrs,omitempty"`
}

// Occurrence is a single definition or reference of a symbol at a span.
type Occurrence struct {
	ID              string         `json:"id"`
	SymbolID        string         `json:"symbol_id"`
	Span            *Span          `json:"span,omitempty"`
	Roles           OccurrenceRole `json:"roles"`
	FilePath        string         `json:"file_path"`
	ParentSymbolID  string         `json:"parent_symbol_id,omitempty"`
	EnclosingRange  *Span          `json:"enclosing_range,omitempty"`
	Importance      float64        `json:"importance"`
}

// VariableEntity is a DFG-layer variable, distinct from the structural Node for the same
// symbol so that shadowing variables (same name, different scope) get distinct ids.
type VariableEntity struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	DeclaringFuncFQN  string       `json:"declaring_func_fqn"`
	TypeID            string       `json:"type_id,omitempty"`
	ScopeID           string       `json:"scope_id"`
	DeclSpan          *Span        `json:"decl_span,omitempty"`
	Kind              VariableKind `json:"kind"`
}

// DataflowEdge connects two VariableEntity (or Expression) ids in the DFG snapshot.
type DataflowEdge struct {
	FromVariableID string                 `json:"from_variable_id"`
	ToVariableID   string                 `json:"to_variable_id"`
	Kind           DataflowEdgeKind       `json:"kind"`
	Attrs          map[string]interface{} `json:"attrs,omitempty"`
}

// Expression is one node of the per-function expression forest.
type Expression struct {
	ID           string                 `json:"id"`
	Kind         ExprKind               `json:"kind"`
	ParentExprID string                 `json:"parent_expr_id,omitempty"`
	FuncFQN      string                 `json:"func_fqn"`
	Span         *Span                  `json:"span,omitempty"`
	Attrs        map[string]interface{} `json:"attrs,omitempty"`
	ReadsVars    []string               `json:"reads_vars,omitempty"`
	DefinesVar   string                 `json:"defines_var,omitempty"`
}

// ControlFlowBlock is one CFG block; blocks form a DAG with back-edges only via LoopHeader.
type ControlFlowBlock struct {
	ID       string       `json:"id"`
	Kind     CFGBlockKind `json:"kind"`
	FuncNodeID string     `json:"func_node_id"`
	Span     *Span        `json:"span,omitempty"`
}

// CFGEdge connects two ControlFlowBlock ids.
type CFGEdge struct {
	FromBlockID string `json:"from_block_id"`
	ToBlockID   string `json:"to_block_id"`
}

// Diagnostic is a non-fatal issue surfaced during IR construction (e.g. an unresolved
// callee, a wildcard import, a per-file parse failure that did not abort the whole build).
type Diagnostic struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	FilePath string `json:"file_path,omitempty"`
}

// DFGSnapshot bundles the DFG-layer variables and edges for one IRDocument.
type DFGSnapshot struct {
	Variables []*VariableEntity `json:"variables,omitempty"`
	Edges     []*DataflowEdge   `json:"edges,omitempty"`
}

// InterprocEdge is a return-to-caller or callee-parameter bridge (spec.md §4.1 step 8).
type InterprocEdge struct {
	Kind     string                 `json:"kind"` // "return-to-caller" | "callee-parameter" | "collection-load"
	FromID   string                 `json:"from_id"`
	ToID     string                 `json:"to_id"`
	Attrs    map[string]interface{} `json:"attrs,omitempty"`
}

// Package is a structural grouping of files sharing an import path / module path.
type Package struct {
	Path  string   `json:"path"`
	Files []string `json:"files,omitempty"`
}

// IRDocument is the single, language-neutral document combining structural IR with the
// semantic layers (expressions, CFG, DFG, interprocedural edges, occurrences).
type IRDocument struct {
	RepoID        string `json:"repo_id"`
	SnapshotID    string `json:"snapshot_id"`
	SchemaVersion string `json:"schema_version"`

	Nodes []*Node `json:"nodes"`
	Edges []*Edge `json:"edges"`

	CFGBlocks []*ControlFlowBlock `json:"cfgs,omitempty"`
	CFGEdges  []*CFGEdge          `json:"cfg_edges,omitempty"`
	DFG       DFGSnapshot         `json:"dfg"`
	Expressions []*Expression     `json:"expressions,omitempty"`
	Occurrences []*Occurrence     `json:"occurrences,omitempty"`
	Diagnostics []*Diagnostic     `json:"diagnostics,omitempty"`
	Packages    []*Package        `json:"packages,omitempty"`
	Interproc   []*InterprocEdge  `json:"interproc,omitempty"`

	Metadata map[string]interface{} `json:"meta,omitempty"`
}

// NewIRDocument returns an empty document for the given repo/snapshot, schema version
// pinned to the spec's stable "2.1" baseline.
func NewIRDocument(repoID, snapshotID string) *IRDocument {
	return &IRDocument{
		RepoID:        repoID,
		SnapshotID:    snapshotID,
		SchemaVersion: "2.1",
		Metadata:      map[string]interface{}{},
	}
}

// Merge appends another fragment's entities into this document; used to combine
// per-file fragments produced in parallel by ir.Builder.Generate.
func (d *IRDocument) Merge(fragment *IRDocument) {
	if fragment == nil {
		return
	}
	d.Nodes = append(d.Nodes, fragment.Nodes...)
	d.Edges = append(d.Edges, fragment.Edges...)
	d.CFGBlocks = append(d.CFGBlocks, fragment.CFGBlocks...)
	d.CFGEdges = append(d.CFGEdges, fragment.CFGEdges...)
	d.DFG.Variables = append(d.DFG.Variables, fragment.DFG.Variables...)
	d.DFG.Edges = append(d.DFG.Edges, fragment.DFG.Edges...)
	d.Expressions = append(d.Expressions, fragment.Expressions...)
	d.Occurrences = append(d.Occurrences, fragment.Occurrences...)
	d.Diagnostics = append(d.Diagnostics, fragment.Diagnostics...)
	d.Packages = append(d.Packages, fragment.Packages...)
	d.Interproc = append(d.Interproc, fragment.Interproc...)
}

// NodeByID does a linear scan; IRDocument itself offers no indexing (that is graphindex's
// job) but tests and small fixtures use this directly.
func (d *IRDocument) NodeByID(id string) *Node {
	for _, n := range d.Nodes {
		if n.ID == id {
			return n
		}
	}
	return nil
}
