package ir

// NodeKind enumerates the canonical node kinds produced by the IR builder and surfaced
// by UnifiedNode in the graph index.
type NodeKind string

const (
	NodeFile      NodeKind = "file"
	NodeModule    NodeKind = "module"
	NodeClass     NodeKind = "class"
	NodeFunction  NodeKind = "function"
	NodeMethod    NodeKind = "method"
	NodeLambda    NodeKind = "lambda"
	NodeParameter NodeKind = "parameter"
	NodeVariable  NodeKind = "variable"
	NodeImport    NodeKind = "import"
	NodeExternal  NodeKind = "external_function"
	NodeHeapElem  NodeKind = "heap_element"
	NodeCalleeTarget NodeKind = "callee_target"
)

// EdgeKind enumerates the canonical edge kinds, spanning structural (CONTAINS, IMPORTS,
// OVERRIDES), call (CALLS), and semantic (DFG/CFG/interprocedural bridge) edges.
type EdgeKind string

const (
	EdgeContains      EdgeKind = "CONTAINS"
	EdgeImports       EdgeKind = "IMPORTS"
	EdgeCalls         EdgeKind = "CALLS"
	EdgeOverrides     EdgeKind = "OVERRIDES"
	EdgeDFG           EdgeKind = "DFG"
	EdgeCFG           EdgeKind = "CFG"
	EdgeBinds         EdgeKind = "BINDS"
	EdgeRenders       EdgeKind = "RENDERS"
	EdgeEscapes       EdgeKind = "ESCAPES"
	EdgeExprTree      EdgeKind = "EXPR_TREE"
	EdgeReturnToCaller EdgeKind = "RETURN_TO_CALLER"
	EdgeCalleeParam   EdgeKind = "CALLEE_PARAM"
	EdgeCollectionLoad EdgeKind = "COLLECTION_LOAD"
)

// OccurrenceRole is a bit in Occurrence.Roles.
type OccurrenceRole uint8

const (
	RoleDefinition OccurrenceRole = 1 << iota
	RoleImport
	RoleWrite
	RoleRead
	RoleTest
	RoleGenerated
	RoleForward
)

// Has reports whether role is set in the bitset.
func (b OccurrenceRole) Has(role OccurrenceRole) bool { return b&role != 0 }

// VariableKind classifies a VariableEntity.
type VariableKind string

const (
	VarLocal VariableKind = "local"
	VarParam VariableKind = "param"
	VarGlobal VariableKind = "global"
	VarField  VariableKind = "field"
	VarTemp   VariableKind = "temp"
)

// DataflowEdgeKind classifies a DataflowEdge.
type DataflowEdgeKind string

const (
	DFDefUse         DataflowEdgeKind = "def-use"
	DFRead           DataflowEdgeKind = "read"
	DFWrite          DataflowEdgeKind = "write"
	DFCollectionLoad DataflowEdgeKind = "collection-load"
)

// ExprKind enumerates the Expression algebraic-type variants (spec.md §9).
type ExprKind string

const (
	ExprCall         ExprKind = "Call"
	ExprBinOp        ExprKind = "BinOp"
	ExprUnaryOp      ExprKind = "UnaryOp"
	ExprLiteral      ExprKind = "Literal"
	ExprNameLoad     ExprKind = "NameLoad"
	ExprAttribute    ExprKind = "Attribute"
	ExprSubscript    ExprKind = "Subscript"
	ExprCompare      ExprKind = "Compare"
	ExprBoolOp       ExprKind = "BoolOp"
	ExprCollection   ExprKind = "Collection"
	ExprLambda       ExprKind = "Lambda"
	ExprComprehension ExprKind = "Comprehension"
	ExprAssign       ExprKind = "Assign"
)

// CFGBlockKind enumerates ControlFlowBlock kinds.
type CFGBlockKind string

const (
	CFGEntry      CFGBlockKind = "Entry"
	CFGExit       CFGBlockKind = "Exit"
	CFGBlock      CFGBlockKind = "Block"
	CFGCondition  CFGBlockKind = "Condition"
	CFGLoopHeader CFGBlockKind = "LoopHeader"
	CFGTry        CFGBlockKind = "Try"
	CFGCatch      CFGBlockKind = "Catch"
	CFGFinally    CFGBlockKind = "Finally"
	CFGSuspend    CFGBlockKind = "Suspend"
	CFGResume     CFGBlockKind = "Resume"
)
