package query

// NodeSelectorKind discriminates the node-selector variants of Q (spec.md §4.3.1).
type NodeSelectorKind string

const (
	SelVar          NodeSelectorKind = "Var"
	SelFunc         NodeSelectorKind = "Func"
	SelCall         NodeSelectorKind = "Call"
	SelBlock        NodeSelectorKind = "Block"
	SelModule       NodeSelectorKind = "Module"
	SelClass        NodeSelectorKind = "Class"
	SelField        NodeSelectorKind = "Field"
	SelSource       NodeSelectorKind = "Source"
	SelSink         NodeSelectorKind = "Sink"
	SelExpr         NodeSelectorKind = "Expr"
	SelAliasOf      NodeSelectorKind = "AliasOf"
	SelTemplateSlot NodeSelectorKind = "TemplateSlot"
	SelAny          NodeSelectorKind = "Any"
	SelUnion        NodeSelectorKind = "Union"
	SelIntersect    NodeSelectorKind = "Intersect"
	SelWithin       NodeSelectorKind = "Within"
)

// NodeSelector is a Q expression: a typed node-matching rule that NodeMatcher resolves
// into a set of UnifiedNode ids. Selectors are immutable values combined with Or/And/
// Within rather than mutated in place.
type NodeSelector struct {
	Kind NodeSelectorKind

	Name    string
	Type    string
	Scope   string
	Context string

	BlockKind string
	ModuleGlob string
	Field     string
	Object    string

	CategoryOrAtomID string
	ExprID           string
	AliasOfVar       string
	TemplateKind     string
	IsSink           bool

	Operands []NodeSelector // Union/Intersect operands
	Within   string          // .within(scope)
}

// Q is the node-selector DSL's entry point, named to read like the flow expressions
// spec.md §4.3.1 specifies: Q.Var("x") >> Q.Sink("xss").
var Q = qBuilder{}

type qBuilder struct{}

func (qBuilder) Var(name string) NodeSelector { return NodeSelector{Kind: SelVar, Name: name} }
func (qBuilder) VarTyped(name, typ, scope, context string) NodeSelector {
	return NodeSelector{Kind: SelVar, Name: name, Type: typ, Scope: scope, Context: context}
}
func (qBuilder) Func(name string) NodeSelector   { return NodeSelector{Kind: SelFunc, Name: name} }
func (qBuilder) Call(name string) NodeSelector   { return NodeSelector{Kind: SelCall, Name: name} }
func (qBuilder) Block(kind string) NodeSelector  { return NodeSelector{Kind: SelBlock, BlockKind: kind} }
func (qBuilder) Module(glob string) NodeSelector { return NodeSelector{Kind: SelModule, ModuleGlob: glob} }
func (qBuilder) Class(name string) NodeSelector  { return NodeSelector{Kind: SelClass, Name: name} }
func (qBuilder) Field(obj, field string) NodeSelector {
	return NodeSelector{Kind: SelField, Object: obj, Field: field}
}
func (qBuilder) Source(categoryOrAtomID string) NodeSelector {
	return NodeSelector{Kind: SelSource, CategoryOrAtomID: categoryOrAtomID}
}
func (qBuilder) Sink(categoryOrAtomID string) NodeSelector {
	return NodeSelector{Kind: SelSink, CategoryOrAtomID: categoryOrAtomID}
}
func (qBuilder) Expr(kind, id string) NodeSelector {
	return NodeSelector{Kind: SelExpr, BlockKind: kind, ExprID: id}
}
func (qBuilder) AliasOf(v string) NodeSelector { return NodeSelector{Kind: SelAliasOf, AliasOfVar: v} }
func (qBuilder) TemplateSlot(contextKind string, isSink bool) NodeSelector {
	return NodeSelector{Kind: SelTemplateSlot, TemplateKind: contextKind, IsSink: isSink}
}
func (qBuilder) Any() NodeSelector { return NodeSelector{Kind: SelAny} }

// Or implements the `|` union combinator.
func (s NodeSelector) Or(other NodeSelector) NodeSelector {
	return NodeSelector{Kind: SelUnion, Operands: flattenOperands(SelUnion, s, other)}
}

// And implements the `&` intersection combinator.
func (s NodeSelector) And(other NodeSelector) NodeSelector {
	return NodeSelector{Kind: SelIntersect, Operands: flattenOperands(SelIntersect, s, other)}
}

// WithinScope implements `.within(scope)`.
func (s NodeSelector) WithinScope(scope string) NodeSelector {
	s.Within = scope
	return s
}

func flattenOperands(kind NodeSelectorKind, a, b NodeSelector) []NodeSelector {
	var ops []NodeSelector
	if a.Kind == kind {
		ops = append(ops, a.Operands...)
	} else {
		ops = append(ops, a)
	}
	if b.Kind == kind {
		ops = append(ops, b.Operands...)
	} else {
		ops = append(ops, b)
	}
	return ops
}

// EdgeKindSel discriminates the edge-selector variants of E.
type EdgeKindSel string

const (
	EdgeSelDFG     EdgeKindSel = "DFG"
	EdgeSelCFG     EdgeKindSel = "CFG"
	EdgeSelCALL    EdgeKindSel = "CALL"
	EdgeSelBINDS   EdgeKindSel = "BINDS"
	EdgeSelRENDERS EdgeKindSel = "RENDERS"
	EdgeSelESCAPES EdgeKindSel = "ESCAPES"
	EdgeSelALL     EdgeKindSel = "ALL"
	EdgeSelUnion   EdgeKindSel = "Union"
)

// EdgeSelector is an E expression.
type EdgeSelector struct {
	Kind       EdgeKindSel
	IsBackward bool
	MaxDepth   int
	MinDepth   int
	Operands   []EdgeSelector
}

var E = eBuilder{}

type eBuilder struct{}

func (eBuilder) DFG() EdgeSelector     { return EdgeSelector{Kind: EdgeSelDFG, MinDepth: 1} }
func (eBuilder) CFG() EdgeSelector     { return EdgeSelector{Kind: EdgeSelCFG, MinDepth: 1} }
func (eBuilder) CALL() EdgeSelector    { return EdgeSelector{Kind: EdgeSelCALL, MinDepth: 1} }
func (eBuilder) BINDS() EdgeSelector   { return EdgeSelector{Kind: EdgeSelBINDS, MinDepth: 1} }
func (eBuilder) RENDERS() EdgeSelector { return EdgeSelector{Kind: EdgeSelRENDERS, MinDepth: 1} }
func (eBuilder) ESCAPES() EdgeSelector { return EdgeSelector{Kind: EdgeSelESCAPES, MinDepth: 1} }
func (eBuilder) ALL() EdgeSelector     { return EdgeSelector{Kind: EdgeSelALL, MinDepth: 1} }

// Backward implements `.backward()`.
func (s EdgeSelector) Backward() EdgeSelector {
	s.IsBackward = !s.IsBackward
	return s
}

// Depth implements `.depth(max, min=1)`.
func (s EdgeSelector) Depth(max int, min ...int) EdgeSelector {
	s.MaxDepth = max
	s.MinDepth = 1
	if len(min) > 0 {
		s.MinDepth = min[0]
	}
	return s
}

// Or implements edge-selector union.
func (s EdgeSelector) Or(other EdgeSelector) EdgeSelector {
	var ops []EdgeSelector
	if s.Kind == EdgeSelUnion {
		ops = append(ops, s.Operands...)
	} else {
		ops = append(ops, s)
	}
	if other.Kind == EdgeSelUnion {
		ops = append(ops, other.Operands...)
	} else {
		ops = append(ops, other)
	}
	return EdgeSelector{Kind: EdgeSelUnion, Operands: ops}
}

// FlowExpr is a structural-only forward/backward flow built by >>, >, and << on
// selectors. It has no constraint methods; an explicit ToQuery call turns it into a
// PathQuery, which carries the constraints.
type FlowExpr struct {
	Source    NodeSelector
	Target    NodeSelector
	Edge      EdgeSelector
	MaxHops   int // 0 = n-hop (>>), 1 = one-hop (>)
	Backward  bool
}

// Forward builds `source >> target`: n-hop forward flow via the given edge selector.
func Forward(source NodeSelector, edge EdgeSelector, target NodeSelector) FlowExpr {
	return FlowExpr{Source: source, Target: target, Edge: edge, MaxHops: 0}
}

// OneHop builds `source > target`: a single-hop forward flow.
func OneHop(source NodeSelector, edge EdgeSelector, target NodeSelector) FlowExpr {
	return FlowExpr{Source: source, Target: target, Edge: edge, MaxHops: 1}
}

// BackwardFlow builds `target << source`: n-hop backward flow.
func BackwardFlow(target NodeSelector, edge EdgeSelector, source NodeSelector) FlowExpr {
	return FlowExpr{Source: source, Target: target, Edge: edge, MaxHops: 0, Backward: true}
}

// WithinMode selects how `within(scope, mode=...)` restricts traversal.
type WithinMode string

const (
	WithinPrune  WithinMode = "Prune"
	WithinFilter WithinMode = "Filter"
)

// ContextModel selects the interprocedural precision model for context_sensitive(k, ...).
type ContextModel string

const (
	ContextSummary ContextModel = "Summary"
	ContextCloning ContextModel = "Cloning"
)

// AliasPrecision selects Must/May alias semantics for alias_sensitive(...).
type AliasPrecision string

const (
	AliasMust AliasPrecision = "Must"
	AliasMay  AliasPrecision = "May"
)

// Predicate is a user-supplied `where(...)` filter over a candidate path.
type Predicate func(path *Path) bool

// PathQuery is an executable flow expression with constraints attached (spec.md §4.3.1).
// It is built from a FlowExpr only by FlowExpr.ToQuery; there is no automatic promotion, and
// neither type has an Execute method (Engine.ExecuteFlow takes the FlowExpr).
type PathQuery struct {
	Flow FlowExpr

	Wheres         []Predicate
	WithinScope    string
	WithinMode     WithinMode
	Excluding      map[string]bool
	CleansedBy     []NodeSelector
	ContextK       int
	ContextModel   ContextModel
	AliasPrecision AliasPrecision

	LimitPaths int
	LimitNodes int
	TimeoutMS  int
	MaxDepth   int // resolved from the mode preset by QueryExecutor; 0 means "use the default"
}

// ToQuery promotes a FlowExpr into an executable PathQuery with no constraints yet.
func (f FlowExpr) ToQuery() *PathQuery {
	return &PathQuery{Flow: f, Excluding: map[string]bool{}}
}

func (q *PathQuery) Where(p Predicate) *PathQuery {
	q.Wheres = append(q.Wheres, p)
	return q
}

func (q *PathQuery) Within(scope string, mode WithinMode) *PathQuery {
	q.WithinScope = scope
	q.WithinMode = mode
	return q
}

func (q *PathQuery) ExcludingNodes(nodeIDs ...string) *PathQuery {
	if q.Excluding == nil {
		q.Excluding = map[string]bool{}
	}
	for _, id := range nodeIDs {
		q.Excluding[id] = true
	}
	return q
}

func (q *PathQuery) CleansedByOf(sanitizer NodeSelector) *PathQuery {
	q.CleansedBy = append(q.CleansedBy, sanitizer)
	return q
}

func (q *PathQuery) ContextSensitive(k int, model ContextModel) *PathQuery {
	q.ContextK = k
	q.ContextModel = model
	return q
}

func (q *PathQuery) AliasSensitive(precision AliasPrecision) *PathQuery {
	q.AliasPrecision = precision
	return q
}

func (q *PathQuery) LimitPathsTo(n int) *PathQuery {
	q.LimitPaths = n
	return q
}

func (q *PathQuery) LimitNodesTo(n int) *PathQuery {
	q.LimitNodes = n
	return q
}

func (q *PathQuery) TimeoutAfter(ms int) *PathQuery {
	q.TimeoutMS = ms
	return q
}

// Path is one concrete path discovered by Traversal: an ordered node/edge sequence, plus
// the optional annotations spec.md §6's PathResult names: Uncertain/UncertainReasons (set
// when the path crosses an abstract node the builder could only approximate, e.g. a heap
// element carrying HEAP_CUTOFF) and the taint-flow-only fields TaintedVariables,
// CallContextIDs, IsSanitized, and Severity, left zero-valued by plain graph queries and
// populated by callers (e.g. query/taint) that have that domain context available.
type Path struct {
	NodeIDs []string
	EdgeIDs []string
	Depth   int

	Uncertain        bool
	UncertainReasons []string

	TaintedVariables []string
	CallContextIDs   []string
	IsSanitized      bool
	Severity         string
}

// StopReason explains why a PathSet's search stopped, per spec.md §7/§4.3.5.
type StopReason string

const (
	StopComplete         StopReason = "COMPLETE"
	StopNoMatch          StopReason = "NO_MATCH"
	StopTimeout          StopReason = "TIMEOUT"
	StopPathLimit        StopReason = "PATH_LIMIT"
	StopNodeLimit        StopReason = "NODE_LIMIT"
	StopError            StopReason = "ERROR"
)

// PathSet is the result of `.any_path()`: an existential query result. ElapsedMs and
// NodesVisited are the raw traversal's budget counters (spec.md §6/§8: "nodes_visited ==
// 1000" on a MaxNodes breach, "elapsed_ms <= timeout_ms" on Complete); Complete and
// TruncationReason are legacy fields auto-derived from StopReason for callers that predate
// the StopReason enum (spec.md §6: "Legacy complete and truncation_reason remain for
// compatibility and are auto-derived").
type PathSet struct {
	Paths       []*Path
	StopReason  StopReason
	Diagnostics []string
	ElapsedMs   int64
	NodesVisited int

	Complete         bool
	TruncationReason StopReason
}

// VerificationResult is the result of `.all_paths()`: a universal query result.
type VerificationResult struct {
	OK            bool
	ViolationPath *Path
	StopReason    StopReason
	Diagnostics   []string
	ElapsedMs     int64
	NodesVisited  int
}

// deriveLegacyFields fills Complete/TruncationReason from StopReason, per spec.md §6.
func (ps *PathSet) deriveLegacyFields() *PathSet {
	ps.Complete = ps.StopReason == StopComplete
	if !ps.Complete {
		ps.TruncationReason = ps.StopReason
	}
	return ps
}
