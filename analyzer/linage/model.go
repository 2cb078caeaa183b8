package linage

import sitter "github.com/smacker/go-tree-sitter"

// Annotations holds comment-annotation and struct-tag metadata merged onto an Identifier,
// keyed by annotation name (e.g. "json", "validate", a Java "@Component" marker).
type Annotations map[string]string

// Selector models a chain of field accesses (e.g. `a.b.c`) so resolveIdent can record
// which struct field an identifier refers to without re-walking the AST.
type Selector struct {
	Field  string
	Parent *Selector
}

// Path renders the selector chain as a dotted string, outermost field first.
func (s *Selector) Path() string {
	if s == nil {
		return ""
	}
	if s.Parent == nil {
		return s.Field
	}
	return s.Parent.Path() + "." + s.Field
}

// Identifier is a single named entity touched during the scope/dataflow walk: a variable,
// parameter, struct field, function, type, or synthetic element (composite-literal field,
// channel, WaitGroup handle, nested-call temporary).
type Identifier struct {
	ID        string // stable key, typically "pkg::file::startByte" or a synthetic derivative
	Name      string
	Package   string
	File      string
	StartByte uint32
	Kind      string // "var", "field", "func", "type", "param", "file", ...
	Type      string // inferred static type name, best-effort
	Scope     string // owning Scope.ID
	Selector  *Selector
	Annotation Annotations
	Node      *sitter.Node
}

// DataFlowEdge records one access of an identifier: a read, write, call, transitive
// transfer (Xfer), or metadata-derived edge between two identifiers.
type DataFlowEdge struct {
	Src        *Identifier
	Dst        *Identifier
	Kind       AccessKind
	Scope      string
	Attributes map[string]interface{}
}

// PackageModel is the per-package (or merged, for the global model) result of an analysis
// run: the set of discovered identifiers, the scopes they live in, and every dataflow edge
// observed while walking the package's source files.
type PackageModel struct {
	Path     string
	Language string
	Files    []string
	Scopes   []*Scope
	Idents   map[string]*Identifier
	DataFlows []*DataFlowEdge
}

// NewPackageModel returns an empty PackageModel ready for population by an Analyzer.
func NewPackageModel() *PackageModel {
	return &PackageModel{
		Idents: map[string]*Identifier{},
	}
}
