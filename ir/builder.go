package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"path/filepath"
	"strings"

	"github.com/josongsong/semantica-codegraph/analyzer/linage"
	"github.com/josongsong/semantica-codegraph/inspector/graph"
)

// Logger is the minimal logging seam used throughout this module (see SPEC_FULL.md §5.1);
// the zero value routes to the standard library's default logger.
type Logger interface {
	Printf(format string, args ...any)
}

type stdLogger struct{}

func (stdLogger) Printf(format string, args ...any) { log.Printf(format, args...) }

// Builder consumes structural facts from a language front-end (inspector/graph.File) plus
// the scope/dataflow walk result (analyzer/linage.PackageModel) and produces an IRDocument
// fragment for one file, per spec.md §4.1.
type Builder struct {
	IDs     *IDGenerator
	Spans   *SpanPool
	Logger  Logger
	RepoID  string
}

// NewBuilder returns a Builder with process-wide shared id/span state; repoID identifies
// the repository whose external-function node ids must not collide with another repo's.
func NewBuilder(repoID string, ids *IDGenerator, spans *SpanPool) *Builder {
	if ids == nil {
		ids = NewIDGenerator()
	}
	if spans == nil {
		spans = NewSpanPool(0)
	}
	return &Builder{IDs: ids, Spans: spans, Logger: stdLogger{}, RepoID: repoID}
}

// moduleFQN builds a dotted module path from a file path, stripping the language suffix
// and normalising separators (spec.md §4.1 step 1).
func moduleFQN(path string) string {
	trimmed := strings.TrimSuffix(path, filepath.Ext(path))
	trimmed = strings.TrimSuffix(trimmed, string(filepath.Separator)+"__init__")
	trimmed = strings.TrimPrefix(trimmed, string(filepath.Separator))
	dotted := strings.ReplaceAll(trimmed, string(filepath.Separator), ".")
	dotted = strings.ReplaceAll(dotted, "/", ".")
	return dotted
}

func span(l *graph.Location) *Span {
	if l == nil {
		return nil
	}
	return &Span{StartLine: l.Start, EndLine: l.End}
}

// Generate builds an IRDocument fragment for one file. model may be nil when mode is
// ModeQuick and no scope/dataflow walk has been run yet; file must not be nil.
//
// Fails with *ParseError when file is nil (the caller's AST parse failed) — the pipeline
// continues with other files, per spec.md §7.
func (b *Builder) Generate(file *graph.File, pkg *graph.Package, model *linage.PackageModel, snapshotID string, mode Mode, language string) (*IRDocument, error) {
	if file == nil {
		return nil, &ParseError{FilePath: "", Cause: errNilFile}
	}

	doc := NewIRDocument(b.RepoID, snapshotID)
	moduleFQNStr := moduleFQN(file.Path)
	fileNodeID := FileNodeID(file.Path)

	doc.Nodes = append(doc.Nodes, &Node{
		ID:       fileNodeID,
		Kind:     NodeFile,
		Name:     file.Name,
		FQN:      moduleFQNStr,
		FilePath: file.Path,
		Language: language,
		Attrs:    map[string]interface{}{"package": file.Package},
	})
	doc.Packages = append(doc.Packages, &Package{Path: file.Package, Files: []string{file.Path}})

	// Imports: each creates an Import node, a CONTAINS edge from the file, and an
	// IMPORTS edge (spec.md §4.1 step 4). Every import without an alias name, wildcard
	// or not, registers with alias "*"; nothing is expanded further.
	for _, imp := range file.Imports {
		alias := imp.Name
		if alias == "" {
			alias = "*"
		}
		importFQN := moduleFQNStr + ".import." + imp.Path
		importID := NodeID(NodeImport, importFQN)
		doc.Nodes = append(doc.Nodes, &Node{
			ID:       importID,
			Kind:     NodeImport,
			Name:     alias,
			FQN:      importFQN,
			FilePath: file.Path,
			Language: language,
			ParentID: fileNodeID,
			Attrs:    map[string]interface{}{"path": imp.Path, "alias": alias},
		})
		b.addEdge(doc, EdgeContains, fileNodeID, importID, nil)
		b.addEdge(doc, EdgeImports, fileNodeID, importID, nil)
	}

	// Types (classes/structs) and their methods.
	for _, t := range file.Types {
		b.addType(doc, file, fileNodeID, moduleFQNStr, t, language)
	}

	// Top-level functions.
	for _, fn := range file.Functions {
		b.addFunction(doc, fileNodeID, moduleFQNStr, "", fn, language)
	}

	// Top-level variables and constants become Variable-kind nodes with a Definition
	// occurrence each.
	for _, v := range file.Variables {
		b.addVariableNode(doc, fileNodeID, moduleFQNStr, v.Name, v.Location, language)
	}
	for _, c := range file.Constants {
		b.addVariableNode(doc, fileNodeID, moduleFQNStr, c.Name, func() *graph.Location {
			if c.Location != nil {
				return c.Location
			}
			return nil
		}(), language)
	}

	if mode.wantsSemanticLayers() && model != nil {
		b.addSemanticLayers(doc, model)
	}

	b.addOccurrencesForNodes(doc)

	return doc, nil
}

// contentHash returns a stable digest of source text, used by GenerateIncremental to
// decide whether a file actually changed.
func contentHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// GenerateIncremental implements spec.md §4.1's `generate_incremental(source_file,
// old_content, diff_text)`: "same output, re-using the previous tree where possible." When
// prevFragment is non-nil, oldContent is non-empty and newContent hashes identically to
// oldContent, a shallow copy of prevFragment is returned with only SnapshotID replaced,
// keeping every node/edge id (and node pointer) of the previous fragment rather than
// re-minting them from a freshly walked tree. Any actual
// content change falls back to a full Generate: this builder has no sub-file AST diffing of
// its own, so "where possible" reduces to the no-op case; a real diff still regenerates the
// whole file's fragment, which preserves node/edge id stability anyway since ids are
// content-addressed from FQN/position, not from allocation order (spec.md §9).
func (b *Builder) GenerateIncremental(file *graph.File, pkg *graph.Package, model *linage.PackageModel, snapshotID string, mode Mode, language string, prevFragment *IRDocument, oldContent, newContent string) (*IRDocument, error) {
	if prevFragment != nil && oldContent != "" && contentHash(oldContent) == contentHash(newContent) {
		reused := *prevFragment
		reused.SnapshotID = snapshotID
		return &reused, nil
	}
	return b.Generate(file, pkg, model, snapshotID, mode, language)
}

func (b *Builder) addType(doc *IRDocument, file *graph.File, fileNodeID, moduleFQNStr string, t *graph.Type, language string) {
	typeFQN := moduleFQNStr + "." + t.Name
	typeID := NodeID(NodeClass, typeFQN)
	doc.Nodes = append(doc.Nodes, &Node{
		ID:       typeID,
		Kind:     NodeClass,
		Name:     t.Name,
		FQN:      typeFQN,
		FilePath: file.Path,
		Span:     span(t.Location),
		Language: language,
		ParentID: fileNodeID,
		Attrs:    map[string]interface{}{"is_exported": t.IsExported, "implements": t.Implements, "extends": t.Extends},
	})
	b.addEdge(doc, EdgeContains, fileNodeID, typeID, nil)

	for _, m := range t.Methods {
		b.addFunction(doc, typeID, typeFQN, t.Name, m, language)
	}

	// OVERRIDES: for each base type named in Extends, match method names (excluding
	// constructors) and record an OVERRIDES edge from the override to the base method
	// (spec.md §4.1 step 7). The base type is assumed to live in the same module; no later
	// pass re-resolves a base method id that names no node.
	for _, base := range t.Extends {
		baseFQN := moduleFQNStr + "." + base
		for _, m := range t.Methods {
			if m.IsConstructor {
				continue
			}
			methodID := NodeID(NodeMethod, typeFQN+"."+m.Name)
			baseMethodID := NodeID(NodeMethod, baseFQN+"."+m.Name)
			b.addEdge(doc, EdgeOverrides, methodID, baseMethodID, nil)
		}
	}
}

func (b *Builder) addFunction(doc *IRDocument, parentID, parentFQN, receiver string, fn *graph.Function, language string) {
	kind := NodeFunction
	if receiver != "" {
		kind = NodeMethod
	}
	fqn := parentFQN + "." + fn.Name
	id := NodeID(kind, fqn)
	cfg := &ControlFlowSummary{}
	if fn.Body != nil {
		cfg.BranchCount = strings.Count(fn.Body.Text, "if ") + strings.Count(fn.Body.Text, "switch ")
		cfg.HasLoop = strings.Contains(fn.Body.Text, "for ")
		cfg.HasTry = strings.Contains(fn.Body.Text, "try") || strings.Contains(fn.Body.Text, "recover(")
		cfg.CyclomaticComplexity = 1 + cfg.BranchCount
	}
	doc.Nodes = append(doc.Nodes, &Node{
		ID:       id,
		Kind:     kind,
		Name:     fn.Name,
		FQN:      fqn,
		Span:     span(fn.Location),
		BodySpan: span(func() *graph.Location {
			if fn.Body != nil {
				return &fn.Body.Location
			}
			return nil
		}()),
		Language: language,
		ParentID: parentID,
		CFG:      cfg,
		Attrs:    map[string]interface{}{"receiver": receiver, "is_exported": fn.IsExported, "signature": fn.Signature},
	})
	b.addEdge(doc, EdgeContains, parentID, id, nil)

	doc.CFGBlocks = append(doc.CFGBlocks,
		&ControlFlowBlock{ID: id + "#entry", Kind: CFGEntry, FuncNodeID: id},
		&ControlFlowBlock{ID: id + "#exit", Kind: CFGExit, FuncNodeID: id},
	)

	for _, p := range fn.Parameters {
		paramFQN := fqn + ".param." + p.Name
		paramID := NodeID(NodeParameter, paramFQN)
		doc.Nodes = append(doc.Nodes, &Node{
			ID: paramID, Kind: NodeParameter, Name: p.Name, FQN: paramFQN, ParentID: id, Language: language,
		})
		b.addEdge(doc, EdgeContains, id, paramID, nil)
	}
}

func (b *Builder) addVariableNode(doc *IRDocument, parentID, parentFQN, name string, loc *graph.Location, language string) {
	if name == "" {
		return
	}
	fqn := parentFQN + "." + name
	id := NodeID(NodeVariable, fqn)
	doc.Nodes = append(doc.Nodes, &Node{
		ID: id, Kind: NodeVariable, Name: name, FQN: fqn, Span: span(loc), ParentID: parentID, Language: language,
	})
	b.addEdge(doc, EdgeContains, parentID, id, nil)
}

// addSemanticLayers converts the scope/dataflow walk result into the DFG snapshot and
// CALLS edges (spec.md §4.1 step 5 and the PR/FULL-mode additions of step 8). Each
// linage.Identifier becomes a VariableEntity; each linage.DataFlowEdge of kind Call
// becomes a new CALLS edge (repeats get increasing occurrence indexes), and all others
// become DataflowEdges.
func (b *Builder) addSemanticLayers(doc *IRDocument, model *linage.PackageModel) {
	varID := func(id *linage.Identifier) string {
		scopeTag := id.Scope
		if scopeTag == "" {
			scopeTag = id.Package
		}
		return "var:" + scopeTag + ":" + id.Name + "@" + id.ID
	}

	seen := map[string]bool{}
	for _, ident := range model.Idents {
		vid := varID(ident)
		if seen[vid] {
			continue
		}
		seen[vid] = true
		kind := VarLocal
		switch ident.Kind {
		case "param":
			kind = VarParam
		case "field":
			kind = VarField
		case "func", "type", "file":
			continue // structural, already modeled as a Node
		}
		doc.DFG.Variables = append(doc.DFG.Variables, &VariableEntity{
			ID:               vid,
			Name:             ident.Name,
			DeclaringFuncFQN: ident.Scope,
			TypeID:           ident.Type,
			ScopeID:          ident.Scope,
			Kind:             kind,
		})
	}

	occurrence := map[string]int{}
	for _, edge := range model.DataFlows {
		if edge.Src == nil || edge.Dst == nil {
			continue
		}
		if edge.Kind == linage.Call {
			srcID := NodeID(NodeFunction, edge.Src.Name)
			tgtID := b.resolveCalleeNodeID(doc, model, edge.Dst)
			occKey := string(EdgeCalls) + srcID + tgtID
			occ := occurrence[occKey]
			occurrence[occKey] = occ + 1
			b.addEdge(doc, EdgeCalls, srcID, tgtID, nil)
			continue
		}
		var dfgKind DataflowEdgeKind
		switch edge.Kind {
		case linage.Read:
			dfgKind = DFRead
		case linage.Write:
			dfgKind = DFWrite
		case linage.Xfer:
			dfgKind = DFDefUse
		default:
			dfgKind = DFDefUse
		}
		doc.DFG.Edges = append(doc.DFG.Edges, &DataflowEdge{
			FromVariableID: varID(edge.Src),
			ToVariableID:   varID(edge.Dst),
			Kind:           dfgKind,
			Attrs:          map[string]interface{}{"scope": edge.Scope},
		})
	}
}

// resolveCalleeNodeID implements spec.md §4.1 step 5's callee-resolution rule for a call
// analyser operating on a single package's scope walk: a callee declared in the same
// package resolves to its ordinary NodeFunction id; anything else (a different package, or
// no package info at all, e.g. an identifier only the import-alias table could have
// resolved) becomes an external function node keyed by (repo, external name) via
// IDGenerator.ExternalFuncNodeID — "create or reuse an external function node per (repo,
// external name)... otherwise create an external function node for the simple name" — and
// is tagged is_external so query-layer callers (e.g. dead-code detection) can tell a call
// into unanalysed code from a call the IR fully resolved.
func (b *Builder) resolveCalleeNodeID(doc *IRDocument, model *linage.PackageModel, callee *linage.Identifier) string {
	if model != nil && callee.Package != "" && callee.Package == model.Path {
		for _, n := range doc.Nodes {
			if (n.Kind == NodeFunction || n.Kind == NodeMethod) && n.Name == callee.Name {
				return n.ID
			}
		}
		return NodeID(NodeFunction, callee.Name)
	}
	id := b.IDs.ExternalFuncNodeID(b.RepoID, callee.Name)
	if doc.NodeByID(id) == nil {
		doc.Nodes = append(doc.Nodes, &Node{
			ID:    id,
			Kind:  NodeExternal,
			Name:  callee.Name,
			FQN:   callee.Name,
			Attrs: map[string]interface{}{"is_external": true},
		})
	}
	return id
}

// addOccurrencesForNodes synthesises a Definition occurrence for every node that
// represents a declaration (spec.md §3: "generated from nodes+edges after IR complete").
func (b *Builder) addOccurrencesForNodes(doc *IRDocument) {
	for _, n := range doc.Nodes {
		if n.Span == nil {
			continue
		}
		doc.Occurrences = append(doc.Occurrences, &Occurrence{
			ID:             "occ:" + n.ID + ":def",
			SymbolID:       n.ID,
			Span:           n.Span,
			Roles:          RoleDefinition,
			FilePath:       n.FilePath,
			ParentSymbolID: n.ParentID,
			Importance:     1.0,
		})
	}
}

func (b *Builder) addEdge(doc *IRDocument, kind EdgeKind, src, tgt string, s *Span) {
	occurrence := 0
	for _, e := range doc.Edges {
		if e.Kind == kind && e.SourceID == src && e.TargetID == tgt {
			occurrence++
		}
	}
	doc.Edges = append(doc.Edges, &Edge{
		ID:         EdgeID(kind, src, tgt, occurrence),
		Kind:       kind,
		SourceID:   src,
		TargetID:   tgt,
		Span:       s,
		Occurrence: occurrence,
	})
}
