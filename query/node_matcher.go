package query

import (
	"path/filepath"
	"strings"

	"github.com/josongsong/semantica-codegraph/graphindex"
	"github.com/josongsong/semantica-codegraph/ir"
)

// AliasIndex answers `Q.AliasOf(var)`: which node ids a variable may point to. When nil,
// AliasOf resolves to only the original node, per spec.md §4.3.2.
type AliasIndex interface {
	AliasesOf(nodeID string) []string
}

// TaintCategories resolves a taint category name to the set of simple names it covers,
// for Q.Source/Q.Sink's priority-1 mode (category lookup before falling back to atom/name
// matching). Implemented by the taint package's compiled policy.
type TaintCategories interface {
	NamesInCategory(category string) []string
}

// NodeMatcher dispatches each NodeSelector variant to its typed matching rule and returns
// a deduplicated list of UnifiedNode (spec.md §4.3.2).
type NodeMatcher struct {
	Index    *graphindex.GraphIndex
	Aliases  AliasIndex
	Taint    TaintCategories
}

// NewNodeMatcher builds a NodeMatcher over a built GraphIndex.
func NewNodeMatcher(index *graphindex.GraphIndex) *NodeMatcher {
	return &NodeMatcher{Index: index}
}

// Match resolves a NodeSelector into the set of nodes it denotes.
func (m *NodeMatcher) Match(sel NodeSelector) []*graphindex.UnifiedNode {
	var result []*graphindex.UnifiedNode
	switch sel.Kind {
	case SelAny:
		result = m.Index.Nodes.All()
	case SelVar:
		result = m.matchByKindAndName(ir.NodeVariable, sel.Name)
		if sel.Type != "" || sel.Scope != "" || sel.Context != "" {
			result = filterAttrs(result, sel.Type, sel.Scope, sel.Context)
		}
	case SelFunc:
		result = m.matchFuncDotted(sel.Name)
	case SelCall:
		result = m.matchCallSuffix(sel.Name)
	case SelBlock:
		result = m.matchBlockKind(sel.BlockKind)
	case SelModule:
		result = m.matchModuleGlob(sel.ModuleGlob)
	case SelClass:
		result = m.matchByKindAndName(ir.NodeClass, sel.Name)
	case SelField:
		result = m.matchField(sel.Object, sel.Field)
	case SelSource:
		result = m.matchSourceOrSink(sel.CategoryOrAtomID)
	case SelSink:
		result = m.matchSourceOrSink(sel.CategoryOrAtomID)
	case SelExpr:
		result = m.matchExpr(sel.ExprID)
	case SelAliasOf:
		result = m.matchAliasOf(sel.AliasOfVar)
	case SelTemplateSlot:
		result = m.matchTemplateSlot(sel.TemplateKind, sel.IsSink)
	case SelUnion:
		result = dedupNodes(m.matchAll(sel.Operands))
	case SelIntersect:
		result = intersectNodes(m.matchEach(sel.Operands))
	}
	if sel.Within != "" {
		result = filterWithinScope(result, sel.Within)
	}
	return result
}

func (m *NodeMatcher) matchAll(sels []NodeSelector) []*graphindex.UnifiedNode {
	var all []*graphindex.UnifiedNode
	for _, s := range sels {
		all = append(all, m.Match(s)...)
	}
	return all
}

func (m *NodeMatcher) matchEach(sels []NodeSelector) [][]*graphindex.UnifiedNode {
	out := make([][]*graphindex.UnifiedNode, len(sels))
	for i, s := range sels {
		out[i] = m.Match(s)
	}
	return out
}

func (m *NodeMatcher) matchByKindAndName(kind ir.NodeKind, name string) []*graphindex.UnifiedNode {
	var out []*graphindex.UnifiedNode
	for _, n := range m.Index.Nodes.All() {
		if n.Kind == kind && (name == "" || n.Name == name) {
			out = append(out, n)
		}
	}
	return out
}

// matchFuncDotted accepts dotted "Class.method" names and otherwise matches by plain name
// across both functions and methods, per spec.md §4.3.2's "composite (class, method)
// index when present" rule.
func (m *NodeMatcher) matchFuncDotted(name string) []*graphindex.UnifiedNode {
	var className, methodName string
	if idx := strings.LastIndex(name, "."); idx >= 0 {
		className, methodName = name[:idx], name[idx+1:]
	} else {
		methodName = name
	}
	var out []*graphindex.UnifiedNode
	for _, n := range m.Index.Nodes.All() {
		if n.Kind != ir.NodeFunction && n.Kind != ir.NodeMethod {
			continue
		}
		if n.Name != methodName {
			continue
		}
		if className != "" && !strings.HasSuffix(n.FQN, className+"."+methodName) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// matchCallSuffix uses suffix matching for dotless names, e.g. "Println" matches
// "fmt.Println" (spec.md §4.3.2: "call-site index with suffix match for dotless names").
func (m *NodeMatcher) matchCallSuffix(name string) []*graphindex.UnifiedNode {
	var out []*graphindex.UnifiedNode
	dotless := !strings.Contains(name, ".")
	for _, e := range m.Index.Edges.ByKind(ir.EdgeCalls) {
		target, ok := m.Index.Nodes.Get(e.TargetID)
		if !ok {
			continue
		}
		if dotless {
			if strings.HasSuffix(target.Name, name) || strings.HasSuffix(target.FQN, "."+name) {
				out = append(out, target)
			}
			continue
		}
		if target.FQN == name || target.Name == name {
			out = append(out, target)
		}
	}
	return dedupNodes(out)
}

func (m *NodeMatcher) matchBlockKind(kind string) []*graphindex.UnifiedNode {
	var out []*graphindex.UnifiedNode
	for _, blk := range m.Index.Document().CFGBlocks {
		if string(blk.Kind) == kind {
			if n, ok := m.Index.Nodes.Get(blk.FuncNodeID); ok {
				out = append(out, n)
			}
		}
	}
	return out
}

func (m *NodeMatcher) matchModuleGlob(glob string) []*graphindex.UnifiedNode {
	var out []*graphindex.UnifiedNode
	for _, n := range m.Index.Nodes.All() {
		if n.Kind != ir.NodeModule && n.Kind != ir.NodeFile {
			continue
		}
		if ok, _ := filepath.Match(glob, n.FQN); ok || glob == "" {
			out = append(out, n)
		}
	}
	return out
}

func (m *NodeMatcher) matchField(object, field string) []*graphindex.UnifiedNode {
	var out []*graphindex.UnifiedNode
	for _, n := range m.Index.Nodes.All() {
		if n.Kind != ir.NodeVariable {
			continue
		}
		if field != "" && n.Name != field {
			continue
		}
		if object != "" && n.ParentID != object && !strings.HasPrefix(n.FQN, object+".") {
			continue
		}
		out = append(out, n)
	}
	return out
}

// matchSourceOrSink implements the three priority modes of spec.md §4.3.2: (0) a direct
// "expr:" id, (1) a taint category, (2) an atom id falling back to name matching.
func (m *NodeMatcher) matchSourceOrSink(categoryOrAtomID string) []*graphindex.UnifiedNode {
	if strings.HasPrefix(categoryOrAtomID, "expr:") {
		if n, ok := m.Index.Nodes.Get(categoryOrAtomID); ok {
			return []*graphindex.UnifiedNode{n}
		}
		return nil
	}
	if m.Taint != nil {
		if names := m.Taint.NamesInCategory(categoryOrAtomID); len(names) > 0 {
			var out []*graphindex.UnifiedNode
			for _, name := range names {
				out = append(out, m.matchAll([]NodeSelector{Q.Func(name), Q.Call(name), Q.Var(name)})...)
			}
			return dedupNodes(out)
		}
	}
	return m.matchAll([]NodeSelector{Q.Func(categoryOrAtomID), Q.Call(categoryOrAtomID), Q.Var(categoryOrAtomID)})
}

func (m *NodeMatcher) matchExpr(exprID string) []*graphindex.UnifiedNode {
	for _, ex := range m.Index.Document().Expressions {
		if ex.ID == exprID {
			if n, ok := m.Index.Nodes.Get(ex.FuncFQN); ok {
				return []*graphindex.UnifiedNode{n}
			}
		}
	}
	return nil
}

// matchAliasOf consults the alias index if present; otherwise returns only the original
// node, per spec.md §4.3.2.
func (m *NodeMatcher) matchAliasOf(name string) []*graphindex.UnifiedNode {
	original := m.matchByKindAndName(ir.NodeVariable, name)
	if m.Aliases == nil || len(original) == 0 {
		return original
	}
	seen := map[string]bool{}
	var out []*graphindex.UnifiedNode
	for _, n := range original {
		if !seen[n.ID] {
			seen[n.ID] = true
			out = append(out, n)
		}
		for _, aliasID := range m.Aliases.AliasesOf(n.ID) {
			if seen[aliasID] {
				continue
			}
			seen[aliasID] = true
			if aliased, ok := m.Index.Nodes.Get(aliasID); ok {
				out = append(out, aliased)
			}
		}
	}
	return out
}

func (m *NodeMatcher) matchTemplateSlot(contextKind string, isSink bool) []*graphindex.UnifiedNode {
	var out []*graphindex.UnifiedNode
	for _, n := range m.Index.Nodes.All() {
		kind, _ := n.Attrs["template_context"].(string)
		sink, _ := n.Attrs["is_sink"].(bool)
		if kind == contextKind && sink == isSink {
			out = append(out, n)
		}
	}
	return out
}

func filterAttrs(nodes []*graphindex.UnifiedNode, typ, scope, context string) []*graphindex.UnifiedNode {
	var out []*graphindex.UnifiedNode
	for _, n := range nodes {
		if typ != "" {
			if v, _ := n.Attrs["type"].(string); v != typ {
				continue
			}
		}
		if scope != "" {
			if v, _ := n.Attrs["scope"].(string); v != scope {
				continue
			}
		}
		if context != "" {
			if v, _ := n.Attrs["context"].(string); v != context {
				continue
			}
		}
		out = append(out, n)
	}
	return out
}

func filterWithinScope(nodes []*graphindex.UnifiedNode, scope string) []*graphindex.UnifiedNode {
	var out []*graphindex.UnifiedNode
	for _, n := range nodes {
		if n.ParentID == scope || strings.HasPrefix(n.FQN, scope+".") || n.FQN == scope {
			out = append(out, n)
		}
	}
	return out
}

// dedupNodes deduplicates by node id, preserving first-seen order (spec.md §4.3.2: "union
// and intersection are deduplicated by node id").
func dedupNodes(nodes []*graphindex.UnifiedNode) []*graphindex.UnifiedNode {
	seen := map[string]bool{}
	var out []*graphindex.UnifiedNode
	for _, n := range nodes {
		if n == nil || seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		out = append(out, n)
	}
	return out
}

func intersectNodes(sets [][]*graphindex.UnifiedNode) []*graphindex.UnifiedNode {
	if len(sets) == 0 {
		return nil
	}
	counts := map[string]int{}
	byID := map[string]*graphindex.UnifiedNode{}
	for _, set := range sets {
		seenInSet := map[string]bool{}
		for _, n := range set {
			if n == nil || seenInSet[n.ID] {
				continue
			}
			seenInSet[n.ID] = true
			counts[n.ID]++
			byID[n.ID] = n
		}
	}
	var out []*graphindex.UnifiedNode
	for id, c := range counts {
		if c == len(sets) {
			out = append(out, byID[id])
		}
	}
	return out
}
