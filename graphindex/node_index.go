package graphindex

import (
	"sync"

	"github.com/josongsong/semantica-codegraph/ir"
)

// UnifiedNode is a read-only projection of any IR entity into a single shape the query
// engine can match against, regardless of whether the underlying entity is a structural
// Node, a synthesised heap element, or a callee-target bridge (spec.md §3, §4.2).
type UnifiedNode struct {
	ID       string
	Kind     ir.NodeKind
	Name     string
	FQN      string
	FilePath string
	Span     *ir.Span
	Language string
	ParentID string
	Attrs    map[string]interface{}
	Synthetic bool
}

// NodeIndex is id -> UnifiedNode, extended with synthesised abstract nodes for heap
// element ids (`container[*]`) and callee-target nodes (`callee:name:param:N`) so every
// edge endpoint resolves to a node (spec.md §4.2).
type NodeIndex struct {
	mu    sync.RWMutex
	byID  map[string]*UnifiedNode
}

// NewNodeIndex builds a NodeIndex from an IRDocument's structural nodes. Synthetic nodes
// are added later by EnsureSynthetic for edge endpoints that have no structural node.
func NewNodeIndex(doc *ir.IRDocument) *NodeIndex {
	idx := &NodeIndex{byID: make(map[string]*UnifiedNode, len(doc.Nodes))}
	for _, n := range doc.Nodes {
		idx.byID[n.ID] = &UnifiedNode{
			ID: n.ID, Kind: n.Kind, Name: n.Name, FQN: n.FQN, FilePath: n.FilePath,
			Span: n.Span, Language: n.Language, ParentID: n.ParentID, Attrs: n.Attrs,
		}
	}
	return idx
}

// Get retrieves a node by id in O(1).
func (n *NodeIndex) Get(id string) (*UnifiedNode, bool) {
	n.mu.RLock()
	defer n.mu.RUnlock()
	node, ok := n.byID[id]
	return node, ok
}

// EnsureSynthetic returns the existing node for id, or creates and stores a synthetic
// placeholder of the given kind/name so edge endpoints always resolve.
func (n *NodeIndex) EnsureSynthetic(id string, kind ir.NodeKind, name string) *UnifiedNode {
	n.mu.Lock()
	defer n.mu.Unlock()
	if existing, ok := n.byID[id]; ok {
		return existing
	}
	node := &UnifiedNode{ID: id, Kind: kind, Name: name, FQN: id, Synthetic: true}
	n.byID[id] = node
	return node
}

// Len reports the total number of nodes, including synthesised ones.
func (n *NodeIndex) Len() int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.byID)
}

// All returns every node, real and synthetic. Intended for small fixtures/tests and
// Q.Any() — callers should not assume stable ordering.
func (n *NodeIndex) All() []*UnifiedNode {
	n.mu.RLock()
	defer n.mu.RUnlock()
	out := make([]*UnifiedNode, 0, len(n.byID))
	for _, node := range n.byID {
		out = append(out, node)
	}
	return out
}
