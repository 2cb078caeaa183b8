package graphindex

import (
	"container/list"
	"sync"

	"github.com/josongsong/semantica-codegraph/ir"
)

// semanticEntry is one DFG/expression lookup result cached by SemanticIndex.
type semanticEntry struct {
	key   string
	edges []*ir.DataflowEdge
}

// SemanticIndex is a bounded LRU over composite (variable id, kind) -> dataflow edge
// lookups, so repeated "who reads this variable" queries during a single traversal don't
// re-scan the full DFG snapshot. Fixed capacity, least-recently-used eviction,
// mutex-guarded (spec.md §9 design notes).
type SemanticIndex struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	items    map[string]*list.Element

	byVariable map[string][]*ir.DataflowEdge
}

// NewSemanticIndex builds the full variable->edges map eagerly (it's small: one entry per
// DFG edge) and layers a bounded LRU on top for composite query results.
func NewSemanticIndex(doc *ir.IRDocument, capacity int) *SemanticIndex {
	if capacity <= 0 {
		capacity = 1024
	}
	idx := &SemanticIndex{
		capacity:   capacity,
		ll:         list.New(),
		items:      map[string]*list.Element{},
		byVariable: map[string][]*ir.DataflowEdge{},
	}
	for _, e := range doc.DFG.Edges {
		idx.byVariable[e.FromVariableID] = append(idx.byVariable[e.FromVariableID], e)
	}
	return idx
}

// EdgesFrom returns the DFG edges originating at a variable id.
func (s *SemanticIndex) EdgesFrom(variableID string) []*ir.DataflowEdge {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*ir.DataflowEdge(nil), s.byVariable[variableID]...)
}

// GetOrCompute returns the cached result for key, or calls compute and caches it,
// evicting the least-recently-used entry when at capacity.
func (s *SemanticIndex) GetOrCompute(key string, compute func() []*ir.DataflowEdge) []*ir.DataflowEdge {
	s.mu.Lock()
	if el, ok := s.items[key]; ok {
		s.ll.MoveToFront(el)
		entry := el.Value.(*semanticEntry)
		s.mu.Unlock()
		return entry.edges
	}
	s.mu.Unlock()

	result := compute()

	s.mu.Lock()
	defer s.mu.Unlock()
	if el, ok := s.items[key]; ok {
		s.ll.MoveToFront(el)
		return el.Value.(*semanticEntry).edges
	}
	el := s.ll.PushFront(&semanticEntry{key: key, edges: result})
	s.items[key] = el
	if s.ll.Len() > s.capacity {
		oldest := s.ll.Back()
		if oldest != nil {
			s.ll.Remove(oldest)
			delete(s.items, oldest.Value.(*semanticEntry).key)
		}
	}
	return result
}

// Len reports the number of cached composite-query entries currently held.
func (s *SemanticIndex) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ll.Len()
}
