package graphindex

import (
	"strconv"
	"sync"

	"github.com/josongsong/semantica-codegraph/ir"
)

// ReachabilityIndex answers single-direction reachability queries ("can A reach B
// following only these edge kinds") with a bounded BFS, caching per (start, kindset,
// maxDepth) key.
type ReachabilityIndex struct {
	mu    sync.Mutex
	edges *EdgeIndex
	cache map[string]map[string]bool
}

// NewReachabilityIndex wraps an EdgeIndex.
func NewReachabilityIndex(edges *EdgeIndex) *ReachabilityIndex {
	return &ReachabilityIndex{edges: edges, cache: map[string]map[string]bool{}}
}

func kindsetKey(start string, kinds []ir.EdgeKind) string {
	key := start + "|"
	for _, k := range kinds {
		key += string(k) + ","
	}
	return key
}

// Reachable returns every node id reachable from start following only edges whose kind is
// in kinds, up to maxDepth hops (0 means unbounded).
func (r *ReachabilityIndex) Reachable(start string, kinds []ir.EdgeKind, maxDepth int) map[string]bool {
	key := kindsetKey(start, kinds) + "#" + strconv.Itoa(maxDepth)
	r.mu.Lock()
	if cached, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return cached
	}
	r.mu.Unlock()

	allowed := map[ir.EdgeKind]bool{}
	for _, k := range kinds {
		allowed[k] = true
	}

	visited := map[string]bool{start: true}
	frontier := []string{start}
	depth := 0
	for len(frontier) > 0 && (maxDepth <= 0 || depth < maxDepth) {
		var next []string
		for _, cur := range frontier {
			for _, edge := range r.edges.Out(cur) {
				if !allowed[edge.Kind] {
					continue
				}
				if visited[edge.TargetID] {
					continue
				}
				visited[edge.TargetID] = true
				next = append(next, edge.TargetID)
			}
		}
		frontier = next
		depth++
	}

	r.mu.Lock()
	r.cache[key] = visited
	r.mu.Unlock()
	return visited
}

// BidirectionalReachabilityIndex meets in the middle from both start and target, halving
// the practical search radius for point-to-point reachability checks used by the query
// engine's path existence predicate (spec.md §4.3).
type BidirectionalReachabilityIndex struct {
	edges *EdgeIndex
}

// NewBidirectionalReachabilityIndex wraps an EdgeIndex.
func NewBidirectionalReachabilityIndex(edges *EdgeIndex) *BidirectionalReachabilityIndex {
	return &BidirectionalReachabilityIndex{edges: edges}
}

// Connected reports whether target is reachable from start via edges of the given kinds,
// within maxDepth hops total (split across both search directions).
func (b *BidirectionalReachabilityIndex) Connected(start, target string, kinds []ir.EdgeKind, maxDepth int) bool {
	if start == target {
		return true
	}
	allowed := map[ir.EdgeKind]bool{}
	for _, k := range kinds {
		allowed[k] = true
	}

	forwardVisited := map[string]int{start: 0}
	backwardVisited := map[string]int{target: 0}
	forwardFrontier := []string{start}
	backwardFrontier := []string{target}

	limit := maxDepth
	if limit <= 0 {
		limit = 64
	}

	for depth := 1; depth <= limit; depth++ {
		if len(forwardFrontier) == 0 && len(backwardFrontier) == 0 {
			return false
		}
		if len(forwardFrontier) <= len(backwardFrontier) || len(backwardFrontier) == 0 {
			var next []string
			for _, cur := range forwardFrontier {
				for _, edge := range b.edges.Out(cur) {
					if !allowed[edge.Kind] {
						continue
					}
					if _, ok := forwardVisited[edge.TargetID]; ok {
						continue
					}
					forwardVisited[edge.TargetID] = depth
					next = append(next, edge.TargetID)
					if _, hit := backwardVisited[edge.TargetID]; hit {
						return true
					}
				}
			}
			forwardFrontier = next
		} else {
			var next []string
			for _, cur := range backwardFrontier {
				for _, edge := range b.edges.In(cur) {
					if !allowed[edge.Kind] {
						continue
					}
					if _, ok := backwardVisited[edge.SourceID]; ok {
						continue
					}
					backwardVisited[edge.SourceID] = depth
					next = append(next, edge.SourceID)
					if _, hit := forwardVisited[edge.SourceID]; hit {
						return true
					}
				}
			}
			backwardFrontier = next
		}
	}
	return false
}
