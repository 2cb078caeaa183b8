package graphindex

import (
	"fmt"

	"github.com/josongsong/semantica-codegraph/ir"
)

// GraphIndex is the unified facade spec.md §4.2 describes: a single read path over an
// IRDocument's nodes and edges, fronting NodeIndex/EdgeIndex/SemanticIndex/
// ReachabilityIndex/EdgeBloomFilter so the query engine never touches IRDocument directly.
// It generalises analyzer.buildIRGraph's pattern of deriving a flattened IRGraph
// (IRNode/IREdge) from a walked PackageModel, but keeps the richer typed IR instead of
// collapsing everything into map[string]interface{} properties.
type GraphIndex struct {
	doc    *ir.IRDocument
	Nodes  *NodeIndex
	Edges  *EdgeIndex
	Semantic *SemanticIndex
	Reach  *ReachabilityIndex
	BiReach *BidirectionalReachabilityIndex
	Bloom  *EdgeBloomFilter
}

// Option configures Build.
type Option func(*buildConfig)

type buildConfig struct {
	semanticCapacity int
	bloomFalsePositive float64
}

// WithSemanticCacheCapacity bounds the SemanticIndex's composite-query LRU.
func WithSemanticCacheCapacity(n int) Option {
	return func(c *buildConfig) { c.semanticCapacity = n }
}

// WithBloomFalsePositiveRate tunes the EdgeBloomFilter's target false-positive rate.
func WithBloomFalsePositiveRate(p float64) Option {
	return func(c *buildConfig) { c.bloomFalsePositive = p }
}

// Build assembles a GraphIndex from a completed IRDocument. This is the boundary between
// the IR construction pipeline (ir.Builder) and the query engine (query package).
func Build(doc *ir.IRDocument, opts ...Option) (*GraphIndex, error) {
	if doc == nil {
		return nil, fmt.Errorf("graphindex: nil document")
	}
	cfg := &buildConfig{semanticCapacity: 4096, bloomFalsePositive: 0.01}
	for _, opt := range opts {
		opt(cfg)
	}

	nodes := NewNodeIndex(doc)
	edges := NewEdgeIndex(doc, nodes)
	semantic := NewSemanticIndex(doc, cfg.semanticCapacity)
	reach := NewReachabilityIndex(edges)
	biReach := NewBidirectionalReachabilityIndex(edges)

	bloom := NewEdgeBloomFilter(len(doc.Edges), cfg.bloomFalsePositive)
	for _, e := range doc.Edges {
		bloom.Add(string(e.Kind), e.SourceID, e.TargetID)
	}

	// Ensure every edge endpoint resolves to a node, synthesising placeholders for
	// external functions, heap elements, and callee-target bridges the builder referenced
	// by id without materialising a structural Node (spec.md §4.2).
	for _, e := range doc.Edges {
		if _, ok := nodes.Get(e.SourceID); !ok {
			nodes.EnsureSynthetic(e.SourceID, inferSyntheticKind(e.SourceID), e.SourceID)
		}
		if _, ok := nodes.Get(e.TargetID); !ok {
			nodes.EnsureSynthetic(e.TargetID, inferSyntheticKind(e.TargetID), e.TargetID)
		}
	}

	return &GraphIndex{
		doc: doc, Nodes: nodes, Edges: edges, Semantic: semantic,
		Reach: reach, BiReach: biReach, Bloom: bloom,
	}, nil
}

func inferSyntheticKind(id string) ir.NodeKind {
	switch {
	case len(id) > 9 && id[:9] == "function:":
		return ir.NodeExternal
	case len(id) > 7 && id[:7] == "callee:":
		return ir.NodeCalleeTarget
	default:
		return ir.NodeHeapElem
	}
}

// Document returns the underlying IRDocument the index was built from.
func (g *GraphIndex) Document() *ir.IRDocument { return g.doc }
