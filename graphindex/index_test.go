package graphindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josongsong/semantica-codegraph/graphindex"
	"github.com/josongsong/semantica-codegraph/ir"
)

func fixtureDoc() *ir.IRDocument {
	doc := ir.NewIRDocument("repo1", "snap1")
	doc.Nodes = []*ir.Node{
		{ID: "file:a.go", Kind: ir.NodeFile, Name: "a.go"},
		{ID: "function:pkg.A", Kind: ir.NodeFunction, Name: "A", ParentID: "file:a.go"},
		{ID: "function:pkg.B", Kind: ir.NodeFunction, Name: "B", ParentID: "file:a.go"},
		{ID: "method:pkg.Sub.Override", Kind: ir.NodeMethod, Name: "Override"},
		{ID: "method:pkg.Base.Override", Kind: ir.NodeMethod, Name: "Override"},
	}
	doc.Edges = []*ir.Edge{
		{ID: ir.EdgeID(ir.EdgeContains, "file:a.go", "function:pkg.A", 0), Kind: ir.EdgeContains, SourceID: "file:a.go", TargetID: "function:pkg.A"},
		{ID: ir.EdgeID(ir.EdgeContains, "file:a.go", "function:pkg.B", 0), Kind: ir.EdgeContains, SourceID: "file:a.go", TargetID: "function:pkg.B"},
		{ID: ir.EdgeID(ir.EdgeCalls, "function:pkg.A", "function:pkg.B", 0), Kind: ir.EdgeCalls, SourceID: "function:pkg.A", TargetID: "function:pkg.B"},
		{ID: ir.EdgeID(ir.EdgeCalls, "function:pkg.A", "function:external.fmt.Println", 0), Kind: ir.EdgeCalls, SourceID: "function:pkg.A", TargetID: "function:external.fmt.Println"},
		{ID: ir.EdgeID(ir.EdgeOverrides, "method:pkg.Sub.Override", "method:pkg.Base.Override", 0), Kind: ir.EdgeOverrides, SourceID: "method:pkg.Sub.Override", TargetID: "method:pkg.Base.Override"},
	}
	return doc
}

func TestBuild_SynthesizesExternalNode(t *testing.T) {
	idx, err := graphindex.Build(fixtureDoc())
	require.NoError(t, err)

	node, ok := idx.Nodes.Get("function:external.fmt.Println")
	require.True(t, ok, "external call target must resolve to a synthesized node")
	assert.Equal(t, ir.NodeExternal, node.Kind)
	assert.True(t, node.Synthetic)
}

func TestEdgeIndex_ContainsClosure(t *testing.T) {
	idx, err := graphindex.Build(fixtureDoc())
	require.NoError(t, err)

	closure := idx.Edges.ContainsClosure("file:a.go")
	assert.ElementsMatch(t, []string{"function:pkg.A", "function:pkg.B"}, closure)
}

func TestEdgeIndex_OverrideChain(t *testing.T) {
	idx, err := graphindex.Build(fixtureDoc())
	require.NoError(t, err)

	chain := idx.Edges.OverrideChain("method:pkg.Sub.Override")
	assert.Equal(t, []string{"method:pkg.Base.Override"}, chain)
}

func TestEdgeIndex_ResolveCallExcludesExternal(t *testing.T) {
	idx, err := graphindex.Build(fixtureDoc())
	require.NoError(t, err)

	resolved := idx.Edges.ResolveCall("function:pkg.A")
	require.Len(t, resolved, 1)
	assert.Equal(t, "function:pkg.B", resolved[0].TargetID)
}

func TestReachabilityIndex_Reachable(t *testing.T) {
	idx, err := graphindex.Build(fixtureDoc())
	require.NoError(t, err)

	reached := idx.Reach.Reachable("file:a.go", []ir.EdgeKind{ir.EdgeContains}, 0)
	assert.True(t, reached["function:pkg.A"])
	assert.True(t, reached["function:pkg.B"])
	assert.False(t, reached["method:pkg.Sub.Override"])
}

func TestBidirectionalReachability_Connected(t *testing.T) {
	idx, err := graphindex.Build(fixtureDoc())
	require.NoError(t, err)

	assert.True(t, idx.BiReach.Connected("function:pkg.A", "function:pkg.B", []ir.EdgeKind{ir.EdgeCalls}, 0))
	assert.False(t, idx.BiReach.Connected("function:pkg.B", "method:pkg.Base.Override", []ir.EdgeKind{ir.EdgeCalls}, 0))
}

func TestEdgeBloomFilter_NoFalseNegatives(t *testing.T) {
	bloom := graphindex.NewEdgeBloomFilter(100, 0.01)
	bloom.Add("CALLS", "a", "b")
	assert.True(t, bloom.MaybeHas("CALLS", "a", "b"))
	assert.False(t, bloom.MaybeHas("CALLS", "x", "y"))
}
