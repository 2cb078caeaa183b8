package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/josongsong/semantica-codegraph/ir"
	"github.com/josongsong/semantica-codegraph/query"
)

func TestEdgeResolver_ForwardResolvesOutgoingDFG(t *testing.T) {
	r := query.NewEdgeResolver(mustBuildIndex(flowFixtureDoc()))
	edges := r.Resolve("variable:pkg.fn.x", query.E.DFG(), false)
	assert.Len(t, edges, 3) // x->y, x->other, x->clean
}

func TestEdgeResolver_BackwardFlipsDirection(t *testing.T) {
	r := query.NewEdgeResolver(mustBuildIndex(flowFixtureDoc()))
	edges := r.Resolve("variable:pkg.fn.xss", query.E.DFG(), true)
	assert.Len(t, edges, 2) // y->xss and clean->xss
}

func TestEdgeResolver_BackwardSelectorXORsWithRequestDirection(t *testing.T) {
	r := query.NewEdgeResolver(mustBuildIndex(flowFixtureDoc()))
	edgesA := r.Resolve("variable:pkg.fn.xss", query.E.DFG().Backward(), false)
	edgesB := r.Resolve("variable:pkg.fn.xss", query.E.DFG(), true)
	assert.ElementsMatch(t, idsOf(edgesA), idsOf(edgesB))
}

func TestEdgeResolver_ALLIncludesDFG(t *testing.T) {
	r := query.NewEdgeResolver(mustBuildIndex(flowFixtureDoc()))
	edges := r.Resolve("variable:pkg.fn.x", query.E.ALL(), false)
	assert.GreaterOrEqual(t, len(edges), 3)
}

func TestNeighborOf_ReturnsTargetForwardSourceBackward(t *testing.T) {
	r := query.NewEdgeResolver(mustBuildIndex(flowFixtureDoc()))
	edges := r.Resolve("variable:pkg.fn.x", query.E.DFG(), false)
	for _, e := range edges {
		assert.Equal(t, e.TargetID, query.NeighborOf(e, false))
		assert.Equal(t, e.SourceID, query.NeighborOf(e, true))
	}
}

func idsOf(edges []*ir.Edge) []string {
	out := make([]string, len(edges))
	for i, e := range edges {
		out[i] = e.ID
	}
	return out
}
