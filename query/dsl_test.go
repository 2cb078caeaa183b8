package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/josongsong/semantica-codegraph/query"
)

func TestNodeSelector_OrFlattensNestedUnions(t *testing.T) {
	sel := query.Q.Var("a").Or(query.Q.Var("b")).Or(query.Q.Var("c"))
	assert.Equal(t, query.SelUnion, sel.Kind)
	assert.Len(t, sel.Operands, 3)
}

func TestNodeSelector_AndFlattensNestedIntersections(t *testing.T) {
	sel := query.Q.Var("a").And(query.Q.Var("b")).And(query.Q.Var("c"))
	assert.Equal(t, query.SelIntersect, sel.Kind)
	assert.Len(t, sel.Operands, 3)
}

func TestFlowExpr_ToQueryHasNoConstraints(t *testing.T) {
	expr := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss"))
	q := expr.ToQuery()
	assert.Equal(t, expr, q.Flow)
	assert.Empty(t, q.Wheres)
	assert.NotNil(t, q.Excluding)
}

func TestPathQuery_FluentBuilderChains(t *testing.T) {
	expr := query.OneHop(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss"))
	q := expr.ToQuery().
		LimitPathsTo(5).
		LimitNodesTo(500).
		TimeoutAfter(2000).
		ExcludingNodes("n1", "n2").
		ContextSensitive(2, query.ContextSummary).
		AliasSensitive(query.AliasMay)

	assert.Equal(t, 5, q.LimitPaths)
	assert.Equal(t, 500, q.LimitNodes)
	assert.Equal(t, 2000, q.TimeoutMS)
	assert.True(t, q.Excluding["n1"])
	assert.True(t, q.Excluding["n2"])
	assert.Equal(t, 2, q.ContextK)
	assert.Equal(t, query.AliasMay, q.AliasPrecision)
}

func TestEdgeSelector_BackwardTogglesFlag(t *testing.T) {
	sel := query.E.DFG().Backward()
	assert.True(t, sel.IsBackward)
	sel = sel.Backward()
	assert.False(t, sel.IsBackward)
}

func TestEdgeSelector_DepthDefaultsMinToOne(t *testing.T) {
	sel := query.E.CALL().Depth(5)
	assert.Equal(t, 5, sel.MaxDepth)
	assert.Equal(t, 1, sel.MinDepth)
}
