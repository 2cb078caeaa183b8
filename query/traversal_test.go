package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josongsong/semantica-codegraph/query"
)

func TestTraversal_Run_FindsForwardPath(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	m := query.NewNodeMatcher(idx)
	tr := query.NewTraversal(idx, query.NewEdgeResolver(idx))

	q := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	ps := tr.Run(m, q, false)

	require.Equal(t, query.StopComplete, ps.StopReason)
	require.NotEmpty(t, ps.Paths)
	for _, p := range ps.Paths {
		assert.Equal(t, "variable:pkg.fn.x", p.NodeIDs[0])
		assert.Equal(t, "variable:pkg.fn.xss", p.NodeIDs[len(p.NodeIDs)-1])
	}
}

func TestTraversal_Run_OneHopFindsNoPathToXss(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	m := query.NewNodeMatcher(idx)
	tr := query.NewTraversal(idx, query.NewEdgeResolver(idx))

	q := query.OneHop(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	ps := tr.Run(m, q, false)

	assert.Equal(t, query.StopComplete, ps.StopReason)
	assert.Empty(t, ps.Paths)
}

func TestTraversal_Run_NoMatchWhenSourceAbsent(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	m := query.NewNodeMatcher(idx)
	tr := query.NewTraversal(idx, query.NewEdgeResolver(idx))

	q := query.Forward(query.Q.Var("nonexistent"), query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	ps := tr.Run(m, q, false)

	assert.Equal(t, query.StopNoMatch, ps.StopReason)
}

func TestTraversal_Run_BackwardFlowReversesPathOrder(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	m := query.NewNodeMatcher(idx)
	tr := query.NewTraversal(idx, query.NewEdgeResolver(idx))

	q := query.BackwardFlow(query.Q.Sink("xss"), query.E.DFG(), query.Q.Var("x")).ToQuery()
	ps := tr.Run(m, q, false)

	require.NotEmpty(t, ps.Paths)
	for _, p := range ps.Paths {
		assert.Equal(t, "variable:pkg.fn.x", p.NodeIDs[0])
		assert.Equal(t, "variable:pkg.fn.xss", p.NodeIDs[len(p.NodeIDs)-1])
	}
}

func TestTraversal_Run_PathLimitStopsEarly(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	m := query.NewNodeMatcher(idx)
	tr := query.NewTraversal(idx, query.NewEdgeResolver(idx))

	q := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	q.LimitPathsTo(1)
	ps := tr.Run(m, q, false)

	assert.Equal(t, query.StopPathLimit, ps.StopReason)
	assert.Len(t, ps.Paths, 1)
}

func TestTraversal_Run_DFSFindsSamePathSetAsBFS(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	m := query.NewNodeMatcher(idx)
	tr := query.NewTraversal(idx, query.NewEdgeResolver(idx))

	q := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	bfs := tr.Run(m, q, false)

	q2 := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	dfs := tr.Run(m, q2, true)

	assert.Equal(t, len(bfs.Paths), len(dfs.Paths))
}
