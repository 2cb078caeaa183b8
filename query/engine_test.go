package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josongsong/semantica-codegraph/query"
)

func TestEngine_ExecuteFlowFindsPath(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	e := query.NewEngine(idx)

	flow := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss"))
	ps := e.ExecuteFlow(flow, query.ModePR, nil)

	require.Equal(t, query.StopComplete, ps.StopReason)
	assert.NotEmpty(t, ps.Paths)
}

func TestEngine_ExecuteFlowCachesResult(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	e := query.NewEngine(idx)

	flow := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss"))
	first := e.ExecuteFlow(flow, query.ModePR, nil)
	second := e.ExecuteFlow(flow, query.ModePR, nil)

	assert.Same(t, first, second)
}

func TestEngine_InvalidateCacheForcesRecompute(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	e := query.NewEngine(idx)

	flow := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss"))
	first := e.ExecuteFlow(flow, query.ModePR, nil)
	e.InvalidateCache()
	second := e.ExecuteFlow(flow, query.ModePR, nil)

	assert.NotSame(t, first, second)
	assert.Equal(t, first.StopReason, second.StopReason)
}

func TestEngine_VerifyQueryDetectsUncleansedPath(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	e := query.NewEngine(idx)

	flow := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss"))
	q := flow.ToQuery().CleansedByOf(query.Q.Var("clean"))

	verified := e.VerifyQuery(q, query.ModePR, nil)
	assert.False(t, verified.OK)
	assert.NotNil(t, verified.ViolationPath)
}

func TestEngine_VerifyQueryOKWhenEveryPathCleansedOrExcluded(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	e := query.NewEngine(idx)

	flow := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss"))
	q := flow.ToQuery().CleansedByOf(query.Q.Var("clean")).ExcludingNodes("variable:pkg.fn.y")

	verified := e.VerifyQuery(q, query.ModePR, nil)
	assert.True(t, verified.OK)
}

func TestEngine_ExecuteFlowDegradesOnPanic(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	e := query.NewEngine(idx)

	flow := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss"))
	q := flow.ToQuery()
	q.Where(func(p *query.Path) bool { panic("boom") })

	ps := e.ExecuteQuery(q, query.ModePR, nil)
	assert.Equal(t, query.StopError, ps.StopReason)
	assert.NotEmpty(t, ps.Diagnostics)
}

func TestEngine_UnknownOverrideKeyIsLoggedNotRaised(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	e := query.NewEngine(idx)

	flow := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss"))
	assert.NotPanics(t, func() {
		e.ExecuteFlow(flow, query.ModePR, map[string]interface{}{"nonsense_key": 1})
	})
}
