package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josongsong/semantica-codegraph/query"
)

func TestStrategySelector_SelectsByDepth(t *testing.T) {
	var s query.StrategySelector
	shallow := query.OneHop(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	assert.Equal(t, query.StrategyBreadthFirst, s.Select(shallow, false))

	deep := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	deep.MaxDepth = 8
	assert.Equal(t, query.StrategyDepthFirst, s.Select(deep, false))

	mid := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	mid.MaxDepth = 4
	assert.Equal(t, query.StrategyCostBased, s.Select(mid, false))

	assert.Equal(t, query.StrategyLazy, s.Select(mid, true))
}

func TestQueryExecutor_AnyPathFindsPath(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	matcher := query.NewNodeMatcher(idx)
	resolver := query.NewEdgeResolver(idx)
	x := query.NewQueryExecutor(idx, matcher, resolver, nil)

	q := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	ps := x.AnyPath(q, query.PresetFor(query.ModePR))

	require.Equal(t, query.StopComplete, ps.StopReason)
	assert.NotEmpty(t, ps.Paths)
}

func TestQueryExecutor_AnyPathAppliesExcluding(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	matcher := query.NewNodeMatcher(idx)
	resolver := query.NewEdgeResolver(idx)
	x := query.NewQueryExecutor(idx, matcher, resolver, nil)

	q := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	q.ExcludingNodes("variable:pkg.fn.y")
	ps := x.AnyPath(q, query.PresetFor(query.ModePR))

	for _, p := range ps.Paths {
		assert.NotContains(t, p.NodeIDs, "variable:pkg.fn.y")
	}
}

// TestQueryExecutor_AnyPathAppliesCleansedBy verifies spec.md §8 scenario 2's contrast with
// excluding: a path through a cleansed_by sanitizer is retained in .any_path()'s result, just
// flagged IsSanitized, rather than dropped.
func TestQueryExecutor_AnyPathAppliesCleansedBy(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	matcher := query.NewNodeMatcher(idx)
	resolver := query.NewEdgeResolver(idx)
	x := query.NewQueryExecutor(idx, matcher, resolver, nil)

	q := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	q.CleansedByOf(query.Q.Var("clean"))
	ps := x.AnyPath(q, query.PresetFor(query.ModePR))

	var sawSanitizedPath bool
	for _, p := range ps.Paths {
		if containsNodeID(p.NodeIDs, "variable:pkg.fn.clean") {
			sawSanitizedPath = true
			assert.True(t, p.IsSanitized)
		}
	}
	assert.True(t, sawSanitizedPath, "expected the x->clean->xss path to still be present, flagged sanitized")
}

func containsNodeID(ids []string, want string) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}

func TestQueryExecutor_AnyPathAppliesWherePredicate(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	matcher := query.NewNodeMatcher(idx)
	resolver := query.NewEdgeResolver(idx)
	x := query.NewQueryExecutor(idx, matcher, resolver, nil)

	q := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	q.Where(func(p *query.Path) bool { return len(p.NodeIDs) > 10 }) // impossible in this fixture
	ps := x.AnyPath(q, query.PresetFor(query.ModePR))

	assert.Empty(t, ps.Paths)
	// The traversal itself completed exhaustively; the where predicate emptying the result
	// afterward doesn't turn that into NoMatch (spec.md §8 scenario 5: NoMatch is reserved
	// for an empty source/target selector set, not for a constraint filtering out matches).
	assert.Equal(t, query.StopComplete, ps.StopReason)
}

func TestQueryExecutor_AllPaths_OKWhenEveryPathExcludedOrCleansed(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	matcher := query.NewNodeMatcher(idx)
	resolver := query.NewEdgeResolver(idx)
	x := query.NewQueryExecutor(idx, matcher, resolver, nil)

	q := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	q.ExcludingNodes("variable:pkg.fn.y") // drop the x->y->xss path from consideration entirely
	q.CleansedByOf(query.Q.Var("clean"))  // the remaining x->clean->xss path is sanitized
	result := x.AllPaths(q, query.PresetFor(query.ModePR))

	assert.True(t, result.OK)
}

func TestQueryExecutor_AllPaths_ViolatesWhenUncleansedPathSurvives(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	matcher := query.NewNodeMatcher(idx)
	resolver := query.NewEdgeResolver(idx)
	x := query.NewQueryExecutor(idx, matcher, resolver, nil)

	q := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	q.CleansedByOf(query.Q.Var("clean"))
	result := x.AllPaths(q, query.PresetFor(query.ModePR))

	assert.False(t, result.OK)
	assert.NotNil(t, result.ViolationPath)
}
