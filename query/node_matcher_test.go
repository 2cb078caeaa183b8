package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josongsong/semantica-codegraph/query"
)

func TestNodeMatcher_VarMatchesByName(t *testing.T) {
	m := query.NewNodeMatcher(mustBuildIndex(flowFixtureDoc()))
	nodes := m.Match(query.Q.Var("x"))
	require.Len(t, nodes, 1)
	assert.Equal(t, "variable:pkg.fn.x", nodes[0].ID)
}

func TestNodeMatcher_SinkFallsBackToNameMatch(t *testing.T) {
	m := query.NewNodeMatcher(mustBuildIndex(flowFixtureDoc()))
	nodes := m.Match(query.Q.Sink("xss"))
	require.Len(t, nodes, 1)
	assert.Equal(t, "variable:pkg.fn.xss", nodes[0].ID)
}

func TestNodeMatcher_FuncDottedMatchesBySuffix(t *testing.T) {
	m := query.NewNodeMatcher(mustBuildIndex(flowFixtureDoc()))
	nodes := m.Match(query.Q.Func("pkg.fn"))
	require.Len(t, nodes, 1)
	assert.Equal(t, "function:pkg.fn", nodes[0].ID)
}

func TestNodeMatcher_UnionDedupsById(t *testing.T) {
	m := query.NewNodeMatcher(mustBuildIndex(flowFixtureDoc()))
	sel := query.Q.Var("x").Or(query.Q.Var("x")).Or(query.Q.Var("y"))
	nodes := m.Match(sel)
	assert.Len(t, nodes, 2)
}

func TestNodeMatcher_IntersectRequiresAllOperands(t *testing.T) {
	m := query.NewNodeMatcher(mustBuildIndex(flowFixtureDoc()))
	sel := query.Q.Var("x").And(query.Q.Var("y"))
	nodes := m.Match(sel)
	assert.Empty(t, nodes)
}

func TestNodeMatcher_AnyReturnsEverySyntheticAndRealNode(t *testing.T) {
	m := query.NewNodeMatcher(mustBuildIndex(flowFixtureDoc()))
	nodes := m.Match(query.Q.Any())
	assert.Len(t, nodes, 6)
}

func TestNodeMatcher_AliasOfWithNilIndexReturnsOriginalOnly(t *testing.T) {
	m := query.NewNodeMatcher(mustBuildIndex(flowFixtureDoc()))
	nodes := m.Match(query.Q.AliasOf("x"))
	require.Len(t, nodes, 1)
	assert.Equal(t, "variable:pkg.fn.x", nodes[0].ID)
}

type fakeAliasIndex struct{ aliases map[string][]string }

func (f fakeAliasIndex) AliasesOf(nodeID string) []string { return f.aliases[nodeID] }

func TestNodeMatcher_AliasOfConsultsAliasIndex(t *testing.T) {
	m := query.NewNodeMatcher(mustBuildIndex(flowFixtureDoc()))
	m.Aliases = fakeAliasIndex{aliases: map[string][]string{
		"variable:pkg.fn.x": {"variable:pkg.fn.clean"},
	}}
	nodes := m.Match(query.Q.AliasOf("x"))
	assert.Len(t, nodes, 2)
}
