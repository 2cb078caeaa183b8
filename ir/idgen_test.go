package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNodeID(t *testing.T) {
	assert.Equal(t, "function:pkg.Foo", NodeID(NodeFunction, "pkg.Foo"))
	assert.Equal(t, "class:pkg.Bar", NodeID(NodeClass, "pkg.Bar"))
}

func TestFileNodeID(t *testing.T) {
	assert.Equal(t, "file:a/b.go", FileNodeID("a/b.go"))
}

func TestExternalFuncNodeID_CachedPerRepo(t *testing.T) {
	gen := NewIDGenerator()

	id1 := gen.ExternalFuncNodeID("repoA", "strings.Join")
	id2 := gen.ExternalFuncNodeID("repoA", "strings.Join")
	assert.Equal(t, id1, id2, "same repo and name must resolve to the same id")

	id3 := gen.ExternalFuncNodeID("repoB", "strings.Join")
	assert.Equal(t, id1, id3, "external ids are not repo-qualified in their text, only cached per repo")
}

func TestAnonNodeID_Deterministic(t *testing.T) {
	gen := NewIDGenerator()
	id1 := gen.AnonNodeID(NodeLambda, "(int)", "Comparator", []string{"x", "y"}, "function:pkg.Sort")
	id2 := gen.AnonNodeID(NodeLambda, "(int)", "Comparator", []string{"x", "y"}, "function:pkg.Sort")
	assert.Equal(t, id1, id2)

	id3 := gen.AnonNodeID(NodeLambda, "(string)", "Comparator", []string{"x", "y"}, "function:pkg.Sort")
	assert.NotEqual(t, id1, id3)
}

func TestFuzzyMatchScore(t *testing.T) {
	assert.Equal(t, 1.0, FuzzyMatchScore(true, true, true, true))
	assert.Equal(t, 0.0, FuzzyMatchScore(false, false, false, false))
	assert.Equal(t, 0.75, FuzzyMatchScore(true, true, true, false))
	assert.True(t, FuzzyMatchScore(true, true, false, false) < 0.7, "below-threshold scores should not trigger migration")
	assert.True(t, FuzzyMatchScore(true, true, true, false) >= 0.7, "at-or-above-threshold scores should trigger migration")
}

func TestMigrateAnonAndResolve(t *testing.T) {
	gen := NewIDGenerator()
	_, ok := gen.ResolveAnon("nope")
	assert.False(t, ok)

	gen.MigrateAnon("key1", "lambda:anon.deadbeef")
	id, ok := gen.ResolveAnon("key1")
	assert.True(t, ok)
	assert.Equal(t, "lambda:anon.deadbeef", id)
}

func TestEdgeID_IncludesOccurrence(t *testing.T) {
	id1 := EdgeID(EdgeCalls, "function:a", "function:b", 0)
	id2 := EdgeID(EdgeCalls, "function:a", "function:b", 1)
	assert.NotEqual(t, id1, id2)
}
