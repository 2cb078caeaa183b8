package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josongsong/semantica-codegraph/query"
)

func TestResultCache_PutThenGet(t *testing.T) {
	c := query.NewResultCache()
	ps := &query.PathSet{StopReason: query.StopComplete, Paths: []*query.Path{{NodeIDs: []string{"a", "b"}}}}
	c.Put("key1", ps)

	got, ok := c.Get("key1")
	require.True(t, ok)
	assert.Same(t, ps, got)
}

func TestResultCache_MissReturnsFalse(t *testing.T) {
	c := query.NewResultCache()
	_, ok := c.Get("absent")
	assert.False(t, ok)
}

func TestResultCache_InvalidateClearsAllEntries(t *testing.T) {
	c := query.NewResultCache()
	c.Put("key1", &query.PathSet{})
	c.Invalidate()
	assert.Equal(t, 0, c.Len())
	_, ok := c.Get("key1")
	assert.False(t, ok)
}

func TestCacheKey_SameQueryProducesSameKey(t *testing.T) {
	q1 := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	q2 := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	assert.Equal(t, query.CacheKey(q1, query.ModePR), query.CacheKey(q2, query.ModePR))
}

func TestCacheKey_UnionOperandOrderDoesNotAffectKey(t *testing.T) {
	a := query.Q.Var("x").Or(query.Q.Var("y"))
	b := query.Q.Var("y").Or(query.Q.Var("x"))
	q1 := query.Forward(a, query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	q2 := query.Forward(b, query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	assert.Equal(t, query.CacheKey(q1, query.ModePR), query.CacheKey(q2, query.ModePR))
}

func TestCacheKey_DifferentModeProducesDifferentKey(t *testing.T) {
	q := query.Forward(query.Q.Var("x"), query.E.DFG(), query.Q.Sink("xss")).ToQuery()
	assert.NotEqual(t, query.CacheKey(q, query.ModePR), query.CacheKey(q, query.ModeFull))
}

func TestResultCache_EvictsOldestWhenOverCountBudget(t *testing.T) {
	c := query.NewResultCache()
	for i := 0; i < 600; i++ {
		c.Put(string(rune('a'+i%26))+string(rune(i)), &query.PathSet{})
	}
	assert.LessOrEqual(t, c.Len(), 500)
}
