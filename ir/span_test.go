package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpanPool_InternReusesEqualSpans(t *testing.T) {
	pool := NewSpanPool(16)

	s1, err := pool.Intern(Span{StartLine: 1, StartCol: 0, EndLine: 1, EndCol: 5})
	require.NoError(t, err)
	s2, err := pool.Intern(Span{StartLine: 1, StartCol: 0, EndLine: 1, EndCol: 5})
	require.NoError(t, err)

	assert.Same(t, s1, s2, "interning an equal span twice should return the same pointer")
	assert.Equal(t, 1, pool.Len())
}

func TestSpanPool_RejectsInvalidSpan(t *testing.T) {
	pool := NewSpanPool(16)
	_, err := pool.Intern(Span{StartLine: 5, EndLine: 1})
	assert.Error(t, err)
}

func TestSpanPool_EvictsWhenOverCapacity(t *testing.T) {
	pool := NewSpanPool(2)
	_, err := pool.Intern(Span{StartLine: 1, EndLine: 1})
	require.NoError(t, err)
	_, err = pool.Intern(Span{StartLine: 2, EndLine: 2})
	require.NoError(t, err)
	_, err = pool.Intern(Span{StartLine: 3, EndLine: 3})
	require.NoError(t, err)

	assert.LessOrEqual(t, pool.Len(), 2, "pool must stay bounded at its configured capacity")
}
