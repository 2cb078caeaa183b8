package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josongsong/semantica-codegraph/inspector/graph"
)

func TestGenerateIncremental_ReusesPreviousFragmentWhenContentUnchanged(t *testing.T) {
	b := NewBuilder("repo1", nil, nil)
	file := &graph.File{Name: "a.go", Path: "pkg/a.go", Functions: []*graph.Function{
		{Name: "A", Location: &graph.Location{Start: 1, End: 5}},
	}}

	prev, err := b.Generate(file, nil, nil, "snap1", ModeQuick, "go")
	require.NoError(t, err)

	next, err := b.GenerateIncremental(file, nil, nil, "snap2", ModeQuick, "go", prev, "same text", "same text")
	require.NoError(t, err)

	assert.Same(t, prev.NodeByID(FileNodeID("pkg/a.go")), next.NodeByID(FileNodeID("pkg/a.go")),
		"unchanged content should reuse the previous fragment's nodes, not rebuild them")
	assert.Equal(t, "snap2", next.SnapshotID, "the reused fragment still reflects the new snapshot id")
}

func TestGenerateIncremental_RegeneratesWhenContentChanged(t *testing.T) {
	b := NewBuilder("repo1", nil, nil)
	file := &graph.File{Name: "a.go", Path: "pkg/a.go", Functions: []*graph.Function{
		{Name: "A", Location: &graph.Location{Start: 1, End: 5}},
		{Name: "B", Location: &graph.Location{Start: 7, End: 9}},
	}}

	prev, err := b.Generate(file, nil, nil, "snap1", ModeQuick, "go")
	require.NoError(t, err)

	next, err := b.GenerateIncremental(file, nil, nil, "snap2", ModeQuick, "go", prev, "old text", "new text")
	require.NoError(t, err)

	require.NotNil(t, next.NodeByID(NodeID(NodeFunction, moduleFQN("pkg/a.go")+".B")),
		"a changed file regenerates its full fragment rather than reusing stale nodes")
}
