package ir

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josongsong/semantica-codegraph/inspector/graph"
)

func TestGenerateRepo_MergesFragmentsAndCollectsPerFileErrors(t *testing.T) {
	b := NewBuilder("repo1", nil, nil)
	units := []FileUnit{
		{Language: "go", File: &graph.File{Name: "a.go", Path: "pkg/a.go", Functions: []*graph.Function{
			{Name: "A", Location: &graph.Location{Start: 1, End: 5}},
		}}},
		{Language: "go", File: &graph.File{Name: "b.go", Path: "pkg/b.go", Functions: []*graph.Function{
			{Name: "B", Location: &graph.Location{Start: 1, End: 5}},
		}}},
		{Language: "go", File: nil}, // triggers a per-file ParseError without aborting siblings
	}

	doc, failures := b.GenerateRepo(context.Background(), units, "snap1", ModeQuick)

	require.Len(t, failures, 1)
	var parseErr *ParseError
	assert.ErrorAs(t, failures[0], &parseErr)

	require.NotNil(t, doc.NodeByID(FileNodeID("pkg/a.go")))
	require.NotNil(t, doc.NodeByID(FileNodeID("pkg/b.go")))
}

func TestGenerateRepo_EmptyUnitsReturnsEmptyDoc(t *testing.T) {
	b := NewBuilder("repo1", nil, nil)
	doc, failures := b.GenerateRepo(context.Background(), nil, "snap1", ModeQuick)
	assert.Empty(t, failures)
	assert.Empty(t, doc.Nodes)
}
