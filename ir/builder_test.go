package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josongsong/semantica-codegraph/inspector/graph"
)

func TestGenerate_NilFileReturnsParseError(t *testing.T) {
	b := NewBuilder("repo1", nil, nil)
	_, err := b.Generate(nil, nil, nil, "snap1", ModeQuick, "go")
	require.Error(t, err)
	var parseErr *ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestGenerate_BuildsFileAndFunctionNodes(t *testing.T) {
	b := NewBuilder("repo1", nil, nil)
	file := &graph.File{
		Name:    "main.go",
		Path:    "cmd/app/main.go",
		Package: "main",
		Imports: []graph.Import{{Name: "", Path: "fmt"}},
		Functions: []*graph.Function{
			{Name: "Run", IsExported: true, Location: &graph.Location{Start: 10, End: 40}},
		},
	}

	doc, err := b.Generate(file, nil, nil, "snap1", ModeQuick, "go")
	require.NoError(t, err)

	fileNode := doc.NodeByID(FileNodeID("cmd/app/main.go"))
	require.NotNil(t, fileNode)
	assert.Equal(t, NodeFile, fileNode.Kind)

	fnNode := doc.NodeByID(NodeID(NodeFunction, moduleFQN("cmd/app/main.go")+".Run"))
	require.NotNil(t, fnNode)
	assert.Equal(t, "Run", fnNode.Name)
	assert.NotNil(t, fnNode.Span)

	var sawImport, sawContainsRun bool
	for _, e := range doc.Edges {
		if e.Kind == EdgeImports {
			sawImport = true
		}
		if e.Kind == EdgeContains && e.TargetID == fnNode.ID {
			sawContainsRun = true
		}
	}
	assert.True(t, sawImport)
	assert.True(t, sawContainsRun)

	var sawDefOccurrence bool
	for _, occ := range doc.Occurrences {
		if occ.SymbolID == fnNode.ID && occ.Roles.Has(RoleDefinition) {
			sawDefOccurrence = true
		}
	}
	assert.True(t, sawDefOccurrence)
}

func TestGenerate_WildcardImportUsesStarAlias(t *testing.T) {
	b := NewBuilder("repo1", nil, nil)
	file := &graph.File{
		Name:    "main.go",
		Path:    "main.go",
		Package: "main",
		Imports: []graph.Import{{Name: "", Path: "some/pkg"}},
	}
	doc, err := b.Generate(file, nil, nil, "snap1", ModeQuick, "go")
	require.NoError(t, err)

	var found bool
	for _, n := range doc.Nodes {
		if n.Kind == NodeImport {
			found = true
			assert.Equal(t, "*", n.Name)
		}
	}
	assert.True(t, found)
}

func TestGenerate_OverridesEdgeFromExtends(t *testing.T) {
	b := NewBuilder("repo1", nil, nil)
	file := &graph.File{
		Name: "shapes.go",
		Path: "shapes.go",
		Types: []*graph.Type{
			{
				Name:    "Square",
				Extends: []string{"Shape"},
				Methods: []*graph.Function{{Name: "Area"}},
			},
		},
	}
	doc, err := b.Generate(file, nil, nil, "snap1", ModeQuick, "go")
	require.NoError(t, err)

	var sawOverride bool
	for _, e := range doc.Edges {
		if e.Kind == EdgeOverrides {
			sawOverride = true
		}
	}
	assert.True(t, sawOverride)
}

func TestGenerate_SemanticLayersSkippedInQuickMode(t *testing.T) {
	assert.False(t, ModeQuick.wantsSemanticLayers())
	assert.True(t, ModePR.wantsSemanticLayers())
	assert.True(t, ModeFull.wantsSemanticLayers())
}
