package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josongsong/semantica-codegraph/analyzer/linage"
	"github.com/josongsong/semantica-codegraph/inspector/graph"
)

func TestGenerate_CallToSamePackageFunctionResolvesLocally(t *testing.T) {
	b := NewBuilder("repo1", nil, nil)
	file := &graph.File{Name: "a.go", Path: "pkg/a.go", Package: "pkg", Functions: []*graph.Function{
		{Name: "A"}, {Name: "B"},
	}}
	model := &linage.PackageModel{
		Path: "pkg/a.go",
		DataFlows: []*linage.DataFlowEdge{
			{Kind: linage.Call, Src: &linage.Identifier{Name: "A"}, Dst: &linage.Identifier{Name: "B", Package: "pkg/a.go"}},
		},
	}

	doc, err := b.Generate(file, nil, model, "snap1", ModePR, "go")
	require.NoError(t, err)

	tgtID := NodeID(NodeFunction, moduleFQN("pkg/a.go")+".B")
	node := doc.NodeByID(tgtID)
	require.NotNil(t, node)
	assert.Nil(t, node.Attrs["is_external"])
}

func TestGenerate_CallToForeignPackageCreatesExternalFunctionNode(t *testing.T) {
	b := NewBuilder("repo1", nil, nil)
	file := &graph.File{Name: "a.go", Path: "pkg/a.go", Package: "pkg", Functions: []*graph.Function{
		{Name: "A"},
	}}
	model := &linage.PackageModel{
		Path: "pkg/a.go",
		DataFlows: []*linage.DataFlowEdge{
			{Kind: linage.Call, Src: &linage.Identifier{Name: "A"}, Dst: &linage.Identifier{Name: "fmt.Println", Package: "fmt"}},
		},
	}

	doc, err := b.Generate(file, nil, model, "snap1", ModePR, "go")
	require.NoError(t, err)

	var external *Node
	for _, n := range doc.Nodes {
		if n.Name == "fmt.Println" {
			external = n
		}
	}
	require.NotNil(t, external)
	assert.Equal(t, true, external.Attrs["is_external"])
}
