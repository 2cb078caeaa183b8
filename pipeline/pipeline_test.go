package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josongsong/semantica-codegraph/ir"
)

// TestBuildRepo_QuickModeRunsStructuralPassOnly drives the testdata/app fixture (a real,
// parseable Go module with three packages) through inspector.Factory only: ModeQuick must
// produce File/Function nodes for every package without ever invoking analyzer.Analyzer.
func TestBuildRepo_QuickModeRunsStructuralPassOnly(t *testing.T) {
	doc, errs := BuildRepo(context.Background(), "repo1", "snap1", "../inspector/golang/testdata", ir.ModeQuick)
	require.Empty(t, errs)
	require.NotNil(t, doc)

	var sawMain, sawInspect bool
	for _, n := range doc.Nodes {
		if n.Kind != ir.NodeFunction {
			continue
		}
		switch n.Name {
		case "main":
			sawMain = true
		case "Inspect":
			sawInspect = true
		}
	}
	assert.True(t, sawMain, "expected a Function node for main.go's main()")
	assert.True(t, sawInspect, "expected a Function node for util.go's Inspect()")
}

// TestBuildRepo_PRModeAddsCallEdges exercises the full parse -> analyze -> generate chain:
// PR mode additionally runs analyzer.Analyzer's scope/dataflow walk, so main's call to
// fmt.Println must surface as a CALLS edge to an external function node.
func TestBuildRepo_PRModeAddsCallEdges(t *testing.T) {
	doc, errs := BuildRepo(context.Background(), "repo1", "snap1", "../inspector/golang/testdata/app", ir.ModePR)
	require.Empty(t, errs)
	require.NotNil(t, doc)

	var sawExternalCall bool
	for _, e := range doc.Edges {
		if e.Kind != ir.EdgeCalls {
			continue
		}
		tgt := doc.NodeByID(e.TargetID)
		if tgt != nil && tgt.Attrs["is_external"] == true {
			sawExternalCall = true
		}
	}
	assert.True(t, sawExternalCall, "expected at least one CALLS edge to an external function node")
}
