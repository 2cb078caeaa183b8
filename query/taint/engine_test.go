package taint_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josongsong/semantica-codegraph/graphindex"
	"github.com/josongsong/semantica-codegraph/ir"
	"github.com/josongsong/semantica-codegraph/query"
	"github.com/josongsong/semantica-codegraph/query/taint"
)

// flowFixtureDoc mirrors the query package's fixture: x -DFG-> y -DFG-> xss, plus an
// x -DFG-> clean -DFG-> xss branch sanitized by "clean".
func flowFixtureDoc() *ir.IRDocument {
	doc := ir.NewIRDocument("repo1", "snap1")
	doc.Nodes = []*ir.Node{
		{ID: "variable:pkg.fn.x", Kind: ir.NodeVariable, Name: "x", ParentID: "function:pkg.fn"},
		{ID: "variable:pkg.fn.y", Kind: ir.NodeVariable, Name: "y", ParentID: "function:pkg.fn"},
		{ID: "variable:pkg.fn.xss", Kind: ir.NodeVariable, Name: "xss", ParentID: "function:pkg.fn"},
		{ID: "variable:pkg.fn.clean", Kind: ir.NodeVariable, Name: "clean", ParentID: "function:pkg.fn"},
		{ID: "function:pkg.fn", Kind: ir.NodeFunction, Name: "fn", FQN: "pkg.fn"},
	}
	doc.Edges = []*ir.Edge{
		{ID: ir.EdgeID(ir.EdgeDFG, "variable:pkg.fn.x", "variable:pkg.fn.y", 0), Kind: ir.EdgeDFG, SourceID: "variable:pkg.fn.x", TargetID: "variable:pkg.fn.y"},
		{ID: ir.EdgeID(ir.EdgeDFG, "variable:pkg.fn.y", "variable:pkg.fn.xss", 0), Kind: ir.EdgeDFG, SourceID: "variable:pkg.fn.y", TargetID: "variable:pkg.fn.xss"},
		{ID: ir.EdgeID(ir.EdgeDFG, "variable:pkg.fn.x", "variable:pkg.fn.clean", 0), Kind: ir.EdgeDFG, SourceID: "variable:pkg.fn.x", TargetID: "variable:pkg.fn.clean"},
		{ID: ir.EdgeID(ir.EdgeDFG, "variable:pkg.fn.clean", "variable:pkg.fn.xss", 0), Kind: ir.EdgeDFG, SourceID: "variable:pkg.fn.clean", TargetID: "variable:pkg.fn.xss"},
	}
	return doc
}

func mustBuildIndex(doc *ir.IRDocument) *graphindex.GraphIndex {
	idx, err := graphindex.Build(doc)
	if err != nil {
		panic(err)
	}
	return idx
}

const flowPolicyYAML = `
atoms:
  - id: src.x
    kind: source
    category: user_input
    names: ["x"]
  - id: sink.xss
    kind: sink
    category: xss
    names: ["xss"]
  - id: sanitize.clean
    kind: sanitizer
    category: xss
    names: ["clean"]
`

func TestTaintEngine_ScanFindsEveryAtomKind(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	p, err := taint.LoadPolicy(strings.NewReader(flowPolicyYAML))
	require.NoError(t, err)
	e := taint.NewTaintEngine(idx, taint.Compile(p))

	atoms := e.Scan()
	assert.Len(t, atoms.Sources, 1)
	assert.Len(t, atoms.Sinks, 1)
	assert.Len(t, atoms.Sanitizers, 1)
}

func TestTaintEngine_FindFlowsReturnsBothPaths(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	p, err := taint.LoadPolicy(strings.NewReader(flowPolicyYAML))
	require.NoError(t, err)
	e := taint.NewTaintEngine(idx, taint.Compile(p))

	atoms := e.Scan()
	flows := e.FindFlows(atoms, query.ModePR)
	require.NotEmpty(t, flows)

	var sawSanitized bool
	for _, f := range flows {
		if len(f.PassedThrough) > 0 {
			sawSanitized = true
		}
	}
	assert.True(t, sawSanitized)
}

func TestVulnerabilities_ExcludesSanitizedFlows(t *testing.T) {
	idx := mustBuildIndex(flowFixtureDoc())
	p, err := taint.LoadPolicy(strings.NewReader(flowPolicyYAML))
	require.NoError(t, err)
	e := taint.NewTaintEngine(idx, taint.Compile(p))

	atoms := e.Scan()
	flows := e.FindFlows(atoms, query.ModePR)
	vulns := taint.Vulnerabilities(flows)

	for _, v := range vulns {
		assert.Empty(t, v.Flow.PassedThrough)
	}
	assert.NotEmpty(t, vulns)
}
