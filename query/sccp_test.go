package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josongsong/semantica-codegraph/ir"
	"github.com/josongsong/semantica-codegraph/query"
)

func TestRunSCCP_SkippedWhenNoCFGOrDFG(t *testing.T) {
	doc := ir.NewIRDocument("repo1", "snap1")
	idx := mustBuildIndex(doc)

	result, ok := query.RunSCCP(idx, query.DefaultLogger)
	assert.False(t, ok)
	assert.Nil(t, result)
}

func TestRunSCCP_MarksUnreachableBlocksFromDiagnostics(t *testing.T) {
	doc := flowFixtureDoc()
	doc.CFGBlocks = []*ir.ControlFlowBlock{{ID: "block:1", Kind: ir.CFGBlock}}
	doc.DFG.Variables = []*ir.VariableEntity{{ID: "variable:pkg.fn.x", Name: "x"}}
	doc.Diagnostics = []*ir.Diagnostic{{Kind: "unreachable_block", Message: "block:dead"}}
	idx := mustBuildIndex(doc)

	result, ok := query.RunSCCP(idx, query.DefaultLogger)
	require.True(t, ok)
	assert.True(t, result.IsUnreachable("block:dead"))
	assert.False(t, result.IsUnreachable("block:1"))
}

func TestSCCPResult_IsUnreachableNilSafe(t *testing.T) {
	var r *query.SCCPResult
	assert.False(t, r.IsUnreachable("anything"))
}
