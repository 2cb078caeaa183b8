package query_test

import (
	"github.com/josongsong/semantica-codegraph/graphindex"
	"github.com/josongsong/semantica-codegraph/ir"
)

// flowFixture builds a tiny IRDocument: x -DFG-> y -DFG-> xss, plus an unrelated branch
// x -DFG-> other, so queries have something to exclude/filter against.
func flowFixtureDoc() *ir.IRDocument {
	doc := ir.NewIRDocument("repo1", "snap1")
	doc.Nodes = []*ir.Node{
		{ID: "variable:pkg.fn.x", Kind: ir.NodeVariable, Name: "x", ParentID: "function:pkg.fn"},
		{ID: "variable:pkg.fn.y", Kind: ir.NodeVariable, Name: "y", ParentID: "function:pkg.fn"},
		{ID: "variable:pkg.fn.xss", Kind: ir.NodeVariable, Name: "xss", ParentID: "function:pkg.fn"},
		{ID: "variable:pkg.fn.other", Kind: ir.NodeVariable, Name: "other", ParentID: "function:pkg.fn"},
		{ID: "variable:pkg.fn.clean", Kind: ir.NodeVariable, Name: "clean", ParentID: "function:pkg.fn"},
		{ID: "function:pkg.fn", Kind: ir.NodeFunction, Name: "fn", FQN: "pkg.fn"},
	}
	doc.Edges = []*ir.Edge{
		{ID: ir.EdgeID(ir.EdgeDFG, "variable:pkg.fn.x", "variable:pkg.fn.y", 0), Kind: ir.EdgeDFG, SourceID: "variable:pkg.fn.x", TargetID: "variable:pkg.fn.y"},
		{ID: ir.EdgeID(ir.EdgeDFG, "variable:pkg.fn.y", "variable:pkg.fn.xss", 0), Kind: ir.EdgeDFG, SourceID: "variable:pkg.fn.y", TargetID: "variable:pkg.fn.xss"},
		{ID: ir.EdgeID(ir.EdgeDFG, "variable:pkg.fn.x", "variable:pkg.fn.other", 0), Kind: ir.EdgeDFG, SourceID: "variable:pkg.fn.x", TargetID: "variable:pkg.fn.other"},
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
