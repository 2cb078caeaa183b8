package chunk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josongsong/semantica-codegraph/chunk"
	"github.com/josongsong/semantica-codegraph/ir"
)

func fixtureDoc() (*ir.IRDocument, map[string]string) {
	doc := ir.NewIRDocument("repo1", "snap1")
	doc.Packages = []*ir.Package{{Path: "pkg", Files: []string{"pkg/a.go"}}}
	doc.Nodes = []*ir.Node{
		{ID: "file:pkg/a.go", Kind: ir.NodeFile, Name: "a.go", FQN: "pkg.a", FilePath: "pkg/a.go",
			Attrs: map[string]interface{}{"package": "pkg"}},
		{ID: "function:pkg.a.Run", Kind: ir.NodeFunction, Name: "Run", FQN: "pkg.a.Run",
			FilePath: "pkg/a.go", ParentID: "file:pkg/a.go",
			Attrs: map[string]interface{}{"is_exported": true, "signature": "func Run() error"}},
	}
	contents := map[string]string{
		"pkg/a.go": "// Package pkg does a thing.\npackage pkg\n\nfunc Run() error {\n\treturn nil\n}\n",
	}
	return doc, contents
}

func TestBuild_ProducesRepoProjectModuleFileTree(t *testing.T) {
	b := chunk.NewBuilder("repo1", "myproj")
	doc, contents := fixtureDoc()
	tree := b.Build(doc, contents)

	require.NotNil(t, tree.Root)
	assert.Equal(t, chunk.KindRepo, tree.Root.Kind)

	repoChunk, ok := tree.Get("chunk:repo1:repo:repo1")
	require.True(t, ok)
	assert.Equal(t, chunk.KindRepo, repoChunk.Kind)

	projectChunk, ok := tree.Get("chunk:repo1:project:myproj")
	require.True(t, ok)
	assert.Equal(t, repoChunk.ID, projectChunk.ParentID)

	var sawModule, sawFile, sawFunction bool
	for _, c := range tree.All() {
		switch c.Kind {
		case chunk.KindModule:
			sawModule = true
			assert.Equal(t, "pkg", c.FQN)
		case chunk.KindFile:
			sawFile = true
		case chunk.KindFunction:
			sawFunction = true
			assert.Equal(t, "public", c.Visibility)
		}
	}
	assert.True(t, sawModule)
	assert.True(t, sawFile)
	assert.True(t, sawFunction)
}

func TestBuild_FunctionChunkHasSkeletonChild(t *testing.T) {
	b := chunk.NewBuilder("repo1", "myproj")
	doc, contents := fixtureDoc()
	tree := b.Build(doc, contents)

	var sawSkeleton bool
	for _, c := range tree.All() {
		if c.Kind == chunk.KindSkeleton {
			sawSkeleton = true
			assert.Contains(t, c.Summary, "Run")
		}
	}
	assert.True(t, sawSkeleton)
}

func TestBoundaryValidator_NoViolationsOnWellFormedTree(t *testing.T) {
	b := chunk.NewBuilder("repo1", "myproj")
	doc, contents := fixtureDoc()
	tree := b.Build(doc, contents)

	violations := (chunk.BoundaryValidator{}).Validate(tree)
	assert.Empty(t, violations)
}

func TestBoundaryValidator_EmptyTreeHasNoViolations(t *testing.T) {
	tree := &chunk.Tree{RepoID: "repo1", SnapshotID: "snap1"}
	v := (chunk.BoundaryValidator{}).Validate(tree)
	assert.Empty(t, v)
}

func TestBuild_DuplicateFQNGetsDistinctChunkIDs(t *testing.T) {
	doc := ir.NewIRDocument("repo1", "snap1")
	doc.Packages = []*ir.Package{{Path: "pkg", Files: []string{"pkg/a.go", "pkg/b.go"}}}
	doc.Nodes = []*ir.Node{
		{ID: "file:pkg/a.go", Kind: ir.NodeFile, Name: "a.go", FQN: "pkg.a", FilePath: "pkg/a.go",
			Attrs: map[string]interface{}{"package": "pkg"}},
		{ID: "file:pkg/b.go", Kind: ir.NodeFile, Name: "b.go", FQN: "pkg.a", FilePath: "pkg/b.go",
			Attrs: map[string]interface{}{"package": "pkg"}},
	}
	contents := map[string]string{
		"pkg/a.go": "package pkg\n",
		"pkg/b.go": "package pkg\n\n// distinct content\n",
	}

	b := chunk.NewBuilder("repo1", "myproj")
	tree := b.Build(doc, contents)

	var fileChunks []*chunk.Chunk
	for _, c := range tree.All() {
		if c.Kind == chunk.KindFile {
			fileChunks = append(fileChunks, c)
		}
	}
	require.Len(t, fileChunks, 2)
	assert.NotEqual(t, fileChunks[0].ID, fileChunks[1].ID)
}
