package ssa

import (
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/go/packages"

	"github.com/josongsong/semantica-codegraph/ir"
)

func loadTestdataApp(t *testing.T) ([]*packages.Package, *token.FileSet) {
	t.Helper()
	fset := token.NewFileSet()
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles |
			packages.NeedImports | packages.NeedTypes | packages.NeedSyntax | packages.NeedTypesInfo,
		Dir:  "../../inspector/golang/testdata/app",
		Fset: fset,
	}
	pkgs, err := packages.Load(cfg, "./...")
	require.NoError(t, err)
	require.NotEmpty(t, pkgs)
	return pkgs, fset
}

func TestBuildSSA_FindsMainFunction(t *testing.T) {
	pkgs, _ := loadTestdataApp(t)
	result := BuildSSA(pkgs, nil)
	require.NotNil(t, result.Prog)

	var sawMain bool
	for fn := range result.AllFuncs {
		if fn.Name() == "main" {
			sawMain = true
		}
	}
	assert.True(t, sawMain, "expected AllFuncs to contain myapp's main function")
}

func TestAnalyze_NoOpWithoutResolver(t *testing.T) {
	pkgs, fset := loadTestdataApp(t)
	result := BuildSSA(pkgs, nil)
	doc := ir.NewIRDocument("repo1", "snap1")

	resolveNothing := func(string, int, int) (string, bool) { return "", false }
	Analyze(result, fset, resolveNothing, doc, nil)

	assert.Empty(t, doc.Nodes)
	assert.Empty(t, doc.Edges)
}

func TestAnalyze_EmitsEscapeEdgeForResolvedPositions(t *testing.T) {
	pkgs, fset := loadTestdataApp(t)
	result := BuildSSA(pkgs, nil)
	doc := ir.NewIRDocument("repo1", "snap1")

	resolveAll := func(file string, line, col int) (string, bool) {
		return "function:myapp.main", true
	}
	Analyze(result, fset, resolveAll, doc, nil)

	for _, e := range doc.Edges {
		assert.Equal(t, ir.EdgeEscapes, e.Kind)
	}
}
