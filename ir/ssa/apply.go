package ssa

import (
	"fmt"
	"go/token"

	"golang.org/x/tools/go/packages"

	"github.com/josongsong/semantica-codegraph/ir"
)

// ApplyFull loads the Go module rooted at dir with full type and syntax information,
// builds SSA, and augments doc in place with the FULL-mode heap/points-to edges ir.ModeFull
// names for Go sources (spec.md §4.1). doc must already hold the PR-mode fragments for
// dir's files (built via ir.Builder.GenerateRepo) so BuildResolver can map SSA positions
// back onto the nodes the structural pass already minted.
func ApplyFull(doc *ir.IRDocument, dir string, logger Logger) error {
	if logger == nil {
		logger = nopLogger{}
	}
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedFiles | packages.NeedSyntax | packages.NeedTypes |
			packages.NeedTypesInfo | packages.NeedDeps | packages.NeedImports,
		Dir: dir,
	}
	pkgs, err := packages.Load(cfg, "./...")
	if err != nil {
		return fmt.Errorf("ir/ssa: load packages: %w", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		return fmt.Errorf("ir/ssa: packages under %s contained errors", dir)
	}
	if len(pkgs) == 0 {
		logger.Printf("ir/ssa: no packages found under %s", dir)
		return nil
	}

	result := BuildSSA(pkgs, logger)
	resolver := BuildResolver(doc)
	var fset *token.FileSet
	for _, p := range pkgs {
		if p.Fset != nil {
			fset = p.Fset
			break
		}
	}
	if fset == nil {
		return fmt.Errorf("ir/ssa: loaded packages under %s carry no FileSet", dir)
	}

	Analyze(result, fset, resolver, doc, logger)
	return nil
}
