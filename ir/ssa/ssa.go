// Package ssa builds the FULL-mode points-to/heap analysis layer named in spec.md §4.1
// ("FULL additionally produces basic-flow graph and heap/points-to analysis") on top of
// golang.org/x/tools/go/ssa, the SSA construction already present (but unused) in the
// teacher's go.mod. It is grounded in other_examples' BuildSSA/ExtractCFGAndDFG pattern
// (42df08f3_overkam-code-property-graph__ssa_cfg.go.go): load packages, build SSA, walk
// every function's free variables and basic blocks, and translate closure captures into
// ir.EdgeEscapes edges feeding the graph index's abstract heap-element nodes.
//
// This package only runs for Go sources in ir.ModeFull; PR and QUICK modes never import it.
package ssa

import (
	"fmt"
	"go/token"

	"golang.org/x/tools/go/packages"
	xssa "golang.org/x/tools/go/ssa"
	"golang.org/x/tools/go/ssa/ssautil"

	"github.com/josongsong/semantica-codegraph/ir"
)

// Logger is the same one-method seam used throughout this module (ir.Logger, query.Logger).
type Logger interface {
	Printf(format string, args ...any)
}

// PosResolver maps a (file, line, col) back to the ir.Node id already created for that
// position by the structural builder (ir.Builder.Generate already ran for this file).
// It is supplied by the caller, which knows how Span/line bookkeeping maps to node ids;
// ir/ssa never constructs ids for structural nodes, so id-stability rules for them stay in
// one place (ir). The only ids it mints are those of the heap-element nodes Analyze adds.
type PosResolver func(file string, line, col int) (nodeID string, ok bool)

// Result holds the SSA program plus the set of analysed functions, mirroring the shape of
// the grounding example's SSAResult so callers that already know go/ssa can reach in.
type Result struct {
	Prog     *xssa.Program
	AllFuncs map[*xssa.Function]bool
}

// BuildSSA constructs the whole-program SSA form for the already go/packages-loaded pkgs.
// Synthetic wrappers and functions with no position information are retained in AllFuncs
// but skipped by Analyze (they carry no source span to attach edges to).
func BuildSSA(pkgs []*packages.Package, logger Logger) *Result {
	if logger == nil {
		logger = nopLogger{}
	}
	prog, ssaPkgs := ssautil.AllPackages(pkgs, xssa.InstantiateGenerics)
	var failed int
	for i, p := range ssaPkgs {
		if p == nil && i < len(pkgs) {
			failed++
		}
	}
	if failed > 0 {
		logger.Printf("ir/ssa: %d packages failed SSA construction", failed)
	}
	prog.Build()
	return &Result{Prog: prog, AllFuncs: ssautil.AllFunctions(prog)}
}

// Analyze walks every analysed function's instructions and free variables, emitting:
//   - an ir.EdgeEscapes edge from a closure's FuncLit node to each free variable it
//     captures by reference (Go closures always capture by reference), modelling the
//     variable "escaping" to the heap for the closure's lifetime;
//   - an abstract `[*]` heap-element node (tagged HEAP_CUTOFF) plus an ir.EdgeEscapes
//     edge from the function to it for each heap-allocated *ssa.Alloc, whatever its type,
//     one node per allocation site (spec.md §9).
//
// fset is the token.FileSet the packages were loaded with; resolve maps a source position
// back to the structural node id the (PR-mode) builder already minted for it. Functions or
// free variables whose position does not resolve are skipped; apart from the heap-element
// nodes above, Analyze adds no nodes.
func Analyze(result *Result, fset *token.FileSet, resolve PosResolver, doc *ir.IRDocument, logger Logger) {
	if logger == nil {
		logger = nopLogger{}
	}
	if result == nil || doc == nil {
		return
	}
	var captureEdges, heapNodes int
	for fn := range result.AllFuncs {
		if fn.Synthetic != "" || fn.Pkg == nil {
			continue
		}
		funcNodeID, ok := funcNodeIDFor(fn, fset, resolve)
		if !ok {
			continue
		}
		for _, fv := range fn.FreeVars {
			if !fv.Pos().IsValid() {
				continue
			}
			p := fset.Position(fv.Pos())
			varID, ok := resolve(p.Filename, p.Line, p.Column)
			if !ok {
				continue
			}
			doc.Edges = append(doc.Edges, &ir.Edge{
				ID:       ir.EdgeID(ir.EdgeEscapes, funcNodeID, varID, captureEdges),
				Kind:     ir.EdgeEscapes,
				SourceID: funcNodeID,
				TargetID: varID,
				Attrs: map[string]interface{}{
					"var_name":     fv.Name(),
					"capture_kind": "by_reference",
				},
			})
			captureEdges++
		}

		for _, block := range fn.Blocks {
			for _, instr := range block.Instrs {
				alloc, ok := instr.(*xssa.Alloc)
				if !ok || !alloc.Heap {
					continue
				}
				if !alloc.Pos().IsValid() {
					continue
				}
				p := fset.Position(alloc.Pos())
				heapID := fmt.Sprintf("heap:%s:%d:%d", funcNodeID, p.Line, p.Column)
				if doc.NodeByID(heapID) != nil {
					continue
				}
				doc.Nodes = append(doc.Nodes, &ir.Node{
					ID:       heapID,
					Kind:     ir.NodeHeapElem,
					Name:     "[*]",
					FQN:      heapID,
					FilePath: p.Filename,
					Language: "go",
					ParentID: funcNodeID,
					Attrs: map[string]interface{}{
						"uncertain_reasons": "HEAP_CUTOFF",
						"alloc_type":        alloc.Type().String(),
					},
				})
				doc.Edges = append(doc.Edges, &ir.Edge{
					ID:       ir.EdgeID(ir.EdgeEscapes, funcNodeID, heapID, heapNodes),
					Kind:     ir.EdgeEscapes,
					SourceID: funcNodeID,
					TargetID: heapID,
				})
				heapNodes++
			}
		}
	}
	logger.Printf("ir/ssa: %d capture edges, %d heap-element nodes", captureEdges, heapNodes)
}

func funcNodeIDFor(fn *xssa.Function, fset *token.FileSet, resolve PosResolver) (string, bool) {
	if !fn.Pos().IsValid() {
		return "", false
	}
	p := fset.Position(fn.Pos())
	return resolve(p.Filename, p.Line, p.Column)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}
