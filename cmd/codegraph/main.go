// Command codegraph is the thin CLI spec.md §6 describes: "any CLI layered on top passes
// an IR document path plus a query source and prints results." It can either load an
// already-built IRDocument (see ir.FromJSON) or build one itself by driving a source tree
// through the parse -> analyze -> generate wiring in package pipeline, builds the
// GraphIndex, compiles a minimal textual flow expression into the Q/E DSL, and prints the
// resulting PathSet/VerificationResult as JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/josongsong/semantica-codegraph/graphindex"
	"github.com/josongsong/semantica-codegraph/ir"
	irssa "github.com/josongsong/semantica-codegraph/ir/ssa"
	"github.com/josongsong/semantica-codegraph/pipeline"
	"github.com/josongsong/semantica-codegraph/query"
)

func main() {
	var (
		irPath  = flag.String("ir", "", "path to a JSON IRDocument produced by ir.ToJSON")
		src     = flag.String("src", "", "source repository root to parse+analyze via package pipeline; used instead of -ir")
		repoID  = flag.String("repo", "repo", "repo id to stamp onto an IRDocument built from -src")
		source  = flag.String("source", "", `source selector, "Kind:name" (e.g. Call:input)`)
		target  = flag.String("target", "", `target selector, "Kind:name" (e.g. Call:conn.execute)`)
		edge    = flag.String("edge", "DFG", "edge selector: DFG|CFG|CALL|BINDS|RENDERS|ESCAPES|ALL")
		mode    = flag.String("mode", "PR", "REALTIME|PR|FULL")
		all     = flag.Bool("all", false, "run .all_paths() (universal) instead of .any_path() (existential)")
		fullSrc = flag.String("full-src", "", "Go module root to run the FULL-mode heap/points-to pass (ir/ssa) against; only used when -mode=FULL")
	)
	flag.Parse()

	if (*irPath == "" && *src == "") || *source == "" || *target == "" {
		fmt.Fprintln(os.Stderr, "usage: codegraph (-ir <doc.json> | -src <repo root>) -source Kind:name -target Kind:name [-edge DFG] [-mode PR] [-all] [-full-src dir]")
		os.Exit(2)
	}

	if err := run(*irPath, *src, *repoID, *source, *target, *edge, *mode, *fullSrc, *all); err != nil {
		fmt.Fprintln(os.Stderr, "codegraph:", err)
		os.Exit(1)
	}
}

func run(irPath, src, repoID, sourceExpr, targetExpr, edgeExpr, modeExpr, fullSrc string, all bool) error {
	doc, err := loadOrBuildDoc(irPath, src, repoID, modeExpr)
	if err != nil {
		return err
	}

	if strings.EqualFold(modeExpr, "FULL") && fullSrc != "" {
		if err := irssa.ApplyFull(doc, fullSrc, log.Default()); err != nil {
			return fmt.Errorf("FULL-mode SSA pass: %w", err)
		}
	}

	index, err := graphindex.Build(doc)
	if err != nil {
		return fmt.Errorf("build graph index: %w", err)
	}

	srcSel, err := parseSelector(sourceExpr)
	if err != nil {
		return fmt.Errorf("source selector: %w", err)
	}
	tgt, err := parseSelector(targetExpr)
	if err != nil {
		return fmt.Errorf("target selector: %w", err)
	}
	e, err := parseEdge(edgeExpr)
	if err != nil {
		return fmt.Errorf("edge selector: %w", err)
	}

	engine := query.NewEngine(index)
	flow := query.Forward(srcSel, e, tgt)
	mode := query.Mode(strings.ToUpper(modeExpr))

	var out interface{}
	if all {
		out = engine.VerifyFlow(flow, mode, nil)
	} else {
		out = engine.ExecuteFlow(flow, mode, nil)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// loadOrBuildDoc loads a pre-built IRDocument from -ir, or -- when -src is given instead --
// drives that repository root through pipeline.BuildRepo's real parse -> analyze -> generate
// chain. A partial-failure from BuildRepo (one file's ParseError) does not abort the run;
// it is logged and the fragments that did build are used, mirroring GenerateRepo's own
// continue-on-error contract.
func loadOrBuildDoc(irPath, src, repoID, modeExpr string) (*ir.IRDocument, error) {
	if src != "" {
		doc, errs := pipeline.BuildRepo(context.Background(), repoID, "snap-"+repoID, src, ir.Mode(strings.ToUpper(modeExpr)))
		for _, e := range errs {
			log.Printf("codegraph: %v", e)
		}
		return doc, nil
	}
	data, err := os.ReadFile(irPath)
	if err != nil {
		return nil, fmt.Errorf("read IR document: %w", err)
	}
	doc, err := ir.FromJSON(data)
	if err != nil {
		return nil, fmt.Errorf("decode IR document: %w", err)
	}
	return doc, nil
}

// parseSelector accepts "Kind:name" or bare "Kind" (for selectors with no name, like Any)
// against the subset of Q selectors a source/sink endpoint realistically names from a CLI:
// Var, Func, Call, Class, Module, Source, Sink, Any.
func parseSelector(s string) (query.NodeSelector, error) {
	kind, name, _ := strings.Cut(s, ":")
	switch strings.ToLower(kind) {
	case "var":
		return query.Q.Var(name), nil
	case "func":
		return query.Q.Func(name), nil
	case "call":
		return query.Q.Call(name), nil
	case "class":
		return query.Q.Class(name), nil
	case "module":
		return query.Q.Module(name), nil
	case "source":
		return query.Q.Source(name), nil
	case "sink":
		return query.Q.Sink(name), nil
	case "any":
		return query.Q.Any(), nil
	default:
		return query.NodeSelector{}, fmt.Errorf("unknown selector kind %q (want Var|Func|Call|Class|Module|Source|Sink|Any)", kind)
	}
}

func parseEdge(s string) (query.EdgeSelector, error) {
	switch strings.ToUpper(s) {
	case "DFG":
		return query.E.DFG(), nil
	case "CFG":
		return query.E.CFG(), nil
	case "CALL":
		return query.E.CALL(), nil
	case "BINDS":
		return query.E.BINDS(), nil
	case "RENDERS":
		return query.E.RENDERS(), nil
	case "ESCAPES":
		return query.E.ESCAPES(), nil
	case "ALL":
		return query.E.ALL(), nil
	default:
		return query.EdgeSelector{}, fmt.Errorf("unknown edge kind %q", s)
	}
}
