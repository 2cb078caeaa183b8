// Package pipeline drives a real source tree through the structural front-ends
// (inspector.Factory) and, for Go sources, the scope/dataflow walk (analyzer.Analyzer),
// then assembles the per-file results into one repo-wide IRDocument via ir.Builder.
// GenerateRepo. This is the parse -> analyze -> generate wiring spec.md §4.1/§5 describes:
// QUICK mode runs only the structural inspector pass; PR and FULL additionally run the
// scope/dataflow walk for Go sources (the only language analyzer.Analyzer's node-kind walk
// currently understands).
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	gotreesitter "github.com/smacker/go-tree-sitter/golang"

	"github.com/josongsong/semantica-codegraph/analyzer"
	"github.com/josongsong/semantica-codegraph/analyzer/linage"
	"github.com/josongsong/semantica-codegraph/inspector"
	"github.com/josongsong/semantica-codegraph/ir"
)

// BuildRepo discovers every Go/Java source file under root, runs each through
// inspector.Factory for structural facts, runs the Go subset through analyzer.Analyzer for
// scope/dataflow facts when mode warrants it, and merges the result into one IRDocument.
func BuildRepo(ctx context.Context, repoID, snapshotID, root string, mode ir.Mode) (*ir.IRDocument, []error) {
	paths, err := ir.DiscoverFiles(ctx, nil, root, ".go", ".java")
	if err != nil {
		return nil, []error{fmt.Errorf("discover files under %s: %w", root, err)}
	}

	var goModels map[string]*linage.PackageModel
	if mode == ir.ModePR || mode == ir.ModeFull {
		goModels, err = goPackageModels(ctx, root)
		if err != nil {
			return nil, []error{fmt.Errorf("scope/dataflow walk of %s: %w", root, err)}
		}
	}

	factory := inspector.NewFactory(nil)
	var units []ir.FileUnit
	var errs []error
	for _, p := range paths {
		lang := languageOf(p)
		if lang == "" {
			continue
		}
		file, ferr := factory.InspectFile(p)
		if ferr != nil {
			errs = append(errs, fmt.Errorf("inspect %s: %w", p, ferr))
			continue
		}
		var model *linage.PackageModel
		if lang == "go" && goModels != nil {
			model = scopeModelToFile(goModels, p)
		}
		units = append(units, ir.FileUnit{File: file, Model: model, Language: lang})
	}

	b := ir.NewBuilder(repoID, nil, nil)
	doc, genErrs := b.GenerateRepo(ctx, units, snapshotID, mode)
	errs = append(errs, genErrs...)
	return doc, errs
}

func languageOf(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".go":
		return "go"
	case ".java":
		return "java"
	}
	return ""
}

// goPackageModels runs analyzer.Analyzer.AnalyzeDir over root and indexes the returned
// per-package models by each package's own directory, so scopeModelToFile can look a given
// file's package up without re-walking the tree per file.
func goPackageModels(ctx context.Context, root string) (map[string]*linage.PackageModel, error) {
	a := analyzer.NewAnalyzer(
		analyzer.WithLanguage(gotreesitter.GetLanguage()),
		analyzer.WithLanguageName("go"),
		analyzer.WithMacher(analyzer.GolangFiles),
		analyzer.WithProjectFiles("go.mod"),
		analyzer.WithInterprocedural(),
	)
	models, err := a.AnalyzeDir(ctx, root)
	if err != nil {
		return nil, err
	}
	byDir := map[string]*linage.PackageModel{}
	for _, m := range models {
		byDir[strings.TrimRight(m.Path, "/")] = m
	}
	return byDir, nil
}

// scopeModelToFile narrows a package-wide PackageModel down to the identifiers and dataflow
// edges owned by one file, following analyzer/identifier.go's own convention of keying
// Identifier.File by filepath.Base rather than the full path.
func scopeModelToFile(byDir map[string]*linage.PackageModel, fullPath string) *linage.PackageModel {
	dir := strings.TrimRight(filepath.Dir(fullPath), "/")
	model, ok := byDir[dir]
	if !ok {
		return nil
	}
	base := filepath.Base(fullPath)
	scoped := &linage.PackageModel{
		Path:     model.Path,
		Language: model.Language,
		Files:    []string{base},
		Idents:   map[string]*linage.Identifier{},
	}
	for key, id := range model.Idents {
		if id.File == base {
			scoped.Idents[key] = id
		}
	}
	for _, e := range model.DataFlows {
		if e.Src != nil && e.Src.File == base {
			scoped.DataFlows = append(scoped.DataFlows, e)
		}
	}
	for _, s := range model.Scopes {
		if s.Kind == "package" || strings.HasSuffix(s.ID, ":"+base) {
			scoped.Scopes = append(scoped.Scopes, s)
		}
	}
	return scoped
}
