package ir

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/josongsong/semantica-codegraph/analyzer/linage"
	"github.com/josongsong/semantica-codegraph/inspector/graph"
)

// FileUnit bundles everything Builder.Generate needs for one file: the structural front-
// end's output (graph.File/graph.Package), the optional scope/dataflow walk result for
// that file's package (linage.PackageModel), and the language tag the caller's front-end
// dispatch already resolved.
type FileUnit struct {
	File     *graph.File
	Package  *graph.Package
	Model    *linage.PackageModel
	Language string
}

// GenerateRepo builds one IRDocument fragment per FileUnit and merges them into a single
// repo-wide IRDocument, per spec.md §4.1's "multiple files may be built in parallel by
// independent workers (they only share the ID generator and the span-interning pool, both
// thread-safe)" (§5). Each file's fragment is generated on its own goroutine; a single
// file's *ParseError does not cancel its siblings — it is collected and returned alongside
// whatever fragments did succeed, mirroring the teacher's existing per-package continue-on-
// error style in analyzer.AnalyzeDir (spec.md §7: "other files continue").
//
// The goroutines run under an errgroup.Group whose derived context is discarded; every
// goroutine returns nil, so no file's failure cancels or stops any other file.
func (b *Builder) GenerateRepo(ctx context.Context, units []FileUnit, snapshotID string, mode Mode) (*IRDocument, []error) {
	doc := NewIRDocument(b.RepoID, snapshotID)
	if len(units) == 0 {
		return doc, nil
	}

	fragments := make([]*IRDocument, len(units))
	errs := make([]error, len(units))

	g, _ := errgroup.WithContext(ctx)
	for i := range units {
		i := i
		u := units[i]
		g.Go(func() error {
			frag, err := b.Generate(u.File, u.Package, u.Model, snapshotID, mode, u.Language)
			if err != nil {
				errs[i] = err
				return nil
			}
			fragments[i] = frag
			return nil
		})
	}
	// errgroup's returned error is always nil here since per-file failures are recorded in
	// errs rather than propagated; it is only non-nil for a programmer bug in a goroutine
	// above (none currently returns a non-nil error), so it is intentionally not surfaced.
	_ = g.Wait()

	var failures []error
	for i, frag := range fragments {
		if frag != nil {
			doc.Merge(frag)
		}
		if errs[i] != nil {
			failures = append(failures, errs[i])
		}
	}
	return doc, failures
}
