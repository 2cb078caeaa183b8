package ssa

import "github.com/josongsong/semantica-codegraph/ir"

// BuildResolver indexes an already-built IRDocument's nodes by (file, line) so Analyze can
// map an *ssa.Function's or free variable's source position back onto the node id the
// PR-mode builder already minted for that declaration (spec.md §4.1), so Analyze attaches
// its edges to existing nodes instead of minting structural ids of its own.
//
// An exact single-line node wins; otherwise the smallest span covering the queried line is
// used, so a closure's free-variable position (inside a function body) resolves to the
// enclosing function/parameter/variable node rather than failing to resolve at all.
func BuildResolver(doc *ir.IRDocument) PosResolver {
	type candidate struct {
		id                 string
		startLine, endLine int
	}
	byFile := map[string][]candidate{}
	if doc != nil {
		for _, n := range doc.Nodes {
			if n.Span == nil || n.FilePath == "" {
				continue
			}
			byFile[n.FilePath] = append(byFile[n.FilePath], candidate{n.ID, n.Span.StartLine, n.Span.EndLine})
		}
	}
	return func(file string, line, col int) (string, bool) {
		var best candidate
		found := false
		for _, c := range byFile[file] {
			if line < c.startLine || line > c.endLine {
				continue
			}
			if !found || (c.endLine-c.startLine) < (best.endLine-best.startLine) {
				best, found = c, true
			}
		}
		if !found {
			return "", false
		}
		return best.id, true
	}
}
