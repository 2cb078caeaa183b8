package chunk

import "fmt"

// BoundaryValidator checks the tree invariant spec.md §6 names for Chunk: a child's
// [StartLine, EndLine] must lie within its parent's range, for every chunk that carries
// line information. Grounded on inspector/graph.document.go's existing parent/child range
// bookkeeping in Documents.GroupBy/SplitDocument, generalized into an explicit checker
// rather than relying on construction order to keep ranges consistent.
type BoundaryValidator struct{}

// Violation describes one boundary invariant failure.
type Violation struct {
	ChunkID  string
	ParentID string
	Reason   string
}

func (v Violation) Error() string {
	return fmt.Sprintf("chunk %s violates parent %s boundary: %s", v.ChunkID, v.ParentID, v.Reason)
}

// Validate walks every chunk in the tree and reports every boundary violation found; a
// nil/empty result means the tree is well-formed.
func (BoundaryValidator) Validate(t *Tree) []Violation {
	var violations []Violation
	for _, c := range t.All() {
		if c.ParentID == "" {
			continue
		}
		parent, ok := t.Get(c.ParentID)
		if !ok {
			violations = append(violations, Violation{ChunkID: c.ID, ParentID: c.ParentID, Reason: "parent not found"})
			continue
		}
		if c.StartLine == 0 && c.EndLine == 0 {
			continue // no line information to check (e.g. repo/project/module chunks)
		}
		if parent.StartLine == 0 && parent.EndLine == 0 {
			continue
		}
		if c.StartLine < parent.StartLine || c.EndLine > parent.EndLine {
			violations = append(violations, Violation{
				ChunkID: c.ID, ParentID: c.ParentID,
				Reason: fmt.Sprintf("[%d,%d] not within parent [%d,%d]", c.StartLine, c.EndLine, parent.StartLine, parent.EndLine),
			})
		}
	}
	return violations
}
