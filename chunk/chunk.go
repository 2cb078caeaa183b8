package chunk

// Kind enumerates the granularities the Chunk Builder produces, from the repo root down
// to leaf documentation/usage fragments (spec.md §4.4).
type Kind string

const (
	KindRepo      Kind = "repo"
	KindProject   Kind = "project"
	KindModule    Kind = "module"
	KindFile      Kind = "file"
	KindClass     Kind = "class"
	KindFunction  Kind = "function"
	KindDocstring Kind = "docstring"
	KindFileHeader Kind = "file_header"
	KindSkeleton  Kind = "skeleton"
	KindUsage     Kind = "usage"
	KindModuleAPI Kind = "module_api"
)

// Chunk is a granularity-tagged code region used for retrieval. Parent/children form a
// tree rooted at the repo chunk; a child's [StartLine, EndLine] lies within its parent's
// range. Function chunks may carry skeleton and usage children; docstring, file_header,
// skeleton and usage chunks never have children.
type Chunk struct {
	ID         string   `json:"id"`
	RepoID     string   `json:"repo_id"`
	SnapshotID string   `json:"snapshot_id"`
	Kind       Kind     `json:"kind"`
	FQN        string   `json:"fqn"`
	ParentID   string   `json:"parent_id,omitempty"`
	ChildIDs   []string `json:"children,omitempty"`
	FilePath   string   `json:"file_path"`
	StartLine  int      `json:"start_line"`
	EndLine    int      `json:"end_line"`
	ContentHash string  `json:"content_hash"`
	Visibility string   `json:"visibility,omitempty"` // "public" | "private" | "internal"
	Language   string   `json:"language"`
	Summary    string   `json:"summary,omitempty"`
	Importance float64  `json:"importance"`
	Attrs      map[string]interface{} `json:"attrs,omitempty"`
	IsTest     bool     `json:"is_test,omitempty"`

	// NodeIDs cross-references this chunk to the ir.Node ids it was built from. Held by
	// value, not by borrowing the IRDocument, so a chunk store serialises independently
	// of the document that produced it (spec.md §4.2 Ownership).
	NodeIDs []string `json:"node_ids,omitempty"`
}

// Tree is the full chunk hierarchy for one snapshot, rooted at a single repo chunk.
type Tree struct {
	RepoID     string
	SnapshotID string
	Root       *Chunk
	byID       map[string]*Chunk
}

// Get retrieves a chunk by id.
func (t *Tree) Get(id string) (*Chunk, bool) {
	c, ok := t.byID[id]
	return c, ok
}

// Children returns the direct children of a chunk, in insertion order.
func (t *Tree) Children(id string) []*Chunk {
	c, ok := t.byID[id]
	if !ok {
		return nil
	}
	out := make([]*Chunk, 0, len(c.ChildIDs))
	for _, cid := range c.ChildIDs {
		if child, ok := t.byID[cid]; ok {
			out = append(out, child)
		}
	}
	return out
}

// Len reports the total number of chunks in the tree.
func (t *Tree) Len() int { return len(t.byID) }

// All returns every chunk in the tree; order is not guaranteed.
func (t *Tree) All() []*Chunk {
	out := make([]*Chunk, 0, len(t.byID))
	for _, c := range t.byID {
		out = append(out, c)
	}
	return out
}

func (t *Tree) add(c *Chunk) {
	if t.byID == nil {
		t.byID = map[string]*Chunk{}
	}
	t.byID[c.ID] = c
	if c.ParentID != "" {
		if parent, ok := t.byID[c.ParentID]; ok {
			parent.ChildIDs = append(parent.ChildIDs, c.ID)
		}
	}
}
