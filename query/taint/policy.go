package taint

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Policy is the YAML-parseable root document: a flat list of atoms, each tagged with its
// kind (source/sink/sanitizer) and category, grounded in original_source's
// domain/taint/policy.py Policy shape (category-grouped atom registry), but flattened to a
// single list since YAML decoding one slice is simpler than three parallel maps.
type Policy struct {
	Version string     `yaml:"version"`
	Atoms   []AtomSpec `yaml:"atoms"`
}

// LoadPolicy parses a taint policy document. Unknown fields are not rejected (policy
// authors may add vendor keys this engine doesn't read yet); missing id/kind/category
// fields on an atom are rejected since NamesInCategory and AtomByID both key off them.
func LoadPolicy(r io.Reader) (*Policy, error) {
	dec := yaml.NewDecoder(r)
	var p Policy
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("taint: parse policy: %w", err)
	}
	for i, a := range p.Atoms {
		if a.ID == "" {
			return nil, fmt.Errorf("taint: atom at index %d has no id", i)
		}
		if a.Kind != AtomSource && a.Kind != AtomSink && a.Kind != AtomSanitizer {
			return nil, fmt.Errorf("taint: atom %q has invalid kind %q", a.ID, a.Kind)
		}
		if a.Category == "" {
			return nil, fmt.Errorf("taint: atom %q has no category", a.ID)
		}
	}
	return &p, nil
}

// Sources returns every source-kind atom in the policy.
func (p *Policy) Sources() []AtomSpec { return p.byKind(AtomSource) }

// Sinks returns every sink-kind atom in the policy.
func (p *Policy) Sinks() []AtomSpec { return p.byKind(AtomSink) }

// Sanitizers returns every sanitizer-kind atom in the policy.
func (p *Policy) Sanitizers() []AtomSpec { return p.byKind(AtomSanitizer) }

func (p *Policy) byKind(kind AtomKind) []AtomSpec {
	var out []AtomSpec
	for _, a := range p.Atoms {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}
