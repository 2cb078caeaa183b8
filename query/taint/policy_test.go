package taint_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josongsong/semantica-codegraph/query/taint"
)

const samplePolicyYAML = `
version: "1"
atoms:
  - id: src.request.body
    kind: source
    category: user_input
    names: ["ReadBody", "request.Body"]
  - id: sink.sql.exec
    kind: sink
    category: sql
    names: ["Exec", "Query"]
    fqn_patterns: ["*.db.Exec"]
  - id: sanitize.escape
    kind: sanitizer
    category: sql
    names: ["EscapeString"]
`

func TestLoadPolicy_ParsesAtomsByKind(t *testing.T) {
	p, err := taint.LoadPolicy(strings.NewReader(samplePolicyYAML))
	require.NoError(t, err)

	assert.Len(t, p.Sources(), 1)
	assert.Len(t, p.Sinks(), 1)
	assert.Len(t, p.Sanitizers(), 1)
}

func TestLoadPolicy_RejectsAtomWithoutCategory(t *testing.T) {
	_, err := taint.LoadPolicy(strings.NewReader(`
atoms:
  - id: bad
    kind: source
`))
	assert.Error(t, err)
}

func TestLoadPolicy_RejectsUnknownKind(t *testing.T) {
	_, err := taint.LoadPolicy(strings.NewReader(`
atoms:
  - id: bad
    kind: nonsense
    category: x
`))
	assert.Error(t, err)
}

func TestAtomSpec_MatchesByExactName(t *testing.T) {
	a := taint.AtomSpec{ID: "a", Kind: taint.AtomSource, Category: "c", Names: []string{"ReadBody"}}
	assert.True(t, a.Matches("ReadBody", "pkg.ReadBody"))
	assert.False(t, a.Matches("Other", "pkg.Other"))
}

func TestAtomSpec_MatchesByFQNPattern(t *testing.T) {
	a := taint.AtomSpec{ID: "a", Kind: taint.AtomSink, Category: "sql", FQNPatterns: []string{"*.db.Exec"}}
	assert.True(t, a.Matches("Exec", "pkg.db.Exec"))
	assert.False(t, a.Matches("Exec", "pkg.other.Exec"))
}
