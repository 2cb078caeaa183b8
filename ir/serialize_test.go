package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *IRDocument {
	doc := NewIRDocument("repo1", "snap1")
	doc.Nodes = append(doc.Nodes,
		&Node{ID: FileNodeID("a.go"), Kind: NodeFile, Name: "a.go", FQN: "a", FilePath: "a.go", Language: "go",
			Span: &Span{StartLine: 1, EndLine: 10}},
		&Node{ID: NodeID(NodeFunction, "a.Run"), Kind: NodeFunction, Name: "Run", FQN: "a.Run", FilePath: "a.go",
			Language: "go", ParentID: FileNodeID("a.go"),
			CFG:   &ControlFlowSummary{CyclomaticComplexity: 2, HasLoop: true, BranchCount: 1},
			Attrs: map[string]interface{}{"exported": true, "score": 0.5}},
	)
	doc.Edges = append(doc.Edges, &Edge{
		ID: EdgeID(EdgeContains, FileNodeID("a.go"), NodeID(NodeFunction, "a.Run"), 0),
		Kind: EdgeContains, SourceID: FileNodeID("a.go"), TargetID: NodeID(NodeFunction, "a.Run"),
	})
	doc.Occurrences = append(doc.Occurrences, &Occurrence{
		ID: "occ1", SymbolID: NodeID(NodeFunction, "a.Run"), Roles: RoleDefinition, FilePath: "a.go", Importance: 1,
	})
	doc.DFG.Variables = append(doc.DFG.Variables, &VariableEntity{
		ID: "var:a.Run:x", Name: "x", DeclaringFuncFQN: "a.Run", ScopeID: "a.Run", Kind: VarLocal,
	})
	doc.Diagnostics = append(doc.Diagnostics, &Diagnostic{Kind: "wildcard_import", Message: "import *", FilePath: "a.go"})
	return doc
}

func TestToJSONFromJSON_RoundTrip(t *testing.T) {
	doc := sampleDocument()
	encoded, err := ToJSON(doc)
	require.NoError(t, err)

	decoded, err := FromJSON(encoded)
	require.NoError(t, err)

	assert.Equal(t, doc.RepoID, decoded.RepoID)
	assert.Equal(t, doc.SchemaVersion, decoded.SchemaVersion)
	require.Len(t, decoded.Nodes, len(doc.Nodes))
	assert.Equal(t, doc.Nodes[1].Name, decoded.Nodes[1].Name)
	assert.Equal(t, doc.Nodes[1].CFG.CyclomaticComplexity, decoded.Nodes[1].CFG.CyclomaticComplexity)
	require.Len(t, decoded.Edges, 1)
	assert.Equal(t, EdgeContains, decoded.Edges[0].Kind)
}

func TestValidateRoundtrip_SucceedsForJSONSafeAttrs(t *testing.T) {
	doc := sampleDocument()
	assert.NoError(t, ValidateRoundtrip(doc))
}

func TestValidateRoundtrip_NilDocumentErrors(t *testing.T) {
	err := ValidateRoundtrip(nil)
	assert.Error(t, err)
}
