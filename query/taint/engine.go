package taint

import (
	"github.com/josongsong/semantica-codegraph/graphindex"
	"github.com/josongsong/semantica-codegraph/query"
)

// TaintEngine runs a CompiledPolicy's source/sink/sanitizer atoms against a built
// graphindex.GraphIndex, through a query.Engine, to produce Vulnerabilities: confirmed
// source-to-sink flows that never crossed a sanitizer node. It is the Go shape of
// original_source's domain/taint/taint_engine.py (only its import list was retrieved, not
// its body), composed from pieces this package already owns rather than ported line for
// line.
type TaintEngine struct {
	Index  *graphindex.GraphIndex
	Policy *CompiledPolicy
	Engine *query.Engine
}

// NewTaintEngine builds a TaintEngine over a built GraphIndex and its compiled policy,
// wiring the policy into a fresh query.Engine so Q.Source/Q.Sink category lookups resolve
// against it (query.WithTaintCategories).
func NewTaintEngine(index *graphindex.GraphIndex, policy *CompiledPolicy) *TaintEngine {
	return &TaintEngine{
		Index:  index,
		Policy: policy,
		Engine: query.NewEngine(index, query.WithTaintCategories(policy)),
	}
}

// Scan matches every atom in the policy against the graph index's nodes, by simple name,
// FQN, or FQN glob pattern (AtomSpec.Matches), producing the raw per-kind atom hits
// FindFlows pairs into flows.
func (e *TaintEngine) Scan() DetectedAtoms {
	var out DetectedAtoms
	for _, n := range e.Index.Nodes.All() {
		for _, a := range e.Policy.byID {
			if !a.Matches(n.Name, n.FQN) {
				continue
			}
			switch a.Kind {
			case AtomSource:
				out.Sources = append(out.Sources, DetectedSource{AtomID: a.ID, Category: a.Category, NodeID: n.ID})
			case AtomSink:
				out.Sinks = append(out.Sinks, DetectedSink{AtomID: a.ID, Category: a.Category, NodeID: n.ID})
			case AtomSanitizer:
				out.Sanitizers = append(out.Sanitizers, DetectedSanitizer{AtomID: a.ID, Category: a.Category, NodeID: n.ID})
			}
		}
	}
	return out
}

// FindFlows runs one any_path query per detected (source, sink) category pair and reports
// every resulting path as a TaintFlow, noting which detected sanitizers (if any) lie on
// the path's node sequence.
func (e *TaintEngine) FindFlows(atoms DetectedAtoms, mode query.Mode) []TaintFlow {
	var flows []TaintFlow
	categories := sourceSinkCategoryPairs(atoms)
	for _, pair := range categories {
		flow := query.Forward(query.Q.Source(pair.sourceCategory), query.E.DFG(), query.Q.Sink(pair.sinkCategory))
		ps := e.Engine.ExecuteFlow(flow, mode, nil)
		for _, p := range ps.Paths {
			flows = append(flows, TaintFlow{
				Source:        pair.source,
				Sink:          pair.sink,
				NodeIDs:       p.NodeIDs,
				PassedThrough: sanitizersOnPath(atoms.Sanitizers, p.NodeIDs),
			})
		}
	}
	return flows
}

// Vulnerabilities filters a flow list down to the ones that never crossed a sanitizer.
func Vulnerabilities(flows []TaintFlow) []Vulnerability {
	var out []Vulnerability
	for _, f := range flows {
		if len(f.PassedThrough) == 0 {
			out = append(out, Vulnerability{Flow: f, Category: f.Sink.Category})
		}
	}
	return out
}

type sourceSinkPair struct {
	source         DetectedSource
	sink           DetectedSink
	sourceCategory string
	sinkCategory   string
}

func sourceSinkCategoryPairs(atoms DetectedAtoms) []sourceSinkPair {
	var out []sourceSinkPair
	seen := map[string]bool{}
	for _, s := range atoms.Sources {
		for _, k := range atoms.Sinks {
			key := s.Category + "->" + k.Category
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, sourceSinkPair{source: s, sink: k, sourceCategory: s.Category, sinkCategory: k.Category})
		}
	}
	return out
}

func sanitizersOnPath(sanitizers []DetectedSanitizer, nodeIDs []string) []DetectedSanitizer {
	onPath := map[string]bool{}
	for _, id := range nodeIDs {
		onPath[id] = true
	}
	var out []DetectedSanitizer
	for _, s := range sanitizers {
		if onPath[s.NodeID] {
			out = append(out, s)
		}
	}
	return out
}
