package taint

// DetectedSource is one source atom match against a concrete graph node, produced by
// scanning a query.Engine's node matcher for every source atom in a compiled policy.
// Grounded in original_source's domain/taint/models.py DetectedSource (name only; the
// Python file's body was not retrieved).
type DetectedSource struct {
	AtomID   string
	Category string
	NodeID   string
}

// DetectedSink mirrors DetectedSource for sink atoms.
type DetectedSink struct {
	AtomID   string
	Category string
	NodeID   string
}

// DetectedSanitizer mirrors DetectedSource for sanitizer atoms.
type DetectedSanitizer struct {
	AtomID   string
	Category string
	NodeID   string
}

// DetectedAtoms bundles every atom kind found in one scan, the unit TaintEngine.Scan hands
// to FindFlows.
type DetectedAtoms struct {
	Sources    []DetectedSource
	Sinks      []DetectedSink
	Sanitizers []DetectedSanitizer
}

// TaintFlow is one confirmed or surviving path between a detected source and a detected
// sink, with whichever sanitizer nodes (if any) the path actually passed through recorded
// for the caller's own judgment — TaintEngine itself only reports flows whose path did
// NOT pass through a registered sanitizer as Vulnerabilities.
type TaintFlow struct {
	Source        DetectedSource
	Sink          DetectedSink
	NodeIDs       []string
	PassedThrough []DetectedSanitizer
}

// Vulnerability is a TaintFlow that reached its sink with no sanitizer on the path.
type Vulnerability struct {
	Flow     TaintFlow
	Category string
}
