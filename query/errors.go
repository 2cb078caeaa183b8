package query

import "fmt"

// InvalidQuery reports a query that cannot be run. No code in this package constructs it;
// Engine.ExecuteFlow re-panics one that reaches its recover instead of degrading.
type InvalidQuery struct {
	Reason string
}

func (e *InvalidQuery) Error() string { return fmt.Sprintf("query: invalid query: %s", e.Reason) }

// QueryTimeout describes a query whose timeout budget (from the mode preset or an
// explicit .timeout(ms)) ran out. No code in this package constructs it: a timed-out
// traversal ends with StopTimeout on its PathSet.
type QueryTimeout struct {
	TimeoutMS int
}

func (e *QueryTimeout) Error() string {
	return fmt.Sprintf("query: timed out after %dms", e.TimeoutMS)
}

// PathLimitExceeded describes a traversal cut off by limit_paths(n). No code in this
// package constructs it: the traversal itself ends with StopPathLimit on its PathSet.
type PathLimitExceeded struct {
	Limit int
}

func (e *PathLimitExceeded) Error() string {
	return fmt.Sprintf("query: path limit of %d exceeded", e.Limit)
}

// NodeLimitExceeded is the node-visitation analogue of PathLimitExceeded; it is likewise
// never constructed, and the traversal ends with StopNodeLimit instead.
type NodeLimitExceeded struct {
	Limit int
}

func (e *NodeLimitExceeded) Error() string {
	return fmt.Sprintf("query: node visitation limit of %d exceeded", e.Limit)
}

// AnalysisError wraps an unexpected failure from a supporting analysis (SCCP, alias
// resolution) that the engine could not gracefully degrade around.
type AnalysisError struct {
	Stage string
	Cause error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("query: analysis error in %s: %v", e.Stage, e.Cause)
}

func (e *AnalysisError) Unwrap() error { return e.Cause }
