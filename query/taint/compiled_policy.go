package taint

import "strings"

// CompiledPolicy is a Policy indexed for the lookups the query engine needs at match time:
// category to flat name list (for Q.Source/Q.Sink's priority-1 category mode), atom id to
// AtomSpec (priority-2 atom-id mode), and a sanitizer name set (for CompiledPolicy.IsSanitizer;
// TaintEngine does not call it and marks sanitized flows from the sanitizer nodes Scan
// detects). Grounded in
// original_source's domain/taint/compiled_policy.py, whose own body was not retrieved; this
// mirrors its name and the "compile once, look up many times" role implied by the import
// site in taint_engine.py.
type CompiledPolicy struct {
	byCategory map[string][]string
	byID       map[string]AtomSpec
	sanitizers map[string]bool
}

// Compile indexes a Policy for repeated lookups. Names are deduplicated within a category
// and folded into the flat name list NamesInCategory returns, since
// NodeMatcher.matchSourceOrSink treats every returned string as a plain name to re-match
// via Q.Func/Q.Call/Q.Var; FQNPatterns are not added to that list.
func Compile(p *Policy) *CompiledPolicy {
	c := &CompiledPolicy{
		byCategory: map[string][]string{},
		byID:       map[string]AtomSpec{},
		sanitizers: map[string]bool{},
	}
	if p == nil {
		return c
	}
	for _, a := range p.Atoms {
		c.byID[a.ID] = a
		seen := map[string]bool{}
		var names []string
		for _, existing := range c.byCategory[a.Category] {
			if !seen[existing] {
				seen[existing] = true
				names = append(names, existing)
			}
		}
		for _, n := range a.Names {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
		c.byCategory[a.Category] = names
		if a.Kind == AtomSanitizer {
			for _, n := range a.Names {
				c.sanitizers[n] = true
			}
		}
	}
	return c
}

// NamesInCategory implements query.TaintCategories: every atom name registered under the
// given category, across source/sink/sanitizer atoms alike (a category is a cross-cutting
// grouping, e.g. "user_input" or "sql", not a kind).
func (c *CompiledPolicy) NamesInCategory(category string) []string {
	if c == nil {
		return nil
	}
	return c.byCategory[category]
}

// AtomByID looks up an atom by its policy-assigned id (Q.Source/Q.Sink's priority-2 mode).
func (c *CompiledPolicy) AtomByID(id string) (AtomSpec, bool) {
	if c == nil {
		return AtomSpec{}, false
	}
	a, ok := c.byID[id]
	return a, ok
}

// IsSanitizer reports whether a simple or fully-qualified name is registered as a
// sanitizer atom.
func (c *CompiledPolicy) IsSanitizer(name string) bool {
	if c == nil {
		return false
	}
	if c.sanitizers[name] {
		return true
	}
	if idx := strings.LastIndex(name, "."); idx >= 0 && c.sanitizers[name[idx+1:]] {
		return true
	}
	return false
}
