// Package taint resolves Q.Source/Q.Sink category and atom-id lookups against a
// YAML-driven policy, grounded in original_source's domain/taint/{atoms,policy,
// compiled_policy}.py.
package taint

// AtomKind classifies a taint atom as a source, sink, or sanitizer.
type AtomKind string

const (
	AtomSource    AtomKind = "source"
	AtomSink      AtomKind = "sink"
	AtomSanitizer AtomKind = "sanitizer"
)

// AtomSpec is one named taint atom: a category of functions/variables a policy author
// considers a source of untrusted input, a security-sensitive sink, or a sanitizer that
// neutralizes tainted data passing through it.
type AtomSpec struct {
	ID          string   `yaml:"id"`
	Kind        AtomKind `yaml:"kind"`
	Category    string   `yaml:"category"`
	Names       []string `yaml:"names"`
	FQNPatterns []string `yaml:"fqn_patterns"`
}

// Matches reports whether a simple or fully-qualified name belongs to this atom, by exact
// name or by one of its FQN glob patterns.
func (a AtomSpec) Matches(name, fqn string) bool {
	for _, n := range a.Names {
		if n == name || n == fqn {
			return true
		}
	}
	for _, pattern := range a.FQNPatterns {
		if globMatch(pattern, fqn) {
			return true
		}
	}
	return false
}

// globMatch is a small `*`-only glob matcher (path/filepath.Match rejects the `.`-heavy
// dotted FQNs this package matches against, since `.` has no special meaning to policy
// authors the way `/` does to filepath.Match).
func globMatch(pattern, s string) bool {
	if pattern == "" {
		return false
	}
	parts := splitStar(pattern)
	pos := 0
	for i, part := range parts {
		if part == "" {
			continue
		}
		idx := indexFrom(s, part, pos)
		if idx < 0 {
			return false
		}
		if i == 0 && !hasStarPrefix(pattern) && idx != 0 {
			return false
		}
		pos = idx + len(part)
	}
	if !hasStarSuffix(pattern) && len(parts) > 0 {
		last := parts[len(parts)-1]
		if last != "" && pos != len(s) {
			return false
		}
	}
	return true
}

func splitStar(pattern string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '*' {
			parts = append(parts, pattern[start:i])
			start = i + 1
		}
	}
	parts = append(parts, pattern[start:])
	return parts
}

func hasStarPrefix(pattern string) bool { return len(pattern) > 0 && pattern[0] == '*' }
func hasStarSuffix(pattern string) bool { return len(pattern) > 0 && pattern[len(pattern)-1] == '*' }

func indexFrom(s, substr string, from int) int {
	if from > len(s) {
		return -1
	}
	idx := indexOf(s[from:], substr)
	if idx < 0 {
		return -1
	}
	return idx + from
}

func indexOf(s, substr string) int {
	if len(substr) == 0 {
		return 0
	}
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
