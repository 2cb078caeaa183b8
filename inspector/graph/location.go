package graph

// Location pinpoints a node's byte range within its source file and carries the
// raw source text for that range so emitters can reproduce it without re-reading the file.
type Location struct {
	Start int
	End   int
	Raw   string
}

// Config controls how a language inspector walks a source tree.
type Config struct {
	IncludeUnexported bool // include unexported/private symbols
	SkipTests         bool // skip *_test.go / *Test.java style files
	RecursivePackages bool // descend into sub-packages when inspecting a directory
	SkipAsset         bool // skip non-source assets when building a Project
}

// DefaultConfig returns the Config used when an inspector is constructed with nil.
func DefaultConfig() *Config {
	return &Config{
		IncludeUnexported: true,
		SkipTests:         false,
		RecursivePackages: true,
	}
}
