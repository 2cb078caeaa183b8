package query

import "time"

// Mode selects one of the three traversal presets spec.md §4.3.6 defines.
type Mode string

const (
	ModeRealtime Mode = "REALTIME"
	ModePR       Mode = "PR"
	ModeFull     Mode = "FULL"
)

// Preset bundles the safety limits and precision settings one Mode resolves to.
type Preset struct {
	Depth             int
	Paths             int
	Nodes             int
	Timeout           time.Duration
	ContextSensitive  bool
	ContextK          int
	AliasSensitive    bool
	Cacheable         bool
}

var presets = map[Mode]Preset{
	ModeRealtime: {Depth: 3, Paths: 10, Nodes: 1_000, Timeout: 100 * time.Millisecond, Cacheable: true},
	ModePR:       {Depth: 10, Paths: 100, Nodes: 10_000, Timeout: 5 * time.Second, Cacheable: true},
	ModeFull:     {Depth: 20, Paths: 500, Nodes: 100_000, Timeout: 10 * time.Minute, ContextSensitive: true, ContextK: 2, AliasSensitive: true},
}

// PresetFor returns the base preset for a mode, defaulting to PR for unknown modes.
func PresetFor(m Mode) Preset {
	if p, ok := presets[m]; ok {
		return p
	}
	return presets[ModePR]
}

// Overrides holds user-supplied QueryOptions overrides merged onto a mode preset.
// Unknown keys (passed as a raw map from a config/API layer) are logged, not rejected,
// per spec.md §4.3.6.
type Overrides struct {
	Depth   *int
	Paths   *int
	Nodes   *int
	Timeout *time.Duration
}

// Apply merges non-nil override fields onto the preset, returning the resolved QueryOptions.
func (p Preset) Apply(o Overrides) Preset {
	if o.Depth != nil {
		p.Depth = *o.Depth
	}
	if o.Paths != nil {
		p.Paths = *o.Paths
	}
	if o.Nodes != nil {
		p.Nodes = *o.Nodes
	}
	if o.Timeout != nil {
		p.Timeout = *o.Timeout
	}
	return p
}

// ApplyRawOverrides merges a map of override keys, logging (via logger) any key it does
// not recognise instead of raising — exactly spec.md's "unknown override keys are logged
// but do not raise" behavior.
func (p Preset) ApplyRawOverrides(raw map[string]interface{}, logger Logger) Preset {
	for k, v := range raw {
		switch k {
		case "depth":
			if n, ok := v.(int); ok {
				p.Depth = n
			}
		case "paths":
			if n, ok := v.(int); ok {
				p.Paths = n
			}
		case "nodes":
			if n, ok := v.(int); ok {
				p.Nodes = n
			}
		case "timeout_ms":
			if n, ok := v.(int); ok {
				p.Timeout = time.Duration(n) * time.Millisecond
			}
		default:
			logger.Printf("query: unknown override key %q ignored", k)
		}
	}
	return p
}
