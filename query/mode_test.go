package query_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/josongsong/semantica-codegraph/query"
)

func TestPresetFor_RealtimeMatchesSpecTable(t *testing.T) {
	p := query.PresetFor(query.ModeRealtime)
	assert.Equal(t, 3, p.Depth)
	assert.Equal(t, 10, p.Paths)
	assert.Equal(t, 1000, p.Nodes)
	assert.Equal(t, 100*time.Millisecond, p.Timeout)
	assert.False(t, p.ContextSensitive)
	assert.False(t, p.AliasSensitive)
}

func TestPresetFor_FullEnablesContextAndAliasSensitivity(t *testing.T) {
	p := query.PresetFor(query.ModeFull)
	assert.Equal(t, 20, p.Depth)
	assert.True(t, p.ContextSensitive)
	assert.Equal(t, 2, p.ContextK)
	assert.True(t, p.AliasSensitive)
}

func TestPresetFor_UnknownModeDefaultsToPR(t *testing.T) {
	p := query.PresetFor(query.Mode("nonsense"))
	assert.Equal(t, query.PresetFor(query.ModePR), p)
}

func TestPreset_ApplyOverridesNonNilFieldsOnly(t *testing.T) {
	p := query.PresetFor(query.ModePR)
	depth := 7
	p2 := p.Apply(query.Overrides{Depth: &depth})
	assert.Equal(t, 7, p2.Depth)
	assert.Equal(t, p.Paths, p2.Paths)
}

type fakeLogger struct{ calls []string }

func (f *fakeLogger) Printf(format string, args ...any) {
	f.calls = append(f.calls, format)
}

func TestPreset_ApplyRawOverridesLogsUnknownKeys(t *testing.T) {
	logger := &fakeLogger{}
	p := query.PresetFor(query.ModePR).ApplyRawOverrides(map[string]interface{}{
		"depth":        5,
		"bogus_option": true,
	}, logger)
	assert.Equal(t, 5, p.Depth)
	assert.Len(t, logger.calls, 1)
}
