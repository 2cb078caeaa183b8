package ir

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscoverFiles_FiltersByExtension(t *testing.T) {
	paths, err := DiscoverFiles(context.Background(), nil, "../inspector/golang/testdata/app", ".go")
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	for _, p := range paths {
		assert.Equal(t, ".go", extOf(p))
	}
}

func TestDiscoverFiles_NoExtensionFilterReturnsEverything(t *testing.T) {
	paths, err := DiscoverFiles(context.Background(), nil, "../inspector/golang/testdata/app")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(paths), 2)
}
