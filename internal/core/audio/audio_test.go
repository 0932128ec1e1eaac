package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialNamesRoundTrip(t *testing.T) {
	for m := MaterialTransparent; m < numMaterials; m++ {
		require.True(t, m.Known())
		parsed, err := ParseMaterial(m.String())
		require.NoError(t, err, "material %s", m)
		assert.Equal(t, m, parsed)
	}

	_, err := ParseMaterial("velvet")
	assert.ErrorIs(t, err, ErrUnknownMaterial)
	assert.Equal(t, "unknown", MaterialType(-1).String())
}

func TestRenderingModes(t *testing.T) {
	assert.True(t, StereoPanning.Known())
	assert.True(t, BinauralHighQuality.Known())
	assert.False(t, RenderingMode(17).Known())
	assert.Equal(t, "binaural_low_quality", BinauralLowQuality.String())
}
