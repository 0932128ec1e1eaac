// Package audio defines the spatial-audio vocabulary shared with the
// runtime: rendering quality modes and room surface materials. The
// binaural rendering engine itself lives in the runtime; this package
// only names the values crossing the boundary.
package audio

import "errors"

var ErrUnknownMaterial = errors.New("unknown audio material")

// SoundID identifies a sound object or sound field owned by the
// runtime.
type SoundID int32

// RenderingMode balances CPU load against rendering quality.
type RenderingMode int32

const (
	// StereoPanning pans all sound objects in plain stereo, disabling
	// HRTF-based rendering.
	StereoPanning RenderingMode = iota
	// BinauralLowQuality renders over a virtual array of 8
	// loudspeakers in a cube around the listener's head.
	BinauralLowQuality
	// BinauralHighQuality renders over 16 virtual loudspeakers in an
	// approximate equidistribution around the listener's head.
	BinauralHighQuality

	numRenderingModes
)

// Known reports whether m is a defined rendering mode.
func (m RenderingMode) Known() bool { return m >= StereoPanning && m < numRenderingModes }

func (m RenderingMode) String() string {
	switch m {
	case StereoPanning:
		return "stereo_panning"
	case BinauralLowQuality:
		return "binaural_low_quality"
	case BinauralHighQuality:
		return "binaural_high_quality"
	default:
		return "unknown"
	}
}

// MaterialType names a room surface material used to set room
// acoustic properties.
type MaterialType int32

const (
	// MaterialTransparent reflects no sound.
	MaterialTransparent MaterialType = iota
	MaterialAcousticCeilingTiles
	MaterialBrickBare
	MaterialBrickPainted
	MaterialConcreteBlockCoarse
	MaterialConcreteBlockPainted
	MaterialCurtainHeavy
	MaterialFiberGlassInsulation
	MaterialGlassThin
	MaterialGlassThick
	MaterialGrass
	MaterialLinoleumOnConcrete
	MaterialMarble
	MaterialParquetOnConcrete
	MaterialPlasterRough
	MaterialPlasterSmooth
	MaterialPlywoodPanel
	MaterialPolishedConcreteOrTile
	MaterialSheetRock
	MaterialWaterOrIceSurface
	MaterialWoodCeiling
	MaterialWoodPanel

	numMaterials
)

var materialNames = [numMaterials]string{
	"transparent",
	"acoustic_ceiling_tiles",
	"brick_bare",
	"brick_painted",
	"concrete_block_coarse",
	"concrete_block_painted",
	"curtain_heavy",
	"fiber_glass_insulation",
	"glass_thin",
	"glass_thick",
	"grass",
	"linoleum_on_concrete",
	"marble",
	"parquet_on_concrete",
	"plaster_rough",
	"plaster_smooth",
	"plywood_panel",
	"polished_concrete_or_tile",
	"sheet_rock",
	"water_or_ice_surface",
	"wood_ceiling",
	"wood_panel",
}

// Known reports whether m is a defined material.
func (m MaterialType) Known() bool { return m >= MaterialTransparent && m < numMaterials }

func (m MaterialType) String() string {
	if !m.Known() {
		return "unknown"
	}
	return materialNames[m]
}

// ParseMaterial resolves a material by its canonical name.
func ParseMaterial(name string) (MaterialType, error) {
	for i, n := range materialNames {
		if n == name {
			return MaterialType(i), nil
		}
	}
	return 0, ErrUnknownMaterial
}
