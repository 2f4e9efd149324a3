package bridge

import (
	"fmt"

	"github.com/opd-ai/vtracer"
	"github.com/opd-ai/vtracer/limits"
)

// Wire values of the enumeration bytes in ExternalConfig. Decoding accepts
// any byte: unknown values fall through to the last listed alternative.
const (
	ColorModeColor  uint8 = 0
	ColorModeBinary uint8 = 1

	HierarchicalStacked uint8 = 0
	HierarchicalCutout  uint8 = 1

	ModeNone    uint8 = 0
	ModePolygon uint8 = 1
	ModeSpline  uint8 = 2
)

// defaultPathPrecision is written when the engine config leaves precision
// unset, since the flat record has no way to say "unset".
const defaultPathPrecision = 2

// ExternalConfig mirrors the C VtracerConfig struct field for field. The
// order and widths must not change: foreign callers allocate this record
// themselves.
type ExternalConfig struct {
	ColorMode       uint8
	Hierarchical    uint8
	FilterSpeckle   uintptr // size_t
	ColorPrecision  int32
	LayerDifference int32
	Mode            uint8
	CornerThreshold int32
	LengthThreshold float64
	MaxIterations   uintptr // size_t
	SpliceThreshold int32
	PathPrecision   uint32
}

// ToEngineConfig decodes a foreign record. It never fails: every byte
// pattern maps to some engine config.
func ToEngineConfig(c ExternalConfig) vtracer.Config {
	cfg := vtracer.Config{
		FilterSpeckle:   limits.ClampToInt(c.FilterSpeckle),
		ColorPrecision:  int(c.ColorPrecision),
		LayerDifference: int(c.LayerDifference),
		CornerThreshold: int(c.CornerThreshold),
		LengthThreshold: c.LengthThreshold,
		MaxIterations:   limits.ClampToInt(c.MaxIterations),
		SpliceThreshold: int(c.SpliceThreshold),
		PathPrecision:   vtracer.Digits(c.PathPrecision),
	}

	switch c.ColorMode {
	case ColorModeColor:
		cfg.ColorMode = vtracer.ColorModeColor
	default:
		cfg.ColorMode = vtracer.ColorModeBinary
	}

	switch c.Hierarchical {
	case HierarchicalStacked:
		cfg.Hierarchical = vtracer.HierarchicalStacked
	default:
		cfg.Hierarchical = vtracer.HierarchicalCutout
	}

	switch c.Mode {
	case ModeNone:
		cfg.Mode = vtracer.PathSimplifyNone
	case ModePolygon:
		cfg.Mode = vtracer.PathSimplifyPolygon
	default:
		cfg.Mode = vtracer.PathSimplifySpline
	}

	return cfg
}

// FromEngineConfig encodes an engine config as a foreign record. Values out
// of range for the C field types saturate.
func FromEngineConfig(cfg vtracer.Config) ExternalConfig {
	c := ExternalConfig{
		ColorMode:       ColorModeColor,
		Hierarchical:    HierarchicalStacked,
		FilterSpeckle:   limits.ClampToSize(cfg.FilterSpeckle),
		ColorPrecision:  limits.ClampToInt32(cfg.ColorPrecision),
		LayerDifference: limits.ClampToInt32(cfg.LayerDifference),
		Mode:            ModeSpline,
		CornerThreshold: limits.ClampToInt32(cfg.CornerThreshold),
		LengthThreshold: cfg.LengthThreshold,
		MaxIterations:   limits.ClampToSize(cfg.MaxIterations),
		SpliceThreshold: limits.ClampToInt32(cfg.SpliceThreshold),
		PathPrecision:   defaultPathPrecision,
	}
	if cfg.ColorMode == vtracer.ColorModeBinary {
		c.ColorMode = ColorModeBinary
	}
	if cfg.Hierarchical == vtracer.HierarchicalCutout {
		c.Hierarchical = HierarchicalCutout
	}
	switch cfg.Mode {
	case vtracer.PathSimplifyNone:
		c.Mode = ModeNone
	case vtracer.PathSimplifyPolygon:
		c.Mode = ModePolygon
	}
	if cfg.PathPrecision.Set {
		c.PathPrecision = cfg.PathPrecision.Digits
	}
	return c
}

// DefaultExternalConfig returns the engine defaults as a foreign record.
func DefaultExternalConfig() ExternalConfig {
	return FromEngineConfig(vtracer.DefaultConfig())
}

// PresetExternalConfig returns a named preset as a foreign record. preset
// uses the numbering of vtracer.Preset.
func PresetExternalConfig(preset int32) (ExternalConfig, error) {
	p := vtracer.Preset(preset)
	switch p {
	case vtracer.PresetBW, vtracer.PresetPoster, vtracer.PresetPhoto:
		return FromEngineConfig(vtracer.NewConfigFromPreset(p)), nil
	default:
		return ExternalConfig{}, fmt.Errorf("%w: unknown preset %d", ErrInvalidParameter, preset)
	}
}
