package vtracer

import (
	"fmt"
	"strings"
)

// ColorMode selects between full-color and two-level tracing.
type ColorMode uint8

const (
	// ColorModeColor clusters by quantized color.
	ColorModeColor ColorMode = iota
	// ColorModeBinary traces dark pixels only.
	ColorModeBinary
)

// String returns the lower-case name of the mode.
func (m ColorMode) String() string {
	switch m {
	case ColorModeColor:
		return "color"
	case ColorModeBinary:
		return "binary"
	default:
		return fmt.Sprintf("ColorMode(%d)", uint8(m))
	}
}

// Hierarchical selects how color layers relate to each other.
type Hierarchical uint8

const (
	// HierarchicalStacked paints layers on top of each other, larger first.
	HierarchicalStacked Hierarchical = iota
	// HierarchicalCutout emits non-overlapping layers with holes cut out.
	HierarchicalCutout
)

// String returns the lower-case name of the layering mode.
func (h Hierarchical) String() string {
	switch h {
	case HierarchicalStacked:
		return "stacked"
	case HierarchicalCutout:
		return "cutout"
	default:
		return fmt.Sprintf("Hierarchical(%d)", uint8(h))
	}
}

// PathSimplifyMode selects how traced outlines are turned into path data.
type PathSimplifyMode uint8

const (
	// PathSimplifyNone keeps every pixel step of the outline.
	PathSimplifyNone PathSimplifyMode = iota
	// PathSimplifyPolygon merges collinear steps into straight edges.
	PathSimplifyPolygon
	// PathSimplifySpline fits cubic Bezier curves between corners.
	PathSimplifySpline
)

// String returns the lower-case name of the simplify mode.
func (m PathSimplifyMode) String() string {
	switch m {
	case PathSimplifyNone:
		return "none"
	case PathSimplifyPolygon:
		return "polygon"
	case PathSimplifySpline:
		return "spline"
	default:
		return fmt.Sprintf("PathSimplifyMode(%d)", uint8(m))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m ColorMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *ColorMode) UnmarshalText(text []byte) error {
	return parseEnum(text, m, ColorModeColor, ColorModeBinary)
}

// MarshalText implements encoding.TextMarshaler.
func (h Hierarchical) MarshalText() ([]byte, error) { return []byte(h.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (h *Hierarchical) UnmarshalText(text []byte) error {
	return parseEnum(text, h, HierarchicalStacked, HierarchicalCutout)
}

// MarshalText implements encoding.TextMarshaler.
func (m PathSimplifyMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *PathSimplifyMode) UnmarshalText(text []byte) error {
	return parseEnum(text, m, PathSimplifyNone, PathSimplifyPolygon, PathSimplifySpline)
}

// parseEnum sets *dst to the value among values whose String matches text.
func parseEnum[T fmt.Stringer](text []byte, dst *T, values ...T) error {
	name := strings.ToLower(strings.TrimSpace(string(text)))
	for _, v := range values {
		if v.String() == name {
			*dst = v
			return nil
		}
	}
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.String()
	}
	return fmt.Errorf("%w: %q is not one of %s", ErrInvalidConfig, text, strings.Join(names, ", "))
}

// Precision is an optional number of decimal digits kept in output
// coordinates. The zero value means full precision.
type Precision struct {
	Digits uint32
	Set    bool
}

// Digits returns a Precision that rounds to n decimal places.
func Digits(n uint32) Precision {
	return Precision{Digits: n, Set: true}
}

// Config holds every tuning parameter of a conversion.
//
// Config is a plain value: copies are independent and two configs can be
// compared with ==.
type Config struct {
	ColorMode       ColorMode
	Hierarchical    Hierarchical
	FilterSpeckle   int // clusters smaller than FilterSpeckle² pixels are discarded or merged
	ColorPrecision  int // significant bits per RGB channel (1-8)
	LayerDifference int // minimum per-channel gap between neighboring layers (0-255)
	Mode            PathSimplifyMode
	CornerThreshold int     // minimum turn in degrees treated as a corner (0-180)
	LengthThreshold float64 // edges shorter than this are smoothed as staircase noise
	MaxIterations   int     // curve fitting refinement cap
	SpliceThreshold int     // minimum turn in degrees that splits a curve (0-180)
	PathPrecision   Precision
}

// DefaultConfig returns the engine's built-in defaults.
func DefaultConfig() Config {
	return Config{
		ColorMode:       ColorModeColor,
		Hierarchical:    HierarchicalStacked,
		FilterSpeckle:   4,
		ColorPrecision:  6,
		LayerDifference: 16,
		Mode:            PathSimplifySpline,
		CornerThreshold: 60,
		LengthThreshold: 4.0,
		MaxIterations:   10,
		SpliceThreshold: 45,
		PathPrecision:   Digits(2),
	}
}

// Preset names a tuned starting configuration.
type Preset int

const (
	PresetBW     Preset = iota // black and white line art
	PresetPoster               // flat-color posters and logos
	PresetPhoto                // photographs
)

// String returns the lower-case name of the preset.
func (p Preset) String() string {
	switch p {
	case PresetBW:
		return "bw"
	case PresetPoster:
		return "poster"
	case PresetPhoto:
		return "photo"
	default:
		return fmt.Sprintf("Preset(%d)", int(p))
	}
}

// ParsePreset maps a preset name back to its value.
func ParsePreset(name string) (Preset, error) {
	var p Preset
	err := p.UnmarshalText([]byte(name))
	return p, err
}

// MarshalText implements encoding.TextMarshaler.
func (p Preset) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Preset) UnmarshalText(text []byte) error {
	return parseEnum(text, p, PresetBW, PresetPoster, PresetPhoto)
}

// NewConfigFromPreset returns DefaultConfig adjusted for the preset. Unknown
// presets return the defaults unchanged.
func NewConfigFromPreset(preset Preset) Config {
	cfg := DefaultConfig()

	switch preset {
	case PresetBW:
		cfg.ColorMode = ColorModeBinary
		cfg.FilterSpeckle = 4
		cfg.ColorPrecision = 6
		cfg.LayerDifference = 16
	case PresetPoster:
		cfg.ColorMode = ColorModeColor
		cfg.FilterSpeckle = 4
		cfg.ColorPrecision = 8
		cfg.LayerDifference = 16
	case PresetPhoto:
		cfg.ColorMode = ColorModeColor
		cfg.FilterSpeckle = 10
		cfg.ColorPrecision = 8
		cfg.LayerDifference = 48
		cfg.CornerThreshold = 180
	}

	return cfg
}
