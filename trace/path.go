package trace

import (
	"strconv"

	"honnef.co/go/curve"
)

// angleEpsilon absorbs rounding in turn angles so that a 45 degree step
// compares equal to a 45 degree threshold.
const angleEpsilon = 1e-9

// Mode selects how a loop becomes path data.
type Mode uint8

const (
	// ModeNone keeps every pixel step.
	ModeNone Mode = iota
	// ModePolygon keeps only direction changes.
	ModePolygon
	// ModeSpline smooths staircases and fits cubic curves.
	ModeSpline
)

// Options controls curve fitting in ModeSpline. The other modes ignore it.
type Options struct {
	Mode            Mode
	CornerThreshold float64 // degrees; sharper turns stay sharp corners
	LengthThreshold float64 // pixels; shorter polygon edges are staircase noise
	MaxIterations   int     // subdivision smoothing rounds
	SpliceThreshold float64 // degrees; sharper turns start a new curve
}

// Trace converts a lattice loop into a closed path. The path starts with a
// MoveTo and ends with a ClosePath.
func Trace(l Loop, opts Options) curve.BezPath {
	switch opts.Mode {
	case ModeNone:
		return polyline(Staircase(l))
	case ModePolygon:
		return polyline(Polygon(l))
	default:
		return spline(Polygon(l), opts)
	}
}

func polyline(pts []curve.Point) curve.BezPath {
	if len(pts) == 0 {
		return nil
	}
	p := make(curve.BezPath, 0, len(pts)+1)
	p.MoveTo(pts[0])
	for _, q := range pts[1:] {
		p.LineTo(q)
	}
	p.ClosePath()
	return p
}

// AppendSVG appends p as SVG path data. digits < 0 keeps full precision;
// otherwise coordinates are rounded to that many decimals with trailing
// zeros dropped.
func AppendSVG(dst []byte, p curve.BezPath, digits int) []byte {
	for i, el := range p {
		if i > 0 {
			dst = append(dst, ' ')
		}
		switch el.Kind {
		case curve.MoveToKind:
			dst = append(dst, 'M')
			dst = appendPoint(dst, el.P0, digits)
		case curve.LineToKind:
			dst = append(dst, 'L')
			dst = appendPoint(dst, el.P0, digits)
		case curve.QuadToKind:
			dst = append(dst, 'Q')
			dst = appendPoint(dst, el.P0, digits)
			dst = append(dst, ' ')
			dst = appendPoint(dst, el.P1, digits)
		case curve.CubicToKind:
			dst = append(dst, 'C')
			dst = appendPoint(dst, el.P0, digits)
			dst = append(dst, ' ')
			dst = appendPoint(dst, el.P1, digits)
			dst = append(dst, ' ')
			dst = appendPoint(dst, el.P2, digits)
		case curve.ClosePathKind:
			dst = append(dst, 'Z')
		}
	}
	return dst
}

func appendPoint(dst []byte, p curve.Point, digits int) []byte {
	dst = AppendCoord(dst, p.X, digits)
	dst = append(dst, ' ')
	return AppendCoord(dst, p.Y, digits)
}

// AppendCoord formats one coordinate. digits < 0 keeps full precision.
func AppendCoord(dst []byte, v float64, digits int) []byte {
	if digits < 0 {
		return strconv.AppendFloat(dst, v+0, 'f', -1, 64)
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, v, 'f', digits, 64)
	if digits > 0 {
		for dst[len(dst)-1] == '0' {
			dst = dst[:len(dst)-1]
		}
		if dst[len(dst)-1] == '.' {
			dst = dst[:len(dst)-1]
		}
	}
	if string(dst[start:]) == "-0" {
		dst = append(dst[:start], '0')
	}
	return dst
}
