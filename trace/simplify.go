package trace

import (
	"image"
	"math"

	"honnef.co/go/curve"
)

func pt(p image.Point) curve.Point { return curve.Pt(float64(p.X), float64(p.Y)) }

// Staircase returns every lattice step of the loop.
func Staircase(l Loop) []curve.Point {
	pts := make([]curve.Point, len(l))
	for i, p := range l {
		pts[i] = pt(p)
	}
	return pts
}

// Polygon returns the loop with collinear points removed, leaving only the
// points where the outline changes direction.
func Polygon(l Loop) []curve.Point {
	n := len(l)
	if n < 3 {
		return Staircase(l)
	}
	pts := make([]curve.Point, 0, n)
	for i, p := range l {
		prev := l[(i+n-1)%n]
		next := l[(i+1)%n]
		if p.Sub(prev) == next.Sub(p) {
			continue
		}
		pts = append(pts, pt(p))
	}
	return pts
}

// turn returns the change of direction at b, in degrees: 0 for a straight
// continuation, 180 for a reversal.
func turn(a, b, c curve.Point) float64 {
	u := b.Sub(a)
	v := c.Sub(b)
	return math.Atan2(math.Abs(u.Cross(v)), u.Dot(v)) * 180 / math.Pi
}

// smoothStaircase replaces pixel staircases with the polyline through their
// edge midpoints. A polygon vertex next to an edge at least minLength long
// is a real feature and stays in the outline, as does every vertex of a
// plain rectangle.
func smoothStaircase(poly []curve.Point, minLength float64) []curve.Point {
	n := len(poly)
	out := make([]curve.Point, 0, 2*n)
	for i, p := range poly {
		prev := poly[(i+n-1)%n]
		next := poly[(i+1)%n]
		if n == 4 || p.Distance(prev) >= minLength || p.Distance(next) >= minLength {
			out = append(out, p)
		}
		out = append(out, p.Midpoint(next))
	}
	return out
}

// subdivide runs up to rounds passes of four-point interpolating
// subdivision over the closed polyline, splitting every edge longer than
// maxLength. Edges touching a corner are split at their midpoint so the
// corner stays sharp. It stops early once no edge is split.
func subdivide(pts []curve.Point, corner []bool, maxLength float64, rounds int) ([]curve.Point, []bool) {
	if maxLength <= 0 {
		return pts, corner
	}
	for r := 0; r < rounds; r++ {
		n := len(pts)
		out := make([]curve.Point, 0, 2*n)
		outCorner := make([]bool, 0, 2*n)
		split := false
		for i, p := range pts {
			next := pts[(i+1)%n]
			out = append(out, p)
			outCorner = append(outCorner, corner[i])
			if p.Distance(next) <= maxLength {
				continue
			}
			split = true
			mid := p.Midpoint(next)
			if !corner[i] && !corner[(i+1)%n] {
				prev := pts[(i+n-1)%n]
				after := pts[(i+2)%n]
				// (-prev + 9p + 9next - after) / 16
				bulge := p.Sub(prev).Add(next.Sub(after)).Mul(1.0 / 16)
				mid = mid.Add(bulge)
			}
			out = append(out, mid)
			outCorner = append(outCorner, false)
		}
		if !split {
			break
		}
		pts, corner = out, outCorner
	}
	return pts, corner
}

// collinear reports whether every point of run lies on the chord between
// its ends.
func collinear(run []curve.Point) bool {
	first, last := run[0], run[len(run)-1]
	chord := last.Sub(first)
	length := chord.Hypot()
	if length == 0 {
		return false
	}
	for _, p := range run[1 : len(run)-1] {
		d := p.Sub(first)
		if off := chord.Cross(d) / length; math.Abs(off) > 1e-9 {
			return false
		}
		if t := d.Dot(chord) / (length * length); t < 0 || t > 1 {
			return false
		}
	}
	return true
}
