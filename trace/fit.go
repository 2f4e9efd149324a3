package trace

import (
	"slices"

	"honnef.co/go/curve"
)

// fitAccuracy is the largest distance, in pixels, a fitted curve may stray
// from the smoothed outline.
const fitAccuracy = 1.0

// spline smooths the polygon and fits curves between break points. Corners
// break the curve with independent tangents on each side; splice points
// break it but share one tangent so the join stays smooth.
func spline(poly []curve.Point, opts Options) curve.BezPath {
	if len(poly) < 3 {
		return polyline(poly)
	}
	pts := smoothStaircase(poly, opts.LengthThreshold)

	corner := make([]bool, len(pts))
	for i := range pts {
		n := len(pts)
		if turn(pts[(i+n-1)%n], pts[i], pts[(i+1)%n]) > opts.CornerThreshold+angleEpsilon {
			corner[i] = true
		}
	}
	pts, corner = subdivide(pts, corner, opts.LengthThreshold, opts.MaxIterations)
	n := len(pts)

	var breaks []int
	for i := range pts {
		if corner[i] || turn(pts[(i+n-1)%n], pts[i], pts[(i+1)%n]) > opts.SpliceThreshold+angleEpsilon {
			breaks = append(breaks, i)
		}
	}
	if len(breaks) == 0 {
		breaks = []int{0}
	}

	var path curve.BezPath
	path.MoveTo(pts[breaks[0]])
	for k, from := range breaks {
		to := breaks[(k+1)%len(breaks)]
		idx := []int{from}
		for i := (from + 1) % n; ; i = (i + 1) % n {
			idx = append(idx, i)
			if i == to {
				break
			}
		}

		run := make([]curve.Point, len(idx))
		for j, i := range idx {
			run[j] = pts[i]
		}
		if collinear(run) {
			path.LineTo(run[len(run)-1])
			continue
		}
		path = append(path, fitRun(pts, corner, idx)...)
	}

	// The closing edge of a straight run ends where the path began.
	if last := path[len(path)-1]; last.Kind == curve.LineToKind && last.P0 == pts[breaks[0]] {
		path = path[:len(path)-1]
	}
	path.ClosePath()
	return path
}

// fitRun joins the points pts[idx[0]] .. pts[idx[len-1]] with a chain of
// tangent-continuous cubics and lets curve.Simplify merge the chain into as
// few curves as fitAccuracy allows. The result has no leading MoveTo.
func fitRun(pts []curve.Point, corner []bool, idx []int) []curve.PathElement {
	n := len(pts)
	last := len(idx) - 1
	tangent := func(j int) curve.Vec2 {
		i := idx[j]
		prev, next := pts[(i+n-1)%n], pts[(i+1)%n]
		switch {
		case j == 0 && corner[i]:
			return next.Sub(pts[i])
		case j == last && corner[i]:
			return pts[i].Sub(prev)
		}
		return next.Sub(prev)
	}

	var chain curve.BezPath
	chain.MoveTo(pts[idx[0]])
	t0 := unit(tangent(0))
	for j := 0; j < last; j++ {
		a, b := pts[idx[j]], pts[idx[j+1]]
		t1 := unit(tangent(j + 1))
		d := a.Distance(b) / 3
		chain.CubicTo(a.Add(t0.Mul(d)), b.Add(t1.Mul(-d)), b)
		t0 = t1
	}

	fitted := slices.Collect(curve.Simplify(slices.Values(chain), fitAccuracy, nil))
	out := make([]curve.PathElement, 0, len(fitted))
	for _, el := range fitted {
		if el.Kind != curve.MoveToKind && el.Kind != curve.ClosePathKind {
			out = append(out, el)
		}
	}
	return out
}

func unit(v curve.Vec2) curve.Vec2 {
	l := v.Hypot()
	if l == 0 {
		return v
	}
	return v.Mul(1 / l)
}
