package trace

import (
	"errors"
	"fmt"
	"image"
)

// ErrOpenContour indicates a boundary walk that failed to close. It signals a
// Region whose Contains disagrees with its Bounds.
var ErrOpenContour = errors.New("open contour")

// Region is a set of pixels with a bounding box.
type Region interface {
	Bounds() image.Rectangle
	Contains(x, y int) bool
}

// Loop is a closed outline on the pixel lattice. The last point connects
// back to the first. Outer boundaries run clockwise on screen (positive
// Area), holes counter-clockwise (negative Area).
type Loop []image.Point

// Area returns the signed area enclosed by the loop, in pixels.
func (l Loop) Area() int {
	twice := 0
	for i, p := range l {
		q := l[(i+1)%len(l)]
		twice += p.X*q.Y - q.X*p.Y
	}
	return twice / 2
}

// IsHole reports whether the loop bounds a hole.
func (l Loop) IsHole() bool {
	return l.Area() < 0
}

type edge struct {
	from, to image.Point
}

// Outlines walks every boundary of the region and returns the closed loops,
// outer boundaries and holes alike, in scan order of their first edge.
// Each loop keeps the region on its right-hand side.
func Outlines(r Region) ([]Loop, error) {
	b := r.Bounds()

	var edges []edge
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !r.Contains(x, y) {
				continue
			}
			if !r.Contains(x, y-1) {
				edges = append(edges, edge{image.Pt(x, y), image.Pt(x+1, y)})
			}
			if !r.Contains(x+1, y) {
				edges = append(edges, edge{image.Pt(x+1, y), image.Pt(x+1, y+1)})
			}
			if !r.Contains(x, y+1) {
				edges = append(edges, edge{image.Pt(x+1, y+1), image.Pt(x, y+1)})
			}
			if !r.Contains(x-1, y) {
				edges = append(edges, edge{image.Pt(x, y+1), image.Pt(x, y)})
			}
		}
	}

	outgoing := make(map[image.Point][]int, len(edges))
	for i, e := range edges {
		outgoing[e.from] = append(outgoing[e.from], i)
	}

	used := make([]bool, len(edges))
	var loops []Loop
	for i := range edges {
		if used[i] {
			continue
		}
		loop, err := walk(edges, outgoing, used, i)
		if err != nil {
			return nil, err
		}
		loops = append(loops, loop)
	}
	return loops, nil
}

// walk follows unused edges from edges[start] until it returns to the start
// point. At a saddle, where two pixels touch only diagonally, it turns right
// so that diagonal neighbors stay separate shapes.
func walk(edges []edge, outgoing map[image.Point][]int, used []bool, start int) (Loop, error) {
	origin := edges[start].from
	loop := Loop{origin}
	cur := start
	used[cur] = true

	for steps := 0; steps <= len(edges); steps++ {
		e := edges[cur]
		if e.to == origin {
			return loop, nil
		}
		loop = append(loop, e.to)

		dir := e.to.Sub(e.from)
		right := image.Pt(-dir.Y, dir.X)
		next := -1
		for _, cand := range outgoing[e.to] {
			if used[cand] {
				continue
			}
			if next < 0 || edges[cand].to.Sub(edges[cand].from) == right {
				next = cand
			}
		}
		if next < 0 {
			return nil, fmt.Errorf("%w: dead end at %v", ErrOpenContour, e.to)
		}
		used[next] = true
		cur = next
	}
	return nil, fmt.Errorf("%w: loop from %v did not close", ErrOpenContour, origin)
}
