package cluster

import (
	"image"
	"image/color"
	"math"
	"sort"
)

// alphaThreshold is the opacity below which a pixel counts as transparent.
const alphaThreshold = 128

// transparent marks pixels that belong to no cluster.
const transparent = -1

// Options controls how pixels are grouped.
type Options struct {
	// Binary traces dark pixels only, by luminance, and fills them black.
	Binary bool
	// ColorPrecision is the number of significant bits kept per channel.
	// Values are clamped to 1-8.
	ColorPrecision int
	// LayerDifference merges neighboring clusters whose average colors are
	// closer than this on every channel. Ignored in binary mode.
	LayerDifference int
	// FilterSpeckle is the side of the smallest square patch kept. Smaller
	// clusters are merged into their closest neighbor, or dropped when they
	// have none in binary mode.
	FilterSpeckle int
}

// Cluster is one connected region of similar color.
type Cluster struct {
	Color color.RGBA
	Area  int
	Mask  *Mask
}

// component accumulates statistics for a labelled region while merging.
type component struct {
	area    int
	r, g, b int
	bounds  image.Rectangle
	first   int
	adjoins map[int]struct{}
}

func (c *component) color() color.RGBA {
	if c.area == 0 {
		return color.RGBA{A: 0xff}
	}
	return color.RGBA{
		R: uint8((c.r + c.area/2) / c.area),
		G: uint8((c.g + c.area/2) / c.area),
		B: uint8((c.b + c.area/2) / c.area),
		A: 0xff,
	}
}

// Build groups the pixels of an RGBA raster into clusters, ordered by area
// from largest to smallest. Ties keep scan order of the first pixel.
func Build(pixels []byte, width, height int, opts Options) []Cluster {
	if width <= 0 || height <= 0 {
		return nil
	}

	keys := keyPixels(pixels, width, height, opts)
	labels, comps := label(keys, pixels, width, height)
	if len(comps) == 0 {
		return nil
	}

	parent := make([]int, len(comps))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	speckle := speckleArea(opts.FilterSpeckle)
	if !opts.Binary {
		merge(comps, parent, find, speckle, opts.LayerDifference)
	}

	roots := make(map[int]*Cluster)
	var order []int
	for i := range comps {
		r := find(i)
		if r != i {
			continue
		}
		c := comps[r]
		if opts.Binary && c.area < speckle {
			continue
		}
		col := c.color()
		if opts.Binary {
			col = color.RGBA{A: 0xff}
		}
		roots[r] = &Cluster{Color: col, Area: c.area, Mask: newMask(c.bounds)}
		order = append(order, r)
	}

	for i, l := range labels {
		if l == transparent {
			continue
		}
		if cl, ok := roots[find(int(l))]; ok {
			cl.Mask.set(i%width, i/width)
		}
	}

	sort.SliceStable(order, func(a, b int) bool {
		ca, cb := comps[order[a]], comps[order[b]]
		if ca.area != cb.area {
			return ca.area > cb.area
		}
		return ca.first < cb.first
	})

	out := make([]Cluster, 0, len(order))
	for _, r := range order {
		out = append(out, *roots[r])
	}
	return out
}

// keyPixels maps every pixel to its quantized color key, or transparent.
func keyPixels(pixels []byte, width, height int, opts Options) []int32 {
	shift := 8 - clamp(opts.ColorPrecision, 1, 8)
	keys := make([]int32, width*height)
	for i := range keys {
		p := pixels[i*4 : i*4+4 : i*4+4]
		if p[3] < alphaThreshold {
			keys[i] = transparent
			continue
		}
		if opts.Binary {
			if luminance(p[0], p[1], p[2]) < 128 {
				keys[i] = 0
			} else {
				keys[i] = transparent
			}
			continue
		}
		keys[i] = int32(p[0]>>shift)<<16 | int32(p[1]>>shift)<<8 | int32(p[2]>>shift)
	}
	return keys
}

// label finds 4-connected regions of equal key.
func label(keys []int32, pixels []byte, width, height int) ([]int32, []*component) {
	labels := make([]int32, len(keys))
	for i := range labels {
		labels[i] = transparent
	}

	var comps []*component
	stack := make([]int, 0, 64)
	for start, key := range keys {
		if key == transparent || labels[start] != transparent {
			continue
		}
		id := int32(len(comps))
		c := &component{first: start, adjoins: make(map[int]struct{})}
		comps = append(comps, c)

		labels[start] = id
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			i := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			x, y := i%width, i/width
			c.area++
			c.r += int(pixels[i*4])
			c.g += int(pixels[i*4+1])
			c.b += int(pixels[i*4+2])
			c.bounds = c.bounds.Union(image.Rect(x, y, x+1, y+1))

			for _, n := range neighbors(x, y, width, height) {
				if n < 0 || keys[n] != key || labels[n] != transparent {
					continue
				}
				labels[n] = id
				stack = append(stack, n)
			}
		}
	}

	for i, l := range labels {
		if l == transparent {
			continue
		}
		x, y := i%width, i/width
		if x+1 < width {
			link(comps, l, labels[i+1])
		}
		if y+1 < height {
			link(comps, l, labels[i+width])
		}
	}
	return labels, comps
}

func link(comps []*component, a, b int32) {
	if b == transparent || a == b {
		return
	}
	comps[a].adjoins[int(b)] = struct{}{}
	comps[b].adjoins[int(a)] = struct{}{}
}

func neighbors(x, y, width, height int) [4]int {
	n := [4]int{-1, -1, -1, -1}
	i := y*width + x
	if x > 0 {
		n[0] = i - 1
	}
	if x+1 < width {
		n[1] = i + 1
	}
	if y > 0 {
		n[2] = i - width
	}
	if y+1 < height {
		n[3] = i + width
	}
	return n
}

// merge folds speckles and near-identical layers into their closest
// neighbor, smallest components first.
func merge(comps []*component, parent []int, find func(int) int, speckle, layerDiff int) {
	order := make([]int, len(comps))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool { return comps[order[a]].area < comps[order[b]].area })

	for _, id := range order {
		if find(id) != id {
			continue
		}
		c := comps[id]
		best, bestDist := -1, math.MaxInt
		for n := range c.adjoins {
			rn := find(n)
			if rn == id {
				continue
			}
			d := distance(c.color(), comps[rn].color())
			if d < bestDist || (d == bestDist && rn < best) {
				best, bestDist = rn, d
			}
		}
		if best < 0 {
			continue
		}
		if c.area >= speckle && bestDist >= layerDiff {
			continue
		}

		dst := comps[best]
		dst.area += c.area
		dst.r += c.r
		dst.g += c.g
		dst.b += c.b
		dst.bounds = dst.bounds.Union(c.bounds)
		if c.first < dst.first {
			dst.first = c.first
		}
		for n := range c.adjoins {
			if n != best {
				dst.adjoins[n] = struct{}{}
			}
		}
		parent[id] = best
	}
}

// distance is the largest per-channel difference between two colors.
func distance(a, b color.RGBA) int {
	d := absDiff(a.R, b.R)
	if g := absDiff(a.G, b.G); g > d {
		d = g
	}
	if bl := absDiff(a.B, b.B); bl > d {
		d = bl
	}
	return d
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

func luminance(r, g, b uint8) int {
	return (299*int(r) + 587*int(g) + 114*int(b)) / 1000
}

func speckleArea(side int) int {
	if side <= 0 {
		return 0
	}
	if side > 1<<15 {
		return math.MaxInt
	}
	return side * side
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
