package cluster

import "image"

// Mask is a bitmap of the pixels owned by one cluster, stored over the
// cluster's bounding box.
type Mask struct {
	bounds image.Rectangle
	bits   []bool
}

func newMask(bounds image.Rectangle) *Mask {
	return &Mask{bounds: bounds, bits: make([]bool, bounds.Dx()*bounds.Dy())}
}

// NewMask builds a mask from a row-major grid of the given width, anchored
// at (0, 0).
func NewMask(cells []bool, width int) *Mask {
	if width <= 0 {
		return &Mask{}
	}
	height := len(cells) / width
	m := newMask(image.Rect(0, 0, width, height))
	copy(m.bits, cells[:width*height])
	return m
}

// Bounds returns the bounding box of the mask in image coordinates.
func (m *Mask) Bounds() image.Rectangle {
	return m.bounds
}

// Contains reports whether the pixel at (x, y) belongs to the mask. Points
// outside the bounding box are never contained.
func (m *Mask) Contains(x, y int) bool {
	if !(image.Point{X: x, Y: y}).In(m.bounds) {
		return false
	}
	return m.bits[(y-m.bounds.Min.Y)*m.bounds.Dx()+(x-m.bounds.Min.X)]
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	n := 0
	for _, b := range m.bits {
		if b {
			n++
		}
	}
	return n
}

func (m *Mask) set(x, y int) {
	m.bits[(y-m.bounds.Min.Y)*m.bounds.Dx()+(x-m.bounds.Min.X)] = true
}
