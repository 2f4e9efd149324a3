package vtracer

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"

	"honnef.co/go/curve"

	"github.com/opd-ai/vtracer/trace"
)

// SVGPath is one filled shape of the output document.
type SVGPath struct {
	Color color.RGBA
	Paths []curve.BezPath
}

// SVGFile is a traced vector document.
type SVGFile struct {
	Width     int
	Height    int
	Precision Precision
	Shapes    []SVGPath
}

// String renders the document as SVG markup.
func (f *SVGFile) String() string {
	var b strings.Builder
	_, _ = f.WriteTo(&b)
	return b.String()
}

// WriteTo writes the document as SVG markup to w.
func (f *SVGFile) WriteTo(w io.Writer) (int64, error) {
	digits := -1
	if f.Precision.Set {
		digits = int(f.Precision.Digits)
	}

	buf := make([]byte, 0, 256)
	buf = append(buf, `<?xml version="1.0" encoding="UTF-8"?>`+"\n"...)
	buf = append(buf, `<!-- Generator: vtracer-go -->`+"\n"...)
	buf = append(buf, `<svg version="1.1" xmlns="http://www.w3.org/2000/svg" width="`...)
	buf = strconv.AppendInt(buf, int64(f.Width), 10)
	buf = append(buf, `" height="`...)
	buf = strconv.AppendInt(buf, int64(f.Height), 10)
	buf = append(buf, "\">\n"...)

	for _, shape := range f.Shapes {
		if len(shape.Paths) == 0 {
			continue
		}
		buf = append(buf, `<path d="`...)
		for i, p := range shape.Paths {
			if i > 0 {
				buf = append(buf, ' ')
			}
			buf = trace.AppendSVG(buf, p, digits)
		}
		buf = append(buf, `" fill="`...)
		buf = append(buf, HexColor(shape.Color)...)
		buf = append(buf, "\"/>\n"...)
	}
	buf = append(buf, "</svg>\n"...)

	n, err := w.Write(buf)
	return int64(n), err
}

// HexColor formats c as an upper-case #RRGGBB string.
func HexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
