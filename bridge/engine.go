package bridge

import (
	"fmt"

	"github.com/opd-ai/vtracer"
)

// Engine is the conversion engine as seen from the boundary.
type Engine interface {
	// ConvertFile reads a raster image at in and writes an SVG document to out.
	ConvertFile(in, out string, cfg vtracer.Config) error
	// ConvertBuffer traces an in-memory image. The result renders to SVG
	// text through String.
	ConvertBuffer(img vtracer.ColorImage, cfg vtracer.Config) (fmt.Stringer, error)
}

// VTracer adapts the vtracer package to Engine.
type VTracer struct{}

var _ Engine = VTracer{}

// ConvertFile implements Engine.
func (VTracer) ConvertFile(in, out string, cfg vtracer.Config) error {
	return vtracer.ConvertFile(in, out, cfg)
}

// ConvertBuffer implements Engine.
func (VTracer) ConvertBuffer(img vtracer.ColorImage, cfg vtracer.Config) (fmt.Stringer, error) {
	doc, err := vtracer.Convert(img, cfg)
	if err != nil {
		return nil, err
	}
	return doc, nil
}
