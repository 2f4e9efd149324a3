package vtracer

import (
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoding
	_ "image/jpeg" // register JPEG decoding
	_ "image/png"  // register PNG decoding
	"io"
	"os"
	"runtime"

	"github.com/google/renameio/v2"
	"github.com/sirupsen/logrus"
	_ "golang.org/x/image/bmp"  // register BMP decoding
	_ "golang.org/x/image/tiff" // register TIFF decoding
	_ "golang.org/x/image/webp" // register WebP decoding
	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/vtracer/cluster"
	"github.com/opd-ai/vtracer/trace"
)

// Convert traces img into an SVG document.
//
// Clusters are traced concurrently, bounded by GOMAXPROCS. The document
// lists shapes in cluster order, largest area first, so later shapes paint
// over earlier ones.
func Convert(img ColorImage, cfg Config) (*SVGFile, error) {
	if err := img.validate(); err != nil {
		return nil, err
	}

	clusters := cluster.Build(img.Pixels, img.Width, img.Height, clusterOptions(cfg))
	logrus.WithFields(logrus.Fields{
		"function": "Convert",
		"width":    img.Width,
		"height":   img.Height,
		"clusters": len(clusters),
		"mode":     cfg.Mode.String(),
	}).Debug("Clustered image")

	opts := traceOptions(cfg)
	withHoles := cfg.Hierarchical == HierarchicalCutout
	shapes := make([]SVGPath, len(clusters))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i := range clusters {
		c := clusters[i]
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%w: cluster %d: panic: %v", ErrTrace, i, r)
				}
			}()
			shapes[i], err = traceCluster(c, opts, withHoles)
			if err != nil {
				return fmt.Errorf("%w: cluster %d (%v): %w", ErrTrace, i, c.Mask.Bounds(), err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &SVGFile{
		Width:     img.Width,
		Height:    img.Height,
		Precision: cfg.PathPrecision,
		Shapes:    shapes,
	}, nil
}

// traceCluster outlines one cluster and traces every loop. Holes are kept
// only when withHoles is set. It is a variable so tests can make it fail.
var traceCluster = func(c cluster.Cluster, opts trace.Options, withHoles bool) (SVGPath, error) {
	loops, err := trace.Outlines(c.Mask)
	if err != nil {
		return SVGPath{}, err
	}
	shape := SVGPath{Color: c.Color}
	for _, l := range loops {
		if l.IsHole() && !withHoles {
			continue
		}
		shape.Paths = append(shape.Paths, trace.Trace(l, opts))
	}
	return shape, nil
}

// ConvertImage traces any decoded image and returns the SVG markup.
func ConvertImage(src image.Image, cfg Config) (string, error) {
	doc, err := Convert(FromImage(src), cfg)
	if err != nil {
		return "", err
	}
	return doc.String(), nil
}

// ConvertFile reads a raster image from in, traces it and writes the SVG
// document to out. out is replaced atomically; on failure any previous
// file at out is left untouched.
func ConvertFile(in, out string, cfg Config) error {
	img, err := ReadImage(in)
	if err != nil {
		return err
	}
	doc, err := Convert(img, cfg)
	if err != nil {
		return fmt.Errorf("convert %s: %w", in, err)
	}
	if err := WriteSVG(out, doc); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"function": "ConvertFile",
		"input":    in,
		"output":   out,
		"shapes":   len(doc.Shapes),
	}).Debug("Converted file")
	return nil
}

// ReadImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP file.
func ReadImage(path string) (ColorImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return ColorImage{}, fmt.Errorf("%w: %w", ErrReadImage, err)
	}
	defer f.Close()

	img, err := DecodeImage(f)
	if err != nil {
		return ColorImage{}, fmt.Errorf("%s: %w", path, err)
	}
	return img, nil
}

// DecodeImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP stream.
func DecodeImage(r io.Reader) (ColorImage, error) {
	src, format, err := image.Decode(r)
	if err != nil {
		return ColorImage{}, fmt.Errorf("%w: %w", ErrDecodeImage, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "DecodeImage",
		"format":   format,
		"bounds":   src.Bounds().String(),
	}).Debug("Decoded image")
	return FromImage(src), nil
}

// WriteSVG atomically writes doc to path.
func WriteSVG(path string, doc *SVGFile) error {
	pendingFile, err := renameio.NewPendingFile(path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("%w: create temp file: %w", ErrWriteSVG, err)
	}
	defer func() { _ = pendingFile.Cleanup() }()

	if _, err := doc.WriteTo(pendingFile); err != nil {
		return fmt.Errorf("%w: write %s: %w", ErrWriteSVG, path, err)
	}
	if err := pendingFile.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("%w: replace %s: %w", ErrWriteSVG, path, err)
	}
	return nil
}

func clusterOptions(cfg Config) cluster.Options {
	return cluster.Options{
		Binary:          cfg.ColorMode == ColorModeBinary,
		ColorPrecision:  cfg.ColorPrecision,
		LayerDifference: cfg.LayerDifference,
		FilterSpeckle:   cfg.FilterSpeckle,
	}
}

func traceOptions(cfg Config) trace.Options {
	var mode trace.Mode
	switch cfg.Mode {
	case PathSimplifyNone:
		mode = trace.ModeNone
	case PathSimplifyPolygon:
		mode = trace.ModePolygon
	default:
		mode = trace.ModeSpline
	}
	return trace.Options{
		Mode:            mode,
		CornerThreshold: float64(cfg.CornerThreshold),
		LengthThreshold: cfg.LengthThreshold,
		MaxIterations:   cfg.MaxIterations,
		SpliceThreshold: float64(cfg.SpliceThreshold),
	}
}
