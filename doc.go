// Package vtracer converts raster images into SVG vector graphics.
//
// The engine groups pixels into color clusters, walks the boundary of each
// cluster and turns the resulting outlines into SVG path data, optionally
// smoothed into cubic Bezier curves.
//
// # Getting Started
//
// Convert a file on disk with the default configuration:
//
//	cfg := vtracer.DefaultConfig()
//	if err := vtracer.ConvertFile("logo.png", "logo.svg", cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// Or trace an in-memory image:
//
//	img := vtracer.SolidColorImage(64, 64, color.RGBA{R: 255, A: 255})
//	doc, err := vtracer.Convert(img, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc)
//
// # Core Types
//
//   - [Config]: every tuning parameter, a comparable value type
//   - [ColorImage]: a packed RGBA raster
//   - [SVGFile]: the traced document
//
// # Configuration
//
// [DefaultConfig] returns the built-in defaults. [NewConfigFromPreset]
// starts from one of three tuned presets:
//
//   - [PresetBW]: binary tracing for line art and scans
//   - [PresetPoster]: full color precision for flat artwork
//   - [PresetPhoto]: coarse speckle and layer merging with smooth curves
//
// [Config.ColorMode] chooses between color clustering and binary tracing of
// dark pixels. [Config.Hierarchical] chooses how shapes layer: stacked
// documents paint each shape as a solid outline over larger ones, cutout
// documents also carry the holes of every shape so no two shapes overlap.
// [Config.Mode] selects raw pixel outlines, polygons or splines.
//
// # Input Formats
//
// [ReadImage] and [ConvertFile] decode PNG, JPEG, GIF, BMP, TIFF and WebP.
//
// # Concurrency
//
// All functions are safe for concurrent use. [Convert] traces clusters in
// parallel internally and returns only after every worker has finished.
//
// # Sub-packages
//
//   - cluster: pixel grouping
//   - trace: outline walking, simplification and curve fitting
//   - limits: size and integer-conversion checks shared with the C boundary
//   - bridge: the C boundary logic, independent of cgo
//   - capi: the c-shared library exporting vtracer_* symbols
//   - cmd/vtracer: command-line converter
package vtracer
