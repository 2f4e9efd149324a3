// Package main provides the command-line interface for converting raster
// images to SVG.
//
// # Usage
//
// Convert one file:
//
//	vtracer -preset poster logo.png logo.svg
//
// Convert many files with a bounded worker pool:
//
//	vtracer -batch -out svg/ -workers 4 scans/*.png
//
// Convert files as they are dropped into a directory, until interrupted:
//
//	vtracer -watch inbox/ -out svg/
//
// Serve conversions over HTTP, until interrupted:
//
//	vtracer -serve :8080
//	curl -F image=@logo.png -F preset=poster http://localhost:8080/convert
//
// POST /convert takes the upload in the multipart "image" field and any of
// preset, color_mode, hierarchical, mode, filter_speckle, color_precision,
// layer_difference, corner_threshold, max_iterations, splice_threshold and
// path_precision as form fields. The response is the SVG document.
//
// # Configuration Options
//
// Engine configuration is resolved in layers. The -preset flag (or the
// preset key of the config file) picks the starting point, otherwise the
// engine defaults are used. Keys in the -config YAML file come next, and
// flags given explicitly on the command line win over both:
//
//	# vtracer.yaml
//	preset: photo
//	mode: polygon
//	path_precision: 1
//	workers: 8
//
// Engine flags:
//   - -colormode: color or binary
//   - -hierarchical: stacked or cutout
//   - -mode: none, polygon or spline
//   - -filter-speckle, -color-precision, -layer-difference
//   - -corner-threshold, -length-threshold, -max-iterations, -splice-threshold
//   - -path-precision: decimal places in the output
//
// Logging configuration:
//   - -log-level: debug, info, warn or error (default: info)
//   - -log-json: emit JSON log lines
//
// # Exit Codes
//
//   - 0: every conversion succeeded
//   - 1: at least one conversion failed
//   - 2: invalid command line or config file
package main
