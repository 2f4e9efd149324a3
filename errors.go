package vtracer

import "errors"

// Sentinel errors for conversion operations.
// These errors enable reliable error classification using errors.Is().
var (
	// ErrInvalidImage indicates pixel data that disagrees with the image dimensions.
	ErrInvalidImage = errors.New("invalid image")

	// ErrInvalidConfig indicates a configuration value that cannot be parsed.
	ErrInvalidConfig = errors.New("invalid config")

	// ErrReadImage indicates the input file could not be opened or read.
	ErrReadImage = errors.New("read image")

	// ErrDecodeImage indicates the input file is not a supported raster format.
	ErrDecodeImage = errors.New("decode image")

	// ErrTrace indicates that tracing a cluster failed, including by panic.
	ErrTrace = errors.New("trace cluster")

	// ErrWriteSVG indicates the output document could not be written.
	ErrWriteSVG = errors.New("write svg")
)
