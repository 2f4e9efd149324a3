package bridge

import (
	"errors"

	"github.com/opd-ai/vtracer/limits"
)

// Sentinel errors for the boundary. Each one collapses to a single status
// code; see EntryPoint.Status.
var (
	// ErrInvalidParameter indicates a required pointer was nil or a selector
	// was out of range.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidInputPath indicates the input path is not valid UTF-8.
	ErrInvalidInputPath = errors.New("invalid input path")

	// ErrInvalidOutputPath indicates the output path is not valid UTF-8.
	ErrInvalidOutputPath = errors.New("invalid output path")

	// ErrSizeMismatch indicates a pixel buffer length that disagrees with
	// the declared dimensions.
	ErrSizeMismatch = limits.ErrSizeMismatch

	// ErrEncodingFailed indicates the document could not be handed out as a
	// NUL-terminated text buffer.
	ErrEncodingFailed = errors.New("encoding failed")

	// ErrConversionFailed indicates the engine reported an error or panicked.
	ErrConversionFailed = errors.New("conversion failed")
)
