// Package bridge implements the C-callable boundary of the vectorization
// engine without depending on cgo, so that every rule of the boundary can be
// tested with plain Go tests.
//
// The capi package wraps each exported C symbol around one method of
// Boundary and supplies a malloc-backed Allocator. Everything else lives
// here:
//
//   - ExternalConfig, the flat record foreign callers fill in, and its
//     lossless mapping to vtracer.Config (ToEngineConfig, FromEngineConfig)
//   - Boundary.ConvertFile and Boundary.ConvertBuffer, which validate raw
//     pointers and sizes, call the Engine and collapse errors to a Status
//   - Boundary.ReleaseText, which returns text buffers to the Allocator
//
// # Status Codes
//
// Every failure is a wrapped sentinel error inside Go. At the boundary it is
// logged in full through logrus and reduced to one negative integer:
//
//	code                 vtracer_convert_file   vtracer_convert_bytes
//	InvalidParameter     -1                     -1
//	InvalidInputPath     -2
//	InvalidOutputPath    -3
//	SizeMismatch                                -2
//	EncodingFailed                              -3
//	ConversionFailed     -4                     -4
//
// Validation always happens before any side effect: a rejected call never
// writes a file, allocates a buffer or touches the output slot.
//
// # Ownership
//
// Pointers received from the caller are read during the call only. Pixel
// data is copied before the engine sees it. A text buffer returned through
// the output slot belongs to the caller, who must release it exactly once
// with vtracer_free_string.
//
// # Logging
//
// ConfigureLogging applies VTRACER_LOG_LEVEL (default warn) and
// VTRACER_LOG_FORMAT (text or json) to a logrus logger.
package bridge
