// Package limits provides centralized size arithmetic and validation for raw
// pixel buffers crossing the C boundary. Every length, width and height that
// arrives from a foreign caller is checked here before any memory is touched.
//
// # Pixel Buffer Layout
//
// Buffers are tightly packed RGBA, BytesPerPixel (4) bytes per pixel, row
// major, with no padding between rows. The only accepted length for a
// width x height image is therefore width*height*4:
//
//	err := limits.ValidatePixelBuffer(length, width, height)
//	if err != nil {
//	    // ErrSizeMismatch or ErrDimensionOverflow
//	}
//
// # Overflow Handling
//
// The product width*height*4 is computed with full-width multiplication. A
// product that does not fit in a uintptr can never equal a real buffer
// length, so it is reported as ErrDimensionOverflow, which wraps
// ErrSizeMismatch:
//
//	errors.Is(err, limits.ErrSizeMismatch) // true for both failure kinds
//
// # Safe Conversions
//
// Values typed size_t on the C side arrive as uintptr. ToInt converts with an
// overflow check (CWE-190) for places where a wrong value must be rejected,
// and ClampToInt saturates for places where any value must be accepted, such
// as configuration fields that are only ever used as upper bounds.
package limits
