// Package limits provides centralized size validation for pixel buffers.
// This ensures consistent validation across the boundary and the engine.
package limits

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

const (
	// BytesPerPixel is the width of one interleaved RGBA pixel.
	BytesPerPixel = 4
)

var (
	// ErrSizeMismatch indicates a buffer length that disagrees with its dimensions
	ErrSizeMismatch = errors.New("pixel buffer size mismatch")

	// ErrDimensionOverflow indicates width*height*4 does not fit in a machine word
	ErrDimensionOverflow = fmt.Errorf("%w: dimensions overflow", ErrSizeMismatch)

	// ErrIntegerOverflow indicates a size_t value that does not fit in an int
	ErrIntegerOverflow = errors.New("integer overflow")
)

// PixelBufferSize returns width*height*BytesPerPixel, or ErrDimensionOverflow
// when the product does not fit in a uintptr.
func PixelBufferSize(width, height uintptr) (uintptr, error) {
	hi, pixels := bits.Mul64(uint64(width), uint64(height))
	if hi != 0 {
		return 0, fmt.Errorf("%w: %dx%d", ErrDimensionOverflow, width, height)
	}
	hi, size := bits.Mul64(pixels, BytesPerPixel)
	if hi != 0 || size > uint64(^uintptr(0)) {
		return 0, fmt.Errorf("%w: %dx%d", ErrDimensionOverflow, width, height)
	}
	return uintptr(size), nil
}

// ValidatePixelBuffer checks that length is exactly width*height*BytesPerPixel.
// Returns an error with context including the declared and expected sizes.
func ValidatePixelBuffer(length, width, height uintptr) error {
	expected, err := PixelBufferSize(width, height)
	if err != nil {
		return err
	}
	if length != expected {
		return fmt.Errorf("%w: got %d bytes, want %d for %dx%d", ErrSizeMismatch, length, expected, width, height)
	}
	return nil
}

// ToInt safely converts a size_t value to int, checking for overflow.
//
// CWE-190: Integer Overflow or Wraparound
func ToInt(v uintptr) (int, error) {
	if uint64(v) > math.MaxInt {
		return 0, fmt.Errorf("%w: %d exceeds int max %d", ErrIntegerOverflow, v, math.MaxInt)
	}
	return int(v), nil
}

// ClampToInt converts a size_t value to int, saturating at math.MaxInt.
func ClampToInt(v uintptr) int {
	if uint64(v) > math.MaxInt {
		return math.MaxInt
	}
	return int(v)
}

// ClampToSize converts an int to size_t, mapping negative values to zero.
func ClampToSize(v int) uintptr {
	if v < 0 {
		return 0
	}
	return uintptr(v)
}

// ClampToInt32 converts an int to a C int, saturating at the int32 range.
func ClampToInt32(v int) int32 {
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	if v < math.MinInt32 {
		return math.MinInt32
	}
	return int32(v)
}
