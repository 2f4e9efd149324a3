package limits

import (
	"errors"
	"math"
	"testing"
)

// TestPixelBufferSize verifies the expected length arithmetic
func TestPixelBufferSize(t *testing.T) {
	tests := []struct {
		name    string
		width   uintptr
		height  uintptr
		want    uintptr
		wantErr error
	}{
		{name: "single pixel", width: 1, height: 1, want: 4},
		{name: "two by two", width: 2, height: 2, want: 16},
		{name: "empty image", width: 0, height: 0, want: 0},
		{name: "zero height", width: 1 << 20, height: 0, want: 0},
		{name: "wide strip", width: 1920, height: 1, want: 7680},
		{name: "product overflows", width: ^uintptr(0), height: 2, wantErr: ErrDimensionOverflow},
		{name: "times four overflows", width: ^uintptr(0) / 2, height: 1, wantErr: ErrDimensionOverflow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PixelBufferSize(tt.width, tt.height)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("PixelBufferSize() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("PixelBufferSize() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("PixelBufferSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

// TestValidatePixelBuffer tests the length validation function
func TestValidatePixelBuffer(t *testing.T) {
	tests := []struct {
		name    string
		length  uintptr
		width   uintptr
		height  uintptr
		wantErr error
	}{
		{name: "exact length", length: 16, width: 2, height: 2},
		{name: "one byte short", length: 15, width: 2, height: 2, wantErr: ErrSizeMismatch},
		{name: "one byte long", length: 17, width: 2, height: 2, wantErr: ErrSizeMismatch},
		{name: "rgb instead of rgba", length: 12, width: 2, height: 2, wantErr: ErrSizeMismatch},
		{name: "empty", length: 0, width: 0, height: 0},
		{name: "overflow is a mismatch", length: 16, width: ^uintptr(0), height: 3, wantErr: ErrSizeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePixelBuffer(tt.length, tt.width, tt.height)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidatePixelBuffer() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidatePixelBuffer() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestSafeConversions covers the size_t <-> int helpers
func TestSafeConversions(t *testing.T) {
	if v, err := ToInt(42); err != nil || v != 42 {
		t.Errorf("ToInt(42) = %d, %v", v, err)
	}
	if _, err := ToInt(^uintptr(0)); !errors.Is(err, ErrIntegerOverflow) {
		t.Errorf("ToInt(max) error = %v, want ErrIntegerOverflow", err)
	}

	if got := ClampToInt(7); got != 7 {
		t.Errorf("ClampToInt(7) = %d", got)
	}
	if got := ClampToInt(^uintptr(0)); got != math.MaxInt {
		t.Errorf("ClampToInt(max) = %d, want %d", got, math.MaxInt)
	}

	if got := ClampToSize(-3); got != 0 {
		t.Errorf("ClampToSize(-3) = %d, want 0", got)
	}
	if got := ClampToSize(10); got != 10 {
		t.Errorf("ClampToSize(10) = %d, want 10", got)
	}

	if got := ClampToInt32(-5); got != -5 {
		t.Errorf("ClampToInt32(-5) = %d", got)
	}
	if got := ClampToInt32(math.MaxInt); got != math.MaxInt32 {
		t.Errorf("ClampToInt32(MaxInt) = %d, want %d", got, math.MaxInt32)
	}
	if got := ClampToInt32(math.MinInt); got != math.MinInt32 {
		t.Errorf("ClampToInt32(MinInt) = %d, want %d", got, math.MinInt32)
	}
}
