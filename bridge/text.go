package bridge

import (
	"strings"
	"unicode/utf8"
	"unsafe"
)

// Allocator produces and releases the NUL-terminated text buffers handed to
// foreign callers. The C library backs it with malloc and free; tests
// substitute a counting fake.
type Allocator interface {
	// CopyText returns a new buffer holding s followed by a NUL byte.
	CopyText(s string) (unsafe.Pointer, error)
	// Free releases a buffer returned by CopyText.
	Free(p unsafe.Pointer)
}

// ReleaseText returns a buffer obtained from ConvertBuffer to the allocator.
// A nil pointer is ignored. Releasing the same buffer twice, or a pointer
// this package did not produce, is undefined.
func (b *Boundary) ReleaseText(p unsafe.Pointer) {
	if p == nil {
		return
	}
	b.alloc.Free(p)
}

// goString copies a NUL-terminated foreign string. ok is false when the
// bytes are not valid UTF-8.
func goString(p unsafe.Pointer) (s string, ok bool) {
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	raw := unsafe.Slice((*byte)(p), n)
	if !utf8.Valid(raw) {
		return "", false
	}
	return string(raw), true
}

// hasNUL reports whether text cannot be represented as a C string.
func hasNUL(text string) bool {
	return strings.IndexByte(text, 0) >= 0
}
