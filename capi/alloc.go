package main

/*
#include <stdlib.h>
*/
import "C"

import "unsafe"

// cAllocator hands out malloc'd text buffers so foreign callers can hold
// them beyond the call without pinning Go memory.
type cAllocator struct{}

// CopyText never fails: cgo's malloc wrapper aborts the process instead of
// returning NULL.
func (cAllocator) CopyText(s string) (unsafe.Pointer, error) {
	return unsafe.Pointer(C.CString(s)), nil
}

func (cAllocator) Free(p unsafe.Pointer) {
	C.free(p)
}
