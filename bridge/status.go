package bridge

import (
	"errors"
	"fmt"
)

// Status is the integer returned across the C boundary. Zero is success;
// every failure is negative. Values are fixed forever: foreign wrappers
// dispatch on them.
type Status int32

// Codes of vtracer_convert_file.
const (
	StatusOK                Status = 0
	StatusInvalidParameter  Status = -1
	StatusInvalidInputPath  Status = -2
	StatusInvalidOutputPath Status = -3
	StatusConversionFailed  Status = -4
)

// Codes of vtracer_convert_bytes that differ from the file entry point.
// They share numeric values with the path codes, so a Status is only
// meaningful together with the EntryPoint that returned it.
const (
	StatusSizeMismatch   Status = -2
	StatusEncodingFailed Status = -3
)

// EntryPoint identifies which exported function a Status came from.
type EntryPoint uint8

const (
	EntryFile EntryPoint = iota
	EntryBuffer
)

type statusMapping struct {
	err    error
	status Status
	name   string
}

// ConversionFailed is matched first: validation errors never wrap it, while
// engine errors may wrap anything.
var fileStatuses = []statusMapping{
	{ErrConversionFailed, StatusConversionFailed, "ConversionFailed"},
	{ErrInvalidParameter, StatusInvalidParameter, "InvalidParameter"},
	{ErrInvalidInputPath, StatusInvalidInputPath, "InvalidInputPath"},
	{ErrInvalidOutputPath, StatusInvalidOutputPath, "InvalidOutputPath"},
}

var bufferStatuses = []statusMapping{
	{ErrConversionFailed, StatusConversionFailed, "ConversionFailed"},
	{ErrInvalidParameter, StatusInvalidParameter, "InvalidParameter"},
	{ErrSizeMismatch, StatusSizeMismatch, "SizeMismatch"},
	{ErrEncodingFailed, StatusEncodingFailed, "EncodingFailed"},
}

func (e EntryPoint) table() []statusMapping {
	if e == EntryBuffer {
		return bufferStatuses
	}
	return fileStatuses
}

// String returns the C symbol of the entry point.
func (e EntryPoint) String() string {
	switch e {
	case EntryFile:
		return "vtracer_convert_file"
	case EntryBuffer:
		return "vtracer_convert_bytes"
	default:
		return fmt.Sprintf("EntryPoint(%d)", uint8(e))
	}
}

// Status collapses err to the code this entry point reports for it. Errors
// outside the entry point's taxonomy report ConversionFailed.
func (e EntryPoint) Status(err error) Status {
	if err == nil {
		return StatusOK
	}
	for _, m := range e.table() {
		if errors.Is(err, m.err) {
			return m.status
		}
	}
	return StatusConversionFailed
}

// StatusName returns the symbolic name of s as reported by this entry point.
func (e EntryPoint) StatusName(s Status) string {
	if s == StatusOK {
		return "OK"
	}
	for _, m := range e.table() {
		if m.status == s {
			return m.name
		}
	}
	return fmt.Sprintf("Status(%d)", int32(s))
}
