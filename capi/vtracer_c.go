package main

/*
#include <stddef.h>
#include <stdint.h>
#include <stdlib.h>

typedef struct VtracerConfig {
    uint8_t color_mode;
    uint8_t hierarchical;
    size_t filter_speckle;
    int color_precision;
    int layer_difference;
    uint8_t mode;
    int corner_threshold;
    double length_threshold;
    size_t max_iterations;
    int splice_threshold;
    unsigned int path_precision;
} VtracerConfig;
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vtracer/bridge"
)

// This is the main package required for building as c-shared
// It provides C-compatible wrappers for the Go vtracer implementation

func main() {} // Required for c-shared build mode

// The Go mirror is reinterpreted in place as the C struct, so the two must
// have the same size. Either array length underflows if they differ.
const (
	goConfigSize = unsafe.Sizeof(bridge.ExternalConfig{})
	cConfigSize  = unsafe.Sizeof(C.VtracerConfig{})
)

var (
	_ [goConfigSize - cConfigSize]byte
	_ [cConfigSize - goConfigSize]byte
)

var boundary = bridge.New(bridge.VTracer{}, cAllocator{})

// vtracer_default_config returns the engine defaults.
//
//export vtracer_default_config
func vtracer_default_config() C.VtracerConfig {
	cfg := bridge.DefaultExternalConfig()
	return *(*C.VtracerConfig)(unsafe.Pointer(&cfg))
}

// vtracer_preset_config fills out with a tuned preset: 0 black and white,
// 1 poster, 2 photo. Returns 0, or -1 for a nil out or unknown preset.
//
//export vtracer_preset_config
func vtracer_preset_config(preset C.int, out *C.VtracerConfig) C.int {
	if out == nil {
		return C.int(bridge.StatusInvalidParameter)
	}
	cfg, err := bridge.PresetExternalConfig(int32(preset))
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "vtracer_preset_config",
			"preset":   int(preset),
			"error":    err.Error(),
		}).Warn("Unknown preset")
		return C.int(bridge.StatusInvalidParameter)
	}
	*out = *(*C.VtracerConfig)(unsafe.Pointer(&cfg))
	return C.int(bridge.StatusOK)
}

// vtracer_convert_file converts the image at input_path to an SVG file at
// output_path. Returns 0 on success, -1 for a nil argument, -2 or -3 for a
// path that is not UTF-8 and -4 when conversion fails.
//
//export vtracer_convert_file
func vtracer_convert_file(input_path *C.char, output_path *C.char, config *C.VtracerConfig) C.int {
	status := boundary.ConvertFile(unsafe.Pointer(input_path), unsafe.Pointer(output_path), externalConfig(config))
	return C.int(status)
}

// vtracer_convert_bytes converts image_len bytes of RGBA pixels into SVG
// text stored in *output. Returns 0 on success, -1 for a nil argument, -2
// when image_len is not width*height*4, -3 when the text cannot be handed
// out and -4 when conversion fails. The text must be released with
// vtracer_free_string.
//
//export vtracer_convert_bytes
func vtracer_convert_bytes(image_data *C.uchar, image_len C.size_t, width C.size_t, height C.size_t, config *C.VtracerConfig, output **C.char) C.int {
	status := boundary.ConvertBuffer(
		unsafe.Pointer(image_data),
		uintptr(image_len),
		uintptr(width),
		uintptr(height),
		externalConfig(config),
		(*unsafe.Pointer)(unsafe.Pointer(output)),
	)
	return C.int(status)
}

// vtracer_free_string releases text returned by vtracer_convert_bytes.
// NULL is ignored.
//
//export vtracer_free_string
func vtracer_free_string(s *C.char) {
	boundary.ReleaseText(unsafe.Pointer(s))
}

func externalConfig(config *C.VtracerConfig) *bridge.ExternalConfig {
	if config == nil {
		return nil
	}
	return (*bridge.ExternalConfig)(unsafe.Pointer(config))
}

// configLayoutMismatches lists every field whose offset differs between the
// C struct and its Go mirror.
func configLayoutMismatches() []string {
	var c C.VtracerConfig
	var g bridge.ExternalConfig

	fields := []struct {
		name  string
		cOff  uintptr
		goOff uintptr
	}{
		{"color_mode", unsafe.Offsetof(c.color_mode), unsafe.Offsetof(g.ColorMode)},
		{"hierarchical", unsafe.Offsetof(c.hierarchical), unsafe.Offsetof(g.Hierarchical)},
		{"filter_speckle", unsafe.Offsetof(c.filter_speckle), unsafe.Offsetof(g.FilterSpeckle)},
		{"color_precision", unsafe.Offsetof(c.color_precision), unsafe.Offsetof(g.ColorPrecision)},
		{"layer_difference", unsafe.Offsetof(c.layer_difference), unsafe.Offsetof(g.LayerDifference)},
		{"mode", unsafe.Offsetof(c.mode), unsafe.Offsetof(g.Mode)},
		{"corner_threshold", unsafe.Offsetof(c.corner_threshold), unsafe.Offsetof(g.CornerThreshold)},
		{"length_threshold", unsafe.Offsetof(c.length_threshold), unsafe.Offsetof(g.LengthThreshold)},
		{"max_iterations", unsafe.Offsetof(c.max_iterations), unsafe.Offsetof(g.MaxIterations)},
		{"splice_threshold", unsafe.Offsetof(c.splice_threshold), unsafe.Offsetof(g.SpliceThreshold)},
		{"path_precision", unsafe.Offsetof(c.path_precision), unsafe.Offsetof(g.PathPrecision)},
	}

	var mismatches []string
	for _, f := range fields {
		if f.cOff != f.goOff {
			mismatches = append(mismatches, fmt.Sprintf("%s: C offset %d, Go offset %d", f.name, f.cOff, f.goOff))
		}
	}
	return mismatches
}

// Helpers for driving the exports with C-owned memory, the way a foreign
// caller does.

// cBytes copies b into malloc'd memory. Release it with cFree.
func cBytes(b []byte) *C.uchar {
	return (*C.uchar)(C.CBytes(b))
}

// cString copies s into a malloc'd NUL-terminated string. Release it with
// cFree.
func cString(s string) *C.char {
	return C.CString(s)
}

// cConfig returns a malloc'd config holding the defaults. Release it with
// cFree.
func cConfig() *C.VtracerConfig {
	p := (*C.VtracerConfig)(C.malloc(C.size_t(unsafe.Sizeof(C.VtracerConfig{}))))
	*p = vtracer_default_config()
	return p
}

// cOutSlot returns a malloc'd output slot set to NULL. Release it with
// cFree.
func cOutSlot() **C.char {
	var s *C.char
	p := (**C.char)(C.malloc(C.size_t(unsafe.Sizeof(s))))
	*p = nil
	return p
}

// cText copies a NUL-terminated C string into Go memory.
func cText(s *C.char) string {
	return C.GoString(s)
}

func cFree(p unsafe.Pointer) {
	C.free(p)
}
