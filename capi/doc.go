// Package main provides C API bindings for vtracer-go, so that C programs and
// any language with a C FFI can vectorize raster images.
//
// # Overview
//
// The exported symbols keep the names, struct layout and status codes of the
// upstream vtracer C library, so existing wrappers can switch to this build
// without changes. All rules of the boundary live in the bridge package;
// this package only adapts C types to it.
//
// # Build Instructions
//
// To build as a C shared library:
//
//	go build -buildmode=c-shared -o libvtracer.so ./capi/
//
// This generates:
//   - libvtracer.so: The shared library
//   - libvtracer.h: Auto-generated C header file with function declarations
//
// # C API Usage
//
//	#include "libvtracer.h"
//
//	VtracerConfig cfg = vtracer_default_config();
//	cfg.mode = 1; // polygon
//
//	int rc = vtracer_convert_file("logo.png", "logo.svg", &cfg);
//	if (rc != 0) {
//	    fprintf(stderr, "conversion failed: %d\n", rc);
//	}
//
//	char *svg = NULL;
//	rc = vtracer_convert_bytes(rgba, width * height * 4, width, height, &cfg, &svg);
//	if (rc == 0) {
//	    puts(svg);
//	    vtracer_free_string(svg);
//	}
//
// vtracer_preset_config fills a config with one of the tuned presets
// (0 black and white, 1 poster, 2 photo).
//
// # Error Handling
//
// Every function returns 0 on success and a negative code on failure. The
// codes overlap between the two conversion functions:
//
//	                     vtracer_convert_file   vtracer_convert_bytes
//	invalid parameter    -1                     -1
//	input path not UTF-8 -2
//	output path not UTF-8 -3
//	size mismatch                               -2
//	text encoding                               -3
//	conversion failed    -4                     -4
//
// The underlying Go error is logged through logrus. VTRACER_LOG_LEVEL
// (default warn) and VTRACER_LOG_FORMAT (text or json) are read when the
// library loads.
//
// # Memory Management
//
// Pointers passed in are only read during the call. Text returned by
// vtracer_convert_bytes is malloc'd and owned by the caller, who must
// release it exactly once with vtracer_free_string. The output slot is not
// written when a call fails.
//
// # Thread Safety
//
// All functions may be called concurrently from any thread. They share no
// mutable state.
//
// # Limitations
//
//   - The package must be built as "package main" with a main() function
//     to work as a c-shared library
//   - VtracerConfig is reinterpreted in place; the build fails on targets
//     where the C struct and its Go mirror differ in size
//
// # Files
//
//   - vtracer_c.go: exported functions and the VtracerConfig definition
//   - alloc.go: malloc-backed text buffers
//   - logging.go: load-time logging setup
//   - doc.go: This documentation file
package main
