package bridge

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vtracer"
	"github.com/opd-ai/vtracer/limits"
)

// Boundary implements the exported conversion functions on top of an
// Engine. It holds no mutable state and is safe for concurrent use.
type Boundary struct {
	engine Engine
	alloc  Allocator
}

// New returns a Boundary converting with engine and handing out text
// buffers from alloc.
func New(engine Engine, alloc Allocator) *Boundary {
	return &Boundary{engine: engine, alloc: alloc}
}

// ConvertFile converts the image at the NUL-terminated path input into an
// SVG file at output.
func (b *Boundary) ConvertFile(input, output unsafe.Pointer, cfg *ExternalConfig) Status {
	err := b.convertFile(input, output, cfg)
	return report(EntryFile, "ConvertFile", err)
}

func (b *Boundary) convertFile(input, output unsafe.Pointer, cfg *ExternalConfig) error {
	if input == nil || output == nil || cfg == nil {
		return fmt.Errorf("%w: input=%t output=%t config=%t",
			ErrInvalidParameter, input != nil, output != nil, cfg != nil)
	}
	in, ok := goString(input)
	if !ok {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidInputPath)
	}
	out, ok := goString(output)
	if !ok {
		return fmt.Errorf("%w: not valid UTF-8", ErrInvalidOutputPath)
	}

	engineCfg := ToEngineConfig(*cfg)
	NewLogger("ConvertFile").
		WithFields(logrus.Fields{"input": in, "output": out, "mode": engineCfg.Mode.String()}).
		Entry("converting file")

	return guard("ConvertFile", func() error {
		return b.engine.ConvertFile(in, out, engineCfg)
	})
}

// ConvertBuffer converts length bytes of RGBA pixels at pixels into SVG
// text. On success *out receives a buffer the caller must pass to
// ReleaseText; on failure *out is not touched.
func (b *Boundary) ConvertBuffer(pixels unsafe.Pointer, length, width, height uintptr, cfg *ExternalConfig, out *unsafe.Pointer) Status {
	err := b.convertBuffer(pixels, length, width, height, cfg, out)
	return report(EntryBuffer, "ConvertBuffer", err)
}

func (b *Boundary) convertBuffer(pixels unsafe.Pointer, length, width, height uintptr, cfg *ExternalConfig, out *unsafe.Pointer) error {
	if pixels == nil || cfg == nil || out == nil {
		return fmt.Errorf("%w: pixels=%t config=%t output=%t",
			ErrInvalidParameter, pixels != nil, cfg != nil, out != nil)
	}
	if err := limits.ValidatePixelBuffer(length, width, height); err != nil {
		return err
	}
	w, errW := limits.ToInt(width)
	h, errH := limits.ToInt(height)
	n, errN := limits.ToInt(length)
	if err := errors.Join(errW, errH, errN); err != nil {
		return fmt.Errorf("%w: %w", ErrSizeMismatch, err)
	}

	// The foreign buffer is only valid for the duration of the call.
	data := make([]byte, n)
	copy(data, unsafe.Slice((*byte)(pixels), n))
	img, err := vtracer.NewColorImage(data, w, h)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSizeMismatch, err)
	}

	engineCfg := ToEngineConfig(*cfg)
	NewLogger("ConvertBuffer").
		WithFields(logrus.Fields{"width": w, "height": h, "mode": engineCfg.Mode.String()}).
		Entry("converting buffer")

	var text string
	err = guard("ConvertBuffer", func() error {
		doc, err := b.engine.ConvertBuffer(img, engineCfg)
		if err != nil {
			return err
		}
		text = doc.String()
		return nil
	})
	if err != nil {
		return err
	}

	if hasNUL(text) {
		return fmt.Errorf("%w: document contains a NUL byte", ErrEncodingFailed)
	}
	p, err := b.alloc.CopyText(text)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodingFailed, err)
	}
	*out = p
	return nil
}

// guard runs an engine call, turning both returned errors and panics into
// ErrConversionFailed.
func guard(operation string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic in %s: %v", ErrConversionFailed, operation, r)
		}
	}()
	if err := fn(); err != nil {
		return fmt.Errorf("%w: %w", ErrConversionFailed, err)
	}
	return nil
}

// report logs err with full detail and collapses it to a status code.
func report(entry EntryPoint, function string, err error) Status {
	status := entry.Status(err)
	if err == nil {
		NewLogger(function).WithField("entry", entry.String()).Debug("Call succeeded")
		return status
	}

	log := NewLogger(function).
		WithError(err, entry.StatusName(status), entry.String()).
		WithField("status", int32(status))
	if status == StatusConversionFailed {
		log.Error("Conversion failed")
	} else {
		log.Warn("Rejected call")
	}
	return status
}
