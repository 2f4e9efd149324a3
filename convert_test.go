package vtracer

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"github.com/opd-ai/vtracer/cluster"
	"github.com/opd-ai/vtracer/trace"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

// ring is a 3x3 red square with a blue center pixel.
func ring() ColorImage {
	img := SolidColorImage(3, 3, red)
	copy(img.Pixels[(1*3+1)*4:], []byte{0, 0, 255, 255})
	return img
}

// exact disables every merge so each color keeps its own shape.
func exact() Config {
	cfg := DefaultConfig()
	cfg.FilterSpeckle = 0
	cfg.LayerDifference = 0
	return cfg
}

func TestConvertSingleRedPixel(t *testing.T) {
	doc, err := Convert(SolidColorImage(1, 1, red), DefaultConfig())
	require.NoError(t, err)

	svg := doc.String()
	assert.Contains(t, svg, "<svg")
	assert.Contains(t, svg, `width="1" height="1"`)
	assert.Contains(t, svg, `<path d="M0 0 L1 0 L1 1 L0 1 Z" fill="#FF0000"/>`)
}

func TestConvertEmptyImage(t *testing.T) {
	doc, err := Convert(ColorImage{}, DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, doc.Shapes)
	assert.NotContains(t, doc.String(), "<path")
}

func TestConvertTransparentImage(t *testing.T) {
	doc, err := Convert(SolidColorImage(4, 4, color.RGBA{}), DefaultConfig())
	require.NoError(t, err)
	assert.NotContains(t, doc.String(), "<path")
}

func TestConvertRejectsMismatchedImage(t *testing.T) {
	_, err := Convert(ColorImage{Pixels: make([]byte, 3), Width: 1, Height: 1}, DefaultConfig())
	assert.True(t, errors.Is(err, ErrInvalidImage), "got %v", err)
}

func TestConvertHierarchical(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	stacked := exact()
	doc, err := Convert(ring(), stacked)
	require.NoError(t, err)
	require.Len(t, doc.Shapes, 2)
	assert.Equal(t, red, doc.Shapes[0].Color, "largest shape first")
	assert.Len(t, doc.Shapes[0].Paths, 1, "stacked shapes are solid")
	assert.Equal(t, blue, doc.Shapes[1].Color)

	cutout := exact()
	cutout.Hierarchical = HierarchicalCutout
	doc, err = Convert(ring(), cutout)
	require.NoError(t, err)
	require.Len(t, doc.Shapes, 2)
	assert.Len(t, doc.Shapes[0].Paths, 2, "cutout shapes carry their holes")
}

func TestConvertMergesSpeckles(t *testing.T) {
	doc, err := Convert(ring(), DefaultConfig())
	require.NoError(t, err)
	require.Len(t, doc.Shapes, 1, "the center pixel is below the speckle size")
}

func TestConvertBinaryMode(t *testing.T) {
	img := SolidColorImage(2, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	copy(img.Pixels, []byte{0, 0, 0, 255})

	cfg := exact()
	cfg.ColorMode = ColorModeBinary
	doc, err := Convert(img, cfg)
	require.NoError(t, err)
	require.Len(t, doc.Shapes, 1)
	assert.Equal(t, "#000000", HexColor(doc.Shapes[0].Color))
}

func TestConvertBinaryModeIsTwoLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ColorMode = ColorModeBinary
	doc, err := Convert(SolidColorImage(8, 8, color.RGBA{R: 120, A: 255}), cfg)
	require.NoError(t, err)
	assert.Contains(t, doc.String(), `<path d="M0 0 L8 0 L8 8 L0 8 Z" fill="#000000"/>`)
}

func TestConvertRecoversTracePanic(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	orig := traceCluster
	t.Cleanup(func() { traceCluster = orig })
	traceCluster = func(c cluster.Cluster, opts trace.Options, withHoles bool) (SVGPath, error) {
		if c.Color == blue {
			panic("boom")
		}
		return orig(c, opts, withHoles)
	}

	var doc *SVGFile
	var err error
	require.NotPanics(t, func() { doc, err = Convert(ring(), exact()) })
	assert.Nil(t, doc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrTrace), "got %v", err)
	assert.Contains(t, err.Error(), "boom")
}

func TestConvertModes(t *testing.T) {
	img := SolidColorImage(2, 1, red)

	tests := []struct {
		mode PathSimplifyMode
		want string
	}{
		{PathSimplifyNone, `d="M0 0 L1 0 L2 0 L2 1 L1 1 L0 1 Z"`},
		{PathSimplifyPolygon, `d="M0 0 L2 0 L2 1 L0 1 Z"`},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Mode = tt.mode
			doc, err := Convert(img, cfg)
			require.NoError(t, err)
			assert.Contains(t, doc.String(), tt.want)
		})
	}
}

func TestConvertImage(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			src.SetRGBA(x, y, blue)
		}
	}
	svg, err := ConvertImage(src, DefaultConfig())
	require.NoError(t, err)
	assert.Contains(t, svg, `fill="#0000FF"`)
}

func writeFixture(t *testing.T, name string, encode func(f *os.File, img image.Image) error) string {
	t.Helper()
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			src.SetRGBA(x, y, red)
		}
	}
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, encode(f, src))
	require.NoError(t, f.Close())
	return path
}

func TestConvertFileFormats(t *testing.T) {
	tests := []struct {
		name   string
		encode func(f *os.File, img image.Image) error
	}{
		{"in.png", func(f *os.File, img image.Image) error { return png.Encode(f, img) }},
		{"in.bmp", func(f *os.File, img image.Image) error { return bmp.Encode(f, img) }},
		{"in.tiff", func(f *os.File, img image.Image) error { return tiff.Encode(f, img, nil) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := writeFixture(t, tt.name, tt.encode)
			out := filepath.Join(t.TempDir(), "out.svg")

			require.NoError(t, ConvertFile(in, out, DefaultConfig()))

			data, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(data), "<?xml"))
			assert.Contains(t, string(data), `fill="#FF0000"`)
		})
	}
}

func TestConvertFileErrors(t *testing.T) {
	dir := t.TempDir()
	good := writeFixture(t, "in.png", func(f *os.File, img image.Image) error { return png.Encode(f, img) })
	garbage := filepath.Join(dir, "garbage.png")
	require.NoError(t, os.WriteFile(garbage, []byte("not an image"), 0o644))

	tests := []struct {
		name string
		in   string
		out  string
		want error
	}{
		{"missing input", filepath.Join(dir, "missing.png"), filepath.Join(dir, "a.svg"), ErrReadImage},
		{"undecodable input", garbage, filepath.Join(dir, "b.svg"), ErrDecodeImage},
		{"missing output dir", good, filepath.Join(dir, "nope", "c.svg"), ErrWriteSVG},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ConvertFile(tt.in, tt.out, DefaultConfig())
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			_, statErr := os.Stat(tt.out)
			assert.True(t, os.IsNotExist(statErr), "no output is written on failure")
		})
	}
}

func TestConvertFileKeepsPreviousOutputOnFailure(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.svg")
	require.NoError(t, os.WriteFile(out, []byte("previous"), 0o644))

	err := ConvertFile(filepath.Join(dir, "missing.png"), out, DefaultConfig())
	require.Error(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))
}
