package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/opd-ai/vtracer"
)

func writePNG(t *testing.T, path string, c color.Color) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func TestValidateCLIConfig(t *testing.T) {
	tests := []struct {
		name        string
		config      *CLIConfig
		wantErr     bool
		errContains string
	}{
		{
			name:   "single conversion",
			config: &CLIConfig{args: []string{"in.png", "out.svg"}},
		},
		{
			name:        "single conversion missing output",
			config:      &CLIConfig{args: []string{"in.png"}},
			wantErr:     true,
			errContains: "expected <input> <output>",
		},
		{
			name:   "batch",
			config: &CLIConfig{batch: true, outDir: "out", workers: 2, args: []string{"a.png", "b.png"}},
		},
		{
			name:        "batch without out",
			config:      &CLIConfig{batch: true, workers: 2, args: []string{"a.png"}},
			wantErr:     true,
			errContains: "-batch requires -out",
		},
		{
			name:        "batch without inputs",
			config:      &CLIConfig{batch: true, outDir: "out", workers: 2},
			wantErr:     true,
			errContains: "at least one input",
		},
		{
			name:        "batch zero workers",
			config:      &CLIConfig{batch: true, outDir: "out", args: []string{"a.png"}},
			wantErr:     true,
			errContains: "workers must be positive",
		},
		{
			name:   "watch",
			config: &CLIConfig{watchDir: "in", outDir: "out"},
		},
		{
			name:        "watch without out",
			config:      &CLIConfig{watchDir: "in"},
			wantErr:     true,
			errContains: "-watch requires -out",
		},
		{
			name:   "serve",
			config: &CLIConfig{serveAddr: ":8080"},
		},
		{
			name:        "serve with inputs",
			config:      &CLIConfig{serveAddr: ":8080", args: []string{"a.png"}},
			wantErr:     true,
			errContains: "-serve takes no positional arguments",
		},
		{
			name:        "serve and watch",
			config:      &CLIConfig{serveAddr: ":8080", watchDir: "in", outDir: "out"},
			wantErr:     true,
			errContains: "mutually exclusive",
		},
		{
			name:        "watch and batch",
			config:      &CLIConfig{watchDir: "in", batch: true, outDir: "out"},
			wantErr:     true,
			errContains: "mutually exclusive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCLIConfig(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestResolveConfigLayers(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "vtracer.yaml")
	require.NoError(t, os.WriteFile(file, []byte(strings.Join([]string{
		"preset: photo",
		"mode: polygon",
		"corner_threshold: 90",
		"path_precision: 1",
		"workers: 3",
	}, "\n")), 0o644))

	cli, err := parseCLIFlags([]string{"-config", file, "-corner-threshold", "120", "in.png", "out.svg"}, &bytes.Buffer{})
	require.NoError(t, err)

	cfg, err := resolveConfig(cli)
	require.NoError(t, err)

	want := vtracer.NewConfigFromPreset(vtracer.PresetPhoto)
	want.Mode = vtracer.PathSimplifyPolygon
	want.CornerThreshold = 120
	want.PathPrecision = vtracer.Digits(1)
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("resolveConfig mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, cli.workers)
}

func TestResolveConfigFlagPresetWins(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "vtracer.yaml")
	require.NoError(t, os.WriteFile(file, []byte("preset: photo\n"), 0o644))

	cli, err := parseCLIFlags([]string{"-config", file, "-preset", "bw", "-workers", "5", "-path-precision", "0"}, &bytes.Buffer{})
	require.NoError(t, err)
	cfg, err := resolveConfig(cli)
	require.NoError(t, err)

	want := vtracer.NewConfigFromPreset(vtracer.PresetBW)
	want.PathPrecision = vtracer.Digits(0)
	assert.Equal(t, want, cfg)
	assert.Equal(t, 5, cli.workers)
}

func TestResolveConfigDefaults(t *testing.T) {
	cli, err := parseCLIFlags([]string{"in.png", "out.svg"}, &bytes.Buffer{})
	require.NoError(t, err)
	cfg, err := resolveConfig(cli)
	require.NoError(t, err)
	assert.Equal(t, vtracer.DefaultConfig(), cfg)
}

func TestLoadConfigFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := loadConfigFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("colour_mode: binary\n"), 0o644))
	_, err = loadConfigFile(unknown)
	assert.Error(t, err, "unknown keys are rejected")

	badEnum := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(badEnum, []byte("mode: bezier\n"), 0o644))
	_, err = loadConfigFile(badEnum)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	fc, err := loadConfigFile(empty)
	require.NoError(t, err)
	assert.Nil(t, fc.Preset)
}

func TestParseCLIFlagsRejectsBadEnum(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseCLIFlags([]string{"-mode", "bezier"}, &stderr)
	assert.Error(t, err)
	_, err = parseCLIFlags([]string{"-preset", "sketch"}, &stderr)
	assert.Error(t, err)
}

func TestRunSingle(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.svg")
	writePNG(t, in, color.NRGBA{R: 255, A: 255})

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), []string{"-log-level", "error", in, out}, &stdout, &stderr)
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, stdout.String(), "out.svg")

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `fill="#FF0000"`)
}

func TestRunExitCodes(t *testing.T) {
	var stdout, stderr bytes.Buffer
	ctx := context.Background()

	assert.Equal(t, 0, run(ctx, []string{"-help"}, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Usage:")
	assert.Equal(t, 2, run(ctx, []string{"-no-such-flag"}, &stdout, &stderr))
	assert.Equal(t, 2, run(ctx, []string{"only-one-arg"}, &stdout, &stderr))
	assert.Equal(t, 2, run(ctx, []string{"-log-level", "chatty", "a.png", "b.svg"}, &stdout, &stderr))
	assert.Equal(t, 1, run(ctx, []string{"-log-level", "panic", filepath.Join(t.TempDir(), "missing.png"), "b.svg"}, &stdout, &stderr))
}

func TestRunRejectsFileWorkers(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.png")
	writePNG(t, in, color.NRGBA{A: 255})

	for _, workers := range []string{"0", "-3"} {
		t.Run(workers, func(t *testing.T) {
			file := filepath.Join(dir, "workers"+workers+".yaml")
			require.NoError(t, os.WriteFile(file, []byte("workers: "+workers+"\n"), 0o644))

			var stdout, stderr bytes.Buffer
			outDir := filepath.Join(dir, "out"+workers)
			code := run(context.Background(), []string{"-config", file, "-batch", "-out", outDir, in}, &stdout, &stderr)
			assert.Equal(t, 2, code)
			assert.Contains(t, stderr.String(), "workers must be positive")
			_, err := os.Stat(outDir)
			assert.True(t, os.IsNotExist(err), "nothing is converted")
		})
	}
}

func TestRunBatch(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	outDir := filepath.Join(dir, "svg")
	colors := map[string]color.NRGBA{
		"red.png":   {R: 255, A: 255},
		"green.png": {G: 255, A: 255},
		"blue.png":  {B: 255, A: 255},
	}
	var inputs []string
	for name, c := range colors {
		p := filepath.Join(dir, name)
		writePNG(t, p, c)
		inputs = append(inputs, p)
	}
	inputs = append(inputs, filepath.Join(dir, "missing.png"))

	err := runBatch(context.Background(), inputs, outDir, 2, vtracer.DefaultConfig())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 4 conversions failed")

	for _, name := range []string{"red.svg", "green.svg", "blue.svg"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}
}

func TestRunBatchCancelled(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "a.png")
	writePNG(t, in, color.NRGBA{A: 255})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := runBatch(ctx, []string{in}, filepath.Join(dir, "out"), 1, vtracer.DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(filepath.Join(dir, "out", "a.svg"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestSVGPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "logo.svg"), svgPath("out", filepath.Join("in", "logo.PNG")))
	assert.Equal(t, filepath.Join("out", "a.b.svg"), svgPath("out", "a.b.webp"))
	assert.True(t, isRaster("x.JPEG"))
	assert.False(t, isRaster("x.svg"))
}

func TestWatchDir(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	inDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "svg")
	writePNG(t, filepath.Join(inDir, "existing.png"), color.NRGBA{R: 255, A: 255})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- watchDir(ctx, inDir, outDir, vtracer.DefaultConfig()) }()

	exists := func(name string) func() bool {
		return func() bool {
			_, err := os.Stat(filepath.Join(outDir, name))
			return err == nil
		}
	}
	require.Eventually(t, exists("existing.svg"), 5*time.Second, 20*time.Millisecond)

	writePNG(t, filepath.Join(inDir, "dropped.png"), color.NRGBA{B: 255, A: 255})
	require.NoError(t, os.WriteFile(filepath.Join(inDir, "notes.txt"), []byte("skip"), 0o644))
	require.Eventually(t, exists("dropped.svg"), 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watchDir did not stop")
	}

	_, err := os.Stat(filepath.Join(outDir, "notes.svg"))
	assert.True(t, os.IsNotExist(err))
}
