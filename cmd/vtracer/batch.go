package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/vtracer"
)

// rasterExtensions lists the file types the engine can decode.
var rasterExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

func isRaster(path string) bool {
	return rasterExtensions[strings.ToLower(filepath.Ext(path))]
}

// svgPath names the output for in inside outDir.
func svgPath(outDir, in string) string {
	base := filepath.Base(in)
	return filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".svg")
}

// convertOne converts in into outDir and logs the outcome.
func convertOne(in, outDir string, cfg vtracer.Config) error {
	out := svgPath(outDir, in)
	start := time.Now()
	if err := vtracer.ConvertFile(in, out, cfg); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "convertOne",
			"input":    in,
			"error":    err.Error(),
		}).Error("Conversion failed")
		return err
	}
	logrus.WithFields(logrus.Fields{
		"function": "convertOne",
		"input":    in,
		"output":   out,
		"duration": time.Since(start).String(),
	}).Info("Converted")
	return nil
}

// runBatch converts inputs into outDir with at most workers conversions in
// flight. Every input is attempted; the returned error joins all failures.
// Cancelling ctx stops new conversions from starting.
func runBatch(ctx context.Context, inputs []string, outDir string, workers int, cfg vtracer.Config) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if workers < 1 {
		workers = 1
	}

	failures := make([]error, len(inputs))
	var g errgroup.Group
	g.SetLimit(workers)
	for i, in := range inputs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			failures[i] = convertOne(in, outDir, cfg)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, err := range failures {
		if err != nil {
			failed++
		}
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("batch interrupted: %w", err)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d conversions failed: %w", failed, len(inputs), errors.Join(failures...))
	}
	return nil
}
