package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/vtracer"
)

// fileConfig is the YAML config file. Absent keys leave the preset or
// default value in place.
type fileConfig struct {
	Preset          *vtracer.Preset           `yaml:"preset"`
	ColorMode       *vtracer.ColorMode        `yaml:"color_mode"`
	Hierarchical    *vtracer.Hierarchical     `yaml:"hierarchical"`
	FilterSpeckle   *int                      `yaml:"filter_speckle"`
	ColorPrecision  *int                      `yaml:"color_precision"`
	LayerDifference *int                      `yaml:"layer_difference"`
	Mode            *vtracer.PathSimplifyMode `yaml:"mode"`
	CornerThreshold *int                      `yaml:"corner_threshold"`
	LengthThreshold *float64                  `yaml:"length_threshold"`
	MaxIterations   *int                      `yaml:"max_iterations"`
	SpliceThreshold *int                      `yaml:"splice_threshold"`
	PathPrecision   *uint32                   `yaml:"path_precision"`
	Workers         *int                      `yaml:"workers"`
}

// loadConfigFile parses path strictly: unknown keys are an error.
func loadConfigFile(path string) (fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fileConfig{}, fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return fileConfig{}, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

// apply overwrites every field present in the file.
func (fc fileConfig) apply(cfg *vtracer.Config) {
	if fc.ColorMode != nil {
		cfg.ColorMode = *fc.ColorMode
	}
	if fc.Hierarchical != nil {
		cfg.Hierarchical = *fc.Hierarchical
	}
	if fc.FilterSpeckle != nil {
		cfg.FilterSpeckle = *fc.FilterSpeckle
	}
	if fc.ColorPrecision != nil {
		cfg.ColorPrecision = *fc.ColorPrecision
	}
	if fc.LayerDifference != nil {
		cfg.LayerDifference = *fc.LayerDifference
	}
	if fc.Mode != nil {
		cfg.Mode = *fc.Mode
	}
	if fc.CornerThreshold != nil {
		cfg.CornerThreshold = *fc.CornerThreshold
	}
	if fc.LengthThreshold != nil {
		cfg.LengthThreshold = *fc.LengthThreshold
	}
	if fc.MaxIterations != nil {
		cfg.MaxIterations = *fc.MaxIterations
	}
	if fc.SpliceThreshold != nil {
		cfg.SpliceThreshold = *fc.SpliceThreshold
	}
	if fc.PathPrecision != nil {
		cfg.PathPrecision = vtracer.Digits(*fc.PathPrecision)
	}
}

// flagFields copies one explicitly set flag from the flag-bound config into
// the resolved config.
var flagFields = map[string]func(dst *vtracer.Config, src vtracer.Config){
	"colormode":        func(d *vtracer.Config, s vtracer.Config) { d.ColorMode = s.ColorMode },
	"hierarchical":     func(d *vtracer.Config, s vtracer.Config) { d.Hierarchical = s.Hierarchical },
	"filter-speckle":   func(d *vtracer.Config, s vtracer.Config) { d.FilterSpeckle = s.FilterSpeckle },
	"color-precision":  func(d *vtracer.Config, s vtracer.Config) { d.ColorPrecision = s.ColorPrecision },
	"layer-difference": func(d *vtracer.Config, s vtracer.Config) { d.LayerDifference = s.LayerDifference },
	"mode":             func(d *vtracer.Config, s vtracer.Config) { d.Mode = s.Mode },
	"corner-threshold": func(d *vtracer.Config, s vtracer.Config) { d.CornerThreshold = s.CornerThreshold },
	"length-threshold": func(d *vtracer.Config, s vtracer.Config) { d.LengthThreshold = s.LengthThreshold },
	"max-iterations":   func(d *vtracer.Config, s vtracer.Config) { d.MaxIterations = s.MaxIterations },
	"splice-threshold": func(d *vtracer.Config, s vtracer.Config) { d.SpliceThreshold = s.SpliceThreshold },
}

// resolveConfig layers the engine config: preset (flag, else file, else
// defaults), then the config file, then explicitly set flags.
func resolveConfig(cli *CLIConfig) (vtracer.Config, error) {
	var fc fileConfig
	if cli.configFile != "" {
		var err error
		if fc, err = loadConfigFile(cli.configFile); err != nil {
			return vtracer.Config{}, err
		}
	}

	cfg := vtracer.DefaultConfig()
	switch {
	case cli.set["preset"]:
		cfg = vtracer.NewConfigFromPreset(cli.preset)
	case fc.Preset != nil:
		cfg = vtracer.NewConfigFromPreset(*fc.Preset)
	}
	fc.apply(&cfg)

	for name, copyField := range flagFields {
		if cli.set[name] {
			copyField(&cfg, cli.engine)
		}
	}
	if cli.set["path-precision"] {
		cfg.PathPrecision = vtracer.Digits(uint32(cli.pathPrecision))
	}

	if fc.Workers != nil && !cli.set["workers"] {
		cli.workers = *fc.Workers
	}
	return cfg, nil
}
