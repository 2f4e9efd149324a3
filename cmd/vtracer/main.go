package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/vtracer"
)

// CLI configuration
type CLIConfig struct {
	configFile    string
	preset        vtracer.Preset
	batch         bool
	outDir        string
	workers       int
	watchDir      string
	serveAddr     string
	logLevel      string
	logJSON       bool
	help          bool
	engine        vtracer.Config
	pathPrecision uint
	set           map[string]bool
	args          []string
	flags         *flag.FlagSet
}

// parseCLIFlags parses args and returns the configuration. set records the
// flags given explicitly, so they can override the config file.
func parseCLIFlags(args []string, output io.Writer) (*CLIConfig, error) {
	config := &CLIConfig{engine: vtracer.DefaultConfig(), set: make(map[string]bool)}
	fs := flag.NewFlagSet("vtracer", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.Usage = func() { printUsage(fs, output) }

	// Modes
	fs.BoolVar(&config.batch, "batch", false, "Convert every input file into -out")
	fs.StringVar(&config.watchDir, "watch", "", "Convert raster files as they appear in this directory")
	fs.StringVar(&config.serveAddr, "serve", "", "Serve POST /convert on this address, e.g. :8080")
	fs.StringVar(&config.outDir, "out", "", "Output directory for -batch and -watch")
	fs.IntVar(&config.workers, "workers", runtime.GOMAXPROCS(0), "Parallel conversions in -batch mode")

	// Engine configuration
	fs.StringVar(&config.configFile, "config", "", "YAML config file")
	fs.Func("preset", "Preset: bw, poster or photo", func(name string) error {
		return config.preset.UnmarshalText([]byte(name))
	})
	fs.TextVar(&config.engine.ColorMode, "colormode", config.engine.ColorMode, "Color mode: color or binary")
	fs.TextVar(&config.engine.Hierarchical, "hierarchical", config.engine.Hierarchical, "Layering: stacked or cutout")
	fs.TextVar(&config.engine.Mode, "mode", config.engine.Mode, "Path mode: none, polygon or spline")
	fs.IntVar(&config.engine.FilterSpeckle, "filter-speckle", config.engine.FilterSpeckle, "Discard patches smaller than NxN pixels")
	fs.IntVar(&config.engine.ColorPrecision, "color-precision", config.engine.ColorPrecision, "Significant bits per RGB channel (1-8)")
	fs.IntVar(&config.engine.LayerDifference, "layer-difference", config.engine.LayerDifference, "Color difference between layers (0-255)")
	fs.IntVar(&config.engine.CornerThreshold, "corner-threshold", config.engine.CornerThreshold, "Minimum angle in degrees to be a corner")
	fs.Float64Var(&config.engine.LengthThreshold, "length-threshold", config.engine.LengthThreshold, "Edges shorter than this are smoothed")
	fs.IntVar(&config.engine.MaxIterations, "max-iterations", config.engine.MaxIterations, "Curve fitting iterations")
	fs.IntVar(&config.engine.SpliceThreshold, "splice-threshold", config.engine.SpliceThreshold, "Minimum angle in degrees to splice a curve")
	fs.UintVar(&config.pathPrecision, "path-precision", uint(config.engine.PathPrecision.Digits), "Decimal places in path coordinates")

	// Logging configuration
	fs.StringVar(&config.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	fs.BoolVar(&config.logJSON, "log-json", false, "Log as JSON")

	// Help
	fs.BoolVar(&config.help, "help", false, "Show help message")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { config.set[f.Name] = true })
	config.args = fs.Args()
	config.flags = fs
	return config, nil
}

// printUsage prints the usage information.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "vtracer converts raster images to SVG.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  vtracer [options] <input> <output.svg>")
	fmt.Fprintln(w, "  vtracer [options] -batch -out DIR <input>...")
	fmt.Fprintln(w, "  vtracer [options] -watch DIR -out DIR")
	fmt.Fprintln(w, "  vtracer [options] -serve ADDR")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  # Trace a logo with the poster preset")
	fmt.Fprintln(w, "  vtracer -preset poster logo.png logo.svg")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  # Convert a folder of scans as black and white polygons")
	fmt.Fprintln(w, "  vtracer -preset bw -mode polygon -batch -out svg/ scans/*.png")
}

// validateCLIConfig validates the CLI configuration.
func validateCLIConfig(config *CLIConfig) error {
	modes := 0
	for _, on := range []bool{config.batch, config.watchDir != "", config.serveAddr != ""} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return fmt.Errorf("-batch, -watch and -serve are mutually exclusive")
	}

	switch {
	case config.serveAddr != "":
		if len(config.args) != 0 {
			return fmt.Errorf("-serve takes no positional arguments")
		}
	case config.watchDir != "":
		if config.outDir == "" {
			return fmt.Errorf("-watch requires -out")
		}
		if len(config.args) != 0 {
			return fmt.Errorf("-watch takes no positional arguments")
		}
	case config.batch:
		if config.outDir == "" {
			return fmt.Errorf("-batch requires -out")
		}
		if len(config.args) == 0 {
			return fmt.Errorf("-batch needs at least one input file")
		}
		if config.workers < 1 {
			return fmt.Errorf("workers must be positive")
		}
	default:
		if len(config.args) != 2 {
			return fmt.Errorf("expected <input> <output>, got %d arguments", len(config.args))
		}
	}
	return nil
}

// setupLogging configures the standard logger.
func setupLogging(config *CLIConfig, w io.Writer) error {
	level, err := logrus.ParseLevel(config.logLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetOutput(w)
	if config.logJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// run executes one invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cliConfig, err := parseCLIFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}
	if cliConfig.help {
		cliConfig.flags.SetOutput(stdout)
		printUsage(cliConfig.flags, stdout)
		return 0
	}

	if err := setupLogging(cliConfig, stderr); err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 2
	}

	// Validate after the config file is merged in, since it may set workers.
	cfg, err := resolveConfig(cliConfig)
	if err == nil {
		err = validateCLIConfig(cliConfig)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		fmt.Fprintf(stderr, "Use -help for usage information.\n")
		return 2
	}
	logrus.WithFields(logrus.Fields{
		"function":     "run",
		"color_mode":   cfg.ColorMode.String(),
		"hierarchical": cfg.Hierarchical.String(),
		"mode":         cfg.Mode.String(),
	}).Debug("Resolved configuration")

	switch {
	case cliConfig.serveAddr != "":
		err = serve(ctx, cliConfig.serveAddr, cfg)
	case cliConfig.watchDir != "":
		err = watchDir(ctx, cliConfig.watchDir, cliConfig.outDir, cfg)
	case cliConfig.batch:
		err = runBatch(ctx, cliConfig.args, cliConfig.outDir, cliConfig.workers, cfg)
	default:
		err = vtracer.ConvertFile(cliConfig.args[0], cliConfig.args[1], cfg)
		if err == nil {
			fmt.Fprintf(stdout, "%s -> %s\n", cliConfig.args[0], cliConfig.args[1])
		}
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// main is the entry point for the converter.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
