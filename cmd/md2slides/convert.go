package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"go.uber.org/automaxprocs/maxprocs"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/config"
)

// Sentinel errors for CLI operations.
var (
	ErrNoInput         = errors.New("no input specified")
	ErrNoMarkdownFiles = errors.New("no markdown files found")
)

// runConvertCmd parses flags and runs a conversion.
func runConvertCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseConvertFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	return runConvert(ctx, positional, flags, env)
}

// runConvert orchestrates the conversion process.
func runConvert(ctx context.Context, positionalArgs []string, flags *convertFlags, env *Environment) error {
	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	configureMaxProcs(logger)

	environ := env.environ()
	warnUnknownEnvVars(env.Stderr, environ)
	envCfg, err := loadEnvConfig(environ)
	if err != nil {
		return err
	}

	workers := flags.workers
	if workers == 0 {
		workers = envCfg.Workers
	}
	if err := validateWorkers(workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	params, err := buildConversionParams(cfg)
	if err != nil {
		return err
	}
	params.now = env.Now

	inputPath, err := resolveInputPath(positionalArgs, cfg)
	if err != nil {
		return err
	}
	outputDir := resolveOutputDir(flags.output, cfg)

	files, err := discoverFiles(inputPath, outputDir)
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoMarkdownFiles, inputPath)
	}

	opts, err := buildConverterOptions(cfg, logger)
	if err != nil {
		return err
	}

	if len(params.formats) > 0 {
		exporter, err := md2slides.NewExporter(opts...)
		if err != nil {
			return fmt.Errorf("export requested: %w", err)
		}
		params.exporter = exporter
	}

	size := md2slides.ResolvePoolSize(workers)
	if size > len(files) {
		size = len(files)
	}
	logger.Debug("starting conversion", "files", len(files), "workers", size)

	pool := md2slides.NewConverterPool(size, opts...)
	defer func() {
		if err := pool.Close(); err != nil {
			logger.Warn("closing converters", "err", err)
		}
	}()

	results := convertBatch(ctx, &poolAdapter{pool: pool}, files, params)

	failed := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, env)
	if flags.preview {
		if err := previewResults(env.Stdout, results); err != nil {
			logger.Warn("preview failed", "err", err)
		}
	}

	if failed > 0 {
		if len(results) == 1 {
			return results[0].Err
		}
		return fmt.Errorf("%d conversion(s) failed", failed)
	}
	return nil
}

// configureMaxProcs sizes GOMAXPROCS to the container CPU quota.
// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
// in which case Go runtime defaults apply and the program continues safely.
func configureMaxProcs(logger *log.Logger) {
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debugf(format, args...)
	}))
}

// loadConfig loads the config file named by the flag or MD2SLIDES_CONFIG
// and applies environment overrides.
func loadConfig(name string, envCfg *envConfig) (*config.Config, error) {
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		var err error
		cfg, err = config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	}

	if err := applyEnvConfig(envCfg, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *convertFlags, cfg *config.Config) {
	mergeRenderFlags(&flags.render, cfg)

	if flags.slides.theme != "" {
		cfg.Slides.Theme = flags.slides.theme
	}
	if flags.slides.class != "" {
		cfg.Slides.Class = flags.slides.class
	}
	if flags.slides.noPaginate {
		off := false
		cfg.Slides.Paginate = &off
	}
	if flags.slides.splitDepth != 0 {
		cfg.Slides.SplitDepth = flags.slides.splitDepth
	}
	if flags.slides.usableHeight != 0 {
		cfg.Slides.UsableHeight = flags.slides.usableHeight
	}
	if flags.slides.safetyMarginSet {
		m := flags.slides.safetyMargin
		cfg.Slides.SafetyMargin = &m
	}
	if flags.slides.noAutoSplit {
		off := false
		cfg.Slides.AutoSplit = &off
	}

	if len(flags.export) > 0 {
		cfg.Export.Formats = flags.export
	}
}

// mergeRenderFlags merges renderer flags into config.
func mergeRenderFlags(f *renderFlags, cfg *config.Config) {
	if f.renderer != "" {
		cfg.Render.Renderer = f.renderer
	}
	if f.marpBin != "" {
		cfg.Render.MarpBin = f.marpBin
	}
	if f.themeSet != "" {
		cfg.Render.ThemeSet = f.themeSet
	}
	if f.settle != "" {
		cfg.Render.Settle = f.settle
	}
	if f.timeout != "" {
		cfg.Render.Timeout = f.timeout
	}
}

// resolveInputPath determines the input path from args or config.
func resolveInputPath(args []string, cfg *config.Config) (string, error) {
	if len(args) > 1 {
		return "", fmt.Errorf("%w: expected one input, got %d", ErrUsage, len(args))
	}
	if len(args) == 1 {
		return args[0], nil
	}
	if cfg.Input.DefaultDir != "" {
		return cfg.Input.DefaultDir, nil
	}
	return "", ErrNoInput
}

// resolveOutputDir determines the output directory from flag or config.
func resolveOutputDir(flagOutput string, cfg *config.Config) string {
	if flagOutput != "" {
		return flagOutput
	}
	return cfg.Output.DefaultDir
}
