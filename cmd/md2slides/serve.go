package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/server"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/mcpserver"
)

// runServeCmd serves the MCP tools on stdin/stdout until the context is
// canceled or the client disconnects. Logs go to stderr.
func runServeCmd(ctx context.Context, args []string, env *Environment) error {
	flags, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}

	logger := newLogger(env.Stderr, flags.common.quiet, flags.common.verbose)
	configureMaxProcs(logger)

	environ := env.environ()
	warnUnknownEnvVars(env.Stderr, environ)
	envCfg, err := loadEnvConfig(environ)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	mergeRenderFlags(&flags.render, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	opts, err := buildConverterOptions(cfg, logger)
	if err != nil {
		return err
	}

	conv, err := md2slides.NewConverter(opts...)
	if err != nil {
		return err
	}
	defer func() {
		if err := conv.Close(); err != nil {
			logger.Warn("closing converter", "err", err)
		}
	}()

	// Kept as an interface so a missing Marp yields a nil Exporter,
	// not a nil pointer wrapped in one.
	var exp mcpserver.Exporter
	if e, err := md2slides.NewExporter(opts...); err != nil {
		logger.Warn("exports disabled", "err", err)
	} else {
		exp = e
	}

	outputDir := flags.outputDir
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}

	s, _ := mcpserver.New(conv, exp, mcpserver.Config{
		Version:   Version,
		OutputDir: outputDir,
		Themes:    conv.Themes,
		Logger:    logger,
	})

	logger.Info("serving MCP on stdio", "output", outputDir)
	return serveStdio(ctx, func() error { return server.ServeStdio(s) })
}

// serveStdio runs serve until it returns or ctx is canceled.
func serveStdio(ctx context.Context, serve func() error) error {
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- serve()
	}()

	select {
	case <-ctx.Done():
		return nil
	case err := <-serverErr:
		if err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("mcp server: %w", err)
		}
		return nil
	}
}
