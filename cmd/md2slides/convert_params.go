package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/config"
)

// Exporter turns a written deck into PowerPoint or PDF files.
type Exporter interface {
	Export(ctx context.Context, deckPath string, formats []md2slides.ExportFormat) []md2slides.ExportResult
}

// Compile-time interface implementation check.
var _ Exporter = (*md2slides.Exporter)(nil)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	theme            string
	class            string
	paginate         *bool
	layout           *md2slides.LayoutSettings
	keepManualBreaks bool
	formats          []md2slides.ExportFormat
	exporter         Exporter // nil unless formats is set
	now              func() time.Time
}

// clock returns the time source used to measure conversions.
func (p *conversionParams) clock() func() time.Time {
	if p.now == nil {
		return time.Now
	}
	return p.now
}

// input builds the conversion input for one document.
func (p *conversionParams) input(markdown, sourceDir string) md2slides.Input {
	return md2slides.Input{
		Markdown:         markdown,
		Theme:            p.theme,
		Class:            p.class,
		Paginate:         p.paginate,
		Layout:           p.layout,
		KeepManualBreaks: p.keepManualBreaks,
		SourceDir:        sourceDir,
	}
}

// buildConversionParams creates the per-document settings from config.
func buildConversionParams(cfg *config.Config) (*conversionParams, error) {
	formats, err := parseExportFormats(cfg.Export.Formats)
	if err != nil {
		return nil, err
	}

	layout, err := buildLayoutSettings(cfg)
	if err != nil {
		return nil, err
	}

	return &conversionParams{
		theme:            cfg.Slides.Theme,
		class:            cfg.Slides.Class,
		paginate:         cfg.Slides.Paginate,
		layout:           layout,
		keepManualBreaks: cfg.Slides.AutoSplit != nil && !*cfg.Slides.AutoSplit,
		formats:          formats,
	}, nil
}

// buildLayoutSettings creates md2slides.LayoutSettings from config.
func buildLayoutSettings(cfg *config.Config) (*md2slides.LayoutSettings, error) {
	ls := md2slides.DefaultLayoutSettings()
	if cfg.Slides.SplitDepth != 0 {
		ls.SplitDepth = cfg.Slides.SplitDepth
	}
	ls.UsableHeight = cfg.Slides.UsableHeight
	if cfg.Slides.SafetyMargin != nil {
		ls.SafetyMargin = *cfg.Slides.SafetyMargin
	}

	if err := ls.Validate(); err != nil {
		return nil, err
	}
	return ls, nil
}

// parseExportFormats validates export format names, dropping duplicates.
func parseExportFormats(names []string) ([]md2slides.ExportFormat, error) {
	var formats []md2slides.ExportFormat
	seen := make(map[md2slides.ExportFormat]bool)
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		f, err := md2slides.ParseExportFormat(name)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			formats = append(formats, f)
		}
	}
	return formats, nil
}

// buildConverterOptions translates render settings into converter options.
func buildConverterOptions(cfg *config.Config, logger *log.Logger) ([]md2slides.Option, error) {
	opts := []md2slides.Option{
		md2slides.WithLogger(logger),
		md2slides.WithRendererKind(strings.ToLower(cfg.Render.Renderer)),
		md2slides.WithMarpBin(cfg.Render.MarpBin),
		md2slides.WithThemeSet(cfg.Render.ThemeSet),
	}

	settle, err := cfg.Render.SettleDuration()
	if err != nil {
		return nil, err
	}
	if settle > 0 {
		opts = append(opts, md2slides.WithSettle(settle))
	}

	timeout, err := cfg.Render.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, md2slides.WithTimeout(timeout))
	}

	return opts, nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2slides.MaxPoolSize {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2slides.MaxPoolSize)
	}
	return nil
}
