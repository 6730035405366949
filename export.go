package md2slides

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2slides/internal/assets"
)

// ExportFormat is a file format Marp can produce from a deck.
type ExportFormat string

// Supported export formats.
const (
	FormatPPTX ExportFormat = "pptx"
	FormatPDF  ExportFormat = "pdf"
)

// ParseExportFormat validates a format name (case-insensitive).
func ParseExportFormat(s string) (ExportFormat, error) {
	switch f := ExportFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPPTX, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (must be pptx or pdf)", ErrInvalidExportFormat, s)
}

// ExportResult reports the outcome of one export format.
type ExportResult struct {
	Format ExportFormat
	Path   string
	Err    error
}

// Exporter turns finished decks into PowerPoint or PDF files with Marp.
type Exporter struct {
	cmd     marpCmd
	timeout time.Duration
	logger  *log.Logger
}

// NewExporter creates an Exporter. It accepts the same options as
// NewConverter; only the Marp, browser, theme set, export timeout and
// logger options apply.
// Returns ErrRendererNotFound when Marp cannot be found.
func NewExporter(opts ...Option) (*Exporter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	themes, err := assets.NewThemeResolver(cfg.themeSet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThemeSet, err)
	}

	bin, err := FindMarp(cfg.marpBin)
	if err != nil {
		return nil, err
	}

	if cfg.browserBin == "" {
		if b, ok := FindBrowser(); ok {
			cfg.browserBin = b
		}
	}

	return &Exporter{
		cmd: marpCmd{
			bin:        bin,
			themeSet:   themes.ThemeSetDir(),
			browserBin: cfg.browserBin,
			logger:     cfg.logger,
		},
		timeout: cfg.exportTimeout,
		logger:  cfg.logger,
	}, nil
}

// ExportPath returns where deckPath is exported in format: the same name
// with the format's extension.
func ExportPath(deckPath string, format ExportFormat) string {
	return strings.TrimSuffix(deckPath, filepath.Ext(deckPath)) + "." + string(format)
}

// Export converts the deck at deckPath to each format. A failing format does
// not stop the others; each result carries its own error.
func (e *Exporter) Export(ctx context.Context, deckPath string, formats []ExportFormat) []ExportResult {
	results := make([]ExportResult, 0, len(formats))
	for _, format := range formats {
		out := ExportPath(deckPath, format)
		err := e.exportOne(ctx, deckPath, out)
		if err != nil {
			e.logger.Warn("export failed", "format", format, "err", err)
		} else {
			e.logger.Debug("exported", "format", format, "path", out)
		}
		results = append(results, ExportResult{Format: format, Path: out, Err: err})
	}
	return results
}

func (e *Exporter) exportOne(ctx context.Context, deckPath, out string) error {
	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if err := e.cmd.run(ctx, deckPath, "-o", out, "--allow-local-files"); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrExport, filepath.Base(out), err)
	}
	return nil
}
