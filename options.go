package md2slides

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Default durations.
const (
	defaultTimeout       = 2 * time.Minute
	defaultSettle        = time.Second
	defaultExportTimeout = 120 * time.Second
)

// Renderer kinds selectable with WithRendererKind.
const (
	RendererAuto    = ""        // Marp when found, otherwise builtin
	RendererMarp    = "marp"    // Marp CLI, fails when not installed
	RendererBuiltin = "builtin" // goldmark with the embedded themes
)

// Option configures a Converter or an Exporter.
type Option func(*converterConfig)

// converterConfig holds internal configuration shared by Converter and Exporter.
type converterConfig struct {
	timeout       time.Duration
	settle        time.Duration
	exportTimeout time.Duration
	logger        *log.Logger
	rendererKind  string
	renderer      Renderer
	measurer      LayoutMeasurer
	marpBin       string
	browserBin    string
	themeSet      string
	newRunID      func() string
}

func defaultConfig() converterConfig {
	return converterConfig{
		timeout:       defaultTimeout,
		settle:        defaultSettle,
		exportTimeout: defaultExportTimeout,
		logger:        discardLogger(),
		newRunID:      newRunID,
	}
}

func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
}

// WithTimeout sets the maximum duration of a whole conversion.
// Panics if d <= 0.
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2slides: WithTimeout duration must be positive")
	}
	return func(c *converterConfig) {
		c.timeout = d
	}
}

// WithSettle sets how long the browser waits after page load before
// measuring, so fonts and images finish laying out.
// Panics if d < 0.
func WithSettle(d time.Duration) Option {
	if d < 0 {
		panic("md2slides: WithSettle duration must not be negative")
	}
	return func(c *converterConfig) {
		c.settle = d
	}
}

// WithExportTimeout sets the time limit of each export format.
// Panics if d <= 0.
func WithExportTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2slides: WithExportTimeout duration must be positive")
	}
	return func(c *converterConfig) {
		c.exportTimeout = d
	}
}

// WithLogger sets the logger used for phase diagnostics. nil is ignored.
func WithLogger(l *log.Logger) Option {
	return func(c *converterConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithRendererKind selects the renderer: RendererMarp, RendererBuiltin or
// RendererAuto.
func WithRendererKind(kind string) Option {
	return func(c *converterConfig) {
		c.rendererKind = kind
	}
}

// WithMarpBin sets the Marp CLI executable. Empty means discover it.
func WithMarpBin(path string) Option {
	return func(c *converterConfig) {
		c.marpBin = path
	}
}

// WithBrowserBin sets the Chrome executable used for measuring and by Marp.
// Empty means ROD_BROWSER_BIN or a browser found on the system.
func WithBrowserBin(path string) Option {
	return func(c *converterConfig) {
		c.browserBin = path
	}
}

// WithThemeSet adds a directory of custom theme CSS files. Themes found
// there take precedence over the built-in ones.
func WithThemeSet(dir string) Option {
	return func(c *converterConfig) {
		c.themeSet = dir
	}
}

// WithRenderer replaces the probe renderer.
func WithRenderer(r Renderer) Option {
	return func(c *converterConfig) {
		c.renderer = r
	}
}

// WithMeasurer replaces the layout measurer. The Converter closes it.
func WithMeasurer(m LayoutMeasurer) Option {
	return func(c *converterConfig) {
		c.measurer = m
	}
}
