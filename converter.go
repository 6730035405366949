package md2slides

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/layout"
	"github.com/alnah/go-md2slides/internal/pipeline"
)

// Temp file names inside a run directory.
const (
	probeMarkdownName = "probe.md"
	probeHTMLName     = "probe.html"
)

// Converter paginates Markdown documents into Marp decks.
// Create with NewConverter, use Convert for conversion, and Close when done.
// A Converter owns one browser and is not safe for concurrent use; use a
// ConverterPool for parallel work.
type Converter struct {
	cfg      converterConfig
	logger   *log.Logger
	themes   *assets.ThemeResolver
	renderer Renderer
	measurer LayoutMeasurer
}

// NewConverter creates a Converter.
// Without options it renders with Marp when installed, falling back to the
// builtin goldmark renderer, and measures with a headless Chrome.
// Returns error if the theme set directory is invalid or an explicitly
// requested Marp CLI cannot be found.
func NewConverter(opts ...Option) (*Converter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	themes, err := assets.NewThemeResolver(cfg.themeSet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidThemeSet, err)
	}

	if cfg.browserBin == "" {
		if bin, ok := FindBrowser(); ok {
			cfg.browserBin = bin
		}
	}

	c := &Converter{
		cfg:      cfg,
		logger:   cfg.logger,
		themes:   themes,
		renderer: cfg.renderer,
		measurer: cfg.measurer,
	}

	if c.renderer == nil {
		c.renderer, err = c.selectRenderer()
		if err != nil {
			return nil, err
		}
	}

	if c.measurer == nil {
		c.measurer = newRodMeasurer(cfg.browserBin, cfg.timeout, cfg.settle, cfg.logger)
	}

	return c, nil
}

// selectRenderer builds the renderer named by the configuration.
func (c *Converter) selectRenderer() (Renderer, error) {
	switch strings.ToLower(c.cfg.rendererKind) {
	case RendererBuiltin:
		return newBuiltinRenderer(c.themes), nil
	case RendererMarp:
		bin, err := FindMarp(c.cfg.marpBin)
		if err != nil {
			return nil, err
		}
		return newMarpRenderer(c.marpCmd(bin)), nil
	case RendererAuto:
		bin, err := FindMarp(c.cfg.marpBin)
		if err != nil {
			c.logger.Warn("marp not found, using builtin renderer", "err", err)
			return newBuiltinRenderer(c.themes), nil
		}
		return newMarpRenderer(c.marpCmd(bin)), nil
	default:
		return nil, fmt.Errorf("%w: unknown renderer %q", ErrRendererNotFound, c.cfg.rendererKind)
	}
}

func (c *Converter) marpCmd(bin string) marpCmd {
	return marpCmd{
		bin:        bin,
		themeSet:   c.themes.ThemeSetDir(),
		browserBin: c.cfg.browserBin,
		logger:     c.logger,
	}
}

// Convert paginates input.Markdown and returns the finished deck.
// The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := c.validateInput(input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	runID := c.cfg.newRunID()
	logger := c.logger.With("run", runID)

	doc := pipeline.Normalize(input.Markdown, !input.KeepManualBreaks)
	if doc.Body == "" {
		return nil, ErrEmptyMarkdown
	}

	header := resolveHeader(input, doc.FrontMatter)
	if !c.themes.Has(header.Theme) {
		return nil, fmt.Errorf("%w: %q not found", ErrInvalidTheme, header.Theme)
	}

	res := &ConvertResult{
		Theme: header.Theme,
		Class: header.Class,
		RunID: runID,
	}

	body := doc.Body
	if doc.Split {
		body, err = c.paginate(ctx, logger, doc.Body, header.Theme, input, res)
		if err != nil {
			return nil, err
		}
		res.Split = true
	} else {
		logger.Debug("keeping manual slide breaks")
	}

	res.Deck, err = pipeline.BuildDeck(header, body)
	if err != nil {
		return nil, err
	}
	res.Slides = trimSlides(pipeline.SplitSlides(body))
	logger.Debug("deck ready", "slides", len(res.Slides))
	return res, nil
}

// paginate runs the two-pass layout engine on body.
func (c *Converter) paginate(ctx context.Context, logger *log.Logger, body, theme string, input Input, res *ConvertResult) (string, error) {
	settings := input.Layout.resolved()

	chunks := layout.Chunks(body)
	levels := layout.TargetLevels(body, settings.SplitDepth)
	res.Chunks = len(chunks)
	res.Levels = levels

	logger.Debug("building probe document", "chunks", len(chunks), "levels", levels)
	probe := layout.BuildProbe(chunks, theme)

	measurement, err := c.measureProbe(ctx, logger, probe, input.SourceDir, res.RunID)
	if err != nil {
		return "", err
	}

	usable := settings.UsableHeight
	if usable <= 0 {
		usable = measurement.UsableHeight
	}
	if usable <= 0 {
		return "", fmt.Errorf("%w: usable height %.1f", ErrInvalidMeasurement, usable)
	}
	if settings.SafetyMargin >= usable {
		return "", fmt.Errorf("%w: %.1f leaves no room in %.1f", ErrInvalidSafetyMargin, settings.SafetyMargin, usable)
	}
	res.UsableHeight = usable

	probes, err := layout.SortProbes(measurement.Probes, len(chunks))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidMeasurement, err)
	}

	logger.Debug("deciding boundaries", "probes", len(probes), "usableHeight", usable, "safetyMargin", settings.SafetyMargin)
	return layout.Paginate(chunks, probes, levels, layout.Budget{
		UsableHeight: usable,
		SafetyMargin: settings.SafetyMargin,
	}), nil
}

// measureProbe renders probe in a private temp directory and measures it.
// The directory is removed on every path.
func (c *Converter) measureProbe(ctx context.Context, logger *log.Logger, probe, sourceDir, runID string) (*layout.Measurement, error) {
	dir, cleanup, err := fileutil.MakeTempDir(shortID(runID))
	if err != nil {
		return nil, err
	}
	defer cleanup()

	mdPath, err := fileutil.WriteInDir(dir, probeMarkdownName, probe)
	if err != nil {
		return nil, err
	}
	htmlPath := filepath.Join(dir, probeHTMLName)

	logger.Debug("rendering probe", "dir", dir)
	if err := c.renderer.Render(ctx, mdPath, htmlPath); err != nil {
		return nil, phaseError(ErrRender, err)
	}

	if sourceDir != "" {
		if err := rewriteHTMLFile(htmlPath, sourceDir); err != nil {
			return nil, err
		}
	}

	logger.Debug("measuring layout")
	measurement, err := c.measurer.Measure(ctx, htmlPath)
	if err != nil {
		return nil, phaseError(ErrMeasure, err)
	}
	if measurement == nil {
		return nil, fmt.Errorf("%w: empty result", ErrInvalidMeasurement)
	}
	return measurement, nil
}

// rewriteHTMLFile makes relative resource paths in the rendered probe point
// at sourceDir, since the probe itself lives in a temp directory.
func rewriteHTMLFile(htmlPath, sourceDir string) error {
	data, err := os.ReadFile(htmlPath) // #nosec G304 -- file written by the renderer
	if err != nil {
		return fmt.Errorf("%w: reading rendered probe: %v", ErrRender, err)
	}
	rewritten, err := pipeline.RewriteRelativePaths(string(data), sourceDir)
	if err != nil {
		return fmt.Errorf("%w: rewriting paths: %v", ErrRender, err)
	}
	if err := os.WriteFile(htmlPath, []byte(rewritten), 0o600); err != nil {
		return fmt.Errorf("%w: writing rendered probe: %v", ErrRender, err)
	}
	return nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.measurer != nil {
		return c.measurer.Close()
	}
	return nil
}

// Themes lists the themes this converter can use.
func (c *Converter) Themes() ([]Theme, error) {
	return listThemes(c.themes)
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at config load time.
func (c *Converter) validateInput(input Input) error {
	if strings.TrimSpace(input.Markdown) == "" {
		return ErrEmptyMarkdown
	}
	if input.Theme != "" {
		if err := assets.ValidateThemeName(input.Theme); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidTheme, err)
		}
	}
	return input.Layout.Validate()
}

// resolveHeader merges explicit input with the document's own directives.
func resolveHeader(input Input, fm pipeline.FrontMatter) pipeline.DeckHeader {
	h := pipeline.DeckHeader{
		Theme:    firstNonEmpty(input.Theme, fm.Theme, assets.DefaultTheme),
		Class:    firstNonEmpty(input.Class, fm.Class),
		Paginate: true,
	}
	switch {
	case input.Paginate != nil:
		h.Paginate = *input.Paginate
	case fm.Paginate != nil:
		h.Paginate = *fm.Paginate
	}
	return h
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func trimSlides(slides []string) []string {
	out := make([]string, 0, len(slides))
	for _, s := range slides {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// shortID keeps temp directory names readable.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// phaseError tags err with phase unless a renderer or measurer already named
// the failing phase. Timeouts keep matching context.DeadlineExceeded.
func phaseError(phase, err error) error {
	if IsRenderError(err) {
		return err
	}
	return fmt.Errorf("%w: %w", phase, err)
}

// IsRenderError reports whether err comes from rendering or measuring, as
// opposed to invalid input.
func IsRenderError(err error) bool {
	for _, target := range []error{
		ErrRendererNotFound, ErrRender, ErrBrowserConnect,
		ErrPageCreate, ErrPageLoad, ErrMeasure, ErrInvalidMeasurement,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
