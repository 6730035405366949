package md2slides

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-md2slides/internal/layout"
)

// LayoutMeasurer lays out a rendered probe page and reports where each
// probe marker ends.
type LayoutMeasurer interface {
	Measure(ctx context.Context, htmlPath string) (*layout.Measurement, error)
	Close() error
}

// Compile-time interface check
var _ LayoutMeasurer = (*rodMeasurer)(nil)

// Slide canvas in CSS pixels.
const (
	slideWidth  = 1280
	slideHeight = 720
)

// layoutScript measures every probe marker. A marker is attributed to the
// nearest enclosing block so its offset includes the block's bottom margin.
var layoutScript = fmt.Sprintf(`() => {
	const section = document.querySelector('section');
	if (!section) {
		return { usableHeight: 0, probes: [] };
	}
	const style = getComputedStyle(section);
	const paddingTop = parseFloat(style.paddingTop) || 0;
	const paddingBottom = parseFloat(style.paddingBottom) || 0;
	const contentTop = section.getBoundingClientRect().top + paddingTop;
	const blocks = new Set(['LI', 'P', 'H1', 'H2', 'H3', 'H4', 'H5', 'H6', 'TR', 'DIV', 'BLOCKQUOTE', 'PRE']);

	const probes = [];
	document.querySelectorAll('.%s').forEach((marker) => {
		let el = marker.parentElement;
		while (el && el.tagName !== 'SECTION' && !blocks.has(el.tagName)) {
			el = el.parentElement;
		}
		if (!el || el.tagName === 'SECTION') {
			el = marker.parentElement;
		}
		const rect = el.getBoundingClientRect();
		const marginBottom = parseFloat(getComputedStyle(el).marginBottom) || 0;
		probes.push({ idx: Number(marker.dataset.idx), y: rect.bottom + marginBottom - contentTop });
	});

	return { usableHeight: %d - paddingTop - paddingBottom, probes };
}`, layout.ProbeClass, slideHeight)

// rodMeasurer implements LayoutMeasurer using go-rod.
// The browser is launched on first use and reused until Close.
type rodMeasurer struct {
	browser    *rod.Browser
	browserBin string
	timeout    time.Duration
	settle     time.Duration
	logger     *log.Logger
}

// newRodMeasurer creates a rodMeasurer.
func newRodMeasurer(browserBin string, timeout, settle time.Duration, logger *log.Logger) *rodMeasurer {
	return &rodMeasurer{
		browserBin: browserBin,
		timeout:    timeout,
		settle:     settle,
		logger:     logger,
	}
}

// ensureBrowser lazily connects to the browser.
func (m *rodMeasurer) ensureBrowser() error {
	if m.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	bin := m.browserBin
	if bin == "" {
		bin = os.Getenv("ROD_BROWSER_BIN")
	}
	if bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || bin != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	m.browser = rod.New().ControlURL(u)
	if err := m.browser.Connect(); err != nil {
		m.browser = nil
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	m.logger.Debug("browser connected", "control", u)
	return nil
}

// Close releases browser resources.
func (m *rodMeasurer) Close() error {
	if m.browser != nil {
		err := m.browser.Close()
		m.browser = nil
		return err
	}
	return nil
}

// Measure opens htmlPath on a 1280x720 viewport, waits for the layout to
// settle and evaluates the layout script.
func (m *rodMeasurer) Measure(ctx context.Context, htmlPath string) (*layout.Measurement, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageLoad, err)
	}

	if err := m.ensureBrowser(); err != nil {
		return nil, err
	}

	absPath, err := filepath.Abs(htmlPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	page, err := m.browser.Page(proto.TargetCreateTarget{URL: "file://" + filepath.ToSlash(absPath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             slideWidth,
		Height:            slideHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		return nil, fmt.Errorf("%w: setting viewport: %v", ErrPageCreate, err)
	}

	// Wait for page to load with timeout from context or default
	timeout := m.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, fmt.Errorf("%w: %w", ErrPageLoad, context.DeadlineExceeded)
		}
	}
	page = page.Context(ctx)

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPageLoad, contextCause(ctx, err))
	}

	if err := sleepContext(ctx, m.settle); err != nil {
		return nil, fmt.Errorf("%w: settling: %w", ErrPageLoad, err)
	}

	obj, err := page.Timeout(timeout).Eval(layoutScript)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMeasure, contextCause(ctx, err))
	}

	raw, err := obj.Value.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMeasurement, err)
	}
	return parseMeasurement(raw)
}

// contextCause prefers the context's error when it ended, so callers can
// tell a deadline or an interrupt from a browser failure.
func contextCause(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return err
}

// sleepContext waits for d or until ctx ends.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// parseMeasurement decodes the layout script result.
func parseMeasurement(raw []byte) (*layout.Measurement, error) {
	var m layout.Measurement
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMeasurement, err)
	}
	return &m, nil
}
