package md2slides

import (
	"fmt"
	"math"

	"github.com/alnah/go-md2slides/internal/layout"
)

// Layout defaults for a 16:9 slide of 1280x720 pixels.
const (
	DefaultSplitDepth   = layout.DefaultSplitDepth
	DefaultUsableHeight = layout.DefaultUsableHeight
	DefaultSafetyMargin = layout.DefaultSafetyMargin
	MaxSplitDepth       = 6
)

// LayoutSettings configures where pages break.
type LayoutSettings struct {
	// SplitDepth is how many of the shallowest heading depths used in the
	// document start a new slide. 0 means DefaultSplitDepth.
	SplitDepth int
	// UsableHeight overrides the content height measured from the theme, in
	// pixels. 0 means use the measured value.
	UsableHeight float64
	// SafetyMargin is kept free at the bottom of every slide, in pixels.
	// A non-nil LayoutSettings is used as given, so 0 means no margin; start
	// from DefaultLayoutSettings to keep the default.
	SafetyMargin float64
}

// DefaultLayoutSettings returns layout settings with default values.
func DefaultLayoutSettings() *LayoutSettings {
	return &LayoutSettings{
		SplitDepth:   DefaultSplitDepth,
		SafetyMargin: DefaultSafetyMargin,
	}
}

// Validate checks that layout settings are valid.
// Returns nil if l is nil (nil means use defaults).
func (l *LayoutSettings) Validate() error {
	if l == nil {
		return nil
	}

	if l.SplitDepth < 0 || l.SplitDepth > MaxSplitDepth {
		return fmt.Errorf("%w: %d (must be between 1 and %d)", ErrInvalidSplitDepth, l.SplitDepth, MaxSplitDepth)
	}

	if l.UsableHeight < 0 || math.IsNaN(l.UsableHeight) || math.IsInf(l.UsableHeight, 0) {
		return fmt.Errorf("%w: %.1f (must be positive, or 0 to measure)", ErrInvalidUsableHeight, l.UsableHeight)
	}

	if l.SafetyMargin < 0 || math.IsNaN(l.SafetyMargin) || math.IsInf(l.SafetyMargin, 0) {
		return fmt.Errorf("%w: %.1f (must not be negative)", ErrInvalidSafetyMargin, l.SafetyMargin)
	}

	if l.UsableHeight > 0 && l.SafetyMargin >= l.UsableHeight {
		return fmt.Errorf("%w: %.1f leaves no room in %.1f", ErrInvalidSafetyMargin, l.SafetyMargin, l.UsableHeight)
	}

	return nil
}

// resolved fills defaults for a nil or partially set l.
func (l *LayoutSettings) resolved() LayoutSettings {
	if l == nil {
		return *DefaultLayoutSettings()
	}
	out := *l
	if out.SplitDepth == 0 {
		out.SplitDepth = DefaultSplitDepth
	}
	return out
}

// Input contains conversion parameters.
type Input struct {
	Markdown string // Markdown content (required)

	// Theme is the Marp theme name. Empty falls back to the document's front
	// matter, then to "default".
	Theme string
	// Class is the Marp class directive, e.g. "lead" or "invert". Empty falls
	// back to the document's front matter.
	Class string
	// Paginate shows slide numbers. nil falls back to the front matter, then
	// to true.
	Paginate *bool

	Layout *LayoutSettings // Layout settings (optional, nil = defaults)

	// KeepManualBreaks keeps a document that already has --- slide breaks as
	// written instead of paginating it again.
	KeepManualBreaks bool

	// SourceDir resolves relative image paths while measuring, so images
	// take their real height.
	SourceDir string
}

// ConvertResult contains the output of a conversion.
type ConvertResult struct {
	// Deck is the complete Marp document: directives header and slides.
	Deck string
	// Slides holds the Markdown of each slide, without separators.
	Slides []string
	// Theme and Class are the directives written in the deck header.
	Theme string
	Class string
	// Split reports whether the layout engine chose the page breaks.
	Split bool
	// Levels are the heading depths that started a new slide.
	Levels []int
	// Chunks is the number of pagination units in the document.
	Chunks int
	// UsableHeight is the content height pages were fitted into, in pixels.
	UsableHeight float64
	// RunID identifies the conversion in logs and temp file names.
	RunID string
}
