package md2slides

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyMarkdown = errors.New("markdown content cannot be empty")

	// Rendering and measurement errors.
	ErrRendererNotFound   = errors.New("slide renderer not found")
	ErrRender             = errors.New("rendering probe document failed")
	ErrBrowserConnect     = errors.New("failed to connect to browser")
	ErrPageCreate         = errors.New("failed to create browser page")
	ErrPageLoad           = errors.New("failed to load page")
	ErrMeasure            = errors.New("layout measurement failed")
	ErrInvalidMeasurement = errors.New("invalid layout measurement")

	// Export errors.
	ErrExport              = errors.New("deck export failed")
	ErrInvalidExportFormat = errors.New("invalid export format")

	// Input validation errors.
	ErrInvalidTheme        = errors.New("invalid theme")
	ErrInvalidThemeSet     = errors.New("invalid theme set directory")
	ErrInvalidSplitDepth   = errors.New("invalid split depth")
	ErrInvalidUsableHeight = errors.New("invalid usable height")
	ErrInvalidSafetyMargin = errors.New("invalid safety margin")
)
