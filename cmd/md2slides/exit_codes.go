package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	flag "github.com/spf13/pflag"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/config"
	"github.com/alnah/go-md2slides/internal/hints"
)

// Exit codes for md2slides CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful conversion
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser, Marp or measurement errors
)

// ErrUsage marks invalid command lines.
var ErrUsage = errors.New("invalid usage")

// usageError wraps a flag parsing error. Help requests pass through so the
// caller can exit successfully.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

func errUnexpectedArgs(args []string) error {
	return fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))
}

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return ExitSuccess
	}

	// An interrupt is not a browser failure, whichever phase it stopped.
	if errors.Is(err, context.Canceled) {
		return ExitGeneral
	}

	// Browser and renderer errors (exit 4)
	if errors.Is(err, md2slides.ErrBrowserConnect) ||
		errors.Is(err, md2slides.ErrPageCreate) ||
		errors.Is(err, md2slides.ErrPageLoad) ||
		errors.Is(err, md2slides.ErrMeasure) ||
		errors.Is(err, md2slides.ErrInvalidMeasurement) ||
		errors.Is(err, md2slides.ErrRender) ||
		errors.Is(err, md2slides.ErrRendererNotFound) ||
		errors.Is(err, md2slides.ErrExport) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadMarkdown) ||
		errors.Is(err, ErrWriteDeck) ||
		errors.Is(err, ErrCreateOutputDir) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, ErrNoMarkdownFiles) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrInvalidEnv) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, md2slides.ErrEmptyMarkdown) ||
		errors.Is(err, md2slides.ErrInvalidTheme) ||
		errors.Is(err, md2slides.ErrInvalidThemeSet) ||
		errors.Is(err, md2slides.ErrInvalidSplitDepth) ||
		errors.Is(err, md2slides.ErrInvalidUsableHeight) ||
		errors.Is(err, md2slides.ErrInvalidSafetyMargin) ||
		errors.Is(err, md2slides.ErrInvalidExportFormat) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, md2slides.ErrBrowserConnect):
		return hints.ForBrowserConnect(os.Getenv)
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, md2slides.ErrRendererNotFound):
		return hints.ForMarpNotFound()
	case errors.Is(err, md2slides.ErrRender):
		return hints.ForRenderFailed()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(searchedPaths(err))
	case errors.Is(err, ErrCreateOutputDir):
		return hints.ForOutputDirectory()
	case errors.Is(err, md2slides.ErrInvalidTheme):
		themes, listErr := md2slides.ListThemes("")
		if listErr != nil {
			return ""
		}
		return hints.ForThemeNotFound(md2slides.ThemeNames(themes))
	}
	return ""
}

// searchedPaths extracts the candidate paths from a config lookup error.
func searchedPaths(err error) []string {
	_, tried, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(tried, ", ")
}

// printError writes err and its hint, if any.
func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "error: %v%s\n", err, hintFor(err))
}
