package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// slideFlags holds deck directive and pagination flags.
type slideFlags struct {
	theme        string
	class        string
	noPaginate   bool
	splitDepth   int
	usableHeight float64
	safetyMargin float64
	noAutoSplit  bool

	// safetyMarginSet distinguishes an explicit --safety-margin 0 from unset.
	safetyMarginSet bool
}

// renderFlags holds flags selecting and tuning the probe renderer.
type renderFlags struct {
	renderer string
	marpBin  string
	themeSet string
	settle   string
	timeout  string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common  commonFlags
	output  string
	workers int
	export  []string
	preview bool
	slides  slideFlags
	render  renderFlags
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common    commonFlags
	outputDir string
	render    renderFlags
}

// themesFlags holds flags for the themes command.
type themesFlags struct {
	common   commonFlags
	themeSet string
	json     bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timings")
}

// addSlideFlags adds deck and pagination flags to a FlagSet.
func addSlideFlags(fs *flag.FlagSet, f *slideFlags) {
	fs.StringVar(&f.theme, "theme", "", "Marp theme name (default: front matter, then \"default\")")
	fs.StringVar(&f.class, "class", "", "Marp class directive, e.g. lead or invert")
	fs.BoolVar(&f.noPaginate, "no-paginate", false, "hide slide numbers")
	fs.IntVarP(&f.splitDepth, "split-depth", "d", 0, "heading levels that start a slide (1-6, default: 2)")
	fs.Float64Var(&f.usableHeight, "usable-height", 0, "slide content height in px (0 = measured)")
	fs.Float64Var(&f.safetyMargin, "safety-margin", 0, "px kept free at the bottom of each slide (default: 30)")
	fs.BoolVar(&f.noAutoSplit, "no-auto-split", false, "keep existing --- slide breaks as written")
}

// addRenderFlags adds renderer flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.renderer, "renderer", "", "probe renderer: marp, builtin (default: marp when installed)")
	fs.StringVar(&f.marpBin, "marp-bin", "", "Marp CLI executable")
	fs.StringVar(&f.themeSet, "theme-set", "", "directory of custom theme CSS files")
	fs.StringVar(&f.settle, "settle", "", "wait after page load before measuring (e.g., 500ms)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "time limit per document (e.g., 30s, 2m)")
}

// newConvertFlagSet registers the convert flags on a new FlagSet.
func newConvertFlagSet(f *convertFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringSliceVarP(&f.export, "export", "e", nil, "also export the deck: pptx, pdf")
	fs.BoolVarP(&f.preview, "preview", "p", false, "print the slides to the terminal")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addSlideFlags(fs, &f.slides)
	addRenderFlags(fs, &f.render)

	return fs
}

// parseConvertFlags parses convert command flags and returns positional args.
func parseConvertFlags(args []string, usage io.Writer) (*convertFlags, []string, error) {
	f := &convertFlags{}
	fs := newConvertFlagSet(f)
	fs.SetOutput(io.Discard) // parse errors are reported by printError
	fs.Usage = func() { printConvertUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, usageError(err)
	}
	f.slides.safetyMarginSet = fs.Changed("safety-margin")

	return f, fs.Args(), nil
}

// parseServeFlags parses serve command flags.
func parseServeFlags(args []string, usage io.Writer) (*serveFlags, error) {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	f := &serveFlags{}

	fs.StringVarP(&f.outputDir, "output", "o", "", "directory receiving generated decks (default: output_slides)")
	addCommonFlags(fs, &f.common)
	addRenderFlags(fs, &f.render)
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printServeUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	if fs.NArg() > 0 {
		return nil, usageError(errUnexpectedArgs(fs.Args()))
	}
	return f, nil
}

// parseThemesFlags parses themes command flags.
func parseThemesFlags(args []string, usage io.Writer) (*themesFlags, error) {
	fs := flag.NewFlagSet("themes", flag.ContinueOnError)
	f := &themesFlags{}

	addCommonFlags(fs, &f.common)
	fs.StringVar(&f.themeSet, "theme-set", "", "directory of custom theme CSS files")
	fs.BoolVar(&f.json, "json", false, "print themes as JSON")
	fs.SetOutput(io.Discard)
	fs.Usage = func() { printThemesUsage(usage) }

	if err := fs.Parse(args); err != nil {
		return nil, usageError(err)
	}
	if fs.NArg() > 0 {
		return nil, usageError(errUnexpectedArgs(fs.Args()))
	}
	return f, nil
}
