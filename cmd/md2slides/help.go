package main

import (
	"fmt"
	"io"

	md2slides "github.com/alnah/go-md2slides"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Paginate markdown files into Marp decks")
	fmt.Fprintln(w, "  themes     List available themes")
	fmt.Fprintln(w, "  serve      Serve slide generation over MCP (stdio)")
	fmt.Fprintln(w, "  doctor     Check Chrome, Marp and the environment")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2slides help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Split markdown into slides that fit the theme, measured in a headless browser.")
	fmt.Fprintln(w, "Decks are written as <name>.slides.md.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (optional if config has input.defaultDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output deck file or directory")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintf(w, "  -w, --workers <n>         Parallel workers (0 = auto, max %d)\n", md2slides.MaxPoolSize)
	fmt.Fprintln(w, "  -e, --export <list>       Also export: pptx, pdf (requires Marp CLI)")
	fmt.Fprintln(w, "  -p, --preview             Print the slides to the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Deck:")
	fmt.Fprintln(w, "      --theme <s>           Theme name (default: front matter, then \"default\")")
	fmt.Fprintln(w, "      --class <s>           Class directive, e.g. lead or invert")
	fmt.Fprintln(w, "      --no-paginate         Hide slide numbers")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pagination:")
	fmt.Fprintf(w, "  -d, --split-depth <n>     Heading levels that start a slide (1-%d, default: %d)\n",
		md2slides.MaxSplitDepth, md2slides.DefaultSplitDepth)
	fmt.Fprintln(w, "      --usable-height <px>  Slide content height (0 = measured)")
	fmt.Fprintf(w, "      --safety-margin <px>  Space kept free per slide (default: %g)\n", md2slides.DefaultSafetyMargin)
	fmt.Fprintln(w, "      --no-auto-split       Keep existing --- breaks as written")
	fmt.Fprintln(w)
	printRenderUsage(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show debug logs and timings")
}

// printRenderUsage prints the renderer flags shared by convert and serve.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --renderer <s>        Probe renderer: marp, builtin")
	fmt.Fprintln(w, "      --marp-bin <path>     Marp CLI executable")
	fmt.Fprintln(w, "      --theme-set <dir>     Directory of custom theme CSS files")
	fmt.Fprintln(w, "      --settle <d>          Wait after page load (e.g., 500ms)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Time limit per document (e.g., 30s, 2m)")
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the create_presentation tool, the theme://available resource and")
	fmt.Fprintln(w, "the academic_report_prompt prompt over MCP on stdin/stdout.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -o, --output <dir>        Deck directory (default: output_slides)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only log errors")
	fmt.Fprintln(w, "  -v, --verbose             Log debug messages")
	fmt.Fprintln(w)
	printRenderUsage(w)
}

// printThemesUsage prints usage for the themes command.
func printThemesUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2slides themes [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List built-in themes and the custom themes of the theme set.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --theme-set <dir>     Directory of custom theme CSS files")
	fmt.Fprintln(w, "      --json                Print themes as JSON")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "convert":
		printConvertUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "themes":
		printThemesUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: md2slides doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, Marp CLI, themes and the environment.")
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2slides version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2slides help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
