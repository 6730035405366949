package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain dispatches to a command and returns the process exit code.
// A first argument that is a flag or a Markdown file runs convert.
func runMain(args []string, env *Environment) int {
	// A missing .env is the common case, only a broken one is worth reporting.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(env.Stderr, "warning: loading .env: %v\n", err)
	}

	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]
	var err error

	switch {
	case cmd == "convert":
		err = runConvertCmd(ctx, rest, env)
	case cmd == "themes":
		err = runThemesCmd(rest, env)
	case cmd == "serve":
		err = runServeCmd(ctx, rest, env)
	case cmd == "doctor":
		return runDoctorCmd(rest, env)
	case cmd == "version" || cmd == "--version":
		fmt.Fprintf(env.Stdout, "go-md2slides %s\n", Version)
		return ExitSuccess
	case cmd == "help" || cmd == "--help" || cmd == "-h":
		return runHelp(rest, env)
	case strings.HasPrefix(cmd, "-") || fileutil.IsMarkdown(cmd) || fileutil.DirExists(cmd):
		err = runConvertCmd(ctx, args[1:], env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if err != nil && !errors.Is(err, flag.ErrHelp) {
		printError(env.Stderr, err)
	}
	return exitCodeFor(err)
}
