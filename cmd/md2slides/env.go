package main

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	// Environ lists environment variables as KEY=value pairs.
	Environ func() []string
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:     time.Now,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Environ: os.Environ,
	}
}

// environ returns the injected environment, or the process environment
// when none was set.
func (e *Environment) environ() []string {
	if e.Environ == nil {
		return os.Environ()
	}
	return e.Environ()
}

// newLogger creates the CLI logger. Logs go to stderr so stdout stays
// usable for previews and the MCP protocol.
func newLogger(w io.Writer, quiet, verbose bool) *log.Logger {
	level := log.InfoLevel
	switch {
	case quiet:
		level = log.ErrorLevel
	case verbose:
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "md2slides",
		ReportTimestamp: verbose,
		TimeFormat:      time.TimeOnly,
	})
}
