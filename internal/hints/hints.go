// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2slides/internal/fileutil"
)

// dockerEnvFile is created by Docker at the root of every container.
var dockerEnvFile = "/.dockerenv"

// Container reports whether the process seems to run in a container and
// which signal gave it away.
func Container(getenv func(string) string) (bool, string) {
	switch {
	case getenv("MD2SLIDES_CONTAINER") == "1":
		return true, "MD2SLIDES_CONTAINER=1"
	case fileutil.FileExists(dockerEnvFile):
		return true, dockerEnvFile
	case getenv("container") != "":
		return true, "container=" + getenv("container")
	case getenv("KUBERNETES_SERVICE_HOST") != "":
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

// InCI reports whether a known CI runner variable is set.
func InCI(getenv func(string) string) bool {
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if getenv(key) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect returns hints for a browser that failed to start.
// Sandboxing is the usual culprit in CI and containers.
func ForBrowserConnect(getenv func(string) string) string {
	var hints []string

	inContainer, _ := Container(getenv)
	if (InCI(getenv) || inContainer) && getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 inside Docker or CI")
	}
	if getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "point ROD_BROWSER_BIN at a Chrome binary")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about the time limits of slow conversions.
func ForTimeout() string {
	return format("for long documents or slow machines, raise --timeout or --settle")
}

// ForMarpNotFound returns hints for a missing Marp CLI.
func ForMarpNotFound() string {
	return formatHints([]string{
		"install it with: npm install -g @marp-team/marp-cli",
		"or measure with --renderer builtin",
	})
}

// ForRenderFailed returns a hint for a renderer that exited with an error.
func ForRenderFailed() string {
	return format("run with --verbose to see the renderer output")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-md2slides/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "go-md2slides/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForThemeNotFound returns hints for unknown theme names.
func ForThemeNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + "; add more with --theme-set")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
