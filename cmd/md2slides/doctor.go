package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/launcher"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/fileutil"
	"github.com/alnah/go-md2slides/internal/hints"
)

// versionTimeout bounds each `--version` probe.
const versionTimeout = 10 * time.Second

// doctorResult is the full report, printed as text or JSON.
type doctorResult struct {
	Status   string     `json:"status"` // "ready", "warnings", "errors"
	Chrome   chromeInfo `json:"chrome"`
	Marp     marpInfo   `json:"marp"`
	Themes   themeInfo  `json:"themes"`
	Env      envInfo    `json:"environment"`
	System   systemInfo `json:"system"`
	Warnings []string   `json:"warnings,omitempty"`
	Errors   []string   `json:"errors,omitempty"`
}

// toolInfo describes an external executable found on this machine.
type toolInfo struct {
	Found   bool   `json:"found"`
	Path    string `json:"path,omitempty"`
	Version string `json:"version,omitempty"`
}

// chromeInfo is the measuring browser plus its sandbox mode.
type chromeInfo struct {
	toolInfo
	Sandbox bool `json:"sandbox"`
}

// marpInfo is the Marp CLI used for rendering and export.
type marpInfo struct {
	toolInfo
}

// themeInfo holds the themes a conversion can use.
type themeInfo struct {
	ThemeSet string   `json:"theme_set,omitempty"`
	Names    []string `json:"names"`
}

// envInfo is what the environment says about sandboxing and binaries.
type envInfo struct {
	OS            string `json:"os"`
	Arch          string `json:"arch"`
	Container     bool   `json:"container"`
	ContainerHint string `json:"container_hint,omitempty"`
	CI            bool   `json:"ci"`
	NoSandbox     string `json:"rod_no_sandbox"`
	BrowserBin    string `json:"rod_browser_bin"`
	MarpBin       string `json:"marp_bin,omitempty"`
}

type systemInfo struct {
	TempWritable bool `json:"temp_writable"`
}

// runDoctorCmd prints the report and exits 1 only when an error blocks
// conversion. Warnings still exit 0.
func runDoctorCmd(args []string, env *Environment) int {
	asJSON := slices.Contains(args, "--json")

	result := runDoctor(doctorGetenv(env))
	if asJSON {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
	} else {
		printDoctorResult(env.Stdout, result)
	}

	if result.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

// doctorGetenv reads variables from the injected environment, falling back
// to the process environment.
func doctorGetenv(env *Environment) func(string) string {
	vars := envMap(env.environ())
	return func(key string) string { return vars[key] }
}

// runDoctor runs every check against getenv and derives the status.
func runDoctor(getenv func(string) string) *doctorResult {
	result := &doctorResult{
		Env: envInfo{
			OS:         runtime.GOOS,
			Arch:       runtime.GOARCH,
			NoSandbox:  getenv("ROD_NO_SANDBOX"),
			BrowserBin: getenv("ROD_BROWSER_BIN"),
			MarpBin:    getenv(envPrefix + "MARP_BIN"),
		},
	}

	checks := []func(*doctorResult){
		checkChrome,
		checkMarp,
		func(r *doctorResult) { checkThemes(r, getenv(envPrefix+"THEME_SET")) },
		func(r *doctorResult) { checkEnvironment(r, getenv) },
		checkSystem,
	}
	for _, check := range checks {
		check(result)
	}

	result.Status = result.status()
	return result
}

func (r *doctorResult) status() string {
	switch {
	case len(r.Errors) > 0:
		return "errors"
	case len(r.Warnings) > 0:
		return "warnings"
	default:
		return "ready"
	}
}

func (r *doctorResult) warnf(format string, a ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, a...))
}

func (r *doctorResult) errorf(format string, a ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, a...))
}

// locateChrome prefers an explicit binary and otherwise asks rod's launcher.
// problem is the report message when no usable browser was found.
func locateChrome(explicit string) (path, problem string) {
	if explicit == "" {
		bin, found := launcher.LookPath()
		if !found {
			return "", "Chrome/Chromium not found. Install Chrome or set ROD_BROWSER_BIN"
		}
		return bin, ""
	}
	if _, err := os.Stat(explicit); err != nil {
		return "", "Chrome not found at " + explicit
	}
	return explicit, ""
}

// checkChrome looks for the measuring browser. Without one no deck can be
// paginated, so a miss is an error.
func checkChrome(result *doctorResult) {
	chromePath, problem := locateChrome(result.Env.BrowserBin)
	if problem != "" {
		result.errorf("%s", problem)
		return
	}

	result.Chrome.Found = true
	result.Chrome.Path = chromePath
	result.Chrome.Sandbox = result.Env.NoSandbox != "1"

	v, err := commandVersion(chromePath)
	if err != nil {
		result.warnf("Could not get Chrome version: %v", err)
		return
	}
	result.Chrome.Version = v
}

// checkMarp detects the Marp CLI. The builtin renderer still paginates
// without it, so a miss only disables exports.
func checkMarp(result *doctorResult) {
	path, err := md2slides.FindMarp(result.Env.MarpBin)
	if err != nil {
		result.warnf("Marp CLI not found: using the builtin renderer, PPTX/PDF export unavailable. Run: npm install @marp-team/marp-cli")
		return
	}

	result.Marp.Found = true
	result.Marp.Path = path
	v, err := commandVersion(path)
	if err != nil {
		result.warnf("Could not get Marp version: %v", err)
		return
	}
	result.Marp.Version = v
}

// checkThemes lists the usable themes, including the configured theme set.
func checkThemes(result *doctorResult, themeSet string) {
	result.Themes.ThemeSet = themeSet
	themes, err := md2slides.ListThemes(themeSet)
	if err != nil {
		result.errorf("Theme set unusable: %v", err)
		return
	}
	result.Themes.Names = md2slides.ThemeNames(themes)
}

// commandVersion runs `bin --version` and returns its first output line.
func commandVersion(bin string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), versionTimeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, bin, "--version").Output() // #nosec G204 -- located executable
	if err != nil {
		return "", err
	}
	line, _, _ := strings.Cut(strings.TrimSpace(string(out)), "\n")
	return line, nil
}

// checkEnvironment detects container and CI environments.
func checkEnvironment(result *doctorResult, getenv func(string) string) {
	result.Env.Container, result.Env.ContainerHint = hints.Container(getenv)
	result.Env.CI = hints.InCI(getenv)

	if (result.Env.Container || result.Env.CI) && result.Env.NoSandbox != "1" {
		result.warnf("Container/CI detected but ROD_NO_SANDBOX not set. Set ROD_NO_SANDBOX=1")
	}
}

// checkSystem verifies a probe workspace can be created, the same way a
// conversion creates one.
func checkSystem(result *doctorResult) {
	dir, cleanup, err := fileutil.MakeTempDir("doctor")
	if err != nil {
		result.errorf("Temp directory not writable: %s", os.TempDir())
		return
	}
	defer cleanup()

	if _, err := fileutil.WriteInDir(dir, "probe.md", "# probe\n"); err != nil {
		result.errorf("Temp directory not writable: %s", dir)
		return
	}
	result.System.TempWritable = true
}

// doctorLine is one marked line of the human report.
type doctorLine struct {
	mark string
	text string
}

func okLine(format string, a ...any) doctorLine { return doctorLine{"OK", fmt.Sprintf(format, a...)} }
func warnLine(format string, a ...any) doctorLine { return doctorLine{"WARN", fmt.Sprintf(format, a...)} }
func failLine(format string, a ...any) doctorLine { return doctorLine{"ERROR", fmt.Sprintf(format, a...)} }

// writeSection prints a titled block followed by a blank line.
func writeSection(w io.Writer, title string, lines []doctorLine) {
	fmt.Fprintln(w, title)
	for _, l := range lines {
		fmt.Fprintf(w, "  [%s] %s\n", l.mark, l.text)
	}
	fmt.Fprintln(w)
}

// printDoctorResult outputs human-readable diagnostic results.
func printDoctorResult(w io.Writer, r *doctorResult) {
	fmt.Fprintln(w, "md2slides doctor")
	fmt.Fprintln(w)

	var chrome []doctorLine
	if r.Chrome.Found {
		chrome = append(chrome, okLine("Found at %s", r.Chrome.Path))
		if r.Chrome.Version != "" {
			chrome = append(chrome, okLine("Version: %s", r.Chrome.Version))
		}
		sandbox := "enabled"
		if !r.Chrome.Sandbox {
			sandbox = "disabled (ROD_NO_SANDBOX=1)"
		}
		chrome = append(chrome, okLine("Sandbox: %s", sandbox))
	} else {
		chrome = append(chrome, failLine("Not found"))
	}
	writeSection(w, "Chrome/Chromium", chrome)

	var marp []doctorLine
	if r.Marp.Found {
		marp = append(marp, okLine("Found at %s", r.Marp.Path))
		if r.Marp.Version != "" {
			marp = append(marp, okLine("Version: %s", r.Marp.Version))
		}
	} else {
		marp = append(marp, warnLine("Not found (builtin renderer, no export)"))
	}
	writeSection(w, "Marp CLI", marp)

	var themes []doctorLine
	if r.Themes.ThemeSet != "" {
		themes = append(themes, okLine("Theme set: %s", r.Themes.ThemeSet))
	}
	if len(r.Themes.Names) > 0 {
		themes = append(themes, okLine("Available: %s", strings.Join(r.Themes.Names, ", ")))
	}
	writeSection(w, "Themes", themes)

	envLines := []doctorLine{okLine("Platform: %s/%s", r.Env.OS, r.Env.Arch)}
	if r.Env.Container {
		envLines = append(envLines, okLine("Container: detected (%s)", r.Env.ContainerHint))
	}
	if r.Env.CI {
		envLines = append(envLines, okLine("CI: detected"))
	}
	if r.Env.MarpBin != "" {
		envLines = append(envLines, okLine("MD2SLIDES_MARP_BIN: %s", r.Env.MarpBin))
	}
	writeSection(w, "Environment", envLines)

	tmp := failLine("Temp directory: not writable")
	if r.System.TempWritable {
		tmp = okLine("Temp directory: writable")
	}
	writeSection(w, "System", []doctorLine{tmp})

	if len(r.Warnings) > 0 {
		lines := make([]doctorLine, 0, len(r.Warnings))
		for _, msg := range r.Warnings {
			lines = append(lines, warnLine("%s", msg))
		}
		writeSection(w, "Warnings:", lines)
	}
	if len(r.Errors) > 0 {
		lines := make([]doctorLine, 0, len(r.Errors))
		for _, msg := range r.Errors {
			lines = append(lines, failLine("%s", msg))
		}
		writeSection(w, "Errors:", lines)
	}

	fmt.Fprintln(w, "Status:", statusLabel(r.Status))
}

func statusLabel(status string) string {
	switch status {
	case "ready":
		return "Ready to convert"
	case "warnings":
		return "Ready with warnings"
	default:
		return "Not ready (see errors above)"
	}
}
