package md2slides

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/alnah/go-md2slides/internal/assets"
	"github.com/alnah/go-md2slides/internal/pipeline"
	"github.com/alnah/go-md2slides/internal/process"
)

// Renderer turns a Marp Markdown file into an HTML file a browser can lay out.
type Renderer interface {
	Render(ctx context.Context, mdPath, htmlPath string) error
}

// Compile-time interface checks
var (
	_ Renderer = (*marpRenderer)(nil)
	_ Renderer = (*builtinRenderer)(nil)
)

// maxStderr bounds how much renderer output is kept for error messages.
const maxStderr = 4096

// marpCmd runs the Marp CLI.
type marpCmd struct {
	bin        string
	themeSet   string
	browserBin string
	logger     *log.Logger
}

// run executes marp with args. The whole process group is killed when ctx
// ends, because Marp starts its own browser.
func (m marpCmd) run(ctx context.Context, args ...string) error {
	if m.themeSet != "" {
		args = append(args, "--theme-set", m.themeSet)
	}

	cmd := exec.CommandContext(ctx, m.bin, args...) // #nosec G204 -- bin is resolved by FindMarp
	process.Detach(cmd)
	cmd.Cancel = func() error {
		process.KillProcessGroup(cmd.Process.Pid)
		return cmd.Process.Kill()
	}
	cmd.Env = os.Environ()
	if m.browserBin != "" {
		cmd.Env = append(cmd.Env, "CHROME_PATH="+m.browserBin)
	}

	var stderr bytes.Buffer
	cmd.Stdout = &stderr
	cmd.Stderr = &stderr

	m.logger.Debug("running marp", "bin", m.bin, "args", strings.Join(args, " "))
	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		return fmt.Errorf("%v: %s", err, tail(stderr.String(), maxStderr))
	}
	return nil
}

// tail keeps the last n bytes of s, trimmed.
func tail(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		s = "..." + s[len(s)-n:]
	}
	return s
}

// marpRenderer renders probe documents with the Marp CLI.
type marpRenderer struct {
	cmd marpCmd
}

func newMarpRenderer(cmd marpCmd) *marpRenderer {
	return &marpRenderer{cmd: cmd}
}

// Render runs marp <in.md> -o <out.html> --html --allow-local-files.
func (r *marpRenderer) Render(ctx context.Context, mdPath, htmlPath string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	if err := r.cmd.run(ctx, mdPath, "-o", htmlPath, "--html", "--allow-local-files"); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

// builtinRenderer renders probe documents with goldmark and the theme CSS.
// Measurements follow the theme's padding and font sizes but not Marp's
// exact typesetting, so a larger safety margin may be needed.
type builtinRenderer struct {
	html   *pipeline.SlideHTMLRenderer
	themes assets.ThemeLoader
}

func newBuiltinRenderer(themes assets.ThemeLoader) *builtinRenderer {
	return &builtinRenderer{
		html:   pipeline.NewSlideHTMLRenderer(),
		themes: themes,
	}
}

// Render converts the Markdown file to a standalone HTML page.
func (r *builtinRenderer) Render(ctx context.Context, mdPath, htmlPath string) error {
	data, err := os.ReadFile(mdPath) // #nosec G304 -- probe file written by the converter
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrRender, mdPath, err)
	}
	document := string(data)

	fm, _ := pipeline.SplitFrontMatter(document)
	theme := fm.Theme
	if theme == "" {
		theme = assets.DefaultTheme
	}
	css, err := r.themes.LoadTheme(theme)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}

	page, err := r.html.Render(ctx, document, css)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("%w: %w", ErrRender, ctxErr)
		}
		return fmt.Errorf("%w: %v", ErrRender, err)
	}

	if err := os.WriteFile(htmlPath, []byte(page), 0o600); err != nil {
		return fmt.Errorf("%w: writing %s: %v", ErrRender, htmlPath, err)
	}
	return nil
}
