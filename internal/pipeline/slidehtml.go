package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// ErrSlideRender indicates a slide document could not be rendered to HTML.
var ErrSlideRender = errors.New("slide rendering failed")

// slideTemplate wraps rendered sections in a complete HTML5 document.
const slideTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Slides</title>
<style>
%s
</style>
</head>
<body>
%s</body>
</html>`

// codeStyle is the chroma style used for fenced code.
const codeStyle = "github"

// SlideHTMLRenderer renders a Marp-flavored Markdown document to HTML with
// goldmark, one <section> per slide. It covers what pagination needs to
// measure: block layout, tables, code and raw HTML. Marp-only features such
// as image directives or math typesetting are not rendered.
type SlideHTMLRenderer struct {
	md goldmark.Markdown
}

// NewSlideHTMLRenderer creates a SlideHTMLRenderer with GFM extensions and
// syntax highlighting. Raw HTML is passed through because probe markers and
// style overrides are embedded in the Markdown.
func NewSlideHTMLRenderer() *SlideHTMLRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle(codeStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // inline styles, the page has no chroma stylesheet
				),
			),
		),
		goldmark.WithRendererOptions(
			gmhtml.WithHardWraps(), // Marp renders single newlines as <br>
			gmhtml.WithUnsafe(),
		),
	)
	return &SlideHTMLRenderer{md: md}
}

// Render converts document to a standalone HTML page styled with css.
// Front matter directives set the theme and class attributes of each section.
// Supports context cancellation via goroutine + select pattern since
// goldmark doesn't natively support context.
func (r *SlideHTMLRenderer) Render(ctx context.Context, document, css string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		fm, body := SplitFrontMatter(normalizeLineEndings(document))

		var sections strings.Builder
		for _, slide := range SplitSlides(body) {
			var buf bytes.Buffer
			if err := r.md.Convert([]byte(slide), &buf); err != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrSlideRender, err)}
				return
			}
			fmt.Fprintf(&sections, "<section data-theme=\"%s\" class=\"%s\">\n%s</section>\n",
				html.EscapeString(fm.Theme), html.EscapeString(fm.Class), buf.String())
		}
		done <- result{html: fmt.Sprintf(slideTemplate, css, sections.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-done:
		return res.html, res.err
	}
}

// SplitSlides cuts body at separator lines outside fenced code.
func SplitSlides(body string) []string {
	var slides []string
	var current []string
	inFence := false

	for _, line := range strings.Split(body, "\n") {
		if isFence(line) {
			inFence = !inFence
		}
		if !inFence && manualBreakLine.MatchString(line) {
			slides = append(slides, strings.Join(current, "\n"))
			current = nil
			continue
		}
		current = append(current, line)
	}
	return append(slides, strings.Join(current, "\n"))
}
