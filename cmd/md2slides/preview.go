package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"
)

// previewWidth is the word-wrap width of terminal previews.
const previewWidth = 100

// previewResults renders every slide of the successful conversions to w.
func previewResults(w io.Writer, results []ConversionResult) error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(previewWidth),
	)
	if err != nil {
		return fmt.Errorf("creating preview renderer: %w", err)
	}

	for _, res := range results {
		if res.Err != nil {
			continue
		}
		if err := previewSlides(w, r, res.OutputPath, res.Slides); err != nil {
			return err
		}
	}
	return nil
}

// previewSlides writes one framed section per slide.
func previewSlides(w io.Writer, r *glamour.TermRenderer, title string, slides []string) error {
	fmt.Fprintf(w, "\n%s\n", title)
	for i, slide := range slides {
		out, err := r.Render(slide)
		if err != nil {
			return fmt.Errorf("rendering slide %d: %w", i+1, err)
		}
		fmt.Fprintf(w, "--- slide %d/%d ---\n%s", i+1, len(slides), out)
	}
	return nil
}
