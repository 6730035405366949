package md2slides

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestParseExportFormat
// ---------------------------------------------------------------------------

func TestParseExportFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    ExportFormat
		wantErr bool
	}{
		{"pptx", FormatPPTX, false},
		{"PDF", FormatPDF, false},
		{" pdf ", FormatPDF, false},
		{"key", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseExportFormat(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidExportFormat) {
				t.Errorf("ParseExportFormat(%q) error = %v, want ErrInvalidExportFormat", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseExportFormat(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestExportPath(t *testing.T) {
	t.Parallel()

	if got := ExportPath("/out/talk.md", FormatPPTX); got != "/out/talk.pptx" {
		t.Errorf("ExportPath = %q", got)
	}
	if got := ExportPath("deck", FormatPDF); got != "deck.pdf" {
		t.Errorf("ExportPath = %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestExporter - Marp export with a fake CLI
// ---------------------------------------------------------------------------

func TestNewExporter_MarpMissing(t *testing.T) {
	t.Parallel()

	_, err := NewExporter(WithMarpBin("/nonexistent/marp"))
	if !errors.Is(err, ErrRendererNotFound) {
		t.Errorf("error = %v, want ErrRendererNotFound", err)
	}
}

func TestExporter_Export(t *testing.T) {
	t.Setenv("FAKE_MARP_FAIL", "pdf")
	bin := newFakeMarp(t)

	dir := t.TempDir()
	deck := filepath.Join(dir, "talk.md")
	if err := os.WriteFile(deck, []byte("---\nmarp: true\n---\n\n# Hi"), 0o600); err != nil {
		t.Fatal(err)
	}

	e, err := NewExporter(WithMarpBin(bin), WithBrowserBin("/opt/chrome"))
	if err != nil {
		t.Fatalf("NewExporter: %v", err)
	}

	results := e.Export(context.Background(), deck, []ExportFormat{FormatPPTX, FormatPDF})
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	pptx := results[0]
	if pptx.Err != nil || pptx.Path != filepath.Join(dir, "talk.pptx") {
		t.Errorf("pptx result = %+v", pptx)
	}
	out, err := os.ReadFile(pptx.Path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(out), "args="+deck+" -o "+pptx.Path+" --allow-local-files") {
		t.Errorf("marp called with %q", out)
	}
	if strings.Contains(string(out), "--html") {
		t.Error("export should not enable raw HTML")
	}

	pdf := results[1]
	if !errors.Is(pdf.Err, ErrExport) {
		t.Errorf("pdf error = %v, want ErrExport", pdf.Err)
	}
	if pdf.Format != FormatPDF {
		t.Errorf("pdf format = %q", pdf.Format)
	}
}
