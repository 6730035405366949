package layout

import (
	"strings"
	"testing"
)

func TestBuildProbe_Preamble(t *testing.T) {
	t.Parallel()

	got := BuildProbe(nil, "gaia")
	for _, want := range []string{"---\nmarp: true\ntheme: gaia\n---\n", "height: auto !important", "overflow: visible !important"} {
		if !strings.Contains(got, want) {
			t.Errorf("probe document missing %q:\n%s", want, got)
		}
	}
}

func TestBuildProbe_Markers(t *testing.T) {
	t.Parallel()

	header := "| A | B |\n|---|---|"
	chunks := []Chunk{
		{Kind: KindText, Body: "# Title"},
		{Kind: KindText, Body: "- item", BlankBefore: true},
		{Kind: KindTableHeader, Body: header, Header: header, BlankBefore: true},
		{Kind: KindTableRow, Body: "| 1 | 2 |", Header: header},
		{Kind: KindText, Body: "```\ncode\n```", BlankBefore: true},
		{Kind: KindText, Body: "$$\nx\n$$", BlankBefore: true},
	}

	got := BuildProbe(chunks, "default")

	tests := []struct {
		name string
		want string
	}{
		{"heading marker inline", "# Title" + probeMarker(0) + "\n\n- item" + probeMarker(1)},
		{"header marker in first row", "| A | B " + probeMarker(2) + "|\n|---|---|"},
		{"row marker before last pipe", "| 1 | 2 " + probeMarker(3) + "|"},
		{"fence marker on own line", "```\ncode\n```\n" + probeMarker(4) + "\n"},
		{"math marker on own line", "$$\nx\n$$\n" + probeMarker(5) + "\n"},
	}

	for _, tt := range tests {
		if !strings.Contains(got, tt.want) {
			t.Errorf("%s: probe document missing %q:\n%s", tt.name, tt.want, got)
		}
	}

	if n := strings.Count(got, `class="`+ProbeClass+`"`); n != len(chunks) {
		t.Errorf("got %d markers, want %d", n, len(chunks))
	}
}

func TestBuildProbe_NoBlankBeforeFirstChunk(t *testing.T) {
	t.Parallel()

	got := BuildProbe([]Chunk{{Kind: KindText, Body: "First", BlankBefore: true}}, "default")
	if !strings.HasSuffix(got, "</style>\n\nFirst"+probeMarker(0)) {
		t.Errorf("unexpected spacing before first chunk:\n%q", got)
	}
}

func TestInsertBeforeLastPipe(t *testing.T) {
	t.Parallel()

	if got := insertBeforeLastPipe("| a |", "X"); got != "| a X|" {
		t.Errorf("got %q", got)
	}
	if got := insertBeforeLastPipe("no pipes", "X"); got != "no pipesX" {
		t.Errorf("got %q", got)
	}
}
