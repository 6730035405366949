package pipeline

import (
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestSplitFrontMatter - Directive extraction
// ---------------------------------------------------------------------------

func TestSplitFrontMatter(t *testing.T) {
	t.Parallel()

	yes := true

	tests := []struct {
		name     string
		input    string
		wantFM   FrontMatter
		wantBody string
	}{
		{
			name:     "no front matter",
			input:    "# Title\n\nText",
			wantBody: "# Title\n\nText",
		},
		{
			name:     "directives parsed",
			input:    "---\nmarp: true\ntheme: gaia\nclass: lead\npaginate: true\n---\n# Title",
			wantFM:   FrontMatter{Theme: "gaia", Class: "lead", Paginate: &yes},
			wantBody: "# Title",
		},
		{
			name:     "empty block",
			input:    "---\n---\nBody",
			wantBody: "Body",
		},
		{
			name:     "invalid yaml still stripped",
			input:    "---\ntheme: [unclosed\n---\nBody",
			wantBody: "Body",
		},
		{
			name:     "unknown keys ignored",
			input:    "---\nheadingDivider: 2\ntheme: uncover\n---\nBody",
			wantFM:   FrontMatter{Theme: "uncover"},
			wantBody: "Body",
		},
		{
			name:     "unclosed block is a thematic break",
			input:    "---\nBody",
			wantBody: "---\nBody",
		},
		{
			name:     "separator not on first line",
			input:    "Intro\n---\ntheme: gaia\n---\n",
			wantBody: "Intro\n---\ntheme: gaia\n---\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			fm, body := SplitFrontMatter(tt.input)
			if body != tt.wantBody {
				t.Errorf("body = %q, want %q", body, tt.wantBody)
			}
			if fm.Theme != tt.wantFM.Theme || fm.Class != tt.wantFM.Class {
				t.Errorf("front matter = %+v, want %+v", fm, tt.wantFM)
			}
			if (fm.Paginate == nil) != (tt.wantFM.Paginate == nil) {
				t.Errorf("Paginate = %v, want %v", fm.Paginate, tt.wantFM.Paginate)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestNormalize - Preparation before pagination
// ---------------------------------------------------------------------------

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		input     string
		autoSplit bool
		want      string
		wantSplit bool
	}{
		{
			name:      "line endings",
			input:     "# A\r\n\r\nText\rMore",
			autoSplit: true,
			want:      "# A\n\nText\nMore",
			wantSplit: true,
		},
		{
			name:      "manual breaks removed",
			input:     "# A\n\n---\n\n# B",
			autoSplit: true,
			want:      "# A\n\n# B",
			wantSplit: true,
		},
		{
			name:      "manual breaks kept without auto split",
			input:     "# A\n---\n# B",
			autoSplit: false,
			want:      "# A\n---\n# B",
			wantSplit: false,
		},
		{
			name:      "no manual breaks splits anyway",
			input:     "# A\nText",
			autoSplit: false,
			want:      "# A\nText",
			wantSplit: true,
		},
		{
			name:      "glued heading separated",
			input:     "Text\n## Next\nMore",
			autoSplit: true,
			want:      "Text\n\n## Next\nMore",
			wantSplit: true,
		},
		{
			name:      "indented heading separated",
			input:     "Text\n   ### Deep",
			autoSplit: true,
			want:      "Text\n\n   ### Deep",
			wantSplit: true,
		},
		{
			name:      "code comments untouched",
			input:     "```sh\nls\n# list files\n---\n```",
			autoSplit: true,
			want:      "```sh\nls\n# list files\n---\n```",
			wantSplit: true,
		},
		{
			name:      "inline math",
			input:     `Energy \(E = mc^2\) holds`,
			autoSplit: true,
			want:      "Energy $E = mc^2$ holds",
			wantSplit: true,
		},
		{
			name:      "display math across lines",
			input:     "\\[\na + b\n\\]",
			autoSplit: true,
			want:      "$$\na + b\n$$",
			wantSplit: true,
		},
		{
			name:      "blank runs collapsed",
			input:     "A\n\n\n\n\nB",
			autoSplit: true,
			want:      "A\n\nB",
			wantSplit: true,
		},
		{
			name:      "front matter stripped",
			input:     "---\ntheme: gaia\n---\n\n# A",
			autoSplit: true,
			want:      "# A",
			wantSplit: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := Normalize(tt.input, tt.autoSplit)
			if doc.Body != tt.want {
				t.Errorf("Body = %q, want %q", doc.Body, tt.want)
			}
			if doc.Split != tt.wantSplit {
				t.Errorf("Split = %v, want %v", doc.Split, tt.wantSplit)
			}
		})
	}
}

func TestNormalize_FrontMatterDirectives(t *testing.T) {
	t.Parallel()

	doc := Normalize("---\ntheme: uncover\nclass: invert\n---\n# Deck", true)
	if doc.FrontMatter.Theme != "uncover" {
		t.Errorf("Theme = %q, want %q", doc.FrontMatter.Theme, "uncover")
	}
	if doc.FrontMatter.Class != "invert" {
		t.Errorf("Class = %q, want %q", doc.FrontMatter.Class, "invert")
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	t.Parallel()

	input := "# A\nText\n---\n\\(x\\)\n\n\n\n- item\n## B"
	once := Normalize(input, true).Body
	twice := Normalize(once, true).Body
	if once != twice {
		t.Errorf("second pass changed output:\n%q\n%q", once, twice)
	}
}

// ---------------------------------------------------------------------------
// TestHasManualBreaks
// ---------------------------------------------------------------------------

func TestHasManualBreaks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"none", "# A\n\nText", false},
		{"separator", "A\n---\nB", true},
		{"separator with spaces", "A\n  ---  \nB", true},
		{"table separator", "| a |\n|---|", false},
		{"longer rule", "A\n-----\nB", false},
		{"inside code", "```\n---\n```", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := HasManualBreaks(tt.input); got != tt.want {
				t.Errorf("HasManualBreaks(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestConvertMathDelimiters_Multiple(t *testing.T) {
	t.Parallel()

	got := convertMathDelimiters(`\(a\) and \(b\)`)
	if got != "$a$ and $b$" {
		t.Errorf("got %q", got)
	}
	if strings.Contains(got, `\(`) {
		t.Error("delimiter left unconverted")
	}
}
