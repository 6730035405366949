package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"

	md2slides "github.com/alnah/go-md2slides"
	"github.com/alnah/go-md2slides/internal/fileutil"
)

// Handlers serves the MCP tool, resource and prompt.
type Handlers struct {
	conv      Converter
	exp       Exporter
	themes    func() ([]md2slides.Theme, error)
	outputDir string
	logger    *log.Logger
	// mu serializes conversions: they share one headless browser.
	mu *sync.Mutex
}

// ExportReport is the outcome of one export in a tool response.
type ExportReport struct {
	Format string `json:"format"`
	Path   string `json:"path,omitempty"`
	Error  string `json:"error,omitempty"`
}

// PresentationReport is the JSON body returned by create_presentation.
type PresentationReport struct {
	Deck    string         `json:"deck"`
	Slides  int            `json:"slides"`
	Theme   string         `json:"theme"`
	Split   bool           `json:"split"`
	Exports []ExportReport `json:"exports"`
}

// CreatePresentation handles the create_presentation tool.
func (h *Handlers) CreatePresentation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := request.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError("title argument is required and must be a string"), nil
	}
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError("content argument is required and must be a string"), nil
	}

	name, err := deckFileName(title)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	settings := md2slides.DefaultLayoutSettings()
	settings.SplitDepth = request.GetInt("heading_split_levels", md2slides.DefaultSplitDepth)

	input := md2slides.Input{
		Markdown:         content,
		Theme:            request.GetString("theme", "default"),
		Class:            request.GetString("style_class", ""),
		Layout:           settings,
		KeepManualBreaks: !request.GetBool("auto_split", true),
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.logger.Info("creating presentation", "title", title, "theme", input.Theme)
	result, err := h.conv.Convert(ctx, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("conversion failed: %v", err)), nil
	}

	if err := os.MkdirAll(h.outputDir, 0o750); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("creating output directory: %v", err)), nil
	}
	deckPath, err := fileutil.WriteInDir(h.outputDir, name, result.Deck)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("writing deck: %v", err)), nil
	}
	if abs, err := filepath.Abs(deckPath); err == nil {
		deckPath = abs
	}

	report := PresentationReport{
		Deck:    deckPath,
		Slides:  len(result.Slides),
		Theme:   result.Theme,
		Split:   result.Split,
		Exports: h.export(ctx, deckPath, request.GetBool("generate_pptx", true)),
	}

	responseJSON, err := json.Marshal(report)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(responseJSON)), nil
}

// export runs the requested exports. A missing exporter is reported per
// format rather than failing the tool: the deck itself was written.
func (h *Handlers) export(ctx context.Context, deckPath string, pptx bool) []ExportReport {
	formats := []md2slides.ExportFormat{md2slides.FormatPDF}
	if pptx {
		formats = []md2slides.ExportFormat{md2slides.FormatPPTX, md2slides.FormatPDF}
	}

	reports := make([]ExportReport, 0, len(formats))
	if h.exp == nil {
		for _, f := range formats {
			reports = append(reports, ExportReport{Format: string(f), Error: "marp not found, export skipped"})
		}
		return reports
	}

	for _, r := range h.exp.Export(ctx, deckPath, formats) {
		rep := ExportReport{Format: string(r.Format)}
		if r.Err != nil {
			rep.Error = r.Err.Error()
			h.logger.Warn("export failed", "format", r.Format, "err", r.Err)
		} else {
			rep.Path = r.Path
		}
		reports = append(reports, rep)
	}
	return reports
}

// deckFileName turns a presentation title into the deck's file name.
func deckFileName(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" || title == "." || title == ".." || strings.ContainsAny(title, "/\\\x00") {
		return "", fmt.Errorf("invalid title %q: must be usable as a file name", title)
	}
	return title + ".md", nil
}

// AvailableThemes handles the theme://available resource.
func (h *Handlers) AvailableThemes(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	themes, err := h.themes()
	if err != nil {
		return nil, fmt.Errorf("listing themes: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      ResourceThemes,
			MIMEType: "text/plain",
			Text:     formatThemes(themes),
		},
	}, nil
}

func formatThemes(themes []md2slides.Theme) string {
	var b strings.Builder
	b.WriteString("Available Marp Themes:\n")
	for _, t := range themes {
		if t.Custom {
			fmt.Fprintf(&b, "- %s (%s)\n", t.Name, t.Description())
			continue
		}
		fmt.Fprintf(&b, "- %s\n", t.Name)
	}
	return b.String()
}

// AcademicReport handles the academic_report_prompt prompt.
func (h *Handlers) AcademicReport(ctx context.Context, request mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	topic := strings.TrimSpace(request.Params.Arguments["topic"])
	if topic == "" {
		return nil, fmt.Errorf("topic argument is required")
	}
	return mcp.NewGetPromptResult(
		"Academic report presentation on "+topic,
		[]mcp.PromptMessage{
			mcp.NewPromptMessage(mcp.RoleUser, mcp.NewTextContent(academicReportText(topic))),
		},
	), nil
}

func academicReportText(topic string) string {
	return fmt.Sprintf("Please generate a comprehensive and rigorous academic presentation on the topic: '%s'.\n\n", topic) +
		"Execution Requirements:\n" +
		"1. Content Structure: Strictly follow the standard academic format, including Abstract, Introduction, " +
		"Theoretical Background, Methodology/Framework, Experimental Results, Discussion, and Conclusion.\n" +
		"2. Professional Tone: Use formal, objective, and scholarly language suitable for an academic conference or defense.\n" +
		"3. Mathematical Rigor: Embed necessary equations using standard LaTeX syntax ($...$ for inline, $$...$$ for block).\n" +
		"4. Tool Calling Strategy: Once the content is ready, immediately call the `" + ToolCreatePresentation + "` tool.\n" +
		"5. Tool Parameters: Set `theme` to a suitable academic theme from " + ResourceThemes +
		", `heading_split_levels=2`, and `auto_split=true` so the slides follow the document structure."
}
