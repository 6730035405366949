// Package mcpserver exposes slide generation to LLM agents over the Model
// Context Protocol.
package mcpserver

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	md2slides "github.com/alnah/go-md2slides"
)

// Server identity reported to MCP clients.
const (
	ServerName = "md2slides"

	// DefaultOutputDir is where decks are written when Config.OutputDir is empty.
	DefaultOutputDir = "output_slides"
)

// Tool, resource and prompt names.
const (
	ToolCreatePresentation = "create_presentation"
	ResourceThemes         = "theme://available"
	PromptAcademicReport   = "academic_report_prompt"
)

// Converter paginates Markdown into a deck.
type Converter interface {
	Convert(ctx context.Context, input md2slides.Input) (*md2slides.ConvertResult, error)
}

// Exporter produces PowerPoint and PDF files from a deck.
type Exporter interface {
	Export(ctx context.Context, deckPath string, formats []md2slides.ExportFormat) []md2slides.ExportResult
}

// Config configures the MCP server.
type Config struct {
	// Version is reported to clients.
	Version string
	// OutputDir receives the generated decks. Defaults to DefaultOutputDir.
	OutputDir string
	// Themes lists the themes offered by the theme resource.
	Themes func() ([]md2slides.Theme, error)
	Logger *log.Logger
}

// New creates an MCP server with the presentation tool, the theme resource
// and the academic report prompt registered. exp may be nil when Marp is not
// installed; decks are then written without exports.
func New(conv Converter, exp Exporter, cfg Config) (*server.MCPServer, *Handlers) {
	s := server.NewMCPServer(
		ServerName,
		cfg.Version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithPromptCapabilities(false),
		server.WithRecovery(),
	)
	h := newHandlers(conv, exp, cfg)
	Register(s, h)
	return s, h
}

func newHandlers(conv Converter, exp Exporter, cfg Config) *Handlers {
	h := &Handlers{
		conv:      conv,
		exp:       exp,
		themes:    cfg.Themes,
		outputDir: cfg.OutputDir,
		logger:    cfg.Logger,
		mu:        &sync.Mutex{},
	}
	if h.outputDir == "" {
		h.outputDir = DefaultOutputDir
	}
	if h.themes == nil {
		h.themes = func() ([]md2slides.Theme, error) { return md2slides.ListThemes("") }
	}
	if h.logger == nil {
		h.logger = log.New(io.Discard)
	}
	return h
}

// Register adds the tool, resource and prompt to s.
func Register(s *server.MCPServer, h *Handlers) {
	s.AddTool(mcp.Tool{
		Name: ToolCreatePresentation,
		Description: "Convert Markdown into a Marp slide deck. Content is paginated by measuring " +
			"its rendered height, so long sections, lists and tables continue on new slides. " +
			"The deck is written as Markdown and exported to PDF, and to PPTX unless disabled. " +
			"Themes: \"default\" (small font, clean black on white), \"gaia\" (medium font, warm tone), " +
			"\"uncover\" (large font, minimalist, high contrast), plus any custom theme listed by " +
			ResourceThemes + ".",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"title": map[string]interface{}{
					"type":        "string",
					"description": "Presentation title, used as the output file name",
				},
				"content": map[string]interface{}{
					"type":        "string",
					"description": "Markdown content of the presentation",
				},
				"theme": map[string]interface{}{
					"type":        "string",
					"description": "Marp theme name (default: default)",
					"default":     "default",
				},
				"style_class": map[string]interface{}{
					"type":        "string",
					"description": "Optional Marp class: \"lead\" centers titles, \"invert\" inverts colors",
					"default":     "",
				},
				"auto_split": map[string]interface{}{
					"type":        "boolean",
					"description": "Paginate automatically, replacing any --- breaks in the content (default: true)",
					"default":     true,
				},
				"generate_pptx": map[string]interface{}{
					"type":        "boolean",
					"description": "Also export a PowerPoint file (default: true)",
					"default":     true,
				},
				"heading_split_levels": map[string]interface{}{
					"type": "number",
					"description": "How many of the top heading levels used in the content start a new slide. " +
						"1 splits on top-level headings only, 3 or more suits deep documents (default: 2)",
					"default": md2slides.DefaultSplitDepth,
				},
			},
			Required: []string{"title", "content"},
		},
	}, h.CreatePresentation)

	s.AddResource(mcp.NewResource(
		ResourceThemes,
		"Available themes",
		mcp.WithResourceDescription("Built-in Marp themes and custom themes of the local theme set"),
		mcp.WithMIMEType("text/plain"),
	), h.AvailableThemes)

	s.AddPrompt(mcp.NewPrompt(
		PromptAcademicReport,
		mcp.WithPromptDescription("Structured prompt for an academic report presentation"),
		mcp.WithArgument("topic",
			mcp.ArgumentDescription("Subject of the presentation"),
			mcp.RequiredArgument(),
		),
	), h.AcademicReport)
}
