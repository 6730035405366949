// Package md2slides turns long Markdown documents into Marp slide decks whose
// slides never overflow the 1280x720 canvas.
//
// # Quick Start
//
// Create a converter, convert markdown, and close when done:
//
//	conv, err := md2slides.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	result, err := conv.Convert(ctx, md2slides.Input{
//	    Markdown: "# Report\n\n## Findings\n\n- one\n- two",
//	    Theme:    "gaia",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("deck.md", []byte(result.Deck), 0644)
//
// # How Breaks Are Chosen
//
// Conversion runs in two passes:
//
//  1. The document is cut into chunks that must stay whole: a paragraph, a
//     list item, a table row, a code or math block. List items remember
//     their parent items and table rows their header.
//  2. All chunks are rendered on one tall slide with an invisible marker at
//     the end of each, and a headless Chrome reports where every marker ends.
//
// A slide then breaks before the chunk that would cross the usable height,
// and before headings at the split depth. Continued lists repeat their
// parent items and continued tables repeat their header.
//
// # Renderers
//
// The probe document is rendered with the Marp CLI when it is installed
// (./node_modules/.bin, then PATH). Otherwise, or with
// WithRendererKind(RendererBuiltin), a goldmark renderer using the embedded
// default, gaia and uncover themes is used.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2slides.NewConverter(
//	    md2slides.WithTimeout(2 * time.Minute),
//	    md2slides.WithThemeSet("./themes"),
//	    md2slides.WithLogger(logger),
//	)
//
// Pagination is tuned per conversion through Input.Layout.
//
// # Export
//
// An Exporter runs Marp on a finished deck to produce .pptx or .pdf files.
//
// # Batch Processing
//
// For batch conversion, use ConverterPool to manage multiple browser instances:
//
//	pool := md2slides.NewConverterPool(4)
//	defer pool.Close()
//
//	conv, err := pool.Acquire()
//	if err != nil {
//	    return err
//	}
//	defer pool.Release(conv)
//
// # Errors
//
// Errors wrap the sentinel values in errors.go; test them with errors.Is.
// Input errors are reported before any browser work starts.
package md2slides
