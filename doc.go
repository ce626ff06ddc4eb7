// Package md2html converts a small subset of Markdown to HTML, one line at a time.
//
// # Quick Start
//
//	conv, err := md2html.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := conv.Convert(ctx, md2html.Input{
//	    Markdown: "# Hello\nWorld",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("output.html", result.HTML, 0644)
//
// The result contains the assembled HTML (result.HTML) and the per-line
// fragments it was built from (result.Fragments).
//
// # Supported Markdown
//
// Only the first character of each line matters:
//
//   - '#' starts a heading. The marker and the following character are
//     dropped, so "# Title" becomes <h1>Title</h1>.
//   - '`' opens or closes a code block, rendered as <code><pre>.
//   - Anything else is a paragraph, one per line. Blank lines are dropped.
//
// Lines inside a code block are copied verbatim, heading markers included.
// Content is never escaped. Lists, links, emphasis, tables and nested
// headings are not recognized.
//
// # Conversion Pipeline
//
//  1. Line splitting (\r\n and \r normalized, UTF-8 BOM removed)
//  2. Tag state machine, one fragment per line
//  3. Optional code block highlighting via chroma
//  4. Optional HTML5 document wrapper with embedded CSS
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := md2html.NewConverter(
//	    md2html.WithMarkers(md2html.Markers{Heading: '=', Fence: '~'}),
//	    md2html.WithStandalone(true),
//	    md2html.WithHighlight("github"),
//	)
//
// # Parallel Processing
//
// A Converter is safe for concurrent use. Size a worker pool with
// ResolveWorkers:
//
//	workers := md2html.ResolveWorkers(0) // GOMAXPROCS-based
package md2html
