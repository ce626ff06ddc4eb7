// Package pipeline implements the Markdown-to-HTML conversion pipeline.
//
// The stages are:
//   - Line splitting (BOM removal, line ending normalization)
//   - Line classification and tag state machine (lines.go)
//   - Code block highlighting via chroma (optional)
//   - Standalone document wrapping and CSS injection (optional)
//
// The state machine recognizes three kinds of line by their first character:
// headings, code fences and prose. Paragraphs and headings open and close on
// the same line; code blocks span lines until the next fence.
package pipeline
