package md2html

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/pipeline"
)

// Compile-time interface implementation checks.
// These ensure implementations satisfy their interfaces at compile time,
// catching signature mismatches before runtime.
var (
	_ pipeline.LineSplitter    = pipeline.TextSplitter{}
	_ pipeline.HTMLConverter   = (*pipeline.LineConverter)(nil)
	_ pipeline.CodeHighlighter = (*pipeline.ChromaHighlighter)(nil)
	_ pipeline.DocumentWrapper = (*pipeline.DocumentWrapping)(nil)
	_ pipeline.CSSInjector     = (*pipeline.CSSInjection)(nil)
)

// Converter orchestrates the markdown-to-HTML conversion pipeline.
// A Converter holds no per-document state and is safe for concurrent use.
type Converter struct {
	cfg           converterConfig
	htmlConverter pipeline.HTMLConverter
	highlighter   pipeline.CodeHighlighter // nil when highlighting is off
	wrapper       pipeline.DocumentWrapper
	cssInjector   pipeline.CSSInjector
}

// NewConverter creates a Converter with default configuration.
// Use options to customize behavior (e.g., WithMarkers, WithStandalone, WithHighlight).
// Returns ErrInvalidMarkers or ErrUnknownStyle when an option cannot be honored.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg: converterConfig{
			timeout: defaultTimeout,
			markers: DefaultMarkers(),
		},
		wrapper:     pipeline.NewDocumentWrapping(),
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(c)
	}

	// Create components if not injected (e.g., by tests)
	if c.htmlConverter == nil {
		lc, err := pipeline.NewLineConverter(c.cfg.markers.internal())
		if err != nil {
			return nil, err
		}
		c.htmlConverter = lc
	}

	if c.cfg.highlight && c.highlighter == nil {
		h, err := pipeline.NewChromaHighlighter(c.cfg.highlightStyle)
		if err != nil {
			return nil, err
		}
		c.highlighter = h
	}

	return c, nil
}

// Convert runs the pipeline on one document.
// The context is used for cancellation and timeout.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.timeout)
	defer cancel()

	doc, err := c.htmlConverter.ToHTML(ctx, input.Markdown)
	if err != nil {
		return nil, fmt.Errorf("converting to HTML: %w", err)
	}

	htmlContent := doc.HTML()

	if c.highlighter != nil {
		htmlContent, err = c.highlighter.Highlight(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("highlighting code: %w", err)
		}
	}

	title := resolveTitle(input.Title, doc.Title, input.SourceName)

	if c.cfg.standalone {
		htmlContent, err = c.wrapper.WrapDocument(ctx, htmlContent, title)
		if err != nil {
			return nil, fmt.Errorf("wrapping document: %w", err)
		}

		htmlContent = c.cssInjector.InjectCSS(ctx, htmlContent, input.CSS)
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}

	return &Result{
		Fragments:         doc.Fragments,
		HTML:              []byte(htmlContent),
		Title:             title,
		UnclosedCodeBlock: doc.Unclosed(),
		Lines:             doc.Lines,
	}, nil
}

// resolveTitle picks the document title.
// Priority: explicit > first heading > source file name > DefaultTitle.
func resolveTitle(explicit, heading, sourceName string) string {
	if t := strings.TrimSpace(explicit); t != "" {
		return t
	}
	if t := strings.TrimSpace(heading); t != "" {
		return t
	}
	if sourceName != "" {
		base := filepath.Base(sourceName)
		if t := strings.TrimSuffix(base, filepath.Ext(base)); t != "" && t != "." {
			return t
		}
	}
	return pipeline.DefaultTitle
}

// HighlightStyles lists the style names accepted by WithHighlight, sorted.
func HighlightStyles() []string {
	return pipeline.StyleNames()
}
