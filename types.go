package md2html

import (
	"fmt"
	"time"

	"github.com/alnah/go-md2html/internal/pipeline"
)

// MaxTitleLength bounds Input.Title.
const MaxTitleLength = 200

// Default line markers.
const (
	DefaultHeadingMarker = pipeline.DefaultHeadingMarker
	DefaultFenceMarker   = pipeline.DefaultFenceMarker
)

// Markers are the characters that start heading and code fence lines.
// Only the first character of a line is ever inspected.
type Markers struct {
	Heading rune
	Fence   rune
}

// DefaultMarkers returns '#' for headings and '`' for fences.
func DefaultMarkers() Markers {
	return Markers{Heading: DefaultHeadingMarker, Fence: DefaultFenceMarker}
}

// Validate checks that both markers are printable, non-space and distinct.
func (m Markers) Validate() error {
	return m.internal().Validate()
}

func (m Markers) internal() pipeline.Markers {
	return pipeline.Markers{Heading: m.Heading, Fence: m.Fence}
}

// Input contains a single document to convert.
type Input struct {
	Markdown   string // may be empty
	Title      string // standalone <title>; empty = first heading
	SourceName string // file the markdown came from, used as a title fallback
	CSS        string // stylesheet embedded in standalone output
}

// Validate checks Input fields.
func (in Input) Validate() error {
	if len(in.Title) > MaxTitleLength {
		return fmt.Errorf("%w: %d chars, max %d", ErrTitleTooLong, len(in.Title), MaxTitleLength)
	}
	if int64(len(in.Markdown)) > pipeline.MaxInputSize {
		return fmt.Errorf("%w: %d bytes, max %d", ErrInputTooLarge, len(in.Markdown), pipeline.MaxInputSize)
	}
	return nil
}

// Result is the outcome of converting one document.
type Result struct {
	// Fragments are the per-line outputs of the tag state machine, in order,
	// with empty paragraphs removed. They are never highlighted or wrapped.
	Fragments []string

	// HTML is the assembled output after highlighting and wrapping.
	HTML []byte

	// Title is the resolved document title.
	Title string

	// UnclosedCodeBlock is true when the input ended inside a code block.
	// The block is left open in the output.
	UnclosedCodeBlock bool

	// Lines is the number of input lines processed.
	Lines int
}

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout        time.Duration
	markers        Markers
	standalone     bool
	highlight      bool
	highlightStyle string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-document conversion timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("md2html: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithMarkers replaces the heading and fence markers.
// NewConverter returns ErrInvalidMarkers if they are unusable.
func WithMarkers(m Markers) Option {
	return func(c *Converter) {
		c.cfg.markers = m
	}
}

// WithStandalone wraps the output in a complete HTML5 document.
func WithStandalone(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.standalone = enabled
	}
}

// WithHighlight enables syntax highlighting of code blocks with the named
// chroma style. An empty name selects the default style.
// NewConverter returns ErrUnknownStyle for names chroma does not know.
func WithHighlight(style string) Option {
	return func(c *Converter) {
		c.cfg.highlight = true
		c.cfg.highlightStyle = style
	}
}
