package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Sentinel errors for pipeline operations.
var (
	ErrInvalidMarkers = errors.New("invalid markers")
	ErrInputTooLarge  = errors.New("markdown input too large")
)

// Tags emitted by the line state machine.
const (
	paragraphOpen  = "<p>"
	paragraphClose = "</p>\n"
	headingOpen    = "\n\n<h1>"
	headingClose   = "</h1>\n"
	codeOpen       = "<code><pre>"
	codeClose      = "</pre></code>\n"

	// emptyParagraph is dropped from the output.
	emptyParagraph = paragraphOpen + paragraphClose
)

// Default marker characters.
const (
	DefaultHeadingMarker = '#'
	DefaultFenceMarker   = '`'
)

// Markers holds the characters that classify a line by its first rune.
type Markers struct {
	Heading rune
	Fence   rune
}

// DefaultMarkers returns the standard Markdown markers.
func DefaultMarkers() Markers {
	return Markers{Heading: DefaultHeadingMarker, Fence: DefaultFenceMarker}
}

// Validate checks that both markers are usable and distinct.
func (m Markers) Validate() error {
	for _, r := range []rune{m.Heading, m.Fence} {
		if r == 0 || r == utf8.RuneError || unicode.IsSpace(r) || unicode.IsControl(r) {
			return fmt.Errorf("%w: %q is not a printable character", ErrInvalidMarkers, r)
		}
	}
	if m.Heading == m.Fence {
		return fmt.Errorf("%w: heading and fence both use %q", ErrInvalidMarkers, m.Heading)
	}
	return nil
}

// Kind is the category of a line.
type Kind int

const (
	KindProse Kind = iota
	KindHeading
	KindFence
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindHeading:
		return "heading"
	case KindFence:
		return "fence"
	default:
		return "prose"
	}
}

// Classify looks only at the first rune of line.
func (m Markers) Classify(line string) Kind {
	first, size := utf8.DecodeRuneInString(line)
	if size == 0 {
		return KindProse
	}
	switch first {
	case m.Heading:
		return KindHeading
	case m.Fence:
		return KindFence
	default:
		return KindProse
	}
}

// Block is the open block-level tag other than a code block.
type Block int

const (
	BlockNone Block = iota
	BlockParagraph
	BlockHeading
)

// State is the parser state threaded from one line to the next.
// Paragraphs and headings never outlive a line; InCode spans lines.
type State struct {
	Open   Block
	InCode bool
}

// Idle reports whether no tag of any kind is open.
func (s State) Idle() bool {
	return s.Open == BlockNone && !s.InCode
}

// Process turns one line into its HTML fragment and returns the next state.
// A heading line inside a code block is kept as code content.
func Process(line string, st State, m Markers) (string, State) {
	var b strings.Builder

	switch m.Classify(line) {
	case KindHeading:
		closeBlock(&b, &st)
		if st.InCode {
			b.WriteString(line)
			b.WriteByte('\n')
			break
		}
		st.Open = BlockHeading
		b.WriteString(headingOpen)
		b.WriteString(headingText(line))

	case KindFence:
		closeBlock(&b, &st)
		if st.InCode {
			st.InCode = false
			b.WriteString(codeClose)
		} else {
			st.InCode = true
			b.WriteString(codeOpen)
		}

	default:
		if st.Open != BlockParagraph && !st.InCode {
			st.Open = BlockParagraph
			b.WriteString(paragraphOpen)
		}
		b.WriteString(line)
		if st.InCode {
			b.WriteByte('\n')
		}
	}

	closeBlock(&b, &st)
	return b.String(), st
}

// closeBlock emits the closing tag for an open paragraph or heading.
func closeBlock(b *strings.Builder, st *State) {
	switch st.Open {
	case BlockParagraph:
		b.WriteString(paragraphClose)
	case BlockHeading:
		b.WriteString(headingClose)
	}
	st.Open = BlockNone
}

// headingText drops the marker and the separator after it.
// Lines shorter than two runes yield an empty string.
func headingText(line string) string {
	rest := line
	for i := 0; i < 2; i++ {
		_, size := utf8.DecodeRuneInString(rest)
		if size == 0 {
			return ""
		}
		rest = rest[size:]
	}
	return rest
}

// Suppressed reports whether a fragment is dropped from the output.
func Suppressed(fragment string) bool {
	return fragment == emptyParagraph
}

// Parser owns the state for one document.
type Parser struct {
	markers   Markers
	state     State
	title     string
	titled    bool
	lines     int
	fragments []string
	blocks    []CodeBlock
}

// NewParser creates a Parser. Invalid markers fall back to the defaults;
// call Markers.Validate first to reject them instead.
func NewParser(m Markers) *Parser {
	if m.Validate() != nil {
		m = DefaultMarkers()
	}
	return &Parser{markers: m}
}

// Line processes one line and records its fragment. The boolean is false
// when the fragment is suppressed and was not recorded.
func (p *Parser) Line(line string) (string, bool) {
	p.lines++
	if !p.titled && !p.state.InCode && p.markers.Classify(line) == KindHeading {
		p.title = headingText(line)
		p.titled = true
	}

	wasInCode := p.state.InCode
	fragment, next := Process(line, p.state, p.markers)
	p.state = next
	if Suppressed(fragment) {
		return "", false
	}

	switch {
	case !wasInCode && next.InCode:
		p.blocks = append(p.blocks, CodeBlock{Open: len(p.fragments), Close: -1})
	case wasInCode && !next.InCode:
		p.blocks[len(p.blocks)-1].Close = len(p.fragments)
	}
	p.fragments = append(p.fragments, fragment)
	return fragment, true
}

// CodeBlock locates a code block by fragment index. Open holds codeOpen and
// Close holds codeClose, or is -1 when the input ended inside the block.
type CodeBlock struct {
	Open  int
	Close int
}

// Closed reports whether the block has a closing fragment.
func (b CodeBlock) Closed() bool {
	return b.Close >= 0
}

// Document is a fully parsed input.
type Document struct {
	Fragments  []string
	CodeBlocks []CodeBlock
	State      State
	Title      string // first heading outside code, empty if none
	Lines      int
}

// Unclosed reports whether the input ended inside a code block.
func (d *Document) Unclosed() bool {
	return d.State.InCode
}

// HTML concatenates the fragments.
func (d *Document) HTML() string {
	return Assemble(d.Fragments)
}

// Document returns what the parser has produced so far.
func (p *Parser) Document() *Document {
	return &Document{
		Fragments:  p.fragments,
		CodeBlocks: p.blocks,
		State:      p.state,
		Title:      p.title,
		Lines:      p.lines,
	}
}

// Parse runs every line through a fresh Parser.
func Parse(lines []string, m Markers) *Document {
	doc, _ := parseLines(context.Background(), lines, m)
	return doc
}

// parseLines feeds lines to a fresh Parser, checking ctx before each one.
func parseLines(ctx context.Context, lines []string, m Markers) (*Document, error) {
	p := NewParser(m)
	p.fragments = make([]string, 0, len(lines))
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		p.Line(line)
	}
	return p.Document(), nil
}

// Assemble joins fragments in order.
func Assemble(fragments []string) string {
	return strings.Join(fragments, "")
}
