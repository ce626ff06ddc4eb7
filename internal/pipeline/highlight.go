package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "monokai"

// ErrUnknownStyle indicates a highlight style chroma does not know.
var ErrUnknownStyle = errors.New("unknown highlight style")

// CodeHighlighter defines the contract for code block post-processing.
type CodeHighlighter interface {
	Highlight(ctx context.Context, doc *Document) (string, error)
}

// ChromaHighlighter colors code blocks with chroma, guessing the language
// from the code itself since fences carry no language here.
type ChromaHighlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewChromaHighlighter creates a highlighter for the named style.
// An empty name selects DefaultHighlightStyle.
func NewChromaHighlighter(styleName string) (*ChromaHighlighter, error) {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStyle, styleName)
	}

	return &ChromaHighlighter{
		style: style,
		formatter: chromahtml.New(
			chromahtml.PreventSurroundingPre(true), // keep our own <code><pre>
		),
	}, nil
}

// StyleNames lists the styles NewChromaHighlighter accepts.
func StyleNames() []string {
	names := make([]string, 0, len(styles.Registry))
	for name := range styles.Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Highlight assembles doc with the content of every closed code block
// replaced by highlighted HTML. Blocks come from the parser, so text that
// merely looks like a code tag is never treated as one. Unclosed blocks and
// blocks that fail to tokenize are left untouched.
func (h *ChromaHighlighter) Highlight(ctx context.Context, doc *Document) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	var b strings.Builder
	next := 0
	for _, block := range doc.CodeBlocks {
		if !block.Closed() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		b.WriteString(Assemble(doc.Fragments[next : block.Open+1]))
		code := Assemble(doc.Fragments[block.Open+1 : block.Close])
		if highlighted, err := h.highlightCode(code); err == nil {
			b.WriteString(highlighted)
		} else {
			b.WriteString(code)
		}
		next = block.Close
	}
	b.WriteString(Assemble(doc.Fragments[next:]))
	return b.String(), nil
}

func (h *ChromaHighlighter) highlightCode(code string) (string, error) {
	lexer := lexers.Analyse(code)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	if err := h.formatter.Format(&buf, h.style, iterator); err != nil {
		return "", err
	}
	return buf.String(), nil
}
