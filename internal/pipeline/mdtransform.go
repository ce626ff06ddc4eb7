package pipeline

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// MaxInputSize caps a single document read by ParseReader (default 32MB).
var MaxInputSize int64 = 32 << 20

// byteOrderMark is stripped from the start of a document.
const byteOrderMark = "\uFEFF"

// Line ending normalization.
var crlfOrCR = regexp.MustCompile(`\r\n?`)

// LineSplitter turns raw document text into lines.
type LineSplitter interface {
	SplitLines(ctx context.Context, content string) ([]string, error)
}

// TextSplitter normalizes line endings and splits on them.
type TextSplitter struct{}

// SplitLines returns the lines of content with terminators stripped.
// A terminator at the very end does not start another line.
func (TextSplitter) SplitLines(ctx context.Context, content string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return SplitLines(content), nil
}

// SplitLines is the context-free form of TextSplitter.SplitLines.
func SplitLines(content string) []string {
	content = strings.TrimPrefix(content, byteOrderMark)
	content = normalizeLineEndings(content)
	if content == "" {
		return nil
	}
	content = strings.TrimSuffix(content, "\n")
	return strings.Split(content, "\n")
}

// normalizeLineEndings converts \r\n and \r to \n.
func normalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// ParseReader reads a whole document from r and parses it.
func ParseReader(r io.Reader, m Markers) (*Document, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading markdown: %w", err)
	}
	if int64(len(data)) > MaxInputSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrInputTooLarge, MaxInputSize)
	}
	return Parse(SplitLines(string(data)), m), nil
}
