package pipeline

import (
	"context"
)

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (*Document, error)
}

// LineConverter converts Markdown one line at a time with the tag state
// machine in lines.go.
type LineConverter struct {
	markers  Markers
	splitter LineSplitter
}

// NewLineConverter creates a LineConverter for the given markers.
func NewLineConverter(m Markers) (*LineConverter, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &LineConverter{markers: m, splitter: TextSplitter{}}, nil
}

// ToHTML parses content into fragments. The context is checked between
// lines; the state machine itself never blocks.
func (c *LineConverter) ToHTML(ctx context.Context, content string) (*Document, error) {
	lines, err := c.splitter.SplitLines(ctx, content)
	if err != nil {
		return nil, err
	}
	return parseLines(ctx, lines, c.markers)
}
