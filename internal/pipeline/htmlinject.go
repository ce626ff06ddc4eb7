package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrDocumentRender indicates the standalone document template failed.
var ErrDocumentRender = errors.New("document template rendering failed")

// DefaultTitle is used when a document has no heading and no name.
const DefaultTitle = "Document"

// documentTemplate wraps assembled fragments in a complete HTML5 document.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
{{.Body}}
</body>
</html>
`

// DocumentData holds the values rendered into the document shell.
type DocumentData struct {
	Title string
	Body  template.HTML // fragments are emitted as-is
}

// DocumentWrapper defines the contract for wrapping fragments in a page.
type DocumentWrapper interface {
	WrapDocument(ctx context.Context, body, title string) (string, error)
}

// DocumentWrapping renders the HTML5 shell with html/template.
type DocumentWrapping struct {
	tmpl *template.Template
}

// NewDocumentWrapping parses the built-in document template.
func NewDocumentWrapping() *DocumentWrapping {
	return &DocumentWrapping{
		tmpl: template.Must(template.New("document").Parse(documentTemplate)),
	}
}

// WrapDocument renders body inside the document shell. The title is escaped;
// the body is not.
func (d *DocumentWrapping) WrapDocument(ctx context.Context, body, title string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if title == "" {
		title = DefaultTitle
	}

	var buf bytes.Buffer
	// #nosec G203 -- body is the converter's own output
	data := DocumentData{Title: title, Body: template.HTML(body)}
	if err := d.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrDocumentRender, err)
	}
	return buf.String(), nil
}

// CSSInjector defines the contract for CSS injection into HTML.
type CSSInjector interface {
	InjectCSS(ctx context.Context, htmlContent, cssContent string) string
}

// CSSInjection injects CSS as a <style> block into HTML content.
type CSSInjection struct{}

// InjectCSS inserts a <style> block before </head>, or prepends it when the
// content has no head.
func (s *CSSInjection) InjectCSS(ctx context.Context, htmlContent, cssContent string) string {
	if cssContent == "" || ctx.Err() != nil {
		return htmlContent
	}

	styleBlock := "<style>" + sanitizeCSS(cssContent) + "</style>\n"
	if idx := indexASCIIFold(htmlContent, "</head>"); idx != -1 {
		return htmlContent[:idx] + styleBlock + htmlContent[idx:]
	}
	return styleBlock + htmlContent
}

// indexASCIIFold is strings.Index with ASCII case folding only, so the
// returned offset is always valid in s. substr must be lower case.
func indexASCIIFold(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		match := true
		for j := 0; j < len(substr); j++ {
			c := s[i+j]
			if 'A' <= c && c <= 'Z' {
				c += 'a' - 'A'
			}
			if c != substr[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// sanitizeCSS escapes </ so the stylesheet cannot close its <style> block.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
