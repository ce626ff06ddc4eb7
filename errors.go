package md2html

import (
	"errors"

	"github.com/alnah/go-md2html/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrTitleTooLong = errors.New("title exceeds maximum length")

	// Errors raised by the conversion pipeline, re-exported for errors.Is.
	ErrInvalidMarkers = pipeline.ErrInvalidMarkers
	ErrInputTooLarge  = pipeline.ErrInputTooLarge
	ErrUnknownStyle   = pipeline.ErrUnknownStyle
	ErrDocumentRender = pipeline.ErrDocumentRender
)
