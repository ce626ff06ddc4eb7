package assets

import (
	"fmt"
	"path/filepath"
	"strings"
)

// ValidateAssetName checks that a style name is safe to look up.
// Returns ErrInvalidAssetName if the name is empty or contains path
// separators, dots or whitespace.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\. \t\n") {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}

// IsStyleName reports whether a --css value names a built-in style rather
// than a file. Anything with a path separator or a .css extension is a file.
//
// Examples:
//   - "dark" -> true
//   - "site.css" -> false
//   - "./themes/dark" -> false
func IsStyleName(value string) bool {
	if value == "" || strings.ContainsAny(value, "/\\") {
		return false
	}
	if strings.EqualFold(filepath.Ext(value), ".css") {
		return false
	}
	return ValidateAssetName(value) == nil
}
