// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config with a path and, when one was searched, the user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/go-md2html/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForInputNotFound returns a hint when the input path does not exist.
func ForInputNotFound(path string) string {
	if filepath.Ext(path) == "" {
		return format("did you mean " + path + ".md?")
	}
	return format("check the path; directories are converted recursively")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForOutputOverwritesInput returns a hint when the output path is the input file.
func ForOutputOverwritesInput() string {
	return format("choose another path with -o, or -o - to print to stdout")
}

// ForHighlightStyle returns hints for unknown highlight styles.
// Only the first few names are listed to keep the message short.
func ForHighlightStyle(available []string) string {
	const maxListed = 8
	if len(available) == 0 {
		return ""
	}
	if len(available) > maxListed {
		return format("available: " + strings.Join(available[:maxListed], ", ") + ", ...")
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForBuiltinStyle returns hints for unknown built-in stylesheet names.
func ForBuiltinStyle(available []string) string {
	hint := "pass a .css file path"
	if len(available) > 0 {
		hint = "built-in styles: " + strings.Join(available, ", ") + "; or " + hint
	}
	return format(hint)
}

// ForUnclosedCodeBlock returns a hint for documents ending inside a code block.
func ForUnclosedCodeBlock(fence rune) string {
	return format("add a closing " + string(fence) + " line at the end of the block")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
