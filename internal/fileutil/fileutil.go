// Package fileutil provides file and path utility functions.
package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// HTMLExtension is appended to derived output paths.
const HTMLExtension = ".html"

// markdownExtensions are the extensions picked up when scanning directories.
var markdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// WriteFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a half-written file.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) (err error) {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	tmpPath := tmpFile.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmpFile.Chmod(perm); err != nil {
		_ = tmpFile.Close()
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// ReplaceExtension swaps the extension of path for ext, or appends ext when
// path has none. Dot files such as ".md" are treated as having no extension.
//
// Examples:
//   - "notes.md", ".html" -> "notes.html"
//   - "dir/README", ".html" -> "dir/README.html"
//   - "a.b.markdown", ".html" -> "a.b.html"
func ReplaceExtension(path, ext string) string {
	base := filepath.Base(path)
	old := filepath.Ext(base)
	if old == base {
		old = ""
	}
	return strings.TrimSuffix(path, old) + ext
}

// IsMarkdown returns true if path has a Markdown extension (case-insensitive).
func IsMarkdown(path string) bool {
	return markdownExtensions[strings.ToLower(filepath.Ext(path))]
}

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// SamePath reports whether a and b name the same file, either as equal
// absolute paths or, when both exist, as the same file on disk.
func SamePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}

	infoA, err := os.Stat(a)
	if err != nil {
		return false
	}
	infoB, err := os.Stat(b)
	if err != nil {
		return false
	}
	return os.SameFile(infoA, infoB)
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "team" -> false (name)
//   - "./md2html.yaml" -> true (relative path)
//   - "/etc/md2html.yaml" -> true (absolute)
//   - "C:\config.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}
