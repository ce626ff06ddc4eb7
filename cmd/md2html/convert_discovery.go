package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/hints"
)

// FileToConvert represents a single file to process.
// An empty OutputPath sends the HTML to standard output.
type FileToConvert struct {
	InputPath  string
	OutputPath string
}

// discoverFiles finds all markdown files to convert.
// A file is taken as-is whatever its extension, but never written over
// itself; a directory is walked recursively for .md and .markdown files.
func discoverFiles(inputPath, outputDir string, toStdout bool) ([]FileToConvert, error) {
	info, err := os.Stat(inputPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w%s", ErrReadMarkdown, err, hints.ForInputNotFound(inputPath))
		}
		return nil, fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}

	if !info.IsDir() {
		f := FileToConvert{InputPath: inputPath}
		if !toStdout {
			f.OutputPath = resolveOutputPath(inputPath, outputDir, "")
			if fileutil.SamePath(inputPath, f.OutputPath) {
				return nil, fmt.Errorf("%w: output %s would overwrite the input%s",
					ErrUsage, f.OutputPath, hints.ForOutputOverwritesInput())
			}
		}
		return []FileToConvert{f}, nil
	}

	var files []FileToConvert
	err = filepath.WalkDir(inputPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !fileutil.IsMarkdown(path) {
			return nil
		}
		f := FileToConvert{InputPath: path}
		if !toStdout {
			f.OutputPath = resolveOutputPath(path, outputDir, inputPath)
		}
		files = append(files, f)
		return nil
	})

	return files, err
}

// resolveOutputPath determines the HTML output path for a markdown file.
//
// Examples:
//   - "notes.md", "" -> "notes.html"
//   - "notes.md", "out/page.html" -> "out/page.html" (single file only)
//   - "docs/a/b.md", "site" with base "docs" -> "site/a/b.html"
func resolveOutputPath(inputPath, outputDir, baseInputDir string) string {
	if outputDir == "" {
		return fileutil.ReplaceExtension(inputPath, fileutil.HTMLExtension)
	}

	if baseInputDir == "" && strings.EqualFold(filepath.Ext(outputDir), fileutil.HTMLExtension) {
		return outputDir
	}

	name := filepath.Base(fileutil.ReplaceExtension(inputPath, fileutil.HTMLExtension))

	if baseInputDir != "" {
		relPath, err := filepath.Rel(baseInputDir, inputPath)
		if err == nil {
			return filepath.Join(outputDir, filepath.Dir(relPath), name)
		}
	}

	return filepath.Join(outputDir, name)
}
