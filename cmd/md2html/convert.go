package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/assets"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/hints"
)

// runConvert converts inputPath, a file or a directory, per cfg.
func runConvert(ctx context.Context, inputPath string, flags *cliFlags, cfg *config.Config, timeout time.Duration, env *Environment) error {
	conv, markers, err := buildConverter(cfg, timeout)
	if err != nil {
		return err
	}

	cssContent, err := loadCSS(cfg.Document)
	if err != nil {
		return err
	}

	files, err := discoverFiles(inputPath, cfg.Output.DefaultDir, cfg.Output.Stdout)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w in %s", ErrNoInput, inputPath)
	}

	workers := md2html.ResolveWorkers(cfg.Workers)

	if !flags.common.quiet && !flags.noBanner && env.IsTerminal(env.Stderr) {
		printBanner(env.Stderr)
		for _, f := range files {
			fmt.Fprintf(env.Stderr, "Parsing %s\n", f.InputPath)
		}
	}
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Workers: %d\n", workers)
	}

	params := &conversionParams{
		title:   cfg.Document.Title,
		css:     cssContent,
		workers: workers,
		now:     env.Now,
	}
	results := convertBatch(ctx, conv, files, params)

	// Progress must not mix with HTML on stdout.
	status := env.Stdout
	if cfg.Output.Stdout {
		status = env.Stderr
		if err := writeStdout(results, env.Stdout); err != nil {
			return err
		}
	}

	if !flags.common.quiet {
		warnUnclosed(results, markers.Fence, env.Stderr)
	}

	if failed := printResultsWithWriter(results, flags.common.quiet, flags.common.verbose, status, env.Stderr); failed > 0 {
		return newBatchError(results)
	}
	return nil
}

// buildConverter creates the library converter from config.
func buildConverter(cfg *config.Config, timeout time.Duration) (*md2html.Converter, md2html.Markers, error) {
	heading, fence := cfg.Markers.Runes(md2html.DefaultHeadingMarker, md2html.DefaultFenceMarker)
	markers := md2html.Markers{Heading: heading, Fence: fence}

	opts := []md2html.Option{
		md2html.WithMarkers(markers),
		md2html.WithStandalone(cfg.Document.Standalone),
	}
	if cfg.Highlight.Enabled {
		opts = append(opts, md2html.WithHighlight(cfg.Highlight.Style))
	}
	if timeout > 0 {
		opts = append(opts, md2html.WithTimeout(timeout))
	}

	conv, err := md2html.NewConverter(opts...)
	if err != nil {
		if errors.Is(err, md2html.ErrUnknownStyle) {
			return nil, markers, fmt.Errorf("%w%s", err, hints.ForHighlightStyle(md2html.HighlightStyles()))
		}
		return nil, markers, err
	}
	return conv, markers, nil
}

// loadCSS resolves the stylesheet for standalone output: a built-in style
// name or a file path. Fragment output never carries CSS, so nothing is
// loaded then.
func loadCSS(doc config.DocumentConfig) (string, error) {
	if !doc.Standalone || doc.CSS == "" {
		return "", nil
	}
	if assets.IsStyleName(doc.CSS) {
		css, err := assets.LoadStyle(doc.CSS)
		if err != nil {
			return "", fmt.Errorf("%w%s", err, hints.ForBuiltinStyle(assets.StyleNames()))
		}
		return css, nil
	}
	content, err := os.ReadFile(doc.CSS) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadCSS, err)
	}
	return string(content), nil
}
