package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/hints"
)

// File permission constants.
const (
	dirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	filePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// Sentinel errors for batch operations.
var (
	ErrNoInput      = errors.New("no markdown files found")
	ErrReadCSS      = errors.New("failed to read CSS file")
	ErrReadMarkdown = errors.New("failed to read markdown file")
	ErrWriteHTML    = errors.New("failed to write HTML file")
)

// CLIConverter is the interface for the conversion service.
type CLIConverter interface {
	Convert(ctx context.Context, input md2html.Input) (*md2html.Result, error)
}

// Compile-time interface implementation check.
var _ CLIConverter = (*md2html.Converter)(nil)

// conversionParams groups parameters shared across batch/file conversion.
type conversionParams struct {
	title   string
	css     string
	workers int
	now     func() time.Time
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath  string
	OutputPath string
	HTML       []byte // kept only for stdout output
	Unclosed   bool
	Lines      int
	Err        error
	Duration   time.Duration
}

// convertBatch converts files concurrently with a bounded set of workers.
// Results keep the order of files.
func convertBatch(ctx context.Context, conv CLIConverter, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := max(min(params.workers, len(files)), 1)

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, conv, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
// Nothing is written unless conversion succeeds.
func convertFile(ctx context.Context, conv CLIConverter, f FileToConvert, params *conversionParams) ConversionResult {
	start := params.now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	content, err := os.ReadFile(f.InputPath) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrReadMarkdown, err)
		result.Duration = params.now().Sub(start)
		return result
	}

	convResult, err := conv.Convert(ctx, md2html.Input{
		Markdown:   string(content),
		Title:      params.title,
		SourceName: f.InputPath,
		CSS:        params.css,
	})
	if err != nil {
		result.Err = err
		result.Duration = params.now().Sub(start)
		return result
	}
	result.Unclosed = convResult.UnclosedCodeBlock
	result.Lines = convResult.Lines

	if f.OutputPath == "" {
		result.HTML = convResult.HTML
		result.Duration = params.now().Sub(start)
		return result
	}

	if err := os.MkdirAll(filepath.Dir(f.OutputPath), dirPermissions); err != nil {
		result.Err = fmt.Errorf("%w: creating output directory: %w%s", ErrWriteHTML, err, hints.ForOutputDirectory())
		result.Duration = params.now().Sub(start)
		return result
	}

	if err := fileutil.WriteFileAtomic(f.OutputPath, convResult.HTML, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %w", ErrWriteHTML, err)
		result.Duration = params.now().Sub(start)
		return result
	}

	result.Duration = params.now().Sub(start)
	return result
}

// ResultSummary holds the count of succeeded and failed conversions.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed conversions.
func countResults(results []ConversionResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResultsWithWriter reports each conversion and returns the failure count.
// Failures always go to errOut; progress goes to out unless quiet.
func printResultsWithWriter(results []ConversionResult, quiet, verbose bool, out, errOut io.Writer) int {
	summary := countResults(results)

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(errOut, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet || r.OutputPath == "" {
			continue
		}

		if verbose {
			fmt.Fprintf(out, "%s -> %s (%d lines, %v)\n", r.InputPath, r.OutputPath, r.Lines, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(out, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(out, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed
}

// warnUnclosed reports documents that ended inside a code block.
func warnUnclosed(results []ConversionResult, fence rune, w io.Writer) {
	for _, r := range results {
		if r.Err == nil && r.Unclosed {
			fmt.Fprintf(w, "warning: %s ends inside an unterminated code block%s\n", r.InputPath, hints.ForUnclosedCodeBlock(fence))
		}
	}
}

// writeStdout writes successful results to w in input order.
func writeStdout(results []ConversionResult, w io.Writer) error {
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if _, err := w.Write(r.HTML); err != nil {
			return fmt.Errorf("%w: stdout: %w", ErrWriteHTML, err)
		}
	}
	return nil
}

// batchError reports failed conversions. It unwraps to every failure so
// exitCodeFor can classify the run.
type batchError struct {
	failed int
	errs   []error
}

func newBatchError(results []ConversionResult) *batchError {
	e := &batchError{}
	for _, r := range results {
		if r.Err != nil {
			e.failed++
			e.errs = append(e.errs, r.Err)
		}
	}
	return e
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d conversion(s) failed", e.failed)
}

func (e *batchError) Unwrap() []error {
	return e.errs
}
