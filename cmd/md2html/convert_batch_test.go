package main

// Notes:
// - convertBatch: we use a mock CLIConverter to test ordering, worker bounds,
//   cancellation and error propagation without running the pipeline.
// - convertFile: we test read, write and directory failures with real temp dirs.
// - printResultsWithWriter: we test each output mode against buffers.
// - MkdirAll permission failures are not tested because they depend on the
//   user running the tests (root ignores directory modes).
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	md2html "github.com/alnah/go-md2html"
)

// mockConverter records inputs and returns canned results.
type mockConverter struct {
	mu       sync.Mutex
	inputs   []md2html.Input
	err      error
	unclosed bool
	active   atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func (m *mockConverter) Convert(ctx context.Context, input md2html.Input) (*md2html.Result, error) {
	n := m.active.Add(1)
	defer m.active.Add(-1)
	for {
		p := m.peak.Load()
		if n <= p || m.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	m.mu.Lock()
	m.inputs = append(m.inputs, input)
	m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	return &md2html.Result{
		HTML:              []byte("<p>" + input.Markdown + "</p>\n"),
		UnclosedCodeBlock: m.unclosed,
		Lines:             1,
	}, nil
}

var _ CLIConverter = (*mockConverter)(nil)

// testParams returns conversion params with a fixed clock.
func testParams(workers int) *conversionParams {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &conversionParams{workers: workers, now: func() time.Time { return now }}
}

// makeInputs writes n markdown files and returns their conversion jobs.
func makeInputs(t *testing.T, n int) []FileToConvert {
	t.Helper()
	dir := t.TempDir()
	files := make([]FileToConvert, n)
	for i := range files {
		in := filepath.Join(dir, string(rune('a'+i))+".md")
		writeTestFile(t, in, string(rune('a'+i)))
		files[i] = FileToConvert{InputPath: in, OutputPath: filepath.Join(dir, "out", string(rune('a'+i))+".html")}
	}
	return files
}

// ---------------------------------------------------------------------------
// TestConvertBatch - Worker pool
// ---------------------------------------------------------------------------

func TestConvertBatch(t *testing.T) {
	t.Parallel()

	t.Run("empty input returns nil", func(t *testing.T) {
		t.Parallel()

		if got := convertBatch(context.Background(), &mockConverter{}, nil, testParams(4)); got != nil {
			t.Errorf("convertBatch(nil) = %v, want nil", got)
		}
	})

	t.Run("results keep input order and files are written", func(t *testing.T) {
		t.Parallel()

		files := makeInputs(t, 6)
		conv := &mockConverter{}

		results := convertBatch(context.Background(), conv, files, testParams(3))

		if len(results) != len(files) {
			t.Fatalf("got %d results, want %d", len(results), len(files))
		}
		for i, r := range results {
			if r.Err != nil {
				t.Errorf("result %d: unexpected error: %v", i, r.Err)
				continue
			}
			if r.InputPath != files[i].InputPath || r.OutputPath != files[i].OutputPath {
				t.Errorf("result %d = %+v, want paths of %+v", i, r, files[i])
			}
			got, err := os.ReadFile(r.OutputPath)
			if err != nil {
				t.Errorf("reading %s: %v", r.OutputPath, err)
				continue
			}
			want := "<p>" + string(rune('a'+i)) + "</p>\n"
			if string(got) != want {
				t.Errorf("%s = %q, want %q", r.OutputPath, got, want)
			}
			if r.HTML != nil {
				t.Errorf("result %d keeps HTML for file output", i)
			}
		}
	})

	t.Run("concurrency is bounded by workers", func(t *testing.T) {
		t.Parallel()

		files := makeInputs(t, 8)
		conv := &mockConverter{delay: 5 * time.Millisecond}

		convertBatch(context.Background(), conv, files, testParams(2))

		if peak := conv.peak.Load(); peak > 2 {
			t.Errorf("peak concurrency = %d, want <= 2", peak)
		}
		if len(conv.inputs) != 8 {
			t.Errorf("converted %d files, want 8", len(conv.inputs))
		}
	})

	t.Run("zero workers still converts", func(t *testing.T) {
		t.Parallel()

		files := makeInputs(t, 2)
		results := convertBatch(context.Background(), &mockConverter{}, files, testParams(0))
		for _, r := range results {
			if r.Err != nil {
				t.Errorf("unexpected error: %v", r.Err)
			}
		}
	})

	t.Run("canceled context fails every file", func(t *testing.T) {
		t.Parallel()

		files := makeInputs(t, 3)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		conv := &mockConverter{}

		results := convertBatch(ctx, conv, files, testParams(2))

		for _, r := range results {
			if !errors.Is(r.Err, context.Canceled) {
				t.Errorf("%s: error = %v, want context.Canceled", r.InputPath, r.Err)
			}
		}
		if len(conv.inputs) != 0 {
			t.Errorf("converter called %d times after cancel", len(conv.inputs))
		}
	})

	t.Run("converter errors are reported per file", func(t *testing.T) {
		t.Parallel()

		files := makeInputs(t, 2)
		boom := errors.New("boom")

		results := convertBatch(context.Background(), &mockConverter{err: boom}, files, testParams(2))

		for _, r := range results {
			if !errors.Is(r.Err, boom) {
				t.Errorf("error = %v, want boom", r.Err)
			}
			if _, err := os.Stat(r.OutputPath); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("%s written despite failure", r.OutputPath)
			}
		}
	})
}

// ---------------------------------------------------------------------------
// TestConvertFile - Single file I/O
// ---------------------------------------------------------------------------

func TestConvertFile(t *testing.T) {
	t.Parallel()

	t.Run("missing input", func(t *testing.T) {
		t.Parallel()

		f := FileToConvert{InputPath: filepath.Join(t.TempDir(), "gone.md"), OutputPath: "x.html"}
		r := convertFile(context.Background(), &mockConverter{}, f, testParams(1))
		if !errors.Is(r.Err, ErrReadMarkdown) {
			t.Errorf("error = %v, want ErrReadMarkdown", r.Err)
		}
	})

	t.Run("stdout keeps HTML", func(t *testing.T) {
		t.Parallel()

		in := filepath.Join(t.TempDir(), "a.md")
		writeTestFile(t, in, "hi")
		conv := &mockConverter{unclosed: true}

		r := convertFile(context.Background(), conv, FileToConvert{InputPath: in}, testParams(1))
		if r.Err != nil {
			t.Fatalf("unexpected error: %v", r.Err)
		}
		if string(r.HTML) != "<p>hi</p>\n" {
			t.Errorf("HTML = %q", r.HTML)
		}
		if !r.Unclosed || r.Lines != 1 {
			t.Errorf("result = %+v, want unclosed with 1 line", r)
		}
	})

	t.Run("params flow into input", func(t *testing.T) {
		t.Parallel()

		in := filepath.Join(t.TempDir(), "a.md")
		writeTestFile(t, in, "hi")
		conv := &mockConverter{}
		params := testParams(1)
		params.title = "Guide"
		params.css = "p{}"

		convertFile(context.Background(), conv, FileToConvert{InputPath: in}, params)

		if len(conv.inputs) != 1 {
			t.Fatalf("converter called %d times", len(conv.inputs))
		}
		got := conv.inputs[0]
		if got.Markdown != "hi" || got.Title != "Guide" || got.CSS != "p{}" || got.SourceName != in {
			t.Errorf("input = %+v", got)
		}
	})

	t.Run("output directory is created", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "a.md")
		writeTestFile(t, in, "hi")
		out := filepath.Join(dir, "x", "y", "a.html")

		r := convertFile(context.Background(), &mockConverter{}, FileToConvert{InputPath: in, OutputPath: out}, testParams(1))
		if r.Err != nil {
			t.Fatalf("unexpected error: %v", r.Err)
		}
		if _, err := os.Stat(out); err != nil {
			t.Errorf("output not written: %v", err)
		}
	})

	t.Run("output directory blocked by file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		in := filepath.Join(dir, "a.md")
		writeTestFile(t, in, "hi")
		blocker := filepath.Join(dir, "blocker")
		writeTestFile(t, blocker, "")

		r := convertFile(context.Background(), &mockConverter{}, FileToConvert{InputPath: in, OutputPath: filepath.Join(blocker, "a.html")}, testParams(1))
		if !errors.Is(r.Err, ErrWriteHTML) {
			t.Fatalf("error = %v, want ErrWriteHTML", r.Err)
		}
		if !strings.Contains(r.Err.Error(), "hint:") {
			t.Errorf("error %q should carry a hint", r.Err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPrintResultsWithWriter - Progress reporting
// ---------------------------------------------------------------------------

func TestPrintResultsWithWriter(t *testing.T) {
	t.Parallel()

	ok := ConversionResult{InputPath: "a.md", OutputPath: "a.html", Lines: 3, Duration: 1500 * time.Microsecond}
	failed := ConversionResult{InputPath: "b.md", OutputPath: "b.html", Err: errors.New("boom")}

	tests := []struct {
		name       string
		results    []ConversionResult
		quiet      bool
		verbose    bool
		wantOut    string
		wantErrOut string
		wantFailed int
	}{
		{
			name:    "single success",
			results: []ConversionResult{ok},
			wantOut: "Created a.html\n",
		},
		{
			name:    "verbose success",
			results: []ConversionResult{ok},
			verbose: true,
			wantOut: "a.md -> a.html (3 lines, 2ms)\n",
		},
		{
			name:       "mixed results with summary",
			results:    []ConversionResult{ok, failed},
			wantOut:    "Created a.html\n\n1 succeeded, 1 failed\n",
			wantErrOut: "FAILED b.md: boom\n",
			wantFailed: 1,
		},
		{
			name:       "quiet only reports failures",
			results:    []ConversionResult{ok, failed},
			quiet:      true,
			wantErrOut: "FAILED b.md: boom\n",
			wantFailed: 1,
		},
		{
			name:    "stdout results are not listed",
			results: []ConversionResult{{InputPath: "a.md"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var out, errOut bytes.Buffer
			got := printResultsWithWriter(tt.results, tt.quiet, tt.verbose, &out, &errOut)

			if got != tt.wantFailed {
				t.Errorf("failed = %d, want %d", got, tt.wantFailed)
			}
			if out.String() != tt.wantOut {
				t.Errorf("out = %q, want %q", out.String(), tt.wantOut)
			}
			if errOut.String() != tt.wantErrOut {
				t.Errorf("errOut = %q, want %q", errOut.String(), tt.wantErrOut)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestWarnUnclosed / TestWriteStdout / TestBatchError
// ---------------------------------------------------------------------------

func TestWarnUnclosed(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "open.md", Unclosed: true},
		{InputPath: "closed.md"},
		{InputPath: "failed.md", Unclosed: true, Err: errors.New("boom")},
	}

	var buf bytes.Buffer
	warnUnclosed(results, '~', &buf)
	out := buf.String()

	if !strings.Contains(out, "warning: open.md ends inside an unterminated code block") {
		t.Errorf("missing warning for open.md: %q", out)
	}
	if !strings.Contains(out, "closing ~ line") {
		t.Errorf("hint should name the fence marker: %q", out)
	}
	if strings.Contains(out, "closed.md") || strings.Contains(out, "failed.md") {
		t.Errorf("unexpected warnings: %q", out)
	}
}

// failingWriter fails every write.
type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestWriteStdout(t *testing.T) {
	t.Parallel()

	results := []ConversionResult{
		{InputPath: "a.md", HTML: []byte("<p>a</p>\n")},
		{InputPath: "b.md", Err: errors.New("boom")},
		{InputPath: "c.md", HTML: []byte("<p>c</p>\n")},
	}

	var buf bytes.Buffer
	if err := writeStdout(results, &buf); err != nil {
		t.Fatalf("writeStdout() unexpected error: %v", err)
	}
	if buf.String() != "<p>a</p>\n<p>c</p>\n" {
		t.Errorf("stdout = %q", buf.String())
	}

	if err := writeStdout(results, failingWriter{}); !errors.Is(err, ErrWriteHTML) {
		t.Errorf("error = %v, want ErrWriteHTML", err)
	}
}

func TestBatchError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	err := newBatchError([]ConversionResult{
		{InputPath: "a.md"},
		{InputPath: "b.md", Err: boom},
		{InputPath: "c.md", Err: ErrReadMarkdown},
	})

	if err.Error() != "2 conversion(s) failed" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, boom) || !errors.Is(err, ErrReadMarkdown) {
		t.Errorf("batchError should unwrap to every failure")
	}
}
