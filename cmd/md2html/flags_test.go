package main

// Notes:
// - parseFlags: we test that the program name is stripped, short and long
//   forms bind to the same fields, and explicit booleans are tracked via Changed.
// - Unknown flags must return an error rather than exit, since runMain owns
//   the exit code.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// ---------------------------------------------------------------------------
// TestParseFlags - Flag parsing
// ---------------------------------------------------------------------------

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		args           []string
		wantPositional []string
		check          func(t *testing.T, f *cliFlags)
	}{
		{
			name:           "program name is stripped",
			args:           []string{"md2html", "notes.md"},
			wantPositional: []string{"notes.md"},
			check: func(t *testing.T, f *cliFlags) {
				if f.output != "" || f.workers != 0 {
					t.Errorf("unexpected defaults: output=%q workers=%d", f.output, f.workers)
				}
			},
		},
		{
			name:           "short flags",
			args:           []string{"md2html", "-o", "site", "-w", "4", "-t", "5s", "-s", "-q", "-c", "team", "docs"},
			wantPositional: []string{"docs"},
			check: func(t *testing.T, f *cliFlags) {
				if f.output != "site" {
					t.Errorf("output = %q, want site", f.output)
				}
				if f.workers != 4 {
					t.Errorf("workers = %d, want 4", f.workers)
				}
				if f.timeout != "5s" {
					t.Errorf("timeout = %q, want 5s", f.timeout)
				}
				if !f.document.standalone || !f.document.standaloneSet {
					t.Errorf("document = %+v, want standalone set", f.document)
				}
				if !f.common.quiet || f.common.config != "team" {
					t.Errorf("common = %+v", f.common)
				}
			},
		},
		{
			name:           "long flags",
			args:           []string{"md2html", "--output=-", "--title", "Guide", "--css", "a.css", "--highlight-style", "github", "--heading-marker", "=", "--fence-marker", "~", "--verbose", "in.md"},
			wantPositional: []string{"in.md"},
			check: func(t *testing.T, f *cliFlags) {
				if f.output != stdoutOutput {
					t.Errorf("output = %q, want %q", f.output, stdoutOutput)
				}
				if f.document.title != "Guide" || f.document.css != "a.css" {
					t.Errorf("document = %+v", f.document)
				}
				if f.document.standaloneSet {
					t.Error("standaloneSet = true without --standalone")
				}
				if f.highlight.style != "github" || f.highlight.enabledSet {
					t.Errorf("highlight = %+v", f.highlight)
				}
				if f.markers.heading != "=" || f.markers.fence != "~" {
					t.Errorf("markers = %+v", f.markers)
				}
				if !f.common.verbose {
					t.Error("verbose = false, want true")
				}
			},
		},
		{
			name:           "explicit false booleans are tracked",
			args:           []string{"md2html", "--standalone=false", "--highlight=false", "in.md"},
			wantPositional: []string{"in.md"},
			check: func(t *testing.T, f *cliFlags) {
				if f.document.standalone || !f.document.standaloneSet {
					t.Errorf("document = %+v, want explicit false", f.document)
				}
				if f.highlight.enabled || !f.highlight.enabledSet {
					t.Errorf("highlight = %+v, want explicit false", f.highlight)
				}
			},
		},
		{
			name:           "informational flags",
			args:           []string{"md2html", "--version", "--help", "--print-config", "--no-banner"},
			wantPositional: []string{},
			check: func(t *testing.T, f *cliFlags) {
				if !f.version || !f.help || !f.printConfig || !f.noBanner {
					t.Errorf("flags = %+v", f)
				}
			},
		},
		{
			name:           "multiple positionals are returned",
			args:           []string{"md2html", "a.md", "b.md"},
			wantPositional: []string{"a.md", "b.md"},
		},
		{
			name:           "empty argument list",
			args:           nil,
			wantPositional: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, positional, err := parseFlags(tt.args)
			if err != nil {
				t.Fatalf("parseFlags() unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.wantPositional, positional); diff != "" {
				t.Errorf("positional mismatch (-want +got):\n%s", diff)
			}
			if tt.check != nil {
				tt.check(t, f)
			}
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
	}{
		{"unknown long flag", []string{"md2html", "--flavor", "in.md"}},
		{"unknown short flag", []string{"md2html", "-x", "in.md"}},
		{"non-numeric workers", []string{"md2html", "-w", "many", "in.md"}},
		{"missing flag value", []string{"md2html", "in.md", "--output"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, _, err := parseFlags(tt.args)
			if err == nil {
				t.Fatal("parseFlags() expected error, got nil")
			}
			if f != nil {
				t.Errorf("flags = %+v, want nil on error", f)
			}
		})
	}
}
