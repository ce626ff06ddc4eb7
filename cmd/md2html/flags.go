package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// stdoutOutput is the --output value that prints HTML instead of writing files.
const stdoutOutput = "-"

// commonFlags holds flags controlling diagnostics and configuration.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// documentFlags holds flags shaping the generated document.
type documentFlags struct {
	standalone    bool
	standaloneSet bool // --standalone given explicitly, even as false
	title         string
	css           string
}

// highlightFlags holds code highlighting flags.
type highlightFlags struct {
	enabled    bool
	enabledSet bool
	style      string
}

// markerFlags holds line marker overrides.
type markerFlags struct {
	heading string
	fence   string
}

// cliFlags holds every flag accepted by md2html.
type cliFlags struct {
	common      commonFlags
	output      string
	workers     int
	timeout     string
	document    documentFlags
	highlight   highlightFlags
	markers     markerFlags
	noBanner    bool
	printConfig bool
	completion  string
	version     bool
	help        bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addDocumentFlags adds document flags to a FlagSet.
func addDocumentFlags(fs *flag.FlagSet, f *documentFlags) {
	fs.BoolVarP(&f.standalone, "standalone", "s", false, "wrap output in a complete HTML5 page")
	fs.StringVar(&f.title, "title", "", "page title (\"\" = first heading)")
	fs.StringVar(&f.css, "css", "", "stylesheet path or built-in name for standalone output")
}

// addHighlightFlags adds code highlighting flags to a FlagSet.
func addHighlightFlags(fs *flag.FlagSet, f *highlightFlags) {
	fs.BoolVar(&f.enabled, "highlight", false, "syntax-highlight code blocks")
	fs.StringVar(&f.style, "highlight-style", "", "chroma style name (implies --highlight)")
}

// addMarkerFlags adds marker override flags to a FlagSet.
func addMarkerFlags(fs *flag.FlagSet, f *markerFlags) {
	fs.StringVar(&f.heading, "heading-marker", "", "character starting a heading line (default \"#\")")
	fs.StringVar(&f.fence, "fence-marker", "", "character opening or closing a code block (default \"`\")")
}

// buildFlagSet registers all flags on a new FlagSet bound to f.
func buildFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet(Name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	// I/O flags
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (\"-\" = stdout)")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-document timeout (e.g., 10s, 1m)")

	// Flag groups
	addCommonFlags(fs, &f.common)
	addDocumentFlags(fs, &f.document)
	addHighlightFlags(fs, &f.highlight)
	addMarkerFlags(fs, &f.markers)

	// Informational
	fs.BoolVar(&f.noBanner, "no-banner", false, "do not print the banner")
	fs.BoolVar(&f.printConfig, "print-config", false, "print the effective configuration and exit")
	fs.StringVar(&f.completion, "completion", "", "print a shell completion script (bash, zsh, fish)")
	fs.BoolVar(&f.version, "version", false, "print version and exit")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help")

	return fs
}

// parseFlags parses the full argument list (program name first) and returns
// the positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := buildFlagSet(f)

	if len(args) > 0 {
		args = args[1:]
	}
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	f.document.standaloneSet = fs.Changed("standalone")
	f.highlight.enabledSet = fs.Changed("highlight")

	return f, fs.Args(), nil
}
