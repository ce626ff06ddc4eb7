package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintf(w, "Usage: %s [flags] <input>\n", Name)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert a Markdown file, or every .md file under a directory, to HTML.")
	fmt.Fprintln(w, "Output is written next to each input with an .html extension.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>         Output file or directory (\"-\" = stdout)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>           Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -t, --timeout <d>           Per-document timeout (e.g., 10s, 1m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Document:")
	fmt.Fprintln(w, "  -s, --standalone            Wrap output in a complete HTML5 page")
	fmt.Fprintln(w, "      --title <s>             Page title (\"\" = first heading)")
	fmt.Fprintln(w, "      --css <path|name>       Stylesheet file, or built-in: default, dark, plain")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Code:")
	fmt.Fprintln(w, "      --highlight             Syntax-highlight code blocks")
	fmt.Fprintln(w, "      --highlight-style <s>   Chroma style name (implies --highlight)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Markers:")
	fmt.Fprintln(w, "      --heading-marker <c>    Heading line marker (default \"#\")")
	fmt.Fprintln(w, "      --fence-marker <c>      Code block marker (default \"`\")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors")
	fmt.Fprintln(w, "  -v, --verbose               Show detailed timing")
	fmt.Fprintln(w, "      --no-banner             Do not print the banner")
	fmt.Fprintln(w, "      --print-config          Print the effective configuration and exit")
	fmt.Fprintln(w, "      --completion <shell>    Print a completion script (bash, zsh, fish)")
	fmt.Fprintln(w, "      --version               Print version and exit")
	fmt.Fprintln(w, "  -h, --help                  Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2HTML_CONFIG, MD2HTML_OUTPUT_DIR, MD2HTML_WORKERS, MD2HTML_TIMEOUT,")
	fmt.Fprintln(w, "  MD2HTML_HIGHLIGHT_STYLE, MD2HTML_STANDALONE")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes: 0 success, 1 error, 2 usage or config, 3 file I/O")
}

// printVersion prints the program name and version.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "%s %s\n", Name, Version)
}

// printBanner prints the startup banner.
func printBanner(w io.Writer) {
	fmt.Fprintf(w, "%s (v%s): %s\n", Name, Version, Description)
}
