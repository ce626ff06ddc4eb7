package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Build-time identity, set via ldflags:
//
//	-X main.Version=1.2.0 -X main.Name=md2html -X 'main.Description=...'
var (
	Version     = "dev"
	Name        = "md2html"
	Description = "convert simple Markdown to HTML"
)

func main() {
	// Parse flags first to learn whether maxprocs should log.
	// Errors are reported by runMain.
	flags, _, _ := parseFlags(os.Args)

	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if flags != nil && flags.common.verbose {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))
	}

	ctx, stop := notifyContext(context.Background())
	code := runMain(ctx, os.Args, DefaultEnv())
	stop()
	os.Exit(code)
}
