package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-md2html/internal/config"
)

// envPrefix marks environment variables read by md2html.
const envPrefix = "MD2HTML_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath     string        // MD2HTML_CONFIG: config file name or path
	OutputDir      string        // MD2HTML_OUTPUT_DIR: default output directory
	Workers        int           // MD2HTML_WORKERS: parallel workers
	Timeout        time.Duration // MD2HTML_TIMEOUT: per-document timeout
	HighlightStyle string        // MD2HTML_HIGHLIGHT_STYLE: chroma style, enables highlighting
	Standalone     *bool         // MD2HTML_STANDALONE: nil when unset or unparsable
}

// knownEnvVars lists valid MD2HTML_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MD2HTML_CONFIG":          true,
	"MD2HTML_OUTPUT_DIR":      true,
	"MD2HTML_WORKERS":         true,
	"MD2HTML_TIMEOUT":         true,
	"MD2HTML_HIGHLIGHT_STYLE": true,
	"MD2HTML_STANDALONE":      true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers, durations and booleans are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath:     os.Getenv("MD2HTML_CONFIG"),
		OutputDir:      os.Getenv("MD2HTML_OUTPUT_DIR"),
		HighlightStyle: os.Getenv("MD2HTML_HIGHLIGHT_STYLE"),
	}

	if workers := os.Getenv("MD2HTML_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if timeout := os.Getenv("MD2HTML_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if standalone := os.Getenv("MD2HTML_STANDALONE"); standalone != "" {
		if b, err := strconv.ParseBool(standalone); err == nil {
			cfg.Standalone = &b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MD2HTML_* variables.
// Helps catch typos like MD2HTML_WORKER instead of MD2HTML_WORKERS.
func warnUnknownEnvVars(w io.Writer) {
	var unknown []string
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				unknown = append(unknown, name)
			}
		}
	}
	sort.Strings(unknown)
	for _, name := range unknown {
		fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables override the config file; CLI flags are applied later
// via mergeFlags, giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.Workers > 0 {
		cfg.Workers = env.Workers
	}

	// Highlight style (auto-enable)
	if env.HighlightStyle != "" {
		cfg.Highlight.Style = env.HighlightStyle
		cfg.Highlight.Enabled = true
	}

	if env.Standalone != nil {
		cfg.Document.Standalone = *env.Standalone
	}
}
