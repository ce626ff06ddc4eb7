package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	md2html "github.com/alnah/go-md2html"
	"github.com/alnah/go-md2html/internal/config"
	"github.com/alnah/go-md2html/internal/hints"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// Sentinel errors for argument and flag handling.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidTimeout     = errors.New("invalid timeout")
)

// runMain runs the CLI and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseFlags(args)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if flags.help {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if flags.version {
		printVersion(env.Stdout)
		return ExitSuccess
	}
	if flags.completion != "" {
		if err := GenerateCompletion(env.Stdout, Shell(flags.completion)); err != nil {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	}

	if !flags.printConfig && len(positional) != 1 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	warnUnknownEnvVars(env.Stderr)

	cfg, timeout, err := resolveConfig(flags, loadEnvConfig())
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}

	if flags.printConfig {
		if err := printConfig(env, cfg); err != nil {
			fmt.Fprintf(env.Stderr, "error: %v\n", err)
			return exitCodeFor(err)
		}
		return ExitSuccess
	}

	if err := runConvert(ctx, positional[0], flags, cfg, timeout, env); err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// resolveConfig builds the effective configuration.
// Priority: CLI flags > env vars > config file > defaults.
func resolveConfig(flags *cliFlags, env *envConfig) (*config.Config, time.Duration, error) {
	if err := validateWorkers(flags.workers); err != nil {
		return nil, 0, err
	}

	cfg := config.DefaultConfig()

	name := flags.common.config
	if name == "" {
		name = env.ConfigPath
	}
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, 0, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, 0, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(env, cfg)
	mergeFlags(flags, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, 0, err
	}

	timeout, err := resolveTimeout(flags.timeout, env.Timeout)
	if err != nil {
		return nil, 0, err
	}

	return cfg, timeout, nil
}

// mergeFlags merges CLI flags into config. CLI values override config values.
func mergeFlags(flags *cliFlags, cfg *config.Config) {
	// Output flags
	switch flags.output {
	case "":
	case stdoutOutput:
		cfg.Output.Stdout = true
	default:
		cfg.Output.DefaultDir = flags.output
		cfg.Output.Stdout = false
	}
	if flags.workers > 0 {
		cfg.Workers = flags.workers
	}

	// Document flags
	if flags.document.standaloneSet {
		cfg.Document.Standalone = flags.document.standalone
	}
	if flags.document.title != "" {
		cfg.Document.Title = flags.document.title
	}
	if flags.document.css != "" {
		cfg.Document.CSS = flags.document.css
	}

	// Highlight flags
	if flags.highlight.enabledSet {
		cfg.Highlight.Enabled = flags.highlight.enabled
	}
	if flags.highlight.style != "" {
		cfg.Highlight.Style = flags.highlight.style
		cfg.Highlight.Enabled = true
	}

	// Marker flags
	if flags.markers.heading != "" {
		cfg.Markers.Heading = flags.markers.heading
	}
	if flags.markers.fence != "" {
		cfg.Markers.Fence = flags.markers.fence
	}
}

// resolveTimeout picks the per-document timeout.
// Priority: flag > env > library default (returned as 0).
func resolveTimeout(flagValue string, envValue time.Duration) (time.Duration, error) {
	if flagValue == "" {
		return envValue, nil
	}
	d, err := time.ParseDuration(flagValue)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeout, flagValue)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: %q (must be positive)", ErrInvalidTimeout, flagValue)
	}
	return d, nil
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > md2html.MaxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, md2html.MaxWorkers)
	}
	return nil
}

// printConfig writes the effective configuration as YAML.
func printConfig(env *Environment, cfg *config.Config) error {
	data, err := yamlutil.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	_, err = env.Stdout.Write(data)
	return err
}
