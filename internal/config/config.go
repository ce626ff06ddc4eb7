package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-md2html/internal/fileutil"
	"github.com/alnah/go-md2html/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory name under the user config directory.
const AppDir = "go-md2html"

// Field length limits.
const (
	MaxTitleLength = 200  // <title> text
	MaxPathLength  = 4096 // PATH_MAX on Linux
	MaxStyleLength = 50   // chroma style names are short
)

// Config holds all configuration for a conversion run.
type Config struct {
	Output    OutputConfig    `yaml:"output"`
	Document  DocumentConfig  `yaml:"document"`
	Highlight HighlightConfig `yaml:"highlight"`
	Markers   MarkersConfig   `yaml:"markers"`
	Workers   int             `yaml:"workers"` // 0 = auto
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Empty = next to the source file
	Stdout     bool   `yaml:"stdout"`     // Print fragments instead of writing files
}

// DocumentConfig defines how fragments are packaged.
type DocumentConfig struct {
	Standalone bool   `yaml:"standalone"` // Wrap fragments in an HTML5 page
	Title      string `yaml:"title"`      // Empty = first heading, then file name
	CSS        string `yaml:"css"`        // Stylesheet path, standalone only
}

// HighlightConfig defines code block highlighting.
type HighlightConfig struct {
	Enabled bool   `yaml:"enabled"`
	Style   string `yaml:"style"` // chroma style name (default: monokai)
}

// MarkersConfig overrides the line markers. Each must be a single character.
type MarkersConfig struct {
	Heading string `yaml:"heading"` // default "#"
	Fence   string `yaml:"fence"`   // default "`"
}

// Runes returns the configured markers, substituting the defaults for
// empty values. It does not validate.
func (m MarkersConfig) Runes(defHeading, defFence rune) (heading, fence rune) {
	heading, fence = defHeading, defFence
	if m.Heading != "" {
		heading, _ = utf8.DecodeRuneInString(m.Heading)
	}
	if m.Fence != "" {
		fence, _ = utf8.DecodeRuneInString(m.Fence)
	}
	return heading, fence
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.title", c.Document.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("document.css", c.Document.CSS, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("highlight.style", c.Highlight.Style, MaxStyleLength); err != nil {
		return err
	}

	if err := validateMarker("markers.heading", c.Markers.Heading); err != nil {
		return err
	}
	if err := validateMarker("markers.fence", c.Markers.Fence); err != nil {
		return err
	}
	if c.Markers.Heading != "" && c.Markers.Heading == c.Markers.Fence {
		return fmt.Errorf("%w: markers.heading and markers.fence must differ, both %q", ErrInvalidValue, c.Markers.Heading)
	}

	if c.Workers < 0 {
		return fmt.Errorf("%w: workers must be >= 0, got %d", ErrInvalidValue, c.Workers)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateMarker accepts an empty value or exactly one character.
func validateMarker(fieldName, value string) error {
	if value == "" {
		return nil
	}
	if utf8.RuneCountInString(value) != 1 {
		return fmt.Errorf("%w: %s must be a single character, got %q", ErrInvalidValue, fieldName, value)
	}
	return nil
}

// DefaultConfig returns a configuration that writes bare fragments next to
// the source file.
func DefaultConfig() *Config {
	return &Config{
		Output:    OutputConfig{DefaultDir: ""},
		Document:  DocumentConfig{Standalone: false},
		Highlight: HighlightConfig{Enabled: false},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists where a config name is looked up, in order.
// Tries extensions .yaml then .yml, in the current directory first and
// then in the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing search path for name.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
