package assets

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

//go:embed styles/*.css
var styles embed.FS

// StyleLoader defines the contract for loading stylesheets by name.
type StyleLoader interface {
	LoadStyle(name string) (string, error)
	StyleNames() []string
}

// EmbeddedLoader loads stylesheets from the embedded filesystem.
type EmbeddedLoader struct {
	fsys fs.FS
}

// NewEmbeddedLoader creates an EmbeddedLoader over the built-in styles.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{fsys: styles}
}

// LoadStyle loads a stylesheet by name, without the .css extension.
func (e *EmbeddedLoader) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}

	content, err := fs.ReadFile(e.fsys, "styles/"+name+".css")
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}

	return string(content), nil
}

// StyleNames lists the available style names, sorted.
func (e *EmbeddedLoader) StyleNames() []string {
	entries, err := fs.ReadDir(e.fsys, "styles")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), ".css"); ok && !entry.IsDir() {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Compile-time interface check.
var _ StyleLoader = (*EmbeddedLoader)(nil)
