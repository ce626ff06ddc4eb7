package assets

// DefaultStyleName is the name of the built-in stylesheet used by --css default.
const DefaultStyleName = "default"

// defaultLoader is the package-level embedded loader.
var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a built-in stylesheet by name using the embedded loader.
// Returns ErrStyleNotFound if the style does not exist.
// Returns ErrInvalidAssetName if the name contains path separators or traversal.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// StyleNames lists the built-in style names, sorted.
func StyleNames() []string {
	return defaultLoader.StyleNames()
}
