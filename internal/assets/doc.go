// Package assets provides the stylesheets built into standalone HTML output.
//
// Styles are embedded at compile time and selected by name:
//
//	styles/
//	├── default.css   # readable serif page, light background
//	├── dark.css      # same layout, dark background
//	└── plain.css     # code block framing only
//
// A --css value is either one of these names or a path to a stylesheet on
// disk; IsStyleName decides which.
//
// # Security
//
// Style names are validated to prevent path traversal out of the embedded
// styles directory.
package assets
