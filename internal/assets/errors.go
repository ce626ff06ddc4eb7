package assets

import "errors"

// Sentinel errors for asset operations.
var (
	// ErrStyleNotFound indicates the requested built-in style does not exist.
	ErrStyleNotFound = errors.New("style not found")

	// ErrInvalidAssetName indicates the name contains path separators,
	// dots or whitespace.
	ErrInvalidAssetName = errors.New("invalid asset name")
)
