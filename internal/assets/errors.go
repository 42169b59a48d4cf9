package assets

import "errors"

// Sentinel errors for theme loading.
var (
	// ErrThemeNotFound indicates no loader has a theme with that name.
	ErrThemeNotFound = errors.New("theme not found")

	// ErrInvalidThemeName indicates the name is empty or contains path
	// separators or dots.
	ErrInvalidThemeName = errors.New("invalid theme name")

	// ErrInvalidBasePath indicates the themes directory is not a readable directory.
	ErrInvalidBasePath = errors.New("invalid themes directory")

	// ErrAssetRead indicates an I/O error while reading a theme file.
	ErrAssetRead = errors.New("failed to read theme")

	// ErrPathTraversal indicates a theme file resolved outside its directory.
	ErrPathTraversal = errors.New("path traversal detected")
)
