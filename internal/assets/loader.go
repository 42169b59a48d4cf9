package assets

// ThemeLoader loads CSS themes by name.
type ThemeLoader interface {
	// LoadTheme returns the stylesheet for name (without .css).
	// Returns ErrThemeNotFound or ErrInvalidThemeName.
	LoadTheme(name string) (string, error)

	// Themes lists the available theme names, sorted.
	Themes() ([]string, error)
}
