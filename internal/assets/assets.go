package assets

// DefaultTheme is the theme used when none is configured.
const DefaultTheme = "default"

var defaultLoader = NewEmbeddedLoader()

// LoadTheme returns a built-in theme by name.
func LoadTheme(name string) (string, error) {
	return defaultLoader.LoadTheme(name)
}

// DefaultStyle returns the default theme's stylesheet.
// Panics if the theme is missing from the binary.
func DefaultStyle() string {
	css, err := defaultLoader.LoadTheme(DefaultTheme)
	if err != nil {
		panic(err)
	}
	return css
}
