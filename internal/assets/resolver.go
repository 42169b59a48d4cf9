package assets

import (
	"errors"
	"sort"
)

// Resolver looks themes up in a custom directory first and falls back to
// the built-in themes.
type Resolver struct {
	custom   ThemeLoader // nil without a custom directory
	embedded ThemeLoader
}

// NewResolver creates a Resolver. An empty customDir uses only built-in
// themes; otherwise customDir must be a readable directory.
func NewResolver(customDir string) (*Resolver, error) {
	r := &Resolver{embedded: NewEmbeddedLoader()}

	if customDir != "" {
		fsLoader, err := NewFilesystemLoader(customDir)
		if err != nil {
			return nil, err
		}
		r.custom = fsLoader
	}
	return r, nil
}

// LoadTheme returns the custom theme when present, else the built-in one.
// Only ErrThemeNotFound falls through; invalid names and read errors do not.
func (r *Resolver) LoadTheme(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadTheme(name)
	}

	css, err := r.custom.LoadTheme(name)
	if err == nil {
		return css, nil
	}
	if !errors.Is(err, ErrThemeNotFound) {
		return "", err
	}
	return r.embedded.LoadTheme(name)
}

// Themes lists built-in and custom theme names, sorted and deduplicated.
func (r *Resolver) Themes() ([]string, error) {
	names, err := r.embedded.Themes()
	if err != nil {
		return nil, err
	}
	if r.custom == nil {
		return names, nil
	}

	custom, err := r.custom.Themes()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(names)+len(custom))
	var all []string
	for _, n := range append(names, custom...) {
		if !seen[n] {
			seen[n] = true
			all = append(all, n)
		}
	}
	sort.Strings(all)
	return all, nil
}

// HasCustomLoader reports whether a custom directory is configured.
func (r *Resolver) HasCustomLoader() bool {
	return r.custom != nil
}

var _ ThemeLoader = (*Resolver)(nil)
