package profilemd

import (
	"context"
	"sync"

	"github.com/alnah/go-profilemd/internal/catalog"
	"github.com/alnah/go-profilemd/internal/pipeline"
	"github.com/alnah/go-profilemd/internal/profile"
)

// Re-exported loading errors so callers can test with errors.Is without
// importing internal packages.
var (
	ErrProfileNotFound = profile.ErrProfileNotFound
	ErrProfileParse    = profile.ErrProfileParse
	ErrCatalogNotFound = catalog.ErrCatalogNotFound
	ErrCatalogParse    = catalog.ErrCatalogParse
	ErrCatalogInvalid  = catalog.ErrCatalogInvalid
)

var defaultRenderer = sync.OnceValue(func() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic("profilemd: default renderer: " + err.Error())
	}
	return r
})

// RenderMarkdown returns the canonical Markdown for p using the built-in catalog.
func RenderMarkdown(p *Profile) string {
	return defaultRenderer().Markdown(p)
}

// RenderHTML returns the HTML page for p using the built-in catalog.
func RenderHTML(p *Profile) string {
	return defaultRenderer().HTML(p)
}

// RenderPlainText returns the plain text for p using the built-in catalog.
func RenderPlainText(p *Profile) string {
	return defaultRenderer().PlainText(p)
}

// RenderPDF lays the plain text for p out as an A4 PDF with the text engine.
func RenderPDF(ctx context.Context, p *Profile) ([]byte, error) {
	return defaultRenderer().PDF(ctx, p)
}

// Export renders p as format with the default renderer.
func Export(ctx context.Context, p *Profile, format Format) (*Document, error) {
	return defaultRenderer().Export(ctx, p, format)
}

// EnsureScheme prefixes link with https:// unless it already starts with
// http:// or https://. An empty link stays empty.
func EnsureScheme(link string) string {
	return pipeline.EnsureScheme(link)
}

// DefaultCatalog returns the built-in lookup tables.
func DefaultCatalog() *Catalog {
	return catalog.Default()
}

// ParseCatalog builds lookup tables from YAML shaped like the built-in ones.
func ParseCatalog(data []byte) (*Catalog, error) {
	return catalog.Parse(data)
}

// LoadCatalog reads lookup tables from a YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	return catalog.Load(path)
}

// DisplayName returns the built-in label for a skill identifier.
func DisplayName(id string) string {
	return catalog.Default().DisplayName(id)
}

// IconURL returns the built-in icon URL for a skill identifier.
func IconURL(id string) string {
	return catalog.Default().IconURL(id)
}

// PlatformProfileURL returns the profile URL of username on platform.
func PlatformProfileURL(platform, username string) string {
	return catalog.Default().PlatformProfileURL(platform, username)
}

// PlatformIconURL returns the built-in icon URL for a platform.
func PlatformIconURL(platform string) string {
	return catalog.Default().PlatformIconURL(platform)
}

// OrganizeByCategory buckets skills into the built-in categories.
func OrganizeByCategory(skills []string) []Group {
	return catalog.Default().OrganizeByCategory(skills)
}

// ParseProfile decodes a profile from YAML or JSON. Unknown keys are rejected.
func ParseProfile(data []byte) (*Profile, error) {
	return profile.Parse(data)
}

// LoadProfile reads a profile from a .yaml, .yml, or .json file.
func LoadProfile(path string) (*Profile, error) {
	return profile.Load(path)
}
