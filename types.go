package profilemd

import (
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-profilemd/internal/catalog"
	"github.com/alnah/go-profilemd/internal/profile"
)

// Profile is the record every document is rendered from.
type Profile = profile.Profile

// SocialLink is one platform account shown in the "Connect with me" block.
type SocialLink = profile.SocialLink

// Project is a featured project entry.
type Project = profile.Project

// Catalog resolves skill and platform identifiers to labels, icons, and URLs.
type Catalog = catalog.Catalog

// Category is a named, ordered bucket of skill identifiers.
type Category = catalog.Category

// Group is one non-empty category returned by OrganizeByCategory.
type Group = catalog.Group

// PDFEngine selects how PDF output is produced.
type PDFEngine string

// PDF engines.
const (
	// PDFEngineText lays the plain-text export out on A4 pages. Pure Go.
	PDFEngineText PDFEngine = "text"
	// PDFEngineBrowser prints the HTML export with headless Chrome.
	PDFEngineBrowser PDFEngine = "browser"
)

// ParsePDFEngine parses an engine name case-insensitively.
// An empty name selects PDFEngineText.
func ParsePDFEngine(s string) (PDFEngine, error) {
	switch e := PDFEngine(strings.ToLower(strings.TrimSpace(s))); e {
	case "":
		return PDFEngineText, nil
	case PDFEngineText, PDFEngineBrowser:
		return e, nil
	default:
		return "", fmt.Errorf("%w: %q (must be text or browser)", ErrInvalidPDFEngine, s)
	}
}

// Option configures a Renderer.
type Option func(*Renderer)

// rendererConfig holds internal configuration for Renderer.
type rendererConfig struct {
	catalog   *Catalog
	engine    PDFEngine
	timeout   time.Duration
	textWidth int
	style     string // HTML export CSS; empty uses the default theme
	now       func() time.Time
}

// defaultTimeout bounds browser PDF rendering when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithCatalog replaces the built-in lookup tables.
func WithCatalog(c *Catalog) Option {
	return func(r *Renderer) {
		if c != nil {
			r.cfg.catalog = c
		}
	}
}

// WithPDFEngine selects the PDF engine. NewRenderer rejects unknown engines.
func WithPDFEngine(e PDFEngine) Option {
	return func(r *Renderer) {
		r.cfg.engine = e
	}
}

// WithTimeout sets the browser PDF timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("profilemd: WithTimeout duration must be positive")
	}
	return func(r *Renderer) {
		r.cfg.timeout = d
	}
}

// WithTextWidth wraps plain-text output at n columns. Zero disables wrapping.
// The text PDF engine does its own layout and is not affected.
func WithTextWidth(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.cfg.textWidth = n
		}
	}
}

// WithClock sets the time source stamped into PDF metadata.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		if now != nil {
			r.cfg.now = now
		}
	}
}

// WithStyle sets the CSS embedded in the HTML export, which the browser PDF
// engine also prints. Empty keeps the default theme.
func WithStyle(css string) Option {
	return func(r *Renderer) {
		r.cfg.style = css
	}
}
