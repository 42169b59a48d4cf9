// Package profilemd renders GitHub profile README documents from a profile
// record.
//
// # Quick Start
//
// Load a profile and render it:
//
//	p, err := profilemd.LoadProfile("profile.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("README.md", []byte(profilemd.RenderMarkdown(p)), 0644)
//
// # Rendering Pipeline
//
// Every format is derived from one canonical Markdown document:
//
//  1. Profile to Markdown (fixed section order, presence-gated sections)
//  2. Markdown to HTML page via Goldmark (links open in a new tab)
//  3. Markdown to plain text via the same Goldmark tree
//  4. Plain text to PDF (text engine) or HTML to PDF (browser engine)
//
// Markdown, HTML, and plain-text rendering cannot fail. Only PDF output
// returns errors, wrapping ErrPDFGeneration or a browser sentinel.
//
// # Configuration
//
// Use functional options to customize a Renderer:
//
//	r, err := profilemd.NewRenderer(
//	    profilemd.WithPDFEngine(profilemd.PDFEngineBrowser),
//	    profilemd.WithTimeout(time.Minute),
//	    profilemd.WithTextWidth(80),
//	)
//	defer r.Close()
//
//	doc, err := r.Export(ctx, p, profilemd.FormatPDF)
//	os.WriteFile(doc.Filename, doc.Content, 0644)
//
// WithStyle replaces the stylesheet of the HTML page (and therefore of
// browser-engine PDFs). The CLI loads it from a named theme.
//
// # Lookup Tables
//
// Skill labels, skill icons, categories, and social platform URLs come from
// a Catalog. DefaultCatalog holds the built-in tables; LoadCatalog reads a
// replacement from YAML and WithCatalog installs it. Unknown identifiers
// always resolve to a fallback, never an error.
//
// # Parallel Processing
//
// For batch rendering, use RendererPool so each worker owns its PDF engine:
//
//	pool := profilemd.NewRendererPool(4, profilemd.WithPDFEngine(profilemd.PDFEngineBrowser))
//	defer pool.Close()
//
//	r, err := pool.Acquire(ctx)
//	defer pool.Release(r)
//
// # Browser Requirements
//
// The browser engine requires Chrome/Chromium. The go-rod library downloads
// a managed Chromium on first run (~/.cache/rod/browser/). Set
// ROD_NO_SANDBOX=1 in containers and ROD_BROWSER_BIN to use a specific
// binary. The default text engine needs no browser.
package profilemd
