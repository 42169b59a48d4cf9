package profilemd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alnah/go-profilemd/internal/catalog"
	"github.com/alnah/go-profilemd/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pdfEngine = (*textPDFEngine)(nil)
	_ pdfEngine = (*browserPDFEngine)(nil)
)

// pdfSource carries both derived forms so each engine picks what it lays out.
type pdfSource struct {
	Title string // greeting line
	Body  string // plain text without the greeting
	HTML  string // full HTML page
}

// pdfEngine abstracts PDF production to allow different backends.
type pdfEngine interface {
	ToPDF(ctx context.Context, src *pdfSource) ([]byte, error)
	Close() error
}

// Renderer turns profiles into Markdown, HTML, plain text, and PDF.
// Markdown is rendered once per call; HTML and text derive from it.
// Create with NewRenderer and Close when done to release any browser.
//
// Markdown, HTML, and PlainText are safe for concurrent use. PDF is safe for
// concurrent use with the text engine; the browser engine serializes on its
// own browser connection.
type Renderer struct {
	cfg      rendererConfig
	markdown *pipeline.MarkdownRenderer
	html     *pipeline.HTMLConverter
	text     *pipeline.TextConverter
	pageText *pipeline.TextConverter // unwrapped, for the text PDF engine
	pdf      pdfEngine
}

// NewRenderer creates a Renderer. Without options it uses the built-in
// catalog and the text PDF engine. Returns ErrInvalidPDFEngine for an
// unknown engine.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: rendererConfig{
			catalog: catalog.Default(),
			engine:  PDFEngineText,
			timeout: defaultTimeout,
			now:     time.Now,
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	engine, err := ParsePDFEngine(string(r.cfg.engine))
	if err != nil {
		return nil, err
	}
	r.cfg.engine = engine

	r.markdown = pipeline.NewMarkdownRenderer(r.cfg.catalog)
	r.html = pipeline.NewHTMLConverter(r.cfg.style)
	r.text = pipeline.NewTextConverter(r.cfg.textWidth)
	r.pageText = r.text
	if r.cfg.textWidth > 0 {
		r.pageText = pipeline.NewTextConverter(0)
	}

	// Engine may already be injected (e.g., by tests)
	if r.pdf == nil {
		switch engine {
		case PDFEngineBrowser:
			r.pdf = newBrowserPDFEngine(r.cfg.timeout)
		default:
			r.pdf = newTextPDFEngine(r.cfg.now)
		}
	}

	return r, nil
}

// Engine returns the configured PDF engine.
func (r *Renderer) Engine() PDFEngine {
	return r.cfg.engine
}

// Catalog returns the lookup tables used for rendering.
func (r *Renderer) Catalog() *Catalog {
	return r.cfg.catalog
}

// Markdown returns the canonical Markdown document for p.
func (r *Renderer) Markdown(p *Profile) string {
	return r.markdown.Render(p)
}

// HTML returns a standalone HTML page derived from the Markdown for p.
func (r *Renderer) HTML(p *Profile) string {
	return r.html.ToHTML(r.markdown.Render(p), strings.TrimSpace(p.Name))
}

// PlainText returns the plain-text rendering of the Markdown for p.
// The result never contains '<', '>', or "![".
func (r *Renderer) PlainText(p *Profile) string {
	return r.text.ToText(r.markdown.Render(p))
}

// PDF renders p with the configured engine.
// Failures wrap ErrPDFGeneration or, for the browser engine, one of
// ErrBrowserConnect, ErrPageCreate, ErrPageLoad.
func (r *Renderer) PDF(ctx context.Context, p *Profile) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	md := r.markdown.Render(p)
	title := pipeline.Greeting(p.Name)

	src := &pdfSource{Title: title}
	if r.cfg.engine == PDFEngineBrowser {
		src.HTML = r.html.ToHTML(md, strings.TrimSpace(p.Name))
	} else {
		// Block 0 is the greeting heading, drawn as the title.
		blocks := r.pageText.Blocks(md)
		if len(blocks) > 0 {
			blocks = blocks[1:]
		}
		src.Body = r.pageText.Join(blocks)
	}

	data, err := r.pdf.ToPDF(ctx, src)
	if err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}
	return data, nil
}

// Export renders p as format and wraps it with its filename and MIME type.
// The filename embeds the trimmed profile name verbatim.
func (r *Renderer) Export(ctx context.Context, p *Profile, format Format) (*Document, error) {
	var content []byte
	switch format {
	case FormatMarkdown:
		content = []byte(r.Markdown(p))
	case FormatHTML:
		content = []byte(r.HTML(p))
	case FormatText:
		content = []byte(r.PlainText(p))
	case FormatPDF:
		data, err := r.PDF(ctx, p)
		if err != nil {
			return nil, err
		}
		content = data
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	return &Document{
		Format:   format,
		Filename: format.Filename(strings.TrimSpace(p.Name)),
		MIMEType: format.MIMEType(),
		Content:  content,
	}, nil
}

// Close releases resources held by the PDF engine (headless Chrome).
func (r *Renderer) Close() error {
	if r.pdf != nil {
		return r.pdf.Close()
	}
	return nil
}
