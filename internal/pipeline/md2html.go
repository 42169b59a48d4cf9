package pipeline

import (
	"bytes"
	"html/template"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/alnah/go-profilemd/internal/assets"
)

// pageTemplate wraps the converted fragment in a standalone HTML5 document.
var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>{{.Title}} - GitHub Profile</title>
    <style>
{{.Style}}    </style>
</head>
<body>
    <div>
{{.Body}}
    </div>
</body>
</html>
`))

// newParser returns the goldmark instance shared by both downconverters so
// HTML and plain text see the same document tree.
func newParser(extra ...goldmark.Extender) goldmark.Markdown {
	exts := append([]goldmark.Extender{
		extension.Table,
		extension.Strikethrough,
		extension.TaskList,
	}, extra...)

	return goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>
			html.WithXHTML(),     // Self-closing tags
			html.WithUnsafe(),    // Header, social, and skill blocks are raw HTML
		),
	)
}

// HTMLConverter renders canonical Markdown as a standalone HTML page.
// Safe for concurrent use.
type HTMLConverter struct {
	md    goldmark.Markdown
	style template.CSS
}

// NewHTMLConverter creates an HTMLConverter that embeds css in the page, or
// the default theme when css is empty. Fenced code inside free-text fields
// is highlighted with inline styles; links open in a new tab.
func NewHTMLConverter(css string) *HTMLConverter {
	if strings.TrimSpace(css) == "" {
		css = assets.DefaultStyle()
	}

	md := newParser(
		highlighting.NewHighlighting(
			highlighting.WithStyle("github"),
			highlighting.WithFormatOptions(
				chromahtml.TabWidth(4),
			),
		),
	)
	md.Parser().AddOptions(parser.WithASTTransformers(
		util.Prioritized(newTabLinks{}, 100),
	))
	return &HTMLConverter{
		md:    md,
		style: template.CSS(sanitizeCSS(css)), // #nosec G203 -- closing tags escaped
	}
}

// sanitizeCSS escapes "</" so a theme cannot close the style element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// ToHTML converts markdown to a page titled "<title> - GitHub Profile".
func (c *HTMLConverter) ToHTML(markdown, title string) string {
	var body bytes.Buffer
	// Convert only fails on writer errors and bytes.Buffer never returns one.
	_ = c.md.Convert([]byte(markdown), &body)

	var page bytes.Buffer
	_ = pageTemplate.Execute(&page, struct {
		Title string
		Style template.CSS
		Body  template.HTML
	}{
		Title: title,
		Style: c.style,
		Body:  template.HTML(body.String()), // #nosec G203 -- rendered from our own Markdown
	})
	return page.String()
}

// newTabLinks makes every Markdown link open in a new browsing context.
type newTabLinks struct{}

func (newTabLinks) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if link, ok := n.(*ast.Link); ok {
			link.SetAttributeString("target", []byte("_blank"))
		}
		return ast.WalkContinue, nil
	})
}
