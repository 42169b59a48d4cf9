package pipeline

import (
	"strconv"
	"strings"

	"github.com/mitchellh/go-wordwrap"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// markupStripper removes what survives of markup after the tree walk, so the
// output never carries angle brackets or image-link markers.
var markupStripper = strings.NewReplacer("<", "", ">", "", "![", "[")

// TextConverter renders canonical Markdown as plain text: heading markers and
// emphasis are dropped, links become "label (url)", images become
// "[Image: alt]", and raw HTML is reduced to its text.
// Safe for concurrent use.
type TextConverter struct {
	md    goldmark.Markdown
	width uint
}

// NewTextConverter creates a TextConverter. A positive width wraps lines at
// that many columns; zero leaves lines as they are.
func NewTextConverter(width int) *TextConverter {
	w := uint(0)
	if width > 0 {
		w = uint(width)
	}
	return &TextConverter{md: newParser(), width: w}
}

// ToText converts markdown to plain text. Blocks are separated by one blank line.
func (c *TextConverter) ToText(markdown string) string {
	return c.Join(c.Blocks(markdown))
}

// Blocks returns the plain text of each top-level block of markdown, in
// order, skipping blocks with no text. Blocks are not wrapped.
func (c *TextConverter) Blocks(markdown string) []string {
	source := []byte(markdown)
	doc := c.md.Parser().Parse(text.NewReader(source))

	w := &textWriter{source: source}
	var out []string
	for _, b := range w.blocks(doc) {
		if b = tidy(markupStripper.Replace(b)); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// Join formats blocks the way ToText does: one blank line between blocks,
// wrapped at the converter width, with a final newline.
func (c *TextConverter) Join(blocks []string) string {
	out := strings.Join(blocks, "\n\n")
	if c.width > 0 {
		out = wordwrap.WrapString(out, c.width)
	}
	if out == "" {
		return ""
	}
	return out + "\n"
}

type textWriter struct {
	source []byte
}

// blocks renders each block child of parent, dropping blocks with no text.
func (w *textWriter) blocks(parent ast.Node) []string {
	var out []string
	add := func(s string) {
		if s = tidy(s); s != "" {
			out = append(out, s)
		}
	}

	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch n := n.(type) {
		case *ast.Heading, *ast.Paragraph, *ast.TextBlock:
			add(w.inlines(n))
		case *ast.HTMLBlock:
			raw := w.lines(n)
			if n.HasClosure() {
				raw += string(n.ClosureLine.Value(w.source))
			}
			add(htmlText(raw))
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			add(w.lines(n))
		case *ast.List:
			add(w.list(n))
		case *ast.ThematicBreak:
			add("---")
		case *east.Table:
			add(w.table(n))
		default:
			for _, s := range w.blocks(n) {
				add(s)
			}
		}
	}
	return out
}

func (w *textWriter) list(l *ast.List) string {
	var items []string
	num := l.Start
	for item := l.FirstChild(); item != nil; item = item.NextSibling() {
		marker := "- "
		if l.IsOrdered() {
			marker = strconv.Itoa(num) + ". "
			num++
		}
		items = append(items, marker+strings.Join(w.blocks(item), "\n"))
	}
	return strings.Join(items, "\n")
}

func (w *textWriter) table(t *east.Table) string {
	var rows []string
	for row := t.FirstChild(); row != nil; row = row.NextSibling() {
		var cells []string
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			cells = append(cells, strings.TrimSpace(w.inlines(cell)))
		}
		rows = append(rows, strings.Join(cells, " | "))
	}
	return strings.Join(rows, "\n")
}

// lines returns the raw source lines of a block node.
func (w *textWriter) lines(n ast.Node) string {
	var b strings.Builder
	segs := n.Lines()
	for i := 0; i < segs.Len(); i++ {
		seg := segs.At(i)
		b.Write(seg.Value(w.source))
	}
	return b.String()
}

func (w *textWriter) inlines(parent ast.Node) string {
	var b strings.Builder
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		w.inline(&b, n)
	}
	return b.String()
}

func (w *textWriter) inline(b *strings.Builder, n ast.Node) {
	switch n := n.(type) {
	case *ast.Text:
		b.Write(n.Segment.Value(w.source))
		if n.SoftLineBreak() || n.HardLineBreak() {
			b.WriteByte('\n')
		}
	case *ast.String:
		b.Write(n.Value)
	case *ast.Link:
		b.WriteString(w.inlines(n) + " (" + string(n.Destination) + ")")
	case *ast.Image:
		b.WriteString("[Image: " + w.inlines(n) + "]")
	case *ast.AutoLink:
		b.Write(n.Label(w.source))
	case *ast.RawHTML:
		var raw strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			raw.Write(seg.Value(w.source))
		}
		b.WriteString(htmlText(raw.String()))
	case *east.TaskCheckBox:
		if n.IsChecked {
			b.WriteString("[x] ")
		} else {
			b.WriteString("[ ] ")
		}
	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			w.inline(b, c)
		}
	}
}

// htmlText keeps the text content of an HTML fragment. Images become
// "[Image: alt]" and <br> becomes a newline; every other tag is dropped.
// The tokenizer does not parse markup inside raw-text elements such as
// <script>, so their content is stripped of tags in a second pass.
func htmlText(fragment string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	raw := false
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			if raw {
				b.WriteString(htmlText(string(z.Text())))
			} else {
				b.Write(z.Text())
			}
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			switch tok.DataAtom {
			case atom.Img:
				b.WriteString("[Image: " + attr(tok, "alt") + "]")
			case atom.Br:
				b.WriteByte('\n')
			}
			raw = rawTextElements[tok.DataAtom]
			continue
		}
		raw = false
	}
}

// rawTextElements are the elements whose content the tokenizer returns as a
// single unparsed text token.
var rawTextElements = map[atom.Atom]bool{
	atom.Iframe:    true,
	atom.Noembed:   true,
	atom.Noframes:  true,
	atom.Noscript:  true,
	atom.Plaintext: true,
	atom.Script:    true,
	atom.Style:     true,
	atom.Textarea:  true,
	atom.Title:     true,
	atom.Xmp:       true,
}

func attr(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// tidy trims trailing spaces from every line and surrounding blank lines.
func tidy(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t")
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}
