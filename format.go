package profilemd

import (
	"fmt"
	"strings"
)

// Format is an export document format.
type Format string

// Export formats.
const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatText     Format = "text"
	FormatPDF      Format = "pdf"
)

// Formats lists every export format in canonical order.
var Formats = []Format{FormatMarkdown, FormatHTML, FormatText, FormatPDF}

// ParseFormat parses a format name case-insensitively.
// Accepts the aliases md, txt, and plain.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	case "text", "txt", "plain":
		return FormatText, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// ParseFormats parses a comma-separated format list, dropping duplicates.
// The special value "all" selects every format.
func ParseFormats(s string) ([]Format, error) {
	if strings.EqualFold(strings.TrimSpace(s), "all") {
		return append([]Format(nil), Formats...), nil
	}

	var out []Format
	seen := make(map[Format]bool)
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		f, err := ParseFormat(part)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: empty format list", ErrUnknownFormat)
	}
	return out, nil
}

// Filename returns the suggested download name for a profile named name.
// Markdown is always README.md. Other formats embed name verbatim; callers
// writing to disk should sanitize it first.
func (f Format) Filename(name string) string {
	switch f {
	case FormatMarkdown:
		return "README.md"
	case FormatHTML:
		return name + "-profile.html"
	case FormatText:
		return name + "-profile.txt"
	case FormatPDF:
		return name + "-README.pdf"
	default:
		return name
	}
}

// MIMEType returns the media type of the format.
func (f Format) MIMEType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown"
	case FormatHTML:
		return "text/html"
	case FormatText:
		return "text/plain"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// Document is one rendered export ready to be saved or served.
type Document struct {
	Format   Format
	Filename string
	MIMEType string
	Content  []byte
}
