package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// styles renders user-facing status lines. Color is detected per writer,
// so output piped to a file or buffer stays plain.
type styles struct {
	ok      lipgloss.Style
	fail    lipgloss.Style
	heading lipgloss.Style
	muted   lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		ok:      r.NewStyle().Foreground(lipgloss.Color("42")).Bold(true),
		fail:    r.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		heading: r.NewStyle().Bold(true).Underline(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// created prints "Created <path>".
func (s styles) created(w io.Writer, path string) {
	fmt.Fprintf(w, "%s %s\n", s.ok.Render("Created"), path)
}

// failed prints "FAILED <path>: <err>".
func (s styles) failed(w io.Writer, path string, err error) {
	fmt.Fprintf(w, "%s %s: %v\n", s.fail.Render("FAILED"), path, err)
}
