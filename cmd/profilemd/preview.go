package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/glamour"

	profilemd "github.com/alnah/go-profilemd"
)

// runPreview renders a profile's Markdown to the terminal.
func runPreview(args []string, env *Environment) error {
	f := &previewFlags{}
	positional, err := parseFlagSet(newPreviewFlagSet(f), args, env.Stderr, printPreviewUsage)
	if err != nil {
		return err
	}
	env.useCommonFlags(&f.common)

	if len(positional) != 1 {
		return fmt.Errorf("%w: preview takes exactly one profile file", ErrUsage)
	}

	cfg, err := resolveConfig(&f.common, env)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	opts, err := rendererOptions(cfg)
	if err != nil {
		return err
	}

	r, err := profilemd.NewRenderer(opts...)
	if err != nil {
		return err
	}
	defer r.Close()

	p, err := profilemd.LoadProfile(positional[0])
	if err != nil {
		return err
	}

	return writePreview(env.Stdout, r.Markdown(p), f.style, f.width)
}

// writePreview renders markdown with glamour and writes it to w.
func writePreview(w io.Writer, markdown, style string, width int) error {
	styleOpt := glamour.WithAutoStyle()
	if style != "" && style != "auto" {
		styleOpt = glamour.WithStandardStyle(style)
	}

	tr, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return fmt.Errorf("failed to create terminal renderer: %w", err)
	}

	out, err := tr.Render(markdown)
	if err != nil {
		return fmt.Errorf("failed to render markdown: %w", err)
	}

	_, err = io.WriteString(w, out)
	return err
}
