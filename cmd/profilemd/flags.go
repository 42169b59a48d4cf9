package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-profilemd/internal/config"
)

// ErrUsage marks invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// engineFlags holds PDF engine flags.
type engineFlags struct {
	engine  string
	timeout string
}

// renderFlags holds all flags for the render command.
type renderFlags struct {
	common  commonFlags
	pdf     engineFlags
	output  string
	formats string
	workers int
	width   int
	theme   string
}

// previewFlags holds flags for the preview command.
type previewFlags struct {
	common commonFlags
	style  string
	width  int
}

// watchFlags holds flags for the watch command.
type watchFlags struct {
	common  commonFlags
	pdf     engineFlags
	output  string
	formats string
	width   int
	theme   string
}

// serveFlags holds flags for the serve command.
type serveFlags struct {
	common commonFlags
	pdf    engineFlags
	addr   string
	width  int
	theme  string
}

// catalogFlags holds flags for the catalog command.
type catalogFlags struct {
	common commonFlags
	json   bool
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	common commonFlags
	json   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug logs and timing")
}

// addEngineFlags adds PDF engine flags to a FlagSet.
func addEngineFlags(fs *flag.FlagSet, f *engineFlags) {
	fs.StringVarP(&f.engine, "engine", "e", "", "PDF engine: text, browser")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "browser PDF timeout (e.g., 30s, 2m)")
}

func addThemeFlag(fs *flag.FlagSet, theme *string) {
	fs.StringVar(theme, "theme", "", "HTML theme: default, dark, print, or a name in html.themes_dir")
}

func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVarP(&f.formats, "formats", "f", "", "formats: markdown,html,text,pdf or all")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.IntVar(&f.width, "width", 0, "wrap plain text at n columns (0 = no wrap)")
	addThemeFlag(fs, &f.theme)
	addEngineFlags(fs, &f.pdf)
	addCommonFlags(fs, &f.common)
	return fs
}

func newPreviewFlagSet(f *previewFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.StringVarP(&f.style, "style", "s", "auto", "glamour style: auto, dark, light, notty, dracula")
	fs.IntVar(&f.width, "width", 80, "word wrap column")
	addCommonFlags(fs, &f.common)
	return fs
}

func newWatchFlagSet(f *watchFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVarP(&f.formats, "formats", "f", "", "formats: markdown,html,text,pdf or all")
	fs.IntVar(&f.width, "width", 0, "wrap plain text at n columns (0 = no wrap)")
	addThemeFlag(fs, &f.theme)
	addEngineFlags(fs, &f.pdf)
	addCommonFlags(fs, &f.common)
	return fs
}

func newServeFlagSet(f *serveFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default "+config.DefaultServeAddr+")")
	fs.IntVar(&f.width, "width", 0, "wrap plain text at n columns (0 = no wrap)")
	addThemeFlag(fs, &f.theme)
	addEngineFlags(fs, &f.pdf)
	addCommonFlags(fs, &f.common)
	return fs
}

func newCatalogFlagSet(f *catalogFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	fs.BoolVar(&f.json, "json", false, "output as JSON")
	addCommonFlags(fs, &f.common)
	return fs
}

func newDoctorFlagSet(f *doctorFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	fs.BoolVar(&f.json, "json", false, "output as JSON")
	addCommonFlags(fs, &f.common)
	return fs
}

// parseFlagSet parses args, sending errors and usage to w.
func parseFlagSet(fs *flag.FlagSet, args []string, w io.Writer, usage func(io.Writer)) ([]string, error) {
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

// applyEngineFlags overrides config with explicitly set engine flags.
func applyEngineFlags(f *engineFlags, cfg *config.Config) {
	if f.engine != "" {
		cfg.PDF.Engine = f.engine
	}
	if f.timeout != "" {
		cfg.PDF.Timeout = f.timeout
	}
}

// applyOutputFlags overrides config with explicitly set output flags.
func applyOutputFlags(output, formats string, width int, cfg *config.Config) {
	if output != "" {
		cfg.Output.Dir = output
	}
	if strings.TrimSpace(formats) != "" {
		cfg.Output.Formats = splitList(formats)
	}
	if width > 0 {
		cfg.Text.Width = width
	}
}

// applyThemeFlag overrides the HTML theme when --theme is set.
func applyThemeFlag(theme string, cfg *config.Config) {
	if theme != "" {
		cfg.HTML.Theme = theme
	}
}
