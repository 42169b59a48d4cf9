package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	profilemd "github.com/alnah/go-profilemd"
)

// watchDebounce coalesces the burst of events a single editor save produces.
const watchDebounce = 100 * time.Millisecond

// runWatch renders a profile, then renders it again after every change
// until interrupted.
func runWatch(ctx context.Context, args []string, env *Environment) error {
	f := &watchFlags{}
	positional, err := parseFlagSet(newWatchFlagSet(f), args, env.Stderr, printWatchUsage)
	if err != nil {
		return err
	}
	env.useCommonFlags(&f.common)

	if len(positional) != 1 {
		return fmt.Errorf("%w: watch takes exactly one profile file", ErrUsage)
	}
	path := positional[0]
	if err := validateProfileExtension(path); err != nil {
		return err
	}

	cfg, err := resolveConfig(&f.common, env)
	if err != nil {
		return err
	}
	applyOutputFlags(f.output, f.formats, f.width, cfg)
	applyEngineFlags(&f.pdf, cfg)
	applyThemeFlag(f.theme, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	formats, err := parseConfigFormats(cfg)
	if err != nil {
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

	job := renderJob{InputPath: path, OutputDir: resolveOutputDir(path, cfg.Output.Dir, false)}
	render := func() {
		result := renderFile(ctx, r, job, formats)
		_, _ = printResults([]renderResult{result}, f.common, env)
	}

	render()
	if !f.common.quiet {
		fmt.Fprintf(env.Stdout, "Watching %s (Ctrl+C to stop)\n", path)
	}
	return watchFile(ctx, path, watchDebounce, env.Logger, render)
}

// watchFile calls onChange once per burst of writes to path, until ctx is
// done. The parent directory is watched so that editors which save by
// replacing the file are still seen.
func watchFile(ctx context.Context, path string, debounce time.Duration, logger zerolog.Logger, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}
	logger.Debug().Str("file", abs).Msg("watcher started")

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Debug().Msg("watcher stopped")
			return nil

		case <-fire:
			fire = nil
			onChange()

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			logger.Debug().Str("op", ev.Op.String()).Str("file", ev.Name).Msg("change detected")

			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watcher error")
		}
	}
}
