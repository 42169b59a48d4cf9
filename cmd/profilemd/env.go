package main

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/alnah/go-profilemd/internal/config"
)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, configuration, and logging.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Config *config.Config // Base config used when no config file is named
	Logger zerolog.Logger // Replaced per command once -q/-v are known
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Config: config.DefaultConfig(),
		Logger: newLogger(os.Stderr, false, false),
	}
}

// newLogger returns a console logger on w.
// Level is warn by default, debug when verbose, error when quiet.
func newLogger(w io.Writer, quiet, verbose bool) zerolog.Logger {
	level := zerolog.WarnLevel
	switch {
	case quiet:
		level = zerolog.ErrorLevel
	case verbose:
		level = zerolog.DebugLevel
	}

	_, isFile := w.(*os.File)
	out := zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    !isFile || os.Getenv("NO_COLOR") != "",
		TimeFormat: time.TimeOnly,
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// useCommonFlags rebuilds the logger for the parsed -q/-v flags.
func (e *Environment) useCommonFlags(f *commonFlags) {
	e.Logger = newLogger(e.Stderr, f.quiet, f.verbose)
}
