package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestNewLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		quiet     bool
		verbose   bool
		wantDebug bool
		wantWarn  bool
	}{
		{name: "default", wantWarn: true},
		{name: "verbose", verbose: true, wantDebug: true, wantWarn: true},
		{name: "quiet", quiet: true},
		{name: "quiet wins", quiet: true, verbose: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := newLogger(&buf, tt.quiet, tt.verbose)
			logger.Debug().Msg("debug-line")
			logger.Warn().Msg("warn-line")
			logger.Error().Msg("error-line")

			out := buf.String()
			if got := strings.Contains(out, "debug-line"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "warn-line"); got != tt.wantWarn {
				t.Errorf("warn logged = %v, want %v", got, tt.wantWarn)
			}
			if !strings.Contains(out, "error-line") {
				t.Error("errors should always be logged")
			}
			if strings.Contains(out, "\x1b[") {
				t.Error("buffer output should not be colored")
			}
		})
	}
}

func TestUseCommonFlags(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv()
	env.Logger.Debug().Msg("hidden")
	env.useCommonFlags(&commonFlags{verbose: true})
	env.Logger.Debug().Msg("shown")

	if strings.Contains(stderr.String(), "hidden") {
		t.Error("debug should be off before -v")
	}
	if !strings.Contains(stderr.String(), "shown") {
		t.Error("debug should be on after -v")
	}
}
