package main

import (
	"strings"
	"testing"
)

func TestRunHelp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		args       []string
		wantStdout string
		wantStderr string
	}{
		{args: nil, wantStdout: "Usage: profilemd <command>"},
		{args: []string{"render"}, wantStdout: "<name>-README.pdf"},
		{args: []string{"preview"}, wantStdout: "--style"},
		{args: []string{"watch"}, wantStdout: "Usage: profilemd watch"},
		{args: []string{"serve"}, wantStdout: "GET /export/{format}"},
		{args: []string{"catalog"}, wantStdout: "skills|platforms|categories"},
		{args: []string{"doctor"}, wantStdout: "--json"},
		{args: []string{"completion"}, wantStdout: "powershell"},
		{args: []string{"version"}, wantStdout: "Usage: profilemd version"},
		{args: []string{"help"}, wantStdout: "Usage: profilemd help"},
		{args: []string{"nope"}, wantStderr: "Unknown command: nope"},
	}

	for _, tt := range tests {
		name := "none"
		if len(tt.args) > 0 {
			name = tt.args[0]
		}
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			env, stdout, stderr := testEnv()
			runHelp(tt.args, env)

			if tt.wantStdout != "" && !strings.Contains(stdout.String(), tt.wantStdout) {
				t.Errorf("stdout missing %q:\n%s", tt.wantStdout, stdout)
			}
			if tt.wantStderr != "" && !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr missing %q:\n%s", tt.wantStderr, stderr)
			}
		})
	}
}

func TestHelpListsEveryCommand(t *testing.T) {
	t.Parallel()

	env, stdout, _ := testEnv()
	runHelp(nil, env)

	for _, c := range getCommands() {
		if !strings.Contains(stdout.String(), "  "+c.Name+" ") {
			t.Errorf("usage does not list %q", c.Name)
		}
	}
}
