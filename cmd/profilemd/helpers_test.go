package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alnah/go-profilemd/internal/config"
)

// testProfileYAML is a small profile exercising several sections.
const testProfileYAML = `name: Ada Lovelace
title: Analyst
bio: Builds **tools**.
email: ada@example.com
skills: [python, docker]
socialLinks:
  - platform: github
    username: ada
`

// testEnv returns an Environment writing to buffers.
func testEnv() (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		Config: config.DefaultConfig(),
		Logger: newLogger(stderr, false, false),
	}
	return env, stdout, stderr
}

// writeFile writes content to dir/name and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}

// assertFileExists fails unless path is a non-empty regular file.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected %s to exist: %v", path, err)
		return
	}
	if info.Size() == 0 {
		t.Errorf("expected %s to be non-empty", path)
	}
}
