package assets

// Notes:
// - Symlink escape tests skip where symlinks cannot be created.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTheme(t *testing.T, dir, name, css string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".css"), []byte(css), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
}

// ---------------------------------------------------------------------------
// ValidateName
// ---------------------------------------------------------------------------

func TestValidateName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		wantErr bool
	}{
		{"default", false},
		{"my-theme_2", false},
		{"", true},
		{"../etc", true},
		{"a/b", true},
		{`a\b`, true},
		{"theme.css", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := ValidateName(tt.name)
			if tt.wantErr && !errors.Is(err, ErrInvalidThemeName) {
				t.Errorf("ValidateName(%q) = %v, want ErrInvalidThemeName", tt.name, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateName(%q) = %v, want nil", tt.name, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// EmbeddedLoader
// ---------------------------------------------------------------------------

func TestEmbeddedLoader(t *testing.T) {
	t.Parallel()

	l := NewEmbeddedLoader()

	names, err := l.Themes()
	if err != nil {
		t.Fatalf("Themes() error = %v", err)
	}
	if strings.Join(names, ",") != "dark,default,print" {
		t.Errorf("Themes() = %v, want [dark default print]", names)
	}

	for _, name := range names {
		css, err := l.LoadTheme(name)
		if err != nil {
			t.Errorf("LoadTheme(%q) error = %v", name, err)
			continue
		}
		if !strings.Contains(css, "body {") {
			t.Errorf("LoadTheme(%q) has no body rule", name)
		}
	}

	if _, err := l.LoadTheme("neon"); !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("LoadTheme(neon) error = %v, want ErrThemeNotFound", err)
	}
	if _, err := l.LoadTheme("../x"); !errors.Is(err, ErrInvalidThemeName) {
		t.Errorf("LoadTheme(../x) error = %v, want ErrInvalidThemeName", err)
	}
}

func TestDefaultStyle(t *testing.T) {
	t.Parallel()

	css := DefaultStyle()
	if !strings.Contains(css, "max-width: 800px;") {
		t.Errorf("DefaultStyle() = %q", css)
	}
	if got, _ := LoadTheme(DefaultTheme); got != css {
		t.Error("LoadTheme(DefaultTheme) differs from DefaultStyle()")
	}
}

// ---------------------------------------------------------------------------
// FilesystemLoader
// ---------------------------------------------------------------------------

func TestNewFilesystemLoader_Errors(t *testing.T) {
	t.Parallel()

	file := filepath.Join(t.TempDir(), "file.css")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	for _, dir := range []string{"", filepath.Join(t.TempDir(), "missing"), file} {
		if _, err := NewFilesystemLoader(dir); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewFilesystemLoader(%q) error = %v, want ErrInvalidBasePath", dir, err)
		}
	}
}

func TestFilesystemLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTheme(t, dir, "ocean", "body { color: navy; }")
	writeTheme(t, dir, "bad.name", "x")
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	l, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatalf("NewFilesystemLoader() error = %v", err)
	}

	css, err := l.LoadTheme("ocean")
	if err != nil || css != "body { color: navy; }" {
		t.Errorf("LoadTheme(ocean) = %q, %v", css, err)
	}
	if _, err := l.LoadTheme("default"); !errors.Is(err, ErrThemeNotFound) {
		t.Errorf("LoadTheme(default) error = %v, want ErrThemeNotFound", err)
	}

	names, err := l.Themes()
	if err != nil {
		t.Fatalf("Themes() error = %v", err)
	}
	if strings.Join(names, ",") != "ocean" {
		t.Errorf("Themes() = %v, want [ocean]", names)
	}
}

func TestFilesystemLoader_SymlinkEscape(t *testing.T) {
	t.Parallel()

	outside := t.TempDir()
	writeTheme(t, outside, "secret", "body {}")

	dir := t.TempDir()
	if err := os.Symlink(filepath.Join(outside, "secret.css"), filepath.Join(dir, "linked.css")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	l, err := NewFilesystemLoader(dir)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := l.LoadTheme("linked"); !errors.Is(err, ErrPathTraversal) {
		t.Errorf("LoadTheme(linked) error = %v, want ErrPathTraversal", err)
	}
}

// ---------------------------------------------------------------------------
// Resolver
// ---------------------------------------------------------------------------

func TestResolver(t *testing.T) {
	t.Parallel()

	t.Run("built-in only", func(t *testing.T) {
		t.Parallel()

		r, err := NewResolver("")
		if err != nil {
			t.Fatal(err)
		}
		if r.HasCustomLoader() {
			t.Error("HasCustomLoader() = true without a directory")
		}
		if css, err := r.LoadTheme("dark"); err != nil || !strings.Contains(css, "#0d1117") {
			t.Errorf("LoadTheme(dark) = %q, %v", css, err)
		}
	})

	t.Run("custom first with fallback", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeTheme(t, dir, "dark", "body { background: black; }")
		writeTheme(t, dir, "ocean", "body { color: navy; }")

		r, err := NewResolver(dir)
		if err != nil {
			t.Fatal(err)
		}

		if css, _ := r.LoadTheme("dark"); css != "body { background: black; }" {
			t.Errorf("custom dark should override built-in, got %q", css)
		}
		if css, err := r.LoadTheme("default"); err != nil || !strings.Contains(css, "max-width: 800px;") {
			t.Errorf("default should fall back to built-in, got %q, %v", css, err)
		}
		if _, err := r.LoadTheme("neon"); !errors.Is(err, ErrThemeNotFound) {
			t.Errorf("LoadTheme(neon) error = %v, want ErrThemeNotFound", err)
		}
		if _, err := r.LoadTheme("a.b"); !errors.Is(err, ErrInvalidThemeName) {
			t.Errorf("invalid names must not fall back, got %v", err)
		}

		names, err := r.Themes()
		if err != nil {
			t.Fatal(err)
		}
		if strings.Join(names, ",") != "dark,default,ocean,print" {
			t.Errorf("Themes() = %v", names)
		}
	})

	t.Run("invalid directory", func(t *testing.T) {
		t.Parallel()

		if _, err := NewResolver(filepath.Join(t.TempDir(), "nope")); !errors.Is(err, ErrInvalidBasePath) {
			t.Errorf("NewResolver() error = %v, want ErrInvalidBasePath", err)
		}
	})
}
