package fileutil_test

// Notes:
// - The CreateTemp failure is triggered through TMPDIR, so that test uses
//   t.Setenv and stays sequential.
// - Short writes and failing Close calls are not reproduced; they need a
//   full disk.

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-profilemd/internal/fileutil"
)

// ---------------------------------------------------------------------------
// ValidateExtension and WriteTempFile
// ---------------------------------------------------------------------------

func TestValidateExtension(t *testing.T) {
	t.Parallel()

	tests := map[string]error{
		"html":             nil,
		"md":               nil,
		"tar.gz":           nil,
		"":                 fileutil.ErrExtensionEmpty,
		"../html":          fileutil.ErrExtensionPathTraversal,
		`..\html`:          fileutil.ErrExtensionPathTraversal,
		"html\x00.exe":     fileutil.ErrExtensionPathTraversal,
		"profiles/ada.yml": fileutil.ErrExtensionPathTraversal,
	}

	for ext, want := range tests {
		if err := fileutil.ValidateExtension(ext); !errors.Is(err, want) {
			t.Errorf("ValidateExtension(%q) = %v, want %v", ext, err, want)
		}
	}
}

func TestWriteTempFile(t *testing.T) {
	t.Parallel()

	page := "<!DOCTYPE html>\n<html><body><h1>Hi 👋, I'm Ada</h1></body></html>\n"

	path, cleanup, err := fileutil.WriteTempFile(page, "html")
	if err != nil {
		t.Fatalf("WriteTempFile() error = %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "profilemd-") || !strings.HasSuffix(base, ".html") {
		t.Errorf("temp name = %q, want profilemd-*.html", base)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != page {
		t.Errorf("content = %q, want %q", data, page)
	}

	cleanup()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("temp file survived cleanup: %v", err)
	}
}

func TestWriteTempFile_RejectsExtension(t *testing.T) {
	t.Parallel()

	path, cleanup, err := fileutil.WriteTempFile("x", "../html")
	if !errors.Is(err, fileutil.ErrExtensionPathTraversal) {
		t.Errorf("error = %v, want ErrExtensionPathTraversal", err)
	}
	if path != "" || cleanup != nil {
		t.Errorf("got path %q and cleanup %v on error", path, cleanup != nil)
	}
}

func TestWriteTempFile_BadTempDir(t *testing.T) {
	t.Setenv("TMPDIR", filepath.Join(t.TempDir(), "missing"))

	_, _, err := fileutil.WriteTempFile("x", "html")
	if err == nil || !strings.Contains(err.Error(), "creating temp file") {
		t.Errorf("error = %v, want a creating temp file error", err)
	}
}

// ---------------------------------------------------------------------------
// FileExists and IsFilePath
// ---------------------------------------------------------------------------

func TestFileExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	profile := filepath.Join(dir, "ada.yaml")
	if err := os.WriteFile(profile, []byte("name: Ada\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if !fileutil.FileExists(profile) {
		t.Errorf("FileExists(%q) = false for a regular file", profile)
	}
	for _, path := range []string{dir, filepath.Join(dir, "grace.yaml"), ""} {
		if fileutil.FileExists(path) {
			t.Errorf("FileExists(%q) = true, want false", path)
		}
	}
}

func TestIsFilePath(t *testing.T) {
	t.Parallel()

	paths := []string{"./profilemd.yaml", "configs/work.yaml", "/etc/profilemd.yaml", `C:\profilemd\work.yaml`}
	names := []string{"", "work", "work.v2", "profilemd.yaml"}

	for _, s := range paths {
		if !fileutil.IsFilePath(s) {
			t.Errorf("IsFilePath(%q) = false, want true", s)
		}
	}
	for _, s := range names {
		if fileutil.IsFilePath(s) {
			t.Errorf("IsFilePath(%q) = true, want false", s)
		}
	}
}

// ---------------------------------------------------------------------------
// SanitizeFilename
// ---------------------------------------------------------------------------

func TestSanitizeFilename(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in, want string
	}{
		{"Ada Lovelace", "Ada Lovelace"},
		{"Zoë Ünal", "Zoë Ünal"},
		{"AC/DC", "AC-DC"},
		{`back\slash`, "back-slash"},
		{`a:b*c?d"e<f>g|h`, "a-b-c-d-e-f-g-h"},
		{"tab\there\x00", "tabhere"},
		{" ..hidden. ", "hidden"},
		{"", "profile"},
		{"...", "profile"},
	}

	for _, tt := range tests {
		if got := fileutil.SanitizeFilename(tt.in); got != tt.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// WriteFile
// ---------------------------------------------------------------------------

func TestWriteFile(t *testing.T) {
	t.Parallel()

	t.Run("creates parents", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "ada", "README.md")
		if err := fileutil.WriteFile(path, []byte("# Ada\n")); err != nil {
			t.Fatalf("WriteFile() error = %v", err)
		}
		assertContent(t, path, "# Ada\n")
	})

	t.Run("replaces existing file without leftovers", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := filepath.Join(dir, "README.md")
		for _, content := range []string{"first\n", "second\n"} {
			if err := fileutil.WriteFile(path, []byte(content)); err != nil {
				t.Fatalf("WriteFile() error = %v", err)
			}
		}
		assertContent(t, path, "second\n")

		entries, err := os.ReadDir(dir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			var names []string
			for _, e := range entries {
				names = append(names, e.Name())
			}
			t.Errorf("dir holds %v, want only README.md", names)
		}
	})

	t.Run("readable permissions", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "ada-profile.txt")
		if err := fileutil.WriteFile(path, []byte("Ada")); err != nil {
			t.Fatal(err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Mode().Perm()&0o044 == 0 && os.PathSeparator == '/' {
			t.Errorf("mode = %v, want group/other readable", info.Mode().Perm())
		}
	})

	t.Run("parent is a file", func(t *testing.T) {
		t.Parallel()

		blocker := filepath.Join(t.TempDir(), "out")
		if err := os.WriteFile(blocker, nil, 0o600); err != nil {
			t.Fatal(err)
		}
		if err := fileutil.WriteFile(filepath.Join(blocker, "README.md"), nil); err == nil {
			t.Error("WriteFile() under a regular file should fail")
		}
	})

	t.Run("target is a directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		target := filepath.Join(dir, "README.md")
		if err := os.Mkdir(target, 0o755); err != nil {
			t.Fatal(err)
		}
		if err := fileutil.WriteFile(target, []byte("x")); err == nil {
			t.Error("WriteFile() over a directory should fail")
		}
	})
}

func assertContent(t *testing.T, path, want string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != want {
		t.Errorf("content = %q, want %q", data, want)
	}
}
