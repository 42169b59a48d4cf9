//go:build integration

package profilemd

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestBrowserPDFEngine_Integration prints HTML through a real Chrome.
// Rod downloads Chromium on first run if none is found.
func TestBrowserPDFEngine_Integration(t *testing.T) {
	t.Parallel()

	engine := newBrowserPDFEngine(testTimeout)
	defer engine.Close()

	data, err := engine.ToPDF(context.Background(), &pdfSource{
		HTML: `<!DOCTYPE html><html><body><h1>Hi 👋, I'm Ada</h1></body></html>`,
	})
	if err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	assertValidPDF(t, data)
}

func TestRenderer_BrowserExport_Integration(t *testing.T) {
	t.Parallel()

	r := acquireRenderer(t)
	ctx, cancel := context.WithTimeout(context.Background(), testTimeout)
	defer cancel()

	doc, err := r.Export(ctx, testProfile(), FormatPDF)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	assertValidPDF(t, doc.Content)

	outputPath := filepath.Join(t.TempDir(), doc.Filename)
	if err := os.WriteFile(outputPath, doc.Content, 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	info, err := os.Stat(outputPath)
	if err != nil || info.Size() == 0 {
		t.Errorf("expected non-empty PDF at %s", outputPath)
	}
}

// TestRodRenderer_EnsureBrowser_CI tests browser launch with CI environment variable.
func TestRodRenderer_EnsureBrowser_CI(t *testing.T) {
	t.Setenv("CI", "true")

	renderer := newRodRenderer(testTimeout)
	defer renderer.Close()

	if err := renderer.ensureBrowser(); err != nil {
		t.Fatalf("ensureBrowser() with CI=true error = %v", err)
	}
	if renderer.browser == nil {
		t.Error("browser should not be nil after ensureBrowser()")
	}
}

// TestRodRenderer_RenderFromFile_ContextDeadlineExceeded tests early exit on expired deadline.
func TestRodRenderer_RenderFromFile_ContextDeadlineExceeded(t *testing.T) {
	t.Parallel()

	renderer := newRodRenderer(testTimeout)
	defer renderer.Close()

	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := renderer.RenderFromFile(ctx, "/tmp/nonexistent.html")
	if err != context.DeadlineExceeded {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}
