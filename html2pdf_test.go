package profilemd

// Notes:
// - Tests browserPDFEngine with a mock pdfRenderer; no browser is launched
// - Real Chrome rendering is covered by the integration build tag

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

var _ pdfRenderer = (*mockRenderer)(nil)

// mockRenderer implements pdfRenderer for testing.
type mockRenderer struct {
	Result     []byte
	Err        error
	CalledWith string
	Content    string
	Closed     bool
}

func (m *mockRenderer) RenderFromFile(_ context.Context, filePath string) ([]byte, error) {
	m.CalledWith = filePath
	data, err := os.ReadFile(filePath) // #nosec G304 -- test temp file
	if err == nil {
		m.Content = string(data)
	}
	return m.Result, m.Err
}

func (m *mockRenderer) Close() error {
	m.Closed = true
	return nil
}

func TestBrowserPDFEngine_ToPDF(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		html       string
		mock       *mockRenderer
		wantErr    error
		wantAnyErr bool
	}{
		{
			name: "successful render returns PDF bytes",
			html: "<html><body>Hi 👋, I'm Ada</body></html>",
			mock: &mockRenderer{Result: []byte("%PDF-1.4 fake pdf content")},
		},
		{
			name:       "renderer error propagates",
			html:       "<html></html>",
			mock:       &mockRenderer{Err: errors.New("browser crashed")},
			wantAnyErr: true,
		},
		{
			name:    "sentinel error is preserved",
			html:    "<html></html>",
			mock:    &mockRenderer{Err: ErrBrowserConnect},
			wantErr: ErrBrowserConnect,
		},
		{
			name: "empty HTML is valid",
			html: "",
			mock: &mockRenderer{Result: []byte("%PDF-1.4")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			engine := &browserPDFEngine{renderer: tt.mock}
			result, err := engine.ToPDF(context.Background(), &pdfSource{HTML: tt.html})

			if tt.wantAnyErr || tt.wantErr != nil {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("expected error %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if string(result) != string(tt.mock.Result) {
				t.Errorf("expected result %q, got %q", tt.mock.Result, result)
			}
			if !strings.Contains(tt.mock.CalledWith, "profilemd-") || !strings.HasSuffix(tt.mock.CalledWith, ".html") {
				t.Errorf("expected temp .html path with 'profilemd-', got %q", tt.mock.CalledWith)
			}
			if tt.mock.Content != tt.html {
				t.Errorf("temp file content = %q, want %q", tt.mock.Content, tt.html)
			}
		})
	}
}

func TestBrowserPDFEngine_RemovesTempFile(t *testing.T) {
	t.Parallel()

	mock := &mockRenderer{Result: []byte("%PDF-1.4")}
	engine := &browserPDFEngine{renderer: mock}

	if _, err := engine.ToPDF(context.Background(), &pdfSource{HTML: "<p>x</p>"}); err != nil {
		t.Fatalf("ToPDF() error = %v", err)
	}
	if _, err := os.Stat(mock.CalledWith); !os.IsNotExist(err) {
		t.Errorf("temp file %s still exists after ToPDF", mock.CalledWith)
	}
}

func TestNewBrowserPDFEngine(t *testing.T) {
	t.Parallel()

	engine := newBrowserPDFEngine(defaultTimeout)

	rod, ok := engine.renderer.(*rodRenderer)
	if !ok {
		t.Fatalf("renderer = %T, want *rodRenderer", engine.renderer)
	}
	if rod.timeout != defaultTimeout {
		t.Errorf("expected timeout %v, got %v", defaultTimeout, rod.timeout)
	}
	if rod.browser != nil {
		t.Error("browser should be launched lazily")
	}
}

func TestBrowserPDFEngine_Close(t *testing.T) {
	t.Parallel()

	t.Run("closes renderer", func(t *testing.T) {
		t.Parallel()

		mock := &mockRenderer{}
		engine := &browserPDFEngine{renderer: mock}
		if err := engine.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
		if !mock.Closed {
			t.Error("renderer was not closed")
		}
	})

	t.Run("nil renderer", func(t *testing.T) {
		t.Parallel()

		engine := &browserPDFEngine{}
		if err := engine.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})
}

func TestRodRenderer_Close_Idempotent(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(defaultTimeout)

	// Never launched: both closes are no-ops.
	if err := r.Close(); err != nil {
		t.Errorf("first Close() error = %v", err)
	}
	if err := r.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestRodRenderer_CanceledContext(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(defaultTimeout)
	defer r.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Returns before any browser is launched.
	_, err := r.RenderFromFile(ctx, "/nonexistent.html")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("RenderFromFile() error = %v, want context.Canceled", err)
	}
	if r.browser != nil {
		t.Error("browser launched despite canceled context")
	}
}
