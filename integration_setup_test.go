//go:build integration

package profilemd

// Notes:
// - Integration test setup: shared browser RendererPool for all integration tests
// - testPool is initialized in TestMain and closed after all tests complete
// - acquireRenderer helper provides automatic cleanup via t.Cleanup()
// - Pool size is capped at 4 for CI environments to avoid resource exhaustion

import (
	"context"
	"os"
	"testing"
	"time"
)

// testTimeout is the standard timeout for integration test operations.
const testTimeout = 30 * time.Second

// testPool is the shared browser RendererPool for all integration tests.
var testPool *RendererPool

func TestMain(m *testing.M) {
	poolSize := min(ResolvePoolSize(0), 4)

	testPool = NewRendererPool(poolSize,
		WithPDFEngine(PDFEngineBrowser),
		WithTimeout(testTimeout),
	)

	code := m.Run()

	testPool.Close()
	os.Exit(code)
}

// acquireRenderer gets a browser renderer from the shared pool with automatic cleanup.
func acquireRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := testPool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	t.Cleanup(func() { testPool.Release(r) })
	return r
}
