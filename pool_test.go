package profilemd

import (
	"context"
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	auto := min(max(runtime.GOMAXPROCS(0)/cpuDivisor, MinPoolSize), MaxPoolSize)

	tests := map[int]int{
		1:  1,
		4:  4,
		16: 16, // explicit values are not capped
		0:  auto,
		-3: auto,
	}

	for workers, want := range tests {
		if got := ResolvePoolSize(workers); got != want {
			t.Errorf("ResolvePoolSize(%d) = %d, want %d", workers, got, want)
		}
	}
}

func TestNewRendererPool_Size(t *testing.T) {
	t.Parallel()

	for n, want := range map[int]int{-1: 1, 0: 1, 1: 1, 6: 6} {
		pool := NewRendererPool(n)
		if got := pool.Size(); got != want {
			t.Errorf("NewRendererPool(%d).Size() = %d, want %d", n, got, want)
		}
		_ = pool.Close()
	}
}

func TestRendererPool_Reuse(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	pool := NewRendererPool(2, WithTextWidth(40))
	defer pool.Close()

	a := mustAcquire(t, pool)
	b := mustAcquire(t, pool)
	if a == b {
		t.Fatal("two acquires returned the same renderer")
	}
	if a.cfg.textWidth != 40 || b.cfg.textWidth != 40 {
		t.Error("pool options not applied to renderers")
	}

	pool.Release(a)
	c, err := pool.Acquire(ctx)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	if c != a {
		t.Error("Acquire() built a new renderer instead of reusing the released one")
	}
	if pool.created != 2 {
		t.Errorf("created = %d, want 2", pool.created)
	}
}

func TestRendererPool_FailedCreateKeepsCapacity(t *testing.T) {
	t.Parallel()

	pool := NewRendererPool(1, WithPDFEngine("latex"))
	defer pool.Close()

	for range 2 {
		if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrInvalidPDFEngine) {
			t.Fatalf("Acquire() error = %v, want ErrInvalidPDFEngine", err)
		}
	}
	if pool.created != 0 {
		t.Errorf("created = %d, want 0", pool.created)
	}
}

func TestRendererPool_AcquireHonorsContext(t *testing.T) {
	t.Parallel()

	t.Run("already canceled", func(t *testing.T) {
		t.Parallel()

		pool := NewRendererPool(1)
		defer pool.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := pool.Acquire(ctx); !errors.Is(err, context.Canceled) {
			t.Errorf("Acquire() error = %v, want context.Canceled", err)
		}
	})

	t.Run("deadline while waiting", func(t *testing.T) {
		t.Parallel()

		pool := NewRendererPool(1)
		defer pool.Close()
		held := mustAcquire(t, pool)
		defer pool.Release(held)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()
		if _, err := pool.Acquire(ctx); !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Acquire() error = %v, want DeadlineExceeded", err)
		}
	})

	t.Run("release wakes waiter", func(t *testing.T) {
		t.Parallel()

		pool := NewRendererPool(1)
		defer pool.Close()
		held := mustAcquire(t, pool)

		got := make(chan *Renderer, 1)
		go func() {
			r, err := pool.Acquire(context.Background())
			if err != nil {
				t.Errorf("Acquire() error = %v", err)
			}
			got <- r
		}()

		time.Sleep(10 * time.Millisecond)
		pool.Release(held)

		select {
		case r := <-got:
			if r != held {
				t.Error("waiter did not receive the released renderer")
			}
		case <-time.After(5 * time.Second):
			t.Fatal("waiter never woke up")
		}
	})
}

func TestRendererPool_Contention(t *testing.T) {
	t.Parallel()

	const size, workers, rounds = 2, 40, 10

	pool := NewRendererPool(size)
	defer pool.Close()
	p := testProfile()

	var inUse, peak atomic.Int32
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range rounds {
				r, err := pool.Acquire(context.Background())
				if err != nil {
					t.Errorf("Acquire() error = %v", err)
					return
				}
				n := inUse.Add(1)
				for {
					old := peak.Load()
					if n <= old || peak.CompareAndSwap(old, n) {
						break
					}
				}
				_ = r.Markdown(p)
				inUse.Add(-1)
				pool.Release(r)
			}
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(30 * time.Second):
		t.Fatal("workers deadlocked on the pool")
	}

	if got := peak.Load(); got > size {
		t.Errorf("%d renderers in use at once, pool size is %d", got, size)
	}
	if pool.created > size {
		t.Errorf("created = %d, want at most %d", pool.created, size)
	}
}

func TestRendererPool_Close(t *testing.T) {
	t.Parallel()

	t.Run("idempotent", func(t *testing.T) {
		t.Parallel()

		pool := NewRendererPool(1)
		if err := pool.Close(); err != nil {
			t.Errorf("first Close() error = %v", err)
		}
		if err := pool.Close(); err != nil {
			t.Errorf("second Close() error = %v", err)
		}
	})

	t.Run("acquire and release after close", func(t *testing.T) {
		t.Parallel()

		pool := NewRendererPool(2)
		r := mustAcquire(t, pool)
		_ = pool.Close()

		pool.Release(r) // no-op
		if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrPoolClosed) {
			t.Errorf("Acquire() after Close error = %v, want ErrPoolClosed", err)
		}
	})

	t.Run("idle renderer not handed out after close", func(t *testing.T) {
		t.Parallel()

		pool := NewRendererPool(1)
		pool.Release(mustAcquire(t, pool))
		_ = pool.Close()

		if _, err := pool.Acquire(context.Background()); !errors.Is(err, ErrPoolClosed) {
			t.Errorf("Acquire() after Close error = %v, want ErrPoolClosed", err)
		}
	})

	t.Run("closes engines and joins errors", func(t *testing.T) {
		t.Parallel()

		pool := NewRendererPool(2)
		a := mustAcquire(t, pool)
		b := mustAcquire(t, pool)
		ea := &fakePDFEngine{closeErr: errors.New("chrome a")}
		eb := &fakePDFEngine{closeErr: errors.New("chrome b")}
		a.pdf, b.pdf = ea, eb
		pool.Release(a)
		// b is still checked out; Close must reach it anyway.

		err := pool.Close()
		if err == nil || !errors.Is(err, ea.closeErr) || !errors.Is(err, eb.closeErr) {
			t.Errorf("Close() error = %v, want both engine errors", err)
		}
		if ea.closed != 1 || eb.closed != 1 {
			t.Errorf("engines closed %d and %d times, want 1 each", ea.closed, eb.closed)
		}
	})
}

func mustAcquire(t *testing.T, pool *RendererPool) *Renderer {
	t.Helper()
	r, err := pool.Acquire(context.Background())
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	return r
}
