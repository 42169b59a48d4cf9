package profilemd

import (
	"context"
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps browser instances to limit memory (~200MB each).
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for Chrome child processes.
	cpuDivisor = 2
)

// RendererPool hands out Renderers to concurrent batch workers. Each
// renderer owns its PDF engine, so with the browser engine every worker gets
// its own Chrome. Renderers are built lazily, up to the pool size.
type RendererPool struct {
	size      int
	opts      []Option
	renderers []*Renderer
	sem       chan *Renderer
	mu        sync.Mutex
	created   int
	closed    bool
}

// NewRendererPool creates a pool with capacity for n renderers built with opts.
func NewRendererPool(n int, opts ...Option) *RendererPool {
	if n < 1 {
		n = 1
	}

	return &RendererPool{
		size:      n,
		opts:      opts,
		renderers: make([]*Renderer, 0, n),
		sem:       make(chan *Renderer, n),
	}
}

// Acquire returns an idle renderer, creates one while the pool is below
// capacity, or waits for a Release. It returns ctx.Err() if ctx ends first
// and ErrPoolClosed after Close.
func (p *RendererPool) Acquire(ctx context.Context) (*Renderer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	select {
	case r, ok := <-p.sem:
		return p.idle(r, ok)
	default:
	}

	if r, grew, err := p.grow(); grew {
		return r, err
	}

	select {
	case r, ok := <-p.sem:
		return p.idle(r, ok)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// idle rejects renderers still buffered in the channel when Close ran.
func (p *RendererPool) idle(r *Renderer, ok bool) (*Renderer, error) {
	if !ok {
		return nil, ErrPoolClosed
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrPoolClosed
	}
	return r, nil
}

// grow builds a new renderer when capacity remains. grew is false when the
// pool is full and the caller must wait.
func (p *RendererPool) grow() (r *Renderer, grew bool, err error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, true, ErrPoolClosed
	}
	if p.created >= p.size {
		p.mu.Unlock()
		return nil, false, nil
	}
	p.created++
	p.mu.Unlock()

	// NewRenderer may start an engine; keep it outside the lock.
	r, err = NewRenderer(p.opts...)

	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		p.created--
		return nil, true, err
	}
	if p.closed {
		_ = r.Close()
		return nil, true, ErrPoolClosed
	}
	p.renderers = append(p.renderers, r)
	return r, true, nil
}

// Release returns a renderer to the pool.
// The lock is held while sending so Close cannot close the channel mid-send;
// the channel has room for every renderer, so the send never blocks.
func (p *RendererPool) Release(r *Renderer) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return
	}
	p.sem <- r
}

// Close releases all browser resources.
// Returns an aggregated error if multiple renderers fail to close.
func (p *RendererPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	renderers := p.renderers
	p.mu.Unlock()

	var errs []error
	for _, r := range renderers {
		if err := r.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *RendererPool) Size() int {
	return p.size
}

// ResolvePoolSize determines the worker count.
// Priority: explicit workers > GOMAXPROCS-based calculation.
func ResolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	n := runtime.GOMAXPROCS(0) / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
