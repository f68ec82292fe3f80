// Package worker provides a bounded goroutine pool for CPU-bound work.
//
// Encryption and passphrase hashing are deliberately expensive operations;
// running them inline on request goroutines lets a burst of requests saturate
// every CPU. The pool caps concurrent crypto work at a fixed size, independent
// of request concurrency.
package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/panjf2000/ants/v2"
)

// ErrPoolClosed is returned when submitting to a released pool.
var ErrPoolClosed = errors.New("worker pool is closed")

// Pool wraps ants.Pool with blocking, context-aware execution.
type Pool struct {
	pool   *ants.Pool
	logger *slog.Logger
}

// NewPool creates a fixed-size worker pool. Submission blocks when all
// workers are busy, which is the backpressure the pool exists to provide.
func NewPool(size int, logger *slog.Logger) (*Pool, error) {
	panicHandler := func(p any) {
		logger.Error("worker panic recovered", slog.Any("panic", p))
	}

	antsPool, err := ants.NewPool(size,
		ants.WithPanicHandler(panicHandler),
		ants.WithNonblocking(false),
	)
	if err != nil {
		return nil, err
	}

	return &Pool{pool: antsPool, logger: logger}, nil
}

// Run executes task on a pool worker and waits for it to finish.
// Returns ctx.Err() without running the task if the context is already done.
// If the context is cancelled while the task is queued or running, Run returns
// early but the task itself runs to completion on the worker.
func (p *Pool) Run(ctx context.Context, task func()) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	done := make(chan struct{})
	if err := p.pool.Submit(func() {
		defer close(done)
		task()
	}); err != nil {
		if errors.Is(err, ants.ErrPoolClosed) {
			return ErrPoolClosed
		}
		return err
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Running returns the number of currently executing workers.
func (p *Pool) Running() int {
	return p.pool.Running()
}

// Cap returns the pool capacity.
func (p *Pool) Cap() int {
	return p.pool.Cap()
}

// Release shuts the pool down, waiting up to the timeout for running tasks.
func (p *Pool) Release(timeout time.Duration) {
	if err := p.pool.ReleaseTimeout(timeout); err != nil {
		p.logger.Warn("worker pool shutdown timeout", slog.Any("error", err))
	}
}
