package queue

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ErrClosed is returned by Enqueue after Close.
var ErrClosed = errors.New("queue closed")

// Handler runs the analysis of one optimization.
type Handler func(ctx context.Context, optimizationID string) error

// InProcess is a bounded worker pool fed by a buffered channel. Close stops
// intake and waits until every accepted job has been handled.
type InProcess struct {
	jobs    chan string
	workers int
	logger  *slog.Logger

	mu     sync.RWMutex
	closed bool

	group  errgroup.Group
	ctx    context.Context
	cancel context.CancelFunc
}

func NewInProcess(workers, buffer int, logger *slog.Logger) *InProcess {
	if workers <= 0 {
		workers = 1
	}
	if buffer < 0 {
		buffer = 0
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &InProcess{
		jobs:    make(chan string, buffer),
		workers: workers,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the workers. It must be called once, before Enqueue.
func (q *InProcess) Start(h Handler) {
	for i := 0; i < q.workers; i++ {
		q.group.Go(func() error {
			for id := range q.jobs {
				if err := h(q.ctx, id); err != nil {
					q.logger.Error("deferred analysis failed",
						slog.String("optimization_id", id), slog.Any("error", err))
				}
			}
			return nil
		})
	}
}

// Enqueue blocks while the buffer is full.
func (q *InProcess) Enqueue(ctx context.Context, optimizationID string) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrClosed
	}
	select {
	case q.jobs <- optimizationID:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close drains the queue. Jobs still running see their context cancelled
// only if ctx expires first.
func (q *InProcess) Close(ctx context.Context) error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	done := make(chan struct{})
	go func() {
		_ = q.group.Wait()
		close(done)
	}()
	select {
	case <-done:
		q.cancel()
		return nil
	case <-ctx.Done():
		q.cancel()
		<-done
		return ctx.Err()
	}
}
