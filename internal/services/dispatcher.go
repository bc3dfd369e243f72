package services

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Dispatcher runs best-effort work off the request path. Each task gets its
// own timeout derived from a base context that Close cancels.
type Dispatcher struct {
	base    context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	log     zerolog.Logger

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(timeout time.Duration, log zerolog.Logger) *Dispatcher {
	base, cancel := context.WithCancel(context.Background())
	return &Dispatcher{base: base, cancel: cancel, timeout: timeout, log: log}
}

// Go schedules fn. Errors are logged and otherwise dropped. Tasks submitted
// after Close are discarded.
func (d *Dispatcher) Go(task string, fn func(ctx context.Context) error) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		d.log.Warn().Str("task", task).Msg("dispatcher.closed.task_dropped")
		return
	}
	d.wg.Add(1)
	d.mu.Unlock()

	go func() {
		defer d.wg.Done()
		ctx, cancel := context.WithTimeout(d.base, d.timeout)
		defer cancel()

		start := time.Now()
		if err := fn(ctx); err != nil {
			d.log.Warn().Err(err).Str("task", task).Dur("elapsed", time.Since(start)).Msg("dispatcher.task.failed")
			return
		}
		d.log.Debug().Str("task", task).Dur("elapsed", time.Since(start)).Msg("dispatcher.task.done")
	}()
}

// Close stops accepting tasks and waits for running ones until ctx is done,
// then cancels whatever is left.
func (d *Dispatcher) Close(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	defer d.cancel()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
