// Package inmem implements schedule.Executor as a fixed pool of worker
// goroutines, the Go analogue of the teacher's in-memory workflow engine and
// of the original solver's rayon thread pool: work is hard-capped by a
// buffered job channel rather than spawned unbounded.
package inmem

import (
	"context"
	"errors"
	"sync"

	"github.com/hotdrink-go/hotdrink/solver/activation"
	"github.com/hotdrink-go/hotdrink/solver/schedule"
	"golang.org/x/time/rate"
)

// ErrClosed is returned by Submit once the pool has been closed.
var ErrClosed = errors.New("inmem: executor closed")

type job struct {
	task schedule.Task
	act  activation.Activation
	tok  activation.Token
}

// Executor runs schedule.Task values on a fixed number of worker goroutines.
// An optional rate.Limiter throttles submission, useful for bounding how
// fast a host dispatches method activations against a shared downstream
// resource.
type Executor struct {
	jobs    chan job
	limiter *rate.Limiter
	closeMu sync.Mutex
	closed  bool
	wg      sync.WaitGroup
}

// Option configures an Executor.
type Option func(*Executor)

// WithRateLimit throttles Submit to at most l's rate, bursting up to l's
// burst size.
func WithRateLimit(l *rate.Limiter) Option {
	return func(e *Executor) { e.limiter = l }
}

// New starts an Executor with the given number of worker goroutines and a
// queue depth of queueSize pending jobs.
func New(workers, queueSize int, opts ...Option) *Executor {
	if workers < 1 {
		workers = 1
	}
	if queueSize < 0 {
		queueSize = 0
	}
	e := &Executor{jobs: make(chan job, queueSize)}
	for _, opt := range opts {
		opt(e)
	}
	e.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go e.worker()
	}
	return e
}

func (e *Executor) worker() {
	defer e.wg.Done()
	for j := range e.jobs {
		if j.tok.Cancelled() {
			j.act.Cancel()
			continue
		}
		result, err := j.task.Run(context.Background())
		if err != nil {
			j.act.Reject([]error{err})
			continue
		}
		j.act.Resolve(result)
	}
}

// Submit implements schedule.Executor.
func (e *Executor) Submit(ctx context.Context, task schedule.Task) (activation.Activation, activation.Token, error) {
	e.closeMu.Lock()
	closed := e.closed
	e.closeMu.Unlock()
	if closed {
		return activation.Activation{}, activation.Token{}, ErrClosed
	}
	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return activation.Activation{}, activation.Token{}, err
		}
	}

	act := activation.New()
	tok := activation.NewToken(func() {})
	j := job{task: task, act: act, tok: tok}
	select {
	case e.jobs <- j:
		return act, tok, nil
	case <-ctx.Done():
		return activation.Activation{}, activation.Token{}, ctx.Err()
	}
}

// Close stops accepting new work and waits for queued jobs to finish or ctx
// to expire.
func (e *Executor) Close(ctx context.Context) error {
	e.closeMu.Lock()
	if e.closed {
		e.closeMu.Unlock()
		return nil
	}
	e.closed = true
	close(e.jobs)
	e.closeMu.Unlock()

	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
