// Package pulsepool implements a schedule.Executor backed by a
// goa.design/pulse/pool worker pool instead of an in-process goroutine pool,
// demonstrating that the scheduler (solver/schedule) is agnostic to where a
// method actually runs — the same way the teacher's engine package lets a
// WorkflowFunc run against either its in-memory engine or a Temporal-backed
// one.
//
// Tasks themselves are Go closures (schedule.Task.Run) and cannot cross a
// process boundary, so this Executor keeps the pending task in-process,
// keyed by a UUID, and dispatches only the key as the Pulse job payload. A
// single worker, registered on the same node, looks the task up and runs it.
// This still exercises goa.design/pulse/pool's job queueing, requeueing, and
// at-least-once delivery semantics; it does not turn method execution into a
// distributed computation, which would require serializable method bodies —
// out of scope for this package.
package pulsepool

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"goa.design/pulse/pool"

	"github.com/hotdrink-go/hotdrink/solver/activation"
	"github.com/hotdrink-go/hotdrink/solver/schedule"
)

// ErrClosed is returned by Submit once the Executor has been closed.
var ErrClosed = errors.New("pulsepool: executor closed")

const jobType = "hotdrink.method"

// Options configures the Executor.
type Options struct {
	// PoolName names the Pulse worker pool. New does not check or read it;
	// jobs go to the pool Node belongs to.
	PoolName string
	// Node is the Pulse pool node used to dispatch and run jobs. Required.
	Node *pool.Node
}

type pendingJob struct {
	task schedule.Task
	act  activation.Activation
	tok  activation.Token
}

// Executor dispatches schedule.Task values as jobs on a Pulse worker pool.
type Executor struct {
	node *pool.Node

	mu      sync.Mutex
	pending map[string]*pendingJob
	closed  bool
}

// New registers a worker on opts.Node and returns an Executor that dispatches
// jobs to it. The worker only ever runs locally-held tasks looked up by key,
// so New must be called once per node per process.
func New(ctx context.Context, opts Options) (*Executor, error) {
	if opts.Node == nil {
		return nil, errors.New("pulsepool: node is required")
	}
	e := &Executor{
		node:    opts.Node,
		pending: make(map[string]*pendingJob),
	}
	worker, err := opts.Node.NewWorker(ctx, pool.WithWorkerJobHandler(e.handleJob))
	if err != nil {
		return nil, fmt.Errorf("pulsepool: create worker: %w", err)
	}
	_ = worker
	return e, nil
}

// Submit enqueues task onto the Pulse pool and returns an activation that
// resolves with the task's result once a worker runs it.
func (e *Executor) Submit(ctx context.Context, task schedule.Task) (activation.Activation, activation.Token, error) {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return activation.Activation{}, activation.Token{}, ErrClosed
	}
	key := uuid.NewString()
	act := activation.New()
	job := &pendingJob{task: task, act: act}
	tok := activation.NewToken(func() {
		e.mu.Lock()
		delete(e.pending, key)
		e.mu.Unlock()
	})
	job.tok = tok
	e.pending[key] = job
	e.mu.Unlock()

	if err := e.node.DispatchJob(ctx, jobType, []byte(key)); err != nil {
		e.mu.Lock()
		delete(e.pending, key)
		e.mu.Unlock()
		return activation.Activation{}, activation.Token{}, fmt.Errorf("pulsepool: dispatch: %w", err)
	}
	return act, tok, nil
}

// handleJob is the Pulse worker callback: it looks up the pending task by
// the key carried in the job payload, runs it, and resolves its activation.
func (e *Executor) handleJob(job *pool.Job) error {
	key := string(job.Payload)
	e.mu.Lock()
	pj, ok := e.pending[key]
	if ok {
		delete(e.pending, key)
	}
	e.mu.Unlock()
	if !ok {
		return nil
	}
	if pj.tok.Cancelled() {
		return nil
	}
	result, err := pj.task.Run(context.Background())
	if err != nil {
		pj.act.Reject([]error{err})
		return nil
	}
	pj.act.Resolve(result)
	return nil
}

// Close stops dispatching new jobs and releases the underlying Pulse node.
func (e *Executor) Close(ctx context.Context) error {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return nil
	}
	e.closed = true
	e.mu.Unlock()
	return e.node.Shutdown(ctx)
}
