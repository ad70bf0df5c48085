// Package schedule dispatches a Plan's method activations onto an Executor,
// tracking each variable's current activation so that a later edit can
// supersede and cancel any activation still in flight for it.
package schedule

import (
	"context"

	"github.com/hotdrink-go/hotdrink/solver/activation"
)

// Task is one unit of work an Executor runs: applying a method body to the
// values of its input activations.
type Task struct {
	// Name identifies the task for logging/tracing (typically
	// "<constraint>.<method>").
	Name string
	// Run performs the work. Tasks built by Run first block until their
	// input activations settle; cancellation is cooperative via ctx.
	Run func(ctx context.Context) ([]any, error)
}

// Executor runs Tasks, returning an Activation that settles with the task's
// result (as a []any) and a Token the caller can use to cancel it early.
// Implementations may run tasks inline (for tests), on a fixed worker pool,
// or through a Pulse worker pool.
type Executor interface {
	// Submit schedules a task for execution. It must not block waiting for
	// the task to finish; a closed pool is reported as an error. An
	// implementation with a bounded queue may block while the queue is full.
	Submit(ctx context.Context, task Task) (activation.Activation, activation.Token, error)

	// Close stops accepting new tasks and releases pool resources. Tasks
	// already in flight are allowed to finish.
	Close(ctx context.Context) error
}
