// Package activation implements the single-assignment, cancellable future
// used to carry the in-flight result of one method output. It generalizes
// the teacher's channel-backed `future` (mutex + ready channel + result/err)
// into an explicit waker list so that consumers can subscribe after the
// activation has already settled, and so cancellation is observable
// without requiring every waiter to hold a context.
package activation

import (
	"context"
	"errors"
	"sync"
)

// State is the lifecycle of an Activation.
type State int

const (
	// Pending means the value is still being computed.
	Pending State = iota
	// Ready means the value was computed successfully.
	Ready
	// Errored means computation failed or was cancelled.
	Errored
)

// Activation is a single-assignment future for one variable's new value.
// It is shared by reference: Clone returns a handle to the same underlying
// state, and is cheap to pass around workers and subscribers.
type Activation struct {
	state *sharedState
}

type sharedState struct {
	mu      sync.Mutex
	state   State
	value   any
	errs    []error
	wakers  []func()
	unused  bool
}

// New creates a fresh, Pending activation.
func New() Activation {
	return Activation{state: &sharedState{}}
}

// Clone returns another handle to the same underlying activation; both
// handles observe and can resolve the same value.
func (a Activation) Clone() Activation { return a }

// Subscribe registers a callback to be invoked once the activation settles
// (becomes Ready or Errored). If it has already settled, the callback runs
// synchronously before Subscribe returns.
func (a Activation) Subscribe(waker func()) {
	s := a.state
	s.mu.Lock()
	if s.state != Pending {
		s.mu.Unlock()
		waker()
		return
	}
	s.wakers = append(s.wakers, waker)
	s.mu.Unlock()
}

// Resolve transitions the activation to Ready with the given value. It is
// a no-op if the activation has already settled.
func (a Activation) Resolve(value any) {
	s := a.state
	s.mu.Lock()
	if s.state != Pending {
		s.mu.Unlock()
		return
	}
	s.state = Ready
	s.value = value
	wakers := s.wakers
	s.wakers = nil
	s.mu.Unlock()
	for _, w := range wakers {
		w()
	}
}

// Reject transitions the activation to Errored with the given errors. It is
// a no-op if the activation has already settled.
func (a Activation) Reject(errs []error) {
	s := a.state
	s.mu.Lock()
	if s.state != Pending {
		s.mu.Unlock()
		return
	}
	s.state = Errored
	s.errs = errs
	wakers := s.wakers
	s.wakers = nil
	s.mu.Unlock()
	for _, w := range wakers {
		w()
	}
}

// Cancel rejects a still-pending activation with ErrCancelled. Consumers
// awaiting it observe Errored([]error{ErrCancelled}).
func (a Activation) Cancel() {
	a.Reject([]error{ErrCancelled})
}

// State reports the current lifecycle state.
func (a Activation) State() State {
	s := a.state
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// IsReady reports whether the activation has settled (Ready or Errored).
func (a Activation) IsReady() bool {
	return a.State() != Pending
}

// Value returns the resolved value and settlement errors. Value is nil and
// errs is nil while Pending.
func (a Activation) Value() (value any, errs []error) {
	s := a.state
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value, s.errs
}

// Await blocks until the activation settles or ctx is done, returning the
// resolved value or the settlement/context error.
func (a Activation) Await(ctx context.Context) (any, error) {
	if a.IsReady() {
		value, errs := a.Value()
		if len(errs) > 0 {
			return nil, errors.Join(errs...)
		}
		return value, nil
	}

	done := make(chan struct{})
	var once sync.Once
	a.Subscribe(func() { once.Do(func() { close(done) }) })

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-done:
		value, errs := a.Value()
		if len(errs) > 0 {
			return nil, errors.Join(errs...)
		}
		return value, nil
	}
}
