package activation

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrCancelled is the error an Activation settles with when Cancel is
// called while it is still Pending.
var ErrCancelled = errors.New("activation: cancelled")

// Token is a weak handle used to cancel a still-running method activation.
// It flips to "unused" once every strong reference has been released with
// Drop, so a late call to Cancel after the activation
// has already been superseded is observably a no-op rather than a crash.
type Token struct {
	state *tokenState
}

type tokenState struct {
	refs      atomic.Int64
	mu        sync.Mutex
	cancelled bool
	onCancel  func()
}

// NewToken creates a cancellation token with one strong reference held by
// the caller (typically the executor task wrapping a method activation).
// onCancel is invoked at most once, the first time Cancel is called while
// at least one strong reference is alive.
func NewToken(onCancel func()) Token {
	t := &tokenState{onCancel: onCancel}
	t.refs.Store(1)
	return Token{state: t}
}

// Clone returns another strong reference to the same token.
func (t Token) Clone() Token {
	t.state.refs.Add(1)
	return t
}

// Drop releases one strong reference. Once the last strong reference is
// dropped, the token becomes unused: Cancel becomes a no-op.
func (t Token) Drop() {
	t.state.refs.Add(-1)
}

// Unused reports whether every strong reference to this token has been
// dropped.
func (t Token) Unused() bool {
	return t.state.refs.Load() <= 0
}

// Cancel requests cancellation. It is a no-op if the token is Unused or
// cancellation was already requested.
func (t Token) Cancel() {
	if t.Unused() {
		return
	}
	s := t.state
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	s.cancelled = true
	cb := s.onCancel
	s.mu.Unlock()
	if cb != nil {
		cb()
	}
}

// Cancelled reports whether Cancel has been called on this token (or a
// clone of it).
func (t Token) Cancelled() bool {
	s := t.state
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}
