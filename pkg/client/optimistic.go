package client

import (
	"errors"
	"sync"
)

type HolderState int

const (
	StateConfirmed HolderState = iota
	StateTentative
	// StateReverted follows a Revert until the next Begin or Commit. The
	// current value is the confirmed one.
	StateReverted
)

func (s HolderState) String() string {
	switch s {
	case StateTentative:
		return "tentative"
	case StateReverted:
		return "reverted"
	}
	return "confirmed"
}

// ErrPending is returned by Begin while another tentative value is outstanding.
var ErrPending = errors.New("optimistic update already pending")

// Holder keeps a confirmed value and at most one tentative value on top of it.
// Begin moves confirmed or reverted to tentative; Commit moves to confirmed
// and Revert to reverted.
type Holder[T any] struct {
	mu        sync.Mutex
	confirmed T
	tentative T
	state     HolderState
}

func NewHolder[T any](confirmed T) *Holder[T] { return &Holder[T]{confirmed: confirmed} }

// Current is what a reader should display: the tentative value while one is pending.
func (h *Holder[T]) Current() T {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == StateTentative {
		return h.tentative
	}
	return h.confirmed
}

func (h *Holder[T]) Confirmed() T {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.confirmed
}

func (h *Holder[T]) State() HolderState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

func (h *Holder[T]) Begin(tentative T) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == StateTentative {
		return ErrPending
	}
	h.tentative = tentative
	h.state = StateTentative
	return nil
}

// Commit replaces the confirmed value with the server's and drops the tentative one.
func (h *Holder[T]) Commit(confirmed T) {
	h.mu.Lock()
	defer h.mu.Unlock()
	var zero T
	h.confirmed = confirmed
	h.tentative = zero
	h.state = StateConfirmed
}

// Revert discards the tentative value; the confirmed one is untouched.
// It is a no-op unless a tentative value is pending.
func (h *Holder[T]) Revert() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state != StateTentative {
		return
	}
	var zero T
	h.tentative = zero
	h.state = StateReverted
}
