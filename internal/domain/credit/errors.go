package credit

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("credit not found")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrInvalidInput      = errors.New("invalid credit input")
)

// InvalidTransitionError reports an action that is not legal from the current status.
// It matches ErrInvalidTransition with errors.Is.
type InvalidTransitionError struct {
	Status Status
	Action Action
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: action %q not allowed from status %s", e.Action, e.Status)
}

func (e *InvalidTransitionError) Is(target error) bool { return target == ErrInvalidTransition }
