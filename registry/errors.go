package registry

import (
	"errors"
	"fmt"

	"github.com/linesmerrill/lostfound-api/models"
)

// Error kinds returned by the registry. Callers match them with errors.Is.
var (
	ErrInvalidTransition      = errors.New("invalid transition")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrNotFound               = errors.New("not found")
	ErrConversationClosed     = errors.New("conversation closed")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrValidation             = errors.New("validation error")
)

// TransitionError identifies the state and event of a rejected transition
type TransitionError struct {
	From  models.ItemStatus
	Event Event
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v: cannot %s an item in state %s", ErrInvalidTransition, e.Event, e.From)
}

// Unwrap lets errors.Is match ErrInvalidTransition
func (e *TransitionError) Unwrap() error {
	return ErrInvalidTransition
}

func validationf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func unauthorizedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnauthorized, fmt.Sprintf(format, args...))
}
