package countdown

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation matches every *ValidationError.
	ErrValidation = errors.New("validation failed")
	// ErrAwaitingAcknowledgement is returned by Start while a completed alarm
	// has not been acknowledged.
	ErrAwaitingAcknowledgement = errors.New("alarm awaiting acknowledgement")
)

// ValidationError reports rejected user input for a start command.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
