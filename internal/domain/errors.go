package domain

import "errors"

// ValidationError is a business-rule failure. Its reason is safe to return
// to the caller in a 400 response.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func NewValidationError(reason string) error {
	return &ValidationError{Reason: reason}
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrDuplicate marks a unique-constraint violation the database caught
// after the service-level check had already passed. Repositories wrap it so
// the transport layer can still answer with a validation failure instead of
// a 500.
var ErrDuplicate = errors.New("duplicate key")
