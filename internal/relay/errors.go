package relay

import (
	"errors"
	"fmt"
)

// ErrValidation marks every rejection that happens before the store is
// mutated. Match it with errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError names the field that was rejected.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Unwrap() error { return ErrValidation }

// MissingField reports a required request field that was absent or empty.
func MissingField(field string) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf("Missing '%s' field", field)}
}
