package processor

import (
	"errors"
	"fmt"
)

// ErrMissingRequiredField matches every *MissingFieldError via errors.Is.
var ErrMissingRequiredField = errors.New("missing required field")

// MissingFieldError names a field that a content template uses
// unconditionally but the record does not carry.
type MissingFieldError struct {
	Path string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingRequiredField, e.Path)
}

func (e *MissingFieldError) Unwrap() error {
	return ErrMissingRequiredField
}
