package service

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an entity lookup by id comes back empty.
var ErrNotFound = errors.New("not found")

// ValidationError carries a field-level message safe to show to the end
// user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IntegrationError wraps an upstream provider failure. The wrapped error is
// for logs only; callers surface a generic message to the user.
type IntegrationError struct {
	Provider string
	Op       string
	Err      error
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Provider, e.Op, e.Err)
}

func (e *IntegrationError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsIntegration(err error) bool {
	var ie *IntegrationError
	return errors.As(err, &ie)
}
