// Package validation checks user-supplied input. Every failure is an *Error
// so handlers can answer it with a 400 regardless of which check tripped.
package validation

// Error is a user-input validation failure.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func fail(message string) error {
	return &Error{Message: message}
}
