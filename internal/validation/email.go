package validation

import (
	"net/mail"
)

// ValidateEmail validates email format and length using Go's RFC 5322 parser.
func ValidateEmail(email string) error {
	if email == "" {
		return fail("email address is required")
	}

	// RFC 5321: total address max 254 characters
	if len(email) > 254 {
		return fail("email address is too long (max 254 characters)")
	}

	_, err := mail.ParseAddress(email)
	if err != nil {
		return fail("invalid email address format")
	}

	return nil
}
