package validation

// ValidatePassword enforces basic password constraints.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fail("password must be at least 8 characters")
	}

	// bcrypt silently truncates input beyond 72 bytes
	if len(password) > 72 {
		return fail("password must not exceed 72 characters")
	}

	return nil
}
