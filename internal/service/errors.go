package service

import "errors"

var (
	// ErrForbidden means the resource exists but belongs to another user.
	ErrForbidden = errors.New("permission denied")

	ErrUnknownUser   = errors.New("user does not exist")
	ErrWrongPassword = errors.New("wrong password")
	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already in use")
	ErrInvalidToken  = errors.New("invalid or expired token")
)
