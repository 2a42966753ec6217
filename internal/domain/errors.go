package domain

import "errors"

// Sentinel errors shared across services and repositories.
var (
	// ErrNotFound signals that the requested record does not exist or is not
	// visible to the caller. Controllers translate it into an empty response.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden signals that the caller failed an ownership guard.
	ErrForbidden = errors.New("forbidden")

	// ErrUserNotFound signals a missing user account.
	ErrUserNotFound = errors.New("user not found")

	// ErrDuplicateUserName signals a registration attempt with a taken username.
	ErrDuplicateUserName = errors.New("username already in use")

	// ErrInvalidCredentials signals a failed password check on login.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
