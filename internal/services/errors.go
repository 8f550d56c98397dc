package services

import "errors"

// Sentinel errors returned by the service layer. Handlers map these to
// HTTP statuses; anything not listed here is treated as a generic server
// failure.
var (
	// ErrUnauthorized covers bad credentials and missing, expired or
	// unknown session tokens. The causes are deliberately not
	// distinguishable from each other externally.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrEmailTaken is returned when registering with an email that
	// already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidWindow is returned for an availability query whose time
	// window is inverted. No store queries are issued in that case.
	ErrInvalidWindow = errors.New("invalid time window")

	// ErrPersistence wraps datastore write failures. It is the only
	// category callers should treat as retryable.
	ErrPersistence = errors.New("persistence failure")
)
