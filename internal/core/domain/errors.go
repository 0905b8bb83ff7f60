package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSummary indicates a group has no summary document.
	// Callers treat this as an empty result, never as a failure.
	ErrNoSummary = errors.New("no summary available")

	// ErrArtifactMissing indicates a generated artifact has not been written yet.
	ErrArtifactMissing = errors.New("artifact not generated")

	// ErrStoreUnavailable indicates the message store could not be opened.
	ErrStoreUnavailable = errors.New("message store unavailable")

	// Authentication Errors.

	// ErrPasswordRequired indicates an empty password was submitted.
	ErrPasswordRequired = errors.New("password required")

	// ErrInvalidPassword indicates the submitted password does not match.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrInvalidSession indicates a malformed or forged session token.
	ErrInvalidSession = errors.New("invalid session")

	// ErrSessionExpired indicates the session token is older than its TTL.
	ErrSessionExpired = errors.New("session expired")

	// ErrRateLimited indicates too many login attempts.
	ErrRateLimited = errors.New("rate limited")
)
