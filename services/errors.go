package services

import "errors"

// Error taxonomy surfaced to the HTTP layer. Controllers translate these
// into status codes; raw storage errors are never sent to clients.
var (
	// ErrAccessDenied: authenticated caller is not a member of the profile,
	// or the member's role is insufficient for the action (403).
	ErrAccessDenied = errors.New("access denied or insufficient permissions")

	// ErrNotFound: resource genuinely absent, scoped by membership so the
	// response never leaks existence to non-members (404).
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials: bad email/password pair on login (401).
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken: signup with an already-registered email (400).
	ErrEmailTaken = errors.New("user already exists")

	// ErrProfileExists: duplicate profile name under the same owner (400).
	ErrProfileExists = errors.New("care profile with this name already exists")

	// ErrNoEntries: summary requested over a window with no entries (400).
	ErrNoEntries = errors.New("no entries found for this period")
)

// ValidationError reports malformed or missing input against a schema (400).
type ValidationError struct {
	msg string
}

func NewValidationError(msg string) *ValidationError {
	return &ValidationError{msg: msg}
}

func (e *ValidationError) Error() string { return e.msg }
