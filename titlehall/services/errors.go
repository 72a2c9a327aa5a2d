package services

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated means a mutation was attempted with no bound
	// session. Drivers must surface this, never swallow it.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrAlreadyAuthenticated means register/login was attempted while
	// a session is still bound; callers must log out first.
	ErrAlreadyAuthenticated = errors.New("a session is already active")

	// ErrDuplicateAccount means registration targeted an existing name.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrInvalidCredentials covers both unknown name and credential
	// mismatch; callers cannot distinguish the two.
	ErrInvalidCredentials = errors.New("invalid name or credential")

	// ErrPermissionDenied means an admin-only operation was attempted
	// by an unprivileged account.
	ErrPermissionDenied = errors.New("permission denied")
)

// ValidationError reports malformed input. The operation was aborted
// with no state change.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidation checks if an error is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
