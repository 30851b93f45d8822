package apierr

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden marks operations the caller's role does not allow.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidArgument is a generic sentinel for input rejected before any I/O.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrSaveInProgress rejects re-entrant saves on a composer draft.
	ErrSaveInProgress = errors.New("save already in progress")
)

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
