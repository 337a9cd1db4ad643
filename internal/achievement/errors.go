package achievement

import "errors"

var (
	// ErrNotFound indicates the requested achievement does not exist.
	ErrNotFound = errors.New("achievement not found")
	// ErrMissingUserID indicates a required user id was absent.
	ErrMissingUserID = errors.New("user id is required")
)
