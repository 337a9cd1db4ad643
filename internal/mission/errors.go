package mission

import "errors"

var (
	// ErrNotFound indicates the requested mission does not exist.
	ErrNotFound = errors.New("mission not found")
	// ErrMissingUserID indicates a required user id was absent.
	ErrMissingUserID = errors.New("user id is required")
	// ErrMissingMissionID indicates a required mission id was absent.
	ErrMissingMissionID = errors.New("mission id is required")
)
