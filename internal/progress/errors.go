package progress

import "errors"

var (
	// ErrMissingUserID indicates a required user id was absent.
	ErrMissingUserID = errors.New("user id is required")
	// ErrMissingModulePath indicates a course or module id was absent.
	ErrMissingModulePath = errors.New("course id and module id are required")
)
