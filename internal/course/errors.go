package course

import "errors"

var (
	// ErrNotFound indicates the requested course does not exist.
	ErrNotFound = errors.New("course not found")
	// ErrMissingCourseID indicates a required course id was absent.
	ErrMissingCourseID = errors.New("course id is required")
	// ErrEmptyComment indicates a comment body was empty.
	ErrEmptyComment = errors.New("comment body is required")
)
