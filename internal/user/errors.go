package user

import "errors"

var (
	// ErrMissingUserID indicates a required user id was absent.
	ErrMissingUserID = errors.New("user id is required")
	// ErrMissingCourseID indicates a required course id was absent.
	ErrMissingCourseID = errors.New("course id is required")
	// ErrNegativeExperience indicates an experience mutation would drop the total below zero.
	ErrNegativeExperience = errors.New("experience must not become negative")
)
