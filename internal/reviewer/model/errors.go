package model

import "errors"

var (
	// ErrReviewerNotFound indicates that the requested reviewer does not exist.
	ErrReviewerNotFound = errors.New("reviewer not found")
	// ErrReviewerInactive indicates that the reviewer exists but is not active.
	ErrReviewerInactive = errors.New("reviewer is not active")
	// ErrInvalidReviewerID indicates that the provided reviewer ID is invalid (e.g., empty).
	ErrInvalidReviewerID = errors.New("invalid reviewer ID")
	// ErrInvalidProficiency indicates an unknown proficiency level.
	ErrInvalidProficiency = errors.New("proficiency must be one of: beginner, intermediate, advanced, expert")
)
