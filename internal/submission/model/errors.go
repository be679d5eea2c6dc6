package model

import "errors"

var (
	// ErrSubmissionNotFound indicates that the requested submission does not exist.
	ErrSubmissionNotFound = errors.New("submission not found")
	// ErrInvalidSubmissionID indicates that the provided submission ID is invalid (e.g., empty).
	ErrInvalidSubmissionID = errors.New("invalid submission ID")
	// ErrInvalidStatusTransition indicates an illegal submission status change.
	ErrInvalidStatusTransition = errors.New("invalid submission status transition")
	// ErrNoActiveCriteria indicates that the semester has no active evaluation criteria.
	ErrNoActiveCriteria = errors.New("no active evaluation criteria for semester")
)
