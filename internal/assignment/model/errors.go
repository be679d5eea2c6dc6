package model

import "errors"

var (
	// ErrAssignmentNotFound indicates that the requested assignment does not exist.
	ErrAssignmentNotFound = errors.New("assignment not found")
	// ErrDuplicateAssignment indicates an active assignment already exists
	// for the (submission, reviewer) pair.
	ErrDuplicateAssignment = errors.New("reviewer already has an active assignment for this submission")
	// ErrReviewerNotEligible indicates the reviewer fails a hard constraint
	// (supervisor of the submission, or inactive).
	ErrReviewerNotEligible = errors.New("reviewer is not eligible for this submission")
	// ErrInvalidTransition indicates an illegal assignment status change.
	ErrInvalidTransition = errors.New("invalid assignment status transition")
	// ErrAssignmentHasReview indicates the assignment cannot be removed
	// because a review anchors it.
	ErrAssignmentHasReview = errors.New("assignment has an existing review")
	// ErrInvalidAssignmentType indicates an unknown assignment type.
	ErrInvalidAssignmentType = errors.New("assignment type must be primary or secondary")
	// ErrInvalidAssignmentID indicates that the provided assignment ID is invalid.
	ErrInvalidAssignmentID = errors.New("invalid assignment ID")
	// ErrEmptyBulkRequest indicates a bulk assignment call with no items.
	ErrEmptyBulkRequest = errors.New("bulk assignment request must contain at least one item")
)
