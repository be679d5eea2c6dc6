// Package model provides domain errors for the review module.
package model

import "errors"

// Review module errors.
var (
	ErrReviewNotFound        = errors.New("review not found")
	ErrReviewAlreadyExists   = errors.New("a review already exists for this assignment")
	ErrReviewNotDraft        = errors.New("review is not a draft")
	ErrReviewImmutable       = errors.New("submitted review cannot be modified")
	ErrInvalidReviewID       = errors.New("review id is required")
	ErrInvalidRecommendation = errors.New("invalid recommendation")
	ErrInvalidTransition     = errors.New("invalid review status transition")
	ErrScoreOutOfRange       = errors.New("criterion score out of range")
	ErrUnknownCriterion      = errors.New("unknown evaluation criterion")
	ErrMissingCriterion      = errors.New("missing score for an active criterion")
	ErrAssignmentNotActive   = errors.New("assignment is not active")
	ErrReviewerMismatch      = errors.New("reviewer does not own this assignment")
)
