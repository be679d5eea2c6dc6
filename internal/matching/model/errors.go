package model

import "errors"

var (
	// ErrNoEligibleCandidates indicates that no reviewer satisfied the
	// ranking constraints.
	ErrNoEligibleCandidates = errors.New("no eligible reviewer candidates")
	// ErrNoRequiredTags indicates that the submission has no required skill
	// tags, making skill-based ranking meaningless.
	ErrNoRequiredTags = errors.New("submission has no required skill tags")
)
