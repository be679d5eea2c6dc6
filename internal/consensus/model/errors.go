// Package model provides domain errors for the consensus module.
package model

import "errors"

// Consensus module errors.
var (
	ErrNotConflicted       = errors.New("submission is not conflicted")
	ErrNotRevisionRequired = errors.New("submission is not awaiting revision")
	ErrInvalidDecision     = errors.New("invalid moderator decision")
	ErrDeadlineInPast      = errors.New("revision deadline must be in the future")
)
