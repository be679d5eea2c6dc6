// Package repository provides data access layer for the consensus module.
package repository

import (
	"context"

	"gorm.io/gorm"

	consensusModel "github.com/festy23/capstone_review/internal/consensus/model"
)

// Repository defines the interface for moderator decision data access.
type Repository interface {
	// CreateDecision records a moderator decision.
	CreateDecision(ctx context.Context, decision *consensusModel.ModeratorDecision) error

	// ListDecisions returns the decisions recorded for a submission, newest
	// first.
	ListDecisions(ctx context.Context, submissionID string) ([]consensusModel.ModeratorDecision, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new consensus repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// CreateDecision records a moderator decision.
func (r *repository) CreateDecision(ctx context.Context, decision *consensusModel.ModeratorDecision) error {
	return r.db.WithContext(ctx).Create(decision).Error
}

// ListDecisions returns the decisions recorded for a submission.
func (r *repository) ListDecisions(
	ctx context.Context,
	submissionID string,
) ([]consensusModel.ModeratorDecision, error) {
	var decisions []consensusModel.ModeratorDecision
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("decided_at DESC, id DESC").
		Find(&decisions).Error

	if err != nil {
		return nil, err
	}

	if decisions == nil {
		return []consensusModel.ModeratorDecision{}, nil
	}

	return decisions, nil
}
