// Package repository provides data access layer for the assignment module.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	assignmentModel "github.com/festy23/capstone_review/internal/assignment/model"
)

// Repository defines the interface for assignment data access operations.
type Repository interface {
	// Create persists a new assignment row. A uniqueness violation on the
	// active (submission, reviewer) pair maps to ErrDuplicateAssignment.
	Create(ctx context.Context, assignment *assignmentModel.ReviewerAssignment) error

	// GetByID finds an assignment by id.
	GetByID(ctx context.Context, id int64) (*assignmentModel.ReviewerAssignment, error)

	// GetActivePair returns the active (non-cancelled, non-completed being
	// irrelevant here: completed still blocks re-assignment) assignment for
	// a (submission, reviewer) pair, or nil when none exists.
	GetActivePair(ctx context.Context, submissionID, reviewerID string) (*assignmentModel.ReviewerAssignment, error)

	// ListBySubmission returns all assignments of a submission.
	ListBySubmission(ctx context.Context, submissionID string) ([]assignmentModel.ReviewerAssignment, error)

	// ListActiveBySubmission returns the non-cancelled assignments of a submission.
	ListActiveBySubmission(ctx context.Context, submissionID string) ([]assignmentModel.ReviewerAssignment, error)

	// UpdateStatus persists a status change with its timestamp side effects.
	UpdateStatus(ctx context.Context, id int64, newStatus string, at time.Time) error

	// Delete hard-deletes an assignment row.
	Delete(ctx context.Context, id int64) error

	// HasReview reports whether a review row anchors this assignment.
	HasReview(ctx context.Context, id int64) (bool, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new assignment repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create persists a new assignment row.
func (r *repository) Create(ctx context.Context, assignment *assignmentModel.ReviewerAssignment) error {
	err := r.db.WithContext(ctx).Create(assignment).Error
	if err != nil {
		if isDuplicateError(err) {
			return assignmentModel.ErrDuplicateAssignment
		}
		return err
	}
	return nil
}

// isDuplicateError checks if error is a unique constraint violation.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

// GetByID finds an assignment by id.
func (r *repository) GetByID(ctx context.Context, id int64) (*assignmentModel.ReviewerAssignment, error) {
	var assignment assignmentModel.ReviewerAssignment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&assignment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, assignmentModel.ErrAssignmentNotFound
		}
		return nil, err
	}

	return &assignment, nil
}

// GetActivePair returns the non-cancelled assignment for a pair, or nil.
func (r *repository) GetActivePair(
	ctx context.Context,
	submissionID, reviewerID string,
) (*assignmentModel.ReviewerAssignment, error) {
	var assignment assignmentModel.ReviewerAssignment
	err := r.db.WithContext(ctx).
		Where("submission_id = ? AND reviewer_id = ? AND status != ?",
			submissionID, reviewerID, assignmentModel.StatusCancelled).
		First(&assignment).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &assignment, nil
}

// ListBySubmission returns all assignments of a submission.
func (r *repository) ListBySubmission(
	ctx context.Context,
	submissionID string,
) ([]assignmentModel.ReviewerAssignment, error) {
	var assignments []assignmentModel.ReviewerAssignment
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("assigned_at ASC, id ASC").
		Find(&assignments).Error

	if err != nil {
		return nil, err
	}

	if assignments == nil {
		return []assignmentModel.ReviewerAssignment{}, nil
	}

	return assignments, nil
}

// ListActiveBySubmission returns the non-cancelled assignments of a submission.
func (r *repository) ListActiveBySubmission(
	ctx context.Context,
	submissionID string,
) ([]assignmentModel.ReviewerAssignment, error) {
	var assignments []assignmentModel.ReviewerAssignment
	err := r.db.WithContext(ctx).
		Where("submission_id = ? AND status != ?", submissionID, assignmentModel.StatusCancelled).
		Order("assigned_at ASC, id ASC").
		Find(&assignments).Error

	if err != nil {
		return nil, err
	}

	if assignments == nil {
		return []assignmentModel.ReviewerAssignment{}, nil
	}

	return assignments, nil
}

// UpdateStatus persists a status change with its timestamp side effects.
func (r *repository) UpdateStatus(ctx context.Context, id int64, newStatus string, at time.Time) error {
	updates := map[string]interface{}{
		"status": newStatus,
	}
	switch newStatus {
	case assignmentModel.StatusInProgress:
		updates["started_at"] = at
	case assignmentModel.StatusCompleted:
		updates["completed_at"] = at
	}

	result := r.db.WithContext(ctx).
		Model(&assignmentModel.ReviewerAssignment{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return assignmentModel.ErrAssignmentNotFound
	}

	return nil
}

// Delete hard-deletes an assignment row.
func (r *repository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&assignmentModel.ReviewerAssignment{})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return assignmentModel.ErrAssignmentNotFound
	}

	return nil
}

// HasReview reports whether a review row anchors this assignment.
func (r *repository) HasReview(ctx context.Context, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("reviews").
		Where("assignment_id = ?", id).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}
