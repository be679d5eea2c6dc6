// Package repository provides data access layer for the submission module.
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	submissionModel "github.com/festy23/capstone_review/internal/submission/model"
)

// Repository defines the interface for submission data access operations.
type Repository interface {
	// GetByID finds a submission by submission_id.
	GetByID(ctx context.Context, submissionID string) (*submissionModel.Submission, error)

	// GetRequiredTags returns the deduplicated required skill tags of a submission.
	GetRequiredTags(ctx context.Context, submissionID string) ([]string, error)

	// UpdateStatus moves a submission through its review state machine.
	// Illegal transitions fail with ErrInvalidStatusTransition.
	UpdateStatus(ctx context.Context, submissionID, newStatus string) error

	// SetFinalResult stores the final score and recommendation, finalizing
	// the submission.
	SetFinalResult(ctx context.Context, submissionID string, score float64, recommendation string) error

	// IncrementRound bumps the review round and moves the submission back
	// under review, clearing any revision-overdue marker.
	IncrementRound(ctx context.Context, submissionID string) error

	// SetRevisionDeadline records the revision deadline on a submission.
	SetRevisionDeadline(ctx context.Context, submissionID string, deadline time.Time) error

	// ListOverdueRevisions returns submissions in revision_required whose
	// deadline has elapsed and are not yet flagged.
	ListOverdueRevisions(ctx context.Context, now time.Time) ([]submissionModel.Submission, error)

	// MarkRevisionOverdue flags a single submission as overdue. Flagging an
	// already-flagged row is a no-op.
	MarkRevisionOverdue(ctx context.Context, submissionID string) error

	// ListByStatus returns submissions with the given status.
	ListByStatus(ctx context.Context, status string) ([]submissionModel.Submission, error)

	// GetActiveCriteria returns the active evaluation criteria for a semester.
	GetActiveCriteria(ctx context.Context, semesterID string) ([]submissionModel.EvaluationCriteria, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new submission repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetByID finds a submission by submission_id.
func (r *repository) GetByID(ctx context.Context, submissionID string) (*submissionModel.Submission, error) {
	var submission submissionModel.Submission
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		First(&submission).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, submissionModel.ErrSubmissionNotFound
		}
		return nil, err
	}

	return &submission, nil
}

// GetRequiredTags returns the deduplicated required skill tags of a submission.
func (r *repository) GetRequiredTags(ctx context.Context, submissionID string) ([]string, error) {
	var tags []string
	err := r.db.WithContext(ctx).
		Model(&submissionModel.SubmissionSkillTag{}).
		Where("submission_id = ?", submissionID).
		Order("skill_tag ASC").
		Distinct().
		Pluck("skill_tag", &tags).Error

	if err != nil {
		return nil, err
	}

	if tags == nil {
		return []string{}, nil
	}

	return tags, nil
}

// UpdateStatus moves a submission through its review state machine.
func (r *repository) UpdateStatus(ctx context.Context, submissionID, newStatus string) error {
	if !submissionModel.IsValidStatus(newStatus) {
		return submissionModel.ErrInvalidStatusTransition
	}

	submission, err := r.GetByID(ctx, submissionID)
	if err != nil {
		return err
	}

	if submission.Status == newStatus {
		return nil
	}
	if !submissionModel.CanTransition(submission.Status, newStatus) {
		return submissionModel.ErrInvalidStatusTransition
	}

	return r.db.WithContext(ctx).
		Model(&submissionModel.Submission{}).
		Where("submission_id = ?", submissionID).
		Updates(map[string]interface{}{
			"status":     newStatus,
			"updated_at": time.Now(),
		}).Error
}

// SetFinalResult stores the final score and recommendation.
func (r *repository) SetFinalResult(
	ctx context.Context,
	submissionID string,
	score float64,
	recommendation string,
) error {
	result := r.db.WithContext(ctx).
		Model(&submissionModel.Submission{}).
		Where("submission_id = ?", submissionID).
		Updates(map[string]interface{}{
			"status":               submissionModel.StatusFinalized,
			"final_score":          score,
			"final_recommendation": recommendation,
			"updated_at":           time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return submissionModel.ErrSubmissionNotFound
	}

	return nil
}

// IncrementRound bumps the review round and moves the submission back under review.
func (r *repository) IncrementRound(ctx context.Context, submissionID string) error {
	result := r.db.WithContext(ctx).
		Model(&submissionModel.Submission{}).
		Where("submission_id = ? AND status = ?", submissionID, submissionModel.StatusRevisionRequired).
		Updates(map[string]interface{}{
			"status":            submissionModel.StatusUnderReview,
			"review_round":      gorm.Expr("review_round + 1"),
			"revision_overdue":  false,
			"revision_deadline": nil,
			"updated_at":        time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return submissionModel.ErrInvalidStatusTransition
	}

	return nil
}

// SetRevisionDeadline records the revision deadline on a submission.
func (r *repository) SetRevisionDeadline(ctx context.Context, submissionID string, deadline time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&submissionModel.Submission{}).
		Where("submission_id = ?", submissionID).
		Updates(map[string]interface{}{
			"revision_deadline": deadline,
			"revision_overdue":  false,
			"updated_at":        time.Now(),
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return submissionModel.ErrSubmissionNotFound
	}

	return nil
}

// ListOverdueRevisions returns unflagged revision_required submissions past deadline.
func (r *repository) ListOverdueRevisions(
	ctx context.Context,
	now time.Time,
) ([]submissionModel.Submission, error) {
	var submissions []submissionModel.Submission
	err := r.db.WithContext(ctx).
		Where("status = ?", submissionModel.StatusRevisionRequired).
		Where("revision_overdue = ?", false).
		Where("revision_deadline IS NOT NULL AND revision_deadline < ?", now).
		Order("submission_id ASC").
		Find(&submissions).Error

	if err != nil {
		return nil, err
	}

	if submissions == nil {
		return []submissionModel.Submission{}, nil
	}

	return submissions, nil
}

// MarkRevisionOverdue flags a single submission as overdue.
func (r *repository) MarkRevisionOverdue(ctx context.Context, submissionID string) error {
	// The status and overdue guards make re-running the sweep a no-op.
	return r.db.WithContext(ctx).
		Model(&submissionModel.Submission{}).
		Where("submission_id = ? AND status = ? AND revision_overdue = ?",
			submissionID, submissionModel.StatusRevisionRequired, false).
		Updates(map[string]interface{}{
			"revision_overdue": true,
			"updated_at":       time.Now(),
		}).Error
}

// ListByStatus returns submissions with the given status.
func (r *repository) ListByStatus(ctx context.Context, status string) ([]submissionModel.Submission, error) {
	var submissions []submissionModel.Submission
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("updated_at ASC").
		Find(&submissions).Error

	if err != nil {
		return nil, err
	}

	if submissions == nil {
		return []submissionModel.Submission{}, nil
	}

	return submissions, nil
}

// GetActiveCriteria returns the active evaluation criteria for a semester.
func (r *repository) GetActiveCriteria(
	ctx context.Context,
	semesterID string,
) ([]submissionModel.EvaluationCriteria, error) {
	var criteria []submissionModel.EvaluationCriteria
	err := r.db.WithContext(ctx).
		Where("semester_id = ? AND is_active = ?", semesterID, true).
		Order("name ASC").
		Find(&criteria).Error

	if err != nil {
		return nil, err
	}

	if criteria == nil {
		return []submissionModel.EvaluationCriteria{}, nil
	}

	return criteria, nil
}
