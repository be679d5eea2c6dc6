// Package repository provides data access layer for the review module.
package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	reviewModel "github.com/festy23/capstone_review/internal/review/model"
)

// Repository defines the interface for review data access operations.
type Repository interface {
	// Create persists a review and its criterion scores atomically.
	Create(ctx context.Context, review *reviewModel.Review, scores []reviewModel.CriterionScore) error

	// GetByID finds a review by id.
	GetByID(ctx context.Context, reviewID string) (*reviewModel.Review, error)

	// GetByAssignment returns the review anchored to an assignment, or nil
	// when none exists.
	GetByAssignment(ctx context.Context, assignmentID int64) (*reviewModel.Review, error)

	// GetScores returns the criterion scores of a review.
	GetScores(ctx context.Context, reviewID string) ([]reviewModel.CriterionScore, error)

	// UpdateStatus persists a review status change.
	UpdateStatus(ctx context.Context, reviewID, newStatus string, submittedAt *time.Time) error

	// Delete removes a review and its criterion scores atomically.
	Delete(ctx context.Context, reviewID string) error

	// ListSubmittedForRound returns the submitted reviews of a submission's
	// review round whose assignments are still non-cancelled.
	ListSubmittedForRound(ctx context.Context, submissionID string, round int) ([]reviewModel.Review, error)
}

type repository struct {
	db *gorm.DB
}

// New creates a new review repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create persists a review and its criterion scores atomically.
func (r *repository) Create(
	ctx context.Context,
	review *reviewModel.Review,
	scores []reviewModel.CriterionScore,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(review).Error; err != nil {
			return err
		}
		for i := range scores {
			scores[i].ReviewID = review.ReviewID
		}
		if len(scores) > 0 {
			if err := tx.Create(&scores).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetByID finds a review by id.
func (r *repository) GetByID(ctx context.Context, reviewID string) (*reviewModel.Review, error) {
	var review reviewModel.Review
	err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		First(&review).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reviewModel.ErrReviewNotFound
		}
		return nil, err
	}

	return &review, nil
}

// GetByAssignment returns the review anchored to an assignment, or nil.
func (r *repository) GetByAssignment(ctx context.Context, assignmentID int64) (*reviewModel.Review, error) {
	var review reviewModel.Review
	err := r.db.WithContext(ctx).
		Where("assignment_id = ?", assignmentID).
		First(&review).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &review, nil
}

// GetScores returns the criterion scores of a review.
func (r *repository) GetScores(ctx context.Context, reviewID string) ([]reviewModel.CriterionScore, error) {
	var scores []reviewModel.CriterionScore
	err := r.db.WithContext(ctx).
		Where("review_id = ?", reviewID).
		Order("criterion_id ASC").
		Find(&scores).Error

	if err != nil {
		return nil, err
	}

	if scores == nil {
		return []reviewModel.CriterionScore{}, nil
	}

	return scores, nil
}

// UpdateStatus persists a review status change.
func (r *repository) UpdateStatus(
	ctx context.Context,
	reviewID, newStatus string,
	submittedAt *time.Time,
) error {
	updates := map[string]interface{}{
		"status":     newStatus,
		"updated_at": time.Now(),
	}
	if submittedAt != nil {
		updates["submitted_at"] = *submittedAt
	}

	result := r.db.WithContext(ctx).
		Model(&reviewModel.Review{}).
		Where("review_id = ?", reviewID).
		Updates(updates)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return reviewModel.ErrReviewNotFound
	}

	return nil
}

// Delete removes a review and its criterion scores atomically.
func (r *repository) Delete(ctx context.Context, reviewID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("review_id = ?", reviewID).
			Delete(&reviewModel.CriterionScore{}).Error; err != nil {
			return err
		}

		result := tx.Where("review_id = ?", reviewID).Delete(&reviewModel.Review{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return reviewModel.ErrReviewNotFound
		}

		return nil
	})
}

// ListSubmittedForRound returns the submitted reviews that count toward
// consensus for a submission's current round.
func (r *repository) ListSubmittedForRound(
	ctx context.Context,
	submissionID string,
	round int,
) ([]reviewModel.Review, error) {
	var reviews []reviewModel.Review
	err := r.db.WithContext(ctx).
		Table("reviews").
		Select("reviews.*").
		Joins("JOIN reviewer_assignments ON reviewer_assignments.id = reviews.assignment_id").
		Where("reviews.submission_id = ?", submissionID).
		Where("reviews.review_round = ?", round).
		Where("reviews.status = ?", reviewModel.StatusSubmitted).
		Where("reviewer_assignments.status != ?", "cancelled").
		Order("reviews.submitted_at ASC, reviews.review_id ASC").
		Find(&reviews).Error

	if err != nil {
		return nil, err
	}

	if reviews == nil {
		return []reviewModel.Review{}, nil
	}

	return reviews, nil
}
