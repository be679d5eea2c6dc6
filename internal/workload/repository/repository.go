// Package repository provides data access layer for the workload module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/capstone_review/internal/workload/model"
)

// activeStatuses are the non-terminal assignment statuses counted as workload.
const activeStatusesCondition = "reviewer_assignments.status IN ('assigned', 'in_progress')"

// Repository defines the interface for workload data access operations.
type Repository interface {
	// CountActive returns the number of active assignments held by a reviewer,
	// optionally scoped to a semester.
	CountActive(ctx context.Context, reviewerID, semesterID string) (int, error)

	// GetReviewersWorkload returns the workload breakdown for all reviewers,
	// heaviest load first.
	GetReviewersWorkload(ctx context.Context) ([]model.ReviewerWorkload, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new workload repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// CountActive returns the number of active assignments held by a reviewer.
func (r *repository) CountActive(ctx context.Context, reviewerID, semesterID string) (int, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Table("reviewer_assignments").
		Where("reviewer_assignments.reviewer_id = ?", reviewerID).
		Where(activeStatusesCondition)

	if semesterID != "" {
		query = query.
			Joins("JOIN submissions ON submissions.submission_id = reviewer_assignments.submission_id").
			Where("submissions.semester_id = ?", semesterID)
	}

	if err := query.Count(&count).Error; err != nil {
		r.logger.Errorw("CountActive database error", "reviewer_id", reviewerID, "error", err)
		return 0, err
	}

	return int(count), nil
}

// GetReviewersWorkload returns the workload breakdown for all reviewers.
func (r *repository) GetReviewersWorkload(ctx context.Context) ([]model.ReviewerWorkload, error) {
	r.logger.Debugw("GetReviewersWorkload called")

	var workloads []model.ReviewerWorkload

	err := r.db.WithContext(ctx).
		Table("reviewers").
		Select(`
			reviewers.reviewer_id,
			reviewers.full_name,
			reviewers.is_active,
			COALESCE(SUM(CASE WHEN reviewer_assignments.status IN ('assigned', 'in_progress') THEN 1 ELSE 0 END), 0) as active_assignments,
			COALESCE(SUM(CASE WHEN reviewer_assignments.status = 'completed' THEN 1 ELSE 0 END), 0) as completed_assignments
		`).
		Joins("LEFT JOIN reviewer_assignments ON reviewers.reviewer_id = reviewer_assignments.reviewer_id").
		Group("reviewers.reviewer_id, reviewers.full_name, reviewers.is_active").
		Order("active_assignments DESC, reviewers.reviewer_id ASC").
		Scan(&workloads).Error

	if err != nil {
		r.logger.Errorw("GetReviewersWorkload database error", "error", err)
		return nil, err
	}

	if workloads == nil {
		workloads = []model.ReviewerWorkload{}
	}

	r.logger.Debugw("GetReviewersWorkload completed", "count", len(workloads))
	return workloads, nil
}
