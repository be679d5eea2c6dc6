// Package repository provides data access layer for the reviewer module.
package repository

import (
	"context"
	"errors"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	reviewerModel "github.com/festy23/capstone_review/internal/reviewer/model"
)

// Repository defines the interface for reviewer data access operations.
type Repository interface {
	// GetByID finds a reviewer by reviewer_id.
	GetByID(ctx context.Context, reviewerID string) (*reviewerModel.Reviewer, error)

	// ListActive returns active reviewers, excluding the given reviewer IDs.
	ListActive(ctx context.Context, excludeIDs []string) ([]reviewerModel.Reviewer, error)

	// GetSkills returns the tagged skills of a reviewer.
	GetSkills(ctx context.Context, reviewerID string) ([]reviewerModel.ReviewerSkill, error)

	// GetPerformance returns the history aggregate for a reviewer. An empty
	// semesterID aggregates across all semesters. Returns nil without error
	// when the reviewer has no recorded history.
	GetPerformance(ctx context.Context, reviewerID, semesterID string) (*reviewerModel.ReviewerPerformance, error)

	// CohortMedianTurnaround returns the median average-turnaround-minutes
	// among reviewers with at least one completed assignment in the semester.
	// Returns 0 when the cohort is empty.
	CohortMedianTurnaround(ctx context.Context, semesterID string) (float64, error)

	// RecordAssignmentCreated increments the total assignment counter.
	RecordAssignmentCreated(ctx context.Context, reviewerID, semesterID string) error

	// RecordCompletion folds a completed assignment into the aggregate.
	RecordCompletion(ctx context.Context, reviewerID, semesterID string, turnaroundMinutes float64, onTime bool) error

	// RecordScoreGiven folds a submitted review's overall score into the aggregate.
	RecordScoreGiven(ctx context.Context, reviewerID, semesterID string, score float64) error
}

type repository struct {
	db *gorm.DB
}

// New creates a new reviewer repository instance.
func New(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetByID finds a reviewer by reviewer_id.
func (r *repository) GetByID(ctx context.Context, reviewerID string) (*reviewerModel.Reviewer, error) {
	var reviewer reviewerModel.Reviewer
	err := r.db.WithContext(ctx).
		Where("reviewer_id = ?", reviewerID).
		First(&reviewer).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, reviewerModel.ErrReviewerNotFound
		}
		return nil, err
	}

	return &reviewer, nil
}

// ListActive returns active reviewers, excluding the given reviewer IDs.
func (r *repository) ListActive(ctx context.Context, excludeIDs []string) ([]reviewerModel.Reviewer, error) {
	var reviewers []reviewerModel.Reviewer
	query := r.db.WithContext(ctx).
		Where("is_active = ?", true)

	if len(excludeIDs) > 0 {
		query = query.Where("reviewer_id NOT IN ?", excludeIDs)
	}

	err := query.Order("reviewer_id ASC").Find(&reviewers).Error
	if err != nil {
		return nil, err
	}

	if reviewers == nil {
		return []reviewerModel.Reviewer{}, nil
	}

	return reviewers, nil
}

// GetSkills returns the tagged skills of a reviewer.
func (r *repository) GetSkills(ctx context.Context, reviewerID string) ([]reviewerModel.ReviewerSkill, error) {
	var skills []reviewerModel.ReviewerSkill
	err := r.db.WithContext(ctx).
		Where("reviewer_id = ?", reviewerID).
		Order("skill_tag ASC").
		Find(&skills).Error

	if err != nil {
		return nil, err
	}

	if skills == nil {
		return []reviewerModel.ReviewerSkill{}, nil
	}

	return skills, nil
}

// GetPerformance returns the history aggregate for a reviewer.
func (r *repository) GetPerformance(
	ctx context.Context,
	reviewerID, semesterID string,
) (*reviewerModel.ReviewerPerformance, error) {
	var rows []reviewerModel.ReviewerPerformance
	query := r.db.WithContext(ctx).Where("reviewer_id = ?", reviewerID)
	if semesterID != "" {
		query = query.Where("semester_id = ?", semesterID)
	}

	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, nil
	}
	if len(rows) == 1 {
		row := rows[0]
		return &row, nil
	}

	return mergePerformanceRows(reviewerID, rows), nil
}

// mergePerformanceRows folds multiple per-semester rows into one aggregate.
func mergePerformanceRows(
	reviewerID string,
	rows []reviewerModel.ReviewerPerformance,
) *reviewerModel.ReviewerPerformance {
	merged := reviewerModel.ReviewerPerformance{ReviewerID: reviewerID}
	var turnaroundWeighted float64
	var qualityWeighted float64

	for _, row := range rows {
		merged.TotalAssignments += row.TotalAssignments
		merged.CompletedAssignments += row.CompletedAssignments
		merged.OnTimeCompletions += row.OnTimeCompletions
		merged.ScoreSum += row.ScoreSum
		merged.ScoreSumSquares += row.ScoreSumSquares
		merged.ScoreCount += row.ScoreCount
		turnaroundWeighted += row.AvgTurnaroundMinutes * float64(row.CompletedAssignments)
		qualityWeighted += row.QualityRating * float64(row.CompletedAssignments)
	}

	if merged.CompletedAssignments > 0 {
		merged.AvgTurnaroundMinutes = turnaroundWeighted / float64(merged.CompletedAssignments)
		merged.QualityRating = qualityWeighted / float64(merged.CompletedAssignments)
	}
	if merged.ScoreCount > 0 {
		merged.AvgScoreGiven = merged.ScoreSum / float64(merged.ScoreCount)
	}

	return &merged
}

// CohortMedianTurnaround returns the median average-turnaround-minutes for a semester.
func (r *repository) CohortMedianTurnaround(ctx context.Context, semesterID string) (float64, error) {
	var values []float64
	query := r.db.WithContext(ctx).
		Model(&reviewerModel.ReviewerPerformance{}).
		Where("completed_assignments > 0")
	if semesterID != "" {
		query = query.Where("semester_id = ?", semesterID)
	}

	err := query.Pluck("avg_turnaround_minutes", &values).Error
	if err != nil {
		return 0, err
	}

	if len(values) == 0 {
		return 0, nil
	}

	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return values[mid], nil
	}
	return (values[mid-1] + values[mid]) / 2, nil
}

// RecordAssignmentCreated increments the total assignment counter.
func (r *repository) RecordAssignmentCreated(ctx context.Context, reviewerID, semesterID string) error {
	return r.mutatePerformance(ctx, reviewerID, semesterID, map[string]interface{}{
		"total_assignments": gorm.Expr("total_assignments + 1"),
	})
}

// RecordCompletion folds a completed assignment into the aggregate.
func (r *repository) RecordCompletion(
	ctx context.Context,
	reviewerID, semesterID string,
	turnaroundMinutes float64,
	onTime bool,
) error {
	onTimeInc := 0
	if onTime {
		onTimeInc = 1
	}

	// All expressions read the pre-update column values, so the running
	// average and the quality rating stay consistent under concurrent
	// completions.
	return r.mutatePerformance(ctx, reviewerID, semesterID, map[string]interface{}{
		"completed_assignments": gorm.Expr("completed_assignments + 1"),
		"on_time_completions":   gorm.Expr("on_time_completions + ?", onTimeInc),
		"avg_turnaround_minutes": gorm.Expr(
			"(avg_turnaround_minutes * completed_assignments + ?) / (completed_assignments + 1)",
			turnaroundMinutes),
		"quality_rating": gorm.Expr(
			"CASE WHEN total_assignments > 0 THEN (on_time_completions + ?) * 1.0 / total_assignments ELSE quality_rating END",
			onTimeInc),
	})
}

// RecordScoreGiven folds a submitted review's overall score into the aggregate.
func (r *repository) RecordScoreGiven(
	ctx context.Context,
	reviewerID, semesterID string,
	score float64,
) error {
	return r.mutatePerformance(ctx, reviewerID, semesterID, map[string]interface{}{
		"score_sum":         gorm.Expr("score_sum + ?", score),
		"score_sum_squares": gorm.Expr("score_sum_squares + ?", score*score),
		"score_count":       gorm.Expr("score_count + 1"),
		"avg_score_given":   gorm.Expr("(score_sum + ?) / (score_count + 1)", score),
	})
}

// mutatePerformance ensures the (reviewer, semester) row exists, then applies
// the updates in a single statement so concurrent writers cannot lose each
// other's increments.
func (r *repository) mutatePerformance(
	ctx context.Context,
	reviewerID, semesterID string,
	updates map[string]interface{},
) error {
	row := reviewerModel.ReviewerPerformance{
		ReviewerID: reviewerID,
		SemesterID: semesterID,
	}
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&row).Error; err != nil {
		return err
	}

	updates["updated_at"] = time.Now()

	return r.db.WithContext(ctx).
		Model(&reviewerModel.ReviewerPerformance{}).
		Where("reviewer_id = ? AND semester_id = ?", reviewerID, semesterID).
		Updates(updates).Error
}
