// Package service provides business logic layer for the reviewer module.
//
// The scoring here turns a reviewer's assignment/review history into the
// reliability, efficiency and consistency sub-scores used by candidate
// ranking. Each sub-score lives in [0,1] and is independently queryable.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/festy23/capstone_review/internal/config"
	reviewerModel "github.com/festy23/capstone_review/internal/reviewer/model"
	"github.com/festy23/capstone_review/internal/reviewer/repository"
)

// neutralScore is returned for reviewers with no usable history, so new
// reviewers are not penalized relative to established ones.
const neutralScore = 0.5

// Service defines the interface for reviewer performance scoring.
type Service interface {
	// Reliability returns completed/total assignments for the scope.
	Reliability(ctx context.Context, reviewerID, semesterID string) (float64, error)

	// Efficiency scores average turnaround against the cohort median.
	Efficiency(ctx context.Context, reviewerID, semesterID string) (float64, error)

	// Consistency scores the spread of the reviewer's historical overall scores.
	Consistency(ctx context.Context, reviewerID, semesterID string) (float64, error)

	// Overall combines the three sub-scores with the configured weights.
	Overall(ctx context.Context, reviewerID, semesterID string) (float64, error)

	// Breakdown returns all sub-scores plus the overall score in one call.
	Breakdown(ctx context.Context, reviewerID, semesterID string) (*reviewerModel.PerformanceBreakdown, error)
}

type service struct {
	repo   repository.Repository
	cfg    config.EngineConfig
	logger *zap.SugaredLogger
}

// New creates a new reviewer performance service instance.
func New(repo repository.Repository, cfg config.EngineConfig, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		cfg:    cfg,
		logger: logger,
	}
}

// Breakdown returns all sub-scores plus the overall score in one call.
func (s *service) Breakdown(
	ctx context.Context,
	reviewerID, semesterID string,
) (*reviewerModel.PerformanceBreakdown, error) {
	if reviewerID == "" {
		return nil, reviewerModel.ErrInvalidReviewerID
	}

	perf, err := s.repo.GetPerformance(ctx, reviewerID, semesterID)
	if err != nil {
		return nil, err
	}

	median, err := s.repo.CohortMedianTurnaround(ctx, semesterID)
	if err != nil {
		return nil, err
	}

	breakdown := &reviewerModel.PerformanceBreakdown{
		ReviewerID:  reviewerID,
		SemesterID:  semesterID,
		Reliability: reliability(perf),
		Efficiency:  efficiency(perf, median),
		Consistency: consistency(perf),
	}
	breakdown.Overall = clamp01(s.cfg.ReliabilityWeight*breakdown.Reliability +
		s.cfg.EfficiencyWeight*breakdown.Efficiency +
		s.cfg.ConsistencyWeight*breakdown.Consistency)

	return breakdown, nil
}

// Reliability returns completed/total assignments for the scope.
func (s *service) Reliability(ctx context.Context, reviewerID, semesterID string) (float64, error) {
	if reviewerID == "" {
		return 0, reviewerModel.ErrInvalidReviewerID
	}
	perf, err := s.repo.GetPerformance(ctx, reviewerID, semesterID)
	if err != nil {
		return 0, err
	}
	return reliability(perf), nil
}

// Efficiency scores average turnaround against the cohort median.
func (s *service) Efficiency(ctx context.Context, reviewerID, semesterID string) (float64, error) {
	if reviewerID == "" {
		return 0, reviewerModel.ErrInvalidReviewerID
	}
	perf, err := s.repo.GetPerformance(ctx, reviewerID, semesterID)
	if err != nil {
		return 0, err
	}
	median, err := s.repo.CohortMedianTurnaround(ctx, semesterID)
	if err != nil {
		return 0, err
	}
	return efficiency(perf, median), nil
}

// Consistency scores the spread of the reviewer's historical overall scores.
func (s *service) Consistency(ctx context.Context, reviewerID, semesterID string) (float64, error) {
	if reviewerID == "" {
		return 0, reviewerModel.ErrInvalidReviewerID
	}
	perf, err := s.repo.GetPerformance(ctx, reviewerID, semesterID)
	if err != nil {
		return 0, err
	}
	return consistency(perf), nil
}

// Overall combines the three sub-scores with the configured weights.
func (s *service) Overall(ctx context.Context, reviewerID, semesterID string) (float64, error) {
	breakdown, err := s.Breakdown(ctx, reviewerID, semesterID)
	if err != nil {
		return 0, err
	}
	return breakdown.Overall, nil
}

// reliability is completed/total, or the neutral default for missing history.
func reliability(perf *reviewerModel.ReviewerPerformance) float64 {
	if perf == nil || perf.TotalAssignments == 0 {
		return neutralScore
	}
	return clamp01(float64(perf.CompletedAssignments) / float64(perf.TotalAssignments))
}

// efficiency maps average turnaround onto (0,1] relative to the cohort
// median: equal to the median scores 0.5, faster approaches 1, slower
// approaches 0. Missing history or an empty cohort is neutral.
func efficiency(perf *reviewerModel.ReviewerPerformance, cohortMedian float64) float64 {
	if perf == nil || perf.CompletedAssignments == 0 || cohortMedian <= 0 {
		return neutralScore
	}
	if perf.AvgTurnaroundMinutes <= 0 {
		return 1
	}
	return clamp01(cohortMedian / (cohortMedian + perf.AvgTurnaroundMinutes))
}

// consistency is 1 minus the coefficient of variation of the reviewer's
// historical overall scores, capped at 1. At least two scores are required,
// otherwise the neutral default applies.
func consistency(perf *reviewerModel.ReviewerPerformance) float64 {
	if perf == nil || perf.ScoreCount < 2 {
		return neutralScore
	}
	mean := perf.ScoreSum / float64(perf.ScoreCount)
	if mean <= 0 {
		return neutralScore
	}
	cv := perf.ScoreStdDev() / mean
	if cv > 1 {
		cv = 1
	}
	return 1 - cv
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
