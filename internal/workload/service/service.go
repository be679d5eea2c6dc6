// Package service provides business logic layer for the workload module.
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/festy23/capstone_review/internal/workload/model"
	"github.com/festy23/capstone_review/internal/workload/repository"
)

// Service defines the interface for workload business logic operations.
type Service interface {
	// GetReviewersWorkload returns the workload breakdown for all reviewers.
	GetReviewersWorkload(ctx context.Context) (*model.ReviewersWorkloadResponse, error)
}

type service struct {
	repo   repository.Repository
	logger *zap.SugaredLogger
}

// New creates a new workload service instance.
func New(repo repository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		logger: logger,
	}
}

// GetReviewersWorkload returns the workload breakdown for all reviewers.
func (s *service) GetReviewersWorkload(ctx context.Context) (*model.ReviewersWorkloadResponse, error) {
	s.logger.Debugw("GetReviewersWorkload called")

	workloads, err := s.repo.GetReviewersWorkload(ctx)
	if err != nil {
		s.logger.Errorw("GetReviewersWorkload failed", "error", err)
		return nil, err
	}

	if workloads == nil {
		workloads = []model.ReviewerWorkload{}
	}

	s.logger.Infow("GetReviewersWorkload completed", "count", len(workloads))
	return &model.ReviewersWorkloadResponse{
		Reviewers: workloads,
		Total:     len(workloads),
	}, nil
}
