// Package service provides business logic layer for the review module.
//
// A review is anchored to exactly one assignment. Its overall score is the
// criteria-weighted mean of the per-criterion scores against the semester's
// active evaluation criteria. Submitting a review completes the assignment,
// feeds the reviewer's performance history and re-runs consensus aggregation
// on the submission.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	assignmentModel "github.com/festy23/capstone_review/internal/assignment/model"
	assignmentService "github.com/festy23/capstone_review/internal/assignment/service"
	consensusService "github.com/festy23/capstone_review/internal/consensus/service"
	reviewModel "github.com/festy23/capstone_review/internal/review/model"
	reviewRepository "github.com/festy23/capstone_review/internal/review/repository"
	reviewerRepository "github.com/festy23/capstone_review/internal/reviewer/repository"
	submissionModel "github.com/festy23/capstone_review/internal/submission/model"
	submissionRepository "github.com/festy23/capstone_review/internal/submission/repository"
)

// Service defines the interface for review business logic operations.
type Service interface {
	// CreateSubmissionReview creates a review against an active assignment,
	// as a draft or submitted immediately.
	CreateSubmissionReview(
		ctx context.Context,
		req *reviewModel.CreateReviewRequest,
	) (*reviewModel.ReviewResponse, error)

	// GetReview returns a review with its criterion scores.
	GetReview(ctx context.Context, reviewID string) (*reviewModel.ReviewResponse, error)

	// GetReviewByAssignment returns the review anchored to an assignment.
	GetReviewByAssignment(ctx context.Context, assignmentID int64) (*reviewModel.ReviewResponse, error)

	// SubmitReview promotes a draft to submitted with all submit side
	// effects.
	SubmitReview(ctx context.Context, reviewID string) (*reviewModel.ReviewResponse, error)

	// WithdrawReview retracts a submitted review. The only mutation allowed
	// on a submitted review.
	WithdrawReview(ctx context.Context, reviewID string) (*reviewModel.ReviewResponse, error)

	// DeleteDraft removes a draft review outright.
	DeleteDraft(ctx context.Context, reviewID string) error
}

type service struct {
	reviews     reviewRepository.Repository
	submissions submissionRepository.Repository
	reviewers   reviewerRepository.Repository
	assignments assignmentService.Service
	consensus   consensusService.Service
	logger      *zap.SugaredLogger
}

// New creates a new review service instance.
func New(
	reviews reviewRepository.Repository,
	submissions submissionRepository.Repository,
	reviewers reviewerRepository.Repository,
	assignments assignmentService.Service,
	consensus consensusService.Service,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		reviews:     reviews,
		submissions: submissions,
		reviewers:   reviewers,
		assignments: assignments,
		consensus:   consensus,
		logger:      logger,
	}
}

// CreateSubmissionReview creates a review against an active assignment.
func (s *service) CreateSubmissionReview(
	ctx context.Context,
	req *reviewModel.CreateReviewRequest,
) (*reviewModel.ReviewResponse, error) {
	if !reviewModel.IsValidRecommendation(req.Recommendation) {
		return nil, reviewModel.ErrInvalidRecommendation
	}

	assignment, err := s.assignments.GetAssignment(ctx, req.AssignmentID)
	if err != nil {
		return nil, err
	}
	if !assignmentModel.IsActive(assignment.Status) {
		return nil, reviewModel.ErrAssignmentNotActive
	}
	if assignment.ReviewerID != req.ReviewerID {
		return nil, reviewModel.ErrReviewerMismatch
	}

	submission, err := s.submissions.GetByID(ctx, assignment.SubmissionID)
	if err != nil {
		return nil, err
	}

	criteria, err := s.submissions.GetActiveCriteria(ctx, submission.SemesterID)
	if err != nil {
		return nil, err
	}
	if len(criteria) == 0 {
		return nil, submissionModel.ErrNoActiveCriteria
	}

	overall, scores, err := weightedOverall(criteria, req.CriterionScores)
	if err != nil {
		return nil, err
	}

	existing, err := s.reviews.GetByAssignment(ctx, req.AssignmentID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		// A held-back draft may be replaced wholesale; anything else
		// anchors history and blocks re-creation.
		if existing.Status != reviewModel.StatusDraft {
			return nil, reviewModel.ErrReviewAlreadyExists
		}
		if err := s.reviews.Delete(ctx, existing.ReviewID); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	review := &reviewModel.Review{
		ReviewID:       uuid.NewString(),
		AssignmentID:   req.AssignmentID,
		SubmissionID:   assignment.SubmissionID,
		ReviewerID:     req.ReviewerID,
		ReviewRound:    submission.ReviewRound,
		Status:         reviewModel.StatusDraft,
		OverallScore:   overall,
		Recommendation: req.Recommendation,
		Comments:       req.Comments,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.reviews.Create(ctx, review, scores); err != nil {
		return nil, err
	}

	s.logger.Infow("review created",
		"review_id", review.ReviewID,
		"assignment_id", req.AssignmentID,
		"submission_id", assignment.SubmissionID,
		"overall_score", overall,
		"draft", req.Draft)

	if req.Draft {
		return s.GetReview(ctx, review.ReviewID)
	}

	return s.SubmitReview(ctx, review.ReviewID)
}

// GetReview returns a review with its criterion scores.
func (s *service) GetReview(ctx context.Context, reviewID string) (*reviewModel.ReviewResponse, error) {
	if reviewID == "" {
		return nil, reviewModel.ErrInvalidReviewID
	}

	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	scores, err := s.reviews.GetScores(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	return reviewModel.NewReviewResponse(review, scores), nil
}

// GetReviewByAssignment returns the review anchored to an assignment.
func (s *service) GetReviewByAssignment(ctx context.Context, assignmentID int64) (*reviewModel.ReviewResponse, error) {
	if assignmentID <= 0 {
		return nil, assignmentModel.ErrInvalidAssignmentID
	}

	review, err := s.reviews.GetByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, reviewModel.ErrReviewNotFound
	}

	return s.GetReview(ctx, review.ReviewID)
}

// SubmitReview promotes a draft to submitted.
func (s *service) SubmitReview(ctx context.Context, reviewID string) (*reviewModel.ReviewResponse, error) {
	if reviewID == "" {
		return nil, reviewModel.ErrInvalidReviewID
	}

	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !reviewModel.CanTransition(review.Status, reviewModel.StatusSubmitted) {
		return nil, reviewModel.ErrInvalidTransition
	}

	now := time.Now()
	if err := s.reviews.UpdateStatus(ctx, reviewID, reviewModel.StatusSubmitted, &now); err != nil {
		return nil, err
	}

	s.completeAssignment(ctx, review)

	submission, err := s.submissions.GetByID(ctx, review.SubmissionID)
	if err == nil {
		if err := s.reviewers.RecordScoreGiven(ctx, review.ReviewerID, submission.SemesterID, review.OverallScore); err != nil {
			s.logger.Warnw("failed to record given score in performance history",
				"review_id", reviewID, "reviewer_id", review.ReviewerID, "error", err)
		}
	}

	// The review itself stays submitted even if aggregation cannot run
	// right now; the next submit or a manual re-aggregation will catch up.
	if err := s.consensus.AggregateSubmissionReview(ctx, review.SubmissionID); err != nil {
		s.logger.Errorw("consensus aggregation failed after review submission",
			"review_id", reviewID, "submission_id", review.SubmissionID, "error", err)
	}

	s.logger.Infow("review submitted",
		"review_id", reviewID,
		"submission_id", review.SubmissionID,
		"recommendation", review.Recommendation)

	return s.GetReview(ctx, reviewID)
}

// WithdrawReview retracts a submitted review.
func (s *service) WithdrawReview(ctx context.Context, reviewID string) (*reviewModel.ReviewResponse, error) {
	if reviewID == "" {
		return nil, reviewModel.ErrInvalidReviewID
	}

	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if !reviewModel.CanTransition(review.Status, reviewModel.StatusWithdrawn) {
		return nil, reviewModel.ErrInvalidTransition
	}

	submission, err := s.submissions.GetByID(ctx, review.SubmissionID)
	if err != nil {
		return nil, err
	}
	// A finalized outcome is settled; pulling one of its reviews would
	// silently invalidate it.
	if submission.Status == submissionModel.StatusFinalized {
		return nil, reviewModel.ErrReviewImmutable
	}

	if err := s.reviews.UpdateStatus(ctx, reviewID, reviewModel.StatusWithdrawn, nil); err != nil {
		return nil, err
	}

	s.logger.Infow("review withdrawn",
		"review_id", reviewID,
		"submission_id", review.SubmissionID)

	return s.GetReview(ctx, reviewID)
}

// DeleteDraft removes a draft review outright.
func (s *service) DeleteDraft(ctx context.Context, reviewID string) error {
	if reviewID == "" {
		return reviewModel.ErrInvalidReviewID
	}

	review, err := s.reviews.GetByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review.Status != reviewModel.StatusDraft {
		return reviewModel.ErrReviewNotDraft
	}

	if err := s.reviews.Delete(ctx, review.ReviewID); err != nil {
		return err
	}

	s.logger.Infow("draft review deleted",
		"review_id", reviewID,
		"assignment_id", review.AssignmentID)

	return nil
}

// completeAssignment walks the assignment to completed. Best-effort: the
// submitted review is the source of truth, bookkeeping failures are logged.
func (s *service) completeAssignment(ctx context.Context, review *reviewModel.Review) {
	assignment, err := s.assignments.GetAssignment(ctx, review.AssignmentID)
	if err != nil {
		s.logger.Warnw("failed to load assignment for completion",
			"review_id", review.ReviewID, "assignment_id", review.AssignmentID, "error", err)
		return
	}

	if assignment.Status == assignmentModel.StatusAssigned {
		if _, err := s.assignments.UpdateAssignmentStatus(ctx, review.AssignmentID, assignmentModel.StatusInProgress); err != nil {
			s.logger.Warnw("failed to start assignment on review submission",
				"assignment_id", review.AssignmentID, "error", err)
			return
		}
		assignment.Status = assignmentModel.StatusInProgress
	}

	if assignment.Status == assignmentModel.StatusInProgress {
		if _, err := s.assignments.UpdateAssignmentStatus(ctx, review.AssignmentID, assignmentModel.StatusCompleted); err != nil {
			s.logger.Warnw("failed to complete assignment on review submission",
				"assignment_id", review.AssignmentID, "error", err)
		}
	}
}

// weightedOverall validates the per-criterion scores against the active
// criteria and computes the weighted overall score.
func weightedOverall(
	criteria []submissionModel.EvaluationCriteria,
	inputs []reviewModel.CriterionScoreInput,
) (float64, []reviewModel.CriterionScore, error) {
	byID := make(map[int64]submissionModel.EvaluationCriteria, len(criteria))
	for _, criterion := range criteria {
		byID[criterion.ID] = criterion
	}

	seen := make(map[int64]bool, len(inputs))
	scores := make([]reviewModel.CriterionScore, 0, len(inputs))

	var weightedSum, weightSum float64
	for _, input := range inputs {
		criterion, ok := byID[input.CriterionID]
		if !ok || seen[input.CriterionID] {
			return 0, nil, reviewModel.ErrUnknownCriterion
		}
		seen[input.CriterionID] = true

		if input.Score < 0 || input.Score > criterion.MaxScore {
			return 0, nil, reviewModel.ErrScoreOutOfRange
		}

		weightedSum += input.Score * criterion.Weight
		weightSum += criterion.Weight

		scores = append(scores, reviewModel.CriterionScore{
			CriterionID: input.CriterionID,
			Score:       input.Score,
			Comment:     input.Comment,
		})
	}

	if len(seen) != len(criteria) {
		return 0, nil, reviewModel.ErrMissingCriterion
	}
	if weightSum == 0 {
		return 0, scores, nil
	}

	return weightedSum / weightSum, scores, nil
}
