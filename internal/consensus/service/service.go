// Package service provides the consensus engine.
//
// Once a submission's current round has quorum submitted reviews, the engine
// buckets recommendations into favorable (accept, minor revision) and
// unfavorable (major revision, reject). A unanimous bucket resolves the
// round: favorable or reject outcomes finalize the submission, a major
// revision outcome sends it back for rework. Split buckets mark the
// submission conflicted, which only a moderator decision can exit.
package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/festy23/capstone_review/internal/config"
	consensusModel "github.com/festy23/capstone_review/internal/consensus/model"
	consensusRepository "github.com/festy23/capstone_review/internal/consensus/repository"
	notificationModel "github.com/festy23/capstone_review/internal/notification/model"
	notificationService "github.com/festy23/capstone_review/internal/notification/service"
	reviewModel "github.com/festy23/capstone_review/internal/review/model"
	reviewRepository "github.com/festy23/capstone_review/internal/review/repository"
	submissionModel "github.com/festy23/capstone_review/internal/submission/model"
	submissionRepository "github.com/festy23/capstone_review/internal/submission/repository"
)

// Service defines the interface for consensus business logic operations.
type Service interface {
	// AggregateSubmissionReview re-evaluates a submission's current round
	// against the quorum rule. Safe to call on any submission state; rounds
	// without quorum and already resolved submissions are left untouched.
	AggregateSubmissionReview(ctx context.Context, submissionID string) error

	// GetSubmissionReviewSummary returns the per-review breakdown plus the
	// derived consensus state of a submission.
	GetSubmissionReviewSummary(ctx context.Context, submissionID string) (*consensusModel.ReviewSummaryResponse, error)

	// GetConflictedSubmissions returns the moderator worklist.
	GetConflictedSubmissions(ctx context.Context) (*consensusModel.ConflictedSubmissionsResponse, error)

	// ModeratorFinalReview records a moderator decision and finalizes a
	// conflicted submission. The only exit from the conflicted state.
	ModeratorFinalReview(
		ctx context.Context,
		submissionID string,
		req *consensusModel.ModeratorFinalReviewRequest,
	) (*consensusModel.ModeratorDecisionResponse, error)

	// SetRevisionDeadline sets the rework deadline of a submission awaiting
	// revision.
	SetRevisionDeadline(ctx context.Context, submissionID string, deadline time.Time) error

	// RegisterResubmission moves a revised submission back under review and
	// opens the next review round.
	RegisterResubmission(ctx context.Context, submissionID string) error

	// ProcessOverdueRevisions flags submissions whose revision deadline has
	// elapsed. Idempotent per row.
	ProcessOverdueRevisions(ctx context.Context) (*consensusModel.OverdueSweepResult, error)
}

type service struct {
	submissions submissionRepository.Repository
	reviews     reviewRepository.Repository
	decisions   consensusRepository.Repository
	notifier    notificationService.Notifier
	cfg         config.EngineConfig
	logger      *zap.SugaredLogger
}

// New creates a new consensus service instance.
func New(
	submissions submissionRepository.Repository,
	reviews reviewRepository.Repository,
	decisions consensusRepository.Repository,
	notifier notificationService.Notifier,
	cfg config.EngineConfig,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		submissions: submissions,
		reviews:     reviews,
		decisions:   decisions,
		notifier:    notifier,
		cfg:         cfg,
		logger:      logger,
	}
}

// AggregateSubmissionReview re-evaluates a submission's current round.
func (s *service) AggregateSubmissionReview(ctx context.Context, submissionID string) error {
	if submissionID == "" {
		return submissionModel.ErrInvalidSubmissionID
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return err
	}

	// Only a submission actively under review can be resolved by quorum.
	if submission.Status != submissionModel.StatusUnderReview {
		return nil
	}

	reviews, err := s.reviews.ListSubmittedForRound(ctx, submissionID, submission.ReviewRound)
	if err != nil {
		return err
	}

	if len(reviews) < s.cfg.ReviewerQuorum {
		return nil
	}

	favorable, unfavorable := bucketReviews(reviews)
	average := averageScore(reviews)

	switch {
	case len(unfavorable) == 0:
		recommendation := majorityRecommendation(favorable)
		if err := s.finalize(ctx, submissionID, average, recommendation); err != nil {
			return err
		}
		s.logger.Infow("submission finalized by consensus",
			"submission_id", submissionID,
			"round", submission.ReviewRound,
			"final_score", average,
			"recommendation", recommendation)

	case len(favorable) == 0:
		recommendation := majorityRecommendation(unfavorable)
		if recommendation == reviewModel.RecommendationReject {
			if err := s.finalize(ctx, submissionID, average, recommendation); err != nil {
				return err
			}
			s.logger.Infow("submission rejected by consensus",
				"submission_id", submissionID,
				"round", submission.ReviewRound,
				"final_score", average)
			break
		}

		if err := s.submissions.UpdateStatus(ctx, submissionID, submissionModel.StatusRevisionRequired); err != nil {
			return err
		}
		s.logger.Infow("submission sent back for revision",
			"submission_id", submissionID,
			"round", submission.ReviewRound)

	default:
		if err := s.submissions.UpdateStatus(ctx, submissionID, submissionModel.StatusConflicted); err != nil {
			return err
		}
		s.notifier.Notify(ctx, submission.SupervisorID, notificationModel.EventConflictEscalated,
			map[string]interface{}{
				"submission_id": submissionID,
				"title":         submission.Title,
				"round":         submission.ReviewRound,
				"favorable":     len(favorable),
				"unfavorable":   len(unfavorable),
			})
		s.logger.Warnw("reviewer disagreement, submission escalated to moderator",
			"submission_id", submissionID,
			"round", submission.ReviewRound,
			"favorable", len(favorable),
			"unfavorable", len(unfavorable))
	}

	return nil
}

// GetSubmissionReviewSummary returns the consensus view of a submission.
func (s *service) GetSubmissionReviewSummary(
	ctx context.Context,
	submissionID string,
) (*consensusModel.ReviewSummaryResponse, error) {
	if submissionID == "" {
		return nil, submissionModel.ErrInvalidSubmissionID
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.reviews.ListSubmittedForRound(ctx, submissionID, submission.ReviewRound)
	if err != nil {
		return nil, err
	}

	summary := &consensusModel.ReviewSummaryResponse{
		SubmissionID:   submissionID,
		Status:         submission.Status,
		ReviewRound:    submission.ReviewRound,
		Quorum:         s.cfg.ReviewerQuorum,
		SubmittedCount: len(reviews),
		ConsensusState: s.consensusState(submission, reviews),
		Reviews:        reviewBriefs(reviews),
		FinalScore:     submission.FinalScore,
	}
	if len(reviews) > 0 {
		avg := averageScore(reviews)
		summary.AverageScore = &avg
	}
	if submission.FinalRecommendation != nil {
		summary.FinalRecommendation = *submission.FinalRecommendation
	}

	return summary, nil
}

// GetConflictedSubmissions returns the moderator worklist.
func (s *service) GetConflictedSubmissions(ctx context.Context) (*consensusModel.ConflictedSubmissionsResponse, error) {
	conflicted, err := s.submissions.ListByStatus(ctx, submissionModel.StatusConflicted)
	if err != nil {
		return nil, err
	}

	resp := &consensusModel.ConflictedSubmissionsResponse{
		Submissions: make([]consensusModel.ConflictedSubmission, 0, len(conflicted)),
	}
	for i := range conflicted {
		sub := &conflicted[i]

		reviews, err := s.reviews.ListSubmittedForRound(ctx, sub.SubmissionID, sub.ReviewRound)
		if err != nil {
			return nil, err
		}

		resp.Submissions = append(resp.Submissions, consensusModel.ConflictedSubmission{
			SubmissionID: sub.SubmissionID,
			Title:        sub.Title,
			SupervisorID: sub.SupervisorID,
			SemesterID:   sub.SemesterID,
			ReviewRound:  sub.ReviewRound,
			Reviews:      reviewBriefs(reviews),
		})
	}
	resp.Total = len(resp.Submissions)

	return resp, nil
}

// ModeratorFinalReview records a moderator decision and finalizes the
// submission.
func (s *service) ModeratorFinalReview(
	ctx context.Context,
	submissionID string,
	req *consensusModel.ModeratorFinalReviewRequest,
) (*consensusModel.ModeratorDecisionResponse, error) {
	if submissionID == "" {
		return nil, submissionModel.ErrInvalidSubmissionID
	}
	if !reviewModel.IsValidRecommendation(req.Decision) {
		return nil, consensusModel.ErrInvalidDecision
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	if submission.Status != submissionModel.StatusConflicted {
		return nil, consensusModel.ErrNotConflicted
	}

	finalScore := 0.0
	if req.FinalScore != nil {
		finalScore = *req.FinalScore
	} else {
		reviews, err := s.reviews.ListSubmittedForRound(ctx, submissionID, submission.ReviewRound)
		if err != nil {
			return nil, err
		}
		if len(reviews) > 0 {
			finalScore = averageScore(reviews)
		}
	}

	decision := &consensusModel.ModeratorDecision{
		SubmissionID: submissionID,
		ModeratorID:  req.ModeratorID,
		Decision:     req.Decision,
		Note:         req.Note,
		DecidedAt:    time.Now(),
	}
	if err := s.decisions.CreateDecision(ctx, decision); err != nil {
		return nil, err
	}

	if err := s.finalize(ctx, submissionID, finalScore, req.Decision); err != nil {
		return nil, err
	}

	s.logger.Infow("conflicted submission resolved by moderator",
		"submission_id", submissionID,
		"moderator_id", req.ModeratorID,
		"decision", req.Decision)

	return &consensusModel.ModeratorDecisionResponse{
		SubmissionID: submissionID,
		ModeratorID:  decision.ModeratorID,
		Decision:     decision.Decision,
		Note:         decision.Note,
		FinalScore:   finalScore,
		DecidedAt:    decision.DecidedAt.Format(time.RFC3339),
	}, nil
}

// SetRevisionDeadline sets the rework deadline of a submission.
func (s *service) SetRevisionDeadline(ctx context.Context, submissionID string, deadline time.Time) error {
	if submissionID == "" {
		return submissionModel.ErrInvalidSubmissionID
	}
	if !deadline.After(time.Now()) {
		return consensusModel.ErrDeadlineInPast
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return err
	}
	if submission.Status != submissionModel.StatusRevisionRequired {
		return consensusModel.ErrNotRevisionRequired
	}

	if err := s.submissions.SetRevisionDeadline(ctx, submissionID, deadline); err != nil {
		return err
	}

	s.logger.Infow("revision deadline set",
		"submission_id", submissionID,
		"deadline", deadline.Format(time.RFC3339))

	return nil
}

// RegisterResubmission opens the next review round for a revised submission.
func (s *service) RegisterResubmission(ctx context.Context, submissionID string) error {
	if submissionID == "" {
		return submissionModel.ErrInvalidSubmissionID
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return err
	}
	if submission.Status != submissionModel.StatusRevisionRequired {
		return consensusModel.ErrNotRevisionRequired
	}

	if err := s.submissions.IncrementRound(ctx, submissionID); err != nil {
		return err
	}

	s.logger.Infow("submission resubmitted",
		"submission_id", submissionID,
		"round", submission.ReviewRound+1)

	return nil
}

// ProcessOverdueRevisions flags submissions whose revision deadline elapsed.
func (s *service) ProcessOverdueRevisions(ctx context.Context) (*consensusModel.OverdueSweepResult, error) {
	overdue, err := s.submissions.ListOverdueRevisions(ctx, time.Now())
	if err != nil {
		return nil, err
	}

	result := &consensusModel.OverdueSweepResult{
		Scanned: len(overdue),
		Flagged: []string{},
	}

	for i := range overdue {
		sub := &overdue[i]

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		// Each row is flagged independently. A failure on one row leaves
		// the rest of the sweep untouched and the row retryable next pass.
		if err := s.submissions.MarkRevisionOverdue(ctx, sub.SubmissionID); err != nil {
			s.logger.Warnw("failed to flag overdue revision",
				"submission_id", sub.SubmissionID, "error", err)
			continue
		}

		s.notifier.Notify(ctx, sub.SupervisorID, notificationModel.EventRevisionOverdue,
			map[string]interface{}{
				"submission_id": sub.SubmissionID,
				"title":         sub.Title,
				"deadline":      sub.RevisionDeadline.Format(time.RFC3339),
			})

		result.Flagged = append(result.Flagged, sub.SubmissionID)
	}

	if len(result.Flagged) > 0 {
		s.logger.Infow("overdue revision sweep completed",
			"scanned", result.Scanned,
			"flagged", len(result.Flagged))
	}

	return result, nil
}

// finalize records the final outcome and closes the submission.
func (s *service) finalize(ctx context.Context, submissionID string, score float64, recommendation string) error {
	if err := s.submissions.SetFinalResult(ctx, submissionID, score, recommendation); err != nil {
		return err
	}
	return s.submissions.UpdateStatus(ctx, submissionID, submissionModel.StatusFinalized)
}

// consensusState derives the reported consensus state from the submission
// status and the current round's submitted reviews.
func (s *service) consensusState(submission *submissionModel.Submission, reviews []reviewModel.Review) string {
	switch submission.Status {
	case submissionModel.StatusFinalized:
		return consensusModel.ConsensusFinalized
	case submissionModel.StatusConflicted:
		return consensusModel.ConsensusConflicted
	}

	if len(reviews) < s.cfg.ReviewerQuorum {
		return consensusModel.ConsensusPendingQuorum
	}

	favorable, unfavorable := bucketReviews(reviews)
	switch {
	case len(unfavorable) == 0:
		return consensusModel.ConsensusFavorable
	case len(favorable) == 0:
		return consensusModel.ConsensusUnfavorable
	default:
		return consensusModel.ConsensusConflicted
	}
}

// reviewBriefs converts reviews into their summary form.
func reviewBriefs(reviews []reviewModel.Review) []consensusModel.ReviewBrief {
	briefs := make([]consensusModel.ReviewBrief, 0, len(reviews))
	for _, review := range reviews {
		brief := consensusModel.ReviewBrief{
			ReviewID:       review.ReviewID,
			ReviewerID:     review.ReviewerID,
			OverallScore:   review.OverallScore,
			Recommendation: review.Recommendation,
		}
		if review.SubmittedAt != nil {
			brief.SubmittedAt = review.SubmittedAt.Format(time.RFC3339)
		}
		briefs = append(briefs, brief)
	}
	return briefs
}

// bucketReviews splits reviews into the favorable and unfavorable buckets.
func bucketReviews(reviews []reviewModel.Review) (favorable, unfavorable []reviewModel.Review) {
	for _, review := range reviews {
		if reviewModel.IsFavorable(review.Recommendation) {
			favorable = append(favorable, review)
		} else {
			unfavorable = append(unfavorable, review)
		}
	}
	return favorable, unfavorable
}

// averageScore is the mean of the reviews' weighted overall scores.
func averageScore(reviews []reviewModel.Review) float64 {
	if len(reviews) == 0 {
		return 0
	}
	var sum float64
	for _, review := range reviews {
		sum += review.OverallScore
	}
	return sum / float64(len(reviews))
}

// majorityRecommendation picks the most frequent recommendation within one
// bucket. A tie resolves to the revision-leaning option so a split vote
// never produces the harsher or the more lenient extreme on its own.
func majorityRecommendation(reviews []reviewModel.Review) string {
	counts := make(map[string]int, 2)
	for _, review := range reviews {
		counts[review.Recommendation]++
	}

	// Checking revision-leaning options first makes ties land on them.
	order := []string{
		reviewModel.RecommendationMinorRevision,
		reviewModel.RecommendationMajorRevision,
		reviewModel.RecommendationAccept,
		reviewModel.RecommendationReject,
	}

	best := ""
	bestCount := -1
	for _, recommendation := range order {
		if counts[recommendation] > bestCount {
			best = recommendation
			bestCount = counts[recommendation]
		}
	}

	return best
}
