// Package service provides business logic layer for the assignment module.
//
// The service coordinates eligibility checks, the skill-fit snapshot, the
// per-pair uniqueness guarantee and the workload bookkeeping triggered by
// assignment lifecycle changes.
package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	assignmentModel "github.com/festy23/capstone_review/internal/assignment/model"
	assignmentRepository "github.com/festy23/capstone_review/internal/assignment/repository"
	"github.com/festy23/capstone_review/internal/config"
	matchingModel "github.com/festy23/capstone_review/internal/matching/model"
	matchingService "github.com/festy23/capstone_review/internal/matching/service"
	notificationModel "github.com/festy23/capstone_review/internal/notification/model"
	notificationService "github.com/festy23/capstone_review/internal/notification/service"
	reviewerModel "github.com/festy23/capstone_review/internal/reviewer/model"
	reviewerRepository "github.com/festy23/capstone_review/internal/reviewer/repository"
	submissionModel "github.com/festy23/capstone_review/internal/submission/model"
	submissionRepository "github.com/festy23/capstone_review/internal/submission/repository"
)

// Service defines the interface for assignment business logic operations.
type Service interface {
	// AssignReviewer creates one reviewer assignment after eligibility checks.
	AssignReviewer(
		ctx context.Context,
		req *assignmentModel.AssignReviewerRequest,
	) (*assignmentModel.AssignmentResponse, error)

	// BulkAssignReviewers processes each item independently and reports a
	// per-item outcome. One bad item never aborts the rest.
	BulkAssignReviewers(
		ctx context.Context,
		req *assignmentModel.BulkAssignRequest,
	) (*assignmentModel.BulkAssignResponse, error)

	// AutoAssignReviewers walks the ranked candidate list and assigns up to
	// the requested number of reviewers, reporting everyone it skipped.
	AutoAssignReviewers(
		ctx context.Context,
		req *assignmentModel.AutoAssignRequest,
	) (*assignmentModel.AutoAssignResponse, error)

	// GetAssignment returns a single assignment by id.
	GetAssignment(ctx context.Context, id int64) (*assignmentModel.AssignmentResponse, error)

	// ListSubmissionAssignments returns all assignments of a submission.
	ListSubmissionAssignments(
		ctx context.Context,
		submissionID string,
	) ([]assignmentModel.AssignmentResponse, error)

	// UpdateAssignmentStatus moves an assignment through its state machine.
	UpdateAssignmentStatus(
		ctx context.Context,
		id int64,
		newStatus string,
	) (*assignmentModel.AssignmentResponse, error)

	// RemoveAssignment removes an assignment that has no review anchored to
	// it. Never-started assignments are deleted outright, started ones are
	// cancelled so their history survives.
	RemoveAssignment(ctx context.Context, id int64) error
}

type service struct {
	assignments assignmentRepository.Repository
	reviewers   reviewerRepository.Repository
	submissions submissionRepository.Repository
	matching    matchingService.Service
	notifier    notificationService.Notifier
	cfg         config.EngineConfig
	logger      *zap.SugaredLogger
}

// New creates a new assignment service instance.
func New(
	assignments assignmentRepository.Repository,
	reviewers reviewerRepository.Repository,
	submissions submissionRepository.Repository,
	matching matchingService.Service,
	notifier notificationService.Notifier,
	cfg config.EngineConfig,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		assignments: assignments,
		reviewers:   reviewers,
		submissions: submissions,
		matching:    matching,
		notifier:    notifier,
		cfg:         cfg,
		logger:      logger,
	}
}

// AssignReviewer creates one reviewer assignment after eligibility checks.
func (s *service) AssignReviewer(
	ctx context.Context,
	req *assignmentModel.AssignReviewerRequest,
) (*assignmentModel.AssignmentResponse, error) {
	if req.SubmissionID == "" {
		return nil, submissionModel.ErrInvalidSubmissionID
	}
	if req.ReviewerID == "" {
		return nil, reviewerModel.ErrInvalidReviewerID
	}

	assignmentType := req.AssignmentType
	if assignmentType == "" {
		assignmentType = assignmentModel.TypePrimary
	}
	if !assignmentModel.IsValidType(assignmentType) {
		return nil, assignmentModel.ErrInvalidAssignmentType
	}

	submission, err := s.submissions.GetByID(ctx, req.SubmissionID)
	if err != nil {
		return nil, err
	}
	if submission.Status == submissionModel.StatusFinalized {
		return nil, submissionModel.ErrInvalidStatusTransition
	}

	reviewer, err := s.reviewers.GetByID(ctx, req.ReviewerID)
	if err != nil {
		return nil, err
	}
	if !reviewer.IsActive {
		return nil, reviewerModel.ErrReviewerInactive
	}
	// A supervisor never reviews their own submission.
	if reviewer.ReviewerID == submission.SupervisorID {
		return nil, assignmentModel.ErrReviewerNotEligible
	}

	existing, err := s.assignments.GetActivePair(ctx, req.SubmissionID, req.ReviewerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, assignmentModel.ErrDuplicateAssignment
	}

	skillScore, err := s.skillSnapshot(ctx, req.SubmissionID, req.ReviewerID)
	if err != nil {
		return nil, err
	}

	assignment := &assignmentModel.ReviewerAssignment{
		SubmissionID:   req.SubmissionID,
		ReviewerID:     req.ReviewerID,
		AssignmentType: assignmentType,
		SkillScore:     skillScore,
		Deadline:       req.Deadline,
		Status:         assignmentModel.StatusAssigned,
		AssignedAt:     time.Now(),
	}

	// The pre-check above races with concurrent assigners. The partial
	// unique index is the authoritative guard, so a duplicate surfacing
	// here is still a clean conflict, never a second row.
	if err := s.assignments.Create(ctx, assignment); err != nil {
		return nil, err
	}

	if err := s.reviewers.RecordAssignmentCreated(ctx, req.ReviewerID, submission.SemesterID); err != nil {
		s.logger.Warnw("failed to record assignment in performance history",
			"reviewer_id", req.ReviewerID, "semester_id", submission.SemesterID, "error", err)
	}

	if submission.Status == submissionModel.StatusPending {
		if err := s.submissions.UpdateStatus(ctx, submission.SubmissionID, submissionModel.StatusUnderReview); err != nil {
			s.logger.Warnw("failed to move submission under review",
				"submission_id", submission.SubmissionID, "error", err)
		}
	}

	payload := map[string]interface{}{
		"submission_id": assignment.SubmissionID,
		"assignment_id": assignment.ID,
		"title":         submission.Title,
	}
	if assignment.Deadline != nil {
		payload["deadline"] = assignment.Deadline.Format(time.RFC3339)
	}
	s.notifier.Notify(ctx, req.ReviewerID, notificationModel.EventAssigned, payload)

	s.logger.Infow("reviewer assigned",
		"submission_id", req.SubmissionID,
		"reviewer_id", req.ReviewerID,
		"assignment_type", assignmentType,
		"skill_score", skillScore)

	return assignmentModel.NewAssignmentResponse(assignment), nil
}

// BulkAssignReviewers processes each item independently.
func (s *service) BulkAssignReviewers(
	ctx context.Context,
	req *assignmentModel.BulkAssignRequest,
) (*assignmentModel.BulkAssignResponse, error) {
	if len(req.Assignments) == 0 {
		return nil, assignmentModel.ErrEmptyBulkRequest
	}

	resp := &assignmentModel.BulkAssignResponse{
		Results: make([]assignmentModel.BulkAssignItemResult, 0, len(req.Assignments)),
	}

	for i := range req.Assignments {
		item := req.Assignments[i]
		result := assignmentModel.BulkAssignItemResult{
			SubmissionID: item.SubmissionID,
			ReviewerID:   item.ReviewerID,
		}

		assignment, err := s.AssignReviewer(ctx, &item)
		if err != nil {
			result.Error = &assignmentModel.BulkAssignItemError{
				Code:    itemErrorCode(err),
				Message: err.Error(),
			}
			resp.Failed++
		} else {
			result.Assignment = assignment
			resp.Succeeded++
		}

		resp.Results = append(resp.Results, result)
	}

	return resp, nil
}

// AutoAssignReviewers walks the ranked candidate list top-down.
//
// Candidates that fail to assign are skipped with a reason and later
// successes are kept. An auto-assignment that placed some but not all of the
// requested reviewers is a partial success, not a rollback.
func (s *service) AutoAssignReviewers(
	ctx context.Context,
	req *assignmentModel.AutoAssignRequest,
) (*assignmentModel.AutoAssignResponse, error) {
	if req.SubmissionID == "" {
		return nil, submissionModel.ErrInvalidSubmissionID
	}

	count := req.Count
	if count <= 0 {
		count = s.cfg.ReviewerQuorum
	}

	ranked, err := s.matching.GetAvailableReviewers(ctx, req.SubmissionID, req.Criteria)
	if err != nil {
		return nil, err
	}

	assignedTo, err := s.activeReviewerSet(ctx, req.SubmissionID)
	if err != nil {
		return nil, err
	}

	resp := &assignmentModel.AutoAssignResponse{
		SubmissionID: req.SubmissionID,
		Assigned:     []assignmentModel.AssignmentResponse{},
		Skipped:      []assignmentModel.SkippedCandidate{},
	}

	for _, candidate := range ranked.Candidates {
		if len(resp.Assigned) >= count {
			break
		}
		if assignedTo[candidate.ReviewerID] {
			resp.Skipped = append(resp.Skipped, assignmentModel.SkippedCandidate{
				ReviewerID: candidate.ReviewerID,
				Reason:     "already assigned to this submission",
			})
			continue
		}

		assignment, err := s.AssignReviewer(ctx, &assignmentModel.AssignReviewerRequest{
			SubmissionID:   req.SubmissionID,
			ReviewerID:     candidate.ReviewerID,
			AssignmentType: assignmentModel.TypePrimary,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			resp.Skipped = append(resp.Skipped, assignmentModel.SkippedCandidate{
				ReviewerID: candidate.ReviewerID,
				Reason:     err.Error(),
			})
			continue
		}

		resp.Assigned = append(resp.Assigned, *assignment)
	}

	if len(resp.Assigned) == 0 {
		return nil, matchingModel.ErrNoEligibleCandidates
	}

	if len(resp.Assigned) < count {
		s.logger.Warnw("auto-assignment placed fewer reviewers than requested",
			"submission_id", req.SubmissionID,
			"requested", count,
			"assigned", len(resp.Assigned))
	}

	return resp, nil
}

// GetAssignment returns a single assignment by id.
func (s *service) GetAssignment(ctx context.Context, id int64) (*assignmentModel.AssignmentResponse, error) {
	if id <= 0 {
		return nil, assignmentModel.ErrInvalidAssignmentID
	}

	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return assignmentModel.NewAssignmentResponse(assignment), nil
}

// ListSubmissionAssignments returns all assignments of a submission.
func (s *service) ListSubmissionAssignments(
	ctx context.Context,
	submissionID string,
) ([]assignmentModel.AssignmentResponse, error) {
	if submissionID == "" {
		return nil, submissionModel.ErrInvalidSubmissionID
	}

	if _, err := s.submissions.GetByID(ctx, submissionID); err != nil {
		return nil, err
	}

	assignments, err := s.assignments.ListBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	responses := make([]assignmentModel.AssignmentResponse, 0, len(assignments))
	for i := range assignments {
		responses = append(responses, *assignmentModel.NewAssignmentResponse(&assignments[i]))
	}

	return responses, nil
}

// UpdateAssignmentStatus moves an assignment through its state machine.
func (s *service) UpdateAssignmentStatus(
	ctx context.Context,
	id int64,
	newStatus string,
) (*assignmentModel.AssignmentResponse, error) {
	if id <= 0 {
		return nil, assignmentModel.ErrInvalidAssignmentID
	}
	if !assignmentModel.IsValidStatus(newStatus) {
		return nil, assignmentModel.ErrInvalidTransition
	}

	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Repeating the current status is an idempotent no-op, not a transition.
	if assignment.Status == newStatus {
		return assignmentModel.NewAssignmentResponse(assignment), nil
	}
	if !assignmentModel.CanTransition(assignment.Status, newStatus) {
		return nil, assignmentModel.ErrInvalidTransition
	}

	now := time.Now()
	if err := s.assignments.UpdateStatus(ctx, id, newStatus, now); err != nil {
		return nil, err
	}

	if newStatus == assignmentModel.StatusCompleted {
		s.recordCompletion(ctx, assignment, now)
	}

	updated, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("assignment status updated",
		"assignment_id", id,
		"from", assignment.Status,
		"to", newStatus)

	return assignmentModel.NewAssignmentResponse(updated), nil
}

// RemoveAssignment removes an assignment that has no review anchored to it.
func (s *service) RemoveAssignment(ctx context.Context, id int64) error {
	if id <= 0 {
		return assignmentModel.ErrInvalidAssignmentID
	}

	assignment, err := s.assignments.GetByID(ctx, id)
	if err != nil {
		return err
	}

	hasReview, err := s.assignments.HasReview(ctx, id)
	if err != nil {
		return err
	}
	if hasReview {
		return assignmentModel.ErrAssignmentHasReview
	}

	switch assignment.Status {
	case assignmentModel.StatusAssigned:
		// Never started, no history worth keeping.
		if err := s.assignments.Delete(ctx, id); err != nil {
			return err
		}
	case assignmentModel.StatusInProgress:
		if err := s.assignments.UpdateStatus(ctx, id, assignmentModel.StatusCancelled, time.Now()); err != nil {
			return err
		}
	case assignmentModel.StatusCancelled:
		return nil
	default:
		return assignmentModel.ErrInvalidTransition
	}

	s.logger.Infow("assignment removed",
		"assignment_id", id,
		"submission_id", assignment.SubmissionID,
		"reviewer_id", assignment.ReviewerID,
		"previous_status", assignment.Status)

	return nil
}

// skillSnapshot computes the skill-fit score frozen onto the assignment row.
func (s *service) skillSnapshot(ctx context.Context, submissionID, reviewerID string) (float64, error) {
	requiredTags, err := s.submissions.GetRequiredTags(ctx, submissionID)
	if err != nil {
		return 0, err
	}

	skills, err := s.reviewers.GetSkills(ctx, reviewerID)
	if err != nil {
		return 0, err
	}

	return matchingService.SkillScore(skills, requiredTags), nil
}

// activeReviewerSet returns the reviewers already holding a non-cancelled
// assignment on the submission.
func (s *service) activeReviewerSet(ctx context.Context, submissionID string) (map[string]bool, error) {
	active, err := s.assignments.ListActiveBySubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(active))
	for _, a := range active {
		set[a.ReviewerID] = true
	}

	return set, nil
}

// recordCompletion feeds a finished assignment into the reviewer's running
// performance history. History bookkeeping is best-effort and never fails
// the status transition itself.
func (s *service) recordCompletion(ctx context.Context, assignment *assignmentModel.ReviewerAssignment, completedAt time.Time) {
	submission, err := s.submissions.GetByID(ctx, assignment.SubmissionID)
	if err != nil {
		s.logger.Warnw("failed to load submission for completion bookkeeping",
			"assignment_id", assignment.ID, "error", err)
		return
	}

	startedAt := assignment.AssignedAt
	if assignment.StartedAt != nil {
		startedAt = *assignment.StartedAt
	}
	turnaroundMinutes := completedAt.Sub(startedAt).Minutes()
	if turnaroundMinutes < 0 {
		turnaroundMinutes = 0
	}

	onTime := assignment.Deadline == nil || !completedAt.After(*assignment.Deadline)

	if err := s.reviewers.RecordCompletion(
		ctx,
		assignment.ReviewerID,
		submission.SemesterID,
		turnaroundMinutes,
		onTime,
	); err != nil {
		s.logger.Warnw("failed to record completion in performance history",
			"assignment_id", assignment.ID,
			"reviewer_id", assignment.ReviewerID,
			"error", err)
	}
}

// itemErrorCode maps a domain error onto the stable per-item code used in
// bulk responses.
func itemErrorCode(err error) string {
	switch {
	case errors.Is(err, assignmentModel.ErrDuplicateAssignment):
		return "DUPLICATE_ASSIGNMENT"
	case errors.Is(err, assignmentModel.ErrReviewerNotEligible):
		return "REVIEWER_NOT_ELIGIBLE"
	case errors.Is(err, reviewerModel.ErrReviewerInactive):
		return "REVIEWER_INACTIVE"
	case errors.Is(err, reviewerModel.ErrReviewerNotFound),
		errors.Is(err, submissionModel.ErrSubmissionNotFound):
		return "NOT_FOUND"
	case errors.Is(err, reviewerModel.ErrInvalidReviewerID),
		errors.Is(err, submissionModel.ErrInvalidSubmissionID),
		errors.Is(err, assignmentModel.ErrInvalidAssignmentType),
		errors.Is(err, submissionModel.ErrInvalidStatusTransition):
		return "VALIDATION_ERROR"
	default:
		return "INTERNAL_ERROR"
	}
}
