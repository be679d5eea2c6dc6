package model

import (
	"time"

	matchingModel "github.com/festy23/capstone_review/internal/matching/model"
)

// AssignReviewerRequest represents the request to assign one reviewer.
type AssignReviewerRequest struct {
	SubmissionID   string     `json:"submission_id"   binding:"required"`
	ReviewerID     string     `json:"reviewer_id"     binding:"required"`
	AssignmentType string     `json:"assignment_type"`
	Deadline       *time.Time `json:"deadline,omitempty"`
}

// BulkAssignRequest represents the request to assign several reviewers at once.
type BulkAssignRequest struct {
	Assignments []AssignReviewerRequest `json:"assignments" binding:"required"`
}

// BulkAssignItemResult is the outcome of one item of a bulk assignment.
// Exactly one of Assignment or Error is set.
type BulkAssignItemResult struct {
	SubmissionID string               `json:"submission_id"`
	ReviewerID   string               `json:"reviewer_id"`
	Assignment   *AssignmentResponse  `json:"assignment,omitempty"`
	Error        *BulkAssignItemError `json:"error,omitempty"`
}

// BulkAssignItemError carries the typed failure of one bulk item.
type BulkAssignItemError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BulkAssignResponse represents per-item outcomes of a bulk assignment.
// Partial success is a valid outcome, not a failure of the whole call.
type BulkAssignResponse struct {
	Results   []BulkAssignItemResult `json:"results"`
	Succeeded int                    `json:"succeeded"`
	Failed    int                    `json:"failed"`
}

// AutoAssignRequest represents the request to auto-assign ranked reviewers.
type AutoAssignRequest struct {
	SubmissionID string                        `json:"submission_id" binding:"required"`
	Count        int                           `json:"count"`
	Criteria     matchingModel.RankingCriteria `json:"criteria"`
}

// SkippedCandidate is one ranked candidate that could not be assigned.
type SkippedCandidate struct {
	ReviewerID string `json:"reviewer_id"`
	Reason     string `json:"reason"`
}

// AutoAssignResponse represents the outcome of an auto-assignment.
type AutoAssignResponse struct {
	SubmissionID string               `json:"submission_id"`
	Assigned     []AssignmentResponse `json:"assigned"`
	Skipped      []SkippedCandidate   `json:"skipped"`
}

// UpdateStatusRequest represents the request to move an assignment through
// its state machine.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AssignmentResponse represents an assignment returned to callers.
type AssignmentResponse struct {
	ID             int64   `json:"id"`
	SubmissionID   string  `json:"submission_id"`
	ReviewerID     string  `json:"reviewer_id"`
	AssignmentType string  `json:"assignment_type"`
	SkillScore     float64 `json:"skill_score"`
	Status         string  `json:"status"`
	Deadline       string  `json:"deadline,omitempty"`
	AssignedAt     string  `json:"assigned_at"`
	StartedAt      string  `json:"started_at,omitempty"`
	CompletedAt    string  `json:"completed_at,omitempty"`
}

// NewAssignmentResponse converts an assignment row into its response form.
func NewAssignmentResponse(a *ReviewerAssignment) *AssignmentResponse {
	resp := &AssignmentResponse{
		ID:             a.ID,
		SubmissionID:   a.SubmissionID,
		ReviewerID:     a.ReviewerID,
		AssignmentType: a.AssignmentType,
		SkillScore:     a.SkillScore,
		Status:         a.Status,
		AssignedAt:     a.AssignedAt.Format(time.RFC3339),
	}
	if a.Deadline != nil {
		resp.Deadline = a.Deadline.Format(time.RFC3339)
	}
	if a.StartedAt != nil {
		resp.StartedAt = a.StartedAt.Format(time.RFC3339)
	}
	if a.CompletedAt != nil {
		resp.CompletedAt = a.CompletedAt.Format(time.RFC3339)
	}
	return resp
}
