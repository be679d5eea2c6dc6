package model

import (
	"time"
)

// Consensus states reported by the review summary.
const (
	ConsensusPendingQuorum = "pending_quorum"
	ConsensusFavorable     = "favorable"
	ConsensusUnfavorable   = "unfavorable"
	ConsensusConflicted    = "conflicted"
	ConsensusFinalized     = "finalized"
)

// ReviewBrief is one submitted review inside a summary.
type ReviewBrief struct {
	ReviewID       string  `json:"review_id"`
	ReviewerID     string  `json:"reviewer_id"`
	OverallScore   float64 `json:"overall_score"`
	Recommendation string  `json:"recommendation"`
	SubmittedAt    string  `json:"submitted_at,omitempty"`
}

// ReviewSummaryResponse is the consensus view of one submission.
type ReviewSummaryResponse struct {
	SubmissionID        string        `json:"submission_id"`
	Status              string        `json:"status"`
	ReviewRound         int           `json:"review_round"`
	Quorum              int           `json:"quorum"`
	SubmittedCount      int           `json:"submitted_count"`
	ConsensusState      string        `json:"consensus_state"`
	Reviews             []ReviewBrief `json:"reviews"`
	AverageScore        *float64      `json:"average_score,omitempty"`
	FinalScore          *float64      `json:"final_score,omitempty"`
	FinalRecommendation string        `json:"final_recommendation,omitempty"`
}

// ConflictedSubmission is one moderator worklist entry.
type ConflictedSubmission struct {
	SubmissionID string        `json:"submission_id"`
	Title        string        `json:"title"`
	SupervisorID string        `json:"supervisor_id"`
	SemesterID   string        `json:"semester_id"`
	ReviewRound  int           `json:"review_round"`
	Reviews      []ReviewBrief `json:"reviews"`
}

// ConflictedSubmissionsResponse is the moderator worklist.
type ConflictedSubmissionsResponse struct {
	Submissions []ConflictedSubmission `json:"submissions"`
	Total       int                    `json:"total"`
}

// ModeratorFinalReviewRequest represents the moderator's resolution of a
// conflicted submission. FinalScore overrides the reviewer average when set.
type ModeratorFinalReviewRequest struct {
	ModeratorID string   `json:"moderator_id" binding:"required"`
	Decision    string   `json:"decision"     binding:"required"`
	Note        string   `json:"note"`
	FinalScore  *float64 `json:"final_score,omitempty"`
}

// ModeratorDecisionResponse represents a recorded moderator decision.
type ModeratorDecisionResponse struct {
	SubmissionID string  `json:"submission_id"`
	ModeratorID  string  `json:"moderator_id"`
	Decision     string  `json:"decision"`
	Note         string  `json:"note,omitempty"`
	FinalScore   float64 `json:"final_score"`
	DecidedAt    string  `json:"decided_at"`
}

// SetRevisionDeadlineRequest represents the request to set a revision
// deadline on a submission awaiting rework.
type SetRevisionDeadlineRequest struct {
	Deadline time.Time `json:"deadline" binding:"required"`
}

// OverdueSweepResult reports one pass of the overdue-revision sweep.
type OverdueSweepResult struct {
	Scanned int      `json:"scanned"`
	Flagged []string `json:"flagged"`
}
