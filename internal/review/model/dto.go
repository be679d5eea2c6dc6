package model

import (
	"time"
)

// CriterionScoreInput is one per-criterion score in a review request.
type CriterionScoreInput struct {
	CriterionID int64   `json:"criterion_id" binding:"required"`
	Score       float64 `json:"score"`
	Comment     string  `json:"comment"`
}

// CreateReviewRequest represents the request to create a review against an
// assignment. Draft controls whether the review is held back or submitted
// immediately.
type CreateReviewRequest struct {
	AssignmentID    int64                 `json:"assignment_id"    binding:"required"`
	ReviewerID      string                `json:"reviewer_id"      binding:"required"`
	Recommendation  string                `json:"recommendation"   binding:"required"`
	Comments        string                `json:"comments"`
	CriterionScores []CriterionScoreInput `json:"criterion_scores" binding:"required"`
	Draft           bool                  `json:"draft"`
}

// CriterionScoreResponse is one scored criterion returned to callers.
type CriterionScoreResponse struct {
	CriterionID int64   `json:"criterion_id"`
	Name        string  `json:"name,omitempty"`
	Score       float64 `json:"score"`
	MaxScore    float64 `json:"max_score,omitempty"`
	Weight      float64 `json:"weight,omitempty"`
	Comment     string  `json:"comment,omitempty"`
}

// ReviewResponse represents a review returned to callers.
type ReviewResponse struct {
	ReviewID        string                   `json:"review_id"`
	AssignmentID    int64                    `json:"assignment_id"`
	SubmissionID    string                   `json:"submission_id"`
	ReviewerID      string                   `json:"reviewer_id"`
	ReviewRound     int                      `json:"review_round"`
	Status          string                   `json:"status"`
	OverallScore    float64                  `json:"overall_score"`
	Recommendation  string                   `json:"recommendation"`
	Comments        string                   `json:"comments,omitempty"`
	CriterionScores []CriterionScoreResponse `json:"criterion_scores"`
	SubmittedAt     string                   `json:"submitted_at,omitempty"`
	CreatedAt       string                   `json:"created_at"`
}

// NewReviewResponse converts a review row and its criterion scores into the
// response form.
func NewReviewResponse(review *Review, scores []CriterionScore) *ReviewResponse {
	resp := &ReviewResponse{
		ReviewID:        review.ReviewID,
		AssignmentID:    review.AssignmentID,
		SubmissionID:    review.SubmissionID,
		ReviewerID:      review.ReviewerID,
		ReviewRound:     review.ReviewRound,
		Status:          review.Status,
		OverallScore:    review.OverallScore,
		Recommendation:  review.Recommendation,
		Comments:        review.Comments,
		CriterionScores: make([]CriterionScoreResponse, 0, len(scores)),
		CreatedAt:       review.CreatedAt.Format(time.RFC3339),
	}
	if review.SubmittedAt != nil {
		resp.SubmittedAt = review.SubmittedAt.Format(time.RFC3339)
	}
	for _, s := range scores {
		resp.CriterionScores = append(resp.CriterionScores, CriterionScoreResponse{
			CriterionID: s.CriterionID,
			Score:       s.Score,
			Comment:     s.Comment,
		})
	}
	return resp
}
