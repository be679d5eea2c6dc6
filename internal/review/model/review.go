// Package model provides domain models for the review module.
package model

import (
	"time"
)

// Review recommendations.
const (
	RecommendationAccept        = "accept"
	RecommendationMinorRevision = "minor_revision"
	RecommendationMajorRevision = "major_revision"
	RecommendationReject        = "reject"
)

// Review statuses. A draft is submitted at most once; a submitted review is
// immutable except through withdraw.
const (
	StatusDraft     = "draft"
	StatusSubmitted = "submitted"
	StatusWithdrawn = "withdrawn"
)

// transitions is the review state machine.
var transitions = map[string][]string{
	StatusDraft:     {StatusSubmitted},
	StatusSubmitted: {StatusWithdrawn},
	StatusWithdrawn: {},
}

// CanTransition reports whether moving a review from one status to another
// is legal.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValidRecommendation reports whether the given recommendation is known.
func IsValidRecommendation(recommendation string) bool {
	switch recommendation {
	case RecommendationAccept, RecommendationMinorRevision,
		RecommendationMajorRevision, RecommendationReject:
		return true
	}
	return false
}

// IsFavorable reports whether a recommendation falls into the favorable
// consensus bucket. Accept and minor revision are favorable, major revision
// and reject are not.
func IsFavorable(recommendation string) bool {
	return recommendation == RecommendationAccept || recommendation == RecommendationMinorRevision
}

// Review is one reviewer's evaluation of a submission, anchored to exactly
// one assignment. Matches the reviews table schema.
type Review struct {
	ReviewID       string     `gorm:"primaryKey;column:review_id;type:varchar(36)"                                   json:"review_id"`
	AssignmentID   int64      `gorm:"column:assignment_id;not null;uniqueIndex:uq_review_assignment"                 json:"assignment_id"`
	SubmissionID   string     `gorm:"column:submission_id;type:varchar(255);not null;index:idx_reviews_submission_id" json:"submission_id"`
	ReviewerID     string     `gorm:"column:reviewer_id;type:varchar(255);not null"                                  json:"reviewer_id"`
	ReviewRound    int        `gorm:"column:review_round;not null;default:1"                                         json:"review_round"`
	Status         string     `gorm:"column:status;type:varchar(32);not null;default:draft;index:idx_reviews_status" json:"status"`
	OverallScore   float64    `gorm:"column:overall_score;not null;default:0"                                        json:"overall_score"`
	Recommendation string     `gorm:"column:recommendation;type:varchar(32);not null"                                json:"recommendation"`
	Comments       string     `gorm:"column:comments;type:text"                                                      json:"comments"`
	SubmittedAt    *time.Time `gorm:"column:submitted_at;type:timestamptz"                                           json:"submitted_at,omitempty"`
	CreatedAt      time.Time  `gorm:"column:created_at;type:timestamptz;not null;default:now()"                      json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;type:timestamptz;not null;default:now()"                      json:"updated_at"`
}

// TableName specifies the table name for GORM.
func (Review) TableName() string {
	return "reviews"
}

// CriterionScore is one per-criterion score inside a review.
// Matches the review_criterion_scores table schema.
type CriterionScore struct {
	ID          int64   `gorm:"primaryKey;column:id;type:bigserial"                                        json:"id"`
	ReviewID    string  `gorm:"column:review_id;type:varchar(36);not null;index:idx_criterion_scores_review_id" json:"review_id"`
	CriterionID int64   `gorm:"column:criterion_id;not null"                                               json:"criterion_id"`
	Score       float64 `gorm:"column:score;not null"                                                      json:"score"`
	Comment     string  `gorm:"column:comment;type:text"                                                   json:"comment"`
}

// TableName specifies the table name for GORM.
func (CriterionScore) TableName() string {
	return "review_criterion_scores"
}
