// Package model provides domain models for the submission module.
package model

import (
	"time"

	"gorm.io/gorm"
)

// Submission review statuses.
const (
	StatusPending          = "pending"
	StatusUnderReview      = "under_review"
	StatusRevisionRequired = "revision_required"
	StatusConflicted       = "conflicted"
	StatusFinalized        = "finalized"
)

// transitions is the submission review state machine. Conflicted resolves
// only through a moderator decision; resubmission moves a revision back
// under review.
var transitions = map[string][]string{
	StatusPending:          {StatusUnderReview},
	StatusUnderReview:      {StatusRevisionRequired, StatusConflicted, StatusFinalized},
	StatusRevisionRequired: {StatusUnderReview},
	StatusConflicted:       {StatusFinalized},
	StatusFinalized:        {},
}

// CanTransition reports whether moving a submission from one status to
// another is legal.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether the given submission status is known.
func IsValidStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}

// Submission represents the unit under review.
// Matches the submissions table schema.
type Submission struct {
	SubmissionID        string     `gorm:"primaryKey;column:submission_id;type:varchar(255)"                                   json:"submission_id"`
	Title               string     `gorm:"column:title;type:varchar(255);not null"                                             json:"title"`
	SupervisorID        string     `gorm:"column:supervisor_id;type:varchar(255);not null"                                     json:"supervisor_id"`
	SemesterID          string     `gorm:"column:semester_id;type:varchar(255);not null;index:idx_submissions_semester_id"     json:"semester_id"`
	PhaseDeadline       *time.Time `gorm:"column:phase_deadline;type:timestamptz"                                              json:"phase_deadline,omitempty"`
	Status              string     `gorm:"column:status;type:varchar(32);not null;default:pending;index:idx_submissions_status" json:"status"`
	ReviewRound         int        `gorm:"column:review_round;not null;default:1"                                              json:"review_round"`
	FinalScore          *float64   `gorm:"column:final_score"                                                                  json:"final_score,omitempty"`
	FinalRecommendation *string    `gorm:"column:final_recommendation;type:varchar(32)"                                        json:"final_recommendation,omitempty"`
	RevisionDeadline    *time.Time `gorm:"column:revision_deadline;type:timestamptz"                                           json:"revision_deadline,omitempty"`
	RevisionOverdue     bool       `gorm:"column:revision_overdue;not null;default:false"                                      json:"revision_overdue"`
	CreatedAt           time.Time  `gorm:"column:created_at;type:timestamptz;not null;default:now()"                           json:"-"`
	UpdatedAt           time.Time  `gorm:"column:updated_at;type:timestamptz;not null;default:now()"                           json:"-"`
}

// TableName specifies the table name for GORM.
func (Submission) TableName() string {
	return "submissions"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (s *Submission) BeforeUpdate(tx *gorm.DB) error {
	s.UpdatedAt = time.Now()
	return nil
}

// SubmissionSkillTag represents one required skill tag of a submission's topic.
// Matches the submission_skill_tags table schema.
type SubmissionSkillTag struct {
	ID           int64  `gorm:"primaryKey;column:id;type:bigserial"                                              json:"id"`
	SubmissionID string `gorm:"column:submission_id;type:varchar(255);not null;uniqueIndex:uq_submission_skill_tag" json:"submission_id"`
	SkillTag     string `gorm:"column:skill_tag;type:varchar(128);not null;uniqueIndex:uq_submission_skill_tag"  json:"skill_tag"`
}

// TableName specifies the table name for GORM.
func (SubmissionSkillTag) TableName() string {
	return "submission_skill_tags"
}
