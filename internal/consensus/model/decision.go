// Package model provides domain models for the consensus module.
package model

import (
	"time"
)

// ModeratorDecision is the recorded resolution of a conflicted submission.
// Matches the moderator_decisions table schema.
type ModeratorDecision struct {
	ID           int64     `gorm:"primaryKey;column:id;type:bigserial"                       json:"id"`
	SubmissionID string    `gorm:"column:submission_id;type:varchar(255);not null"           json:"submission_id"`
	ModeratorID  string    `gorm:"column:moderator_id;type:varchar(255);not null"            json:"moderator_id"`
	Decision     string    `gorm:"column:decision;type:varchar(32);not null"                 json:"decision"`
	Note         string    `gorm:"column:note;type:text"                                     json:"note"`
	DecidedAt    time.Time `gorm:"column:decided_at;type:timestamptz;not null;default:now()" json:"decided_at"`
}

// TableName specifies the table name for GORM.
func (ModeratorDecision) TableName() string {
	return "moderator_decisions"
}
