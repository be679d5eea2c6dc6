// Package model provides domain models for the assignment module.
package model

import (
	"time"
)

// Assignment types.
const (
	TypePrimary   = "primary"
	TypeSecondary = "secondary"
)

// Assignment statuses. Completed and cancelled are terminal.
const (
	StatusAssigned   = "assigned"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// transitions is the assignment state machine.
var transitions = map[string][]string{
	StatusAssigned:   {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

// CanTransition reports whether moving an assignment from one status to
// another is legal.
func CanTransition(from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsValidStatus reports whether the given assignment status is known.
func IsValidStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}

// IsValidType reports whether the given assignment type is known.
func IsValidType(assignmentType string) bool {
	return assignmentType == TypePrimary || assignmentType == TypeSecondary
}

// IsActive reports whether the status counts toward a reviewer's workload.
func IsActive(status string) bool {
	return status == StatusAssigned || status == StatusInProgress
}

// ReviewerAssignment pairs a reviewer with a submission.
// Matches the reviewer_assignments table schema; a partial unique index on
// (submission_id, reviewer_id) over non-cancelled rows enforces that at most
// one active assignment exists per pair.
type ReviewerAssignment struct {
	ID             int64      `gorm:"primaryKey;column:id;type:bigserial"                                                    json:"id"`
	SubmissionID   string     `gorm:"column:submission_id;type:varchar(255);not null;index:idx_assignments_submission_id"   json:"submission_id"`
	ReviewerID     string     `gorm:"column:reviewer_id;type:varchar(255);not null;index:idx_assignments_reviewer_id"       json:"reviewer_id"`
	AssignmentType string     `gorm:"column:assignment_type;type:varchar(32);not null;default:primary"                      json:"assignment_type"`
	SkillScore     float64    `gorm:"column:skill_score;not null;default:0"                                                 json:"skill_score"`
	Deadline       *time.Time `gorm:"column:deadline;type:timestamptz"                                                      json:"deadline,omitempty"`
	Status         string     `gorm:"column:status;type:varchar(32);not null;default:assigned;index:idx_assignments_status" json:"status"`
	AssignedAt     time.Time  `gorm:"column:assigned_at;type:timestamptz;not null;default:now()"                            json:"assigned_at"`
	StartedAt      *time.Time `gorm:"column:started_at;type:timestamptz"                                                    json:"started_at,omitempty"`
	CompletedAt    *time.Time `gorm:"column:completed_at;type:timestamptz"                                                  json:"completed_at,omitempty"`
}

// TableName specifies the table name for GORM.
func (ReviewerAssignment) TableName() string {
	return "reviewer_assignments"
}
