// Package model provides data transfer objects for the workload module.
package model

// ReviewerWorkload is the per-reviewer active/completed assignment breakdown.
type ReviewerWorkload struct {
	ReviewerID           string `gorm:"column:reviewer_id"           json:"reviewer_id"`
	FullName             string `gorm:"column:full_name"             json:"full_name"`
	IsActive             bool   `gorm:"column:is_active"             json:"is_active"`
	ActiveAssignments    int    `gorm:"column:active_assignments"    json:"active_assignments"`
	CompletedAssignments int    `gorm:"column:completed_assignments" json:"completed_assignments"`
}

// ReviewersWorkloadResponse wraps the workload listing.
type ReviewersWorkloadResponse struct {
	Reviewers []ReviewerWorkload `json:"reviewers"`
	Total     int                `json:"total"`
}
