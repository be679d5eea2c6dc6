// Package model provides domain models for the reviewer module.
package model

import (
	"time"

	"gorm.io/gorm"
)

// Proficiency levels for a tagged skill, from weakest to strongest.
const (
	ProficiencyBeginner     = "beginner"
	ProficiencyIntermediate = "intermediate"
	ProficiencyAdvanced     = "advanced"
	ProficiencyExpert       = "expert"
)

// proficiencyWeights maps a proficiency level to its linear match weight.
var proficiencyWeights = map[string]float64{
	ProficiencyBeginner:     0.25,
	ProficiencyIntermediate: 0.5,
	ProficiencyAdvanced:     0.75,
	ProficiencyExpert:       1.0,
}

// ProficiencyWeight returns the match weight for a proficiency level,
// or 0 for an unknown level.
func ProficiencyWeight(proficiency string) float64 {
	return proficiencyWeights[proficiency]
}

// IsValidProficiency reports whether the given proficiency level is known.
func IsValidProficiency(proficiency string) bool {
	_, ok := proficiencyWeights[proficiency]
	return ok
}

// Reviewer represents a reviewer entity in the system.
// Matches the reviewers table schema.
type Reviewer struct {
	ReviewerID string    `gorm:"primaryKey;column:reviewer_id;type:varchar(255)"           json:"reviewer_id"`
	FullName   string    `gorm:"column:full_name;type:varchar(255);not null"               json:"full_name"`
	Role       string    `gorm:"column:role;type:varchar(64);not null;default:reviewer"    json:"role"`
	IsActive   bool      `gorm:"column:is_active;type:boolean;not null;default:true"       json:"is_active"`
	CreatedAt  time.Time `gorm:"column:created_at;type:timestamptz;not null;default:now()" json:"-"`
	UpdatedAt  time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()" json:"-"`
}

// TableName specifies the table name for GORM.
func (Reviewer) TableName() string {
	return "reviewers"
}

// BeforeUpdate updates the UpdatedAt timestamp before saving.
func (r *Reviewer) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now()
	return nil
}

// ReviewerSkill represents a tagged skill with proficiency for a reviewer.
// Matches the reviewer_skills table schema.
type ReviewerSkill struct {
	ID          int64  `gorm:"primaryKey;column:id;type:bigserial"                                                 json:"id"`
	ReviewerID  string `gorm:"column:reviewer_id;type:varchar(255);not null;uniqueIndex:uq_reviewer_skill"         json:"reviewer_id"`
	SkillTag    string `gorm:"column:skill_tag;type:varchar(128);not null;uniqueIndex:uq_reviewer_skill"           json:"skill_tag"`
	Proficiency string `gorm:"column:proficiency;type:varchar(32);not null"                                        json:"proficiency"`
}

// TableName specifies the table name for GORM.
func (ReviewerSkill) TableName() string {
	return "reviewer_skills"
}
