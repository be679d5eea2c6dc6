package model

// EvaluationCriteria is one weighted scoring criterion for a semester.
// Matches the evaluation_criteria table schema.
type EvaluationCriteria struct {
	ID         int64   `gorm:"primaryKey;column:id;type:bigserial"                                          json:"id"`
	SemesterID string  `gorm:"column:semester_id;type:varchar(255);not null;uniqueIndex:uq_criteria_semester_name" json:"semester_id"`
	Name       string  `gorm:"column:name;type:varchar(255);not null;uniqueIndex:uq_criteria_semester_name" json:"name"`
	MaxScore   float64 `gorm:"column:max_score;not null"                                                    json:"max_score"`
	Weight     float64 `gorm:"column:weight;not null"                                                       json:"weight"`
	IsActive   bool    `gorm:"column:is_active;not null;default:true"                                       json:"is_active"`
}

// TableName specifies the table name for GORM.
func (EvaluationCriteria) TableName() string {
	return "evaluation_criteria"
}
