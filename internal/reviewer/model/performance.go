package model

import (
	"math"
	"time"
)

// ReviewerPerformance is the per (reviewer, semester) history aggregate.
// Matches the reviewer_performance table schema. The score sum/sum-of-squares
// columns allow the score standard deviation to be maintained incrementally
// as reviews are submitted.
type ReviewerPerformance struct {
	ID                   int64     `gorm:"primaryKey;column:id;type:bigserial"                                          json:"id"`
	ReviewerID           string    `gorm:"column:reviewer_id;type:varchar(255);not null;uniqueIndex:uq_reviewer_semester" json:"reviewer_id"`
	SemesterID           string    `gorm:"column:semester_id;type:varchar(255);not null;uniqueIndex:uq_reviewer_semester" json:"semester_id"`
	TotalAssignments     int       `gorm:"column:total_assignments;not null;default:0"                                  json:"total_assignments"`
	CompletedAssignments int       `gorm:"column:completed_assignments;not null;default:0"                              json:"completed_assignments"`
	OnTimeCompletions    int       `gorm:"column:on_time_completions;not null;default:0"                                json:"on_time_completions"`
	AvgTurnaroundMinutes float64   `gorm:"column:avg_turnaround_minutes;not null;default:0"                             json:"avg_turnaround_minutes"`
	AvgScoreGiven        float64   `gorm:"column:avg_score_given;not null;default:0"                                    json:"avg_score_given"`
	ScoreSum             float64   `gorm:"column:score_sum;not null;default:0"                                          json:"-"`
	ScoreSumSquares      float64   `gorm:"column:score_sum_squares;not null;default:0"                                  json:"-"`
	ScoreCount           int       `gorm:"column:score_count;not null;default:0"                                        json:"score_count"`
	QualityRating        float64   `gorm:"column:quality_rating;not null;default:0"                                     json:"quality_rating"`
	UpdatedAt            time.Time `gorm:"column:updated_at;type:timestamptz;not null;default:now()"                    json:"-"`
}

// TableName specifies the table name for GORM.
func (ReviewerPerformance) TableName() string {
	return "reviewer_performance"
}

// OnTimeRate returns the fraction of completed assignments finished before
// their deadline, or 0 when nothing has been completed.
func (p ReviewerPerformance) OnTimeRate() float64 {
	if p.CompletedAssignments == 0 {
		return 0
	}
	return float64(p.OnTimeCompletions) / float64(p.CompletedAssignments)
}

// ScoreStdDev returns the population standard deviation of the overall
// scores this reviewer has given, derived from the incremental sums.
func (p ReviewerPerformance) ScoreStdDev() float64 {
	if p.ScoreCount < 2 {
		return 0
	}
	n := float64(p.ScoreCount)
	mean := p.ScoreSum / n
	variance := p.ScoreSumSquares/n - mean*mean
	if variance < 0 {
		// Guard against floating point drift on tight distributions.
		variance = 0
	}
	return math.Sqrt(variance)
}

// PerformanceBreakdown carries the independently queryable performance
// sub-scores alongside the combined overall score.
type PerformanceBreakdown struct {
	ReviewerID  string  `json:"reviewer_id"`
	SemesterID  string  `json:"semester_id,omitempty"`
	Reliability float64 `json:"reliability"`
	Efficiency  float64 `json:"efficiency"`
	Consistency float64 `json:"consistency"`
	Overall     float64 `json:"overall"`
}
