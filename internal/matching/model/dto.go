// Package model provides data transfer objects for the matching module.
package model

// RankingCriteria narrows the candidate pool for ranking. Zero values fall
// back to the engine configuration defaults.
type RankingCriteria struct {
	// MinSkillScore excludes candidates below this skill score.
	MinSkillScore *float64 `json:"min_skill_score,omitempty" form:"min_skill_score"`
	// MaxWorkload excludes candidates at or above this many active assignments.
	MaxWorkload *int `json:"max_workload,omitempty" form:"max_workload"`
	// SemesterID scopes workload and performance history.
	SemesterID string `json:"semester_id,omitempty" form:"semester_id"`
}

// CandidateScore is one ranked candidate with its full score breakdown.
type CandidateScore struct {
	ReviewerID        string   `json:"reviewer_id"`
	FullName          string   `json:"full_name"`
	SkillScore        float64  `json:"skill_score"`
	PerformanceScore  float64  `json:"performance_score"`
	WorkloadScore     float64  `json:"workload_score"`
	CompositeScore    float64  `json:"composite_score"`
	ActiveAssignments int      `json:"active_assignments"`
	MatchedTags       []string `json:"matched_tags"`
	MissingTags       []string `json:"missing_tags"`
	Rationale         string   `json:"rationale,omitempty"`
}

// RankedCandidatesResponse wraps a ranked candidate listing.
type RankedCandidatesResponse struct {
	SubmissionID string           `json:"submission_id"`
	Candidates   []CandidateScore `json:"candidates"`
	Total        int              `json:"total"`
}

// MatchAnalysis is the detailed skill-match breakdown for one
// (submission, reviewer) pair.
type MatchAnalysis struct {
	SubmissionID      string   `json:"submission_id"`
	ReviewerID        string   `json:"reviewer_id"`
	RequiredTags      []string `json:"required_tags"`
	MatchedTags       []string `json:"matched_tags"`
	MissingTags       []string `json:"missing_tags"`
	SkillScore        float64  `json:"skill_score"`
	PerformanceScore  float64  `json:"performance_score"`
	WorkloadScore     float64  `json:"workload_score"`
	CompositeScore    float64  `json:"composite_score"`
	ActiveAssignments int      `json:"active_assignments"`
}
