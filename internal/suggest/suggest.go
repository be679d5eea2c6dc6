// Package suggest provides the optional AI-assisted reviewer suggestion
// provider. The engine never depends on it for correctness: every error is
// caught at this boundary and callers fall back to rule-based ranking.
package suggest

import (
	"context"
	"errors"
)

var (
	// ErrQuotaExhausted indicates the provider rejected the call for quota
	// reasons and further retries were halted.
	ErrQuotaExhausted = errors.New("suggestion provider quota exhausted")
	// ErrMalformedResponse indicates the provider returned something the
	// engine could not parse.
	ErrMalformedResponse = errors.New("malformed suggestion provider response")
)

// Candidate is the rule-based score breakdown handed to the provider.
type Candidate struct {
	ReviewerID        string   `json:"reviewer_id"`
	SkillScore        float64  `json:"skill_score"`
	PerformanceScore  float64  `json:"performance_score"`
	WorkloadScore     float64  `json:"workload_score"`
	CompositeScore    float64  `json:"composite_score"`
	ActiveAssignments int      `json:"active_assignments"`
	MatchedTags       []string `json:"matched_tags"`
}

// Request carries the submission context and the ranked candidates.
type Request struct {
	SubmissionID string
	Title        string
	RequiredTags []string
	Candidates   []Candidate
}

// Rationale is the provider's explanation for one candidate.
type Rationale struct {
	ReviewerID string `json:"reviewer_id"`
	Rationale  string `json:"rationale"`
}

// Provider produces rationale text for ranked candidates. Implementations
// must respect the caller's context deadline.
type Provider interface {
	Suggest(ctx context.Context, req *Request) ([]Rationale, error)
}
