// Package service provides business logic layer for the matching module.
//
// Candidate ranking combines the skill, performance and workload sub-scores
// into one composite score per reviewer, applies the eligibility filters and
// produces a deterministic ordering with a full breakdown per candidate.
package service

import (
	"context"
	"errors"
	"sort"

	"go.uber.org/zap"

	"github.com/festy23/capstone_review/internal/config"
	matchingModel "github.com/festy23/capstone_review/internal/matching/model"
	reviewerRepository "github.com/festy23/capstone_review/internal/reviewer/repository"
	reviewerService "github.com/festy23/capstone_review/internal/reviewer/service"
	submissionModel "github.com/festy23/capstone_review/internal/submission/model"
	submissionRepository "github.com/festy23/capstone_review/internal/submission/repository"
	"github.com/festy23/capstone_review/internal/suggest"
	workloadRepository "github.com/festy23/capstone_review/internal/workload/repository"
)

// Service defines the interface for matching business logic operations.
type Service interface {
	// GetAvailableReviewers ranks all eligible reviewers for a submission.
	GetAvailableReviewers(
		ctx context.Context,
		submissionID string,
		criteria matchingModel.RankingCriteria,
	) (*matchingModel.RankedCandidatesResponse, error)

	// GetRecommendedReviewers returns the top-ranked candidates, optionally
	// annotated with AI rationale text. The rule-based ordering is always
	// authoritative.
	GetRecommendedReviewers(
		ctx context.Context,
		submissionID string,
		criteria matchingModel.RankingCriteria,
		limit int,
	) (*matchingModel.RankedCandidatesResponse, error)

	// AnalyzeReviewerMatch explains the match between one reviewer and one
	// submission.
	AnalyzeReviewerMatch(
		ctx context.Context,
		submissionID, reviewerID string,
	) (*matchingModel.MatchAnalysis, error)
}

type service struct {
	submissions submissionRepository.Repository
	reviewers   reviewerRepository.Repository
	performance reviewerService.Service
	workload    workloadRepository.Repository
	provider    suggest.Provider
	cfg         config.EngineConfig
	logger      *zap.SugaredLogger
}

// New creates a new matching service instance. provider may be nil, in which
// case recommendations are returned without rationale annotations.
func New(
	submissions submissionRepository.Repository,
	reviewers reviewerRepository.Repository,
	performance reviewerService.Service,
	workload workloadRepository.Repository,
	provider suggest.Provider,
	cfg config.EngineConfig,
	logger *zap.SugaredLogger,
) Service {
	return &service{
		submissions: submissions,
		reviewers:   reviewers,
		performance: performance,
		workload:    workload,
		provider:    provider,
		cfg:         cfg,
		logger:      logger,
	}
}

// GetAvailableReviewers ranks all eligible reviewers for a submission.
func (s *service) GetAvailableReviewers(
	ctx context.Context,
	submissionID string,
	criteria matchingModel.RankingCriteria,
) (*matchingModel.RankedCandidatesResponse, error) {
	if submissionID == "" {
		return nil, submissionModel.ErrInvalidSubmissionID
	}

	candidates, err := s.rankCandidates(ctx, submissionID, criteria)
	if err != nil {
		return nil, err
	}

	return &matchingModel.RankedCandidatesResponse{
		SubmissionID: submissionID,
		Candidates:   candidates,
		Total:        len(candidates),
	}, nil
}

// GetRecommendedReviewers returns the top-ranked candidates with rationale.
func (s *service) GetRecommendedReviewers(
	ctx context.Context,
	submissionID string,
	criteria matchingModel.RankingCriteria,
	limit int,
) (*matchingModel.RankedCandidatesResponse, error) {
	resp, err := s.GetAvailableReviewers(ctx, submissionID, criteria)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = s.cfg.ReviewerQuorum
	}
	if len(resp.Candidates) > limit {
		resp.Candidates = resp.Candidates[:limit]
		resp.Total = limit
	}

	s.annotateWithRationale(ctx, submissionID, resp.Candidates)

	return resp, nil
}

// AnalyzeReviewerMatch explains the match between one reviewer and one submission.
func (s *service) AnalyzeReviewerMatch(
	ctx context.Context,
	submissionID, reviewerID string,
) (*matchingModel.MatchAnalysis, error) {
	if submissionID == "" {
		return nil, submissionModel.ErrInvalidSubmissionID
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	if _, err = s.reviewers.GetByID(ctx, reviewerID); err != nil {
		return nil, err
	}

	requiredTags, err := s.submissions.GetRequiredTags(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	skills, err := s.reviewers.GetSkills(ctx, reviewerID)
	if err != nil {
		return nil, err
	}

	skillScore, matched, missing := SkillMatch(skills, requiredTags)

	breakdown, err := s.performance.Breakdown(ctx, reviewerID, submission.SemesterID)
	if err != nil {
		return nil, err
	}

	activeCount, err := s.workload.CountActive(ctx, reviewerID, submission.SemesterID)
	if err != nil {
		return nil, err
	}

	workloadScore := s.workloadScore(activeCount, s.cfg.MaxWorkload)

	return &matchingModel.MatchAnalysis{
		SubmissionID:      submissionID,
		ReviewerID:        reviewerID,
		RequiredTags:      requiredTags,
		MatchedTags:       matched,
		MissingTags:       missing,
		SkillScore:        skillScore,
		PerformanceScore:  breakdown.Overall,
		WorkloadScore:     workloadScore,
		CompositeScore:    s.composite(skillScore, breakdown.Overall, workloadScore),
		ActiveAssignments: activeCount,
	}, nil
}

// rankCandidates builds the filtered, deterministically ordered candidate list.
func (s *service) rankCandidates(
	ctx context.Context,
	submissionID string,
	criteria matchingModel.RankingCriteria,
) ([]matchingModel.CandidateScore, error) {
	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	requiredTags, err := s.submissions.GetRequiredTags(ctx, submissionID)
	if err != nil {
		return nil, err
	}

	semesterID := criteria.SemesterID
	if semesterID == "" {
		semesterID = submission.SemesterID
	}

	minSkill := s.cfg.MinSkillScore
	if criteria.MinSkillScore != nil {
		minSkill = *criteria.MinSkillScore
	}
	maxWorkload := s.cfg.MaxWorkload
	if criteria.MaxWorkload != nil {
		maxWorkload = *criteria.MaxWorkload
	}

	// The submission's own supervisor is never a candidate.
	pool, err := s.reviewers.ListActive(ctx, []string{submission.SupervisorID})
	if err != nil {
		return nil, err
	}

	candidates := make([]matchingModel.CandidateScore, 0, len(pool))
	for _, reviewer := range pool {
		// A cancelled request stops ranking outright rather than returning
		// a partially scored list.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		candidate, ok := s.scoreCandidate(ctx, reviewer.ReviewerID, reviewer.FullName, requiredTags, semesterID)
		if !ok {
			continue
		}

		if candidate.SkillScore < minSkill {
			continue
		}
		if candidate.ActiveAssignments >= maxWorkload {
			continue
		}

		candidates = append(candidates, candidate)
	}

	sortCandidates(candidates)

	return candidates, nil
}

// scoreCandidate computes one candidate's breakdown. Candidates whose
// lookups fail are omitted from the ranking, not ranked with missing data.
func (s *service) scoreCandidate(
	ctx context.Context,
	reviewerID, fullName string,
	requiredTags []string,
	semesterID string,
) (matchingModel.CandidateScore, bool) {
	skills, err := s.reviewers.GetSkills(ctx, reviewerID)
	if err != nil {
		s.logger.Warnw("skipping candidate, skill lookup failed", "reviewer_id", reviewerID, "error", err)
		return matchingModel.CandidateScore{}, false
	}

	skillScore, matched, missing := SkillMatch(skills, requiredTags)

	breakdown, err := s.performance.Breakdown(ctx, reviewerID, semesterID)
	if err != nil {
		s.logger.Warnw("skipping candidate, performance lookup failed", "reviewer_id", reviewerID, "error", err)
		return matchingModel.CandidateScore{}, false
	}

	activeCount, err := s.workload.CountActive(ctx, reviewerID, semesterID)
	if err != nil {
		s.logger.Warnw("skipping candidate, workload lookup failed", "reviewer_id", reviewerID, "error", err)
		return matchingModel.CandidateScore{}, false
	}

	workloadScore := s.workloadScore(activeCount, s.cfg.MaxWorkload)

	return matchingModel.CandidateScore{
		ReviewerID:        reviewerID,
		FullName:          fullName,
		SkillScore:        skillScore,
		PerformanceScore:  breakdown.Overall,
		WorkloadScore:     workloadScore,
		CompositeScore:    s.composite(skillScore, breakdown.Overall, workloadScore),
		ActiveAssignments: activeCount,
		MatchedTags:       matched,
		MissingTags:       missing,
	}, true
}

// composite combines the three sub-scores with the configured weights.
func (s *service) composite(skill, performance, workload float64) float64 {
	return s.cfg.SkillWeight*skill +
		s.cfg.PerformanceWeight*performance +
		s.cfg.WorkloadWeight*workload
}

// workloadScore maps an active assignment count onto [0,1], where an idle
// reviewer scores 1 and a reviewer at or beyond the cap scores 0.
func (s *service) workloadScore(activeCount, maxWorkload int) float64 {
	if maxWorkload <= 0 {
		return 0
	}
	normalized := float64(activeCount) / float64(maxWorkload)
	if normalized > 1 {
		normalized = 1
	}
	return 1 - normalized
}

// sortCandidates orders by composite descending with deterministic
// tie-breaking: higher skill, lower workload, then reviewer id.
func sortCandidates(candidates []matchingModel.CandidateScore) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.CompositeScore != b.CompositeScore {
			return a.CompositeScore > b.CompositeScore
		}
		if a.SkillScore != b.SkillScore {
			return a.SkillScore > b.SkillScore
		}
		if a.ActiveAssignments != b.ActiveAssignments {
			return a.ActiveAssignments < b.ActiveAssignments
		}
		return a.ReviewerID < b.ReviewerID
	})
}

// annotateWithRationale decorates candidates with provider rationale text.
// Provider failures degrade to the unannotated rule-based result.
func (s *service) annotateWithRationale(
	ctx context.Context,
	submissionID string,
	candidates []matchingModel.CandidateScore,
) {
	if s.provider == nil || len(candidates) == 0 {
		return
	}

	submission, err := s.submissions.GetByID(ctx, submissionID)
	if err != nil {
		return
	}
	requiredTags, err := s.submissions.GetRequiredTags(ctx, submissionID)
	if err != nil {
		return
	}

	req := &suggest.Request{
		SubmissionID: submissionID,
		Title:        submission.Title,
		RequiredTags: requiredTags,
		Candidates:   make([]suggest.Candidate, 0, len(candidates)),
	}
	for _, c := range candidates {
		req.Candidates = append(req.Candidates, suggest.Candidate{
			ReviewerID:        c.ReviewerID,
			SkillScore:        c.SkillScore,
			PerformanceScore:  c.PerformanceScore,
			WorkloadScore:     c.WorkloadScore,
			CompositeScore:    c.CompositeScore,
			ActiveAssignments: c.ActiveAssignments,
			MatchedTags:       c.MatchedTags,
		})
	}

	callCtx, cancel := context.WithTimeout(ctx, s.cfg.SuggestTimeout)
	defer cancel()

	rationales, err := s.provider.Suggest(callCtx, req)
	if err != nil {
		if errors.Is(err, suggest.ErrQuotaExhausted) {
			s.logger.Warnw("suggestion provider quota exhausted, using rule-based ranking",
				"submission_id", submissionID)
		} else {
			s.logger.Warnw("suggestion provider failed, using rule-based ranking",
				"submission_id", submissionID, "error", err)
		}
		return
	}

	byReviewer := make(map[string]string, len(rationales))
	for _, r := range rationales {
		byReviewer[r.ReviewerID] = r.Rationale
	}
	for i := range candidates {
		candidates[i].Rationale = byReviewer[candidates[i].ReviewerID]
	}
}
