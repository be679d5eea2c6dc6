// Package handler provides HTTP handlers for matching endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	matchingModel "github.com/festy23/capstone_review/internal/matching/model"
	"github.com/festy23/capstone_review/internal/matching/service"
	reviewerModel "github.com/festy23/capstone_review/internal/reviewer/model"
	submissionModel "github.com/festy23/capstone_review/internal/submission/model"
)

// Handler handles HTTP requests for matching endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new matching handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetAvailableReviewers handles GET /matching/submissions/:id/available request.
// @Summary Rank all eligible reviewers for a submission
// @Tags Matching
// @Produce json
// @Param id path string true "Submission ID"
// @Param min_skill_score query number false "Minimum skill score"
// @Param max_workload query int false "Maximum active assignments"
// @Param semester_id query string false "Semester scope"
// @Success 200 {object} matchingModel.RankedCandidatesResponse
// @Failure 400 {object} ErrorResponse "Bad request (VALIDATION_ERROR)"
// @Failure 404 {object} ErrorResponse "Submission not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /matching/submissions/{id}/available [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetAvailableReviewers(c *gin.Context) {
	var criteria matchingModel.RankingCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid ranking criteria", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetAvailableReviewers(c.Request.Context(), c.Param("id"), criteria)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetRecommendedReviewers handles GET /matching/submissions/:id/recommended request.
// @Summary Get the top-ranked reviewer recommendations for a submission
// @Tags Matching
// @Produce json
// @Param id path string true "Submission ID"
// @Param limit query int false "Number of recommendations (defaults to the reviewer quorum)"
// @Success 200 {object} matchingModel.RankedCandidatesResponse
// @Failure 400 {object} ErrorResponse "Bad request (VALIDATION_ERROR)"
// @Failure 404 {object} ErrorResponse "Submission not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /matching/submissions/{id}/recommended [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetRecommendedReviewers(c *gin.Context) {
	var criteria matchingModel.RankingCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid ranking criteria", http.StatusBadRequest)
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			errorResponse(c, "VALIDATION_ERROR", "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	resp, err := h.service.GetRecommendedReviewers(c.Request.Context(), c.Param("id"), criteria, limit)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AnalyzeReviewerMatch handles GET /matching/submissions/:id/reviewers/:reviewerId request.
// @Summary Explain the match between one reviewer and one submission
// @Tags Matching
// @Produce json
// @Param id path string true "Submission ID"
// @Param reviewerId path string true "Reviewer ID"
// @Success 200 {object} matchingModel.MatchAnalysis
// @Failure 404 {object} ErrorResponse "Submission or reviewer not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /matching/submissions/{id}/reviewers/{reviewerId} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) AnalyzeReviewerMatch(c *gin.Context) {
	resp, err := h.service.AnalyzeReviewerMatch(c.Request.Context(), c.Param("id"), c.Param("reviewerId"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// respondError maps domain errors onto structured HTTP responses.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, submissionModel.ErrInvalidSubmissionID):
		errorResponse(c, "VALIDATION_ERROR", "submission id is required", http.StatusBadRequest)
	case errors.Is(err, submissionModel.ErrSubmissionNotFound):
		errorResponse(c, "NOT_FOUND", "submission not found", http.StatusNotFound)
	case errors.Is(err, reviewerModel.ErrReviewerNotFound):
		errorResponse(c, "NOT_FOUND", "reviewer not found", http.StatusNotFound)
	default:
		h.logger.Errorw("matching request failed", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
