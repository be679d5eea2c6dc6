// Package handler provides HTTP handlers for consensus endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	consensusModel "github.com/festy23/capstone_review/internal/consensus/model"
	"github.com/festy23/capstone_review/internal/consensus/service"
	submissionModel "github.com/festy23/capstone_review/internal/submission/model"
)

// Handler handles HTTP requests for consensus endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new consensus handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetSubmissionReviewSummary handles GET /consensus/submissions/:id/summary request.
// @Summary Get the per-review breakdown and consensus state of a submission
// @Tags Consensus
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {object} consensusModel.ReviewSummaryResponse
// @Failure 404 {object} ErrorResponse "Submission not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /consensus/submissions/{id}/summary [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetSubmissionReviewSummary(c *gin.Context) {
	resp, err := h.service.GetSubmissionReviewSummary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetConflictedSubmissions handles GET /consensus/conflicted request.
// @Summary List submissions awaiting moderator resolution
// @Tags Consensus
// @Produce json
// @Success 200 {object} consensusModel.ConflictedSubmissionsResponse
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /consensus/conflicted [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetConflictedSubmissions(c *gin.Context) {
	resp, err := h.service.GetConflictedSubmissions(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ModeratorFinalReview handles POST /consensus/submissions/:id/moderator-review request.
// @Summary Resolve a conflicted submission with a moderator decision
// @Tags Consensus
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param request body consensusModel.ModeratorFinalReviewRequest true "Moderator decision"
// @Success 200 {object} consensusModel.ModeratorDecisionResponse
// @Failure 400 {object} ErrorResponse "Bad request (VALIDATION_ERROR)"
// @Failure 404 {object} ErrorResponse "Submission not found"
// @Failure 422 {object} ErrorResponse "Submission is not conflicted"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /consensus/submissions/{id}/moderator-review [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ModeratorFinalReview(c *gin.Context) {
	var req consensusModel.ModeratorFinalReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.ModeratorFinalReview(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SetRevisionDeadline handles PUT /consensus/submissions/:id/revision-deadline request.
// @Summary Set the rework deadline of a submission awaiting revision
// @Tags Consensus
// @Accept json
// @Produce json
// @Param id path string true "Submission ID"
// @Param request body consensusModel.SetRevisionDeadlineRequest true "Deadline"
// @Success 204 "No content"
// @Failure 400 {object} ErrorResponse "Bad request (VALIDATION_ERROR)"
// @Failure 404 {object} ErrorResponse "Submission not found"
// @Failure 422 {object} ErrorResponse "Submission is not awaiting revision"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /consensus/submissions/{id}/revision-deadline [put] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) SetRevisionDeadline(c *gin.Context) {
	var req consensusModel.SetRevisionDeadlineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.service.SetRevisionDeadline(c.Request.Context(), c.Param("id"), req.Deadline); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterResubmission handles POST /consensus/submissions/:id/resubmit request.
// @Summary Open the next review round for a revised submission
// @Tags Consensus
// @Produce json
// @Param id path string true "Submission ID"
// @Success 204 "No content"
// @Failure 404 {object} ErrorResponse "Submission not found"
// @Failure 422 {object} ErrorResponse "Submission is not awaiting revision"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /consensus/submissions/{id}/resubmit [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) RegisterResubmission(c *gin.Context) {
	if err := h.service.RegisterResubmission(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ProcessOverdueRevisions handles POST /consensus/overdue/process request.
// @Summary Run one overdue-revision sweep pass
// @Tags Consensus
// @Produce json
// @Success 200 {object} consensusModel.OverdueSweepResult
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /consensus/overdue/process [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ProcessOverdueRevisions(c *gin.Context) {
	resp, err := h.service.ProcessOverdueRevisions(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// respondError maps domain errors onto structured HTTP responses.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, submissionModel.ErrInvalidSubmissionID),
		errors.Is(err, consensusModel.ErrInvalidDecision),
		errors.Is(err, consensusModel.ErrDeadlineInPast):
		errorResponse(c, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
	case errors.Is(err, submissionModel.ErrSubmissionNotFound):
		errorResponse(c, "NOT_FOUND", "submission not found", http.StatusNotFound)
	case errors.Is(err, consensusModel.ErrNotConflicted):
		errorResponse(c, "NOT_CONFLICTED", "submission is not conflicted", http.StatusUnprocessableEntity)
	case errors.Is(err, consensusModel.ErrNotRevisionRequired):
		errorResponse(c, "NOT_REVISION_REQUIRED", "submission is not awaiting revision", http.StatusUnprocessableEntity)
	case errors.Is(err, submissionModel.ErrInvalidStatusTransition):
		errorResponse(c, "INVALID_TRANSITION", "illegal submission status transition", http.StatusUnprocessableEntity)
	default:
		h.logger.Errorw("consensus request failed", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
