// Package handler provides HTTP handlers for review endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	assignmentModel "github.com/festy23/capstone_review/internal/assignment/model"
	reviewModel "github.com/festy23/capstone_review/internal/review/model"
	"github.com/festy23/capstone_review/internal/review/service"
	submissionModel "github.com/festy23/capstone_review/internal/submission/model"
)

// Handler handles HTTP requests for review endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new review handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateSubmissionReview handles POST /reviews request.
// @Summary Create a review against an active assignment
// @Tags Reviews
// @Accept json
// @Produce json
// @Param request body reviewModel.CreateReviewRequest true "Review request"
// @Success 201 {object} reviewModel.ReviewResponse
// @Failure 400 {object} ErrorResponse "Bad request (VALIDATION_ERROR)"
// @Failure 404 {object} ErrorResponse "Assignment not found"
// @Failure 409 {object} ErrorResponse "A review already exists for this assignment"
// @Failure 422 {object} ErrorResponse "Assignment not active or reviewer mismatch"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /reviews [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) CreateSubmissionReview(c *gin.Context) {
	var req reviewModel.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.CreateSubmissionReview(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetReview handles GET /reviews/:id request.
// @Summary Get one review with its criterion scores
// @Tags Reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} reviewModel.ReviewResponse
// @Failure 404 {object} ErrorResponse "Review not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /reviews/{id} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetReview(c *gin.Context) {
	resp, err := h.service.GetReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetReviewByAssignment handles GET /assignments/:id/review request.
// @Summary Get the review anchored to an assignment
// @Tags Reviews
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} reviewModel.ReviewResponse
// @Failure 400 {object} ErrorResponse "Bad request (VALIDATION_ERROR)"
// @Failure 404 {object} ErrorResponse "Review not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /assignments/{id}/review [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetReviewByAssignment(c *gin.Context) {
	assignmentID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || assignmentID <= 0 {
		errorResponse(c, "VALIDATION_ERROR", "assignment id must be a positive integer", http.StatusBadRequest)
		return
	}

	resp, err := h.service.GetReviewByAssignment(c.Request.Context(), assignmentID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// SubmitReview handles POST /reviews/:id/submit request.
// @Summary Submit a draft review
// @Tags Reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} reviewModel.ReviewResponse
// @Failure 404 {object} ErrorResponse "Review not found"
// @Failure 422 {object} ErrorResponse "Illegal review status transition"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /reviews/{id}/submit [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) SubmitReview(c *gin.Context) {
	resp, err := h.service.SubmitReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// WithdrawReview handles POST /reviews/:id/withdraw request.
// @Summary Withdraw a submitted review
// @Tags Reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 200 {object} reviewModel.ReviewResponse
// @Failure 404 {object} ErrorResponse "Review not found"
// @Failure 409 {object} ErrorResponse "Submission already finalized"
// @Failure 422 {object} ErrorResponse "Illegal review status transition"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /reviews/{id}/withdraw [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) WithdrawReview(c *gin.Context) {
	resp, err := h.service.WithdrawReview(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteDraft handles DELETE /reviews/:id request.
// @Summary Delete a draft review
// @Tags Reviews
// @Produce json
// @Param id path string true "Review ID"
// @Success 204 "No content"
// @Failure 404 {object} ErrorResponse "Review not found"
// @Failure 422 {object} ErrorResponse "Review is not a draft"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /reviews/{id} [delete] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) DeleteDraft(c *gin.Context) {
	if err := h.service.DeleteDraft(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// respondError maps domain errors onto structured HTTP responses.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reviewModel.ErrInvalidReviewID),
		errors.Is(err, reviewModel.ErrInvalidRecommendation),
		errors.Is(err, reviewModel.ErrScoreOutOfRange),
		errors.Is(err, reviewModel.ErrUnknownCriterion),
		errors.Is(err, reviewModel.ErrMissingCriterion),
		errors.Is(err, assignmentModel.ErrInvalidAssignmentID):
		errorResponse(c, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
	case errors.Is(err, reviewModel.ErrReviewNotFound):
		errorResponse(c, "NOT_FOUND", "review not found", http.StatusNotFound)
	case errors.Is(err, assignmentModel.ErrAssignmentNotFound):
		errorResponse(c, "NOT_FOUND", "assignment not found", http.StatusNotFound)
	case errors.Is(err, submissionModel.ErrSubmissionNotFound):
		errorResponse(c, "NOT_FOUND", "submission not found", http.StatusNotFound)
	case errors.Is(err, reviewModel.ErrReviewAlreadyExists):
		errorResponse(c, "REVIEW_EXISTS", "a review already exists for this assignment", http.StatusConflict)
	case errors.Is(err, reviewModel.ErrReviewImmutable):
		errorResponse(c, "REVIEW_IMMUTABLE", "submission is finalized, review cannot change", http.StatusConflict)
	case errors.Is(err, reviewModel.ErrAssignmentNotActive):
		errorResponse(c, "ASSIGNMENT_NOT_ACTIVE", "assignment is not active", http.StatusUnprocessableEntity)
	case errors.Is(err, reviewModel.ErrReviewerMismatch):
		errorResponse(c, "REVIEWER_MISMATCH", "reviewer does not own this assignment", http.StatusUnprocessableEntity)
	case errors.Is(err, reviewModel.ErrReviewNotDraft),
		errors.Is(err, reviewModel.ErrInvalidTransition):
		errorResponse(c, "INVALID_TRANSITION", "illegal review status transition", http.StatusUnprocessableEntity)
	case errors.Is(err, submissionModel.ErrNoActiveCriteria):
		errorResponse(c, "NO_ACTIVE_CRITERIA", "no active evaluation criteria for the semester", http.StatusUnprocessableEntity)
	default:
		h.logger.Errorw("review request failed", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
