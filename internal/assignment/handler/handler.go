// Package handler provides HTTP handlers for assignment endpoints.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	assignmentModel "github.com/festy23/capstone_review/internal/assignment/model"
	"github.com/festy23/capstone_review/internal/assignment/service"
	matchingModel "github.com/festy23/capstone_review/internal/matching/model"
	reviewerModel "github.com/festy23/capstone_review/internal/reviewer/model"
	submissionModel "github.com/festy23/capstone_review/internal/submission/model"
)

// Handler handles HTTP requests for assignment endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new assignment handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// AssignReviewer handles POST /assignments request.
// @Summary Assign a reviewer to a submission
// @Tags Assignments
// @Accept json
// @Produce json
// @Param request body assignmentModel.AssignReviewerRequest true "Assignment request"
// @Success 201 {object} assignmentModel.AssignmentResponse
// @Failure 400 {object} ErrorResponse "Bad request (VALIDATION_ERROR)"
// @Failure 404 {object} ErrorResponse "Submission or reviewer not found"
// @Failure 409 {object} ErrorResponse "Reviewer already assigned (DUPLICATE_ASSIGNMENT)"
// @Failure 422 {object} ErrorResponse "Reviewer not eligible"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /assignments [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) AssignReviewer(c *gin.Context) {
	var req assignmentModel.AssignReviewerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.AssignReviewer(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// BulkAssignReviewers handles POST /assignments/bulk request.
// @Summary Assign several reviewers in one call with per-item outcomes
// @Tags Assignments
// @Accept json
// @Produce json
// @Param request body assignmentModel.BulkAssignRequest true "Bulk assignment request"
// @Success 200 {object} assignmentModel.BulkAssignResponse
// @Failure 400 {object} ErrorResponse "Bad request (VALIDATION_ERROR)"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /assignments/bulk [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) BulkAssignReviewers(c *gin.Context) {
	var req assignmentModel.BulkAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.BulkAssignReviewers(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// AutoAssignReviewers handles POST /assignments/auto request.
// @Summary Auto-assign the top-ranked reviewers to a submission
// @Tags Assignments
// @Accept json
// @Produce json
// @Param request body assignmentModel.AutoAssignRequest true "Auto-assignment request"
// @Success 200 {object} assignmentModel.AutoAssignResponse
// @Failure 400 {object} ErrorResponse "Bad request (VALIDATION_ERROR)"
// @Failure 404 {object} ErrorResponse "Submission not found"
// @Failure 422 {object} ErrorResponse "No eligible candidates"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /assignments/auto [post] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) AutoAssignReviewers(c *gin.Context) {
	var req assignmentModel.AutoAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.AutoAssignReviewers(c.Request.Context(), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetAssignment handles GET /assignments/:id request.
// @Summary Get one assignment by id
// @Tags Assignments
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 200 {object} assignmentModel.AssignmentResponse
// @Failure 400 {object} ErrorResponse "Bad request (VALIDATION_ERROR)"
// @Failure 404 {object} ErrorResponse "Assignment not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /assignments/{id} [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetAssignment(c *gin.Context) {
	id, ok := h.assignmentID(c)
	if !ok {
		return
	}

	resp, err := h.service.GetAssignment(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListSubmissionAssignments handles GET /submissions/:id/assignments request.
// @Summary List all assignments of a submission
// @Tags Assignments
// @Produce json
// @Param id path string true "Submission ID"
// @Success 200 {array} assignmentModel.AssignmentResponse
// @Failure 404 {object} ErrorResponse "Submission not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /submissions/{id}/assignments [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) ListSubmissionAssignments(c *gin.Context) {
	resp, err := h.service.ListSubmissionAssignments(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateAssignmentStatus handles PATCH /assignments/:id/status request.
// @Summary Move an assignment through its state machine
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path int true "Assignment ID"
// @Param request body assignmentModel.UpdateStatusRequest true "Target status"
// @Success 200 {object} assignmentModel.AssignmentResponse
// @Failure 400 {object} ErrorResponse "Bad request (VALIDATION_ERROR)"
// @Failure 404 {object} ErrorResponse "Assignment not found"
// @Failure 422 {object} ErrorResponse "Illegal status transition"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /assignments/{id}/status [patch] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) UpdateAssignmentStatus(c *gin.Context) {
	id, ok := h.assignmentID(c)
	if !ok {
		return
	}

	var req assignmentModel.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errorResponse(c, "VALIDATION_ERROR", "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.UpdateAssignmentStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RemoveAssignment handles DELETE /assignments/:id request.
// @Summary Remove an assignment that has no review anchored to it
// @Tags Assignments
// @Produce json
// @Param id path int true "Assignment ID"
// @Success 204 "No content"
// @Failure 400 {object} ErrorResponse "Bad request (VALIDATION_ERROR)"
// @Failure 404 {object} ErrorResponse "Assignment not found"
// @Failure 409 {object} ErrorResponse "A review is anchored to this assignment"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /assignments/{id} [delete] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) RemoveAssignment(c *gin.Context) {
	id, ok := h.assignmentID(c)
	if !ok {
		return
	}

	if err := h.service.RemoveAssignment(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// assignmentID parses the numeric assignment id path parameter.
func (h *Handler) assignmentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		errorResponse(c, "VALIDATION_ERROR", "assignment id must be a positive integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// respondError maps domain errors onto structured HTTP responses.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, submissionModel.ErrInvalidSubmissionID),
		errors.Is(err, reviewerModel.ErrInvalidReviewerID),
		errors.Is(err, assignmentModel.ErrInvalidAssignmentID),
		errors.Is(err, assignmentModel.ErrInvalidAssignmentType),
		errors.Is(err, assignmentModel.ErrEmptyBulkRequest):
		errorResponse(c, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
	case errors.Is(err, submissionModel.ErrSubmissionNotFound):
		errorResponse(c, "NOT_FOUND", "submission not found", http.StatusNotFound)
	case errors.Is(err, reviewerModel.ErrReviewerNotFound):
		errorResponse(c, "NOT_FOUND", "reviewer not found", http.StatusNotFound)
	case errors.Is(err, assignmentModel.ErrAssignmentNotFound):
		errorResponse(c, "NOT_FOUND", "assignment not found", http.StatusNotFound)
	case errors.Is(err, assignmentModel.ErrDuplicateAssignment):
		errorResponse(c, "DUPLICATE_ASSIGNMENT", "reviewer is already assigned to this submission", http.StatusConflict)
	case errors.Is(err, assignmentModel.ErrAssignmentHasReview):
		errorResponse(c, "ASSIGNMENT_HAS_REVIEW", "a review is anchored to this assignment", http.StatusConflict)
	case errors.Is(err, assignmentModel.ErrReviewerNotEligible):
		errorResponse(c, "REVIEWER_NOT_ELIGIBLE", "reviewer is not eligible for this submission", http.StatusUnprocessableEntity)
	case errors.Is(err, reviewerModel.ErrReviewerInactive):
		errorResponse(c, "REVIEWER_INACTIVE", "reviewer is inactive", http.StatusUnprocessableEntity)
	case errors.Is(err, assignmentModel.ErrInvalidTransition):
		errorResponse(c, "INVALID_TRANSITION", "illegal assignment status transition", http.StatusUnprocessableEntity)
	case errors.Is(err, matchingModel.ErrNoEligibleCandidates):
		errorResponse(c, "NO_ELIGIBLE_CANDIDATES", "no eligible candidates could be assigned", http.StatusUnprocessableEntity)
	case errors.Is(err, submissionModel.ErrInvalidStatusTransition):
		errorResponse(c, "SUBMISSION_CLOSED", "submission no longer accepts assignments", http.StatusUnprocessableEntity)
	default:
		h.logger.Errorw("assignment request failed", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
