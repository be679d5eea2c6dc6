// Package handler provides HTTP handlers for reviewer endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	reviewerModel "github.com/festy23/capstone_review/internal/reviewer/model"
	"github.com/festy23/capstone_review/internal/reviewer/service"
)

// Handler handles HTTP requests for reviewer endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new reviewer handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetPerformance handles GET /reviewers/:id/performance request.
// @Summary Get the performance sub-scores of a reviewer
// @Tags Reviewers
// @Produce json
// @Param id path string true "Reviewer ID"
// @Param semester_id query string false "Semester scope"
// @Success 200 {object} reviewerModel.PerformanceBreakdown
// @Failure 400 {object} ErrorResponse "Bad request (VALIDATION_ERROR)"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /reviewers/{id}/performance [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetPerformance(c *gin.Context) {
	reviewerID := c.Param("id")
	semesterID := c.Query("semester_id")

	breakdown, err := h.service.Breakdown(c.Request.Context(), reviewerID, semesterID)
	if err != nil {
		if errors.Is(err, reviewerModel.ErrInvalidReviewerID) {
			errorResponse(c, "VALIDATION_ERROR", "reviewer id is required", http.StatusBadRequest)
			return
		}
		h.logger.Errorw("error getting reviewer performance", "reviewer_id", reviewerID, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, breakdown)
}
