// Package handler provides HTTP handlers for workload endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/capstone_review/internal/workload/service"
)

// Handler handles HTTP requests for workload endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new workload handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetReviewersWorkload handles GET /reviewers/workload request.
// @Summary Get active/completed assignment counts for all reviewers
// @Tags Workload
// @Produce json
// @Success 200 {object} model.ReviewersWorkloadResponse
// @Failure 500 {object} ErrorResponse
// @Router /reviewers/workload [get] //nolint:godot // Swagger annotation should not end with period
func (h *Handler) GetReviewersWorkload(c *gin.Context) {
	resp, err := h.service.GetReviewersWorkload(c.Request.Context())
	if err != nil {
		h.logger.Errorw("error getting reviewers workload", "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
