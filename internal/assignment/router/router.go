// Package router provides assignment module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/capstone_review/internal/assignment/handler"
	"github.com/festy23/capstone_review/internal/assignment/service"
)

// RegisterRoutes registers assignment module routes.
func RegisterRoutes(r *gin.Engine, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	r.POST("/assignments", h.AssignReviewer)
	r.POST("/assignments/bulk", h.BulkAssignReviewers)
	r.POST("/assignments/auto", h.AutoAssignReviewers)
	r.GET("/assignments/:id", h.GetAssignment)
	r.PATCH("/assignments/:id/status", h.UpdateAssignmentStatus)
	r.DELETE("/assignments/:id", h.RemoveAssignment)
	r.GET("/submissions/:id/assignments", h.ListSubmissionAssignments)
}
