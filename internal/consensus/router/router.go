// Package router provides consensus module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/capstone_review/internal/consensus/handler"
	"github.com/festy23/capstone_review/internal/consensus/service"
)

// RegisterRoutes registers consensus module routes.
func RegisterRoutes(r *gin.Engine, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	r.GET("/consensus/submissions/:id/summary", h.GetSubmissionReviewSummary)
	r.GET("/consensus/conflicted", h.GetConflictedSubmissions)
	r.POST("/consensus/submissions/:id/moderator-review", h.ModeratorFinalReview)
	r.PUT("/consensus/submissions/:id/revision-deadline", h.SetRevisionDeadline)
	r.POST("/consensus/submissions/:id/resubmit", h.RegisterResubmission)
	r.POST("/consensus/overdue/process", h.ProcessOverdueRevisions)
}
