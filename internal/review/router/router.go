// Package router provides review module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/capstone_review/internal/review/handler"
	"github.com/festy23/capstone_review/internal/review/service"
)

// RegisterRoutes registers review module routes.
func RegisterRoutes(r *gin.Engine, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	r.POST("/reviews", h.CreateSubmissionReview)
	r.GET("/reviews/:id", h.GetReview)
	r.POST("/reviews/:id/submit", h.SubmitReview)
	r.POST("/reviews/:id/withdraw", h.WithdrawReview)
	r.DELETE("/reviews/:id", h.DeleteDraft)
	r.GET("/assignments/:id/review", h.GetReviewByAssignment)
}
