// Package router provides matching module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/capstone_review/internal/matching/handler"
	"github.com/festy23/capstone_review/internal/matching/service"
)

// RegisterRoutes registers matching module routes.
func RegisterRoutes(r *gin.Engine, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	r.GET("/matching/submissions/:id/available", h.GetAvailableReviewers)
	r.GET("/matching/submissions/:id/recommended", h.GetRecommendedReviewers)
	r.GET("/matching/submissions/:id/reviewers/:reviewerId", h.AnalyzeReviewerMatch)
}
