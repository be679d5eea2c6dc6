// Package router provides reviewer module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/capstone_review/internal/reviewer/handler"
	"github.com/festy23/capstone_review/internal/reviewer/service"
)

// RegisterRoutes registers reviewer module routes.
func RegisterRoutes(r *gin.Engine, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	r.GET("/reviewers/:id/performance", h.GetPerformance)
}
