// Package router provides workload module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/capstone_review/internal/workload/handler"
	"github.com/festy23/capstone_review/internal/workload/service"
)

// RegisterRoutes registers workload module routes.
func RegisterRoutes(r *gin.Engine, svc service.Service, logger *zap.SugaredLogger) {
	h := handler.New(svc, logger)

	r.GET("/reviewers/workload", h.GetReviewersWorkload)
}
