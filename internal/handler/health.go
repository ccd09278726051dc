package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/growsmart/cropadvisor/internal/inference"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	logger *zap.Logger
}

// NewHealthHandler creates a new HealthHandler.
func NewHealthHandler(logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		logger: logger.Named("health_handler"),
	}
}

// Handle processes GET /health requests.
func (h *HealthHandler) Handle(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadyHandler handles readiness check requests.
type ReadyHandler struct {
	classifier inference.Classifier
	logger     *zap.Logger
}

// NewReadyHandler creates a new ReadyHandler.
func NewReadyHandler(classifier inference.Classifier, logger *zap.Logger) *ReadyHandler {
	return &ReadyHandler{
		classifier: classifier,
		logger:     logger.Named("ready_handler"),
	}
}

// Handle processes GET /ready requests. Readiness pings the primary
// classification backend; the advisory upstream is intentionally excluded
// since the chat path degrades gracefully without it.
func (h *ReadyHandler) Handle(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.classifier.HealthCheck(ctx); err != nil {
		h.logger.Warn("readiness check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
