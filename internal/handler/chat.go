package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/growsmart/cropadvisor/internal/domain"
	"github.com/growsmart/cropadvisor/internal/service"
)

// ChatHandler handles conversational advisory requests.
type ChatHandler struct {
	advisor *service.Advisor
	logger  *zap.Logger
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(advisor *service.Advisor, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		advisor: advisor,
		logger:  logger.Named("chat_handler"),
	}
}

// Handle processes POST /chat requests. The contract guarantees a 200
// response with usable text for every well-formed question; an empty
// question is the only client error.
func (h *ChatHandler) Handle(c *gin.Context) {
	startTime := time.Now()
	logger := h.logger.With(zap.String("request_id", c.GetString("request_id")))

	var req domain.AdvisoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("invalid chat request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrEmptyQuestion.Error()})
		return
	}

	response, err := h.advisor.Ask(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyQuestion) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		logger.Error("advisory request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error during advisory request"})
		return
	}

	logger.Info("chat request completed",
		zap.String("status", string(response.Status)),
		zap.Duration("duration", time.Since(startTime)),
	)
	c.JSON(http.StatusOK, response)
}
