package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/growsmart/cropadvisor/internal/domain"
)

// MarketReporter is the slice of the record store the market handler needs.
type MarketReporter interface {
	MarketReport(ctx context.Context, location string, crops []string) (*domain.MarketReport, error)
}

// MarketHandler serves crop price lookups from the record store.
type MarketHandler struct {
	store  MarketReporter
	logger *zap.Logger
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(store MarketReporter, logger *zap.Logger) *MarketHandler {
	return &MarketHandler{
		store:  store,
		logger: logger.Named("market_handler"),
	}
}

type marketRequest struct {
	Location string   `json:"location"`
	Crops    []string `json:"crops"`
}

// Handle processes POST /market-prices requests.
func (h *MarketHandler) Handle(c *gin.Context) {
	var req marketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	report, err := h.store.MarketReport(c.Request.Context(), req.Location, req.Crops)
	if err != nil {
		h.logger.Error("market report failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unable to fetch market prices"})
		return
	}

	c.JSON(http.StatusOK, report)
}
