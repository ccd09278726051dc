package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/growsmart/cropadvisor/internal/domain"
	"github.com/growsmart/cropadvisor/internal/service"
)

// DiagnoseHandler handles disease diagnosis requests.
type DiagnoseHandler struct {
	diagnoser *service.Diagnoser
	logger    *zap.Logger
}

// NewDiagnoseHandler creates a new DiagnoseHandler.
func NewDiagnoseHandler(diagnoser *service.Diagnoser, logger *zap.Logger) *DiagnoseHandler {
	return &DiagnoseHandler{
		diagnoser: diagnoser,
		logger:    logger.Named("diagnose_handler"),
	}
}

// Handle processes POST /diagnose requests. The request is multipart form
// data with an "image" file and an optional "region" field.
func (h *DiagnoseHandler) Handle(c *gin.Context) {
	startTime := time.Now()
	logger := h.logger.With(zap.String("request_id", c.GetString("request_id")))

	image, ok := readImageFile(c)
	if !ok {
		logger.Warn("request carried no readable image")
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrNoImage.Error()})
		return
	}

	region := c.PostForm("region")

	result, err := h.diagnoser.Diagnose(c.Request.Context(), image, region)
	if err != nil {
		writePipelineError(c, logger, err)
		return
	}

	logger.Info("diagnosis request completed",
		zap.String("disease", result.DiseaseName),
		zap.Duration("duration", time.Since(startTime)),
	)
	c.JSON(http.StatusOK, result)
}

// IdentifyHandler handles plant identification requests.
type IdentifyHandler struct {
	diagnoser *service.Diagnoser
	logger    *zap.Logger
}

// NewIdentifyHandler creates a new IdentifyHandler.
func NewIdentifyHandler(diagnoser *service.Diagnoser, logger *zap.Logger) *IdentifyHandler {
	return &IdentifyHandler{
		diagnoser: diagnoser,
		logger:    logger.Named("identify_handler"),
	}
}

// Handle processes POST /identify requests.
func (h *IdentifyHandler) Handle(c *gin.Context) {
	logger := h.logger.With(zap.String("request_id", c.GetString("request_id")))

	image, ok := readImageFile(c)
	if !ok {
		logger.Warn("request carried no readable image")
		c.JSON(http.StatusBadRequest, gin.H{"error": domain.ErrNoImage.Error()})
		return
	}

	result, err := h.diagnoser.Identify(c.Request.Context(), image)
	if err != nil {
		writePipelineError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// readImageFile pulls the "image" file out of a multipart request.
func readImageFile(c *gin.Context) ([]byte, bool) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return nil, false
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, false
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		return nil, false
	}
	return image, true
}

// writePipelineError maps pipeline errors to HTTP responses: input problems
// are the caller's fault, backend exhaustion is a dependency outage,
// anything else is internal.
func writePipelineError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNoImage),
		errors.Is(err, domain.ErrImageTooLarge),
		errors.Is(err, domain.ErrUnsupportedImage):
		logger.Warn("rejected diagnosis input", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoBackendAvailable):
		logger.Error("all classification backends failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "Unable to identify plant disease. Please try a clearer image with better lighting.",
		})
	default:
		logger.Error("diagnosis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "An unexpected error occurred during disease identification. Please try again.",
		})
	}
}
