package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/growsmart/cropadvisor/internal/config"
	"github.com/growsmart/cropadvisor/internal/domain"
)

// HTTPClient implements Classifier over HuggingFace-style inference
// endpoints. Backends are probed in priority order: the specialized plant
// model first, general-purpose fallbacks after it. A failed backend is
// skipped silently; the caller only sees an error when every backend in the
// list has failed.
type HTTPClient struct {
	config     *config.InferenceConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// prediction is one entry of the backend's response array.
type prediction struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// NewHTTPClient creates a classification client for the configured backends.
func NewHTTPClient(cfg *config.InferenceConfig, logger *zap.Logger) *HTTPClient {
	return &HTTPClient{
		config:     cfg,
		httpClient: &http.Client{},
		logger:     logger.Named("inference"),
	}
}

// Classify sends the image through the ordered backend list and returns the
// first backend's top prediction. Each backend call runs under its own
// timeout so a hanging specialized model cannot consume the fallback's
// budget.
func (c *HTTPClient) Classify(ctx context.Context, image []byte) (domain.ClassificationResult, error) {
	for i, backend := range c.config.Backends {
		result, err := c.classifyOnce(ctx, backend, image)
		if err == nil {
			c.logger.Debug("backend classified image",
				zap.String("backend", backend),
				zap.String("label", result.RawLabel),
				zap.Float64("score", result.Confidence),
			)
			return result, nil
		}

		// Cancellation of the whole request is terminal; a single
		// backend failing is not.
		if ctx.Err() != nil {
			return domain.ClassificationResult{}, domain.WrapError("classify", ctx.Err(), false)
		}

		c.logger.Warn("backend failed, trying next",
			zap.String("backend", backend),
			zap.Int("remaining", len(c.config.Backends)-i-1),
			zap.Error(err),
		)
	}

	return domain.ClassificationResult{},
		domain.WrapError("classify", domain.ErrNoBackendAvailable, true)
}

func (c *HTTPClient) classifyOnce(ctx context.Context, backend string, image []byte) (domain.ClassificationResult, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, backend, bytes.NewReader(image))
	if err != nil {
		return domain.ClassificationResult{}, domain.WrapError("create_request", err, false)
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if attemptCtx.Err() != nil {
			return domain.ClassificationResult{}, domain.WrapError("backend_timeout", domain.ErrUpstreamTimeout, true)
		}
		return domain.ClassificationResult{}, domain.WrapError("http_request", err, true)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ClassificationResult{}, domain.WrapError("read_response", err, true)
	}

	if resp.StatusCode != http.StatusOK {
		return domain.ClassificationResult{}, domain.WrapError("backend_status",
			fmt.Errorf("backend returned status %d: %s", resp.StatusCode, truncate(string(body), 200)), true)
	}

	var preds []prediction
	if err := json.Unmarshal(body, &preds); err != nil {
		return domain.ClassificationResult{}, domain.WrapError("parse_response", domain.ErrInvalidResponse, false)
	}

	top, err := topPrediction(preds)
	if err != nil {
		return domain.ClassificationResult{}, err
	}

	return domain.ClassificationResult{
		RawLabel:   top.Label,
		Confidence: top.Score,
		Backend:    backend,
	}, nil
}

// topPrediction validates the response array and returns its first entry.
// Backends report predictions ordered by score.
func topPrediction(preds []prediction) (prediction, error) {
	if len(preds) == 0 {
		return prediction{}, domain.WrapError("empty_prediction", domain.ErrInvalidResponse, false)
	}
	top := preds[0]
	if top.Label == "" {
		return prediction{}, domain.WrapError("blank_label", domain.ErrInvalidResponse, false)
	}
	if top.Score < 0 || top.Score > 1 {
		return prediction{}, domain.WrapError("score_range",
			fmt.Errorf("%w: score %f outside [0,1]", domain.ErrInvalidResponse, top.Score), false)
	}
	return top, nil
}

// HealthCheck verifies the first backend is reachable. Any HTTP response,
// including an error status, counts as reachable.
func (c *HTTPClient) HealthCheck(ctx context.Context) error {
	if len(c.config.Backends) == 0 {
		return domain.WrapError("health_check", domain.ErrNoBackendAvailable, false)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.Backends[0], nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.WrapError("health_check", domain.ErrUpstreamUnavailable, true)
	}
	resp.Body.Close()
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
