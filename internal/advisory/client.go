// Package advisory drives conversational advisory requests against a
// loosely-specified upstream chat service.
//
// The upstream contract is unreliable in two ways: the request schema it
// accepts is not pinned down, and it fails intermittently with 5xx/429.
// The client answers with schema probing (an ordered list of payload
// shapes), bounded retry with linear backoff, and language-aware fallback
// synthesis, so callers always receive usable text.
package advisory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/growsmart/cropadvisor/internal/config"
	"github.com/growsmart/cropadvisor/internal/domain"
)

// promptInput carries everything a payload shape needs to build a request body.
type promptInput struct {
	Question string
	Language string
	System   string
	Model    string
}

// PayloadShape is one schema variant of the upstream request body.
type PayloadShape struct {
	Name  string
	Build func(in promptInput) ([]byte, error)
}

// DefaultPayloadShapes returns the schema variants in probe order. The
// chat-completions shape comes first since it is the most widely accepted.
func DefaultPayloadShapes() []PayloadShape {
	return []PayloadShape{
		{
			Name: "chat_completions",
			Build: func(in promptInput) ([]byte, error) {
				return json.Marshal(map[string]any{
					"model": in.Model,
					"messages": []map[string]string{
						{"role": "system", "content": in.System},
						{"role": "user", "content": in.Question},
					},
					"temperature": 0.7,
					"max_tokens":  1000,
					"top_p":       0.9,
				})
			},
		},
		{
			Name: "prompt",
			Build: func(in promptInput) ([]byte, error) {
				return json.Marshal(map[string]any{
					"model":    in.Model,
					"prompt":   in.System + "\n\n" + in.Question,
					"language": in.Language,
				})
			},
		},
		{
			Name: "plain_question",
			Build: func(in promptInput) ([]byte, error) {
				return json.Marshal(map[string]any{
					"question": in.Question,
					"language": in.Language,
				})
			},
		},
	}
}

// replyPaths are the response body fields probed for the reply text, in
// priority order. The first non-empty string wins.
var replyPaths = []string{
	"response",
	"message",
	"answer",
	"reply",
	"text",
	"content",
	"data.response",
	"data.message",
	"choices.0.message.content",
}

// extractReply probes the response body for a usable reply string.
func extractReply(body []byte) string {
	for _, path := range replyPaths {
		if value := strings.TrimSpace(gjson.GetBytes(body, path).String()); value != "" {
			return value
		}
	}
	return ""
}

// Client is the resilient advisory request client. Each request walks the
// state machine Pending -> Attempting(n) -> {Succeeded | Retrying | Failed};
// a Failed terminal state synthesizes a fallback reply instead of surfacing
// an error. Clients hold no per-request state and are safe for concurrent use.
type Client struct {
	config     *config.AdvisoryConfig
	httpClient *http.Client
	shapes     []PayloadShape
	fallbacks  *FallbackTable
	logger     *zap.Logger
}

// NewClient creates an advisory client.
func NewClient(cfg *config.AdvisoryConfig, fallbacks *FallbackTable, logger *zap.Logger) *Client {
	return &Client{
		config:     cfg,
		httpClient: &http.Client{},
		shapes:     DefaultPayloadShapes(),
		fallbacks:  fallbacks,
		logger:     logger.Named("advisory"),
	}
}

// Ask sends the question upstream and returns the exchange outcome. Ask
// never returns an error: exhausted retries, timeouts and non-retryable
// upstream failures all degrade to a synthesized fallback reply tagged with
// AdvisoryFallback.
func (c *Client) Ask(ctx context.Context, question, language string) domain.AdvisoryExchange {
	in := promptInput{
		Question: strings.TrimSpace(question),
		Language: language,
		System:   systemPrompt(language),
		Model:    c.config.Model,
	}

	attempts := 0
	for attempt := 1; attempt <= c.config.MaxAttempts; attempt++ {
		if attempt > 1 {
			// Retrying: linear backoff scaled by the attempt number
			// just completed, cancellable with the request.
			delay := time.Duration(attempt-1) * c.config.BaseDelay
			c.logger.Debug("retrying advisory request",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", delay),
			)
			select {
			case <-ctx.Done():
				return c.fallbackExchange(in, attempts)
			case <-time.After(delay):
			}
		}

		attempts = attempt
		shape := c.shapeFor(attempt)
		reply, err := c.attempt(ctx, shape, in)
		if err == nil {
			c.logger.Info("advisory reply received",
				zap.Int("attempts", attempts),
				zap.String("shape", shape.Name),
				zap.Int("reply_length", len(reply)),
			)
			return domain.AdvisoryExchange{
				Question:     in.Question,
				Language:     language,
				ResponseText: reply,
				Status:       domain.AdvisorySuccess,
				AttemptCount: attempts,
			}
		}

		if !domain.IsRetryable(err) {
			c.logger.Warn("advisory request failed terminally",
				zap.Int("attempt", attempt),
				zap.String("shape", shape.Name),
				zap.Error(err),
			)
			break
		}

		c.logger.Warn("advisory attempt failed",
			zap.Int("attempt", attempt),
			zap.String("shape", shape.Name),
			zap.Error(err),
		)
	}

	return c.fallbackExchange(in, attempts)
}

// shapeFor picks the payload shape for an attempt. In single-schema mode
// the first shape is retried; otherwise shapes rotate across attempts.
func (c *Client) shapeFor(attempt int) PayloadShape {
	if c.config.SingleSchema {
		return c.shapes[0]
	}
	return c.shapes[(attempt-1)%len(c.shapes)]
}

// attempt performs one upstream call under the per-attempt timeout.
func (c *Client) attempt(ctx context.Context, shape PayloadShape, in promptInput) (string, error) {
	payload, err := shape.Build(in)
	if err != nil {
		return "", domain.WrapError("build_payload", err, false)
	}

	attemptCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.config.URL, bytes.NewReader(payload))
	if err != nil {
		return "", domain.WrapError("create_request", err, false)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", c.config.APIKey))
	req.Header.Set("HTTP-Referer", "https://growsmart.ai")
	req.Header.Set("X-Title", "Grow Smart AI")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if attemptCtx.Err() != nil {
			// Per-attempt timeout is terminal, not retried.
			return "", domain.WrapError("advisory_timeout", domain.ErrUpstreamTimeout, false)
		}
		return "", domain.WrapError("http_request", err, true)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domain.WrapError("read_response", err, true)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return "", domain.WrapError("rate_limit", domain.ErrRateLimited, true)
	case resp.StatusCode >= 500:
		return "", domain.WrapError("upstream_unavailable", domain.ErrUpstreamUnavailable, true)
	case resp.StatusCode != http.StatusOK:
		return "", domain.WrapError("upstream_status",
			fmt.Errorf("upstream returned status %d", resp.StatusCode), false)
	}

	reply := extractReply(body)
	if reply == "" {
		return "", domain.WrapError("extract_reply", domain.ErrInvalidResponse, false)
	}
	return reply, nil
}

func (c *Client) fallbackExchange(in promptInput, attempts int) domain.AdvisoryExchange {
	c.logger.Info("synthesizing fallback reply",
		zap.String("language", in.Language),
		zap.Int("attempts", attempts),
	)
	return domain.AdvisoryExchange{
		Question:     in.Question,
		Language:     in.Language,
		ResponseText: c.fallbacks.Respond(in.Question, in.Language),
		Status:       domain.AdvisoryFallback,
		AttemptCount: attempts,
	}
}
