package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/growsmart/cropadvisor/internal/advisory"
	"github.com/growsmart/cropadvisor/internal/domain"
)

// defaultLanguage is assumed when the caller supplies no language tag.
const defaultLanguage = "english"

// Advisor handles conversational advisory requests.
type Advisor struct {
	client *advisory.Client
	logger *zap.Logger
}

// NewAdvisor creates an Advisor over the resilient advisory client.
func NewAdvisor(client *advisory.Client, logger *zap.Logger) *Advisor {
	return &Advisor{
		client: client,
		logger: logger.Named("advisor"),
	}
}

// Ask answers an advisory question. An empty question is the only error;
// upstream failures degrade to fallback text inside the client, so a valid
// question always yields a response.
func (a *Advisor) Ask(ctx context.Context, req *domain.AdvisoryRequest) (*domain.AdvisoryResponse, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" {
		return nil, domain.ErrEmptyQuestion
	}

	language := req.Language
	if language == "" {
		language = defaultLanguage
	}

	conversationID := req.ConversationID
	if conversationID == "" {
		conversationID = uuid.NewString()
	}

	exchange := a.client.Ask(ctx, question, language)

	a.logger.Info("advisory exchange completed",
		zap.String("conversation_id", conversationID),
		zap.String("language", language),
		zap.String("status", string(exchange.Status)),
		zap.Int("attempts", exchange.AttemptCount),
		zap.Int("response_length", len(exchange.ResponseText)),
	)

	return &domain.AdvisoryResponse{
		Response:       exchange.ResponseText,
		Language:       language,
		ConversationID: conversationID,
		Status:         exchange.Status,
		Timestamp:      time.Now().UTC(),
	}, nil
}
