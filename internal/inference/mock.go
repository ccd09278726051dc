package inference

import (
	"context"

	"go.uber.org/zap"

	"github.com/growsmart/cropadvisor/internal/domain"
)

// MockClassifier implements Classifier for testing and for running the
// service without backend credentials.
type MockClassifier struct {
	logger *zap.Logger
}

// NewMockClassifier creates a mock classifier.
func NewMockClassifier(logger *zap.Logger) *MockClassifier {
	return &MockClassifier{
		logger: logger.Named("mock_inference"),
	}
}

// Classify returns a canned classification.
func (c *MockClassifier) Classify(ctx context.Context, image []byte) (domain.ClassificationResult, error) {
	c.logger.Debug("mock classification", zap.Int("image_bytes", len(image)))

	return domain.ClassificationResult{
		RawLabel:   "Tomato___Late_blight",
		Confidence: 0.92,
		Backend:    "mock",
	}, nil
}

// HealthCheck always returns success for the mock classifier.
func (c *MockClassifier) HealthCheck(ctx context.Context) error {
	return nil
}
