// Package inference provides the classification backend client.
package inference

import (
	"context"

	"github.com/growsmart/cropadvisor/internal/domain"
)

// Classifier defines the interface for image classification backends.
// This interface allows for easy mocking and swapping of providers.
type Classifier interface {
	// Classify sends an image to the classification backends and returns
	// the top prediction. The context should carry timeout and
	// cancellation signals.
	Classify(ctx context.Context, image []byte) (domain.ClassificationResult, error)

	// HealthCheck verifies at least one backend is reachable.
	HealthCheck(ctx context.Context) error
}
