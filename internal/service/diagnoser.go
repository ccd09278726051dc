// Package service contains the business logic layer.
package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/growsmart/cropadvisor/internal/care"
	"github.com/growsmart/cropadvisor/internal/diagnosis"
	"github.com/growsmart/cropadvisor/internal/domain"
	"github.com/growsmart/cropadvisor/internal/inference"
	"github.com/growsmart/cropadvisor/internal/recommend"
	"github.com/growsmart/cropadvisor/internal/taxonomy"
	"github.com/growsmart/cropadvisor/pkg/imagecheck"
)

// Diagnoser orchestrates the image diagnosis pipeline:
// classify -> resolve -> score -> recommend.
type Diagnoser struct {
	classifier inference.Classifier
	resolver   *taxonomy.Resolver
	scorer     *diagnosis.Scorer
	retriever  *recommend.Retriever
	checker    *imagecheck.Checker
	logger     *zap.Logger
}

// NewDiagnoser creates a Diagnoser with all dependencies.
func NewDiagnoser(
	classifier inference.Classifier,
	resolver *taxonomy.Resolver,
	scorer *diagnosis.Scorer,
	retriever *recommend.Retriever,
	checker *imagecheck.Checker,
	logger *zap.Logger,
) *Diagnoser {
	return &Diagnoser{
		classifier: classifier,
		resolver:   resolver,
		scorer:     scorer,
		retriever:  retriever,
		checker:    checker,
		logger:     logger.Named("diagnoser"),
	}
}

// Diagnose runs the full disease diagnosis pipeline over an image. region
// optionally restricts regional alerts. The only hard failures are invalid
// input and total backend unavailability.
func (d *Diagnoser) Diagnose(ctx context.Context, image []byte, region string) (*domain.Diagnosis, error) {
	startTime := time.Now()

	if err := d.checkImage(image); err != nil {
		return nil, err
	}

	classification, err := d.classifier.Classify(ctx, image)
	if err != nil {
		d.logger.Error("classification failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(startTime)),
		)
		return nil, err
	}

	cond := d.resolver.Resolve(classification.RawLabel)
	confidencePct := roundPercent(classification.Confidence)

	result := d.scorer.Score(cond, confidencePct)

	if cond.IsHealthy {
		// Healthy plants get the baseline prevention measures and no
		// treatment or alert lookups.
		result.Treatments = []domain.TreatmentRecord{}
		result.RegionalAlerts = []domain.RegionalAlert{}
		result.Prevention = d.retriever.Prevention(cond.Canonical)
	} else {
		recs := d.retriever.For(ctx, cond.Canonical, region)
		result.Treatments = recs.Treatments
		result.RegionalAlerts = recs.Alerts
		result.Prevention = recs.Prevention
	}

	d.logger.Info("diagnosis completed",
		zap.String("disease", result.DiseaseName),
		zap.Int("confidence", result.Confidence),
		zap.String("severity", string(result.SeverityLevel)),
		zap.String("emergency", string(result.EmergencyLevel)),
		zap.Bool("healthy", result.IsHealthy),
		zap.Duration("duration", time.Since(startTime)),
	)

	return &result, nil
}

// Identify runs the plant identification pipeline: classify the image and
// compose care guidance for the identified plant.
func (d *Diagnoser) Identify(ctx context.Context, image []byte) (*domain.IdentificationResult, error) {
	if err := d.checkImage(image); err != nil {
		return nil, err
	}

	classification, err := d.classifier.Classify(ctx, image)
	if err != nil {
		d.logger.Error("identification failed", zap.Error(err))
		return nil, err
	}

	plantName := care.CleanName(classification.RawLabel)
	result := care.Compose(classification, plantName, roundPercent(classification.Confidence))

	d.logger.Info("identification completed",
		zap.String("plant", result.PlantName),
		zap.Int("confidence", result.Confidence),
	)

	return &result, nil
}

func (d *Diagnoser) checkImage(image []byte) error {
	if d.checker.IsEmpty(image) {
		return domain.ErrNoImage
	}
	if d.checker.IsTooLarge(image) {
		return domain.ErrImageTooLarge
	}

	stats, ok := d.checker.Check(image)
	if !ok {
		d.logger.Warn("rejected image payload",
			zap.Int("size", stats.Size),
			zap.String("content_type", stats.ContentType),
		)
		return domain.ErrUnsupportedImage
	}

	d.logger.Debug("image accepted",
		zap.Int("size", stats.Size),
		zap.String("content_type", stats.ContentType),
	)
	return nil
}

// roundPercent converts a [0,1] confidence to an integer percentage. This
// is the single place raw confidence gets rounded.
func roundPercent(confidence float64) int {
	return int(math.Round(confidence * 100))
}
