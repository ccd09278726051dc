// Package recommend retrieves ranked treatment, alert and prevention
// guidance for a diagnosed condition.
package recommend

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/growsmart/cropadvisor/internal/domain"
)

// RecordStore is the read-only slice of the record store the retriever needs.
type RecordStore interface {
	TreatmentsFor(ctx context.Context, key string) ([]domain.TreatmentRecord, error)
	ActiveAlertsFor(ctx context.Context, key, region string, now time.Time) ([]domain.RegionalAlert, error)
}

// PreventionRule appends its measures when any keyword appears in the
// condition name. Every matching rule applies, in list order.
type PreventionRule struct {
	Keywords []string
	Measures []string
}

// DefaultPreventionRules returns the built-in prevention rules.
func DefaultPreventionRules() []PreventionRule {
	return []PreventionRule{
		{
			Keywords: []string{"blight", "fungal", "rust", "mold", "mildew"},
			Measures: []string{
				"Ensure proper air circulation around plants",
				"Avoid overhead watering",
				"Remove infected plant debris",
			},
		},
		{
			Keywords: []string{"bacterial"},
			Measures: []string{
				"Use disease-free seeds",
				"Disinfect tools between plants",
				"Avoid working with wet plants",
			},
		},
		{
			Keywords: []string{"virus", "mosaic"},
			Measures: []string{
				"Control insect vectors",
				"Remove infected plants immediately",
				"Use resistant varieties",
			},
		},
	}
}

// baselineMeasures apply to every non-healthy condition, after any rule hits.
var baselineMeasures = []string{
	"Regular crop rotation",
	"Maintain healthy soil conditions",
}

// Retriever fetches and ranks recommendations from the record store.
type Retriever struct {
	store  RecordStore
	rules  []PreventionRule
	logger *zap.Logger
}

// NewRetriever creates a Retriever over the given store.
func NewRetriever(store RecordStore, logger *zap.Logger) *Retriever {
	return &Retriever{
		store:  store,
		rules:  DefaultPreventionRules(),
		logger: logger.Named("recommend"),
	}
}

// Recommendations bundles the three recommendation lists.
type Recommendations struct {
	Treatments []domain.TreatmentRecord
	Alerts     []domain.RegionalAlert
	Prevention []string
}

// For returns ranked recommendations for the condition. Store failures
// degrade to empty lists rather than failing the diagnosis: missing curated
// data must not block a result the farmer can still act on.
func (r *Retriever) For(ctx context.Context, conditionName, region string) Recommendations {
	key := fuzzyKey(conditionName)

	treatments, err := r.store.TreatmentsFor(ctx, key)
	if err != nil {
		r.logger.Warn("treatment lookup failed", zap.String("key", key), zap.Error(err))
		treatments = nil
	}

	alerts, err := r.store.ActiveAlertsFor(ctx, key, region, time.Now())
	if err != nil {
		r.logger.Warn("alert lookup failed", zap.String("key", key), zap.Error(err))
		alerts = nil
	}

	if treatments == nil {
		treatments = []domain.TreatmentRecord{}
	}
	if alerts == nil {
		alerts = []domain.RegionalAlert{}
	}

	return Recommendations{
		Treatments: treatments,
		Alerts:     alerts,
		Prevention: r.Prevention(conditionName),
	}
}

// Prevention derives prevention measures from the condition name. The two
// baseline measures are always present, so the list is never empty.
func (r *Retriever) Prevention(conditionName string) []string {
	name := strings.ToLower(conditionName)

	var measures []string
	for _, rule := range r.rules {
		for _, kw := range rule.Keywords {
			if strings.Contains(name, kw) {
				measures = append(measures, rule.Measures...)
				break
			}
		}
	}
	return append(measures, baselineMeasures...)
}

// fuzzyKey builds the partial-match key: the first two tokens of the
// condition name, which keeps "Tomato Late Blight" matching records filed
// under either the full name or just "Tomato Late".
func fuzzyKey(conditionName string) string {
	tokens := strings.Fields(conditionName)
	if len(tokens) > 2 {
		tokens = tokens[:2]
	}
	return strings.Join(tokens, " ")
}
