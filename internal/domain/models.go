// Package domain contains the core domain models and types.
// These models represent the business logic contracts and are independent
// of any infrastructure concerns.
package domain

import "time"

// ConditionType categorizes the kind of condition a diagnosis identifies.
type ConditionType string

const (
	ConditionFungal    ConditionType = "fungal"
	ConditionBacterial ConditionType = "bacterial"
	ConditionViral     ConditionType = "viral"
	ConditionPest      ConditionType = "pest"
	ConditionUnknown   ConditionType = "unknown"
	ConditionHealthy   ConditionType = "healthy"
)

// Severity represents the damage-extent classification of a diagnosis.
type Severity string

const (
	SeverityNone     Severity = "none"
	SeverityMild     Severity = "mild"
	SeverityModerate Severity = "moderate"
	SeveritySevere   Severity = "severe"
)

// IsValid checks if the severity value is one of the allowed values.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityNone, SeverityMild, SeverityModerate, SeveritySevere:
		return true
	default:
		return false
	}
}

// EmergencyLevel represents the urgency-of-action classification.
type EmergencyLevel string

const (
	EmergencyNone   EmergencyLevel = "none"
	EmergencyLow    EmergencyLevel = "low"
	EmergencyMedium EmergencyLevel = "medium"
	EmergencyHigh   EmergencyLevel = "high"
)

// ClassificationResult is the raw output of a single inference call.
// It is discarded once resolved into a CanonicalCondition.
type ClassificationResult struct {
	// RawLabel is the backend-specific label string.
	RawLabel string

	// Confidence is the backend-reported score in [0, 1].
	Confidence float64

	// Backend identifies which backend produced the result.
	Backend string
}

// CanonicalCondition is the normalized (subject, condition) pair a raw
// classifier label resolves to.
type CanonicalCondition struct {
	// Subject is the plant name, e.g. "Tomato".
	Subject string

	// Condition is the condition portion, e.g. "Late Blight" or "Healthy".
	Condition string

	// Canonical is the full normalized string, e.g. "Tomato Late Blight".
	Canonical string

	// IsHealthy is true iff the condition equals "healthy" (case-insensitive).
	IsHealthy bool
}

// TreatmentRecord is read-only reference data describing one treatment.
type TreatmentRecord struct {
	Name                string  `json:"name"`
	ActiveIngredient    string  `json:"activeIngredient"`
	ApplicationMethod   string  `json:"applicationMethod"`
	Dosage              string  `json:"dosage"`
	Frequency           string  `json:"frequency"`
	Timing              string  `json:"timing"`
	EffectivenessRating float64 `json:"effectivenessRating"`
	Organic             bool    `json:"organic"`
}

// RegionalAlert describes an active disease alert for a region.
type RegionalAlert struct {
	Region             string    `json:"region"`
	ConditionName      string    `json:"diseaseName"`
	AlertLevel         string    `json:"alertLevel"`
	Description        string    `json:"description"`
	PreventionMeasures string    `json:"preventionMeasures"`
	ExpiresAt          time.Time `json:"expiresAt"`
}

// Diagnosis is the full structured result of the image diagnosis pipeline.
// It is created once per request and never mutated afterwards.
type Diagnosis struct {
	PlantName      string            `json:"plantName"`
	DiseaseType    ConditionType     `json:"diseaseType"`
	DiseaseName    string            `json:"diseaseName"`
	Confidence     int               `json:"confidence"`
	SeverityLevel  Severity          `json:"severityLevel"`
	AffectedParts  []string          `json:"affectedParts"`
	Symptoms       []string          `json:"symptoms"`
	Treatments     []TreatmentRecord `json:"treatments"`
	Prevention     []string          `json:"prevention"`
	RegionalAlerts []RegionalAlert   `json:"regionalAlerts"`
	IsHealthy      bool              `json:"isHealthy"`
	EmergencyLevel EmergencyLevel    `json:"emergencyLevel"`
}

// IdentificationResult is the output of the plant identification path.
type IdentificationResult struct {
	PlantName        string `json:"plantName"`
	Confidence       int    `json:"confidence"`
	CareInstructions string `json:"careInstructions"`
	HealthStatus     string `json:"healthStatus"`
}

// AdvisoryStatus tags whether an advisory reply is genuine model output
// or synthesized fallback text.
type AdvisoryStatus string

const (
	AdvisorySuccess  AdvisoryStatus = "success"
	AdvisoryFallback AdvisoryStatus = "fallback"
)

// AdvisoryRequest is an incoming conversational advisory request.
type AdvisoryRequest struct {
	// Question is the free-text agricultural question.
	Question string `json:"question" binding:"required"`

	// Language is the requested response language tag, e.g. "hindi".
	Language string `json:"language"`

	// ConversationID groups related exchanges. Optional.
	ConversationID string `json:"conversationId"`
}

// AdvisoryExchange is the outcome of one conversational advisory request.
type AdvisoryExchange struct {
	Question     string
	Language     string
	ResponseText string
	Status       AdvisoryStatus

	// AttemptCount is the number of upstream attempts made, including
	// the one that succeeded (if any).
	AttemptCount int
}

// AdvisoryResponse is the wire shape returned to chat callers.
type AdvisoryResponse struct {
	Response       string         `json:"response"`
	Language       string         `json:"language"`
	ConversationID string         `json:"conversationId"`
	Status         AdvisoryStatus `json:"status"`
	Timestamp      time.Time      `json:"timestamp"`
}

// MarketPrice is one crop price quote from the record store.
type MarketPrice struct {
	Crop        string    `json:"crop"`
	Price       float64   `json:"price"`
	Unit        string    `json:"unit"`
	Change      float64   `json:"change"`
	Trend       string    `json:"trend"`
	Market      string    `json:"market"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// MarketTrend is a qualitative price outlook for one crop.
type MarketTrend struct {
	Crop       string `json:"crop"`
	Prediction string `json:"prediction"`
	Confidence int    `json:"confidence"`
}

// MarketReport bundles prices and trends for a location.
type MarketReport struct {
	Location     string        `json:"location"`
	Prices       []MarketPrice `json:"prices"`
	MarketTrends []MarketTrend `json:"marketTrends"`
}
