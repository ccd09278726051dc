package diagnosis

import (
	"reflect"
	"testing"

	"github.com/growsmart/cropadvisor/internal/domain"
)

func blightCondition() domain.CanonicalCondition {
	return domain.CanonicalCondition{
		Subject:   "Tomato",
		Condition: "Late Blight",
		Canonical: "Tomato Late Blight",
		IsHealthy: false,
	}
}

func TestScorer_SeverityBands(t *testing.T) {
	scorer := NewScorer(nil)
	cond := blightCondition()

	tests := []struct {
		confidence int
		want       domain.Severity
	}{
		{confidence: 100, want: domain.SeveritySevere},
		{confidence: 86, want: domain.SeveritySevere},
		{confidence: 85, want: domain.SeverityModerate}, // boundary is strict
		{confidence: 71, want: domain.SeverityModerate},
		{confidence: 70, want: domain.SeverityMild},
		{confidence: 30, want: domain.SeverityMild},
		{confidence: 0, want: domain.SeverityMild},
	}

	for _, tt := range tests {
		got := scorer.Score(cond, tt.confidence)
		if got.SeverityLevel != tt.want {
			t.Errorf("Score(confidence=%d).SeverityLevel = %q, want %q",
				tt.confidence, got.SeverityLevel, tt.want)
		}
	}
}

func TestScorer_EmergencyLevel(t *testing.T) {
	scorer := NewScorer(nil)

	tests := []struct {
		name       string
		canonical  string
		confidence int
		want       domain.EmergencyLevel
	}{
		{name: "critical keyword above 80", canonical: "Tomato Late Blight", confidence: 81, want: domain.EmergencyHigh},
		{name: "critical keyword at 80", canonical: "Tomato Late Blight", confidence: 80, want: domain.EmergencyMedium},
		{name: "black rot high", canonical: "Grape Black Rot", confidence: 90, want: domain.EmergencyHigh},
		{name: "virus high", canonical: "Tomato Mosaic Virus", confidence: 95, want: domain.EmergencyHigh},
		{name: "non-critical above 75", canonical: "Apple Scab", confidence: 90, want: domain.EmergencyMedium},
		{name: "non-critical at 75", canonical: "Apple Scab", confidence: 75, want: domain.EmergencyLow},
		{name: "critical keyword low confidence", canonical: "Tomato Late Blight", confidence: 60, want: domain.EmergencyLow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond := domain.CanonicalCondition{Subject: "Plant", Condition: tt.canonical, Canonical: tt.canonical}
			got := scorer.Score(cond, tt.confidence)
			if got.EmergencyLevel != tt.want {
				t.Errorf("EmergencyLevel = %q, want %q", got.EmergencyLevel, tt.want)
			}
		})
	}
}

func TestScorer_CustomCriticalConditions(t *testing.T) {
	scorer := NewScorer([]string{"scab"})

	cond := domain.CanonicalCondition{Subject: "Apple", Condition: "Scab", Canonical: "Apple Scab"}
	if got := scorer.Score(cond, 90).EmergencyLevel; got != domain.EmergencyHigh {
		t.Errorf("custom critical set: EmergencyLevel = %q, want %q", got, domain.EmergencyHigh)
	}

	// The replacement set drops the built-in keywords.
	blight := blightCondition()
	if got := scorer.Score(blight, 90).EmergencyLevel; got != domain.EmergencyMedium {
		t.Errorf("blight with custom critical set: EmergencyLevel = %q, want %q", got, domain.EmergencyMedium)
	}
}

func TestScorer_ConditionType(t *testing.T) {
	scorer := NewScorer(nil)

	tests := []struct {
		canonical string
		want      domain.ConditionType
	}{
		{canonical: "Corn Common Rust", want: domain.ConditionFungal},
		{canonical: "Tomato Late Blight", want: domain.ConditionFungal},
		{canonical: "Tomato Leaf Mold", want: domain.ConditionFungal},
		{canonical: "Peach Bacterial Spot", want: domain.ConditionBacterial},
		{canonical: "Tomato Mosaic Virus", want: domain.ConditionViral},
		{canonical: "Tomato Spider Mites", want: domain.ConditionPest},
		{canonical: "Strawberry Leaf Scorch", want: domain.ConditionUnknown},
	}

	for _, tt := range tests {
		cond := domain.CanonicalCondition{Subject: "Plant", Condition: tt.canonical, Canonical: tt.canonical}
		if got := scorer.Score(cond, 50).DiseaseType; got != tt.want {
			t.Errorf("Score(%q).DiseaseType = %q, want %q", tt.canonical, got, tt.want)
		}
	}
}

func TestScorer_AffectedParts(t *testing.T) {
	scorer := NewScorer(nil)

	tests := []struct {
		canonical string
		want      []string
	}{
		// "blight" matches both the stems rule and nothing else.
		{canonical: "Tomato Late Blight", want: []string{"stems"}},
		// "leaf" and "spot" both map to leaves; the part appears once.
		{canonical: "Tomato Septoria Leaf Spot", want: []string{"leaves"}},
		{canonical: "Grape Black Rot", want: []string{"fruits"}},
		{canonical: "Grape Leaf Blight", want: []string{"leaves", "stems"}},
		// No rule matches, fall back to the default part.
		{canonical: "Citrus Greening Disease", want: []string{"leaves"}},
	}

	for _, tt := range tests {
		cond := domain.CanonicalCondition{Subject: "Plant", Condition: tt.canonical, Canonical: tt.canonical}
		got := scorer.Score(cond, 50).AffectedParts
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Score(%q).AffectedParts = %v, want %v", tt.canonical, got, tt.want)
		}
	}
}

func TestScorer_Symptoms(t *testing.T) {
	scorer := NewScorer(nil)

	tests := []struct {
		canonical string
		want      []string
	}{
		{canonical: "Tomato Late Blight", want: []string{"Browning and wilting of leaves"}},
		{
			canonical: "Peach Bacterial Spot",
			want:      []string{"Dark spots on leaves", "Water-soaked lesions"},
		},
		{canonical: "Citrus Greening Disease", want: []string{"Visual symptoms on plant"}},
	}

	for _, tt := range tests {
		cond := domain.CanonicalCondition{Subject: "Plant", Condition: tt.canonical, Canonical: tt.canonical}
		got := scorer.Score(cond, 50).Symptoms
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Score(%q).Symptoms = %v, want %v", tt.canonical, got, tt.want)
		}
	}
}

func TestScorer_HealthyShortCircuit(t *testing.T) {
	scorer := NewScorer(nil)

	cond := domain.CanonicalCondition{
		Subject:   "Apple",
		Condition: "Healthy",
		Canonical: "Healthy Apple",
		IsHealthy: true,
	}

	got := scorer.Score(cond, 99)

	if !got.IsHealthy {
		t.Error("IsHealthy = false, want true")
	}
	if got.DiseaseType != domain.ConditionHealthy {
		t.Errorf("DiseaseType = %q, want %q", got.DiseaseType, domain.ConditionHealthy)
	}
	if got.SeverityLevel != domain.SeverityNone {
		t.Errorf("SeverityLevel = %q, want %q", got.SeverityLevel, domain.SeverityNone)
	}
	if got.EmergencyLevel != domain.EmergencyNone {
		t.Errorf("EmergencyLevel = %q, want %q", got.EmergencyLevel, domain.EmergencyNone)
	}
	if got.AffectedParts == nil || len(got.AffectedParts) != 0 {
		t.Errorf("AffectedParts = %v, want empty non-nil slice", got.AffectedParts)
	}
	if got.Symptoms == nil || len(got.Symptoms) != 0 {
		t.Errorf("Symptoms = %v, want empty non-nil slice", got.Symptoms)
	}
	if got.PlantName != "Apple" {
		t.Errorf("PlantName = %q, want %q", got.PlantName, "Apple")
	}
}

// Scoring is pure: the same inputs always produce the same diagnosis.
func TestScorer_Deterministic(t *testing.T) {
	scorer := NewScorer(nil)
	cond := blightCondition()

	first := scorer.Score(cond, 87)
	second := scorer.Score(cond, 87)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated scoring diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
