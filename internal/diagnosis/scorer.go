package diagnosis

import (
	"strings"

	"github.com/growsmart/cropadvisor/internal/domain"
)

// Scorer derives the qualitative signals of a diagnosis from a canonical
// condition and the classifier confidence. It is pure: identical inputs
// always produce identical output, and scoring never fails.
type Scorer struct {
	typeRules    []TypeRule
	partRules    []PartRule
	symptomRules []SymptomRule
	critical     []string
}

// NewScorer creates a Scorer with the built-in rule tables. A non-empty
// criticalConditions replaces the built-in critical set.
func NewScorer(criticalConditions []string) *Scorer {
	critical := criticalConditions
	if len(critical) == 0 {
		critical = DefaultCriticalConditions()
	}
	lowered := make([]string, len(critical))
	for i, c := range critical {
		lowered[i] = strings.ToLower(c)
	}

	return &Scorer{
		typeRules:    DefaultTypeRules(),
		partRules:    DefaultPartRules(),
		symptomRules: DefaultSymptomRules(),
		critical:     lowered,
	}
}

// Score builds the scored portion of a diagnosis. confidencePct must be the
// classifier confidence rounded to an integer percentage; rounding happens
// at this boundary and nowhere else.
func (s *Scorer) Score(cond domain.CanonicalCondition, confidencePct int) domain.Diagnosis {
	if cond.IsHealthy {
		return domain.Diagnosis{
			PlantName:      cond.Subject,
			DiseaseType:    domain.ConditionHealthy,
			DiseaseName:    cond.Canonical,
			Confidence:     confidencePct,
			SeverityLevel:  domain.SeverityNone,
			AffectedParts:  []string{},
			Symptoms:       []string{},
			IsHealthy:      true,
			EmergencyLevel: domain.EmergencyNone,
		}
	}

	name := strings.ToLower(cond.Canonical)

	return domain.Diagnosis{
		PlantName:      cond.Subject,
		DiseaseType:    s.conditionType(name),
		DiseaseName:    cond.Canonical,
		Confidence:     confidencePct,
		SeverityLevel:  severityFor(confidencePct),
		AffectedParts:  s.affectedParts(name),
		Symptoms:       s.symptoms(name),
		IsHealthy:      false,
		EmergencyLevel: s.emergencyLevel(name, confidencePct),
	}
}

func (s *Scorer) conditionType(name string) domain.ConditionType {
	for _, rule := range s.typeRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(name, kw) {
				return rule.Type
			}
		}
	}
	return domain.ConditionUnknown
}

// severityFor bands confidence into severity. Boundaries are strict:
// exactly 85 is moderate, exactly 70 is mild.
func severityFor(confidencePct int) domain.Severity {
	switch {
	case confidencePct > 85:
		return domain.SeveritySevere
	case confidencePct > 70:
		return domain.SeverityModerate
	default:
		return domain.SeverityMild
	}
}

func (s *Scorer) emergencyLevel(name string, confidencePct int) domain.EmergencyLevel {
	for _, crit := range s.critical {
		if strings.Contains(name, crit) && confidencePct > 80 {
			return domain.EmergencyHigh
		}
	}
	if confidencePct > 75 {
		return domain.EmergencyMedium
	}
	return domain.EmergencyLow
}

func (s *Scorer) affectedParts(name string) []string {
	var parts []string
	seen := make(map[string]bool)
	for _, rule := range s.partRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(name, kw) && !seen[rule.Part] {
				parts = append(parts, rule.Part)
				seen[rule.Part] = true
				break
			}
		}
	}
	if len(parts) == 0 {
		parts = []string{defaultPart}
	}
	return parts
}

func (s *Scorer) symptoms(name string) []string {
	var symptoms []string
	for _, rule := range s.symptomRules {
		if strings.Contains(name, rule.Keyword) {
			symptoms = append(symptoms, rule.Symptom)
		}
	}
	if len(symptoms) == 0 {
		symptoms = []string{defaultSymptom}
	}
	return symptoms
}
