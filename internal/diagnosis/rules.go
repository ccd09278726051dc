// Package diagnosis derives severity, urgency and symptom signals from a
// canonical condition.
//
// The keyword heuristics live in ordered tagged-rule lists evaluated
// top-to-bottom with a default case, so each rule is independently testable.
package diagnosis

import "github.com/growsmart/cropadvisor/internal/domain"

// TypeRule assigns a condition type when any of its keywords appears in the
// condition name.
type TypeRule struct {
	Keywords []string
	Type     domain.ConditionType
}

// DefaultTypeRules returns the built-in condition type rules. First match wins.
func DefaultTypeRules() []TypeRule {
	return []TypeRule{
		{Keywords: []string{"rust", "blight", "mold"}, Type: domain.ConditionFungal},
		{Keywords: []string{"bacterial"}, Type: domain.ConditionBacterial},
		{Keywords: []string{"virus", "mosaic"}, Type: domain.ConditionViral},
		{Keywords: []string{"mite", "pest"}, Type: domain.ConditionPest},
	}
}

// PartRule adds an affected plant part when any keyword appears in the
// condition name. Unlike type rules, every matching part rule applies.
type PartRule struct {
	Keywords []string
	Part     string
}

// DefaultPartRules returns the built-in affected-part rules.
func DefaultPartRules() []PartRule {
	return []PartRule{
		{Keywords: []string{"leaf", "spot"}, Part: "leaves"},
		{Keywords: []string{"fruit", "rot"}, Part: "fruits"},
		{Keywords: []string{"stem", "blight"}, Part: "stems"},
		{Keywords: []string{"root"}, Part: "roots"},
	}
}

// defaultPart is reported when no part rule matches a non-healthy condition.
const defaultPart = "leaves"

// SymptomRule contributes a symptom sentence when its keyword appears in
// the condition name. Matching rules contribute in list order.
type SymptomRule struct {
	Keyword string
	Symptom string
}

// DefaultSymptomRules returns the built-in symptom rules.
func DefaultSymptomRules() []SymptomRule {
	return []SymptomRule{
		{Keyword: "spot", Symptom: "Dark spots on leaves"},
		{Keyword: "blight", Symptom: "Browning and wilting of leaves"},
		{Keyword: "rust", Symptom: "Orange/brown pustules on leaves"},
		{Keyword: "mold", Symptom: "Fuzzy growth on plant surface"},
		{Keyword: "bacterial", Symptom: "Water-soaked lesions"},
		{Keyword: "virus", Symptom: "Yellowing and curling of leaves"},
	}
}

// defaultSymptom keeps the symptom list non-empty for unrecognized conditions.
const defaultSymptom = "Visual symptoms on plant"

// DefaultCriticalConditions returns the condition keywords that can raise
// the emergency level to high. The set is data, not code: operators can
// replace it through the reference-data overlay without a rebuild.
func DefaultCriticalConditions() []string {
	return []string{"blight", "black rot", "virus"}
}
