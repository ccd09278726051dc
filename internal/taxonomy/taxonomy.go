// Package taxonomy maps raw classifier labels to canonical plant conditions.
//
// Resolution is total: labels missing from the lookup table fall back to a
// heuristic parse, so callers always receive a best-effort canonical
// condition rather than an error.
package taxonomy

import (
	"strings"
	"unicode"

	"github.com/growsmart/cropadvisor/internal/domain"
)

// conditionClasses maps backend label strings to canonical condition names.
// The built-in entries cover the 38 classes of the PlantVillage dataset the
// specialized model was trained on.
var conditionClasses = map[string]string{
	"Apple___Apple_scab":                                 "Apple Scab",
	"Apple___Black_rot":                                  "Apple Black Rot",
	"Apple___Cedar_apple_rust":                           "Apple Cedar Rust",
	"Apple___healthy":                                    "Healthy Apple",
	"Blueberry___healthy":                                "Healthy Blueberry",
	"Cherry_(including_sour)___Powdery_mildew":           "Cherry Powdery Mildew",
	"Cherry_(including_sour)___healthy":                  "Healthy Cherry",
	"Corn_(maize)___Cercospora_leaf_spot Gray_leaf_spot": "Corn Gray Leaf Spot",
	"Corn_(maize)___Common_rust_":                        "Corn Common Rust",
	"Corn_(maize)___Northern_Leaf_Blight":                "Corn Northern Leaf Blight",
	"Corn_(maize)___healthy":                             "Healthy Corn",
	"Grape___Black_rot":                                  "Grape Black Rot",
	"Grape___Esca_(Black_Measles)":                       "Grape Black Measles",
	"Grape___Leaf_blight_(Isariopsis_Leaf_Spot)":         "Grape Leaf Blight",
	"Grape___healthy":                                    "Healthy Grape",
	"Orange___Haunglongbing_(Citrus_greening)":           "Citrus Greening Disease",
	"Peach___Bacterial_spot":                             "Peach Bacterial Spot",
	"Peach___healthy":                                    "Healthy Peach",
	"Pepper,_bell___Bacterial_spot":                      "Pepper Bacterial Spot",
	"Pepper,_bell___healthy":                             "Healthy Pepper",
	"Potato___Early_blight":                              "Potato Early Blight",
	"Potato___Late_blight":                               "Potato Late Blight",
	"Potato___healthy":                                   "Healthy Potato",
	"Raspberry___healthy":                                "Healthy Raspberry",
	"Soybean___healthy":                                  "Healthy Soybean",
	"Squash___Powdery_mildew":                            "Squash Powdery Mildew",
	"Strawberry___Leaf_scorch":                           "Strawberry Leaf Scorch",
	"Strawberry___healthy":                               "Healthy Strawberry",
	"Tomato___Bacterial_spot":                            "Tomato Bacterial Spot",
	"Tomato___Early_blight":                              "Tomato Early Blight",
	"Tomato___Late_blight":                               "Tomato Late Blight",
	"Tomato___Leaf_Mold":                                 "Tomato Leaf Mold",
	"Tomato___Septoria_leaf_spot":                        "Tomato Septoria Leaf Spot",
	"Tomato___Spider_mites Two-spotted_spider_mite":      "Tomato Spider Mites",
	"Tomato___Target_Spot":                               "Tomato Target Spot",
	"Tomato___Tomato_Yellow_Leaf_Curl_Virus":             "Tomato Yellow Leaf Curl Virus",
	"Tomato___Tomato_mosaic_virus":                       "Tomato Mosaic Virus",
	"Tomato___healthy":                                   "Healthy Tomato",
}

// Resolver turns raw classifier labels into canonical conditions. The label
// table is fixed after construction, so a single Resolver is safe for
// concurrent use.
type Resolver struct {
	labels map[string]string
}

// NewResolver creates a Resolver using the built-in label table extended
// with the given overrides. Overrides win on key collision.
func NewResolver(overrides map[string]string) *Resolver {
	labels := make(map[string]string, len(conditionClasses)+len(overrides))
	for k, v := range conditionClasses {
		labels[k] = v
	}
	for k, v := range overrides {
		labels[k] = v
	}
	return &Resolver{labels: labels}
}

// Resolve maps a raw label to a canonical condition. Unmapped labels are
// parsed heuristically; the result is a best-effort normalization, not a
// verified identification.
func (r *Resolver) Resolve(rawLabel string) domain.CanonicalCondition {
	canonical, ok := r.labels[rawLabel]
	if !ok {
		canonical = parseRawLabel(rawLabel)
	}

	subject, condition, healthy := splitCondition(canonical)
	return domain.CanonicalCondition{
		Subject:   subject,
		Condition: condition,
		Canonical: canonical,
		IsHealthy: healthy,
	}
}

// parseRawLabel normalizes labels missing from the table: separators become
// spaces, tokens are title-cased, whitespace collapses.
func parseRawLabel(label string) string {
	replaced := strings.NewReplacer("_", " ", "-", " ").Replace(label)
	fields := strings.Fields(replaced)
	for i, f := range fields {
		fields[i] = titleCase(f)
	}
	return strings.Join(fields, " ")
}

func titleCase(token string) string {
	runes := []rune(token)
	if len(runes) == 0 {
		return token
	}
	return string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
}

// splitCondition breaks a canonical string into subject and condition.
// A "healthy" token anywhere marks the condition healthy; the remaining
// tokens form the subject, so "Healthy Apple" and "Apple Healthy" both
// yield subject "Apple", condition "Healthy".
func splitCondition(canonical string) (subject, condition string, healthy bool) {
	tokens := strings.Fields(canonical)
	if len(tokens) == 0 {
		return "", "", false
	}

	var rest []string
	for _, tok := range tokens {
		if strings.EqualFold(tok, "healthy") {
			healthy = true
			continue
		}
		rest = append(rest, tok)
	}

	if healthy {
		if len(rest) == 0 {
			rest = []string{"Plant"}
		}
		return strings.Join(rest, " "), "Healthy", true
	}

	subject = tokens[0]
	condition = strings.Join(tokens[1:], " ")
	return subject, condition, false
}
