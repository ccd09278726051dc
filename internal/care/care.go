// Package care composes static care guidance for identified plants.
// The composer is deterministic and total: every subject name yields some
// advice, with a generic horticultural fallback for unknown plants.
package care

import (
	"strings"
	"unicode"

	"github.com/growsmart/cropadvisor/internal/domain"
)

// adviceEntry pairs plant-family keywords with static advice text.
// Entries are evaluated in order; the first keyword hit wins.
type adviceEntry struct {
	keywords []string
	advice   string
}

var adviceTable = []adviceEntry{
	// Vegetables and food crops
	{[]string{"tomato"}, "Water regularly but avoid overwatering. Provide support with stakes or cages. Ensure 6-8 hours of sunlight daily. Watch for signs of blight and pests. Harvest when fruits are firm and fully colored."},
	{[]string{"corn", "maize"}, "Plant in well-draining soil with full sun. Water deeply but less frequently. Apply nitrogen fertilizer during growing season. Watch for corn borers. Plant in blocks for better pollination."},
	{[]string{"bean"}, "Plant in well-draining soil. Water regularly but avoid waterlogged soil. Provide support for climbing varieties. Rich in nitrogen-fixing bacteria. Harvest pods when young and tender."},
	{[]string{"potato"}, "Plant in loose, well-draining soil. Hill soil around plants as they grow. Water consistently but avoid overwatering. Harvest when foliage dies back. Store in cool, dark place."},
	{[]string{"cabbage", "lettuce"}, "Prefers cool weather. Keep soil consistently moist. Provide partial shade in hot climates. Watch for aphids and caterpillars. Harvest outer leaves first for continuous growth."},
	{[]string{"pepper", "capsicum"}, "Needs warm weather and full sun. Water regularly but ensure good drainage. Support heavy fruit-bearing plants. Harvest when fruits reach desired size and color."},
	{[]string{"cucumber"}, "Requires warm soil and consistent moisture. Provide climbing support or let sprawl. Regular harvesting encourages more production. Watch for cucumber beetles."},
	{[]string{"carrot"}, "Plant in loose, sandy soil. Keep soil consistently moist. Thin seedlings for proper root development. Harvest when roots reach desired size."},

	// Herbs
	{[]string{"basil"}, "Loves warm weather and full sun. Water regularly but avoid wetting leaves. Pinch flowers to encourage leaf growth. Harvest leaves frequently for best flavor."},
	{[]string{"mint"}, "Prefers partial shade and moist soil. Can be invasive - consider container growing. Harvest regularly to prevent flowering. Very hardy and fast-growing."},
	{[]string{"rosemary"}, "Requires well-draining soil and full sun. Drought-tolerant once established. Prune regularly to maintain shape. Protect from harsh winter conditions."},
	{[]string{"oregano", "thyme"}, "Thrives in well-draining soil with full sun. Drought-tolerant. Trim regularly to encourage bushy growth. Dry leaves for winter use."},

	// Flowers
	{[]string{"rose"}, "Needs full sun and well-draining soil. Water at base to avoid leaf diseases. Prune in late winter. Feed regularly during growing season. Watch for aphids and black spot."},
	{[]string{"sunflower"}, "Requires full sun and rich, well-draining soil. Water regularly, especially during flower development. Support tall varieties. Harvest seeds when flower head droops."},
	{[]string{"marigold"}, "Easy to grow in full sun. Tolerates poor soil. Deadhead spent flowers for continuous blooming. Good companion plant for vegetables."},
	{[]string{"lavender"}, "Needs full sun and well-draining, alkaline soil. Drought-tolerant once established. Prune after flowering. Harvest flowers just before fully open."},

	// Trees and shrubs
	{[]string{"oak", "maple"}, "Plant in well-draining soil with adequate space for growth. Water young trees regularly. Mulch around base. Prune dead or damaged branches in dormant season."},
	{[]string{"pine", "fir"}, "Prefers acidic, well-draining soil. Minimal pruning needed. Water during dry periods. Watch for needle diseases and pests like bark beetles."},
	{[]string{"citrus"}, "Needs warm climate and well-draining soil. Regular watering but avoid waterlogging. Feed with citrus-specific fertilizer. Protect from frost."},

	// Indoor plants
	{[]string{"succulent", "cactus"}, "Requires bright light and well-draining soil. Water only when soil is completely dry. Avoid overwatering. Good drainage is essential to prevent root rot."},
	{[]string{"fern"}, "Prefers indirect light and high humidity. Keep soil consistently moist but not waterlogged. Mist regularly. Good for bathrooms and shaded areas."},
	{[]string{"spider plant", "pothos"}, "Adaptable to various light conditions. Water when top inch of soil is dry. Easy to propagate from cuttings. Good air-purifying plant."},
}

const genericAdvice = "Provide appropriate sunlight based on plant type, water regularly based on soil moisture, ensure good drainage, and monitor for pests and diseases. Research specific care requirements for this plant variety and consider local growing conditions and seasonal requirements."

// CleanName normalizes a raw classifier label into a presentable plant
// name: synonyms after a comma are dropped, separators become spaces, and
// tokens are title-cased. General-purpose models emit labels like
// "pot, flowerpot" or "daisy".
func CleanName(raw string) string {
	name := raw
	if idx := strings.IndexByte(name, ','); idx >= 0 {
		name = name[:idx]
	}
	name = strings.NewReplacer("_", " ", "-", " ").Replace(name)

	fields := strings.Fields(name)
	if len(fields) == 0 {
		return "Unknown Plant"
	}
	for i, f := range fields {
		runes := []rune(f)
		fields[i] = string(unicode.ToUpper(runes[0])) + strings.ToLower(string(runes[1:]))
	}
	return strings.Join(fields, " ")
}

// For returns care guidance for the subject name.
func For(subjectName string) string {
	name := strings.ToLower(subjectName)
	for _, entry := range adviceTable {
		for _, kw := range entry.keywords {
			if strings.Contains(name, kw) {
				return entry.advice
			}
		}
	}
	return genericAdvice
}

// HealthStatus bands a raw classifier confidence into an identification
// quality message for the identify path.
func HealthStatus(confidence float64) string {
	switch {
	case confidence > 0.8:
		return "Excellent identification confidence"
	case confidence > 0.6:
		return "Good identification confidence"
	case confidence > 0.4:
		return "Moderate identification confidence"
	default:
		return "Low identification confidence - try a clearer image with better lighting"
	}
}

// Compose builds the identification result for a classified plant.
func Compose(result domain.ClassificationResult, plantName string, confidencePct int) domain.IdentificationResult {
	return domain.IdentificationResult{
		PlantName:        plantName,
		Confidence:       confidencePct,
		CareInstructions: For(plantName),
		HealthStatus:     HealthStatus(result.Confidence),
	}
}
