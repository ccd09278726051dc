package advisory

import "strings"

// Fallback topics, selected by keyword match against the question text.
const (
	topicIrrigation = "irrigation"
	topicPest       = "pest"
	topicFertilizer = "fertilizer"
	topicGeneric    = "generic"
)

// topicRule maps question keywords to a fallback topic. Rules are evaluated
// in order; the first hit wins.
//
// The keywords are English even for non-English questions, so topic
// selection rarely fires outside English and those callers get the generic
// template in their language instead. That mirrors the behavior this
// heuristic was lifted from; it is kept rather than silently extended.
type topicRule struct {
	keywords []string
	topic    string
}

var topicRules = []topicRule{
	{keywords: []string{"water", "irrigation"}, topic: topicIrrigation},
	{keywords: []string{"pest", "insect"}, topic: topicPest},
	{keywords: []string{"fertilizer", "nutrient"}, topic: topicFertilizer},
}

// builtinFallbacks maps language -> topic -> synthesized reply. Only
// English carries topic-specific replies; the other languages carry the
// generic extension-office message.
var builtinFallbacks = map[string]map[string]string{
	"english": {
		topicIrrigation: "For irrigation guidance: Water crops early morning or evening. Check soil moisture 2-3 inches deep. Drip irrigation saves 30-50% water compared to flood irrigation.",
		topicPest:       "For pest control: Use neem oil spray (10ml per liter water). Introduce beneficial insects. Rotate crops annually. Remove infected plants immediately.",
		topicFertilizer: "For fertilization: Test soil pH first. Use organic compost when possible. Apply nitrogen during growth phase, phosphorus during root development.",
		topicGeneric:    "I'm temporarily unable to process your specific question. For immediate farming advice, please contact your local agricultural extension office or visit your nearest Krishi Vigyan Kendra (KVK).",
	},
	"tamil": {
		topicGeneric: "மன்னிக்கவும், தற்போது உங்கள் கேள்விக்கு பதிலளிக்க முடியவில்லை. உடனடி விவசாய ஆலோசனைக்கு உங்கள் உள்ளூர் வேளாண் நீட்டிப்பு அலுவலகத்தை தொடர்பு கொள்ளவும்.",
	},
	"hindi": {
		topicGeneric: "क्षमा करें, अभी आपके प्रश्न का उत्तर देने में असमर्थ हूँ। तत्काल कृषि सलाह के लिए अपने स्थानीय कृषि विस्तार कार्यालय से संपर्क करें।",
	},
	"bengali": {
		topicGeneric: "দুঃখিত, বর্তমানে আপনার প্রশ্নের উত্তর দিতে অক্ষম। তাৎক্ষণিক কৃষি পরামর্শের জন্য আপনার স্থানীয় কৃষি সম্প্রসারণ অফিসে যোগাযোগ করুন।",
	},
	"telugu": {
		topicGeneric: "క్షమించండి, ప్రస్తుతం మీ ప్రశ్నకు సమాధానం ఇవ్వలేకపోతున్నాను. తక్షణ వ్యవసాయ సలహా కోసం మీ స్థానిక వ్యవసాయ విస్తరణ కార్యాలయాన్ని సంప్రదించండి।",
	},
	"kannada": {
		topicGeneric: "ಕ್ಷಮಿಸಿ, ಪ್ರಸ್ತುತ ನಿಮ್ಮ ಪ್ರಶ್ನೆಗೆ ಉತ್ತರಿಸಲು ಸಾಧ್ಯವಾಗುತ್ತಿಲ್ಲ. ತಕ್ಷಣದ ಕೃಷಿ ಸಲಹೆಗಾಗಿ ನಿಮ್ಮ ಸ್ಥಳೀಯ ಕೃಷಿ ವಿಸ್ತರಣೆ ಕಚೇರಿಯನ್ನು ಸಂಪರ್ಕಿಸಿ।",
	},
}

// FallbackTable resolves synthesized replies when the upstream is down.
// It is built once at startup and read-only afterwards.
type FallbackTable struct {
	templates map[string]map[string]string
}

// NewFallbackTable builds the table from the built-in templates merged
// with operator overrides (language -> topic -> text). Overrides win.
func NewFallbackTable(overrides map[string]map[string]string) *FallbackTable {
	templates := make(map[string]map[string]string, len(builtinFallbacks))
	for lang, topics := range builtinFallbacks {
		copied := make(map[string]string, len(topics))
		for topic, text := range topics {
			copied[topic] = text
		}
		templates[lang] = copied
	}
	for lang, topics := range overrides {
		if templates[lang] == nil {
			templates[lang] = make(map[string]string, len(topics))
		}
		for topic, text := range topics {
			templates[lang][topic] = text
		}
	}
	return &FallbackTable{templates: templates}
}

// Respond synthesizes a topic-aware reply for the question in the requested
// language. Resolution order: the topic template in the requested language,
// that language's generic template, then the English equivalents. The
// result is never empty.
func (t *FallbackTable) Respond(question, language string) string {
	topic := topicFor(question)

	for _, lang := range []string{language, "english"} {
		topics, ok := t.templates[lang]
		if !ok {
			continue
		}
		if text, ok := topics[topic]; ok && text != "" {
			return text
		}
		if text, ok := topics[topicGeneric]; ok && text != "" {
			return text
		}
	}
	return builtinFallbacks["english"][topicGeneric]
}

func topicFor(question string) string {
	q := strings.ToLower(question)
	for _, rule := range topicRules {
		for _, kw := range rule.keywords {
			if strings.Contains(q, kw) {
				return rule.topic
			}
		}
	}
	return topicGeneric
}
