package genai

// Schema is the subset of the OpenAPI schema object that the backend's
// responseSchema parameter understands.
type Schema struct {
	Type        string             `json:"type"`
	Description string             `json:"description,omitempty"`
	Properties  map[string]*Schema `json:"properties,omitempty"`
	Items       *Schema            `json:"items,omitempty"`
	Required    []string           `json:"required,omitempty"`
	Enum        []string           `json:"enum,omitempty"`
}

func str(desc string) *Schema {
	return &Schema{Type: "string", Description: desc}
}

// langTriple is a {jp,en,zh} string object.
func langTriple(desc string) *Schema {
	return &Schema{
		Type:        "object",
		Description: desc,
		Properties: map[string]*Schema{
			"jp": str("Japanese"),
			"en": str("English"),
			"zh": str("Simplified Chinese"),
		},
		Required: []string{"jp", "en", "zh"},
	}
}

// langQuad adds a furigana-annotated Japanese variant to the triple.
func langQuad(desc string) *Schema {
	return &Schema{
		Type:        "object",
		Description: desc,
		Properties: map[string]*Schema{
			"jp":          str("Japanese"),
			"jp_furigana": str("Japanese with <ruby>kanji<rt>reading</rt></ruby> annotations and no other markup"),
			"en":          str("English"),
			"zh":          str("Simplified Chinese"),
		},
		Required: []string{"jp", "jp_furigana", "en", "zh"},
	}
}

// wordSchema constrains word-analysis responses to the WordRecord shape.
var wordSchema = &Schema{
	Type: "object",
	Properties: map[string]*Schema{
		"coreWord":      langTriple("The identified vocabulary word in all three languages"),
		"pronunciation": langTriple("Kana reading, IPA, and pinyin respectively"),
		"definitions":   langQuad("A concise dictionary definition"),
		"examples": {
			Type: "array",
			Items: &Schema{
				Type: "object",
				Properties: map[string]*Schema{
					"text":        str("Example sentence"),
					"translation": str("Translation of the example"),
					"lang":        {Type: "string", Enum: []string{"jp", "en"}},
				},
				Required: []string{"text", "translation", "lang"},
			},
		},
		"etymology": str("Brief etymology or origin of the word"),
		"related": {
			Type: "object",
			Properties: map[string]*Schema{
				"synonyms": {Type: "array", Items: str("")},
				"antonyms": {Type: "array", Items: str("")},
			},
			Required: []string{"synonyms", "antonyms"},
		},
	},
	Required: []string{"coreWord", "pronunciation", "definitions", "examples", "etymology", "related"},
}

// sentenceSchema constrains sentence-analysis responses.
var sentenceSchema = &Schema{
	Type: "object",
	Properties: map[string]*Schema{
		"original": str("The sentence exactly as submitted"),
		"breakdown": {
			Type: "array",
			Items: &Schema{
				Type: "object",
				Properties: map[string]*Schema{
					"word":         str("One word or grammatical unit"),
					"reading":      str("Reading of the unit, if applicable"),
					"partOfSpeech": str("Part of speech"),
					"meaning":      str("Meaning in English"),
				},
				Required: []string{"word", "partOfSpeech", "meaning"},
			},
		},
		"grammarAnalysis": langTriple("Explanation of the sentence's grammar"),
		"translations":    langQuad("Full translation of the sentence"),
	},
	Required: []string{"original", "breakdown", "grammarAnalysis", "translations"},
}
