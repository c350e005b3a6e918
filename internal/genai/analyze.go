package genai

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/f3rmion/trilingua/internal/trilingua"
	gopinyin "github.com/mozillazg/go-pinyin"
)

// AnalyzeWord asks the backend for a full trilingual entry for one word.
// The query may be in any of the three languages. Either a fully
// schema-conformant record or an error is returned, never a partial one.
func (c *Client) AnalyzeWord(ctx context.Context, query string) (*trilingua.WordRecord, error) {
	req := request{
		Contents: []content{{Parts: []part{{Text: buildWordPrompt(query)}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   wordSchema,
		},
	}

	resp, err := c.generate(ctx, c.textModel, req)
	if err != nil {
		return nil, err
	}

	text := firstText(resp)
	if text == "" {
		return nil, responseErr("no text", nil)
	}

	var record trilingua.WordRecord
	if err := json.Unmarshal([]byte(stripFences(text)), &record); err != nil {
		return nil, responseErr("invalid JSON", err)
	}
	if err := record.Validate(); err != nil {
		return nil, responseErr("schema violation", err)
	}

	record.InputWord = query
	if record.Pronunciation.ZH == "" {
		record.Pronunciation.ZH = pinyinOf(record.CoreWord.ZH)
	}
	return &record, nil
}

// AnalyzeSentence asks the backend for a unit-level breakdown, grammar
// explanation and translations of one sentence.
func (c *Client) AnalyzeSentence(ctx context.Context, sentence string) (*trilingua.SentenceRecord, error) {
	req := request{
		Contents: []content{{Parts: []part{{Text: buildSentencePrompt(sentence)}}}},
		GenerationConfig: &generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   sentenceSchema,
		},
	}

	resp, err := c.generate(ctx, c.textModel, req)
	if err != nil {
		return nil, err
	}

	text := firstText(resp)
	if text == "" {
		return nil, responseErr("no text", nil)
	}

	var record trilingua.SentenceRecord
	if err := json.Unmarshal([]byte(stripFences(text)), &record); err != nil {
		return nil, responseErr("invalid JSON", err)
	}
	if record.Original == "" {
		record.Original = sentence
	}
	if err := record.Validate(); err != nil {
		return nil, responseErr("schema violation", err)
	}
	return &record, nil
}

// stripFences removes a ```json … ``` wrapper that some models emit even
// when a JSON response type was requested.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// pinyinOf derives a tone-marked pinyin reading for a Chinese word. Used
// as a fallback when the backend omits the zh pronunciation.
func pinyinOf(word string) string {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Tone
	syllables := gopinyin.Pinyin(word, args)
	if len(syllables) == 0 {
		return ""
	}
	parts := make([]string, 0, len(syllables))
	for _, readings := range syllables {
		if len(readings) > 0 {
			parts = append(parts, readings[0])
		}
	}
	return strings.Join(parts, " ")
}
