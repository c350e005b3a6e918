package genai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/f3rmion/trilingua/internal/trilingua"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend serves canned generateContent responses.
func fakeBackend(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	t.Setenv("GEMINI_API_KEY", "test-key")
	return New(Options{BaseURL: srv.URL, Logf: t.Logf})
}

func textResponse(text string) map[string]any {
	return map[string]any{
		"candidates": []map[string]any{
			{"content": map[string]any{"parts": []map[string]any{{"text": text}}}},
		},
	}
}

func validWordJSON() string {
	record := trilingua.WordRecord{
		CoreWord:      trilingua.Triple{JP: "猫", EN: "cat", ZH: "猫"},
		Pronunciation: trilingua.Triple{JP: "ねこ", EN: "/kæt/"},
		Definitions: trilingua.Quad{
			JP:         "小型の肉食哺乳類。",
			JPFurigana: "<ruby>小型<rt>こがた</rt></ruby>の肉食哺乳類。",
			EN:         "A small carnivorous mammal.",
			ZH:         "一种小型食肉哺乳动物。",
		},
		Examples: []trilingua.ExampleSentence{
			{Text: "猫が好きです。", Translation: "I like cats.", Lang: trilingua.LangJP},
		},
		Etymology: "From Old English catt.",
		Related:   &trilingua.Related{Synonyms: []string{"kitty"}, Antonyms: []string{}},
	}
	b, _ := json.Marshal(record)
	return string(b)
}

func TestAnalyzeWord(t *testing.T) {
	c := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, defaultTextModel)
		assert.Contains(t, r.URL.RawQuery, "key=test-key")

		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.NotNil(t, req.GenerationConfig)
		assert.Equal(t, "application/json", req.GenerationConfig.ResponseMIMEType)
		require.NotNil(t, req.GenerationConfig.ResponseSchema)

		json.NewEncoder(w).Encode(textResponse(validWordJSON()))
	})

	record, err := c.AnalyzeWord(context.Background(), "cat")
	require.NoError(t, err)
	assert.Equal(t, "cat", record.InputWord)
	assert.Equal(t, "猫", record.CoreWord.JP)
	// zh pronunciation was absent and must be backfilled with pinyin
	assert.Equal(t, "māo", record.Pronunciation.ZH)
}

func TestAnalyzeWordCodeFences(t *testing.T) {
	c := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(textResponse("```json\n" + validWordJSON() + "\n```"))
	})
	record, err := c.AnalyzeWord(context.Background(), "cat")
	require.NoError(t, err)
	assert.Equal(t, "cat", record.CoreWord.EN)
}

func TestAnalyzeWordSchemaViolation(t *testing.T) {
	c := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(textResponse(`{"coreWord":{"jp":"","en":"cat","zh":"猫"}}`))
	})
	_, err := c.AnalyzeWord(context.Background(), "cat")
	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Contains(t, respErr.Reason, "schema violation")
}

func TestAnalyzeWordMissingRelated(t *testing.T) {
	var payload map[string]any
	require.NoError(t, json.Unmarshal([]byte(validWordJSON()), &payload))
	delete(payload, "related")
	b, _ := json.Marshal(payload)

	c := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(textResponse(string(b)))
	})
	_, err := c.AnalyzeWord(context.Background(), "cat")
	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Contains(t, respErr.Reason, "schema violation")
	assert.Contains(t, respErr.Error(), "related")
}

func TestAnalyzeWordMalformedJSON(t *testing.T) {
	c := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(textResponse("Sorry, I cannot help with that."))
	})
	_, err := c.AnalyzeWord(context.Background(), "cat")
	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
}

func TestAnalyzeWordMissingKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	c := New(Options{BaseURL: "http://127.0.0.1:0"})
	_, err := c.AnalyzeWord(context.Background(), "cat")
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestAnalyzeSentence(t *testing.T) {
	record := trilingua.SentenceRecord{
		Original: "猫が好きです。",
		Breakdown: []trilingua.WordBreakdown{
			{Word: "猫", Reading: "ねこ", PartOfSpeech: "noun", Meaning: "cat"},
			{Word: "が", PartOfSpeech: "particle", Meaning: "subject marker"},
		},
		GrammarAnalysis: trilingua.GrammarAnalysis{JP: "主語と述語", EN: "Subject plus predicate", ZH: "主谓结构"},
		Translations:    trilingua.Quad{JP: "猫が好きです。", EN: "I like cats.", ZH: "我喜欢猫。"},
	}
	b, _ := json.Marshal(record)

	c := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(textResponse(string(b)))
	})

	got, err := c.AnalyzeSentence(context.Background(), "猫が好きです。")
	require.NoError(t, err)
	assert.Len(t, got.Breakdown, 2)
	assert.Equal(t, "Subject plus predicate", got.GrammarAnalysis.Text(trilingua.LangEN))
}

func TestAnalyzeSentenceMissingGrammar(t *testing.T) {
	record := trilingua.SentenceRecord{
		Original:     "猫が好きです。",
		Breakdown:    []trilingua.WordBreakdown{{Word: "猫", PartOfSpeech: "noun", Meaning: "cat"}},
		Translations: trilingua.Quad{EN: "I like cats."},
	}
	b, _ := json.Marshal(record)

	c := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(textResponse(string(b)))
	})
	_, err := c.AnalyzeSentence(context.Background(), "猫が好きです。")
	var respErr *ResponseError
	require.ErrorAs(t, err, &respErr)
	assert.Contains(t, respErr.Reason, "schema violation")
	assert.Contains(t, respErr.Error(), "grammarAnalysis")
}

func TestGenerateImageBestEffort(t *testing.T) {
	c := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"code":500,"message":"boom","status":"INTERNAL"}}`))
	})
	// failure is swallowed, not propagated
	assert.Equal(t, "", c.GenerateImage(context.Background(), "a cat"))
}

func TestGenerateImage(t *testing.T) {
	c := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{"parts": []map[string]any{
					{"text": "here is your image"},
					{"inlineData": map[string]any{"mimeType": "image/png", "data": "aGVsbG8="}},
				}},
			}},
		})
	})
	uri := c.GenerateImage(context.Background(), "a cat")
	assert.Equal(t, "data:image/png;base64,aGVsbG8=", uri)
}

func TestSynthesize(t *testing.T) {
	pcm := base64.StdEncoding.EncodeToString([]byte{0x00, 0x40}) // one sample, 16384
	var gotText string

	c := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		var req request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotText = req.Contents[0].Parts[0].Text
		require.NotNil(t, req.GenerationConfig.SpeechConfig)
		assert.Equal(t, "Aoede", req.GenerationConfig.SpeechConfig.VoiceConfig.Prebuilt.VoiceName)

		json.NewEncoder(w).Encode(map[string]any{
			"candidates": []map[string]any{{
				"content": map[string]any{"parts": []map[string]any{
					{"inlineData": map[string]any{"mimeType": "audio/L16;codec=pcm;rate=24000", "data": pcm}},
				}},
			}},
		})
	})

	samples, err := c.Synthesize(context.Background(), "<ruby>日本<rt>にほん</rt></ruby>は", trilingua.LangJP)
	require.NoError(t, err)
	// markup must be stripped before the request goes out
	assert.Equal(t, "日本は", gotText)
	require.Len(t, samples, 1)
	assert.InDelta(t, 0.5, samples[0], 1e-6)
}

func TestVoiceMapping(t *testing.T) {
	c := New(Options{})
	assert.Equal(t, "Aoede", c.Voice(trilingua.LangJP))
	assert.Equal(t, "Puck", c.Voice(trilingua.LangEN))
	assert.Equal(t, "Kore", c.Voice(trilingua.LangZH))
}

func TestBackendError(t *testing.T) {
	c := fakeBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"bad","status":"INVALID_ARGUMENT"}}`))
	})
	_, err := c.AnalyzeWord(context.Background(), "cat")
	var respErr *ResponseError
	require.True(t, errors.As(err, &respErr))
	assert.Contains(t, respErr.Error(), "INVALID_ARGUMENT")
}
