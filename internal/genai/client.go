// Package genai is the HTTP client for the Gemini generative backend:
// structured word/sentence analysis, image synthesis and speech synthesis.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/f3rmion/trilingua/internal/trilingua"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	apiKeyEnv      = "GEMINI_API_KEY"

	defaultTextModel   = "gemini-2.5-flash"
	defaultImageModel  = "gemini-2.0-flash-preview-image-generation"
	defaultSpeechModel = "gemini-2.5-flash-preview-tts"

	defaultTimeout = 60 * time.Second
)

// defaultVoices is the fixed language→voice mapping for speech synthesis.
var defaultVoices = map[trilingua.Lang]string{
	trilingua.LangJP: "Aoede",
	trilingua.LangEN: "Puck",
	trilingua.LangZH: "Kore",
}

// Options configures a Client. The zero value gives the defaults.
type Options struct {
	BaseURL     string
	TextModel   string
	ImageModel  string
	SpeechModel string
	Timeout     time.Duration
	Voices      map[trilingua.Lang]string // overrides per language
	HTTPClient  *http.Client
	Logf        func(format string, args ...any)
}

// Client is a Gemini API client. The API key is resolved from the
// environment on each call, not at construction, so a missing credential
// fails the call that needs it instead of process startup.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	textModel   string
	imageModel  string
	speechModel string
	voices      map[trilingua.Lang]string
	logf        func(format string, args ...any)
}

// New creates a Gemini client.
func New(opts Options) *Client {
	c := &Client{
		httpClient:  opts.HTTPClient,
		baseURL:     opts.BaseURL,
		textModel:   opts.TextModel,
		imageModel:  opts.ImageModel,
		speechModel: opts.SpeechModel,
		voices:      make(map[trilingua.Lang]string, len(defaultVoices)),
		logf:        opts.Logf,
	}
	if c.httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	if c.textModel == "" {
		c.textModel = defaultTextModel
	}
	if c.imageModel == "" {
		c.imageModel = defaultImageModel
	}
	if c.speechModel == "" {
		c.speechModel = defaultSpeechModel
	}
	for lang, voice := range defaultVoices {
		c.voices[lang] = voice
	}
	for lang, voice := range opts.Voices {
		if voice != "" {
			c.voices[lang] = voice
		}
	}
	if c.logf == nil {
		c.logf = log.Printf
	}
	return c
}

// apiKey resolves the credential from the environment.
func (c *Client) apiKey() (string, error) {
	key := strings.TrimSpace(os.Getenv(apiKeyEnv))
	if key == "" {
		return "", ErrNoAPIKey
	}
	return key, nil
}

// Voice returns the synthesis voice used for a language.
func (c *Client) Voice(lang trilingua.Lang) string {
	if v, ok := c.voices[lang]; ok {
		return v
	}
	return c.voices[trilingua.LangEN]
}

// Wire types for the generateContent endpoint.

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inlineData,omitempty"`
}

type inlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

type generationConfig struct {
	ResponseMIMEType   string        `json:"responseMimeType,omitempty"`
	ResponseSchema     *Schema       `json:"responseSchema,omitempty"`
	ResponseModalities []string      `json:"responseModalities,omitempty"`
	SpeechConfig       *speechConfig `json:"speechConfig,omitempty"`
}

type speechConfig struct {
	VoiceConfig voiceConfig `json:"voiceConfig"`
}

type voiceConfig struct {
	Prebuilt prebuiltVoice `json:"prebuiltVoiceConfig"`
}

type prebuiltVoice struct {
	VoiceName string `json:"voiceName"`
}

type request struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type response struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error,omitempty"`
}

// generate performs one generateContent call against the given model.
func (c *Client) generate(ctx context.Context, model string, req request) (*response, error) {
	key, err := c.apiKey()
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		c.baseURL, model, url.QueryEscape(key))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var apiResp response
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, responseErr("unparseable body", err)
	}

	if apiResp.Error != nil {
		return nil, responseErr(fmt.Sprintf("API error %s", apiResp.Error.Status),
			fmt.Errorf("%s", apiResp.Error.Message))
	}
	if resp.StatusCode != http.StatusOK {
		return nil, responseErr(fmt.Sprintf("HTTP %d", resp.StatusCode), nil)
	}
	if len(apiResp.Candidates) == 0 {
		return nil, responseErr("no candidates", nil)
	}

	return &apiResp, nil
}

// firstText returns the first non-empty text part of the first candidate.
func firstText(resp *response) string {
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.Text != "" {
			return p.Text
		}
	}
	return ""
}

// firstInline returns the first inline-data part whose MIME type carries
// the given prefix (e.g. "image/", "audio/").
func firstInline(resp *response, mimePrefix string) *inlineData {
	for _, p := range resp.Candidates[0].Content.Parts {
		if p.InlineData != nil && strings.HasPrefix(p.InlineData.MIMEType, mimePrefix) {
			return p.InlineData
		}
	}
	return nil
}
