package genai

import (
	"context"
	"fmt"

	"github.com/f3rmion/trilingua/internal/audio"
	"github.com/f3rmion/trilingua/internal/ruby"
	"github.com/f3rmion/trilingua/internal/trilingua"
)

// GenerateImage requests one illustrative image for a short concept
// description and returns it as a data URI. Image generation is
// best-effort: every failure is logged and an empty string returned, so
// a missing illustration can never abort a lookup.
func (c *Client) GenerateImage(ctx context.Context, concept string) string {
	uri, err := c.generateImage(ctx, concept)
	if err != nil {
		c.logf("image generation failed: %v", err)
		return ""
	}
	return uri
}

func (c *Client) generateImage(ctx context.Context, concept string) (string, error) {
	req := request{
		Contents: []content{{Parts: []part{{Text: buildImagePrompt(concept)}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	}

	resp, err := c.generate(ctx, c.imageModel, req)
	if err != nil {
		return "", err
	}

	img := firstInline(resp, "image/")
	if img == nil {
		return "", fmt.Errorf("no image payload in response")
	}
	return fmt.Sprintf("data:%s;base64,%s", img.MIMEType, img.Data), nil
}

// Synthesize converts text to normalized PCM samples at audio.SampleRate.
// Ruby annotations are stripped first so only spoken-form text reaches
// the backend.
func (c *Client) Synthesize(ctx context.Context, text string, lang trilingua.Lang) ([]float32, error) {
	cleaned := ruby.Strip(text)
	if cleaned == "" {
		return nil, fmt.Errorf("nothing to speak")
	}

	req := request{
		Contents: []content{{Parts: []part{{Text: cleaned}}}},
		GenerationConfig: &generationConfig{
			ResponseModalities: []string{"AUDIO"},
			SpeechConfig: &speechConfig{
				VoiceConfig: voiceConfig{
					Prebuilt: prebuiltVoice{VoiceName: c.Voice(lang)},
				},
			},
		},
	}

	resp, err := c.generate(ctx, c.speechModel, req)
	if err != nil {
		return nil, err
	}

	payload := firstInline(resp, "audio/")
	if payload == nil {
		return nil, fmt.Errorf("no audio payload in response")
	}
	samples, err := audio.DecodePCM16(payload.Data)
	if err != nil {
		return nil, err
	}
	return samples, nil
}

// Speak synthesizes text and plays it through the sink. Speech is a
// fire-and-forget enhancement: failures are logged and swallowed.
func (c *Client) Speak(ctx context.Context, text string, lang trilingua.Lang, sink audio.Sink) {
	samples, err := c.Synthesize(ctx, text, lang)
	if err != nil {
		c.logf("speech synthesis failed: %v", err)
		return
	}
	if err := sink.Play(samples, audio.SampleRate); err != nil {
		c.logf("audio playback failed: %v", err)
	}
}
