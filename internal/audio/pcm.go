// Package audio decodes backend speech payloads and plays them back.
package audio

import (
	"encoding/base64"
	"fmt"
)

// SampleRate is the fixed sample rate of backend speech payloads.
const SampleRate = 24000

// DecodePCM16 decodes a base64 payload of signed 16-bit little-endian
// mono PCM into normalized float32 samples in [-1, 1].
func DecodePCM16(b64 string) ([]float32, error) {
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, fmt.Errorf("decoding audio payload: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty audio payload")
	}
	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("odd PCM16 payload length %d", len(raw))
	}

	samples := make([]float32, len(raw)/2)
	for i := range samples {
		s := int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8)
		samples[i] = float32(s) / 32768.0
	}
	return samples, nil
}
