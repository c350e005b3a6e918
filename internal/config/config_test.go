package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDirDefaults(t *testing.T) {
	s, err := LoadDir(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, s.TextModel)
	assert.Equal(t, 60*time.Second, s.Timeout())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	in := &Settings{
		TextModel:      "gemini-2.5-pro",
		TimeoutSeconds: 15,
		Voices:         map[string]string{"jp": "Leda"},
	}
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-pro", out.TextModel)
	assert.Equal(t, 15*time.Second, out.Timeout())
	assert.Equal(t, "Leda", out.Voices["jp"])
}
