package audio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fact-shorts-pipeline/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		TTS: config.TTSConfig{
			ModelID:         "eleven_monolingual_v1",
			Stability:       0.5,
			SimilarityBoost: 0.5,
		},
		Paths: config.PathsConfig{Clips: t.TempDir()},
		Keys:  config.Keys{ElevenLabs: "test-key"},
	}
}

func TestSynthesizePersistsAudio(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/voice-123", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("xi-api-key"))

		var req ttsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Hello facts", req.Text)
		assert.Equal(t, "eleven_monolingual_v1", req.ModelID)
		assert.InDelta(t, 0.5, req.VoiceSettings.Stability, 0.001)

		w.Write([]byte("mp3 bytes"))
	}))
	defer server.Close()

	cfg := testConfig(t)
	synth := NewSynthesizer(cfg)
	synth.baseURL = server.URL

	path, err := synth.Synthesize(context.Background(), "Hello facts", "voice-123")
	require.NoError(t, err)
	assert.Equal(t, cfg.Paths.Clips, filepath.Dir(path))
	assert.Equal(t, ".mp3", filepath.Ext(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mp3 bytes", string(data))
}

func TestSynthesizeNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"invalid api key"}`))
	}))
	defer server.Close()

	synth := NewSynthesizer(testConfig(t))
	synth.baseURL = server.URL

	_, err := synth.Synthesize(context.Background(), "Hello", "voice-123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 401")
	assert.Contains(t, err.Error(), "invalid api key")
}

func TestSynthesizeUniqueFilenames(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("audio"))
	}))
	defer server.Close()

	synth := NewSynthesizer(testConfig(t))
	synth.baseURL = server.URL

	first, err := synth.Synthesize(context.Background(), "one", "v")
	require.NoError(t, err)
	second, err := synth.Synthesize(context.Background(), "two", "v")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
