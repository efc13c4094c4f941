package audio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"fact-shorts-pipeline/config"
)

const defaultBaseURL = "https://api.elevenlabs.io"

// Synthesizer converts script text into a narration audio asset via the
// ElevenLabs text-to-speech API.
type Synthesizer struct {
	cfg        *config.Config
	httpClient *http.Client
	baseURL    string
}

// NewSynthesizer creates a Synthesizer.
func NewSynthesizer(cfg *config.Config) *Synthesizer {
	return &Synthesizer{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

type ttsRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Synthesize sends the full script text to the voice identified by voiceID
// and persists the returned audio under the clips area with a unique name.
// Any non-success status is an error carrying the status code.
func (s *Synthesizer) Synthesize(ctx context.Context, text, voiceID string) (string, error) {
	log.Printf("[tts] Synthesizing %d chars with voice %s...", len(text), voiceID)

	body, err := json.Marshal(ttsRequest{
		Text:    text,
		ModelID: s.cfg.TTS.ModelID,
		VoiceSettings: voiceSettings{
			Stability:       s.cfg.TTS.Stability,
			SimilarityBoost: s.cfg.TTS.SimilarityBoost,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal tts request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("xi-api-key", s.cfg.Keys.ElevenLabs)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("tts returned HTTP %d: %s", resp.StatusCode, string(snippet))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read tts response: %w", err)
	}

	outFile := filepath.Join(s.cfg.Paths.Clips, uuid.NewString()+".mp3")
	if err := os.WriteFile(outFile, audio, 0644); err != nil {
		return "", fmt.Errorf("write audio asset: %w", err)
	}

	log.Printf("[tts] ✅ Narration saved: %s (%d bytes)", outFile, len(audio))
	return outFile, nil
}
