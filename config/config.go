package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	openAIKeyEnv     = "OPENAI_API_KEY"
	elevenLabsKeyEnv = "ELEVENLABS_API_KEY"
	pexelsKeyEnv     = "PEXELS_API_KEY"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Script ScriptConfig `yaml:"script"`
	TTS    TTSConfig    `yaml:"tts"`
	Clips  ClipsConfig  `yaml:"clips"`
	Paths  PathsConfig  `yaml:"paths"`
	Keys   Keys         `yaml:"-"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

type ScriptConfig struct {
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
}

type TTSConfig struct {
	ModelID         string  `yaml:"model_id"`
	Stability       float64 `yaml:"stability"`
	SimilarityBoost float64 `yaml:"similarity_boost"`
}

type ClipsConfig struct {
	PerPage    int     `yaml:"per_page"`
	MaxClipSec float64 `yaml:"max_clip_sec"`
}

type PathsConfig struct {
	Videos     string `yaml:"videos" validate:"required"`
	Clips      string `yaml:"clips" validate:"required"`
	Runs       string `yaml:"runs" validate:"required"`
	TopicsFile string `yaml:"topics_file" validate:"required"`
	VoicesFile string `yaml:"voices_file" validate:"required"`
	SampleClip string `yaml:"sample_clip" validate:"required"`
}

// Keys holds vendor credentials. They come from the environment only,
// never from config.yaml.
type Keys struct {
	OpenAI     string
	ElevenLabs string
	Pexels     string
}

// Load reads config.yaml, applies defaults, overlays API keys from the
// environment and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	cfg.Keys = Keys{
		OpenAI:     os.Getenv(openAIKeyEnv),
		ElevenLabs: os.Getenv(elevenLabsKeyEnv),
		Pexels:     os.Getenv(pexelsKeyEnv),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	if c.Script.Model == "" {
		c.Script.Model = "gpt-4"
	}
	if c.Script.Temperature == 0 {
		c.Script.Temperature = 0.7
	}
	if c.Script.MaxTokens == 0 {
		c.Script.MaxTokens = 300
	}
	if c.TTS.ModelID == "" {
		c.TTS.ModelID = "eleven_monolingual_v1"
	}
	if c.TTS.Stability == 0 {
		c.TTS.Stability = 0.5
	}
	if c.TTS.SimilarityBoost == 0 {
		c.TTS.SimilarityBoost = 0.5
	}
	if c.Clips.PerPage == 0 {
		c.Clips.PerPage = 1
	}
	if c.Clips.MaxClipSec == 0 {
		c.Clips.MaxClipSec = 5
	}
}

// Validate checks that all required settings are present.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
