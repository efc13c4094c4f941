package script

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"fact-shorts-pipeline/config"
	"fact-shorts-pipeline/types"
)

const promptTemplate = `Write a short, family-friendly, legally safe and copyright-compliant video script (about 100 words) on the topic: "%s".
Start with a legal disclaimer: "This video is for educational purposes only. No professional advice is given. Consult experts if needed."
Structure the script as a list of five facts, each with a short explanation.`

// Writer generates narrated scripts via the OpenAI chat completions API.
type Writer struct {
	cfg    *config.Config
	client openai.Client
}

// NewWriter creates a script Writer.
func NewWriter(cfg *config.Config) *Writer {
	return &Writer{
		cfg:    cfg,
		client: openai.NewClient(option.WithAPIKey(cfg.Keys.OpenAI)),
	}
}

// Generate requests one script for the topic and parses its fact lines.
// The call is synchronous with bounded output length; any transport or
// quota error is returned as-is for the orchestrator to classify.
func (w *Writer) Generate(ctx context.Context, topic string) (*types.Script, error) {
	if w.cfg.Keys.OpenAI == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY not set")
	}

	log.Printf("[script] Generating script for topic %q...", topic)

	completion, err := w.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(buildPrompt(topic)),
		},
		Model:       openai.ChatModel(w.cfg.Script.Model),
		Temperature: openai.Float(w.cfg.Script.Temperature),
		MaxTokens:   openai.Int(int64(w.cfg.Script.MaxTokens)),
	})
	if err != nil {
		return nil, fmt.Errorf("openai request: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("openai returned no choices")
	}

	text := strings.TrimSpace(completion.Choices[0].Message.Content)
	result := &types.Script{
		Text:  text,
		Facts: ExtractFacts(text),
	}

	log.Printf("[script] ✅ Script ready: %d chars, %d fact lines", len(text), len(result.Facts))
	return result, nil
}

func buildPrompt(topic string) string {
	return fmt.Sprintf(promptTemplate, topic)
}
