package pipeline

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"fact-shorts-pipeline/audio"
	"fact-shorts-pipeline/clips"
	"fact-shorts-pipeline/config"
	"fact-shorts-pipeline/render"
	"fact-shorts-pipeline/script"
	"fact-shorts-pipeline/topics"
	"fact-shorts-pipeline/types"
	"fact-shorts-pipeline/voices"
)

// Collaborator contracts. The concrete implementations live in their stage
// packages; tests substitute fakes.
type (
	TopicSelector interface {
		Select() (string, error)
	}
	TopicStore interface {
		RecordGeneration(topic string, increment int) error
	}
	VoiceMatcher interface {
		Match(topicText string) (types.VoiceProfile, error)
	}
	ScriptGenerator interface {
		Generate(ctx context.Context, topic string) (*types.Script, error)
	}
	SpeechSynthesizer interface {
		Synthesize(ctx context.Context, text, voiceID string) (string, error)
	}
	ClipSourcer interface {
		SourceClip(ctx context.Context, factLine, topic string) (string, error)
	}
	MediaTool interface {
		Trim(ctx context.Context, clip string, maxSec float64) (string, error)
		Concat(ctx context.Context, clips []string) (string, error)
		Mux(ctx context.Context, video, audio string) (string, error)
	}
)

// Orchestrator sequences one full generation run: topic → script → facts →
// voice → tts → clips → trim → concat → mux → feedback. Stages execute
// strictly in order; the first failure aborts the run with exactly one
// StageFailure and the topic store is only touched after the mux succeeds.
type Orchestrator struct {
	cfg      *config.Config
	selector TopicSelector
	store    TopicStore
	voices   VoiceMatcher
	writer   ScriptGenerator
	tts      SpeechSynthesizer
	clips    ClipSourcer
	media    MediaTool
}

// New wires the production components.
func New(cfg *config.Config) *Orchestrator {
	store := topics.NewStore(cfg.Paths.TopicsFile)
	return &Orchestrator{
		cfg:      cfg,
		selector: topics.NewSelector(store, nil),
		store:    store,
		voices:   voices.NewMatcher(voices.NewCatalog(cfg.Paths.VoicesFile)),
		writer:   script.NewWriter(cfg),
		tts:      audio.NewSynthesizer(cfg),
		clips:    clips.NewSourcer(cfg),
		media:    render.NewFFmpeg(cfg),
	}
}

// NewWithComponents wires explicit collaborators. Used by tests and by any
// caller that needs to swap a vendor out.
func NewWithComponents(cfg *config.Config, selector TopicSelector, store TopicStore,
	matcher VoiceMatcher, writer ScriptGenerator, tts SpeechSynthesizer,
	sourcer ClipSourcer, media MediaTool) *Orchestrator {
	return &Orchestrator{
		cfg:      cfg,
		selector: selector,
		store:    store,
		voices:   matcher,
		writer:   writer,
		tts:      tts,
		clips:    sourcer,
		media:    media,
	}
}

// Result is the success payload of a run.
type Result struct {
	OutputFile string `json:"output_file"`
	Topic      string `json:"topic"`
	VoiceName  string `json:"voice_name"`
}

// Run executes one synchronous generation job. On failure the returned
// error is a *StageFailure naming the stage that broke; the run state
// record is persisted either way, with the underlying files retained.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	state := &types.RunState{
		RunID:     uuid.NewString(),
		StartedAt: time.Now().UTC().Format(time.RFC3339),
	}
	defer func() {
		state.CompletedAt = time.Now().UTC().Format(time.RFC3339)
		o.saveState(state)
	}()

	fail := func(sf *StageFailure) (*Result, error) {
		state.FailedStage = sf.Stage
		state.Error = sf.Message
		log.Printf("[pipeline] ❌ Run %s failed at %s: %s", state.RunID, sf.Stage, sf.Message)
		return nil, sf
	}

	log.Printf("[pipeline] 🎬 Run %s starting", state.RunID)

	topic, err := o.selector.Select()
	if err != nil {
		return fail(failf(StageTopic, "%v", err))
	}
	state.Topic = topic
	log.Printf("[pipeline] Topic selected: %q", topic)

	scriptResult, err := o.writer.Generate(ctx, topic)
	if err != nil {
		return fail(failf(StageScript, "%v", err))
	}
	state.Script = scriptResult

	// A script with no machine-parseable fact lines is unusable regardless
	// of its quality.
	if len(scriptResult.Facts) == 0 {
		return fail(failf(StageFacts, "script contains no enumerated fact lines"))
	}

	voice, err := o.voices.Match(topic)
	if err != nil {
		return fail(failf(StageVoice, "%v", err))
	}
	state.VoiceID = voice.VoiceID
	state.VoiceName = voice.Name
	log.Printf("[pipeline] Voice matched: %s (%s)", voice.Name, voice.VoiceID)

	audioFile, err := o.tts.Synthesize(ctx, scriptResult.Text, voice.VoiceID)
	if err != nil {
		return fail(failf(StageTTS, "%v", err))
	}
	state.AudioFile = audioFile

	clipFiles := make([]string, 0, len(scriptResult.Facts))
	for i, fact := range scriptResult.Facts {
		clip, err := o.clips.SourceClip(ctx, fact, topic)
		if err != nil {
			return fail(failf(ClipFetchStage(i+1), "%v", err))
		}
		clipFiles = append(clipFiles, clip)
	}
	state.ClipFiles = clipFiles

	trimmed := make([]string, 0, len(clipFiles))
	for _, clip := range clipFiles {
		t, err := o.media.Trim(ctx, clip, o.cfg.Clips.MaxClipSec)
		if err != nil {
			return fail(failf(StageTrim, "%v", err))
		}
		trimmed = append(trimmed, t)
	}
	state.TrimmedFiles = trimmed

	video, err := o.media.Concat(ctx, trimmed)
	if err != nil {
		return fail(failf(StageConcat, "%v", err))
	}
	state.VideoFile = video

	output, err := o.media.Mux(ctx, video, audioFile)
	if err != nil {
		return fail(failf(StageMux, "%v", err))
	}
	state.OutputFile = output

	// The store only ever reflects completed runs.
	if err := o.store.RecordGeneration(topic, 1); err != nil {
		return fail(failf(StageFeedback, "%v", err))
	}

	log.Printf("[pipeline] ✅ Run %s complete: %s", state.RunID, output)
	return &Result{
		OutputFile: filepath.Base(output),
		Topic:      topic,
		VoiceName:  voice.Name,
	}, nil
}

func (o *Orchestrator) saveState(state *types.RunState) {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		log.Printf("[pipeline] Warning: could not marshal run state: %v", err)
		return
	}
	path := filepath.Join(o.cfg.Paths.Runs, state.RunID+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("[pipeline] Warning: could not save run state %s: %v", path, err)
	}
}
