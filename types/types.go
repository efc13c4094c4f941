package types

// TopicRecord tracks how often a topic has been generated and how much
// exposure it has accumulated since.
type TopicRecord struct {
	Topic string `json:"topic"`
	Score int    `json:"score"`
	Views int    `json:"views"`
}

// VoiceProfile is a synthesis voice tagged with topic-affinity categories.
// Profiles are read-only for the lifetime of a run.
type VoiceProfile struct {
	VoiceID    string   `json:"voice_id"`
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

// Script is the generated narration plus the enumerated fact lines parsed
// out of it, in source order.
type Script struct {
	Text  string   `json:"text"`
	Facts []string `json:"facts"`
}

// RunState tracks the full state of one pipeline run
type RunState struct {
	RunID        string   `json:"run_id"`
	StartedAt    string   `json:"started_at"`
	CompletedAt  string   `json:"completed_at"`
	Topic        string   `json:"topic,omitempty"`
	VoiceID      string   `json:"voice_id,omitempty"`
	VoiceName    string   `json:"voice_name,omitempty"`
	Script       *Script  `json:"script,omitempty"`
	AudioFile    string   `json:"audio_file,omitempty"`
	ClipFiles    []string `json:"clip_files,omitempty"`
	TrimmedFiles []string `json:"trimmed_files,omitempty"`
	VideoFile    string   `json:"video_file,omitempty"`
	OutputFile   string   `json:"output_file,omitempty"`
	FailedStage  string   `json:"failed_stage,omitempty"`
	Error        string   `json:"error,omitempty"`
}
