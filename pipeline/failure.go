package pipeline

import (
	"errors"
	"fmt"
)

// Stage names attached to failures, in pipeline order.
const (
	StageTopic    = "topic"
	StageScript   = "script"
	StageFacts    = "facts"
	StageVoice    = "voice"
	StageTTS      = "tts"
	StageTrim     = "trim"
	StageConcat   = "concat"
	StageMux      = "mux"
	StageFeedback = "feedback"
	StageUnknown  = "unknown"
)

// ClipFetchStage names the per-fact sourcing stage with its 1-based fact
// index for diagnosability.
func ClipFetchStage(factIndex int) string {
	return fmt.Sprintf("clip-fetch-%d", factIndex)
}

// StageFailure pins a run's error to the single stage that produced it.
// Every stage either fully succeeds or yields exactly one of these; nothing
// is retried and nothing continues past a failure.
type StageFailure struct {
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func (f *StageFailure) Error() string {
	return fmt.Sprintf("%s: %s", f.Stage, f.Message)
}

func failf(stage, format string, args ...any) *StageFailure {
	return &StageFailure{Stage: stage, Message: fmt.Sprintf(format, args...)}
}

// AsStageFailure classifies an error for the triggering layer. Errors that
// did not originate in a stage are reported under the unknown stage rather
// than dropped.
func AsStageFailure(err error) *StageFailure {
	var sf *StageFailure
	if errors.As(err, &sf) {
		return sf
	}
	return &StageFailure{Stage: StageUnknown, Message: err.Error()}
}
