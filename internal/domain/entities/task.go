package entities

import "time"

// State is the orchestration state of a task.
type State string

const (
	StateUploaded          State = "uploaded"
	StateProbing           State = "probing"
	StateAwaitingSelection State = "awaiting_selection"
	StateQueued            State = "queued"
	StateProcessing        State = "processing"
	StateTranslating       State = "translating"
	StateCompleted         State = "completed"
	StateFailed            State = "failed"
)

// Stage identifies which external step a failure is attributed to.
type Stage string

const (
	StageProbe      Stage = "probe"
	StageExtract    Stage = "extract"
	StageTranscribe Stage = "transcribe"
	StageTranslate  Stage = "translate"
)

// Mode is the client-chosen processing path.
type Mode string

const (
	ModeExtract    Mode = "extract"
	ModeTranscribe Mode = "transcribe"
)

// CodecType classifies a media stream.
type CodecType string

const (
	CodecSubtitle CodecType = "subtitle"
	CodecAudio    CodecType = "audio"
	CodecVideo    CodecType = "video"
	CodecOther    CodecType = "other"
)

// StreamInfo is a read-only snapshot of one media stream reported by the prober.
type StreamInfo struct {
	Index     int       `json:"index"`
	CodecType CodecType `json:"codec_type"`
	CodecName string    `json:"codec_name"`
	Language  string    `json:"language,omitempty"`
}

// Selection is the client's chosen mode, set at most once per task.
type Selection struct {
	Mode        Mode `json:"mode"`
	StreamIndex int  `json:"stream_index"`
}

// Task is one end-to-end subtitle generation job for a single uploaded file.
type Task struct {
	ID          string
	Filename    string
	SourcePath  string
	State       State
	Progress    int
	Streams     []StreamInfo
	Selection   *Selection
	ResultPath  string
	ErrorDetail string
	FailedStage Stage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Terminal reports whether the task has reached a final state.
func (t *Task) Terminal() bool {
	return t.State == StateCompleted || t.State == StateFailed
}

// SubtitleStream returns the stream with the given index if it is a subtitle stream.
func (t *Task) SubtitleStream(index int) (StreamInfo, bool) {
	for _, s := range t.Streams {
		if s.Index == index && s.CodecType == CodecSubtitle {
			return s, true
		}
	}
	return StreamInfo{}, false
}

// Clone returns a deep copy so callers never observe registry-internal state.
func (t *Task) Clone() Task {
	copied := *t
	if t.Streams != nil {
		copied.Streams = append([]StreamInfo(nil), t.Streams...)
	}
	if t.Selection != nil {
		sel := *t.Selection
		copied.Selection = &sel
	}
	return copied
}
