package dto

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	TaskID   string `json:"task_id"`
	Filename string `json:"filename"`
	Status   string `json:"status"`
}

// StartTaskRequest selects the processing mode for a probed task.
type StartTaskRequest struct {
	Mode        string `json:"mode"` // "extract" or "transcribe"
	StreamIndex *int   `json:"stream_index,omitempty"`
}

// StartTaskResponse acknowledges an accepted start request.
type StartTaskResponse struct {
	Status string `json:"status"`
}

// StreamDTO describes one media stream in a status response.
type StreamDTO struct {
	Index     int    `json:"index"`
	CodecType string `json:"codec_type"`
	CodecName string `json:"codec_name"`
	Language  string `json:"language,omitempty"`
}

// TaskStatusResponse is the polling snapshot of a task.
type TaskStatusResponse struct {
	ID             string      `json:"id"`
	Filename       string      `json:"filename"`
	Status         string      `json:"status"`
	Progress       int         `json:"progress"`
	NeedsSelection bool        `json:"needs_selection"`
	Streams        []StreamDTO `json:"streams,omitempty"`
	Result         string      `json:"result,omitempty"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
