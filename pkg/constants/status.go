package constants

const (
	StatusUploading   = "Uploading"
	StatusAnalyzing   = "Analyzing"
	StatusAwaiting    = "Waiting for Selection"
	StatusQueued      = "Queued"
	StatusProcessing  = "Processing"
	StatusTranslating = "Translating"
	StatusCompleted   = "Completed"
	StatusErrorPrefix = "Error: "
	StatusOK          = "ok"
	StatusAccepted    = "accepted"
)
