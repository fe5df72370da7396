package queue

// Job is one unit of task processing handed to the worker pool.
type Job struct {
	TaskID string
}

// Processor runs the processing pipeline for one task. Implementations must
// contain their own failures; a job must never panic the worker.
type Processor interface {
	Process(taskID string)
}
