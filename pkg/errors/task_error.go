package errors

import "fmt"

type TaskError struct {
	Code    string
	Message string
	Err     error
}

func (e *TaskError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}

var (
	ErrNotFound = func(err error) *TaskError {
		return &TaskError{Code: "not_found", Message: "Task or file not found", Err: err}
	}
	ErrBadUpload = func(err error) *TaskError {
		return &TaskError{Code: "bad_upload", Message: "Uploaded file is missing or unreadable", Err: err}
	}
	ErrInvalidState = func(err error) *TaskError {
		return &TaskError{Code: "invalid_state", Message: "Operation not allowed in current task state", Err: err}
	}
	ErrInvalidSelection = func(err error) *TaskError {
		return &TaskError{Code: "invalid_selection", Message: "Selected stream does not exist or is not a subtitle stream", Err: err}
	}
	ErrInternal = func(err error) *TaskError {
		return &TaskError{Code: "internal_error", Message: "Server error", Err: err}
	}
)
