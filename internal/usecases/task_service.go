package usecases

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"subtitle-translator/internal/domain/dto"
	"subtitle-translator/internal/domain/entities"
	"subtitle-translator/internal/domain/repositories"
	"subtitle-translator/internal/infrastructure/queue"
	infra_repo "subtitle-translator/internal/infrastructure/repositories"
	consts "subtitle-translator/pkg/constants"
	"subtitle-translator/pkg/errors"

	"github.com/google/uuid"
)

type TaskService interface {
	Upload(fileHeader *multipart.FileHeader) (*dto.UploadResponse, error)
	Status(taskID string) (*dto.TaskStatusResponse, error)
	Start(taskID string, req *dto.StartTaskRequest) (*dto.StartTaskResponse, error)
	Download(filename string) (io.ReadCloser, error)
	List() ([]dto.TaskStatusResponse, error)
}

type taskService struct {
	repo      repositories.TaskRepository
	storage   repositories.StorageStrategy
	pipeline  *Pipeline
	pool      *queue.WorkerPool
	uploadDir string
}

func NewTaskService(
	repo repositories.TaskRepository,
	storage repositories.StorageStrategy,
	pipeline *Pipeline,
	pool *queue.WorkerPool,
	uploadDir string,
) TaskService {
	return &taskService{
		repo:      repo,
		storage:   storage,
		pipeline:  pipeline,
		pool:      pool,
		uploadDir: uploadDir,
	}
}

// Upload persists the file, registers the task and kicks off the probe stage
// in the background. The response is returned before probing finishes; the
// client learns the outcome by polling.
func (s *taskService) Upload(fileHeader *multipart.FileHeader) (*dto.UploadResponse, error) {
	if fileHeader == nil || fileHeader.Size == 0 {
		return nil, errors.ErrBadUpload(fmt.Errorf("empty upload"))
	}

	safeFilename := filepath.Base(fileHeader.Filename)
	if safeFilename == "" || safeFilename == "." {
		return nil, errors.ErrBadUpload(fmt.Errorf("missing filename"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return nil, errors.ErrBadUpload(err)
	}
	defer src.Close()

	sourcePath := filepath.Join(s.uploadDir, fmt.Sprintf("%s_%s", uuid.New().String(), safeFilename))
	dst, err := os.Create(sourcePath)
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(sourcePath)
		return nil, errors.ErrBadUpload(err)
	}

	task, err := s.repo.Create(safeFilename, sourcePath)
	if err != nil {
		os.Remove(sourcePath)
		return nil, errors.ErrInternal(err)
	}

	go s.pipeline.Analyze(task.ID)
	log.Printf("Task %s: uploaded %s (%d bytes)", task.ID, safeFilename, fileHeader.Size)

	return &dto.UploadResponse{
		TaskID:   task.ID,
		Filename: safeFilename,
		Status:   consts.StatusAnalyzing,
	}, nil
}

func (s *taskService) Status(taskID string) (*dto.TaskStatusResponse, error) {
	task, err := s.repo.Get(taskID)
	if err != nil {
		return nil, errors.ErrNotFound(err)
	}
	resp := toStatusResponse(task)
	return &resp, nil
}

func (s *taskService) List() ([]dto.TaskStatusResponse, error) {
	tasks, err := s.repo.List()
	if err != nil {
		return nil, errors.ErrInternal(err)
	}
	out := make([]dto.TaskStatusResponse, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, toStatusResponse(task))
	}
	return out, nil
}

// Start applies the client's selection. The whole validation plus the
// AwaitingSelection -> Queued transition happens inside one atomic registry
// update, so a double start can never enqueue twice.
func (s *taskService) Start(taskID string, req *dto.StartTaskRequest) (*dto.StartTaskResponse, error) {
	mode := entities.Mode(req.Mode)
	if mode != entities.ModeExtract && mode != entities.ModeTranscribe {
		return nil, errors.ErrInvalidSelection(fmt.Errorf("unknown mode %q", req.Mode))
	}
	if mode == entities.ModeExtract && req.StreamIndex == nil {
		return nil, errors.ErrInvalidSelection(fmt.Errorf("extract mode requires stream_index"))
	}

	_, err := s.repo.Update(taskID, func(t *entities.Task) error {
		if t.State != entities.StateAwaitingSelection {
			return errors.ErrInvalidState(fmt.Errorf("task is %s", t.State))
		}

		selection := entities.Selection{Mode: mode}
		if mode == entities.ModeExtract {
			if _, ok := t.SubtitleStream(*req.StreamIndex); !ok {
				return errors.ErrInvalidSelection(fmt.Errorf("stream %d is not a subtitle stream", *req.StreamIndex))
			}
			selection.StreamIndex = *req.StreamIndex
		}

		t.Selection = &selection
		t.State = entities.StateQueued
		t.Progress = 0
		return nil
	})
	if err != nil {
		if err == infra_repo.ErrTaskNotFound {
			return nil, errors.ErrNotFound(err)
		}
		if te, ok := err.(*errors.TaskError); ok {
			return nil, te
		}
		return nil, errors.ErrInternal(err)
	}

	s.pool.AddJob(queue.Job{TaskID: taskID})
	log.Printf("Task %s: queued in %s mode", taskID, mode)

	return &dto.StartTaskResponse{Status: consts.StatusAccepted}, nil
}

// Download opens a result artifact by filename. The storage strategy confines
// lookups to the output location, so path traversal cannot escape it.
func (s *taskService) Download(filename string) (io.ReadCloser, error) {
	safe := filepath.Base(filename)
	if safe == "" || safe == "." || safe == ".." {
		return nil, errors.ErrNotFound(fmt.Errorf("invalid filename"))
	}
	reader, err := s.storage.Open(safe)
	if err != nil {
		return nil, errors.ErrNotFound(err)
	}
	return reader, nil
}

func toStatusResponse(task entities.Task) dto.TaskStatusResponse {
	resp := dto.TaskStatusResponse{
		ID:             task.ID,
		Filename:       task.Filename,
		Status:         renderStatus(task),
		Progress:       task.Progress,
		NeedsSelection: task.State == entities.StateAwaitingSelection,
	}
	if len(task.Streams) > 0 {
		resp.Streams = make([]dto.StreamDTO, 0, len(task.Streams))
		for _, stream := range task.Streams {
			resp.Streams = append(resp.Streams, dto.StreamDTO{
				Index:     stream.Index,
				CodecType: string(stream.CodecType),
				CodecName: stream.CodecName,
				Language:  stream.Language,
			})
		}
	}
	if task.State == entities.StateCompleted {
		resp.Result = filepath.Base(task.ResultPath)
	}
	return resp
}

// renderStatus is the human-facing rendering of the state machine.
func renderStatus(task entities.Task) string {
	switch task.State {
	case entities.StateUploaded:
		return consts.StatusUploading
	case entities.StateProbing:
		return consts.StatusAnalyzing
	case entities.StateAwaitingSelection:
		return consts.StatusAwaiting
	case entities.StateQueued:
		return consts.StatusQueued
	case entities.StateProcessing:
		return consts.StatusProcessing
	case entities.StateTranslating:
		return consts.StatusTranslating
	case entities.StateCompleted:
		return consts.StatusCompleted
	case entities.StateFailed:
		return consts.StatusErrorPrefix + task.ErrorDetail
	default:
		return string(task.State)
	}
}
