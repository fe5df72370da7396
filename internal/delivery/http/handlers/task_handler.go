package handlers

import (
	"fmt"

	"subtitle-translator/internal/domain/dto"
	"subtitle-translator/internal/usecases"
	"subtitle-translator/pkg/errors"

	"github.com/gofiber/fiber/v2"
)

type TaskHandler struct {
	taskService usecases.TaskService
}

func NewTaskHandler(taskService usecases.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// Upload
//
// @Summary      Upload Video
// @Description  Uploads a video file and starts stream analysis in the background
// @Tags         Tasks
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Video file"
// @Success      200   {object}  dto.UploadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /upload [post]
func (h *TaskHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return errors.HandleError(c, errors.ErrBadUpload(err))
	}

	response, err := h.taskService.Upload(fileHeader)
	if err != nil {
		return errors.HandleError(c, err)
	}

	return c.JSON(response)
}

// Status
//
// @Summary      Get Task Status
// @Description  Returns the polling snapshot of a task
// @Tags         Tasks
// @Produce      json
// @Param        task_id  path      string  true  "Task ID"
// @Success      200      {object}  dto.TaskStatusResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Router       /tasks/{task_id} [get]
func (h *TaskHandler) Status(c *fiber.Ctx) error {
	taskID := c.Params("task_id")
	if taskID == "" {
		return errors.HandleError(c, errors.ErrNotFound(fmt.Errorf("missing task id")))
	}

	response, err := h.taskService.Status(taskID)
	if err != nil {
		return errors.HandleError(c, err)
	}

	return c.JSON(response)
}

// List
//
// @Summary      List Tasks
// @Description  Returns snapshots of all known tasks
// @Tags         Tasks
// @Produce      json
// @Success      200  {array}  dto.TaskStatusResponse
// @Router       /tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	response, err := h.taskService.List()
	if err != nil {
		return errors.HandleError(c, err)
	}
	return c.JSON(response)
}

// Start
//
// @Summary      Start Task
// @Description  Applies the extract/transcribe selection and queues the task
// @Tags         Tasks
// @Accept       json
// @Produce      json
// @Param        task_id  path      string               true  "Task ID"
// @Param        body     body      dto.StartTaskRequest true  "Selection"
// @Success      200      {object}  dto.StartTaskResponse
// @Failure      400      {object}  dto.ErrorResponse
// @Failure      404      {object}  dto.ErrorResponse
// @Failure      409      {object}  dto.ErrorResponse
// @Router       /tasks/{task_id}/start [post]
func (h *TaskHandler) Start(c *fiber.Ctx) error {
	taskID := c.Params("task_id")
	if taskID == "" {
		return errors.HandleError(c, errors.ErrNotFound(fmt.Errorf("missing task id")))
	}

	req := new(dto.StartTaskRequest)
	if err := c.BodyParser(req); err != nil {
		return errors.HandleError(c, errors.ErrInvalidSelection(err))
	}

	response, err := h.taskService.Start(taskID, req)
	if err != nil {
		return errors.HandleError(c, err)
	}

	return c.JSON(response)
}

// Download
//
// @Summary      Download Result
// @Description  Downloads a finished subtitle file by name
// @Tags         Tasks
// @Produce      application/octet-stream
// @Param        filename  path  string  true  "Result filename"
// @Success      200       {file}    file
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /download/{filename} [get]
func (h *TaskHandler) Download(c *fiber.Ctx) error {
	filename := c.Params("filename")

	reader, err := h.taskService.Download(filename)
	if err != nil {
		return errors.HandleError(c, err)
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	c.Set(fiber.HeaderContentType, "application/x-subrip")
	return c.SendStream(reader)
}
