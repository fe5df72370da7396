package routers

import (
	"subtitle-translator/internal/delivery/http/handlers"
	"subtitle-translator/internal/usecases"

	"github.com/gofiber/fiber/v2"
)

func SetupTaskRoutes(app *fiber.App, taskService usecases.TaskService) {
	taskHandler := handlers.NewTaskHandler(taskService)

	// Routes:
	api := app.Group("/api/v1")
	api.Post("/upload", taskHandler.Upload)
	api.Get("/tasks", taskHandler.List)
	api.Get("/tasks/:task_id", taskHandler.Status)
	api.Post("/tasks/:task_id/start", taskHandler.Start)
	api.Get("/download/:filename", taskHandler.Download)
}
