package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "subtitle-translator/docs"

	"subtitle-translator/internal/delivery/http/routers"
	domain_repo "subtitle-translator/internal/domain/repositories"
	"subtitle-translator/internal/infrastructure/ai"
	"subtitle-translator/internal/infrastructure/media"
	"subtitle-translator/internal/infrastructure/queue"
	infra_repo "subtitle-translator/internal/infrastructure/repositories"
	"subtitle-translator/internal/infrastructure/storage"
	"subtitle-translator/internal/usecases"
	"subtitle-translator/pkg/config"
	consts "subtitle-translator/pkg/constants"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/swagger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}
	cfg := config.LoadConfig()
	config.EnsureDirs()

	app := fiber.New(fiber.Config{
		BodyLimit: int(cfg.Upload.MaxFileSize),
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Swagger UI
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Storage backend for result artifacts
	var resultStorage domain_repo.StorageStrategy
	if cfg.Storage.Backend == "s3" {
		s3Storage, err := storage.NewS3Storage(cfg.Storage.S3Bucket, cfg.Storage.S3Region)
		if err != nil {
			log.Fatalf("S3 storage init failed: %v", err)
		}
		resultStorage = s3Storage
	} else {
		resultStorage = storage.NewLocalStorage(cfg.Upload.OutputDir)
	}

	// Registry, collaborators, orchestrator
	taskRepo := infra_repo.NewInMemoryTaskRepository()
	pipeline := usecases.NewPipeline(
		taskRepo,
		resultStorage,
		media.NewProber(),
		media.NewExtractor(cfg.Upload.TempDir),
		ai.NewWhisperClient(cfg.AI.OpenAIAPIKey),
		ai.NewGeminiClient(cfg.AI.GeminiAPIKey),
		media.NewAudioTools(),
		cfg.Pipeline,
		cfg.Upload.TempDir,
		cfg.AI.TargetLang,
	)
	pool := queue.NewWorkerPool(cfg.Pipeline.WorkerCount, cfg.Pipeline.QueueSize, pipeline)
	taskService := usecases.NewTaskService(taskRepo, resultStorage, pipeline, pool, cfg.Upload.UploadDir)

	// Routes
	routers.SetupTaskRoutes(app, taskService)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": consts.StatusOK})
	})

	// Stale temp file cleanup
	cleanupUC := usecases.NewCleanupService(cfg.Upload.TempDir)
	c := cron.New(cron.WithSeconds())
	c.AddFunc("0 */5 * * * *", func() {
		if err := cleanupUC.CleanupOldTempFiles(24 * time.Hour); err != nil {
			log.Printf("Error cleaning up old temp files: %v", err)
		}
	})
	c.Start()

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	log.Printf("Server starting on %s", addr)

	// Graceful shutdown
	go func() {
		if err := app.Listen(addr); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Print("Shutdown signal received, stopping server...")

	ctxShut, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctxShut); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	c.Stop()
	pool.Shutdown()
	log.Println("Server stopped cleanly")
}
