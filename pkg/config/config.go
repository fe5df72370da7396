package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Upload   UploadConfig
	Pipeline PipelineConfig
	Storage  StorageConfig
	AI       AIConfig
}

type ServerConfig struct {
	Port string
	Host string
}

type UploadConfig struct {
	UploadDir   string
	OutputDir   string
	TempDir     string
	MaxFileSize int64 // bytes
}

type PipelineConfig struct {
	WorkerCount        int
	QueueSize          int
	StageTimeout       time.Duration
	SegmentSeconds     int // audio chunk length for transcription
	TranslateChunkSize int // subtitle cues per translation request
	TranscribeParallel int
	TranslateParallel  int
}

type StorageConfig struct {
	Backend  string // "local" or "s3"
	S3Bucket string
	S3Region string
}

type AIConfig struct {
	OpenAIAPIKey string
	GeminiAPIKey string
	TargetLang   string
}

func LoadConfig() *Config {
	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8000"),
			Host: getEnv("SERVER_HOST", "127.0.0.1"),
		},
		Upload: UploadConfig{
			UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
			OutputDir:   getEnv("OUTPUT_DIR", "outputs"),
			TempDir:     getEnv("TEMP_DIR", "temp"),
			MaxFileSize: getEnvAsInt64("UPLOAD_MAX_FILE_SIZE", 5*1024*1024*1024), // 5GB
		},
		Pipeline: PipelineConfig{
			WorkerCount:        getEnvAsInt("WORKER_COUNT", 2),
			QueueSize:          getEnvAsInt("QUEUE_SIZE", 100),
			StageTimeout:       getEnvAsDuration("STAGE_TIMEOUT", 15*time.Minute),
			SegmentSeconds:     getEnvAsInt("AUDIO_SEGMENT_SECONDS", 60),
			TranslateChunkSize: getEnvAsInt("TRANSLATE_CHUNK_SIZE", 50),
			TranscribeParallel: getEnvAsInt("TRANSCRIBE_PARALLEL", 4),
			TranslateParallel:  getEnvAsInt("TRANSLATE_PARALLEL", 3),
		},
		Storage: StorageConfig{
			Backend:  getEnv("STORAGE_BACKEND", "local"),
			S3Bucket: getEnv("S3_BUCKET", ""),
			S3Region: getEnv("S3_REGION", "eu-central-1"),
		},
		AI: AIConfig{
			OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
			TargetLang:   getEnv("TARGET_LANG", "ko"),
		},
	}
	return config
}

// EnsureDirs creates the working directories if they do not exist.
func EnsureDirs() {
	cfg := LoadConfig()
	dirs := []string{cfg.Upload.UploadDir, cfg.Upload.OutputDir, cfg.Upload.TempDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			log.Printf("Failed to create directory %s: %v", dir, err)
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
