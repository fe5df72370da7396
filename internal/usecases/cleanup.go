package usecases

import (
	"log"
	"os"
	"path/filepath"
	"time"
)

// CleanupService removes stale intermediate artifacts (extracted audio,
// chunk directories) left behind by interrupted pipelines. Uploaded sources
// and result files are never touched; their retention is an external concern.
type CleanupService interface {
	CleanupOldTempFiles(maxAge time.Duration) error
}

type cleanupService struct {
	tempDir string
}

func NewCleanupService(tempDir string) CleanupService {
	return &cleanupService{tempDir: tempDir}
}

func (s *cleanupService) CleanupOldTempFiles(maxAge time.Duration) error {
	entries, err := os.ReadDir(s.tempDir)
	if err != nil {
		return err
	}

	now := time.Now()
	for _, entry := range entries {
		path := filepath.Join(s.tempDir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) <= maxAge {
			continue
		}
		if err := os.RemoveAll(path); err != nil {
			log.Printf("Could not remove stale temp entry %s: %v", path, err)
			continue
		}
		log.Printf("Removed stale temp entry: %s", path)
	}
	return nil
}
