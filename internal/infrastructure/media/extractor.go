package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Extractor pulls an existing subtitle stream out of the container with ffmpeg.
type Extractor struct {
	TempDir string
}

func NewExtractor(tempDir string) *Extractor {
	return &Extractor{TempDir: tempDir}
}

// Extract writes the subtitle stream at the given absolute stream index to a
// temporary .srt file and returns its contents.
func (e *Extractor) Extract(ctx context.Context, path string, streamIndex int) (string, error) {
	outPath := filepath.Join(e.TempDir, fmt.Sprintf("%s_s%d.srt", baseName(path), streamIndex))

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-i", path,
		"-map", fmt.Sprintf("0:%d", streamIndex),
		outPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("ffmpeg subtitle extraction failed: %w: %s", err, tail(out))
	}
	defer os.Remove(outPath)

	content, err := os.ReadFile(outPath)
	if err != nil {
		return "", fmt.Errorf("could not read extracted subtitles: %w", err)
	}
	if len(content) == 0 {
		return "", fmt.Errorf("extracted subtitle stream %d is empty", streamIndex)
	}
	return string(content), nil
}

func baseName(path string) string {
	base := filepath.Base(path)
	return base[:len(base)-len(filepath.Ext(base))]
}

// tail keeps only the last part of ffmpeg's output for error messages.
func tail(out []byte) string {
	const max = 400
	if len(out) > max {
		out = out[len(out)-max:]
	}
	return string(out)
}
