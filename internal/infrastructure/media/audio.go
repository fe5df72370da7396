package media

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
)

// AudioTools runs the ffmpeg audio steps of the transcribe path.
type AudioTools struct{}

func NewAudioTools() *AudioTools {
	return &AudioTools{}
}

func (AudioTools) ExtractAudio(ctx context.Context, videoPath, outputPath string) error {
	return ExtractAudio(ctx, videoPath, outputPath)
}

func (AudioTools) SplitAudio(ctx context.Context, audioPath string, segmentSeconds int, outputDir string) ([]string, error) {
	return SplitAudio(ctx, audioPath, segmentSeconds, outputDir)
}

// ExtractAudio pulls the audio track into a 64k mp3 at outputPath.
func ExtractAudio(ctx context.Context, videoPath, outputPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-i", videoPath,
		"-vn",
		"-acodec", "mp3",
		"-b:a", "64k",
		outputPath,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("ffmpeg audio extraction failed: %w: %s", err, tail(out))
	}
	return nil
}

// SplitAudio cuts an audio file into segments of segmentSeconds using the
// stream copy segment muxer and returns the chunk paths in order.
func SplitAudio(ctx context.Context, audioPath string, segmentSeconds int, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("could not create chunk directory: %w", err)
	}

	base := baseName(audioPath)
	pattern := filepath.Join(outputDir, base+"_%03d.mp3")

	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y",
		"-i", audioPath,
		"-f", "segment",
		"-segment_time", fmt.Sprintf("%d", segmentSeconds),
		"-c", "copy",
		pattern,
	)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("ffmpeg audio split failed: %w: %s", err, tail(out))
	}

	entries, err := os.ReadDir(outputDir)
	if err != nil {
		return nil, err
	}

	chunks := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, base+"_") && strings.HasSuffix(name, ".mp3") {
			chunks = append(chunks, filepath.Join(outputDir, name))
		}
	}
	sort.Strings(chunks)
	return chunks, nil
}
