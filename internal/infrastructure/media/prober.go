package media

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"subtitle-translator/internal/domain/entities"
)

// Prober enumerates the streams of a media file with ffprobe.
type Prober struct{}

func NewProber() *Prober {
	return &Prober{}
}

// ffprobeOutput mirrors the parts of `ffprobe -show_streams -of json` we use.
// Per-codec tag dictionaries are dynamic; everything we do not recognize is
// dropped here so the rest of the system only sees the fixed StreamInfo shape.
type ffprobeOutput struct {
	Streams []struct {
		Index     int    `json:"index"`
		CodecType string `json:"codec_type"`
		CodecName string `json:"codec_name"`
		Tags      struct {
			Language string `json:"language"`
		} `json:"tags"`
	} `json:"streams"`
}

func (p *Prober) Probe(ctx context.Context, path string) ([]entities.StreamInfo, error) {
	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "error",
		"-show_streams",
		"-of", "json",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe ffprobeOutput
	if err := json.Unmarshal(out, &probe); err != nil {
		return nil, fmt.Errorf("could not parse ffprobe output: %w", err)
	}

	streams := make([]entities.StreamInfo, 0, len(probe.Streams))
	for _, s := range probe.Streams {
		streams = append(streams, entities.StreamInfo{
			Index:     s.Index,
			CodecType: normalizeCodecType(s.CodecType),
			CodecName: s.CodecName,
			Language:  s.Tags.Language,
		})
	}
	return streams, nil
}

func normalizeCodecType(codecType string) entities.CodecType {
	switch codecType {
	case "subtitle":
		return entities.CodecSubtitle
	case "audio":
		return entities.CodecAudio
	case "video":
		return entities.CodecVideo
	default:
		return entities.CodecOther
	}
}
