package media

import (
	"encoding/json"
	"testing"

	"subtitle-translator/internal/domain/entities"
)

const sampleProbe = `{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264"},
    {"index": 1, "codec_type": "audio", "codec_name": "aac", "tags": {"language": "jpn", "handler_name": "SoundHandler"}},
    {"index": 2, "codec_type": "subtitle", "codec_name": "subrip", "tags": {"language": "eng"}},
    {"index": 3, "codec_type": "attachment", "codec_name": "ttf"}
  ]
}`

func TestProbeOutputNormalization(t *testing.T) {
	var probe ffprobeOutput
	if err := json.Unmarshal([]byte(sampleProbe), &probe); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(probe.Streams) != 4 {
		t.Fatalf("streams = %d", len(probe.Streams))
	}

	sub := probe.Streams[2]
	if normalizeCodecType(sub.CodecType) != entities.CodecSubtitle {
		t.Fatalf("subtitle stream misclassified")
	}
	if sub.Tags.Language != "eng" {
		t.Fatalf("language tag = %q", sub.Tags.Language)
	}
	// unknown codec types collapse to "other", unknown tags are dropped
	if normalizeCodecType(probe.Streams[3].CodecType) != entities.CodecOther {
		t.Fatalf("attachment stream should normalize to other")
	}
}
