package srt

import (
	"strings"
	"testing"
)

func TestShiftTimestamps(t *testing.T) {
	in := "1\n00:00:01,500 --> 00:00:03,250\nhello\n"
	out := ShiftTimestamps(in, 60)
	if !strings.Contains(out, "00:01:01,500 --> 00:01:03,250") {
		t.Fatalf("shifted output wrong:\n%s", out)
	}
}

func TestShiftTimestampsAcrossHour(t *testing.T) {
	in := "1\n00:59:30,000 --> 00:59:59,900\nx\n"
	out := ShiftTimestamps(in, 60)
	if !strings.Contains(out, "01:00:30,000 --> 01:00:59,900") {
		t.Fatalf("hour carry wrong:\n%s", out)
	}
}

func TestMergeResequencesAndOffsets(t *testing.T) {
	chunk0 := "1\n00:00:00,000 --> 00:00:02,000\nfirst\n\n2\n00:00:03,000 --> 00:00:04,000\nsecond\n"
	chunk1 := "1\n00:00:01,000 --> 00:00:02,000\nthird\n"

	merged := Merge([]string{chunk0, chunk1}, 60)
	blocks := SplitBlocks(merged)
	if len(blocks) != 3 {
		t.Fatalf("blocks = %d, want 3:\n%s", len(blocks), merged)
	}

	for i, block := range blocks {
		lines := strings.SplitN(block, "\n", 2)
		if want := []string{"1", "2", "3"}[i]; lines[0] != want {
			t.Fatalf("cue %d renumbered to %q, want %q", i, lines[0], want)
		}
	}

	// second chunk cue shifted by one segment
	if !strings.Contains(blocks[2], "00:01:01,000 --> 00:01:02,000") {
		t.Fatalf("chunk offset not applied:\n%s", blocks[2])
	}
}

func TestMergeSkipsEmptyParts(t *testing.T) {
	merged := Merge([]string{"", "1\n00:00:00,000 --> 00:00:01,000\nonly\n", "  "}, 60)
	blocks := SplitBlocks(merged)
	if len(blocks) != 1 {
		t.Fatalf("blocks = %d, want 1", len(blocks))
	}
}

func TestChunkGroupsBlocks(t *testing.T) {
	blocks := make([]string, 120)
	for i := range blocks {
		blocks[i] = "cue"
	}
	chunks := Chunk(blocks, 50)
	if len(chunks) != 3 {
		t.Fatalf("chunks = %d, want 3", len(chunks))
	}
	if len(chunks[0]) != 50 || len(chunks[2]) != 20 {
		t.Fatalf("chunk sizes = %d/%d", len(chunks[0]), len(chunks[2]))
	}
}
