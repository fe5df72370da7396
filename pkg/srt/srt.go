// Package srt contains small helpers for working with SubRip subtitle text:
// shifting cue timestamps, renumbering cues and splitting cue blocks into
// batches for chunked transcription and translation.
package srt

import (
	"fmt"
	"regexp"
	"strings"
)

var timestampLine = regexp.MustCompile(`(\d{2}):(\d{2}):(\d{2}),(\d{3}) --> (\d{2}):(\d{2}):(\d{2}),(\d{3})`)

// ShiftTimestamps adds offsetSeconds to every cue timestamp in the content.
func ShiftTimestamps(content string, offsetSeconds float64) string {
	return timestampLine.ReplaceAllStringFunc(content, func(match string) string {
		parts := timestampLine.FindStringSubmatch(match)
		start := shiftTime(parts[1], parts[2], parts[3], parts[4], offsetSeconds)
		end := shiftTime(parts[5], parts[6], parts[7], parts[8], offsetSeconds)
		return start + " --> " + end
	})
}

func shiftTime(h, m, s, ms string, offset float64) string {
	total := float64(atoi(h))*3600 + float64(atoi(m))*60 + float64(atoi(s)) + float64(atoi(ms))/1000
	total += offset
	if total < 0 {
		total = 0
	}
	hh := int(total) / 3600
	mm := (int(total) % 3600) / 60
	ss := int(total) % 60
	msec := int((total - float64(int(total))) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hh, mm, ss, msec)
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

// Merge concatenates per-chunk SRT fragments, shifting each fragment by its
// chunk offset and renumbering cue ids so the result is one valid sequence.
func Merge(parts []string, segmentSeconds int) string {
	var b strings.Builder
	seq := 1
	for i, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		shifted := ShiftTimestamps(part, float64(i*segmentSeconds))
		for _, block := range SplitBlocks(shifted) {
			lines := strings.SplitN(block, "\n", 2)
			body := ""
			if len(lines) == 2 {
				body = lines[1]
			}
			// first line of a cue block is its sequence number
			if strings.TrimSpace(lines[0]) != "" && isDigits(strings.TrimSpace(lines[0])) {
				fmt.Fprintf(&b, "%d\n%s\n\n", seq, strings.TrimRight(body, "\n"))
			} else {
				fmt.Fprintf(&b, "%d\n%s\n\n", seq, strings.TrimRight(block, "\n"))
			}
			seq++
		}
	}
	return b.String()
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// SplitBlocks splits SRT content into cue blocks separated by blank lines.
func SplitBlocks(content string) []string {
	raw := strings.Split(strings.ReplaceAll(strings.TrimSpace(content), "\r\n", "\n"), "\n\n")
	blocks := make([]string, 0, len(raw))
	for _, block := range raw {
		if strings.TrimSpace(block) != "" {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// Chunk groups cue blocks into batches of at most size blocks each.
func Chunk(blocks []string, size int) [][]string {
	if size <= 0 {
		size = 50
	}
	chunks := make([][]string, 0, len(blocks)/size+1)
	for i := 0; i < len(blocks); i += size {
		end := i + size
		if end > len(blocks) {
			end = len(blocks)
		}
		chunks = append(chunks, blocks[i:end])
	}
	return chunks
}
