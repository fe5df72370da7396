package ai

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const defaultTranscriptionURL = "https://api.openai.com/v1/audio/transcriptions"

// WhisperClient transcribes audio via the OpenAI transcription endpoint,
// requesting SRT output directly.
type WhisperClient struct {
	APIKey  string
	BaseURL string
	Model   string
	HTTP    *http.Client
}

func NewWhisperClient(apiKey string) *WhisperClient {
	return &WhisperClient{
		APIKey:  apiKey,
		BaseURL: defaultTranscriptionURL,
		Model:   "whisper-1",
		HTTP:    &http.Client{Timeout: 10 * time.Minute},
	}
}

func (c *WhisperClient) Transcribe(ctx context.Context, audioPath string) (string, error) {
	if c.APIKey == "" {
		return "", fmt.Errorf("OpenAI API key is missing")
	}

	file, err := os.Open(audioPath)
	if err != nil {
		return "", fmt.Errorf("could not open audio file: %w", err)
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("could not buffer audio file: %w", err)
	}
	_ = writer.WriteField("model", c.Model)
	_ = writer.WriteField("response_format", "srt")
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcription API returned %d: %s", resp.StatusCode, truncate(respBody))
	}

	return string(respBody), nil
}

func truncate(b []byte) string {
	const max = 300
	if len(b) > max {
		b = b[:max]
	}
	return string(b)
}
