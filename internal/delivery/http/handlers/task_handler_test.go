package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"subtitle-translator/internal/delivery/http/routers"
	"subtitle-translator/internal/domain/dto"
	"subtitle-translator/pkg/errors"

	"github.com/gofiber/fiber/v2"
)

// fakeTaskService scripts service responses to exercise the HTTP boundary.
type fakeTaskService struct {
	uploadResp *dto.UploadResponse
	statusResp *dto.TaskStatusResponse
	startResp  *dto.StartTaskResponse
	download   string
	err        error
}

func (f *fakeTaskService) Upload(*multipart.FileHeader) (*dto.UploadResponse, error) {
	return f.uploadResp, f.err
}

func (f *fakeTaskService) Status(string) (*dto.TaskStatusResponse, error) {
	return f.statusResp, f.err
}

func (f *fakeTaskService) Start(string, *dto.StartTaskRequest) (*dto.StartTaskResponse, error) {
	return f.startResp, f.err
}

func (f *fakeTaskService) Download(string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.download)), nil
}

func (f *fakeTaskService) List() ([]dto.TaskStatusResponse, error) {
	if f.statusResp == nil {
		return nil, f.err
	}
	return []dto.TaskStatusResponse{*f.statusResp}, f.err
}

func newTestApp(svc *fakeTaskService) *fiber.App {
	app := fiber.New()
	routers.SetupTaskRoutes(app, svc)
	return app
}

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write: %v", err)
	}
	writer.Close()
	return &buf, writer.FormDataContentType()
}

func TestUploadEndpoint(t *testing.T) {
	svc := &fakeTaskService{
		uploadResp: &dto.UploadResponse{TaskID: "t1", Filename: "clip.mkv", Status: "Analyzing"},
	}
	app := newTestApp(svc)

	body, contentType := multipartBody(t, "file", "clip.mkv", "fake video bytes")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var parsed dto.UploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if parsed.TaskID != "t1" || parsed.Status != "Analyzing" {
		t.Fatalf("unexpected body: %+v", parsed)
	}
}

func TestUploadEndpointMissingFile(t *testing.T) {
	app := newTestApp(&fakeTaskService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/upload", strings.NewReader("not multipart"))
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
}

func TestStatusEndpointNotFound(t *testing.T) {
	svc := &fakeTaskService{err: errors.ErrNotFound(fmt.Errorf("missing"))}
	app := newTestApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/tasks/unknown", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	var parsed dto.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if parsed.Error != "not_found" {
		t.Fatalf("error code = %q", parsed.Error)
	}
}

func TestStartEndpointErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  *errors.TaskError
		want int
	}{
		{"invalid state", errors.ErrInvalidState(fmt.Errorf("task is queued")), http.StatusConflict},
		{"invalid selection", errors.ErrInvalidSelection(fmt.Errorf("bad stream")), http.StatusBadRequest},
		{"not found", errors.ErrNotFound(fmt.Errorf("missing")), http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(&fakeTaskService{err: tc.err})

			req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/t1/start",
				strings.NewReader(`{"mode":"extract","stream_index":2}`))
			req.Header.Set("Content-Type", "application/json")

			resp, err := app.Test(req)
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tc.want {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.want)
			}
		})
	}
}

func TestStartEndpointAccepted(t *testing.T) {
	svc := &fakeTaskService{startResp: &dto.StartTaskResponse{Status: "accepted"}}
	app := newTestApp(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks/t1/start",
		strings.NewReader(`{"mode":"transcribe"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}

func TestDownloadEndpoint(t *testing.T) {
	svc := &fakeTaskService{download: "1\n00:00:00,000 --> 00:00:01,000\nhi\n"}
	app := newTestApp(svc)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/download/clip.ko.srt", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if cd := resp.Header.Get(fiber.HeaderContentDisposition); !strings.Contains(cd, "attachment") {
		t.Fatalf("content disposition = %q", cd)
	}
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "hi") {
		t.Fatalf("body = %q", body)
	}
}
