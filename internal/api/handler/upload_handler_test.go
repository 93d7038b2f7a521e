package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evida/coach-api/internal/domain"
	"github.com/evida/coach-api/internal/service"
)

func postUpload(t *testing.T, h *UploadHandler, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(body))
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	h.Upload(rec, req)
	return rec
}

func TestUploadJSONBody(t *testing.T) {
	h := NewUploadHandler(service.NewSummaryService())
	rec := postUpload(t, h, "application/json", `{
		"data": [
			{"date": "2025-06-01", "steps": 8000, "sleep": 7.0, "hrv": 55},
			{"date": "2025-06-02", "steps": 9000, "sleep": 7.4, "hrv": 60}
		]
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp domain.UploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("records = %d, want 2", len(resp.Data))
	}
	// Aliased fields arrive under the canonical names.
	if _, ok := resp.Data[0]["sleep_hours"]; !ok {
		t.Error("sleep alias not normalized to sleep_hours")
	}
	if _, ok := resp.Data[0]["hrv_rmssd"]; !ok {
		t.Error("hrv alias not normalized to hrv_rmssd")
	}
	if resp.Summary.AverageSleepHours == nil || *resp.Summary.AverageSleepHours != 7.2 {
		t.Errorf("summary sleep = %v, want 7.2", resp.Summary.AverageSleepHours)
	}

	// The upload is kept for follow-up requests.
	if len(h.LastUpload()) != 2 {
		t.Error("last upload not retained")
	}
}

func TestUploadBareArray(t *testing.T) {
	h := NewUploadHandler(service.NewSummaryService())
	rec := postUpload(t, h, "application/json", `[{"date": "2025-06-01", "steps": 8000}]`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestUploadEmpty(t *testing.T) {
	h := NewUploadHandler(service.NewSummaryService())
	rec := postUpload(t, h, "application/json", `{"data": []}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUploadMalformed(t *testing.T) {
	h := NewUploadHandler(service.NewSummaryService())
	rec := postUpload(t, h, "application/json", `{"rows": 3}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func multipartUpload(t *testing.T, filename, contents string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := part.Write([]byte(contents)); err != nil {
		t.Fatal(err)
	}
	if err := writer.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, writer.FormDataContentType()
}

func TestUploadCSVFile(t *testing.T) {
	body, contentType := multipartUpload(t, "export.csv",
		"date,steps,sleep\n2025-06-01,8000,7.0\n2025-06-02,9000,7.4\n")

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	NewUploadHandler(service.NewSummaryService()).Upload(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp domain.UploadResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 2 {
		t.Fatalf("records = %d, want 2", len(resp.Data))
	}
	steps, ok := resp.Data[0].Numeric("steps")
	if !ok || steps != 8000 {
		t.Errorf("steps = %v, want numeric 8000", resp.Data[0]["steps"])
	}
	if _, ok := resp.Data[0]["sleep_hours"]; !ok {
		t.Error("CSV sleep column not normalized")
	}
	if date := resp.Data[0].Date(); date != "2025-06-01" {
		t.Errorf("date = %q, want string passthrough", date)
	}
}

func TestUploadUnsupportedExtension(t *testing.T) {
	body, contentType := multipartUpload(t, "export.xlsx", "binary junk")

	req := httptest.NewRequest(http.MethodPost, "/upload", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	NewUploadHandler(service.NewSummaryService()).Upload(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}
