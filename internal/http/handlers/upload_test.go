package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/designeval/design-evaluator-api/internal/models"
)

func newTestUploadHandler(model *stubModel) *UploadHandler {
	svc := newStubService(model, &stubCapturer{})
	return NewUploadHandler(svc, 10*1024*1024, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// multipartBody builds a multipart form with the given field/content-type
// pairs, each carrying small fake image bytes.
func multipartBody(t *testing.T, parts map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for field, contentType := range parts {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="design.png"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		if err != nil {
			t.Fatalf("create part: %v", err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("write part: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

// ========================================
// AnalyzeDesign Tests
// ========================================

func TestAnalyzeDesign_Success(t *testing.T) {
	h := newTestUploadHandler(&stubModel{reply: `{"overall_score": 90, "summary": "Excellent"}`})

	body, contentType := multipartBody(t, map[string]string{"file": "image/png"})
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.AnalyzeDesign(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}
	var record models.AnalysisRecord
	if err := json.Unmarshal(rec.Body.Bytes(), &record); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if record.OverallScore != 90 {
		t.Errorf("OverallScore = %v, want 90", record.OverallScore)
	}
}

func TestAnalyzeDesign_RejectsNonImage(t *testing.T) {
	h := newTestUploadHandler(&stubModel{reply: `{"overall_score": 90}`})

	body, contentType := multipartBody(t, map[string]string{"file": "application/pdf"})
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.AnalyzeDesign(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var errBody map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errBody["detail"] != "Invalid image file" {
		t.Errorf("detail = %q, want %q", errBody["detail"], "Invalid image file")
	}
}

func TestAnalyzeDesign_MissingFile(t *testing.T) {
	h := newTestUploadHandler(&stubModel{reply: `{"overall_score": 90}`})

	body, contentType := multipartBody(t, map[string]string{"wrong_field": "image/png"})
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.AnalyzeDesign(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeDesign_RejectsOversizedFile(t *testing.T) {
	svc := newStubService(&stubModel{reply: `{"overall_score": 90}`}, &stubCapturer{})
	// Tiny cap so the fake image bytes exceed it.
	h := NewUploadHandler(svc, 4, slog.New(slog.NewTextHandler(io.Discard, nil)))

	body, contentType := multipartBody(t, map[string]string{"file": "image/png"})
	req := httptest.NewRequest(http.MethodPost, "/analyze", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.AnalyzeDesign(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// ========================================
// CompareDesigns Tests
// ========================================

func TestCompareDesigns_Success(t *testing.T) {
	h := newTestUploadHandler(&stubModel{reply: `{"overall_score": 68, "summary": "Fine"}`})

	body, contentType := multipartBody(t, map[string]string{
		"design_a": "image/png",
		"design_b": "image/jpeg",
	})
	req := httptest.NewRequest(http.MethodPost, "/compare", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.CompareDesigns(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}
	var result models.ComparisonResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if result.Winner != models.WinnerTie {
		t.Errorf("Winner = %q, want tie for identical stub scores", result.Winner)
	}
}

func TestCompareDesigns_OneInvalidFile(t *testing.T) {
	h := newTestUploadHandler(&stubModel{reply: `{"overall_score": 68}`})

	body, contentType := multipartBody(t, map[string]string{
		"design_a": "image/png",
		"design_b": "text/html",
	})
	req := httptest.NewRequest(http.MethodPost, "/compare", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.CompareDesigns(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var errBody map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &errBody); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if errBody["detail"] != "Invalid image file(s)" {
		t.Errorf("detail = %q, want %q", errBody["detail"], "Invalid image file(s)")
	}
}

func TestCompareDesigns_MissingSecondFile(t *testing.T) {
	h := newTestUploadHandler(&stubModel{reply: `{"overall_score": 68}`})

	body, contentType := multipartBody(t, map[string]string{"design_a": "image/png"})
	req := httptest.NewRequest(http.MethodPost, "/compare", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	h.CompareDesigns(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
