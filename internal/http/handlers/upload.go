package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/designeval/design-evaluator-api/internal/service"
)

// multipartMemory is the in-memory threshold for multipart parsing; larger
// parts spill to temp files.
const multipartMemory = 8 << 20

// UploadHandler handles the multipart upload endpoints. These bypass the
// typed API layer because it models JSON bodies, not multipart forms.
type UploadHandler struct {
	svc            *service.EvaluatorService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(svc *service.EvaluatorService, maxUploadBytes int64, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		svc:            svc,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// AnalyzeDesign handles POST /analyze: one image under form field "file".
func (h *UploadHandler) AnalyzeDesign(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid image file")
		return
	}
	defer cleanupForm(r)

	image, err := h.readImageFile(r, "file")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid image file")
		return
	}

	record, err := h.svc.AnalyzeImage(r.Context(), image)
	if err != nil {
		h.logger.Error("upload analysis failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// CompareDesigns handles POST /compare: two images under form fields
// "design_a" and "design_b".
func (h *UploadHandler) CompareDesigns(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 2*h.maxUploadBytes+multipartMemory)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid image file(s)")
		return
	}
	defer cleanupForm(r)

	imageA, errA := h.readImageFile(r, "design_a")
	imageB, errB := h.readImageFile(r, "design_b")
	if errA != nil || errB != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid image file(s)")
		return
	}

	result, err := h.svc.CompareImages(r.Context(), imageA, imageB)
	if err != nil {
		h.logger.Error("upload comparison failed", "error", err)
		writeDetail(w, http.StatusInternalServerError, "Comparison failed: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// readImageFile extracts and validates one uploaded image. The declared
// Content-Type must be an image/* type and the part must fit the size cap.
func (h *UploadHandler) readImageFile(r *http.Request, field string) ([]byte, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, errors.New("unsupported content type: " + contentType)
	}
	if header.Size > h.maxUploadBytes {
		return nil, errors.New("file exceeds upload size limit")
	}

	return io.ReadAll(io.LimitReader(file, h.maxUploadBytes))
}

// cleanupForm removes any temp files the multipart parser spilled to disk.
func cleanupForm(r *http.Request) {
	if r.MultipartForm != nil {
		_ = r.MultipartForm.RemoveAll()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDetail writes an error body in the {"detail": ...} shape the JSON
// endpoints' error responses also use.
func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
