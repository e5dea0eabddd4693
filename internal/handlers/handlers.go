package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/mms8452/baby/internal/catalog"
	"github.com/mms8452/baby/internal/logging"
	"github.com/mms8452/baby/internal/mediatypes"
	"github.com/mms8452/baby/internal/scanner"
	"github.com/mms8452/baby/internal/service"
	"github.com/mms8452/baby/internal/thumbs"
)

// Handlers exposes the catalog operations as a JSON API for the front-end.
type Handlers struct {
	svc *service.Service
}

// New creates the handler set over the operation facade.
func New(svc *service.Service) *Handlers {
	return &Handlers{svc: svc}
}

// ScanFolder handles POST /api/scan.
func (h *Handlers) ScanFolder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path      string `json:"path"`
		BirthDate string `json:"birthDate"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeJSONError(w, "path is required", http.StatusBadRequest)
		return
	}

	records, err := h.svc.ScanFolder(r.Context(), req.Path, req.BirthDate)
	if err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, records)
}

// GetAllFiles handles GET /api/files.
func (h *Handlers) GetAllFiles(w http.ResponseWriter, r *http.Request) {
	records, err := h.svc.GetAllFiles(r.Context())
	if err != nil {
		writeOperationError(w, err)
		return
	}
	if records == nil {
		records = []catalog.FileRecord{}
	}
	writeJSON(w, records)
}

// GetFileInfo handles GET /api/file?path=...
func (h *Handlers) GetFileInfo(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSONError(w, "path is required", http.StatusBadRequest)
		return
	}

	record, err := h.svc.GetFileInfo(r.Context(), path)
	if err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, record)
}

// GenerateThumbnail handles POST /api/thumbnail.
func (h *Handlers) GenerateThumbnail(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeJSONError(w, "path is required", http.StatusBadRequest)
		return
	}

	thumbnailPath, err := h.svc.GenerateThumbnail(r.Context(), req.Path)
	if err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, map[string]string{"thumbnailPath": thumbnailPath})
}

// ServeMedia handles GET /api/media?path=... and streams the original
// file bytes for a cataloged record, with Content-Type taken from the
// record's stored MIME type.
func (h *Handlers) ServeMedia(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSONError(w, "path is required", http.StatusBadRequest)
		return
	}
	if !mediatypes.IsMediaFile(strings.ToLower(filepath.Ext(path))) {
		writeJSONError(w, "not a media file", http.StatusBadRequest)
		return
	}

	record, err := h.svc.GetFileInfo(r.Context(), path)
	if err != nil {
		writeOperationError(w, err)
		return
	}

	if record.MimeType != "" {
		w.Header().Set("Content-Type", record.MimeType)
	}
	http.ServeFile(w, r, record.Path)
}

// GetSettings handles GET /api/settings.
func (h *Handlers) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.svc.GetSettings(r.Context())
	if err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, settings)
}

// SaveSettings handles POST /api/settings. Absent fields leave the stored
// value untouched.
func (h *Handlers) SaveSettings(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BirthDate  *string `json:"babyBirthDate"`
		FolderPath *string `json:"folderPath"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	if err := h.svc.SaveSettings(r.Context(), req.BirthDate, req.FolderPath); err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSONStatus(w, "ok")
}

// GetNote handles GET /api/note?path=...
func (h *Handlers) GetNote(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		writeJSONError(w, "path is required", http.StatusBadRequest)
		return
	}

	// A never-annotated record serializes as {"note": null}, distinct
	// from a saved empty note.
	note, err := h.svc.GetNote(r.Context(), path)
	if err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSON(w, map[string]*string{"note": note})
}

// SaveNote handles POST /api/note.
func (h *Handlers) SaveNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
		Note string `json:"note"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeJSONError(w, "path is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.SaveNote(r.Context(), req.Path, req.Note); err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSONStatus(w, "ok")
}

// UpdateAgeGroup handles POST /api/age-group.
func (h *Handlers) UpdateAgeGroup(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path     string `json:"path"`
		AgeLabel string `json:"ageLabel"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeJSONError(w, "path is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateFileAgeGroup(r.Context(), req.Path, req.AgeLabel); err != nil {
		writeOperationError(w, err)
		return
	}
	writeJSONStatus(w, "ok")
}

// HealthCheck handles GET /health.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSONStatus(w, "ok")
}

// decodeBody decodes the request body into v, writing a 400 on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}

// writeOperationError maps the error taxonomy onto HTTP status codes.
func writeOperationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, scanner.ErrRootNotFound),
		errors.Is(err, thumbs.ErrSourceNotFound),
		errors.Is(err, catalog.ErrRecordNotFound):
		writeJSONError(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, thumbs.ErrDecode):
		writeJSONError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		logging.Error("Operation failed: %v", err)
		writeJSONError(w, "internal error", http.StatusInternalServerError)
	}
}
