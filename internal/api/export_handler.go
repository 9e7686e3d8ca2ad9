package api

import (
	"net/http"

	"github.com/contentforge/contentforge-api/internal/api/shared"
	"github.com/contentforge/contentforge-api/internal/export"
)

// ExportRequest represents the request body for a single export
type ExportRequest struct {
	Content string         `json:"content"`
	Options export.Options `json:"options" validate:"required"`
}

// ExportBatchRequest represents the request body for a batch export
type ExportBatchRequest struct {
	Items   []export.BatchItem `json:"items"   validate:"required"`
	Options export.Options     `json:"options" validate:"required"`
}

// PreviewRequest represents the request body for a preview
type PreviewRequest struct {
	Content string         `json:"content"`
	Options export.Options `json:"options" validate:"required"`
}

// PreviewResponse carries the in-memory rendering of a preview
type PreviewResponse struct {
	Preview string `json:"preview"`
}

// ValidatePathRequest represents the request body for a path check
type ValidatePathRequest struct {
	Path string `json:"path" validate:"required"`
}

// ValidatePathResponse reports whether the path's parent directory exists
type ValidatePathResponse struct {
	Valid bool `json:"valid"`
}

// FormatsResponse lists the declared export format identifiers
type FormatsResponse struct {
	Formats []string `json:"formats"`
}

// DefaultPathResponse carries the ensured export root directory
type DefaultPathResponse struct {
	Path string `json:"path"`
}

// ExportHandler handles export pipeline HTTP requests
type ExportHandler struct {
	pipeline *export.Pipeline
}

// NewExportHandler creates a new ExportHandler
func NewExportHandler(pipeline *export.Pipeline) *ExportHandler {
	return &ExportHandler{pipeline: pipeline}
}

// Export handles POST /api/export requests. The pipeline reports every
// failure inside the Result, so the HTTP status is 200 even for failed
// exports; clients branch on the result's success flag.
func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindInvalidInput, "Invalid request format")
		return
	}
	if req.Options.Format == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindInvalidInput, "Validation error: format is required")
		return
	}

	result := h.pipeline.ExportOne(r.Context(), req.Content, req.Options)
	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// ExportBatch handles POST /api/export/batch requests
func (h *ExportHandler) ExportBatch(w http.ResponseWriter, r *http.Request) {
	var req ExportBatchRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindInvalidInput, "Invalid request format")
		return
	}
	if req.Options.Format == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindInvalidInput, "Validation error: format is required")
		return
	}

	results := h.pipeline.ExportBatch(r.Context(), req.Items, req.Options)
	shared.RespondWithJSON(w, r, http.StatusOK, results)
}

// Preview handles POST /api/export/preview requests
func (h *ExportHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindInvalidInput, "Invalid request format")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, PreviewResponse{
		Preview: h.pipeline.Preview(req.Content, req.Options),
	})
}

// ListFormats handles GET /api/export/formats requests
func (h *ExportHandler) ListFormats(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, FormatsResponse{
		Formats: h.pipeline.Registry().SupportedFormats(),
	})
}

// ValidatePath handles POST /api/export/validate-path requests
func (h *ExportHandler) ValidatePath(w http.ResponseWriter, r *http.Request) {
	var req ValidatePathRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindInvalidInput, "Invalid request format")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ValidatePathResponse{
		Valid: h.pipeline.ValidatePath(req.Path),
	})
}

// DefaultPath handles GET /api/export/default-path requests
func (h *ExportHandler) DefaultPath(w http.ResponseWriter, r *http.Request) {
	path, err := h.pipeline.DefaultExportPath()
	if err != nil {
		respondWithMappedError(w, r, err, "Failed to ensure export root")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, DefaultPathResponse{Path: path})
}
