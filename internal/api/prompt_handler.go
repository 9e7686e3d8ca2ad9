package api

import (
	"net/http"

	"github.com/contentforge/contentforge-api/internal/api/shared"
	"github.com/contentforge/contentforge-api/internal/generation"
)

// PromptTemplateResponse carries the generation prompt template verbatim.
type PromptTemplateResponse struct {
	Template string `json:"template"`
}

// PromptHandler serves the generation prompt template to clients.
type PromptHandler struct {
	prompts generation.PromptProvider
}

// NewPromptHandler creates a new PromptHandler
func NewPromptHandler(prompts generation.PromptProvider) *PromptHandler {
	return &PromptHandler{prompts: prompts}
}

// GetPromptTemplate handles GET /api/prompt-template requests
func (h *PromptHandler) GetPromptTemplate(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, PromptTemplateResponse{
		Template: h.prompts.GetPromptTemplate(),
	})
}
