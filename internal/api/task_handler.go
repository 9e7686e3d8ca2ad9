package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/contentforge/contentforge-api/internal/api/shared"
	"github.com/contentforge/contentforge-api/internal/domain"
	"github.com/contentforge/contentforge-api/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// CreateTaskRequest represents the request body for creating a generation task
type CreateTaskRequest struct {
	CompanyInfo  string `json:"company_info"`
	ProductInfo  string `json:"product_info"`
	ArticleCount int    `json:"article_count"`
}

// UpdateProgressRequest represents the request body for a progress update
type UpdateProgressRequest struct {
	Status   string `json:"status"   validate:"required"`
	Progress int    `json:"progress"`
}

// ArticlePayload carries one generated article in requests and responses
type ArticlePayload struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	WordCount int    `json:"word_count"`
}

// AttachArticlesRequest represents the request body for attaching results
type AttachArticlesRequest struct {
	Articles []ArticlePayload `json:"articles" validate:"required"`
}

// TaskResponse represents the response data for a generation task
type TaskResponse struct {
	ID           string           `json:"id"`
	CompanyInfo  string           `json:"company_info"`
	ProductInfo  string           `json:"product_info"`
	ArticleCount int              `json:"article_count"`
	Status       string           `json:"status"`
	Progress     int              `json:"progress"`
	CreatedAt    time.Time        `json:"created_at"`
	CompletedAt  *time.Time       `json:"completed_at,omitempty"`
	Articles     []ArticlePayload `json:"articles,omitempty"`
}

// TaskHandler handles task lifecycle HTTP requests
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// CreateTask handles POST /api/tasks requests
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindInvalidInput, "Invalid request format")
		return
	}

	task, err := h.taskService.CreateTask(r.Context(), req.CompanyInfo, req.ProductInfo, req.ArticleCount)
	if err != nil {
		respondWithMappedError(w, r, err, "Failed to create task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// ListTasks handles GET /api/tasks requests
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.ListTasks(r.Context())
	if err != nil {
		respondWithMappedError(w, r, err, "Failed to list tasks")
		return
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, taskToResponse(task))
	}
	shared.RespondWithJSON(w, r, http.StatusOK, responses)
}

// GetTask handles GET /api/tasks/{id} requests
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err, "Failed to get task")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateProgress handles PATCH /api/tasks/{id}/progress requests
func (h *TaskHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}

	var req UpdateProgressRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindInvalidInput, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindInvalidInput, "Validation error: status is required")
		return
	}

	status, err := domain.ParseTaskStatus(req.Status)
	if err != nil {
		respondWithMappedError(w, r, err, "Invalid status")
		return
	}

	if err := h.taskService.UpdateTaskProgress(r.Context(), id, status, req.Progress); err != nil {
		respondWithMappedError(w, r, err, "Failed to update task progress")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// AttachArticles handles PUT /api/tasks/{id}/articles requests
func (h *TaskHandler) AttachArticles(w http.ResponseWriter, r *http.Request) {
	id, ok := taskIDFromRequest(w, r)
	if !ok {
		return
	}

	var req AttachArticlesRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindInvalidInput, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindInvalidInput, "Validation error: articles are required")
		return
	}

	articles := make([]domain.GeneratedArticle, 0, len(req.Articles))
	for _, article := range req.Articles {
		articles = append(articles, domain.GeneratedArticle{
			Title:     article.Title,
			Content:   article.Content,
			WordCount: article.WordCount,
		})
	}

	if err := h.taskService.AttachArticles(r.Context(), id, articles); err != nil {
		respondWithMappedError(w, r, err, "Failed to attach articles")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// taskIDFromRequest parses the {id} URL parameter, writing a 400 response
// and returning false when it is not a valid UUID.
func taskIDFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, KindInvalidInput,
			fmt.Sprintf("Invalid task ID: %s", raw))
		return uuid.Nil, false
	}
	return id, true
}

// respondWithMappedError translates a service error into the matching HTTP
// status, kind, and safe message, logging the original error.
func respondWithMappedError(w http.ResponseWriter, r *http.Request, err error, logMessage string) {
	status := MapErrorToStatusCode(err)
	if status >= http.StatusInternalServerError {
		slog.Error(logMessage, "error", err, "path", r.URL.Path)
	}
	shared.RespondWithError(w, r, status, MapErrorToKind(err), GetSafeErrorMessage(err))
}

// taskToResponse converts a domain.GenerationTask to a TaskResponse
func taskToResponse(task *domain.GenerationTask) TaskResponse {
	response := TaskResponse{
		ID:           task.ID.String(),
		CompanyInfo:  task.CompanyInfo,
		ProductInfo:  task.ProductInfo,
		ArticleCount: task.ArticleCount,
		Status:       string(task.Status),
		Progress:     task.Progress,
		CreatedAt:    task.CreatedAt,
		CompletedAt:  task.CompletedAt,
	}

	if task.Articles != nil {
		response.Articles = make([]ArticlePayload, 0, len(task.Articles))
		for _, article := range task.Articles {
			response.Articles = append(response.Articles, ArticlePayload{
				Title:     article.Title,
				Content:   article.Content,
				WordCount: article.WordCount,
			})
		}
	}

	return response
}
