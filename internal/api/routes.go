package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/contentforge/contentforge-api/internal/api/middleware"
)

// Handlers bundles the HTTP handlers mounted by NewRouter.
type Handlers struct {
	Tasks  *TaskHandler
	Export *ExportHandler
	Prompt *PromptHandler
}

// NewRouter builds the application router with the standard middleware
// chain and all API routes mounted under /api.
func NewRouter(h Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Trace)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", h.Tasks.CreateTask)
			r.Get("/", h.Tasks.ListTasks)
			r.Get("/{id}", h.Tasks.GetTask)
			r.Patch("/{id}/progress", h.Tasks.UpdateProgress)
			r.Put("/{id}/articles", h.Tasks.AttachArticles)
		})

		r.Route("/export", func(r chi.Router) {
			r.Post("/", h.Export.Export)
			r.Post("/batch", h.Export.ExportBatch)
			r.Get("/formats", h.Export.ListFormats)
			r.Post("/preview", h.Export.Preview)
			r.Post("/validate-path", h.Export.ValidatePath)
			r.Get("/default-path", h.Export.DefaultPath)
		})

		r.Get("/prompt-template", h.Prompt.GetPromptTemplate)
	})

	return r
}
