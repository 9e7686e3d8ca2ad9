package store

import (
	"context"
	"database/sql"

	"github.com/contentforge/contentforge-api/internal/domain"
	"github.com/google/uuid"
)

// TaskStore defines the interface for generation task persistence.
// The lifecycle service is the only writer; implementations must return
// copies of stored records so callers can never mutate canonical state
// out-of-band.
type TaskStore interface {
	// Create saves a new generation task to the store.
	// It handles domain validation internally.
	// Returns validation errors from the domain GenerationTask if data is invalid.
	Create(ctx context.Context, task *domain.GenerationTask) error

	// GetByID retrieves a generation task by its unique ID.
	// Returns ErrTaskNotFound if the task does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.GenerationTask, error)

	// Update saves changes to an existing generation task.
	// The full record is written; article attachment replaces the whole
	// sequence atomically.
	// Returns ErrTaskNotFound if the task does not exist.
	// Returns validation errors if the task data is invalid.
	Update(ctx context.Context, task *domain.GenerationTask) error

	// List retrieves all generation tasks in creation order.
	// Returns an empty slice if the store is empty. The returned records
	// are a consistent snapshot; no partially-applied mutation is visible.
	List(ctx context.Context) ([]*domain.GenerationTask, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) TaskStore
}
