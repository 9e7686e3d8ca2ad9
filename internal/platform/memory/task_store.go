// Package memory provides an in-memory implementation of the store
// interfaces. It backs tests and lets the server run without a database.
package memory

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/contentforge/contentforge-api/internal/domain"
	"github.com/contentforge/contentforge-api/internal/store"
	"github.com/google/uuid"
)

// TaskStore is a mutex-guarded, map-backed store.TaskStore.
// Records are deep-copied on the way in and out, so callers never share
// memory with the canonical state and a concurrent List can never observe
// a torn record.
type TaskStore struct {
	mu    sync.RWMutex
	tasks map[uuid.UUID]*domain.GenerationTask
	order []uuid.UUID
}

// NewTaskStore creates an empty in-memory task store.
func NewTaskStore() *TaskStore {
	return &TaskStore{
		tasks: make(map[uuid.UUID]*domain.GenerationTask),
	}
}

// Create saves a new generation task to the store.
func (s *TaskStore) Create(ctx context.Context, task *domain.GenerationTask) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.tasks[task.ID]; exists {
		return fmt.Errorf("%w: task %s", store.ErrDuplicate, task.ID)
	}

	s.tasks[task.ID] = task.Clone()
	s.order = append(s.order, task.ID)
	return nil
}

// GetByID retrieves a generation task by its unique ID.
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.GenerationTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	task, ok := s.tasks[id]
	if !ok {
		return nil, store.ErrTaskNotFound
	}
	return task.Clone(), nil
}

// Update saves changes to an existing generation task. The stored record is
// replaced wholesale, so article attachment is atomic.
func (s *TaskStore) Update(ctx context.Context, task *domain.GenerationTask) error {
	if err := task.Validate(); err != nil {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[task.ID]; !ok {
		return store.ErrTaskNotFound
	}

	s.tasks[task.ID] = task.Clone()
	return nil
}

// List retrieves all generation tasks in creation order.
func (s *TaskStore) List(ctx context.Context) ([]*domain.GenerationTask, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tasks := make([]*domain.GenerationTask, 0, len(s.order))
	for _, id := range s.order {
		tasks = append(tasks, s.tasks[id].Clone())
	}
	return tasks, nil
}

// WithTx returns the store unchanged. The in-memory store has no
// transactional backing; each operation is already atomic under its mutex.
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return s
}
