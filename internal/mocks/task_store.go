package mocks

import (
	"context"
	"database/sql"
	"sync"

	"github.com/google/uuid"

	"github.com/contentforge/contentforge-api/internal/domain"
	"github.com/contentforge/contentforge-api/internal/store"
)

// TaskStore implements store.TaskStore for testing. Each method delegates
// to its function field when set, otherwise it returns the default Err.
type TaskStore struct {
	CreateFn  func(ctx context.Context, task *domain.GenerationTask) error
	GetByIDFn func(ctx context.Context, id uuid.UUID) (*domain.GenerationTask, error)
	UpdateFn  func(ctx context.Context, task *domain.GenerationTask) error
	ListFn    func(ctx context.Context) ([]*domain.GenerationTask, error)

	// Err is returned by any method without a function field.
	Err error

	// Call tracking for verification.
	mu          sync.Mutex
	CreateCalls int
	UpdateCalls int
}

var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.
func (m *TaskStore) Create(ctx context.Context, task *domain.GenerationTask) error {
	m.mu.Lock()
	m.CreateCalls++
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	return m.Err
}

// GetByID implements store.TaskStore.
func (m *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.GenerationTask, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, m.Err
}

// Update implements store.TaskStore.
func (m *TaskStore) Update(ctx context.Context, task *domain.GenerationTask) error {
	m.mu.Lock()
	m.UpdateCalls++
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	return m.Err
}

// List implements store.TaskStore.
func (m *TaskStore) List(ctx context.Context) ([]*domain.GenerationTask, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return nil, m.Err
}

// WithTx implements store.TaskStore; the mock ignores transactions.
func (m *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
