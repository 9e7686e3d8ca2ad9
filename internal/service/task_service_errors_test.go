package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contentforge/contentforge-api/internal/domain"
	"github.com/contentforge/contentforge-api/internal/mocks"
)

func TestCreateTask_StoreFailurePropagates(t *testing.T) {
	storeErr := errors.New("connection reset")
	svc := NewTaskService(&mocks.TaskStore{Err: storeErr}, nil)

	task, err := svc.CreateTask(context.Background(), "company", "product", 2)
	assert.Nil(t, task)
	assert.ErrorIs(t, err, storeErr)
}

func TestUpdateTaskProgress_UpdateFailurePropagates(t *testing.T) {
	existing, err := domain.NewGenerationTask("company", "product", 2)
	require.NoError(t, err)
	existing.Status = domain.TaskStatusProcessing
	existing.Progress = 10

	storeErr := errors.New("connection reset")
	mockStore := &mocks.TaskStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.GenerationTask, error) {
			return existing.Clone(), nil
		},
		Err: storeErr,
	}
	svc := NewTaskService(mockStore, nil)

	err = svc.UpdateTaskProgress(context.Background(), existing.ID, domain.TaskStatusProcessing, 50)
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 1, mockStore.UpdateCalls)
}

func TestAttachArticles_UpdateFailurePropagates(t *testing.T) {
	existing, err := domain.NewGenerationTask("company", "product", 1)
	require.NoError(t, err)
	existing.Status = domain.TaskStatusProcessing
	existing.Progress = 90

	storeErr := errors.New("connection reset")
	mockStore := &mocks.TaskStore{
		GetByIDFn: func(ctx context.Context, id uuid.UUID) (*domain.GenerationTask, error) {
			return existing.Clone(), nil
		},
		Err: storeErr,
	}
	svc := NewTaskService(mockStore, nil)

	err = svc.AttachArticles(context.Background(), existing.ID, []domain.GeneratedArticle{
		domain.NewGeneratedArticle("First", "content"),
	})
	assert.ErrorIs(t, err, storeErr)
	assert.Equal(t, 1, mockStore.UpdateCalls)
}
