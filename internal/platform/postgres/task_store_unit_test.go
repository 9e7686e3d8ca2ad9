package postgres

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/contentforge/contentforge-api/internal/domain"
	"github.com/contentforge/contentforge-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const taskColumns = "id, company_info, product_info, article_count, status, progress, created_at, completed_at, articles"

func newTestTask(t *testing.T) *domain.GenerationTask {
	t.Helper()
	task, err := domain.NewGenerationTask("Acme Corp", "Rocket skates", 2)
	require.NoError(t, err)
	return task
}

func TestTaskStore_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	task := newTestTask(t)

	mock.ExpectExec("INSERT INTO generation_tasks").
		WithArgs(
			task.ID,
			task.CompanyInfo,
			task.ProductInfo,
			task.ArticleCount,
			task.Status,
			task.Progress,
			task.CreatedAt,
			nil,
			nil,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewTaskStore(db, nil)
	require.NoError(t, s.Create(context.Background(), task))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStore_Create_InvalidTask(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	task := newTestTask(t)
	task.Progress = 200

	s := NewTaskStore(db, nil)
	err = s.Create(context.Background(), task)
	assert.ErrorIs(t, err, store.ErrInvalidEntity)
	// Validation failures never reach the database
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStore_GetByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	id := uuid.New()
	createdAt := time.Now().UTC().Truncate(time.Microsecond)
	completedAt := createdAt.Add(time.Minute)
	articles := []domain.GeneratedArticle{
		{Title: "First", Content: "hello world", WordCount: 2},
	}
	articlesJSON, err := json.Marshal(articles)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{
		"id", "company_info", "product_info", "article_count",
		"status", "progress", "created_at", "completed_at", "articles",
	}).AddRow(
		id.String(), "Acme Corp", "Rocket skates", 1,
		"completed", 100, createdAt, completedAt, articlesJSON,
	)

	mock.ExpectQuery("SELECT " + taskColumns).
		WithArgs(id).
		WillReturnRows(rows)

	s := NewTaskStore(db, nil)
	task, err := s.GetByID(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, task.ID)
	assert.Equal(t, domain.TaskStatusCompleted, task.Status)
	assert.Equal(t, 100, task.Progress)
	require.NotNil(t, task.CompletedAt)
	assert.Equal(t, completedAt, *task.CompletedAt)
	assert.Equal(t, articles, task.Articles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStore_GetByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	id := uuid.New()
	mock.ExpectQuery("SELECT " + taskColumns).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	s := NewTaskStore(db, nil)
	task, err := s.GetByID(context.Background(), id)
	assert.Nil(t, task)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStore_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	task := newTestTask(t)
	require.NoError(t, task.TransitionTo(domain.TaskStatusProcessing))
	task.Progress = 50

	mock.ExpectExec("UPDATE generation_tasks").
		WithArgs(task.Status, task.Progress, nil, nil, task.ID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	s := NewTaskStore(db, nil)
	require.NoError(t, s.Update(context.Background(), task))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStore_Update_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	task := newTestTask(t)

	mock.ExpectExec("UPDATE generation_tasks").
		WillReturnResult(sqlmock.NewResult(0, 0))

	s := NewTaskStore(db, nil)
	err = s.Update(context.Background(), task)
	assert.ErrorIs(t, err, store.ErrTaskNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStore_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	first := uuid.New()
	second := uuid.New()
	createdAt := time.Now().UTC().Truncate(time.Microsecond)

	rows := sqlmock.NewRows([]string{
		"id", "company_info", "product_info", "article_count",
		"status", "progress", "created_at", "completed_at", "articles",
	}).
		AddRow(first.String(), "a", "b", 1, "pending", 0, createdAt, nil, nil).
		AddRow(second.String(), "c", "d", 2, "processing", 30, createdAt.Add(time.Second), nil, nil)

	mock.ExpectQuery("SELECT "+taskColumns).WillReturnRows(rows)

	s := NewTaskStore(db, nil)
	tasks, err := s.List(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, first, tasks[0].ID)
	assert.Equal(t, second, tasks[1].ID)
	assert.Equal(t, domain.TaskStatusProcessing, tasks[1].Status)
	assert.Nil(t, tasks[0].Articles)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskStore_WithTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	tx, err := db.Begin()
	require.NoError(t, err)

	s := NewTaskStore(db, nil)
	txStore := s.WithTx(tx)
	require.NotNil(t, txStore)
	assert.NotSame(t, store.TaskStore(s), txStore)
}
