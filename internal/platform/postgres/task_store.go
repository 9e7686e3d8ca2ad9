package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/contentforge/contentforge-api/internal/domain"
	"github.com/contentforge/contentforge-api/internal/platform/logger"
	"github.com/contentforge/contentforge-api/internal/store"
	"github.com/google/uuid"
)

// TaskStore implements the store.TaskStore interface
// using a PostgreSQL database as the storage backend.
type TaskStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewTaskStore creates a new PostgreSQL implementation of the TaskStore interface.
// It accepts a database connection or transaction that should be initialized and
// managed by the caller. If logger is nil, a default logger will be used.
func NewTaskStore(db store.DBTX, log *slog.Logger) *TaskStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &TaskStore{
		db:     db,
		logger: log.With(slog.String("component", "task_store")),
	}
}

// Ensure TaskStore implements store.TaskStore interface
var _ store.TaskStore = (*TaskStore)(nil)

// Create implements store.TaskStore.Create
// It saves a new generation task to the database, handling domain validation.
func (s *TaskStore) Create(ctx context.Context, task *domain.GenerationTask) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during create",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	articles, err := marshalArticles(task.Articles)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO generation_tasks
			(id, company_info, product_info, article_count, status, progress, created_at, completed_at, articles)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		task.ID,
		task.CompanyInfo,
		task.ProductInfo,
		task.ArticleCount,
		task.Status,
		task.Progress,
		task.CreatedAt,
		task.CompletedAt,
		articles,
	)

	if err != nil {
		log.Error("failed to create task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.Int("article_count", task.ArticleCount))
	return nil
}

// GetByID implements store.TaskStore.GetByID
// Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.GenerationTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, company_info, product_info, article_count, status, progress, created_at, completed_at, articles
		FROM generation_tasks
		WHERE id = $1
	`
	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if IsNotFoundError(err) {
			return nil, store.ErrTaskNotFound
		}
		log.Error("failed to get task",
			slog.String("error", err.Error()),
			slog.String("task_id", id.String()))
		return nil, MapError(err)
	}

	return task, nil
}

// Update implements store.TaskStore.Update
// The full record is written, so article attachment replaces the whole
// sequence atomically. Returns store.ErrTaskNotFound if the task does not exist.
func (s *TaskStore) Update(ctx context.Context, task *domain.GenerationTask) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := task.Validate(); err != nil {
		log.Warn("task validation failed during update",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	articles, err := marshalArticles(task.Articles)
	if err != nil {
		return err
	}

	query := `
		UPDATE generation_tasks
		SET status = $1, progress = $2, completed_at = $3, articles = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		task.Status,
		task.Progress,
		task.CompletedAt,
		articles,
		task.ID,
	)

	if err != nil {
		log.Error("failed to update task",
			slog.String("error", err.Error()),
			slog.String("task_id", task.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "generation task"); err != nil {
		return store.ErrTaskNotFound
	}

	log.Debug("task updated",
		slog.String("task_id", task.ID.String()),
		slog.String("status", string(task.Status)),
		slog.Int("progress", task.Progress))
	return nil
}

// List implements store.TaskStore.List
// Tasks are returned in creation order.
func (s *TaskStore) List(ctx context.Context) ([]*domain.GenerationTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, company_info, product_info, article_count, status, progress, created_at, completed_at, articles
		FROM generation_tasks
		ORDER BY created_at ASC, id ASC
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query tasks", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*domain.GenerationTask
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			log.Error("failed to scan task row", slog.String("error", err.Error()))
			return nil, MapError(err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		log.Error("error iterating task rows", slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return tasks, nil
}

// WithTx implements store.TaskStore.WithTx
// It returns a new TaskStore that uses the provided transaction.
func (s *TaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return &TaskStore{
		db:     tx,
		logger: s.logger,
	}
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanTask reads one generation task row into a domain object.
func scanTask(row rowScanner) (*domain.GenerationTask, error) {
	var (
		task        domain.GenerationTask
		completedAt sql.NullTime
		articles    []byte
	)

	err := row.Scan(
		&task.ID,
		&task.CompanyInfo,
		&task.ProductInfo,
		&task.ArticleCount,
		&task.Status,
		&task.Progress,
		&task.CreatedAt,
		&completedAt,
		&articles,
	)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		t := completedAt.Time.UTC()
		task.CompletedAt = &t
	}
	task.CreatedAt = task.CreatedAt.UTC()

	if len(articles) > 0 {
		if err := json.Unmarshal(articles, &task.Articles); err != nil {
			return nil, fmt.Errorf("failed to unmarshal articles: %w", err)
		}
	}

	return &task, nil
}

// marshalArticles encodes the article sequence as JSONB, keeping NULL for
// tasks that have no results attached yet.
func marshalArticles(articles []domain.GeneratedArticle) (any, error) {
	if articles == nil {
		return nil, nil
	}
	data, err := json.Marshal(articles)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal articles: %w", err)
	}
	return data, nil
}
