package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/contentforge/contentforge-api/internal/domain"
	"github.com/contentforge/contentforge-api/internal/platform/logger"
	"github.com/contentforge/contentforge-api/internal/store"
	"github.com/google/uuid"
)

// TaskService provides lifecycle operations for generation tasks.
// It is the only writer to the task store; all mutations enforce the task
// state machine and persist durably before returning.
type TaskService interface {
	// CreateTask validates the inputs and inserts a new pending task.
	// Returns a domain validation error if articleCount is not positive.
	CreateTask(
		ctx context.Context,
		companyInfo, productInfo string,
		articleCount int,
	) (*domain.GenerationTask, error)

	// GetTask retrieves one task by ID.
	// Returns store.ErrTaskNotFound if the task does not exist.
	GetTask(ctx context.Context, id uuid.UUID) (*domain.GenerationTask, error)

	// ListTasks returns a snapshot of all tasks in creation order.
	ListTasks(ctx context.Context) ([]*domain.GenerationTask, error)

	// UpdateTaskProgress applies a status/progress update to a task.
	// Returns store.ErrTaskNotFound for unknown IDs,
	// domain.ErrInvalidTransition for state machine violations, and
	// domain validation errors for out-of-range progress or a progress
	// regression while processing.
	UpdateTaskProgress(ctx context.Context, id uuid.UUID, status domain.TaskStatus, progress int) error

	// AttachArticles atomically replaces the task's article sequence and
	// completes it. The task must currently be processing; attaching to a
	// task in any other state returns domain.ErrInvalidTransition.
	AttachArticles(ctx context.Context, id uuid.UUID, articles []domain.GeneratedArticle) error
}

// generationTaskService implements TaskService on top of a store.TaskStore.
type generationTaskService struct {
	tasks  store.TaskStore
	locks  *keyedMutex
	logger *slog.Logger
}

// NewTaskService creates a TaskService backed by the given store.
// If log is nil, a default logger will be used.
func NewTaskService(tasks store.TaskStore, log *slog.Logger) TaskService {
	if tasks == nil {
		panic("task store cannot be nil")
	}

	if log == nil {
		log = slog.Default()
	}

	return &generationTaskService{
		tasks:  tasks,
		locks:  newKeyedMutex(),
		logger: log.With(slog.String("component", "task_service")),
	}
}

// CreateTask implements TaskService.CreateTask.
func (s *generationTaskService) CreateTask(
	ctx context.Context,
	companyInfo, productInfo string,
	articleCount int,
) (*domain.GenerationTask, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	task, err := domain.NewGenerationTask(companyInfo, productInfo, articleCount)
	if err != nil {
		log.Warn("task creation rejected",
			slog.Int("article_count", articleCount),
			slog.String("error", err.Error()))
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		log.Error("failed to persist new task",
			slog.String("task_id", task.ID.String()),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	log.Info("task created",
		slog.String("task_id", task.ID.String()),
		slog.Int("article_count", task.ArticleCount))
	return task, nil
}

// GetTask implements TaskService.GetTask.
func (s *generationTaskService) GetTask(
	ctx context.Context,
	id uuid.UUID,
) (*domain.GenerationTask, error) {
	return s.tasks.GetByID(ctx, id)
}

// ListTasks implements TaskService.ListTasks.
func (s *generationTaskService) ListTasks(ctx context.Context) ([]*domain.GenerationTask, error) {
	return s.tasks.List(ctx)
}

// UpdateTaskProgress implements TaskService.UpdateTaskProgress.
//
// Progress policy: while a task is processing, progress is monotonically
// non-decreasing; an update carrying a lower value than the stored one is
// rejected rather than silently clamped. Transitioning to completed forces
// progress to 100; transitioning to failed freezes it at the last reported
// value.
func (s *generationTaskService) UpdateTaskProgress(
	ctx context.Context,
	id uuid.UUID,
	status domain.TaskStatus,
	progress int,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := domain.ParseTaskStatus(string(status)); err != nil {
		return err
	}
	if progress < 0 || progress > 100 {
		return fmt.Errorf("%w: got %d", domain.ErrInvalidProgress, progress)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if status == domain.TaskStatusProcessing &&
		task.Status == domain.TaskStatusProcessing &&
		progress < task.Progress {
		return fmt.Errorf("%w: progress cannot decrease from %d to %d",
			domain.ErrInvalidProgress, task.Progress, progress)
	}

	previousProgress := task.Progress
	if err := task.TransitionTo(status); err != nil {
		log.Warn("rejected task transition",
			slog.String("task_id", id.String()),
			slog.String("requested_status", string(status)),
			slog.String("error", err.Error()))
		return err
	}

	switch status {
	case domain.TaskStatusCompleted:
		task.Progress = 100
	case domain.TaskStatusFailed:
		task.Progress = previousProgress
	default:
		task.Progress = progress
	}

	if err := s.tasks.Update(ctx, task); err != nil {
		log.Error("failed to persist progress update",
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to update task progress: %w", err)
	}

	log.Debug("task progress updated",
		slog.String("task_id", id.String()),
		slog.String("status", string(task.Status)),
		slog.Int("progress", task.Progress))
	return nil
}

// AttachArticles implements TaskService.AttachArticles.
func (s *generationTaskService) AttachArticles(
	ctx context.Context,
	id uuid.UUID,
	articles []domain.GeneratedArticle,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	unlock := s.locks.Lock(id)
	defer unlock()

	task, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}

	// Results can only land on a task that is actively running. This also
	// guarantees a failed task never carries articles.
	if task.Status != domain.TaskStatusProcessing {
		return fmt.Errorf("%w: cannot attach articles to %s task",
			domain.ErrInvalidTransition, task.Status)
	}

	if err := task.TransitionTo(domain.TaskStatusCompleted); err != nil {
		return err
	}
	task.Progress = 100
	task.Articles = make([]domain.GeneratedArticle, len(articles))
	copy(task.Articles, articles)

	if err := s.tasks.Update(ctx, task); err != nil {
		log.Error("failed to persist attached articles",
			slog.String("task_id", id.String()),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to attach articles: %w", err)
	}

	log.Info("articles attached",
		slog.String("task_id", id.String()),
		slog.Int("count", len(articles)))
	return nil
}
