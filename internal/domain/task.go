package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus represents the lifecycle state of a generation task
type TaskStatus string

// Possible task status values
const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// Common validation errors for GenerationTask
var (
	ErrEmptyTaskID         = errors.New("task ID cannot be empty")
	ErrInvalidArticleCount = fmt.Errorf("%w: article count must be positive", ErrValidation)
	ErrInvalidProgress     = fmt.Errorf("%w: progress must be between 0 and 100", ErrValidation)
	ErrInvalidTaskStatus   = fmt.Errorf("%w: invalid task status", ErrValidation)
)

// ErrInvalidTransition is returned when a status change violates the task
// state machine. Wrapping errors carry the current and requested status.
var ErrInvalidTransition = errors.New("invalid task status transition")

// ParseTaskStatus converts a raw status string into a TaskStatus.
// Returns ErrInvalidTaskStatus for anything outside the closed set,
// so invalid status strings never reach storage.
func ParseTaskStatus(s string) (TaskStatus, error) {
	status := TaskStatus(s)
	if !isValidTaskStatus(status) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTaskStatus, s)
	}
	return status, nil
}

// IsTerminal reports whether the status permits no further transitions.
func (s TaskStatus) IsTerminal() bool {
	return s == TaskStatusCompleted || s == TaskStatusFailed
}

// CanTransitionTo reports whether the state machine allows moving from s to
// the requested status. All transition rules live here; callers never
// compare status strings themselves.
func (s TaskStatus) CanTransitionTo(to TaskStatus) bool {
	switch s {
	case TaskStatusPending:
		return to == TaskStatusProcessing || to == TaskStatusFailed
	case TaskStatusProcessing:
		return to == TaskStatusProcessing || to == TaskStatusCompleted || to == TaskStatusFailed
	default:
		return false
	}
}

// isValidTaskStatus checks if the given status is a valid TaskStatus.
func isValidTaskStatus(status TaskStatus) bool {
	switch status {
	case TaskStatusPending, TaskStatusProcessing, TaskStatusCompleted, TaskStatusFailed:
		return true
	default:
		return false
	}
}

// GeneratedArticle is one produced document attached to a completed task.
type GeneratedArticle struct {
	Title     string `json:"title"`
	Content   string `json:"content"`
	WordCount int    `json:"word_count"`
}

// NewGeneratedArticle creates a GeneratedArticle with the word count derived
// from the whitespace-delimited tokens of the content.
func NewGeneratedArticle(title, content string) GeneratedArticle {
	return GeneratedArticle{
		Title:     title,
		Content:   content,
		WordCount: len(strings.Fields(content)),
	}
}

// GenerationTask represents one request to produce a batch of articles.
// It tracks the immutable inputs alongside the lifecycle state, progress
// percentage, and eventual results.
type GenerationTask struct {
	ID           uuid.UUID          `json:"id"`
	CompanyInfo  string             `json:"company_info"`
	ProductInfo  string             `json:"product_info"`
	ArticleCount int                `json:"article_count"`
	Status       TaskStatus         `json:"status"`
	Progress     int                `json:"progress"`
	CreatedAt    time.Time          `json:"created_at"`
	CompletedAt  *time.Time         `json:"completed_at,omitempty"`
	Articles     []GeneratedArticle `json:"articles,omitempty"`
}

// NewGenerationTask creates a new GenerationTask with the given inputs.
// It generates a new UUID for the task ID, sets the status to pending with
// zero progress, and sets the creation timestamp.
// Returns an error if validation fails.
func NewGenerationTask(companyInfo, productInfo string, articleCount int) (*GenerationTask, error) {
	task := &GenerationTask{
		ID:           uuid.New(),
		CompanyInfo:  companyInfo,
		ProductInfo:  productInfo,
		ArticleCount: articleCount,
		Status:       TaskStatusPending,
		Progress:     0,
		CreatedAt:    time.Now().UTC(),
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the GenerationTask has valid data.
// Returns an error if any field fails validation.
func (t *GenerationTask) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.ArticleCount <= 0 {
		return ErrInvalidArticleCount
	}

	if !isValidTaskStatus(t.Status) {
		return fmt.Errorf("%w: %q", ErrInvalidTaskStatus, t.Status)
	}

	if t.Progress < 0 || t.Progress > 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidProgress, t.Progress)
	}

	// completed_at is set exactly when the task is terminal
	if t.Status.IsTerminal() && t.CompletedAt == nil {
		return fmt.Errorf("%w: terminal task missing completion timestamp", ErrValidation)
	}
	if !t.Status.IsTerminal() && t.CompletedAt != nil {
		return fmt.Errorf("%w: non-terminal task has completion timestamp", ErrValidation)
	}

	if t.Articles != nil && t.Status != TaskStatusCompleted {
		return fmt.Errorf("%w: articles attached to %s task", ErrValidation, t.Status)
	}

	return nil
}

// TransitionTo moves the task to the given status, stamping CompletedAt when
// entering a terminal state. Returns ErrInvalidTransition if the state
// machine forbids the change.
func (t *GenerationTask) TransitionTo(status TaskStatus) error {
	if !isValidTaskStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidTaskStatus, status)
	}

	if !t.Status.CanTransitionTo(status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, status)
	}

	t.Status = status
	if status.IsTerminal() && t.CompletedAt == nil {
		now := time.Now().UTC()
		t.CompletedAt = &now
	}
	return nil
}

// Clone returns a deep copy of the task so callers can never mutate the
// stored record out-of-band.
func (t *GenerationTask) Clone() *GenerationTask {
	clone := *t
	if t.CompletedAt != nil {
		completedAt := *t.CompletedAt
		clone.CompletedAt = &completedAt
	}
	if t.Articles != nil {
		clone.Articles = make([]GeneratedArticle, len(t.Articles))
		copy(clone.Articles, t.Articles)
	}
	return &clone
}
