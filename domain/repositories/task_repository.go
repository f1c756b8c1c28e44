package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"taskhub/domain/models"
)

// ErrVersionConflict signals that a task row changed between the snapshot
// read and the guarded update (another writer got there first).
var ErrVersionConflict = errors.New("task was modified concurrently")

type TaskRepository interface {
	// Create persists the task together with its CREATE history entry in
	// one transaction.
	Create(ctx context.Context, task *models.Task, entry *models.TaskHistory) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error)

	// GetUserTask returns the task only when the user owns or is a member
	// of its project. Missing and denied are indistinguishable.
	GetUserTask(ctx context.Context, taskID, userID uuid.UUID) (*models.Task, error)

	ListProjectTasks(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error)

	// SaveWithHistory applies the task's mutable fields and appends the
	// history entries in one transaction. The row update is guarded by
	// expectedVersion and bumps version by one; ErrVersionConflict is
	// returned when no row matches.
	SaveWithHistory(ctx context.Context, task *models.Task, expectedVersion int, entries []*models.TaskHistory) error

	Delete(ctx context.Context, id uuid.UUID) error

	// ListOverdue returns tasks past their due date that are not DONE.
	ListOverdue(ctx context.Context, before time.Time) ([]*models.Task, error)
}
