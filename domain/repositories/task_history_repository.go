package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskhub/domain/models"
)

type TaskHistoryRepository interface {
	// ListUserTaskHistory returns the task's audit trail newest first,
	// only when the user has access to the task's project.
	ListUserTaskHistory(ctx context.Context, taskID, userID uuid.UUID) ([]*models.TaskHistory, error)
}
