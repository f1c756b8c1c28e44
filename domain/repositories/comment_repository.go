package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskhub/domain/models"
)

type CommentRepository interface {
	// Create persists the comment and its COMMENT_ADDED history entry in
	// one transaction.
	Create(ctx context.Context, comment *models.TaskComment, entry *models.TaskHistory) error
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.TaskComment, error)
}
