package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskhub/domain/models"
)

type AttachmentRepository interface {
	// Create persists the attachment record and its ATTACHMENT_ADDED
	// history entry in one transaction.
	Create(ctx context.Context, attachment *models.TaskAttachment, entry *models.TaskHistory) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.TaskAttachment, error)
	ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.TaskAttachment, error)
}
