package postgres

import (
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"taskhub/domain/models"
	"taskhub/domain/repositories"
)

type AttachmentRepositoryImpl struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) repositories.AttachmentRepository {
	return &AttachmentRepositoryImpl{db: db}
}

func (r *AttachmentRepositoryImpl) Create(ctx context.Context, attachment *models.TaskAttachment, entry *models.TaskHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(attachment).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *AttachmentRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.TaskAttachment, error) {
	var attachment models.TaskAttachment
	if err := r.db.WithContext(ctx).First(&attachment, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &attachment, nil
}

func (r *AttachmentRepositoryImpl) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.TaskAttachment, error) {
	var attachments []*models.TaskAttachment
	err := r.db.WithContext(ctx).
		Preload("Uploader").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&attachments).Error
	return attachments, err
}
