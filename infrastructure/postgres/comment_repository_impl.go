package postgres

import (
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"taskhub/domain/models"
	"taskhub/domain/repositories"
)

type CommentRepositoryImpl struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) repositories.CommentRepository {
	return &CommentRepositoryImpl{db: db}
}

func (r *CommentRepositoryImpl) Create(ctx context.Context, comment *models.TaskComment, entry *models.TaskHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *CommentRepositoryImpl) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.TaskComment, error) {
	var comments []*models.TaskComment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}
