package postgres

import (
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"taskhub/domain/models"
	"taskhub/domain/repositories"
)

type TaskHistoryRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskHistoryRepository(db *gorm.DB) repositories.TaskHistoryRepository {
	return &TaskHistoryRepositoryImpl{db: db}
}

func (r *TaskHistoryRepositoryImpl) ListUserTaskHistory(ctx context.Context, taskID, userID uuid.UUID) ([]*models.TaskHistory, error) {
	var entries []*models.TaskHistory
	err := r.db.WithContext(ctx).
		Preload("Actor").
		Where("task_history.task_id = ?", taskID).
		Where(`EXISTS (
			SELECT 1 FROM tasks t
			JOIN projects p ON p.id = t.project_id
			WHERE t.id = task_history.task_id
			AND (p.owner_id = ? OR EXISTS (
				SELECT 1 FROM project_members pm
				WHERE pm.project_id = p.id AND pm.user_id = ?
			))
		)`, userID, userID).
		Order("changed_at DESC").
		Find(&entries).Error
	return entries, err
}
