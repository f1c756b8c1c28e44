package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"taskhub/domain/models"
	"taskhub/domain/repositories"
)

// userTaskFilter restricts a tasks query to rows inside projects the user
// owns or is a member of. Missing and denied rows look the same.
const userTaskFilter = `EXISTS (
	SELECT 1 FROM projects p
	WHERE p.id = tasks.project_id
	AND (p.owner_id = ? OR EXISTS (
		SELECT 1 FROM project_members pm
		WHERE pm.project_id = p.id AND pm.user_id = ?
	))
)`

type TaskRepositoryImpl struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) repositories.TaskRepository {
	return &TaskRepositoryImpl{db: db}
}

func (r *TaskRepositoryImpl) Create(ctx context.Context, task *models.Task, entry *models.TaskHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(task).Error; err != nil {
			return err
		}
		return tx.Create(entry).Error
	})
}

func (r *TaskRepositoryImpl) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Preload("Creator").
		Preload("LastEditor").
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) GetUserTask(ctx context.Context, taskID, userID uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Preload("Creator").
		Preload("LastEditor").
		Where("tasks.id = ?", taskID).
		Where(userTaskFilter, userID, userID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepositoryImpl) ListProjectTasks(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Preload("Assignee").
		Preload("Creator").
		Preload("LastEditor").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepositoryImpl) SaveWithHistory(ctx context.Context, task *models.Task, expectedVersion int, entries []*models.TaskHistory) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Task{}).
			Where("id = ? AND version = ?", task.ID, expectedVersion).
			Updates(map[string]interface{}{
				"title":          task.Title,
				"description":    task.Description,
				"status":         task.Status,
				"priority":       task.Priority,
				"assignee_id":    task.AssigneeID,
				"start_date":     task.StartDate,
				"due_date":       task.DueDate,
				"tags":           task.Tags,
				"custom_fields":  task.CustomFields,
				"last_edited_by": task.LastEditedBy,
				"version":        gorm.Expr("version + 1"),
				"updated_at":     time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repositories.ErrVersionConflict
		}

		for _, entry := range entries {
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *TaskRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskHistory{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskComment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_id = ?", id).Delete(&models.TaskAttachment{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Task{}).Error
	})
}

func (r *TaskRepositoryImpl) ListOverdue(ctx context.Context, before time.Time) ([]*models.Task, error) {
	var tasks []*models.Task
	err := r.db.WithContext(ctx).
		Where("due_date IS NOT NULL AND due_date < ? AND status <> ?", before, models.TaskStatusDone).
		Find(&tasks).Error
	return tasks, err
}
