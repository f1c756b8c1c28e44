package models

import (
	"time"

	"github.com/google/uuid"
)

// ChangeType classifies a history entry.
type ChangeType string

const (
	ChangeTypeCreate           ChangeType = "CREATE"
	ChangeTypeUpdate           ChangeType = "UPDATE"
	ChangeTypeDelete           ChangeType = "DELETE"
	ChangeTypeStatusChange     ChangeType = "STATUS_CHANGE"
	ChangeTypeAssignmentChange ChangeType = "ASSIGNMENT_CHANGE"
	ChangeTypePriorityChange   ChangeType = "PRIORITY_CHANGE"
	ChangeTypeDueDateChange    ChangeType = "DUE_DATE_CHANGE"
	ChangeTypeCommentAdded     ChangeType = "COMMENT_ADDED"
	ChangeTypeAttachmentAdded  ChangeType = "ATTACHMENT_ADDED"
	ChangeTypeSubtaskAdded     ChangeType = "SUBTASK_ADDED"
	ChangeTypeDependencyAdded  ChangeType = "DEPENDENCY_ADDED"
)

// TaskHistory is one immutable audit record of a single field transition
// or task-level event. Rows are only ever inserted, never updated.
type TaskHistory struct {
	ID          uuid.UUID  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TaskID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	FieldName   string     `gorm:"size:100;not null"`
	OldValue    *string    `gorm:"type:text"`
	NewValue    *string    `gorm:"type:text"`
	ChangedBy   uuid.UUID  `gorm:"type:uuid;not null"`
	ChangeType  ChangeType `gorm:"size:30;not null"`
	ChangedAt   time.Time  `gorm:"not null;autoCreateTime;index"`
	Description string     `gorm:"type:text"`

	Actor User `gorm:"foreignKey:ChangedBy"`
}

func (TaskHistory) TableName() string {
	return "task_history"
}
