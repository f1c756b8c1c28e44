package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskComment struct {
	ID        uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TaskID    uuid.UUID `gorm:"type:uuid;not null;index"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null"`
	Body      string    `gorm:"type:text;not null"`
	CreatedAt time.Time

	Author User `gorm:"foreignKey:AuthorID"`
}

func (TaskComment) TableName() string {
	return "task_comments"
}
