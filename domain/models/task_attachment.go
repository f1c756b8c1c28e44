package models

import (
	"time"

	"github.com/google/uuid"
)

type TaskAttachment struct {
	ID          uuid.UUID `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	TaskID      uuid.UUID `gorm:"type:uuid;not null;index"`
	UploadedBy  uuid.UUID `gorm:"type:uuid;not null"`
	FileName    string    `gorm:"size:255;not null"`
	FileSize    int64     `gorm:"not null"`
	ContentType string    `gorm:"size:100"`
	StoragePath string    `gorm:"type:text;not null"`
	URL         string    `gorm:"type:text"`
	CreatedAt   time.Time

	Uploader User `gorm:"foreignKey:UploadedBy"`
}

func (TaskAttachment) TableName() string {
	return "task_attachments"
}
