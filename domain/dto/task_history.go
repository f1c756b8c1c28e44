package dto

import (
	"time"

	"github.com/google/uuid"
)

type TaskHistoryResponse struct {
	ID          uuid.UUID     `json:"id"`
	TaskID      uuid.UUID     `json:"taskId"`
	FieldName   string        `json:"fieldName"`
	OldValue    *string       `json:"oldValue"`
	NewValue    *string       `json:"newValue"`
	ChangedBy   uuid.UUID     `json:"changedBy"`
	ChangeType  string        `json:"changeType"`
	ChangedAt   time.Time     `json:"changedAt"`
	Description string        `json:"description"`
	Actor       *UserResponse `json:"actor,omitempty"`
}
