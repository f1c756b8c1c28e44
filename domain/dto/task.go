package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTaskRequest struct {
	Title        string         `json:"title" validate:"required,min=1,max=255"`
	Description  string         `json:"description" validate:"omitempty,max=5000"`
	Priority     string         `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	AssigneeID   *string        `json:"assigneeId" validate:"omitempty,uuid"`
	StartDate    *string        `json:"startDate"`
	DueDate      *string        `json:"dueDate"`
	Tags         []string       `json:"tags" validate:"omitempty,dive,max=50"`
	CustomFields map[string]any `json:"customFields"`
}

// UpdateTaskRequest replaces every mutable field (PUT semantics).
type UpdateTaskRequest struct {
	Title        string         `json:"title" validate:"required,min=1,max=255"`
	Description  string         `json:"description" validate:"omitempty,max=5000"`
	Status       string         `json:"status" validate:"required,oneof=TODO IN_PROGRESS DONE"`
	Priority     string         `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH"`
	AssigneeID   *string        `json:"assigneeId" validate:"omitempty,uuid"`
	StartDate    *string        `json:"startDate"`
	DueDate      *string        `json:"dueDate"`
	Tags         []string       `json:"tags" validate:"omitempty,dive,max=50"`
	CustomFields map[string]any `json:"customFields"`
}

// PatchTaskRequest carries a sparse update: nil means the field is absent
// and the stored value is left untouched. Date strings parse leniently;
// unparsable values are treated as absent rather than rejected.
type PatchTaskRequest struct {
	Title        *string        `json:"title" validate:"omitempty,min=1,max=255"`
	Description  *string        `json:"description" validate:"omitempty,max=5000"`
	Status       *string        `json:"status" validate:"omitempty,oneof=TODO IN_PROGRESS DONE"`
	Priority     *string        `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH"`
	AssigneeID   *string        `json:"assigneeId" validate:"omitempty,uuid"`
	StartDate    *string        `json:"startDate"`
	DueDate      *string        `json:"dueDate"`
	Tags         []string       `json:"tags" validate:"omitempty,dive,max=50"`
	CustomFields map[string]any `json:"customFields"`
}

type BulkUpdateRequest struct {
	TaskIDs []uuid.UUID      `json:"taskIds" validate:"required,min=1,max=100"`
	Updates PatchTaskRequest `json:"updates" validate:"required"`
}

type BulkUpdateError struct {
	TaskID       uuid.UUID `json:"taskId"`
	ErrorMessage string    `json:"errorMessage"`
	ErrorCode    string    `json:"errorCode"`
}

type BulkUpdateResponse struct {
	SuccessfulUpdates []uuid.UUID       `json:"successfulUpdates"`
	FailedUpdates     []BulkUpdateError `json:"failedUpdates"`
	TotalRequested    int               `json:"totalRequested"`
	TotalSuccessful   int               `json:"totalSuccessful"`
	TotalFailed       int               `json:"totalFailed"`
}

type TaskResponse struct {
	ID           uuid.UUID      `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Status       string         `json:"status"`
	Priority     string         `json:"priority"`
	ProjectID    uuid.UUID      `json:"projectId"`
	AssigneeID   *uuid.UUID     `json:"assigneeId"`
	CreatedBy    uuid.UUID      `json:"createdBy"`
	StartDate    *time.Time     `json:"startDate"`
	DueDate      *time.Time     `json:"dueDate"`
	Version      int            `json:"version"`
	LastEditedBy *uuid.UUID     `json:"lastEditedBy"`
	Tags         []string       `json:"tags"`
	CustomFields map[string]any `json:"customFields"`
	Assignee     *UserResponse  `json:"assignee,omitempty"`
	Creator      *UserResponse  `json:"creator,omitempty"`
	LastEditor   *UserResponse  `json:"lastEditor,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
}

type CreateCommentRequest struct {
	Body string `json:"body" validate:"required,min=1,max=5000"`
}

type CommentResponse struct {
	ID        uuid.UUID     `json:"id"`
	TaskID    uuid.UUID     `json:"taskId"`
	AuthorID  uuid.UUID     `json:"authorId"`
	Body      string        `json:"body"`
	Author    *UserResponse `json:"author,omitempty"`
	CreatedAt time.Time     `json:"createdAt"`
}

type AttachmentResponse struct {
	ID          uuid.UUID     `json:"id"`
	TaskID      uuid.UUID     `json:"taskId"`
	UploadedBy  uuid.UUID     `json:"uploadedBy"`
	FileName    string        `json:"fileName"`
	FileSize    int64         `json:"fileSize"`
	ContentType string        `json:"contentType"`
	URL         string        `json:"url"`
	Uploader    *UserResponse `json:"uploader,omitempty"`
	CreatedAt   time.Time     `json:"createdAt"`
}
