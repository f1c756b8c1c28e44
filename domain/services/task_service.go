package services

import (
	"context"
	"io"

	"github.com/google/uuid"

	"taskhub/domain/dto"
)

type TaskService interface {
	CreateTask(ctx context.Context, projectID, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error)
	GetProjectTasks(ctx context.Context, projectID, userID uuid.UUID) ([]dto.TaskResponse, error)
	GetTask(ctx context.Context, taskID, userID uuid.UUID) (*dto.TaskResponse, error)

	// UpdateTask replaces every mutable field (PUT semantics) and records
	// history for each field that actually changed.
	UpdateTask(ctx context.Context, taskID, userID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error)

	// PatchTask applies only the fields present in the request; absent
	// fields keep their stored values. History is recorded per changed
	// field and the task version advances by one, all atomically.
	PatchTask(ctx context.Context, taskID, userID uuid.UUID, req *dto.PatchTaskRequest) (*dto.TaskResponse, error)

	// BulkUpdateTasks patches each id independently; one failure never
	// aborts the batch.
	BulkUpdateTasks(ctx context.Context, userID uuid.UUID, req *dto.BulkUpdateRequest) (*dto.BulkUpdateResponse, error)

	DeleteTask(ctx context.Context, taskID, userID uuid.UUID) error
	GetTaskHistory(ctx context.Context, taskID, userID uuid.UUID) ([]dto.TaskHistoryResponse, error)

	AddComment(ctx context.Context, taskID, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	ListComments(ctx context.Context, taskID, userID uuid.UUID) ([]dto.CommentResponse, error)

	AddAttachment(ctx context.Context, taskID, userID uuid.UUID, fileName, contentType string, size int64, content io.Reader) (*dto.AttachmentResponse, error)
	ListAttachments(ctx context.Context, taskID, userID uuid.UUID) ([]dto.AttachmentResponse, error)

	// DownloadAttachment streams a stored blob; the caller closes the
	// reader. The task guard applies before the record is looked up.
	DownloadAttachment(ctx context.Context, taskID, attachmentID, userID uuid.UUID) (io.ReadCloser, *dto.AttachmentResponse, error)

	// SweepOverdue publishes an overdue event for every task past its due
	// date that is not DONE. Invoked by the scheduler.
	SweepOverdue(ctx context.Context) (int, error)
}
