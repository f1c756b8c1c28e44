package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"taskhub/domain/dto"
	"taskhub/domain/models"
	"taskhub/domain/ports"
	"taskhub/domain/repositories"
	"taskhub/domain/services"
	"taskhub/infrastructure/redis"
	"taskhub/pkg/logger"
	"taskhub/pkg/utils"
)

const taskCacheTTL = 60 * time.Second

type TaskServiceImpl struct {
	taskRepo       repositories.TaskRepository
	historyRepo    repositories.TaskHistoryRepository
	projectRepo    repositories.ProjectRepository
	commentRepo    repositories.CommentRepository
	attachmentRepo repositories.AttachmentRepository
	userRepo       repositories.UserRepository
	storage        ports.StoragePort
	events         ports.EventPublisher // nil when NATS is not configured
	cache          *redis.Client        // nil when Redis is not configured
}

func NewTaskService(
	taskRepo repositories.TaskRepository,
	historyRepo repositories.TaskHistoryRepository,
	projectRepo repositories.ProjectRepository,
	commentRepo repositories.CommentRepository,
	attachmentRepo repositories.AttachmentRepository,
	userRepo repositories.UserRepository,
	storage ports.StoragePort,
	events ports.EventPublisher,
	cache *redis.Client,
) services.TaskService {
	return &TaskServiceImpl{
		taskRepo:       taskRepo,
		historyRepo:    historyRepo,
		projectRepo:    projectRepo,
		commentRepo:    commentRepo,
		attachmentRepo: attachmentRepo,
		userRepo:       userRepo,
		storage:        storage,
		events:         events,
		cache:          cache,
	}
}

func (s *TaskServiceImpl) CreateTask(ctx context.Context, projectID, userID uuid.UUID, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	if _, err := s.projectRepo.GetUserProject(ctx, projectID, userID); err != nil {
		logger.WarnContext(ctx, "Project not found for task creation", "project_id", projectID, "user_id", userID)
		return nil, services.ErrNotFound
	}

	task := &models.Task{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		Status:       models.TaskStatusTodo,
		Priority:     models.TaskPriorityMedium,
		ProjectID:    projectID,
		CreatedBy:    userID,
		Version:      1,
		Tags:         models.TagList{},
		CustomFields: models.CustomFieldMap{},
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if req.Priority != "" {
		task.Priority = models.TaskPriority(req.Priority)
	}
	if req.AssigneeID != nil {
		if id, err := uuid.Parse(*req.AssigneeID); err == nil {
			task.AssigneeID = &id
		}
	}
	if req.StartDate != nil {
		if t, ok := utils.ParseFlexibleTime(*req.StartDate); ok {
			task.StartDate = &t
		}
	}
	if req.DueDate != nil {
		if t, ok := utils.ParseFlexibleTime(*req.DueDate); ok {
			task.DueDate = &t
		}
	}
	if req.Tags != nil {
		task.Tags = models.TagList(req.Tags)
	}
	if req.CustomFields != nil {
		task.CustomFields = models.CustomFieldMap(req.CustomFields)
	}

	entry := eventEntry(task.ID, models.ChangeTypeCreate, "task",
		fmt.Sprintf("Created task '%s'", task.Title), userID)

	if err := s.taskRepo.Create(ctx, task, entry); err != nil {
		logger.ErrorContext(ctx, "Failed to create task", "project_id", projectID, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Task created", "task_id", task.ID, "project_id", projectID, "user_id", userID)
	s.publish(ctx, &ports.TaskEvent{
		Type:      ports.TaskEventCreated,
		TaskID:    task.ID.String(),
		ProjectID: projectID.String(),
		ActorID:   userID.String(),
		Version:   task.Version,
		Timestamp: time.Now(),
	})

	return s.assemble(ctx, task.ID)
}

func (s *TaskServiceImpl) GetProjectTasks(ctx context.Context, projectID, userID uuid.UUID) ([]dto.TaskResponse, error) {
	if _, err := s.projectRepo.GetUserProject(ctx, projectID, userID); err != nil {
		return nil, services.ErrNotFound
	}

	tasks, err := s.taskRepo.ListProjectTasks(ctx, projectID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list project tasks", "project_id", projectID, "error", err)
		return nil, err
	}

	return dto.TasksToTaskResponses(tasks), nil
}

func (s *TaskServiceImpl) GetTask(ctx context.Context, taskID, userID uuid.UUID) (*dto.TaskResponse, error) {
	if s.cache != nil {
		var cached dto.TaskResponse
		if err := s.cache.GetJSON(ctx, taskCacheKey(taskID, userID), &cached); err == nil {
			return &cached, nil
		}
	}

	task, err := s.taskRepo.GetUserTask(ctx, taskID, userID)
	if err != nil {
		return nil, services.ErrNotFound
	}

	resp := dto.TaskToTaskResponse(task)
	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, taskCacheKey(taskID, userID), resp, taskCacheTTL); err != nil {
			logger.WarnContext(ctx, "Failed to cache task", "task_id", taskID, "error", err)
		}
	}
	return resp, nil
}

func (s *TaskServiceImpl) UpdateTask(ctx context.Context, taskID, userID uuid.UUID, req *dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.taskRepo.GetUserTask(ctx, taskID, userID)
	if err != nil {
		logger.WarnContext(ctx, "Task not found for update", "task_id", taskID, "user_id", userID)
		return nil, services.ErrNotFound
	}

	before := snapshotFields(task)
	prevVersion := task.Version

	task.Title = req.Title
	task.Description = req.Description
	task.Status = models.TaskStatus(req.Status)
	task.Priority = models.TaskPriority(req.Priority)
	task.AssigneeID = nil
	if req.AssigneeID != nil {
		if id, err := uuid.Parse(*req.AssigneeID); err == nil {
			task.AssigneeID = &id
		}
	}
	task.StartDate = parseOptionalTime(req.StartDate)
	task.DueDate = parseOptionalTime(req.DueDate)
	task.Tags = models.TagList(req.Tags)
	if task.Tags == nil {
		task.Tags = models.TagList{}
	}
	task.CustomFields = models.CustomFieldMap(req.CustomFields)
	if task.CustomFields == nil {
		task.CustomFields = models.CustomFieldMap{}
	}
	task.LastEditedBy = &userID

	entries := fieldChanges(taskID, before, snapshotFields(task), userID)
	if err := s.persist(ctx, task, prevVersion, entries, userID); err != nil {
		return nil, err
	}
	return s.assemble(ctx, taskID)
}

func (s *TaskServiceImpl) PatchTask(ctx context.Context, taskID, userID uuid.UUID, req *dto.PatchTaskRequest) (*dto.TaskResponse, error) {
	task, err := s.taskRepo.GetUserTask(ctx, taskID, userID)
	if err != nil {
		logger.WarnContext(ctx, "Task not found for patch", "task_id", taskID, "user_id", userID)
		return nil, services.ErrNotFound
	}

	before := snapshotFields(task)
	prevVersion := task.Version

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = models.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		task.Priority = models.TaskPriority(*req.Priority)
	}
	if req.AssigneeID != nil {
		if id, err := uuid.Parse(*req.AssigneeID); err == nil {
			task.AssigneeID = &id
		}
	}
	if req.StartDate != nil {
		if t, ok := utils.ParseFlexibleTime(*req.StartDate); ok {
			task.StartDate = &t
		}
	}
	if req.DueDate != nil {
		if t, ok := utils.ParseFlexibleTime(*req.DueDate); ok {
			task.DueDate = &t
		}
	}
	if req.Tags != nil {
		task.Tags = models.TagList(req.Tags)
	}
	if req.CustomFields != nil {
		task.CustomFields = models.CustomFieldMap(req.CustomFields)
	}
	task.LastEditedBy = &userID

	entries := fieldChanges(taskID, before, snapshotFields(task), userID)
	if err := s.persist(ctx, task, prevVersion, entries, userID); err != nil {
		return nil, err
	}
	return s.assemble(ctx, taskID)
}

func (s *TaskServiceImpl) BulkUpdateTasks(ctx context.Context, userID uuid.UUID, req *dto.BulkUpdateRequest) (*dto.BulkUpdateResponse, error) {
	resp := &dto.BulkUpdateResponse{
		SuccessfulUpdates: []uuid.UUID{},
		FailedUpdates:     []dto.BulkUpdateError{},
		TotalRequested:    len(req.TaskIDs),
	}

	for _, taskID := range req.TaskIDs {
		if _, err := s.PatchTask(ctx, taskID, userID, &req.Updates); err != nil {
			resp.FailedUpdates = append(resp.FailedUpdates, dto.BulkUpdateError{
				TaskID:       taskID,
				ErrorMessage: err.Error(),
				ErrorCode:    "UPDATE_FAILED",
			})
			continue
		}
		resp.SuccessfulUpdates = append(resp.SuccessfulUpdates, taskID)
	}

	resp.TotalSuccessful = len(resp.SuccessfulUpdates)
	resp.TotalFailed = len(resp.FailedUpdates)

	logger.InfoContext(ctx, "Bulk update finished",
		"requested", resp.TotalRequested,
		"successful", resp.TotalSuccessful,
		"failed", resp.TotalFailed,
		"user_id", userID,
	)
	return resp, nil
}

func (s *TaskServiceImpl) DeleteTask(ctx context.Context, taskID, userID uuid.UUID) error {
	task, err := s.taskRepo.GetUserTask(ctx, taskID, userID)
	if err != nil {
		logger.WarnContext(ctx, "Task not found for deletion", "task_id", taskID, "user_id", userID)
		return services.ErrNotFound
	}

	if err := s.taskRepo.Delete(ctx, taskID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete task", "task_id", taskID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Task deleted", "task_id", taskID, "user_id", userID)
	s.invalidate(ctx, taskID)
	s.publish(ctx, &ports.TaskEvent{
		Type:      ports.TaskEventDeleted,
		TaskID:    taskID.String(),
		ProjectID: task.ProjectID.String(),
		ActorID:   userID.String(),
		Timestamp: time.Now(),
	})
	return nil
}

func (s *TaskServiceImpl) GetTaskHistory(ctx context.Context, taskID, userID uuid.UUID) ([]dto.TaskHistoryResponse, error) {
	if _, err := s.taskRepo.GetUserTask(ctx, taskID, userID); err != nil {
		return nil, services.ErrNotFound
	}

	entries, err := s.historyRepo.ListUserTaskHistory(ctx, taskID, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to load task history", "task_id", taskID, "error", err)
		return nil, err
	}

	out := make([]dto.TaskHistoryResponse, len(entries))
	for i, e := range entries {
		out[i] = *dto.HistoryToHistoryResponse(e)
	}
	return out, nil
}

func (s *TaskServiceImpl) AddComment(ctx context.Context, taskID, userID uuid.UUID, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	if _, err := s.taskRepo.GetUserTask(ctx, taskID, userID); err != nil {
		return nil, services.ErrNotFound
	}

	comment := &models.TaskComment{
		ID:        uuid.New(),
		TaskID:    taskID,
		AuthorID:  userID,
		Body:      req.Body,
		CreatedAt: time.Now(),
	}
	entry := eventEntry(taskID, models.ChangeTypeCommentAdded, "comments", "Added comment", userID)

	if err := s.commentRepo.Create(ctx, comment, entry); err != nil {
		logger.ErrorContext(ctx, "Failed to add comment", "task_id", taskID, "error", err)
		return nil, err
	}

	if author, err := s.userRepo.GetByID(ctx, userID); err == nil {
		comment.Author = *author
	}
	logger.InfoContext(ctx, "Comment added", "task_id", taskID, "comment_id", comment.ID)
	return dto.CommentToCommentResponse(comment), nil
}

func (s *TaskServiceImpl) ListComments(ctx context.Context, taskID, userID uuid.UUID) ([]dto.CommentResponse, error) {
	if _, err := s.taskRepo.GetUserTask(ctx, taskID, userID); err != nil {
		return nil, services.ErrNotFound
	}

	comments, err := s.commentRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CommentResponse, len(comments))
	for i, c := range comments {
		out[i] = *dto.CommentToCommentResponse(c)
	}
	return out, nil
}

func (s *TaskServiceImpl) AddAttachment(ctx context.Context, taskID, userID uuid.UUID, fileName, contentType string, size int64, content io.Reader) (*dto.AttachmentResponse, error) {
	if _, err := s.taskRepo.GetUserTask(ctx, taskID, userID); err != nil {
		return nil, services.ErrNotFound
	}

	storagePath := fmt.Sprintf("attachments/%s/%s%s",
		taskID, utils.GenerateRandomString(8), filepath.Ext(fileName))
	url, err := s.storage.UploadFile(content, storagePath, contentType)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to store attachment", "task_id", taskID, "file", fileName, "error", err)
		return nil, err
	}

	attachment := &models.TaskAttachment{
		ID:          uuid.New(),
		TaskID:      taskID,
		UploadedBy:  userID,
		FileName:    fileName,
		FileSize:    size,
		ContentType: contentType,
		StoragePath: storagePath,
		URL:         url,
		CreatedAt:   time.Now(),
	}
	entry := eventEntry(taskID, models.ChangeTypeAttachmentAdded, "attachments",
		fmt.Sprintf("Added attachment '%s'", fileName), userID)

	if err := s.attachmentRepo.Create(ctx, attachment, entry); err != nil {
		// best effort, the record is the source of truth
		if delErr := s.storage.DeleteFile(storagePath); delErr != nil {
			logger.WarnContext(ctx, "Failed to remove orphaned attachment blob", "path", storagePath, "error", delErr)
		}
		logger.ErrorContext(ctx, "Failed to record attachment", "task_id", taskID, "error", err)
		return nil, err
	}

	if uploader, err := s.userRepo.GetByID(ctx, userID); err == nil {
		attachment.Uploader = *uploader
	}
	logger.InfoContext(ctx, "Attachment added", "task_id", taskID, "attachment_id", attachment.ID, "size", size)
	return dto.AttachmentToAttachmentResponse(attachment), nil
}

func (s *TaskServiceImpl) ListAttachments(ctx context.Context, taskID, userID uuid.UUID) ([]dto.AttachmentResponse, error) {
	if _, err := s.taskRepo.GetUserTask(ctx, taskID, userID); err != nil {
		return nil, services.ErrNotFound
	}

	attachments, err := s.attachmentRepo.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AttachmentResponse, len(attachments))
	for i, a := range attachments {
		out[i] = *dto.AttachmentToAttachmentResponse(a)
	}
	return out, nil
}

func (s *TaskServiceImpl) DownloadAttachment(ctx context.Context, taskID, attachmentID, userID uuid.UUID) (io.ReadCloser, *dto.AttachmentResponse, error) {
	if _, err := s.taskRepo.GetUserTask(ctx, taskID, userID); err != nil {
		return nil, nil, services.ErrNotFound
	}

	attachment, err := s.attachmentRepo.GetByID(ctx, attachmentID)
	if err != nil || attachment.TaskID != taskID {
		return nil, nil, services.ErrNotFound
	}

	content, detected, err := s.storage.GetFileContent(attachment.StoragePath)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to read attachment blob", "attachment_id", attachmentID, "path", attachment.StoragePath, "error", err)
		return nil, nil, err
	}

	meta := dto.AttachmentToAttachmentResponse(attachment)
	if meta.ContentType == "" {
		meta.ContentType = detected
	}
	return content, meta, nil
}

func (s *TaskServiceImpl) SweepOverdue(ctx context.Context) (int, error) {
	tasks, err := s.taskRepo.ListOverdue(ctx, time.Now())
	if err != nil {
		return 0, err
	}

	for _, task := range tasks {
		s.publish(ctx, &ports.TaskEvent{
			Type:      ports.TaskEventOverdue,
			TaskID:    task.ID.String(),
			ProjectID: task.ProjectID.String(),
			Version:   task.Version,
			Timestamp: time.Now(),
		})
	}
	if len(tasks) > 0 {
		logger.InfoContext(ctx, "Overdue sweep finished", "overdue", len(tasks))
	}
	return len(tasks), nil
}

// persist writes the task row and its history entries atomically, then
// invalidates the cache and announces the change.
func (s *TaskServiceImpl) persist(ctx context.Context, task *models.Task, prevVersion int, entries []*models.TaskHistory, userID uuid.UUID) error {
	task.UpdatedAt = time.Now()
	if err := s.taskRepo.SaveWithHistory(ctx, task, prevVersion, entries); err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			logger.WarnContext(ctx, "Concurrent task modification", "task_id", task.ID, "expected_version", prevVersion)
		} else {
			logger.ErrorContext(ctx, "Failed to save task", "task_id", task.ID, "error", err)
		}
		return err
	}

	fields := make([]string, len(entries))
	for i, e := range entries {
		fields[i] = e.FieldName
	}
	logger.InfoContext(ctx, "Task updated", "task_id", task.ID, "version", prevVersion+1, "changed_fields", fields)

	s.invalidate(ctx, task.ID)
	s.publish(ctx, &ports.TaskEvent{
		Type:      ports.TaskEventUpdated,
		TaskID:    task.ID.String(),
		ProjectID: task.ProjectID.String(),
		ActorID:   userID.String(),
		Version:   prevVersion + 1,
		Fields:    fields,
		Timestamp: time.Now(),
	})
	return nil
}

// assemble reloads the task with its related users resolved.
func (s *TaskServiceImpl) assemble(ctx context.Context, taskID uuid.UUID) (*dto.TaskResponse, error) {
	task, err := s.taskRepo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return dto.TaskToTaskResponse(task), nil
}

func (s *TaskServiceImpl) invalidate(ctx context.Context, taskID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if _, err := s.cache.ScanAndDelete(ctx, fmt.Sprintf("task:%s:*", taskID)); err != nil {
		logger.WarnContext(ctx, "Failed to invalidate task cache", "task_id", taskID, "error", err)
	}
}

func (s *TaskServiceImpl) publish(ctx context.Context, event *ports.TaskEvent) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishTaskEvent(ctx, event); err != nil {
		logger.WarnContext(ctx, "Failed to publish task event", "type", event.Type, "task_id", event.TaskID, "error", err)
	}
}

func taskCacheKey(taskID, userID uuid.UUID) string {
	return fmt.Sprintf("task:%s:user:%s", taskID, userID)
}

func parseOptionalTime(s *string) *time.Time {
	if s == nil {
		return nil
	}
	if t, ok := utils.ParseFlexibleTime(*s); ok {
		return &t
	}
	return nil
}
