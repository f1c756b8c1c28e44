package dto

import (
	"github.com/google/uuid"

	"taskhub/domain/models"
)

func UserToUserResponse(user *models.User) *UserResponse {
	if user == nil {
		return nil
	}
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Avatar:    user.Avatar,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// userOrNil skips zero-valued preloads so responses never carry empty users.
func userOrNil(user *models.User) *UserResponse {
	if user == nil || user.ID == uuid.Nil {
		return nil
	}
	return UserToUserResponse(user)
}

func TaskToTaskResponse(task *models.Task) *TaskResponse {
	if task == nil {
		return nil
	}
	resp := &TaskResponse{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		Status:       string(task.Status),
		Priority:     string(task.Priority),
		ProjectID:    task.ProjectID,
		AssigneeID:   task.AssigneeID,
		CreatedBy:    task.CreatedBy,
		StartDate:    task.StartDate,
		DueDate:      task.DueDate,
		Version:      task.Version,
		LastEditedBy: task.LastEditedBy,
		Tags:         task.Tags,
		CustomFields: task.CustomFields,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
	}
	if resp.Tags == nil {
		resp.Tags = []string{}
	}
	if resp.CustomFields == nil {
		resp.CustomFields = map[string]any{}
	}
	resp.Assignee = userOrNil(task.Assignee)
	resp.Creator = userOrNil(&task.Creator)
	resp.LastEditor = userOrNil(task.LastEditor)
	return resp
}

func TasksToTaskResponses(tasks []*models.Task) []TaskResponse {
	out := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = *TaskToTaskResponse(t)
	}
	return out
}

func MemberToMemberResponse(m *models.ProjectMember) *ProjectMemberResponse {
	if m == nil {
		return nil
	}
	return &ProjectMemberResponse{
		ID:        m.ID,
		ProjectID: m.ProjectID,
		UserID:    m.UserID,
		Role:      string(m.Role),
		JoinedAt:  m.JoinedAt,
		User:      userOrNil(&m.User),
	}
}

func ProjectToProjectResponse(p *models.Project, members []*models.ProjectMember, tasks []*models.Task) *ProjectResponse {
	if p == nil {
		return nil
	}
	resp := &ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Slug:        p.Slug,
		Description: p.Description,
		OwnerID:     p.OwnerID,
		Owner:       userOrNil(&p.Owner),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	for _, m := range members {
		resp.Members = append(resp.Members, *MemberToMemberResponse(m))
	}
	if tasks != nil {
		resp.Tasks = TasksToTaskResponses(tasks)
	}
	return resp
}

func HistoryToHistoryResponse(h *models.TaskHistory) *TaskHistoryResponse {
	if h == nil {
		return nil
	}
	return &TaskHistoryResponse{
		ID:          h.ID,
		TaskID:      h.TaskID,
		FieldName:   h.FieldName,
		OldValue:    h.OldValue,
		NewValue:    h.NewValue,
		ChangedBy:   h.ChangedBy,
		ChangeType:  string(h.ChangeType),
		ChangedAt:   h.ChangedAt,
		Description: h.Description,
		Actor:       userOrNil(&h.Actor),
	}
}

func CommentToCommentResponse(c *models.TaskComment) *CommentResponse {
	if c == nil {
		return nil
	}
	return &CommentResponse{
		ID:        c.ID,
		TaskID:    c.TaskID,
		AuthorID:  c.AuthorID,
		Body:      c.Body,
		Author:    userOrNil(&c.Author),
		CreatedAt: c.CreatedAt,
	}
}

func AttachmentToAttachmentResponse(a *models.TaskAttachment) *AttachmentResponse {
	if a == nil {
		return nil
	}
	return &AttachmentResponse{
		ID:          a.ID,
		TaskID:      a.TaskID,
		UploadedBy:  a.UploadedBy,
		FileName:    a.FileName,
		FileSize:    a.FileSize,
		ContentType: a.ContentType,
		URL:         a.URL,
		Uploader:    userOrNil(&a.Uploader),
		CreatedAt:   a.CreatedAt,
	}
}
