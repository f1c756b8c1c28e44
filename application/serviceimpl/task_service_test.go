package serviceimpl

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskhub/domain/dto"
	"taskhub/domain/models"
	"taskhub/domain/repositories"
	"taskhub/domain/services"
)

// store is the shared in-memory backing for the fake repositories.
type store struct {
	tasks       map[uuid.UUID]*models.Task
	taskAccess  map[uuid.UUID]map[uuid.UUID]bool
	projects    map[uuid.UUID]*models.Project
	projAccess  map[uuid.UUID]map[uuid.UUID]bool
	history     map[uuid.UUID][]*models.TaskHistory
	comments    map[uuid.UUID][]*models.TaskComment
	attachments map[uuid.UUID][]*models.TaskAttachment
	users       map[uuid.UUID]*models.User
	saveErr     error
}

func newStore() *store {
	return &store{
		tasks:       make(map[uuid.UUID]*models.Task),
		taskAccess:  make(map[uuid.UUID]map[uuid.UUID]bool),
		projects:    make(map[uuid.UUID]*models.Project),
		projAccess:  make(map[uuid.UUID]map[uuid.UUID]bool),
		history:     make(map[uuid.UUID][]*models.TaskHistory),
		comments:    make(map[uuid.UUID][]*models.TaskComment),
		attachments: make(map[uuid.UUID][]*models.TaskAttachment),
		users:       make(map[uuid.UUID]*models.User),
	}
}

func (s *store) addTask(task *models.Task, allowed ...uuid.UUID) {
	s.tasks[task.ID] = task
	s.taskAccess[task.ID] = make(map[uuid.UUID]bool)
	for _, id := range allowed {
		s.taskAccess[task.ID][id] = true
	}
}

func copyTask(t *models.Task) *models.Task {
	c := *t
	return &c
}

type fakeTaskRepo struct{ s *store }

func (r *fakeTaskRepo) Create(ctx context.Context, task *models.Task, entry *models.TaskHistory) error {
	r.s.tasks[task.ID] = copyTask(task)
	r.s.history[task.ID] = append(r.s.history[task.ID], entry)
	return nil
}

func (r *fakeTaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, ok := r.s.tasks[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return copyTask(task), nil
}

func (r *fakeTaskRepo) GetUserTask(ctx context.Context, taskID, userID uuid.UUID) (*models.Task, error) {
	task, ok := r.s.tasks[taskID]
	if !ok || !r.s.taskAccess[taskID][userID] {
		return nil, gorm.ErrRecordNotFound
	}
	return copyTask(task), nil
}

func (r *fakeTaskRepo) ListProjectTasks(ctx context.Context, projectID uuid.UUID) ([]*models.Task, error) {
	var out []*models.Task
	for _, task := range r.s.tasks {
		if task.ProjectID == projectID {
			out = append(out, copyTask(task))
		}
	}
	return out, nil
}

func (r *fakeTaskRepo) SaveWithHistory(ctx context.Context, task *models.Task, expectedVersion int, entries []*models.TaskHistory) error {
	if r.s.saveErr != nil {
		return r.s.saveErr
	}
	stored, ok := r.s.tasks[task.ID]
	if !ok || stored.Version != expectedVersion {
		return repositories.ErrVersionConflict
	}
	saved := copyTask(task)
	saved.Version = expectedVersion + 1
	r.s.tasks[task.ID] = saved
	r.s.history[task.ID] = append(r.s.history[task.ID], entries...)
	return nil
}

func (r *fakeTaskRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.s.tasks, id)
	return nil
}

func (r *fakeTaskRepo) ListOverdue(ctx context.Context, before time.Time) ([]*models.Task, error) {
	var out []*models.Task
	for _, task := range r.s.tasks {
		if task.DueDate != nil && task.DueDate.Before(before) && task.Status != models.TaskStatusDone {
			out = append(out, copyTask(task))
		}
	}
	return out, nil
}

type fakeHistoryRepo struct{ s *store }

func (r *fakeHistoryRepo) ListUserTaskHistory(ctx context.Context, taskID, userID uuid.UUID) ([]*models.TaskHistory, error) {
	if !r.s.taskAccess[taskID][userID] {
		return nil, nil
	}
	entries := r.s.history[taskID]
	out := make([]*models.TaskHistory, len(entries))
	for i := range entries {
		out[i] = entries[len(entries)-1-i]
	}
	return out, nil
}

type fakeProjectRepo struct{ s *store }

func (r *fakeProjectRepo) Create(ctx context.Context, project *models.Project, owner *models.ProjectMember) error {
	r.s.projects[project.ID] = project
	if r.s.projAccess[project.ID] == nil {
		r.s.projAccess[project.ID] = make(map[uuid.UUID]bool)
	}
	r.s.projAccess[project.ID][owner.UserID] = true
	return nil
}

func (r *fakeProjectRepo) GetUserProject(ctx context.Context, projectID, userID uuid.UUID) (*models.Project, error) {
	project, ok := r.s.projects[projectID]
	if !ok || !r.s.projAccess[projectID][userID] {
		return nil, gorm.ErrRecordNotFound
	}
	return project, nil
}

func (r *fakeProjectRepo) GetOwnerProject(ctx context.Context, projectID, userID uuid.UUID) (*models.Project, error) {
	project, ok := r.s.projects[projectID]
	if !ok || project.OwnerID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return project, nil
}

func (r *fakeProjectRepo) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	for _, p := range r.s.projects {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProjectRepo) ListUserProjects(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	var out []*models.Project
	for id, p := range r.s.projects {
		if r.s.projAccess[id][userID] {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakeProjectRepo) Update(ctx context.Context, id uuid.UUID, project *models.Project) error {
	r.s.projects[id] = project
	return nil
}

func (r *fakeProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.s.projects, id)
	return nil
}

func (r *fakeProjectRepo) AddMember(ctx context.Context, member *models.ProjectMember) error {
	if r.s.projAccess[member.ProjectID] == nil {
		r.s.projAccess[member.ProjectID] = make(map[uuid.UUID]bool)
	}
	r.s.projAccess[member.ProjectID][member.UserID] = true
	return nil
}

func (r *fakeProjectRepo) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	delete(r.s.projAccess[projectID], userID)
	return nil
}

func (r *fakeProjectRepo) GetMember(ctx context.Context, projectID, userID uuid.UUID) (*models.ProjectMember, error) {
	if !r.s.projAccess[projectID][userID] {
		return nil, gorm.ErrRecordNotFound
	}
	return &models.ProjectMember{ProjectID: projectID, UserID: userID}, nil
}

func (r *fakeProjectRepo) ListMembers(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectMember, error) {
	var out []*models.ProjectMember
	for userID := range r.s.projAccess[projectID] {
		out = append(out, &models.ProjectMember{ProjectID: projectID, UserID: userID})
	}
	return out, nil
}

type fakeCommentRepo struct{ s *store }

func (r *fakeCommentRepo) Create(ctx context.Context, comment *models.TaskComment, entry *models.TaskHistory) error {
	r.s.comments[comment.TaskID] = append(r.s.comments[comment.TaskID], comment)
	r.s.history[comment.TaskID] = append(r.s.history[comment.TaskID], entry)
	return nil
}

func (r *fakeCommentRepo) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.TaskComment, error) {
	return r.s.comments[taskID], nil
}

type fakeAttachmentRepo struct{ s *store }

func (r *fakeAttachmentRepo) Create(ctx context.Context, attachment *models.TaskAttachment, entry *models.TaskHistory) error {
	r.s.attachments[attachment.TaskID] = append(r.s.attachments[attachment.TaskID], attachment)
	r.s.history[attachment.TaskID] = append(r.s.history[attachment.TaskID], entry)
	return nil
}

func (r *fakeAttachmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.TaskAttachment, error) {
	for _, list := range r.s.attachments {
		for _, a := range list {
			if a.ID == id {
				return a, nil
			}
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAttachmentRepo) ListByTask(ctx context.Context, taskID uuid.UUID) ([]*models.TaskAttachment, error) {
	return r.s.attachments[taskID], nil
}

type fakeUserRepo struct{ s *store }

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	r.s.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := r.s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	for _, u := range r.s.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) Update(ctx context.Context, id uuid.UUID, user *models.User) error {
	r.s.users[id] = user
	return nil
}

type fakeStorage struct {
	blobs map[string][]byte
}

func (f *fakeStorage) UploadFile(file io.Reader, path string, contentType string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	if f.blobs == nil {
		f.blobs = make(map[string][]byte)
	}
	f.blobs[path] = data
	return "http://files.test/" + path, nil
}

func (f *fakeStorage) DeleteFile(path string) error {
	delete(f.blobs, path)
	return nil
}

func (f *fakeStorage) GetFileContent(path string) (io.ReadCloser, string, error) {
	data, ok := f.blobs[path]
	if !ok {
		return nil, "", errors.New("not found")
	}
	return io.NopCloser(bytes.NewReader(data)), "application/octet-stream", nil
}

func (f *fakeStorage) GetFileURL(path string) string { return "http://files.test/" + path }
func (f *fakeStorage) GetProviderName() string       { return "fake" }

func newTestService(s *store) services.TaskService {
	return NewTaskService(
		&fakeTaskRepo{s},
		&fakeHistoryRepo{s},
		&fakeProjectRepo{s},
		&fakeCommentRepo{s},
		&fakeAttachmentRepo{s},
		&fakeUserRepo{s},
		&fakeStorage{},
		nil,
		nil,
	)
}

func seedTask(s *store, userID uuid.UUID) *models.Task {
	task := &models.Task{
		ID:           uuid.New(),
		Title:        "Write report",
		Description:  "quarterly numbers",
		Status:       models.TaskStatusTodo,
		Priority:     models.TaskPriorityMedium,
		ProjectID:    uuid.New(),
		CreatedBy:    userID,
		Version:      1,
		Tags:         models.TagList{},
		CustomFields: models.CustomFieldMap{},
	}
	s.addTask(task, userID)
	return task
}

func strp(s string) *string { return &s }

func TestPatchTaskAppliesOnlyProvidedFields(t *testing.T) {
	s := newStore()
	userID := uuid.New()
	task := seedTask(s, userID)
	svc := newTestService(s)

	resp, err := svc.PatchTask(context.Background(), task.ID, userID, &dto.PatchTaskRequest{
		Status: strp("IN_PROGRESS"),
	})
	if err != nil {
		t.Fatalf("PatchTask: %v", err)
	}

	if resp.Status != "IN_PROGRESS" {
		t.Errorf("status = %q, want IN_PROGRESS", resp.Status)
	}
	if resp.Title != "Write report" {
		t.Errorf("title = %q, should be untouched", resp.Title)
	}
	if resp.Description != "quarterly numbers" {
		t.Errorf("description = %q, should be untouched", resp.Description)
	}
	if resp.Version != 2 {
		t.Errorf("version = %d, want 2", resp.Version)
	}
	if resp.LastEditedBy == nil || *resp.LastEditedBy != userID {
		t.Errorf("lastEditedBy = %v, want %v", resp.LastEditedBy, userID)
	}

	entries := s.history[task.ID]
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 history entry, got %d", len(entries))
	}
	if entries[0].FieldName != "status" {
		t.Errorf("entry field = %q, want status", entries[0].FieldName)
	}
	if entries[0].Description != "Changed status from 'TODO' to 'IN_PROGRESS'" {
		t.Errorf("entry description = %q", entries[0].Description)
	}
}

func TestPatchTaskIdenticalValueWritesNoHistory(t *testing.T) {
	s := newStore()
	userID := uuid.New()
	task := seedTask(s, userID)
	svc := newTestService(s)

	// the stored status is already TODO
	if _, err := svc.PatchTask(context.Background(), task.ID, userID, &dto.PatchTaskRequest{
		Status: strp("TODO"),
	}); err != nil {
		t.Fatalf("PatchTask: %v", err)
	}

	if got := len(s.history[task.ID]); got != 0 {
		t.Errorf("expected no history entries, got %d", got)
	}
}

func TestPatchTaskDeniedLooksLikeMissing(t *testing.T) {
	s := newStore()
	owner := uuid.New()
	stranger := uuid.New()
	task := seedTask(s, owner)
	svc := newTestService(s)

	_, err := svc.PatchTask(context.Background(), task.ID, stranger, &dto.PatchTaskRequest{
		Status: strp("DONE"),
	})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}

	_, err = svc.PatchTask(context.Background(), uuid.New(), owner, &dto.PatchTaskRequest{
		Status: strp("DONE"),
	})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("missing task err = %v, want ErrNotFound", err)
	}
}

func TestPatchTaskVersionConflict(t *testing.T) {
	s := newStore()
	userID := uuid.New()
	task := seedTask(s, userID)
	s.saveErr = repositories.ErrVersionConflict
	svc := newTestService(s)

	_, err := svc.PatchTask(context.Background(), task.ID, userID, &dto.PatchTaskRequest{
		Status: strp("DONE"),
	})
	if !errors.Is(err, repositories.ErrVersionConflict) {
		t.Fatalf("err = %v, want ErrVersionConflict", err)
	}
}

func TestPatchTaskLenientDates(t *testing.T) {
	s := newStore()
	userID := uuid.New()
	svc := newTestService(s)

	tests := []struct {
		name    string
		value   string
		wantSet bool
	}{
		{"rfc3339", "2025-06-01T09:00:00Z", true},
		{"local datetime", "2025-06-01T09:00:00", true},
		{"garbage ignored", "next tuesday", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := seedTask(s, userID)
			resp, err := svc.PatchTask(context.Background(), task.ID, userID, &dto.PatchTaskRequest{
				DueDate: strp(tt.value),
			})
			if err != nil {
				t.Fatalf("PatchTask: %v", err)
			}
			if tt.wantSet && resp.DueDate == nil {
				t.Error("dueDate should be set")
			}
			if !tt.wantSet && resp.DueDate != nil {
				t.Errorf("dueDate = %v, unparsable value should be ignored", resp.DueDate)
			}
		})
	}
}

func TestUpdateTaskRecordsPerFieldHistory(t *testing.T) {
	s := newStore()
	userID := uuid.New()
	task := seedTask(s, userID)
	svc := newTestService(s)

	resp, err := svc.UpdateTask(context.Background(), task.ID, userID, &dto.UpdateTaskRequest{
		Title:       "Write annual report",
		Description: "quarterly numbers",
		Status:      "DONE",
		Priority:    "MEDIUM",
	})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}
	if resp.Version != 2 {
		t.Errorf("version = %d, want 2", resp.Version)
	}

	entries := s.history[task.ID]
	if len(entries) != 2 {
		t.Fatalf("expected 2 history entries, got %d", len(entries))
	}
	fields := map[string]bool{}
	for _, e := range entries {
		fields[e.FieldName] = true
	}
	if !fields["title"] || !fields["status"] {
		t.Errorf("changed fields = %v, want title and status", fields)
	}
}

func TestBulkUpdateIsolatesFailures(t *testing.T) {
	s := newStore()
	userID := uuid.New()
	taskA := seedTask(s, userID)
	taskB := seedTask(s, uuid.New()) // different owner, denied
	taskC := seedTask(s, userID)
	svc := newTestService(s)

	resp, err := svc.BulkUpdateTasks(context.Background(), userID, &dto.BulkUpdateRequest{
		TaskIDs: []uuid.UUID{taskA.ID, taskB.ID, taskC.ID},
		Updates: dto.PatchTaskRequest{Status: strp("DONE")},
	})
	if err != nil {
		t.Fatalf("BulkUpdateTasks: %v", err)
	}

	if resp.TotalRequested != 3 || resp.TotalSuccessful != 2 || resp.TotalFailed != 1 {
		t.Errorf("totals = %d/%d/%d, want 3/2/1",
			resp.TotalRequested, resp.TotalSuccessful, resp.TotalFailed)
	}
	if len(resp.FailedUpdates) != 1 {
		t.Fatalf("failed updates = %d, want 1", len(resp.FailedUpdates))
	}
	if resp.FailedUpdates[0].TaskID != taskB.ID {
		t.Errorf("failed task = %v, want %v", resp.FailedUpdates[0].TaskID, taskB.ID)
	}
	if resp.FailedUpdates[0].ErrorCode != "UPDATE_FAILED" {
		t.Errorf("error code = %q, want UPDATE_FAILED", resp.FailedUpdates[0].ErrorCode)
	}

	// successful tasks actually changed
	if s.tasks[taskA.ID].Status != models.TaskStatusDone {
		t.Error("task A should be DONE")
	}
	if s.tasks[taskC.ID].Status != models.TaskStatusDone {
		t.Error("task C should be DONE")
	}
	if s.tasks[taskB.ID].Status != models.TaskStatusTodo {
		t.Error("task B should be untouched")
	}
}

func TestCreateTaskWritesCreateEntry(t *testing.T) {
	s := newStore()
	userID := uuid.New()
	projectID := uuid.New()
	s.projects[projectID] = &models.Project{ID: projectID, OwnerID: userID}
	s.projAccess[projectID] = map[uuid.UUID]bool{userID: true}
	svc := newTestService(s)

	resp, err := svc.CreateTask(context.Background(), projectID, userID, &dto.CreateTaskRequest{
		Title: "New task",
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	if resp.Status != "TODO" {
		t.Errorf("status = %q, want TODO", resp.Status)
	}
	if resp.Version != 1 {
		t.Errorf("version = %d, want 1", resp.Version)
	}

	entries := s.history[resp.ID]
	if len(entries) != 1 {
		t.Fatalf("expected 1 history entry, got %d", len(entries))
	}
	if entries[0].ChangeType != models.ChangeTypeCreate {
		t.Errorf("change type = %q, want CREATE", entries[0].ChangeType)
	}
}

func TestGetTaskHistoryDenied(t *testing.T) {
	s := newStore()
	owner := uuid.New()
	task := seedTask(s, owner)
	svc := newTestService(s)

	_, err := svc.GetTaskHistory(context.Background(), task.ID, uuid.New())
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestAddCommentWritesHistoryEntry(t *testing.T) {
	s := newStore()
	userID := uuid.New()
	task := seedTask(s, userID)
	s.users[userID] = &models.User{ID: userID, Username: "alice"}
	svc := newTestService(s)

	comment, err := svc.AddComment(context.Background(), task.ID, userID, &dto.CreateCommentRequest{
		Body: "looks good",
	})
	if err != nil {
		t.Fatalf("AddComment: %v", err)
	}
	if comment.Body != "looks good" {
		t.Errorf("body = %q", comment.Body)
	}

	entries := s.history[task.ID]
	if len(entries) != 1 || entries[0].ChangeType != models.ChangeTypeCommentAdded {
		t.Fatalf("expected one COMMENT_ADDED entry, got %+v", entries)
	}
}

func TestAddAttachmentStoresBlobAndHistory(t *testing.T) {
	s := newStore()
	userID := uuid.New()
	task := seedTask(s, userID)
	s.users[userID] = &models.User{ID: userID, Username: "alice"}
	svc := newTestService(s)

	content := strings.NewReader("report body")
	att, err := svc.AddAttachment(context.Background(), task.ID, userID, "report.pdf", "application/pdf", 11, content)
	if err != nil {
		t.Fatalf("AddAttachment: %v", err)
	}
	if att.FileName != "report.pdf" {
		t.Errorf("fileName = %q", att.FileName)
	}
	if att.URL == "" {
		t.Error("url should be set")
	}

	entries := s.history[task.ID]
	if len(entries) != 1 || entries[0].ChangeType != models.ChangeTypeAttachmentAdded {
		t.Fatalf("expected one ATTACHMENT_ADDED entry, got %+v", entries)
	}
}

func TestDownloadAttachment(t *testing.T) {
	s := newStore()
	userID := uuid.New()
	task := seedTask(s, userID)
	otherTask := seedTask(s, userID)
	svc := newTestService(s)

	att, err := svc.AddAttachment(context.Background(), task.ID, userID,
		"report.pdf", "application/pdf", 11, strings.NewReader("report body"))
	if err != nil {
		t.Fatalf("AddAttachment: %v", err)
	}

	content, meta, err := svc.DownloadAttachment(context.Background(), task.ID, att.ID, userID)
	if err != nil {
		t.Fatalf("DownloadAttachment: %v", err)
	}
	defer content.Close()

	data, err := io.ReadAll(content)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "report body" {
		t.Errorf("content = %q", data)
	}
	if meta.FileName != "report.pdf" || meta.ContentType != "application/pdf" {
		t.Errorf("meta = %q/%q", meta.FileName, meta.ContentType)
	}

	if _, _, err := svc.DownloadAttachment(context.Background(), task.ID, att.ID, uuid.New()); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("stranger err = %v, want ErrNotFound", err)
	}
	if _, _, err := svc.DownloadAttachment(context.Background(), otherTask.ID, att.ID, userID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("wrong task err = %v, want ErrNotFound", err)
	}
	if _, _, err := svc.DownloadAttachment(context.Background(), task.ID, uuid.New(), userID); !errors.Is(err, services.ErrNotFound) {
		t.Errorf("missing attachment err = %v, want ErrNotFound", err)
	}
}

func TestSweepOverdueCountsOpenTasks(t *testing.T) {
	s := newStore()
	userID := uuid.New()

	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(24 * time.Hour)

	overdue := seedTask(s, userID)
	overdue.DueDate = &past

	done := seedTask(s, userID)
	done.DueDate = &past
	done.Status = models.TaskStatusDone

	upcoming := seedTask(s, userID)
	upcoming.DueDate = &future

	svc := newTestService(s)

	count, err := svc.SweepOverdue(context.Background())
	if err != nil {
		t.Fatalf("SweepOverdue: %v", err)
	}
	if count != 1 {
		t.Errorf("count = %d, want 1 (only the open overdue task)", count)
	}
}
