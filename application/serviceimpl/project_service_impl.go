package serviceimpl

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"

	"taskhub/domain/dto"
	"taskhub/domain/models"
	"taskhub/domain/repositories"
	"taskhub/domain/services"
	"taskhub/pkg/logger"
	"taskhub/pkg/utils"
)

type ProjectServiceImpl struct {
	projectRepo repositories.ProjectRepository
	taskRepo    repositories.TaskRepository
	userRepo    repositories.UserRepository
}

func NewProjectService(projectRepo repositories.ProjectRepository, taskRepo repositories.TaskRepository, userRepo repositories.UserRepository) services.ProjectService {
	return &ProjectServiceImpl{
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
		userRepo:    userRepo,
	}
}

func (s *ProjectServiceImpl) CreateProject(ctx context.Context, userID uuid.UUID, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	project := &models.Project{
		ID:          uuid.New(),
		Name:        req.Name,
		Slug:        s.uniqueSlug(ctx, req.Name),
		Description: req.Description,
		OwnerID:     userID,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	owner := &models.ProjectMember{
		ID:     uuid.New(),
		UserID: userID,
		Role:   models.MemberRoleOwner,
	}

	if err := s.projectRepo.Create(ctx, project, owner); err != nil {
		logger.ErrorContext(ctx, "Failed to create project", "name", req.Name, "error", err)
		return nil, err
	}

	logger.InfoContext(ctx, "Project created", "project_id", project.ID, "slug", project.Slug, "owner_id", userID)
	return s.assemble(ctx, project)
}

func (s *ProjectServiceImpl) GetUserProjects(ctx context.Context, userID uuid.UUID) ([]dto.ProjectResponse, error) {
	projects, err := s.projectRepo.ListUserProjects(ctx, userID)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list projects", "user_id", userID, "error", err)
		return nil, err
	}

	out := make([]dto.ProjectResponse, len(projects))
	for i, p := range projects {
		out[i] = *dto.ProjectToProjectResponse(p, nil, nil)
	}
	return out, nil
}

func (s *ProjectServiceImpl) GetProject(ctx context.Context, projectID, userID uuid.UUID) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.GetUserProject(ctx, projectID, userID)
	if err != nil {
		return nil, services.ErrNotFound
	}
	return s.assemble(ctx, project)
}

func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, projectID, userID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	project, err := s.projectRepo.GetOwnerProject(ctx, projectID, userID)
	if err != nil {
		logger.WarnContext(ctx, "Project not found for update", "project_id", projectID, "user_id", userID)
		return nil, services.ErrNotFound
	}

	if req.Name != "" {
		project.Name = req.Name
	}
	if req.Description != "" {
		project.Description = req.Description
	}
	project.UpdatedAt = time.Now()

	if err := s.projectRepo.Update(ctx, projectID, project); err != nil {
		logger.ErrorContext(ctx, "Failed to update project", "project_id", projectID, "error", err)
		return nil, err
	}
	return s.assemble(ctx, project)
}

func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, projectID, userID uuid.UUID) error {
	if _, err := s.projectRepo.GetOwnerProject(ctx, projectID, userID); err != nil {
		logger.WarnContext(ctx, "Project not found for deletion", "project_id", projectID, "user_id", userID)
		return services.ErrNotFound
	}

	if err := s.projectRepo.Delete(ctx, projectID); err != nil {
		logger.ErrorContext(ctx, "Failed to delete project", "project_id", projectID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Project deleted", "project_id", projectID, "user_id", userID)
	return nil
}

func (s *ProjectServiceImpl) AddMember(ctx context.Context, projectID, userID uuid.UUID, req *dto.AddMemberRequest) (*dto.ProjectMemberResponse, error) {
	if _, err := s.projectRepo.GetOwnerProject(ctx, projectID, userID); err != nil {
		return nil, services.ErrNotFound
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		logger.WarnContext(ctx, "Member email not found", "email", req.Email)
		return nil, services.ErrUserNotFound
	}

	if existing, err := s.projectRepo.GetMember(ctx, projectID, user.ID); err == nil && existing != nil {
		return nil, services.ErrAlreadyMember
	}

	member := &models.ProjectMember{
		ID:        uuid.New(),
		ProjectID: projectID,
		UserID:    user.ID,
		Role:      models.MemberRoleMember,
	}
	if req.Role != "" {
		member.Role = models.MemberRole(req.Role)
	}

	if err := s.projectRepo.AddMember(ctx, member); err != nil {
		logger.ErrorContext(ctx, "Failed to add member", "project_id", projectID, "user_id", user.ID, "error", err)
		return nil, err
	}

	member.User = *user
	logger.InfoContext(ctx, "Member added", "project_id", projectID, "user_id", user.ID, "role", member.Role)
	return dto.MemberToMemberResponse(member), nil
}

func (s *ProjectServiceImpl) RemoveMember(ctx context.Context, projectID, memberUserID, userID uuid.UUID) error {
	project, err := s.projectRepo.GetOwnerProject(ctx, projectID, userID)
	if err != nil {
		return services.ErrNotFound
	}

	if memberUserID == project.OwnerID {
		return services.ErrCannotRemoveOwner
	}

	if _, err := s.projectRepo.GetMember(ctx, projectID, memberUserID); err != nil {
		return services.ErrNotFound
	}

	if err := s.projectRepo.RemoveMember(ctx, projectID, memberUserID); err != nil {
		logger.ErrorContext(ctx, "Failed to remove member", "project_id", projectID, "user_id", memberUserID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Member removed", "project_id", projectID, "user_id", memberUserID)
	return nil
}

// uniqueSlug derives a URL slug from the project name, suffixing a random
// string when the plain slug is already taken.
func (s *ProjectServiceImpl) uniqueSlug(ctx context.Context, name string) string {
	base := slug.Make(name)
	if _, err := s.projectRepo.GetBySlug(ctx, base); err != nil {
		return base
	}
	return base + "-" + utils.GenerateRandomString(6)
}

func (s *ProjectServiceImpl) assemble(ctx context.Context, project *models.Project) (*dto.ProjectResponse, error) {
	members, err := s.projectRepo.ListMembers(ctx, project.ID)
	if err != nil {
		return nil, err
	}
	tasks, err := s.taskRepo.ListProjectTasks(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	resp := dto.ProjectToProjectResponse(project, members, tasks)
	if resp.Owner == nil {
		if owner, err := s.userRepo.GetByID(ctx, project.OwnerID); err == nil {
			resp.Owner = dto.UserToUserResponse(owner)
		}
	}
	return resp, nil
}
