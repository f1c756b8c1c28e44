package services

import (
	"context"

	"github.com/google/uuid"

	"taskhub/domain/dto"
)

type ProjectService interface {
	CreateProject(ctx context.Context, userID uuid.UUID, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error)
	GetUserProjects(ctx context.Context, userID uuid.UUID) ([]dto.ProjectResponse, error)
	GetProject(ctx context.Context, projectID, userID uuid.UUID) (*dto.ProjectResponse, error)
	UpdateProject(ctx context.Context, projectID, userID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error)
	DeleteProject(ctx context.Context, projectID, userID uuid.UUID) error
	AddMember(ctx context.Context, projectID, userID uuid.UUID, req *dto.AddMemberRequest) (*dto.ProjectMemberResponse, error)
	RemoveMember(ctx context.Context, projectID, memberUserID, userID uuid.UUID) error
}
