package repositories

import (
	"context"

	"github.com/google/uuid"

	"taskhub/domain/models"
)

type ProjectRepository interface {
	// Create persists the project and its owner membership atomically.
	Create(ctx context.Context, project *models.Project, owner *models.ProjectMember) error

	// GetUserProject returns the project only when the user owns it or is a
	// member. A missing project and a denied one are indistinguishable.
	GetUserProject(ctx context.Context, projectID, userID uuid.UUID) (*models.Project, error)

	// GetOwnerProject returns the project only when the user owns it.
	GetOwnerProject(ctx context.Context, projectID, userID uuid.UUID) (*models.Project, error)

	GetBySlug(ctx context.Context, slug string) (*models.Project, error)
	ListUserProjects(ctx context.Context, userID uuid.UUID) ([]*models.Project, error)
	Update(ctx context.Context, id uuid.UUID, project *models.Project) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddMember(ctx context.Context, member *models.ProjectMember) error
	RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error
	GetMember(ctx context.Context, projectID, userID uuid.UUID) (*models.ProjectMember, error)
	ListMembers(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectMember, error)
}
