package postgres

import (
	"context"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"taskhub/domain/models"
	"taskhub/domain/repositories"
)

// userProjectFilter restricts a projects query to rows the user owns or is
// a member of.
const userProjectFilter = `projects.owner_id = ? OR EXISTS (
	SELECT 1 FROM project_members pm
	WHERE pm.project_id = projects.id AND pm.user_id = ?
)`

type ProjectRepositoryImpl struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) repositories.ProjectRepository {
	return &ProjectRepositoryImpl{db: db}
}

func (r *ProjectRepositoryImpl) Create(ctx context.Context, project *models.Project, owner *models.ProjectMember) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}
		owner.ProjectID = project.ID
		return tx.Create(owner).Error
	})
}

func (r *ProjectRepositoryImpl) GetUserProject(ctx context.Context, projectID, userID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Where("projects.id = ?", projectID).
		Where(userProjectFilter, userID, userID).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) GetOwnerProject(ctx context.Context, projectID, userID uuid.UUID) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", projectID, userID).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) GetBySlug(ctx context.Context, slug string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *ProjectRepositoryImpl) ListUserProjects(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.WithContext(ctx).
		Where(userProjectFilter, userID, userID).
		Order("created_at DESC").
		Find(&projects).Error
	return projects, err
}

func (r *ProjectRepositoryImpl) Update(ctx context.Context, id uuid.UUID, project *models.Project) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Updates(project).Error
}

func (r *ProjectRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectMember{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&models.Project{}).Error
	})
}

func (r *ProjectRepositoryImpl) AddMember(ctx context.Context, member *models.ProjectMember) error {
	return r.db.WithContext(ctx).Create(member).Error
}

func (r *ProjectRepositoryImpl) RemoveMember(ctx context.Context, projectID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Delete(&models.ProjectMember{}).Error
}

func (r *ProjectRepositoryImpl) GetMember(ctx context.Context, projectID, userID uuid.UUID) (*models.ProjectMember, error) {
	var member models.ProjectMember
	err := r.db.WithContext(ctx).
		Where("project_id = ? AND user_id = ?", projectID, userID).
		First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *ProjectRepositoryImpl) ListMembers(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectMember, error) {
	var members []*models.ProjectMember
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("project_id = ?", projectID).
		Order("joined_at ASC").
		Find(&members).Error
	return members, err
}
