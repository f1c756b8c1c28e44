package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateProjectRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type UpdateProjectRequest struct {
	Name        string `json:"name" validate:"omitempty,min=1,max=255"`
	Description string `json:"description" validate:"omitempty,max=2000"`
}

type AddMemberRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"omitempty,oneof=OWNER MEMBER"`
}

type ProjectMemberResponse struct {
	ID        uuid.UUID     `json:"id"`
	ProjectID uuid.UUID     `json:"projectId"`
	UserID    uuid.UUID     `json:"userId"`
	Role      string        `json:"role"`
	JoinedAt  time.Time     `json:"joinedAt"`
	User      *UserResponse `json:"user,omitempty"`
}

type ProjectResponse struct {
	ID          uuid.UUID               `json:"id"`
	Name        string                  `json:"name"`
	Slug        string                  `json:"slug"`
	Description string                  `json:"description"`
	OwnerID     uuid.UUID               `json:"ownerId"`
	Owner       *UserResponse           `json:"owner,omitempty"`
	Members     []ProjectMemberResponse `json:"members,omitempty"`
	Tasks       []TaskResponse          `json:"tasks,omitempty"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
}
