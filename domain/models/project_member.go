package models

import (
	"time"

	"github.com/google/uuid"
)

// MemberRole controls what a user may do inside a project.
type MemberRole string

const (
	MemberRoleOwner  MemberRole = "OWNER"
	MemberRoleMember MemberRole = "MEMBER"
)

func IsValidMemberRole(role string) bool {
	return role == string(MemberRoleOwner) || role == string(MemberRoleMember)
}

type ProjectMember struct {
	ID        uuid.UUID  `gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	ProjectID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_project_members_project_user"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_project_members_project_user"`
	Role      MemberRole `gorm:"size:20;not null;default:'MEMBER'"`
	JoinedAt  time.Time  `gorm:"autoCreateTime"`
	User      User       `gorm:"foreignKey:UserID"`
}

func (ProjectMember) TableName() string {
	return "project_members"
}
