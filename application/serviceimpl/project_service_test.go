package serviceimpl

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"taskhub/domain/dto"
	"taskhub/domain/models"
	"taskhub/domain/services"
)

func newTestProjectService(s *store) services.ProjectService {
	return NewProjectService(&fakeProjectRepo{s}, &fakeTaskRepo{s}, &fakeUserRepo{s})
}

func TestCreateProjectSlugCollision(t *testing.T) {
	s := newStore()
	userID := uuid.New()
	s.users[userID] = &models.User{ID: userID, Username: "alice"}
	svc := newTestProjectService(s)

	first, err := svc.CreateProject(context.Background(), userID, &dto.CreateProjectRequest{Name: "Q1 Planning"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if first.Slug != "q1-planning" {
		t.Errorf("slug = %q, want q1-planning", first.Slug)
	}

	second, err := svc.CreateProject(context.Background(), userID, &dto.CreateProjectRequest{Name: "Q1 Planning"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if !strings.HasPrefix(second.Slug, "q1-planning-") {
		t.Errorf("second slug = %q, want q1-planning- prefix", second.Slug)
	}
	if second.Slug == first.Slug {
		t.Error("slugs must not collide")
	}
}

func TestAddMemberDuplicateRejected(t *testing.T) {
	s := newStore()
	owner := uuid.New()
	s.users[owner] = &models.User{ID: owner, Username: "alice"}
	member := uuid.New()
	s.users[member] = &models.User{ID: member, Username: "bob", Email: "bob@example.com"}
	svc := newTestProjectService(s)

	project, err := svc.CreateProject(context.Background(), owner, &dto.CreateProjectRequest{Name: "Roadmap"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	if _, err := svc.AddMember(context.Background(), project.ID, owner, &dto.AddMemberRequest{Email: "bob@example.com"}); err != nil {
		t.Fatalf("AddMember: %v", err)
	}
	_, err = svc.AddMember(context.Background(), project.ID, owner, &dto.AddMemberRequest{Email: "bob@example.com"})
	if !errors.Is(err, services.ErrAlreadyMember) {
		t.Fatalf("err = %v, want ErrAlreadyMember", err)
	}

	_, err = svc.AddMember(context.Background(), project.ID, owner, &dto.AddMemberRequest{Email: "nobody@example.com"})
	if !errors.Is(err, services.ErrUserNotFound) {
		t.Fatalf("err = %v, want ErrUserNotFound", err)
	}
}

func TestAddMemberRequiresOwner(t *testing.T) {
	s := newStore()
	owner := uuid.New()
	s.users[owner] = &models.User{ID: owner, Username: "alice"}
	svc := newTestProjectService(s)

	project, err := svc.CreateProject(context.Background(), owner, &dto.CreateProjectRequest{Name: "Roadmap"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	_, err = svc.AddMember(context.Background(), project.ID, uuid.New(), &dto.AddMemberRequest{Email: "bob@example.com"})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestRemoveMemberOwnerRejected(t *testing.T) {
	s := newStore()
	owner := uuid.New()
	s.users[owner] = &models.User{ID: owner, Username: "alice"}
	svc := newTestProjectService(s)

	project, err := svc.CreateProject(context.Background(), owner, &dto.CreateProjectRequest{Name: "Roadmap"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}

	if err := svc.RemoveMember(context.Background(), project.ID, owner, owner); !errors.Is(err, services.ErrCannotRemoveOwner) {
		t.Fatalf("err = %v, want ErrCannotRemoveOwner", err)
	}
}

func TestUpdateProjectNonOwnerDenied(t *testing.T) {
	s := newStore()
	owner := uuid.New()
	s.users[owner] = &models.User{ID: owner, Username: "alice"}
	member := uuid.New()
	s.users[member] = &models.User{ID: member, Username: "bob", Email: "bob@example.com"}
	svc := newTestProjectService(s)

	project, err := svc.CreateProject(context.Background(), owner, &dto.CreateProjectRequest{Name: "Roadmap"})
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	if _, err := svc.AddMember(context.Background(), project.ID, owner, &dto.AddMemberRequest{Email: "bob@example.com"}); err != nil {
		t.Fatalf("AddMember: %v", err)
	}

	_, err = svc.UpdateProject(context.Background(), project.ID, member, &dto.UpdateProjectRequest{Name: "Renamed"})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
