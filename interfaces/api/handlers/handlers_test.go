package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskhub/domain/dto"
	"taskhub/domain/models"
	"taskhub/domain/services"
	"taskhub/pkg/utils"
)

type stubUserService struct {
	registerErr error
}

func (s *stubUserService) Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return &models.User{ID: uuid.New(), Email: req.Email, Username: req.Username, IsActive: true}, nil
}

func (s *stubUserService) Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error) {
	return "", nil, services.ErrUserNotFound
}

func (s *stubUserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return nil, services.ErrUserNotFound
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	return nil, services.ErrUserNotFound
}

func (s *stubUserService) GenerateJWT(user *models.User) (string, error) {
	return "token", nil
}

type stubProjectService struct {
	addMemberErr    error
	removeMemberErr error
}

func (s *stubProjectService) CreateProject(ctx context.Context, userID uuid.UUID, req *dto.CreateProjectRequest) (*dto.ProjectResponse, error) {
	return &dto.ProjectResponse{ID: uuid.New(), Name: req.Name}, nil
}

func (s *stubProjectService) GetUserProjects(ctx context.Context, userID uuid.UUID) ([]dto.ProjectResponse, error) {
	return nil, nil
}

func (s *stubProjectService) GetProject(ctx context.Context, projectID, userID uuid.UUID) (*dto.ProjectResponse, error) {
	return nil, services.ErrNotFound
}

func (s *stubProjectService) UpdateProject(ctx context.Context, projectID, userID uuid.UUID, req *dto.UpdateProjectRequest) (*dto.ProjectResponse, error) {
	return nil, services.ErrNotFound
}

func (s *stubProjectService) DeleteProject(ctx context.Context, projectID, userID uuid.UUID) error {
	return services.ErrNotFound
}

func (s *stubProjectService) AddMember(ctx context.Context, projectID, userID uuid.UUID, req *dto.AddMemberRequest) (*dto.ProjectMemberResponse, error) {
	if s.addMemberErr != nil {
		return nil, s.addMemberErr
	}
	return &dto.ProjectMemberResponse{ID: uuid.New(), ProjectID: projectID}, nil
}

func (s *stubProjectService) RemoveMember(ctx context.Context, projectID, memberUserID, userID uuid.UUID) error {
	return s.removeMemberErr
}

func withTestUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("user", &utils.UserContext{ID: uuid.New(), Username: "alice", Email: "alice@example.com"})
		return c.Next()
	}
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestRegisterDuplicateMapsToConflict(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"duplicate email", services.ErrEmailExists, fiber.StatusConflict},
		{"duplicate username", services.ErrUsernameExists, fiber.StatusConflict},
		{"success", nil, fiber.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewUserHandler(&stubUserService{registerErr: tt.err})
			app := fiber.New()
			app.Post("/auth/register", h.Register)

			body := `{"email":"alice@example.com","username":"alice1","password":"longenough","firstName":"Alice","lastName":"Doe"}`
			resp, err := app.Test(jsonRequest("POST", "/auth/register", body))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestAddMemberErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"already a member", services.ErrAlreadyMember, fiber.StatusConflict},
		{"unknown email", services.ErrUserNotFound, fiber.StatusNotFound},
		{"project hidden", services.ErrNotFound, fiber.StatusNotFound},
		{"success", nil, fiber.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewProjectHandler(&stubProjectService{addMemberErr: tt.err})
			app := fiber.New()
			app.Post("/projects/:id/members", withTestUser(), h.AddMember)

			target := "/projects/" + uuid.NewString() + "/members"
			resp, err := app.Test(jsonRequest("POST", target, `{"email":"bob@example.com"}`))
			if err != nil {
				t.Fatalf("request: %v", err)
			}
			if resp.StatusCode != tt.wantStatus {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.wantStatus)
			}
		})
	}
}

func TestRemoveOwnerMapsToConflict(t *testing.T) {
	h := NewProjectHandler(&stubProjectService{removeMemberErr: services.ErrCannotRemoveOwner})
	app := fiber.New()
	app.Delete("/projects/:id/members/:userId", withTestUser(), h.RemoveMember)

	target := "/projects/" + uuid.NewString() + "/members/" + uuid.NewString()
	resp, err := app.Test(httptest.NewRequest("DELETE", target, nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if resp.StatusCode != fiber.StatusConflict {
		t.Errorf("status = %d, want 409", resp.StatusCode)
	}
}
