package serviceimpl

import (
	"context"
	"errors"
	"testing"

	"taskhub/domain/dto"
	"taskhub/domain/services"
	"taskhub/pkg/utils"
)

const testJWTSecret = "test-secret"

func newTestUserService(s *store) services.UserService {
	return NewUserService(&fakeUserRepo{s}, testJWTSecret)
}

func registerReq(email, username string) *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:     email,
		Username:  username,
		Password:  "correct horse battery",
		FirstName: "Alice",
		LastName:  "Doe",
	}
}

func TestRegisterAndLogin(t *testing.T) {
	s := newStore()
	svc := newTestUserService(s)

	user, err := svc.Register(context.Background(), registerReq("alice@example.com", "alice"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Password == "correct horse battery" {
		t.Error("password must be stored hashed")
	}
	if !user.IsActive {
		t.Error("new accounts should be active")
	}

	token, loggedIn, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Errorf("logged in user = %v, want %v", loggedIn.ID, user.ID)
	}

	identity, err := utils.ValidateTokenStringToUUID(token, testJWTSecret)
	if err != nil {
		t.Fatalf("ValidateTokenStringToUUID: %v", err)
	}
	if identity.ID != user.ID {
		t.Errorf("token user = %v, want %v", identity.ID, user.ID)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	s := newStore()
	svc := newTestUserService(s)

	if _, err := svc.Register(context.Background(), registerReq("alice@example.com", "alice")); err != nil {
		t.Fatalf("Register: %v", err)
	}

	tests := []struct {
		name string
		req  *dto.RegisterRequest
		want error
	}{
		{"same email", registerReq("alice@example.com", "alice2"), services.ErrEmailExists},
		{"same username", registerReq("alice2@example.com", "alice"), services.ErrUsernameExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tt.req)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoginFailures(t *testing.T) {
	s := newStore()
	svc := newTestUserService(s)

	user, err := svc.Register(context.Background(), registerReq("alice@example.com", "alice"))
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "wrong",
	}); err == nil || err.Error() != "invalid email or password" {
		t.Errorf("wrong password err = %v", err)
	}

	if _, _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "correct horse battery",
	}); err == nil || err.Error() != "invalid email or password" {
		t.Errorf("unknown email err = %v", err)
	}

	user.IsActive = false
	if _, _, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "alice@example.com",
		Password: "correct horse battery",
	}); err == nil || err.Error() != "account is disabled" {
		t.Errorf("disabled account err = %v", err)
	}
}
