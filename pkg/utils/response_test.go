package utils

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

func perform(t *testing.T, handler fiber.Handler) (int, *Response) {
	t.Helper()

	app := fiber.New()
	app.Get("/", handler)

	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if len(body) == 0 {
		return resp.StatusCode, nil
	}

	var envelope Response
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.StatusCode, &envelope
}

func TestResponseEnvelope(t *testing.T) {
	tests := []struct {
		name       string
		handler    fiber.Handler
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "success",
			handler:    func(c *fiber.Ctx) error { return SuccessResponse(c, fiber.Map{"id": 1}) },
			wantStatus: fiber.StatusOK,
		},
		{
			name:       "created",
			handler:    func(c *fiber.Ctx) error { return CreatedResponse(c, fiber.Map{"id": 1}) },
			wantStatus: fiber.StatusCreated,
		},
		{
			name:       "not found default message",
			handler:    func(c *fiber.Ctx) error { return NotFoundResponse(c, "") },
			wantStatus: fiber.StatusNotFound,
			wantCode:   ErrCodeNotFound,
			wantMsg:    "Resource not found",
		},
		{
			name:       "conflict",
			handler:    func(c *fiber.Ctx) error { return ConflictResponse(c, "stale version") },
			wantStatus: fiber.StatusConflict,
			wantCode:   ErrCodeConflict,
			wantMsg:    "stale version",
		},
		{
			name:       "unauthorized default message",
			handler:    func(c *fiber.Ctx) error { return UnauthorizedResponse(c, "") },
			wantStatus: fiber.StatusUnauthorized,
			wantCode:   ErrCodeUnauthorized,
			wantMsg:    "Unauthorized",
		},
		{
			name:       "validation carries details",
			handler:    func(c *fiber.Ctx) error { return ValidationErrorResponse(c, map[string]string{"status": "bad"}) },
			wantStatus: fiber.StatusBadRequest,
			wantCode:   ErrCodeValidation,
			wantMsg:    "Validation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, envelope := perform(t, tt.handler)
			if status != tt.wantStatus {
				t.Fatalf("status = %d, want %d", status, tt.wantStatus)
			}
			if tt.wantCode == "" {
				if !envelope.Success || envelope.Error != nil {
					t.Errorf("envelope = %+v, want success without error", envelope)
				}
				return
			}
			if envelope.Success || envelope.Error == nil {
				t.Fatalf("envelope = %+v, want error payload", envelope)
			}
			if envelope.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", envelope.Error.Code, tt.wantCode)
			}
			if envelope.Error.Message != tt.wantMsg {
				t.Errorf("message = %q, want %q", envelope.Error.Message, tt.wantMsg)
			}
		})
	}
}

func TestNoContentResponse(t *testing.T) {
	status, envelope := perform(t, func(c *fiber.Ctx) error { return NoContentResponse(c) })
	if status != fiber.StatusNoContent {
		t.Fatalf("status = %d, want 204", status)
	}
	if envelope != nil {
		t.Errorf("body = %+v, want empty", envelope)
	}
}
