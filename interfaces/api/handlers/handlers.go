package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"taskhub/domain/repositories"
	"taskhub/domain/services"
	"taskhub/pkg/utils"
)

// Services contains all the services needed for handlers
type Services struct {
	UserService    services.UserService
	ProjectService services.ProjectService
	TaskService    services.TaskService
	JWTSecret      string
}

// Handlers contains all HTTP handlers
type Handlers struct {
	UserHandler    *UserHandler
	ProjectHandler *ProjectHandler
	TaskHandler    *TaskHandler
}

func NewHandlers(services *Services) *Handlers {
	return &Handlers{
		UserHandler:    NewUserHandler(services.UserService),
		ProjectHandler: NewProjectHandler(services.ProjectService),
		TaskHandler:    NewTaskHandler(services.TaskService),
	}
}

// serviceErrorResponse maps service errors to the response envelope.
// Denied access and missing rows share the same 404 on purpose.
func serviceErrorResponse(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return utils.NotFoundResponse(c, "Resource not found")
	case errors.Is(err, repositories.ErrVersionConflict):
		return utils.ConflictResponse(c, "Task was modified concurrently, retry with fresh data")
	default:
		return utils.InternalServerErrorResponse(c)
	}
}
