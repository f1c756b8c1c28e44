package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"taskhub/domain/dto"
	"taskhub/domain/services"
	"taskhub/pkg/logger"
	"taskhub/pkg/utils"
)

type ProjectHandler struct {
	projectService services.ProjectService
}

func NewProjectHandler(projectService services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

func (h *ProjectHandler) CreateProject(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	project, err := h.projectService.CreateProject(ctx, user.ID, &req)
	if err != nil {
		logger.ErrorContext(ctx, "Project creation failed", "error", err)
		return serviceErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, project)
}

func (h *ProjectHandler) GetProjects(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	projects, err := h.projectService.GetUserProjects(ctx, user.ID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, projects)
}

func (h *ProjectHandler) GetProject(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project id")
	}

	project, err := h.projectService.GetProject(ctx, projectID, user.ID)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, project)
}

func (h *ProjectHandler) UpdateProject(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project id")
	}

	var req dto.UpdateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	project, err := h.projectService.UpdateProject(ctx, projectID, user.ID, &req)
	if err != nil {
		return serviceErrorResponse(c, err)
	}

	return utils.SuccessResponse(c, project)
}

func (h *ProjectHandler) DeleteProject(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project id")
	}

	if err := h.projectService.DeleteProject(ctx, projectID, user.ID); err != nil {
		return serviceErrorResponse(c, err)
	}

	return utils.NoContentResponse(c)
}

func (h *ProjectHandler) AddMember(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project id")
	}

	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request body")
	}

	if err := utils.ValidateStruct(&req); err != nil {
		return utils.ValidationErrorResponse(c, utils.GetValidationErrors(err))
	}

	member, err := h.projectService.AddMember(ctx, projectID, user.ID, &req)
	if err != nil {
		logger.WarnContext(ctx, "Add member failed", "project_id", projectID, "error", err)
		switch {
		case errors.Is(err, services.ErrUserNotFound):
			return utils.NotFoundResponse(c, "User not found")
		case errors.Is(err, services.ErrAlreadyMember):
			return utils.ConflictResponse(c, err.Error())
		}
		return serviceErrorResponse(c, err)
	}

	return utils.CreatedResponse(c, member)
}

func (h *ProjectHandler) RemoveMember(c *fiber.Ctx) error {
	ctx := c.UserContext()

	user, err := utils.GetUserFromContext(c)
	if err != nil {
		return utils.UnauthorizedResponse(c, "")
	}

	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid project id")
	}

	memberUserID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return utils.BadRequestResponse(c, "Invalid user id")
	}

	if err := h.projectService.RemoveMember(ctx, projectID, memberUserID, user.ID); err != nil {
		if errors.Is(err, services.ErrCannotRemoveOwner) {
			return utils.ConflictResponse(c, err.Error())
		}
		return serviceErrorResponse(c, err)
	}

	return utils.NoContentResponse(c)
}
