package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskhub/interfaces/api/handlers"
)

func SetupProjectRoutes(api fiber.Router, h *handlers.Handlers, auth fiber.Handler) {
	projects := api.Group("/projects")
	projects.Use(auth)

	projects.Post("/", h.ProjectHandler.CreateProject)
	projects.Get("/", h.ProjectHandler.GetProjects)
	projects.Get("/:id", h.ProjectHandler.GetProject)
	projects.Put("/:id", h.ProjectHandler.UpdateProject)
	projects.Delete("/:id", h.ProjectHandler.DeleteProject)

	projects.Post("/:id/members", h.ProjectHandler.AddMember)
	projects.Delete("/:id/members/:userId", h.ProjectHandler.RemoveMember)
}
