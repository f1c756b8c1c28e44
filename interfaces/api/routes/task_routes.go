package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskhub/interfaces/api/handlers"
)

func SetupTaskRoutes(api fiber.Router, h *handlers.Handlers, auth fiber.Handler) {
	tasks := api.Group("/tasks")
	tasks.Use(auth)

	// literal segments must register before /:id
	tasks.Post("/projects/:projectId", h.TaskHandler.CreateTask)
	tasks.Get("/projects/:projectId", h.TaskHandler.GetProjectTasks)
	tasks.Post("/bulk-update", h.TaskHandler.BulkUpdateTasks)

	tasks.Get("/:id", h.TaskHandler.GetTask)
	tasks.Put("/:id", h.TaskHandler.UpdateTask)
	tasks.Patch("/:id", h.TaskHandler.PatchTask)
	tasks.Delete("/:id", h.TaskHandler.DeleteTask)

	tasks.Get("/:id/history", h.TaskHandler.GetTaskHistory)

	tasks.Post("/:id/comments", h.TaskHandler.AddComment)
	tasks.Get("/:id/comments", h.TaskHandler.GetComments)

	tasks.Post("/:id/attachments", h.TaskHandler.UploadAttachment)
	tasks.Get("/:id/attachments", h.TaskHandler.GetAttachments)
	tasks.Get("/:id/attachments/:attachmentId/download", h.TaskHandler.DownloadAttachment)
}
