package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskhub/interfaces/api/handlers"
)

func SetupUserRoutes(api fiber.Router, h *handlers.Handlers, auth fiber.Handler) {
	users := api.Group("/users")
	users.Use(auth)
	users.Get("/profile", h.UserHandler.GetProfile)
	users.Put("/profile", h.UserHandler.UpdateProfile)
}
