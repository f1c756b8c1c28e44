package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskhub/interfaces/api/handlers"
)

func SetupAuthRoutes(api fiber.Router, h *handlers.Handlers, auth fiber.Handler) {
	authGroup := api.Group("/auth")

	authGroup.Post("/register", h.UserHandler.Register)
	authGroup.Post("/login", h.UserHandler.Login)

	authGroup.Get("/me", auth, h.UserHandler.GetProfile)
}
