package routes

import (
	"github.com/gofiber/fiber/v2"

	"taskhub/interfaces/api/handlers"
	"taskhub/interfaces/api/middleware"
)

func SetupRoutes(app *fiber.App, h *handlers.Handlers, jwtSecret string) {
	SetupHealthRoutes(app)

	api := app.Group("/api/v1")

	auth := middleware.Protected(jwtSecret)

	SetupAuthRoutes(api, h, auth)
	SetupUserRoutes(api, h, auth)
	SetupProjectRoutes(api, h, auth)
	SetupTaskRoutes(api, h, auth)
}
