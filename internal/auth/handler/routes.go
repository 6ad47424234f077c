package handler

import (
	"github.com/gofiber/fiber/v2"
)

func RegisterRoutes(app *fiber.App, h *AuthHandler) {
	app.Get("/", h.Index)
	app.Get("/api/health", h.Health)

	auth := app.Group("/api/auth")
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/forgot-password", h.ForgotPassword)
	auth.Post("/reset-password", h.ResetPassword)

	// Protected endpoints
	users := auth.Group("/users", h.RequireAuth)
	users.Get("/", h.GetUsers)
	users.Delete("/:id", h.DeleteUser)
}
