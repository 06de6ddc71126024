package v1

import (
	"github.com/gofiber/fiber/v2"

	"taskhive/internal/api/v1/handlers"
	"taskhive/internal/middleware"
	"taskhive/internal/policy"
)

func RegisterRoutes(app *fiber.App, h *handlers.Handler, auth *middleware.Auth) {
	api := app.Group("/api/v1")

	// Auth
	api.Post("/auth/register", h.Register)
	api.Post("/auth/login", h.Login)
	api.Post("/auth/logout", auth.RequireToken, h.Logout)

	// Task
	taskRoutes := api.Group("/tasks", auth.RequireToken)
	taskRoutes.Get("/", h.ListTasks)
	taskRoutes.Post("/", h.CreateTask)
	taskRoutes.Get("/:id", h.GetTask)
	taskRoutes.Put("/:id", h.UpdateTask)
	taskRoutes.Delete("/:id", h.DeleteTask)

	// Admin
	adminRoutes := api.Group("/admin", auth.RequireToken)
	adminRoutes.Get("/users", middleware.RequireAdmin(policy.ListUsers), h.ListAllUsers)
	adminRoutes.Get("/tasks", middleware.RequireAdmin(policy.ListAllTasks), h.ListAllTasks)
}
