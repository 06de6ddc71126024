package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskhive/internal/middleware"
	"taskhive/pkg/logger"
)

// Admin handlers. Both routes sit behind middleware.RequireAdmin, so the
// role has already been checked when these run.

// ListAllUsers returns every account without the password hash.
func (h *Handler) ListAllUsers(c *fiber.Ctx) error {
	users, err := h.users.ListAll()
	if err != nil {
		logger.ErrorLogger.Error("Error fetching users", zap.Error(err))
		return serverError(c, "Error fetching users")
	}

	logger.AuditLogger.Info("Admin listed users",
		zap.Int("admin_id", middleware.Identity(c).UserID))
	return c.JSON(fiber.Map{
		"success": true,
		"data":    users,
	})
}

// ListAllTasks returns every task with its owner's name and email attached.
func (h *Handler) ListAllTasks(c *fiber.Ctx) error {
	tasks, err := h.tasks.ListAllWithOwners()
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return serverError(c, "Error fetching tasks")
	}

	logger.AuditLogger.Info("Admin listed tasks",
		zap.Int("admin_id", middleware.Identity(c).UserID))
	return c.JSON(fiber.Map{
		"success": true,
		"data":    tasks,
	})
}
