package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskhive/internal/middleware"
	"taskhive/internal/models"
	"taskhive/internal/policy"
	"taskhive/internal/store"
	"taskhive/pkg/logger"
)

const taskCacheTTL = time.Hour

func taskCacheKey(taskID int) string {
	return fmt.Sprintf("task:%d", taskID)
}

// ListTasks returns the caller's own tasks, newest first. Admins get their
// own tasks here too; the cross-user view lives under /admin/tasks.
func (h *Handler) ListTasks(c *fiber.Ctx) error {
	identity := middleware.Identity(c)

	tasks, err := h.tasks.ListByOwner(identity.UserID)
	if err != nil {
		logger.ErrorLogger.Error("Error fetching tasks", zap.Error(err))
		return serverError(c, "Error fetching tasks")
	}

	logger.AuditLogger.Info("Tasks fetched successfully", zap.Int("user_id", identity.UserID))
	return c.JSON(fiber.Map{
		"success": true,
		"count":   len(tasks),
		"data":    tasks,
	})
}

// CreateTask creates a task owned by the caller. The owner comes from the
// token, never from the body, and status always starts pending.
func (h *Handler) CreateTask(c *fiber.Ctx) error {
	identity := middleware.Identity(c)

	if !policy.Allow(identity, policy.CreateTask, identity.UserID) {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Access denied",
		})
	}

	type TaskRequest struct {
		Title       string `json:"title" validate:"required"`
		Description string `json:"description"`
	}

	var req TaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in create task", zap.Error(err))
		return badRequest(c, "Bad request")
	}

	req.Title = strings.TrimSpace(req.Title)

	if err := h.validate.Struct(req); err != nil {
		logger.ErrorLogger.Error("Validation error in create task", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation error",
			"errors":  validationErrors(err),
		})
	}

	task, err := h.tasks.Create(identity.UserID, req.Title, req.Description)
	if err != nil {
		logger.ErrorLogger.Error("Error creating task", zap.Error(err))
		return serverError(c, "Error creating task")
	}

	logger.AuditLogger.Info("Task created successfully", zap.Int("task_id", task.ID))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Task created successfully",
		"data":    task,
	})
}

// GetTask returns one of the caller's tasks. The lookup filters by owner, so
// someone else's task id answers 404 exactly like a missing one.
func (h *Handler) GetTask(c *fiber.Ctx) error {
	identity := middleware.Identity(c)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return badRequest(c, "Invalid task ID")
	}

	// Cache first. A hit still goes through the ownership check, and a
	// non-owner falls through to the store lookup, which 404s.
	cacheKey := taskCacheKey(taskID)
	if cached, err := h.redis.Get(c.Context(), cacheKey).Result(); err == nil {
		var task models.Task
		if err := json.Unmarshal([]byte(cached), &task); err == nil {
			if policy.Allow(identity, policy.ReadTask, task.UserID) {
				return c.JSON(fiber.Map{
					"success": true,
					"data":    task,
				})
			}
		}
	}

	task, err := h.tasks.FindOwned(taskID, identity.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "Task not found")
		}
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return serverError(c, "Error fetching task")
	}

	if taskJSON, err := json.Marshal(task); err == nil {
		h.redis.SetEX(c.Context(), cacheKey, taskJSON, taskCacheTTL)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    task,
	})
}

// UpdateTask applies a partial update to one of the caller's tasks. Pointer
// fields tell "absent" apart from "empty": a present description replaces
// even when empty, while empty title or status are ignored.
func (h *Handler) UpdateTask(c *fiber.Ctx) error {
	identity := middleware.Identity(c)

	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return badRequest(c, "Invalid task ID")
	}

	type UpdateTaskRequest struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
	}

	var req UpdateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in update task", zap.Error(err))
		return badRequest(c, "Bad request")
	}

	if req.Status != nil && *req.Status != "" && !models.ValidStatus(*req.Status) {
		logger.ErrorLogger.Error("Invalid status in update task", zap.String("status", *req.Status))
		return badRequest(c, "Invalid status")
	}

	// Single id+owner predicate: a missing task and another user's task are
	// the same 404, so existence never leaks.
	task, err := h.tasks.FindOwned(taskID, identity.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.SecurityLogger.Warn("Update on missing or foreign task",
				zap.Int("task_id", taskID), zap.Int("user_id", identity.UserID))
			return notFound(c, "Task not found or unauthorized")
		}
		logger.ErrorLogger.Error("Error fetching task", zap.Error(err))
		return serverError(c, "Error fetching task")
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) != "" {
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil && *req.Status != "" {
		task.Status = *req.Status
	}

	if err := h.tasks.Update(task); err != nil {
		logger.ErrorLogger.Error("Error updating task", zap.Error(err))
		return serverError(c, "Error updating task")
	}

	// Refresh the cache so a later GET cannot serve the stale version.
	cacheKey := taskCacheKey(taskID)
	h.redis.Del(c.Context(), cacheKey)
	if taskJSON, err := json.Marshal(task); err == nil {
		h.redis.SetEX(c.Context(), cacheKey, taskJSON, taskCacheTTL)
	}

	logger.AuditLogger.Info("Task updated", zap.Int("task_id", taskID))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Task updated successfully",
		"data":    task,
	})
}

// DeleteTask removes any task by id. Admin only: the policy check runs
// before the store is touched, so a non-admin never reaches the lookup.
func (h *Handler) DeleteTask(c *fiber.Ctx) error {
	identity := middleware.Identity(c)

	if !policy.Allow(identity, policy.DeleteTask, policy.OwnerAny) {
		logger.SecurityLogger.Warn("Delete denied",
			zap.String("role", identity.Role), zap.Int("user_id", identity.UserID))
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"success": false,
			"message": "Access denied. Admin only.",
		})
	}

	taskID, err := c.ParamsInt("id")
	if err != nil {
		logger.ErrorLogger.Error("Invalid task ID", zap.Error(err))
		return badRequest(c, "Invalid task ID")
	}

	if err := h.tasks.Delete(taskID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "Task not found")
		}
		logger.ErrorLogger.Error("Error deleting task", zap.Error(err))
		return serverError(c, "Error deleting task")
	}

	h.redis.Del(c.Context(), taskCacheKey(taskID))

	logger.AuditLogger.Info("Task deleted", zap.Int("task_id", taskID), zap.Int("admin_id", identity.UserID))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Task deleted successfully",
	})
}
