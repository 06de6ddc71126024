package handlers

import (
	"database/sql"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"

	"taskhive/internal/store"
	"taskhive/pkg/token"
)

// Handler carries the dependencies every endpoint needs. Built once in main
// (and in the test harness) and shared across requests; all fields are
// read-only after construction.
type Handler struct {
	users    *store.UserStore
	tasks    *store.TaskStore
	tokens   *token.Manager
	redis    *redis.Client
	validate *validator.Validate
}

func New(db *sql.DB, rdb *redis.Client, tokens *token.Manager) *Handler {
	return &Handler{
		users:    store.NewUserStore(db),
		tasks:    store.NewTaskStore(db),
		tokens:   tokens,
		redis:    rdb,
		validate: validator.New(),
	}
}

// validationErrors flattens validator output into the envelope's errors list.
func validationErrors(err error) []fiber.Map {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []fiber.Map{{"message": err.Error()}}
	}
	out := make([]fiber.Map, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, fiber.Map{
			"field":   fe.Field(),
			"message": fieldMessage(fe),
		})
	}
	return out
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return "Valid email is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func notFound(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func serverError(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
