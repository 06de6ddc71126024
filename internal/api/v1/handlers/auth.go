package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskhive/internal/middleware"
	"taskhive/internal/models"
	"taskhive/internal/store"
	"taskhive/pkg/crypto"
	"taskhive/pkg/logger"
	"taskhive/pkg/token"
)

// Register creates a user account. The role field is accepted in the body
// for compatibility but ignored: everyone registers as a regular user, and
// admins only come from the startup seed.
func (h *Handler) Register(c *fiber.Ctx) error {
	type RegisterRequest struct {
		Name     string `json:"name" validate:"required"`
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6"`
		Role     string `json:"role"`
	}

	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in register", zap.Error(err))
		return badRequest(c, "Bad request")
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := h.validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during register", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation error",
			"errors":  validationErrors(err),
		})
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		logger.ErrorLogger.Error("Error hashing password", zap.Error(err))
		return serverError(c, "Error hashing password")
	}

	user, err := h.users.Create(req.Name, req.Email, hash, models.RoleUser)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			logger.SecurityLogger.Warn("Duplicate email at register", zap.String("email", req.Email))
			return badRequest(c, "Email already registered")
		}
		logger.ErrorLogger.Error("Error creating user", zap.Error(err))
		return serverError(c, "Error creating user")
	}

	logger.AuditLogger.Info("User registered successfully", zap.Int("user_id", user.ID))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "User registered successfully",
		"data": fiber.Map{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// Login checks the credentials and issues a session token. Unknown email and
// wrong password return the same message so account existence never leaks.
func (h *Handler) Login(c *fiber.Ctx) error {
	type LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		logger.ErrorLogger.Error("Bad request in login", zap.Error(err))
		return badRequest(c, "Bad request")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := h.validate.Struct(req); err != nil {
		logger.AuditLogger.Warn("Validation error during login", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": "Validation error",
			"errors":  validationErrors(err),
		})
	}

	user, err := h.users.FindByEmail(req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.SecurityLogger.Warn("Login for unknown email", zap.String("email", req.Email))
			return invalidCredentials(c)
		}
		logger.ErrorLogger.Error("Error fetching user", zap.Error(err))
		return serverError(c, "Server error")
	}

	if !crypto.CheckPassword(user.PasswordHash, req.Password) {
		logger.SecurityLogger.Warn("Invalid password", zap.Int("user_id", user.ID))
		return invalidCredentials(c)
	}

	tokenString, err := h.tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		logger.ErrorLogger.Error("Error generating token", zap.Error(err))
		return serverError(c, "Error generating token")
	}

	logger.AuditLogger.Info("Login success", zap.Int("user_id", user.ID), zap.String("role", user.Role))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Login successful",
		"data": fiber.Map{
			"token": tokenString,
			"user": fiber.Map{
				"id":    user.ID,
				"name":  user.Name,
				"email": user.Email,
				"role":  user.Role,
			},
		},
	})
}

// Logout revokes the presented token by recording its jti in Redis for the
// remainder of the token's life. Tokens without a jti (issued before this
// existed) simply age out.
func (h *Handler) Logout(c *fiber.Ctx) error {
	identity := middleware.Identity(c)

	if identity.JTI != "" {
		ttl := time.Until(identity.ExpiresAt)
		if ttl > 0 {
			err := h.redis.Set(c.Context(), token.RevocationKey(identity.JTI), "1", ttl).Err()
			if err != nil {
				logger.ErrorLogger.Error("Error revoking token", zap.Error(err))
				return serverError(c, "Error logging out")
			}
		}
	}

	logger.AuditLogger.Info("Logout", zap.Int("user_id", identity.UserID))
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out",
	})
}

func invalidCredentials(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": "Invalid email or password",
	})
}
