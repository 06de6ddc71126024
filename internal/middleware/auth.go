package middleware

import (
	"strings"

	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"taskhive/internal/policy"
	"taskhive/pkg/logger"
	"taskhive/pkg/token"
)

// IdentityKey is the fiber.Ctx locals key holding the verified identity.
const IdentityKey = "identity"

// Auth verifies bearer tokens. The manager and the Redis client come from
// main; nothing here reads config.
type Auth struct {
	tokens *token.Manager
	redis  *redis.Client
}

func NewAuth(tokens *token.Manager, rdb *redis.Client) *Auth {
	return &Auth{tokens: tokens, redis: rdb}
}

// RequireToken rejects the request unless it carries a valid, unrevoked
// bearer token, then stashes the identity in locals for the handlers.
func (a *Auth) RequireToken(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return unauthorized(c, "No token provided")
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return unauthorized(c, "Invalid token format")
	}

	identity, err := a.tokens.Verify(parts[1])
	if err != nil {
		if err == token.ErrExpiredToken {
			return unauthorized(c, "Token expired")
		}
		return unauthorized(c, "Invalid token")
	}

	// Logout writes the jti here with a TTL covering the token's remaining
	// life. A Redis outage fails open: revocation is a mitigation, the
	// signature check above is the real gate.
	if identity.JTI != "" {
		revoked, err := a.redis.Exists(c.Context(), token.RevocationKey(identity.JTI)).Result()
		if err == nil && revoked > 0 {
			logger.SecurityLogger.Warn("Revoked token presented", zap.Int("user_id", identity.UserID))
			return unauthorized(c, "Token has been revoked")
		}
	}

	c.Locals(IdentityKey, identity)
	return c.Next()
}

// RequireAdmin gates an admin-only action through the policy before any
// handler or store code runs.
func RequireAdmin(action policy.Action) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity := c.Locals(IdentityKey).(token.Identity)
		if !policy.Allow(identity, action, policy.OwnerAny) {
			logger.SecurityLogger.Warn("Admin action denied",
				zap.String("action", string(action)),
				zap.Int("user_id", identity.UserID),
				zap.String("role", identity.Role),
			)
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Access denied. Admin only.",
			})
		}
		return c.Next()
	}
}

// Identity pulls the verified identity out of locals. Only valid behind
// RequireToken.
func Identity(c *fiber.Ctx) token.Identity {
	return c.Locals(IdentityKey).(token.Identity)
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
