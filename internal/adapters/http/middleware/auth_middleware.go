package middleware

import (
	"errors"
	"strings"

	"github.com/darickquinto0629/ulevha/internal/adapters/persistence/models"
	"github.com/darickquinto0629/ulevha/internal/core/services"
	"github.com/darickquinto0629/ulevha/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware resolves the bearer token to a live user record on
// every protected request. Deactivated accounts are rejected here, so a
// deactivation takes effect on the holder's next call.
func AuthMiddleware(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var token string
		authHeader := c.Get("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if token == "" {
			return response.Unauthorized(c, "No token provided")
		}

		user, err := authService.Verify(c.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				return response.Unauthorized(c, "Token expired")
			case errors.Is(err, services.ErrUserInactiveOrMissing):
				return response.Unauthorized(c, "User not found or inactive")
			default:
				return response.Unauthorized(c, "Invalid token")
			}
		}

		c.Locals("user", user)
		c.Locals("userID", user.ID)
		c.Locals("role", user.Role.Name)

		return c.Next()
	}
}

// RoleMiddleware rejects callers whose role is not in the allowed set
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(models.RoleAdmin)
}

// CurrentUser returns the user resolved by AuthMiddleware
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
