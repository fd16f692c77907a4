package middleware

import (
	"strings"

	"go-kasir-pos/internal/repository"
	"go-kasir-pos/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the Bearer token, confirms the user still exists,
// and stores the identity in the request locals.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}

		c.Locals("user_id", user.ID.String())
		c.Locals("user_email", user.Email)
		c.Locals("user_name", user.Name)
		c.Locals("user_role", user.Role)

		return c.Next()
	}
}

// RequireRole rejects requests from users without the given role.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		current, ok := c.Locals("user_role").(string)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No role found"})
		}

		if current != role {
			return c.Status(403).JSON(fiber.Map{
				"error": "Forbidden: requires '" + role + "' role",
			})
		}
		return c.Next()
	}
}
