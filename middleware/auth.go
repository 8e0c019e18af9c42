package middleware

import (
	"strings"

	"hr_system/config"
	"hr_system/models"
	"hr_system/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func extractToken(c *fiber.Ctx) (string, error) {
	auth := c.Get("Authorization")
	if auth == "" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "No token provided")
	}

	parts := strings.Split(auth, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", fiber.NewError(fiber.StatusUnauthorized, "Invalid token format")
	}

	return parts[1], nil
}

func RequireAuth(c *fiber.Ctx) error {
	token, err := extractToken(c)
	if err != nil {
		return c.Status(401).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
			Code:    types.CodeUnauthorized,
		})
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})
	if err != nil {
		return c.Status(401).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid or expired token",
			Code:    types.CodeUnauthorized,
		})
	}

	// Claims are trusted as-is; there is no server-side identity check
	// beyond the signature.
	c.Locals("email", claims["sub"])
	c.Locals("role", claims["role"])
	c.Locals("employee_id", claims["id"])

	return c.Next()
}

// RequireRole gates a route to the given roles. Runs after RequireAuth.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals("role").(string)
		for _, allowed := range roles {
			if role == allowed || role == models.RoleAdmin {
				return c.Next()
			}
		}
		return c.Status(403).JSON(types.APIResponse{
			Success: false,
			Error:   "Insufficient role",
			Code:    types.CodeForbidden,
		})
	}
}
