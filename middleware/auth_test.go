package middleware

import (
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"hr_system/config"
	"hr_system/models"
	"hr_system/types"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	os.Setenv("JWT_SECRET", "test-secret")
	config.LoadConfig()
	os.Exit(m.Run())
}

func signToken(t *testing.T, role string, expiry time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "ali@company.com",
		"role": role,
		"id":   "emp-id-1",
		"exp":  time.Now().Add(expiry).Unix(),
	})
	signed, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	require.NoError(t, err)
	return signed
}

func authApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", RequireAuth, func(c *fiber.Ctx) error {
		return c.JSON(types.APIResponse{
			Success: true,
			Data: fiber.Map{
				"email": c.Locals("email"),
				"role":  c.Locals("role"),
				"id":    c.Locals("employee_id"),
			},
		})
	})
	app.Get("/hr-only", RequireAuth, RequireRole(models.RoleHR), func(c *fiber.Ctx) error {
		return c.JSON(types.APIResponse{Success: true})
	})
	return app
}

func TestRequireAuth(t *testing.T) {
	app := authApp()

	t.Run("Valid Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, models.RoleEmployee, time.Hour))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("Missing Header", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/me", nil))
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Token abc")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})

	t.Run("Expired Token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, models.RoleEmployee, -time.Hour))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 401, resp.StatusCode)
	})
}

func TestRequireRole(t *testing.T) {
	app := authApp()

	t.Run("Employee Blocked", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/hr-only", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, models.RoleEmployee, time.Hour))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 403, resp.StatusCode)
	})

	t.Run("HR Allowed", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/hr-only", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, models.RoleHR, time.Hour))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})

	t.Run("Admin Allowed Everywhere", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/hr-only", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, models.RoleAdmin, time.Hour))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
	})
}
