package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func roleApp(userID interface{}, role string) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if userID != nil {
			c.Locals(LocalUserID, userID)
		}
		c.Locals(LocalUserRole, role)
		return c.Next()
	})
	app.Use(RequireRole(RoleAdmin))
	app.Get("/admin", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRequireRoleAllowsAuthorizedRoles(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	resp, err := roleApp(uint(1), "Admin").Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRoleRejectsUnauthorizedRoles(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	resp, err := roleApp(uint(1), RoleCandidate).Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleRequiresIdentity(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	resp, err := roleApp(nil, RoleAdmin).Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
