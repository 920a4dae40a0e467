package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mockprep-api/internal/middleware"
)

const testSecret = "test-secret"

func identityApp() *fiber.App {
	app := fiber.New()
	app.Get("/me", middleware.JWTProtected(testSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"user_id": c.Locals(middleware.LocalUserID),
			"role":    c.Locals(middleware.LocalUserRole),
		})
	})
	return app
}

func requestWithToken(t *testing.T, app *fiber.App, token string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestJWTProtectedAcceptsIssuedToken(t *testing.T) {
	token, err := middleware.IssueToken(testSecret, 42, middleware.RoleAdmin, time.Hour)
	require.NoError(t, err)

	resp := requestWithToken(t, identityApp(), token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		UserID float64 `json:"user_id"`
		Role   string  `json:"role"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()

	require.Equal(t, float64(42), payload.UserID)
	require.Equal(t, middleware.RoleAdmin, payload.Role)
}

func TestJWTProtectedDefaultsToCandidateRole(t *testing.T) {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": float64(7)}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	resp := requestWithToken(t, identityApp(), token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var payload struct {
		Role string `json:"role"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	resp.Body.Close()
	require.Equal(t, middleware.RoleCandidate, payload.Role)
}

func TestJWTProtectedRejectsBadTokens(t *testing.T) {
	app := identityApp()

	require.Equal(t, fiber.StatusUnauthorized, requestWithToken(t, app, "").StatusCode)
	require.Equal(t, fiber.StatusUnauthorized, requestWithToken(t, app, "garbage").StatusCode)

	wrongSecret, err := middleware.IssueToken("other-secret", 1, "", time.Hour)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, requestWithToken(t, app, wrongSecret).StatusCode)

	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": time.Now().Add(-time.Minute).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, requestWithToken(t, app, expired).StatusCode)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "admin"}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, requestWithToken(t, app, noSubject).StatusCode)
}

func TestIssueTokenRequiresSecret(t *testing.T) {
	_, err := middleware.IssueToken(" ", 1, "", time.Hour)
	require.Error(t, err)
}
