package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mockprep-api/internal/config"
	"github.com/noah-isme/mockprep-api/internal/handler"
)

func TestHealthCheck(t *testing.T) {
	cfg := config.Config{AppName: "MockPrep API", AppEnv: "test"}

	app := fiber.New()
	app.Get("/api/v1/health", handler.HealthCheck(cfg, map[string]handler.HealthProbe{
		"database": func(context.Context) error { return nil },
	}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var health handler.HealthResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &health))
	require.Equal(t, "ok", health.Status)
	require.Equal(t, cfg.AppName, health.Service)
	require.Equal(t, cfg.AppEnv, health.Environment)
	require.Equal(t, "up", health.Checks["database"])
	require.WithinDuration(t, time.Now().UTC(), health.Timestamp, 2*time.Second)
}

func TestHealthCheckDegraded(t *testing.T) {
	app := fiber.New()
	app.Get("/api/v1/health", handler.HealthCheck(config.Config{AppName: "MockPrep API"}, map[string]handler.HealthProbe{
		"database": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("refused") },
	}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/health", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)

	defer resp.Body.Close()
	var body struct {
		Success bool                   `json:"success"`
		Details handler.HealthResponse `json:"details"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.False(t, body.Success)
	require.Equal(t, "degraded", body.Details.Status)
	require.Equal(t, "down", body.Details.Checks["redis"])
	require.Equal(t, "up", body.Details.Checks["database"])
}
