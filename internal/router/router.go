package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/mockprep-api/internal/config"
	"github.com/noah-isme/mockprep-api/internal/handler"
	"github.com/noah-isme/mockprep-api/internal/middleware"
	"github.com/noah-isme/mockprep-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	InterviewHandler    *handler.InterviewHandler
	DashboardHandler    *handler.DashboardHandler
	AdminScoringHandler *handler.AdminScoringHandler
	HealthProbes        map[string]handler.HealthProbe
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.HealthProbes))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = middleware.JWTProtected(cfg.JWTSecret)
	}

	if deps.InterviewHandler != nil {
		deps.InterviewHandler.Register(api.Group("/interviews", jwtMiddleware))
	}

	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(api.Group("/dashboard", jwtMiddleware))
	}

	if deps.AdminScoringHandler != nil {
		admin := app.Group("/api/admin", jwtMiddleware, middleware.RequireRole(middleware.RoleAdmin))
		deps.AdminScoringHandler.Register(admin.Group("/scoring"))
	}
}
