package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/mockprep-api/internal/service"
	"github.com/noah-isme/mockprep-api/internal/utils"
)

// DashboardHandler exposes the candidate statistics endpoint.
type DashboardHandler struct {
	stats  service.InterviewStatsService
	logger zerolog.Logger
}

// NewDashboardHandler creates a new handler instance.
func NewDashboardHandler(stats service.InterviewStatsService, logger zerolog.Logger) *DashboardHandler {
	return &DashboardHandler{
		stats:  stats,
		logger: logger.With().Str("component", "dashboard_handler").Logger(),
	}
}

// Register attaches the dashboard endpoints.
func (h *DashboardHandler) Register(router fiber.Router) {
	router.Get("/stats", h.getStats)
}

func (h *DashboardHandler) getStats(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	stats, err := h.stats.GetStats(withRequestContext(c), userID)
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Uint("user_id", userID).Msg("failed to load stats")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to load stats")
	}

	return utils.SendSuccess(c, "stats retrieved", stats)
}
