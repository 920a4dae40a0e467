package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/mockprep-api/internal/service"
	"github.com/noah-isme/mockprep-api/internal/utils"
)

// AdminScoringHandler exposes score extraction diagnostics to operators.
type AdminScoringHandler struct {
	stats  service.InterviewStatsService
	logger zerolog.Logger
}

// NewAdminScoringHandler constructs the handler.
func NewAdminScoringHandler(stats service.InterviewStatsService, logger zerolog.Logger) *AdminScoringHandler {
	return &AdminScoringHandler{
		stats:  stats,
		logger: logger.With().Str("component", "admin_scoring_handler").Logger(),
	}
}

// Register attaches the admin scoring routes.
func (h *AdminScoringHandler) Register(router fiber.Router) {
	router.Get("/diagnostics", h.diagnostics)
}

func (h *AdminScoringHandler) diagnostics(c *fiber.Ctx) error {
	result, err := h.stats.Diagnostics(withRequestContext(c))
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to compute scoring diagnostics")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to compute diagnostics")
	}

	return utils.SendSuccess(c, "scoring diagnostics retrieved", result)
}
