package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/mockprep-api/internal/dto"
	"github.com/noah-isme/mockprep-api/internal/service"
	"github.com/noah-isme/mockprep-api/internal/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InterviewHandler exposes interview session endpoints.
type InterviewHandler struct {
	interviews    service.InterviewService
	exports       service.InterviewExportService
	submitLimiter fiber.Handler
	logger        zerolog.Logger
}

// NewInterviewHandler constructs the handler. submitLimiter may be nil.
func NewInterviewHandler(interviews service.InterviewService, exports service.InterviewExportService, submitLimiter fiber.Handler, logger zerolog.Logger) *InterviewHandler {
	return &InterviewHandler{
		interviews:    interviews,
		exports:       exports,
		submitLimiter: submitLimiter,
		logger:        logger.With().Str("component", "interview_handler").Logger(),
	}
}

// Register attaches interview endpoints to the router group.
func (h *InterviewHandler) Register(router fiber.Router) {
	router.Post("", h.start)
	router.Get("", h.list)
	router.Get("/:id", h.get)
	router.Get("/:id/resume", h.resume)
	if h.submitLimiter != nil {
		router.Post("/:id/answers", h.submitLimiter, h.submit)
	} else {
		router.Post("/:id/answers", h.submit)
	}
	if h.exports != nil {
		router.Get("/:id/export", h.export)
	}
}

func (h *InterviewHandler) start(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	var payload dto.StartInterviewRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	session, err := h.interviews.Start(withRequestContext(c), userID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "interview started", session)
}

func (h *InterviewHandler) list(c *fiber.Ctx) error {
	userID, err := userIDFromContext(c)
	if err != nil {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}

	page, err := parseQueryInt(c, "page")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}
	pageSize, err := parseQueryInt(c, "page_size")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	result, err := h.interviews.List(withRequestContext(c), userID, dto.InterviewListRequest{Page: page, PageSize: pageSize})
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.OK(c, result.Items, "interviews retrieved", result.Pagination)
}

func (h *InterviewHandler) get(c *fiber.Ctx) error {
	userID, interviewID, err := h.identify(c)
	if err != nil {
		return sendIdentityError(c, err)
	}

	session, err := h.interviews.Get(withRequestContext(c), userID, interviewID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "interview retrieved", session)
}

func (h *InterviewHandler) resume(c *fiber.Ctx) error {
	userID, interviewID, err := h.identify(c)
	if err != nil {
		return sendIdentityError(c, err)
	}

	resume, err := h.interviews.Resume(withRequestContext(c), userID, interviewID)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "interview resumed", resume)
}

func (h *InterviewHandler) submit(c *fiber.Ctx) error {
	userID, interviewID, err := h.identify(c)
	if err != nil {
		return sendIdentityError(c, err)
	}

	var payload dto.SubmitAnswerRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.interviews.SubmitAnswer(withRequestContext(c), userID, interviewID, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "answer evaluated", result)
}

func (h *InterviewHandler) export(c *fiber.Ctx) error {
	userID, interviewID, err := h.identify(c)
	if err != nil {
		return sendIdentityError(c, err)
	}

	report, err := h.exports.Export(withRequestContext(c), userID, interviewID)
	if err != nil {
		return h.handleError(c, err)
	}

	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.Filename))
	return c.Status(fiber.StatusOK).Send(report.Content)
}

// identify resolves the caller and the :id path parameter.
func (h *InterviewHandler) identify(c *fiber.Ctx) (uint, uint, error) {
	userID, err := userIDFromContext(c)
	if err != nil {
		return 0, 0, err
	}
	interviewID, err := parseUintParam(c, "id")
	if err != nil {
		return 0, 0, err
	}
	return userID, interviewID, nil
}

func sendIdentityError(c *fiber.Ctx, err error) error {
	if errors.Is(err, errMissingUser) {
		return utils.SendError(c, fiber.StatusUnauthorized, err.Error())
	}
	return utils.SendError(c, fiber.StatusBadRequest, err.Error())
}

func (h *InterviewHandler) handleError(c *fiber.Ctx, err error) error {
	if details, ok := validationDetails(err); ok {
		return utils.Fail(c, fiber.StatusBadRequest, "validation failed", details)
	}

	switch {
	case errors.Is(err, service.ErrInvalidInput):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidQuestionIndex):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInterviewNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "interview not found")
	case errors.Is(err, service.ErrInterviewForbidden):
		return utils.SendError(c, fiber.StatusForbidden, "interview belongs to another user")
	case errors.Is(err, service.ErrInterviewCompleted):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInterviewConflict):
		return utils.SendError(c, fiber.StatusConflict, "interview was updated concurrently, please retry")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("interview request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
