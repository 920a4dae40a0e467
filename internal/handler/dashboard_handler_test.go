package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mockprep-api/internal/dto"
	"github.com/noah-isme/mockprep-api/internal/handler"
	"github.com/noah-isme/mockprep-api/internal/middleware"
	"github.com/noah-isme/mockprep-api/internal/service"
)

type stubStatsService struct {
	stats       dto.InterviewStatsResponse
	diagnostics dto.ScoringDiagnosticsResponse
	err         error
	lastUser    uint
	calls       int
}

func (s *stubStatsService) GetStats(_ context.Context, userID uint) (dto.InterviewStatsResponse, error) {
	s.calls++
	s.lastUser = userID
	return s.stats, s.err
}

func (s *stubStatsService) Diagnostics(context.Context) (dto.ScoringDiagnosticsResponse, error) {
	s.calls++
	return s.diagnostics, s.err
}

func (s *stubStatsService) Invalidate(context.Context, uint) {}

func TestDashboardHandlerStats(t *testing.T) {
	svc := &stubStatsService{stats: dto.InterviewStatsResponse{TotalSessions: 4, CompletedSessions: 1, CompletionRate: 25, AveragePerformance: 6.5}}
	app := fiber.New()
	handler.NewDashboardHandler(svc, zerolog.Nop()).Register(app.Group("/api/v1/dashboard", authenticated(12, middleware.RoleCandidate)))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeEnvelope(t, resp)
	require.Equal(t, "stats retrieved", body.Message)
	var stats dto.InterviewStatsResponse
	require.NoError(t, json.Unmarshal(body.Data, &stats))
	require.Equal(t, svc.stats, stats)
	require.Equal(t, uint(12), svc.lastUser)
}

func TestDashboardHandlerUnauthorized(t *testing.T) {
	svc := &stubStatsService{}
	app := fiber.New()
	handler.NewDashboardHandler(svc, zerolog.Nop()).Register(app.Group("/api/v1/dashboard"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/stats", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	require.Zero(t, svc.calls)
}

func TestAdminScoringHandlerRequiresAdmin(t *testing.T) {
	svc := &stubStatsService{diagnostics: dto.ScoringDiagnosticsResponse{
		TotalAnswers: 3,
		Sources:      []dto.ScoreSourceCount{{Source: "pattern", Matcher: "slash_ten", Count: 3, AverageScore: 7}},
	}}

	build := func(role string) *fiber.App {
		app := fiber.New()
		group := app.Group("/api/admin/scoring", authenticated(1, role), middleware.RequireRole(middleware.RoleAdmin))
		handler.NewAdminScoringHandler(svc, zerolog.Nop()).Register(group)
		return app
	}

	resp, err := build(middleware.RoleCandidate).Test(httptest.NewRequest(http.MethodGet, "/api/admin/scoring/diagnostics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	require.Zero(t, svc.calls)

	resp, err = build(middleware.RoleAdmin).Test(httptest.NewRequest(http.MethodGet, "/api/admin/scoring/diagnostics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var diagnostics dto.ScoringDiagnosticsResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, resp).Data, &diagnostics))
	require.Equal(t, 3, diagnostics.TotalAnswers)
	require.Equal(t, "slash_ten", diagnostics.Sources[0].Matcher)
}

func TestAdminScoringHandlerFailure(t *testing.T) {
	svc := &stubStatsService{err: errors.New("boom")}
	app := fiber.New()
	handler.NewAdminScoringHandler(svc, zerolog.Nop()).Register(app.Group("/api/admin/scoring"))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/admin/scoring/diagnostics", nil), -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}

var _ service.InterviewStatsService = (*stubStatsService)(nil)
