package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	_ "go.uber.org/automaxprocs"

	"github.com/noah-isme/mockprep-api/internal/config"
	"github.com/noah-isme/mockprep-api/internal/database"
	"github.com/noah-isme/mockprep-api/internal/handler"
	"github.com/noah-isme/mockprep-api/internal/middleware"
	"github.com/noah-isme/mockprep-api/internal/repository"
	"github.com/noah-isme/mockprep-api/internal/router"
	"github.com/noah-isme/mockprep-api/internal/service"
	"github.com/noah-isme/mockprep-api/pkg/ai"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil && cfg.LogLevel != "" {
		logger = logger.Level(level)
	}
	logger = logger.With().Str("service", cfg.AppName).Str("env", cfg.AppEnv).Logger()

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal().Err(err).Msg("failed to migrate database")
	}

	probes := map[string]handler.HealthProbe{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			logger.Warn().Err(err).Msg("redis unavailable, stats will not be cached")
			redisClient = nil
		} else {
			defer redisClient.Close()
			probes["redis"] = func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			}
		}
	}

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = database.ConnectNATS(cfg.NATSURL, cfg.AppName)
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, interview events disabled")
			natsConn = nil
		} else {
			defer natsConn.Drain()
		}
	}

	generator, err := ai.NewGenerator(context.Background(), ai.ProviderConfig{
		Provider: cfg.AIProvider,
		OpenAI: ai.OpenAIConfig{
			APIKey: cfg.OpenAIAPIKey,
			Model:  cfg.OpenAIModel,
			Logger: logger,
		},
		Gemini: ai.GeminiConfig{
			APIKey: cfg.GeminiAPIKey,
			Model:  cfg.GeminiModel,
		},
		MinInterval: cfg.GeneratorMinInterval,
	})
	if err != nil {
		logger.Warn().Err(err).Str("provider", cfg.AIProvider).Msg("text generator unavailable, serving fallback questions and provisional scores")
		generator = nil
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	sessionRepo := repository.NewInterviewSessionRepository(db)

	coach := service.NewInterviewCoach(generator, cfg.GeneratorTimeout, logger)
	events := service.NewNATSInterviewPublisher(natsConn, cfg.NATSSubject, logger)
	statsService := service.NewInterviewStatsService(sessionRepo, redisClient, cfg.StatsCacheTTL, logger)
	interviewService := service.NewInterviewService(sessionRepo, coach, events, statsService, validate, logger, service.InterviewConfig{
		DefaultQuestions: cfg.DefaultQuestionCount,
		MaxQuestions:     cfg.MaxQuestionCount,
	})
	exportService := service.NewInterviewExportService(sessionRepo, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.GeneratorTimeout + 15*time.Second,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		InterviewHandler:    handler.NewInterviewHandler(interviewService, exportService, middleware.RateLimit("submit", cfg.SubmitRateLimit, time.Minute), logger),
		DashboardHandler:    handler.NewDashboardHandler(statsService, logger),
		AdminScoringHandler: handler.NewAdminScoringHandler(statsService, logger),
		HealthProbes:        probes,
		JWTMiddleware:       middleware.JWTProtected(cfg.JWTSecret),
	})

	go func() {
		logger.Info().Str("addr", cfg.HTTPAddress()).Str("ai_provider", ai.ProviderName(generator)).Msg("starting http server")
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
