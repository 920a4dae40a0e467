package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName              string
	AppEnv               string
	AppPort              string
	LogLevel             string
	DatabaseDriver       string
	DatabaseURL          string
	RedisURL             string
	NATSURL              string
	NATSSubject          string
	JWTSecret            string
	StatsCacheTTL        time.Duration
	AIProvider           string
	OpenAIAPIKey         string
	OpenAIModel          string
	GeminiAPIKey         string
	GeminiModel          string
	GeneratorTimeout     time.Duration
	GeneratorMinInterval time.Duration
	DefaultQuestionCount int
	MaxQuestionCount     int
	SubmitRateLimit      int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("MOCKPREP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "MockPrep API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("nats.subject", "mockprep.interviews")
	v.SetDefault("stats.cache_ttl", "5m")
	v.SetDefault("ai.provider", "gemini")
	v.SetDefault("ai.timeout", "30s")
	v.SetDefault("ai.min_interval", "1s")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("gemini.model", "gemini-1.5-flash")
	v.SetDefault("interview.default_questions", 5)
	v.SetDefault("interview.max_questions", 20)
	v.SetDefault("interview.submit_rate_limit", 20)

	ttl, err := parseDuration(v, "stats.cache_ttl", 5*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("invalid stats cache ttl: %w", err)
	}

	timeout, err := parseDuration(v, "ai.timeout", 30*time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("invalid ai timeout: %w", err)
	}

	interval, err := parseDuration(v, "ai.min_interval", time.Second)
	if err != nil {
		return Config{}, fmt.Errorf("invalid ai min interval: %w", err)
	}

	cfg := Config{
		AppName:              v.GetString("app.name"),
		AppEnv:               v.GetString("app.env"),
		AppPort:              v.GetString("app.port"),
		LogLevel:             strings.ToLower(v.GetString("log.level")),
		DatabaseDriver:       strings.ToLower(v.GetString("database.driver")),
		DatabaseURL:          v.GetString("database.url"),
		RedisURL:             v.GetString("redis.url"),
		NATSURL:              v.GetString("nats.url"),
		NATSSubject:          v.GetString("nats.subject"),
		JWTSecret:            v.GetString("jwt.secret"),
		StatsCacheTTL:        ttl,
		AIProvider:           strings.ToLower(v.GetString("ai.provider")),
		OpenAIAPIKey:         v.GetString("openai.api_key"),
		OpenAIModel:          v.GetString("openai.model"),
		GeminiAPIKey:         v.GetString("gemini.api_key"),
		GeminiModel:          v.GetString("gemini.model"),
		GeneratorTimeout:     timeout,
		GeneratorMinInterval: interval,
		DefaultQuestionCount: v.GetInt("interview.default_questions"),
		MaxQuestionCount:     v.GetInt("interview.max_questions"),
		SubmitRateLimit:      v.GetInt("interview.submit_rate_limit"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.DatabaseDriver != "postgres" && cfg.DatabaseDriver != "sqlite" {
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	if cfg.MaxQuestionCount <= 0 {
		cfg.MaxQuestionCount = 20
	}

	if cfg.DefaultQuestionCount <= 0 || cfg.DefaultQuestionCount > cfg.MaxQuestionCount {
		cfg.DefaultQuestionCount = 5
	}

	if cfg.SubmitRateLimit <= 0 {
		cfg.SubmitRateLimit = 20
	}

	return cfg, nil
}

func parseDuration(v *viper.Viper, key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	if raw == "" {
		return fallback, nil
	}
	return time.ParseDuration(raw)
}
