package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("MOCKPREP_JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "MockPrep API", cfg.AppName)
	require.Equal(t, ":8080", cfg.HTTPAddress())
	require.Equal(t, "postgres", cfg.DatabaseDriver)
	require.Equal(t, "gemini", cfg.AIProvider)
	require.Equal(t, 30*time.Second, cfg.GeneratorTimeout)
	require.Equal(t, time.Second, cfg.GeneratorMinInterval)
	require.Equal(t, 5*time.Minute, cfg.StatsCacheTTL)
	require.Equal(t, 5, cfg.DefaultQuestionCount)
	require.Equal(t, 20, cfg.MaxQuestionCount)
}

func TestLoadReadsOverrides(t *testing.T) {
	t.Setenv("MOCKPREP_JWT_SECRET", "secret")
	t.Setenv("MOCKPREP_APP_PORT", ":9090")
	t.Setenv("MOCKPREP_DATABASE_DRIVER", "SQLite")
	t.Setenv("MOCKPREP_AI_PROVIDER", "OpenAI")
	t.Setenv("MOCKPREP_AI_TIMEOUT", "5s")
	t.Setenv("MOCKPREP_INTERVIEW_DEFAULT_QUESTIONS", "50")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.HTTPAddress())
	require.Equal(t, "sqlite", cfg.DatabaseDriver)
	require.Equal(t, "openai", cfg.AIProvider)
	require.Equal(t, 5*time.Second, cfg.GeneratorTimeout)
	require.Equal(t, 5, cfg.DefaultQuestionCount)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("MOCKPREP_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadRejectsInvalidDuration(t *testing.T) {
	t.Setenv("MOCKPREP_JWT_SECRET", "secret")
	t.Setenv("MOCKPREP_STATS_CACHE_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
}
