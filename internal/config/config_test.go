package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/kishansingy/ielts-backend-sub000/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("EVALUATION_WORKERS", "")
	t.Setenv("EVENTS_ENABLED", "")
	t.Setenv("CASDOOR_ENDPOINT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 4, cfg.EvaluationWorkers)
	assert.True(t, cfg.Events.Enabled)
	assert.False(t, cfg.Auth.Enabled())
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("EVALUATION_WORKERS", "16")
	t.Setenv("EVENTS_ENABLED", "false")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092")
	t.Setenv("CASDOOR_ENDPOINT", "https://auth.example.com")
	t.Setenv("CASDOOR_CERTIFICATE", "cert")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 90*time.Second, cfg.CacheTTL)
	assert.Equal(t, 16, cfg.EvaluationWorkers)
	assert.False(t, cfg.Events.Enabled)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.GetKafkaBrokers())
	assert.True(t, cfg.Auth.Enabled())
}

func TestLoadConfig_InvalidNumbersFallBack(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	t.Setenv("EVALUATION_WORKERS", "-2")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 15*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 4, cfg.EvaluationWorkers)
}

func TestEventConfig_CreateEventPublisher(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	disabled := EventConfig{Enabled: false, Publisher: "kafka"}
	p, err := disabled.CreateEventPublisher(logger)
	require.NoError(t, err)
	assert.IsType(t, &events.MockEventPublisher{}, p)

	inProcess := EventConfig{Enabled: true, Publisher: "gochannel", ScoringTopic: "scores"}
	p, err = inProcess.CreateEventPublisher(logger)
	require.NoError(t, err)
	assert.IsType(t, &events.GoChannelEventPublisher{}, p)
	require.NoError(t, p.Close())

	unknown := EventConfig{Enabled: true, Publisher: "carrier-pigeon"}
	p, err = unknown.CreateEventPublisher(logger)
	require.NoError(t, err)
	assert.IsType(t, &events.MockEventPublisher{}, p)
}
