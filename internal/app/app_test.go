package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flight-intent-service/internal/infrastructure/config"
	"flight-intent-service/pkg/intent"
	"flight-intent-service/pkg/logger"
)

func offlineConfig() *config.Config {
	return &config.Config{
		ParsePolicy:     "lenient",
		DisplayLanguage: "es",
		LookupTimeout:   time.Second,
		IATAProvider:    "airportcodes",
	}
}

func TestNew_WithoutBackends(t *testing.T) {
	a, err := New(context.Background(), offlineConfig(), logger.NewNopLogger())
	require.NoError(t, err)
	defer a.Close(context.Background())

	assert.Nil(t, a.Logs)
	assert.Empty(t, a.Checks)
	assert.Equal(t, intent.PolicyLenient, a.Parser.Policy())
	assert.NotNil(t, a.Resolver)
	assert.NotNil(t, a.Processor)

	families, err := a.Registry.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestNew_UnknownPolicy(t *testing.T) {
	cfg := offlineConfig()
	cfg.ParsePolicy = "relaxed"

	_, err := New(context.Background(), cfg, logger.NewNopLogger())
	assert.Error(t, err)
}

func TestNew_UnreachableRedis(t *testing.T) {
	cfg := offlineConfig()
	cfg.RedisAddr = "127.0.0.1:1"

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := New(ctx, cfg, logger.NewNopLogger())
	assert.Error(t, err)
}
