package otel

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv_Defaults(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "")
	t.Setenv("OTEL_ENABLED", "")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")

	cfg := ConfigFromEnv()

	assert.Equal(t, "sso-portal", cfg.ServiceName)
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "localhost:4318", cfg.OTLPEndpoint)
}

func TestConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("OTEL_SERVICE_NAME", "portal-test")
	t.Setenv("OTEL_ENABLED", "false")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")

	cfg := ConfigFromEnv()

	assert.Equal(t, "portal-test", cfg.ServiceName)
	assert.False(t, cfg.Enabled)
	assert.Equal(t, "collector:4318", cfg.OTLPEndpoint)
}

func TestConfigFromEnv_BadEnabledKeepsDefault(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "maybe")

	cfg := ConfigFromEnv()

	assert.True(t, cfg.Enabled)
}

func TestInitProvider_Disabled(t *testing.T) {
	shutdown, err := InitProvider(context.Background(), Config{Enabled: false})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
