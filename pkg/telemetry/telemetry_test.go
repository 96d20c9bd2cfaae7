package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup_Disabled(t *testing.T) {
	tel, err := Setup(context.Background(), Config{ServiceName: "user-api"})
	require.NoError(t, err)
	assert.Nil(t, tel)

	// nil telemetry shuts down cleanly
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestSetup_Enabled(t *testing.T) {
	tel, err := Setup(context.Background(), Config{
		Endpoint:       "http://127.0.0.1:4318",
		ServiceName:    "user-api",
		ServiceVersion: "test",
	})
	require.NoError(t, err)
	require.NotNil(t, tel)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// nothing was recorded, so shutdown has nothing to export
	_ = tel.Shutdown(ctx)
}

func TestParseHeaders(t *testing.T) {
	assert.Empty(t, ParseHeaders(""))
	assert.Equal(t,
		map[string]string{"authorization": "Bearer abc", "x-team": "api"},
		ParseHeaders("authorization=Bearer abc, x-team = api,broken"),
	)
}

func TestTracesURL(t *testing.T) {
	tests := []struct {
		endpoint string
		want     string
	}{
		{"http://collector:4318", "http://collector:4318/v1/traces"},
		{"http://collector:4318/", "http://collector:4318/v1/traces"},
		{"https://otlp.example.com/v1/traces", "https://otlp.example.com/v1/traces"},
		{"https://otlp.example.com/otlp/v1/traces", "https://otlp.example.com/otlp/v1/traces"},
	}

	for _, tt := range tests {
		t.Run(tt.endpoint, func(t *testing.T) {
			assert.Equal(t, tt.want, tracesURL(tt.endpoint))
		})
	}
}
