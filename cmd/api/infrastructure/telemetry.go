package infrastructure

import (
	"context"
	"fmt"

	"user-api/internal/config"
	"user-api/pkg/telemetry"

	"go.uber.org/zap"
)

// NewTelemetry sets up OTLP tracing. It returns nil when no endpoint is configured.
func NewTelemetry(ctx context.Context, cfg *config.Config, l *zap.Logger) (*telemetry.Telemetry, error) {
	tcfg := telemetry.Config{
		Endpoint:       cfg.Telemetry.Endpoint,
		Headers:        cfg.Telemetry.Headers,
		ServiceName:    cfg.Logger.ServiceName,
		ServiceVersion: cfg.Logger.ServiceVersion,
	}
	if !tcfg.Enabled() {
		l.Info("tracing disabled, no OTLP endpoint configured")
		return nil, nil
	}

	t, err := telemetry.Setup(ctx, tcfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}

	l.Info("tracing enabled", zap.String("endpoint", tcfg.Endpoint))
	return t, nil
}
