package infrastructure

import (
	"fmt"

	"user-api/internal/config"
	"user-api/pkg/metrics"

	"go.uber.org/zap"
)

// NewMetricsRecorder creates the call recorder for the configured route objective
func NewMetricsRecorder(cfg *config.Config, l *zap.Logger) (*metrics.Recorder, metrics.Objective, error) {
	objective, err := cfg.Objective()
	if err != nil {
		return nil, metrics.Objective{}, fmt.Errorf("invalid objective: %w", err)
	}

	rec, err := metrics.NewRecorder(metrics.Config{
		Build: metrics.BuildInfo{
			Version:     cfg.Logger.ServiceVersion,
			Commit:      cfg.Metrics.BuildCommit,
			Branch:      cfg.Metrics.BuildBranch,
			ServiceName: cfg.Logger.ServiceName,
		},
		Objectives:        []metrics.Objective{objective},
		RuntimeCollectors: cfg.Metrics.RuntimeCollectors,
	})
	if err != nil {
		return nil, metrics.Objective{}, fmt.Errorf("failed to create metrics recorder: %w", err)
	}

	l.Info("metrics recorder initialized",
		zap.String("objective", objective.Name),
		zap.String("success_percentile", string(objective.SuccessRate)),
		zap.Duration("latency_threshold", objective.Latency.Threshold),
		zap.String("latency_percentile", string(objective.Latency.Percentile)),
		zap.Bool("runtime_collectors", cfg.Metrics.RuntimeCollectors),
	)

	return rec, objective, nil
}
