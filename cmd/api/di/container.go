package di

import (
	"context"
	"fmt"

	"user-api/cmd/api/infrastructure"
	ginhandler "user-api/internal/adapter/gin/handler"
	"user-api/internal/config"
	"user-api/internal/usecase/user"
	"user-api/pkg/metrics"
	"user-api/pkg/telemetry"

	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config     *config.Config
	Logger     *zap.Logger
	Recorder   *metrics.Recorder
	Objective  metrics.Objective
	Telemetry  *telemetry.Telemetry
	UserUC     user.Usecase
	GinHandler *ginhandler.UserHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	// Initialize metrics recorder
	rec, objective, err := infrastructure.NewMetricsRecorder(cfg, l)
	if err != nil {
		return nil, err
	}

	// Initialize tracing
	tel, err := infrastructure.NewTelemetry(ctx, cfg, l)
	if err != nil {
		return nil, err
	}

	// Initialize use case
	userUC := user.New(l)

	// Initialize Gin handler
	ginHandler := ginhandler.NewUserHandler(userUC, l)

	return &Container{
		Config:     cfg,
		Logger:     l,
		Recorder:   rec,
		Objective:  objective,
		Telemetry:  tel,
		UserUC:     userUC,
		GinHandler: ginHandler,
	}, nil
}

// Close flushes and releases all resources held by the container
func (c *Container) Close(ctx context.Context) error {
	if err := c.Telemetry.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down tracing: %w", err)
	}
	return nil
}
