package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"user-api/cmd/api/di"
	ginrouter "user-api/internal/adapter/gin/router"
	"user-api/internal/config"

	"go.uber.org/zap"
)

// Server owns the HTTP listener for the REST API
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	Gin    *http.Server
}

// New creates a new server instance from the container's dependencies
func New(cfg *config.Config, l *zap.Logger, c *di.Container) *Server {
	opts := ginrouter.Options{
		ServiceName:    cfg.Logger.ServiceName,
		Objective:      c.Objective,
		SwaggerEnabled: cfg.App.SwaggerEnabled,
		TracingEnabled: c.Telemetry != nil,
	}

	return &Server{
		Config: cfg,
		Logger: l,
		Gin:    SetupGinServer(c.GinHandler, c.Recorder, opts, cfg.Address(), l),
	}
}

// Start listens on the configured address and serves until Shutdown.
// A clean shutdown returns nil.
func (s *Server) Start() error {
	lc := net.ListenConfig{}
	lis, err := lc.Listen(context.Background(), "tcp", s.Gin.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.Logger.Info("Gin server running", zap.String("address", lis.Addr().String()))

	if err := s.Gin.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Gin.Shutdown(ctx)
}
