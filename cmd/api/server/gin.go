package server

import (
	"net/http"
	"time"

	ginhandler "user-api/internal/adapter/gin/handler"
	ginrouter "user-api/internal/adapter/gin/router"
	"user-api/pkg/metrics"

	"go.uber.org/zap"
)

// SetupGinServer creates and configures the Gin REST API server
func SetupGinServer(
	handler *ginhandler.UserHandler,
	recorder *metrics.Recorder,
	opts ginrouter.Options,
	ginAddr string,
	l *zap.Logger,
) *http.Server {
	// Setup Gin router with all middleware and routes
	router := ginrouter.SetupRouter(handler, recorder, opts, l)

	l.Info("Gin REST API configured",
		zap.String("address", ginAddr),
		zap.Bool("swagger", opts.SwaggerEnabled),
		zap.Bool("tracing", opts.TracingEnabled),
	)

	return &http.Server{
		Addr:              ginAddr,
		Handler:           router,
		ReadHeaderTimeout: 2 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
